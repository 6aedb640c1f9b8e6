// Package telegram delivers user messages from Telegram into the
// orchestrator and sends the constructed prompt back as the reply. Telebot
// serializes nothing across users, but each user's updates arrive one at a
// time, which matches the per-user mutation contract of the conversation
// store.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"ragbot/ragbot/orchestrator"
	"ragbot/ragbot/utils/logging"
)

type Bot struct {
	bot  *tele.Bot
	orch *orchestrator.Orchestrator
}

// New builds the bot and registers its handlers.
func New(token string, orch *orchestrator.Orchestrator) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	tb := &Bot{bot: b, orch: orch}

	b.Handle("/start", tb.handleStart)
	b.Handle("/clear", tb.handleClear)
	b.Handle("/history", tb.handleHistory)
	b.Handle(tele.OnText, tb.handleMessage)

	return tb, nil
}

// Start begins long polling. Blocks until Stop is called.
func (tb *Bot) Start() {
	logging.AppLogger.Info("telegram bot running")
	tb.bot.Start()
}

// Stop halts the poller.
func (tb *Bot) Stop() {
	tb.bot.Stop()
}

func (tb *Bot) handleStart(c tele.Context) error {
	return c.Send("Hi! Send me a question and I will show you the prompt that would go to the model.")
}

func (tb *Bot) handleClear(c tele.Context) error {
	tb.orch.Reset(userID(c))
	return c.Send("Conversation cleared.")
}

func (tb *Bot) handleHistory(c tele.Context) error {
	return c.Send(tb.orch.Conversation(userID(c)).String())
}

func (tb *Bot) handleMessage(c tele.Context) error {
	uid := userID(c)

	out, err := tb.orch.Handle(context.Background(), uid, c.Text())
	if err != nil {
		// The failure stays with this user; reply and move on.
		logging.ErrorLogger.Error("telegram turn failed",
			zap.String("user_id", uid),
			zap.Error(err),
		)
		return c.Send(fmt.Sprintf("Error generating the prompt: %v", err))
	}

	return c.Send("Generated prompt:\n\n" + out)
}

func userID(c tele.Context) string {
	return strconv.FormatInt(c.Sender().ID, 10)
}
