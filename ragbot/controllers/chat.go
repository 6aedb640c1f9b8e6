// ragbot/controllers/chat.go
package controllers

import (
	"context"
	"errors"
	"time"

	"ragbot/ragbot/conversation"
	"ragbot/ragbot/orchestrator"
	"ragbot/ragbot/types"
)

var ErrEmptyContent = errors.New("content must not be empty")

type ChatController struct {
	orch *orchestrator.Orchestrator
}

func NewChatController(orch *orchestrator.Orchestrator) *ChatController {
	return &ChatController{orch: orch}
}

// Chat runs one turn for the request's user and returns the constructed
// prompt. Orchestration errors pass through for the route layer to map to a
// status code.
func (c *ChatController) Chat(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	if req.Content == "" {
		return nil, ErrEmptyContent
	}
	out, err := c.orch.Handle(ctx, req.UserID, req.Content)
	if err != nil {
		return nil, err
	}
	return &types.ChatResponse{UserID: req.UserID, Prompt: out}, nil
}

// Messages returns the user's full message log.
func (c *ChatController) Messages(userID string) []types.MessageView {
	return toViews(c.orch.Conversation(userID).Messages())
}

// RecentMessages returns a trailing window of the log. A non-positive limit
// yields an empty slice.
func (c *ChatController) RecentMessages(userID string, limit int) []types.MessageView {
	return toViews(c.orch.Conversation(userID).RecentMessages(limit))
}

// Summary renders the diagnostic view of the user's conversation.
func (c *ChatController) Summary(userID string) string {
	return c.orch.Conversation(userID).String()
}

// Reset clears the user's conversation in place.
func (c *ChatController) Reset(userID string) {
	c.orch.Reset(userID)
}

func toViews(msgs []conversation.Message) []types.MessageView {
	views := make([]types.MessageView, len(msgs))
	for i, msg := range msgs {
		views[i] = types.MessageView{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		}
	}
	return views
}
