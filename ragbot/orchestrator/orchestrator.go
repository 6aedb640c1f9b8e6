// Package orchestrator drives one user turn end to end: session lookup,
// retrieval, prompt construction, history bookkeeping. It is the single
// entry point the transport layers call into.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ragbot/ragbot/conversation"
	"ragbot/ragbot/services/prompt"
	"ragbot/ragbot/services/retrieval"
	"ragbot/ragbot/utils/logging"
)

// TurnError wraps whatever made a user's turn fail. The user message is
// already recorded by then; no assistant message is.
type TurnError struct {
	UserID string
	Err    error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn failed for user %s: %v", e.UserID, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// Orchestrator owns the per-turn control flow. One invocation is a single
// attempt; retries, if any, belong to the transport layer.
//
// Turns for the same user are serialized here: conversations carry no
// internal locking, and transports like the HTTP server deliver concurrent
// requests. Turns for different users run independently.
type Orchestrator struct {
	sessions *conversation.Store
	pipeline *retrieval.Pipeline
	builder  *prompt.Builder
	topK     int

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

func New(sessions *conversation.Store, pipeline *retrieval.Pipeline, builder *prompt.Builder, topK int) *Orchestrator {
	if topK <= 0 {
		topK = retrieval.DefaultTopK
	}
	return &Orchestrator{
		sessions: sessions,
		pipeline: pipeline,
		builder:  builder,
		topK:     topK,
		users:    make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing turns for one user. Like the
// session store, the map grows with distinct users and is never pruned.
func (o *Orchestrator) userLock(userID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()

	l, ok := o.users[userID]
	if !ok {
		l = &sync.Mutex{}
		o.users[userID] = l
	}
	return l
}

// Handle processes one incoming user message and returns the constructed
// prompt. The user message is recorded unconditionally, so a failed turn
// still leaves its trace in the history. On retrieval failure no assistant
// message is recorded and the error surfaces as a *TurnError.
func (o *Orchestrator) Handle(ctx context.Context, userID, text string) (string, error) {
	turnID := uuid.New().String()
	ctx = context.WithValue(ctx, "turn_id", turnID)
	defer logging.LogDuration(ctx, "orchestrator_handle")()

	lock := o.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	conv := o.sessions.GetOrCreate(userID)
	conv.AddMessage(conversation.RoleUser, text)

	docs, err := o.pipeline.Search(ctx, text, o.topK)
	if err != nil {
		logging.ErrorLogger.Error("turn failed",
			zap.String("turn_id", turnID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", &TurnError{UserID: userID, Err: err}
	}

	result := o.builder.Build(docs, text)
	conv.SetResult(contextBlock(docs), result)
	conv.AddMessage(conversation.RoleAssistant, result)

	logging.AppLogger.Info("turn completed",
		zap.String("turn_id", turnID),
		zap.String("user_id", userID),
		zap.Int("documents", len(docs)),
	)
	return result, nil
}

// Conversation exposes the user's session for transport-level commands
// (history rendering). Created lazily like any other access.
func (o *Orchestrator) Conversation(userID string) *conversation.Conversation {
	return o.sessions.GetOrCreate(userID)
}

// Reset clears the user's conversation in place. It takes the same per-user
// lock as Handle so a reset cannot interleave with a running turn.
func (o *Orchestrator) Reset(userID string) {
	lock := o.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	o.sessions.Clear(userID)
}

func contextBlock(docs []retrieval.Document) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.Content
	}
	return strings.Join(parts, prompt.Delimiter)
}
