// Package conversation holds per-user chat state for the bot. A Conversation
// is an append-only message log plus the context and prompt produced by the
// most recent successful retrieval turn.
//
// Conversations carry no internal locking: the orchestrator serializes
// mutations per user. Only the Store's map is shared across users and
// guarded.
package conversation

import (
	"fmt"
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn entry. Created once, never mutated.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the state for one user identity.
type Conversation struct {
	messages      []Message
	context       string
	lastResponse  string
	hasContext    bool
	hasResponse   bool
	lastQueryTime time.Time
}

// New returns a fresh empty conversation.
func New() *Conversation {
	return &Conversation{}
}

// AddMessage appends a message with the current timestamp and advances
// the last-query time. Content is recorded as-is, empty or not.
func (c *Conversation) AddMessage(role, content string) {
	now := time.Now()
	c.messages = append(c.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	c.lastQueryTime = now
}

// RecentMessages returns the last limit messages in original order. A limit
// of zero or less yields an empty slice.
func (c *Conversation) RecentMessages(limit int) []Message {
	if limit <= 0 {
		return []Message{}
	}
	if limit >= len(c.messages) {
		return append([]Message{}, c.messages...)
	}
	return append([]Message{}, c.messages[len(c.messages)-limit:]...)
}

// Messages returns the full log in order.
func (c *Conversation) Messages() []Message {
	return append([]Message{}, c.messages...)
}

// SetResult records the retrieved context and the constructed prompt from a
// successful turn, overwriting any previous values.
func (c *Conversation) SetResult(context, lastResponse string) {
	c.context = context
	c.lastResponse = lastResponse
	c.hasContext = true
	c.hasResponse = true
}

// Context returns the most recent retrieved context and whether one exists.
func (c *Conversation) Context() (string, bool) {
	return c.context, c.hasContext
}

// LastResponse returns the most recent constructed prompt and whether one
// exists.
func (c *Conversation) LastResponse() (string, bool) {
	return c.lastResponse, c.hasResponse
}

// LastQueryTime is the timestamp of the most recent message addition. Zero
// for a conversation that never saw a message.
func (c *Conversation) LastQueryTime() time.Time {
	return c.lastQueryTime
}

// Clear empties the message log and drops context and last response. It
// deliberately leaves lastQueryTime alone: a cleared conversation still
// reports when it was last active, matching the reference behavior.
func (c *Conversation) Clear() {
	c.messages = nil
	c.context = ""
	c.lastResponse = ""
	c.hasContext = false
	c.hasResponse = false
}

// String renders a diagnostic summary of the conversation.
func (c *Conversation) String() string {
	lastQuery := "never"
	if !c.lastQueryTime.IsZero() {
		lastQuery = c.lastQueryTime.Format("2006-01-02 15:04:05")
	}

	var sb strings.Builder
	sb.WriteString("Conversation state:\n")
	fmt.Fprintf(&sb, "- Last query: %s\n", lastQuery)
	sb.WriteString("- Messages:\n")
	for _, msg := range c.messages {
		fmt.Fprintf(&sb, "  [%s] %s: %s\n", msg.Timestamp.Format("2006-01-02 15:04:05"), msg.Role, msg.Content)
	}
	fmt.Fprintf(&sb, "- Context present: %s\n", yesNo(c.hasContext))
	fmt.Fprintf(&sb, "- Last response present: %s", yesNo(c.hasResponse))
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
