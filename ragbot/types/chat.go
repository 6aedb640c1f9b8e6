// ragbot/types/chat.go
package types

// ChatRequest is one incoming user message.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// ChatResponse carries the constructed grounded prompt back to the caller.
type ChatResponse struct {
	UserID string `json:"user_id"`
	Prompt string `json:"prompt"`
}

// MessageView is one history entry as exposed over HTTP.
// Timestamp: RFC3339 string.
type MessageView struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// IndexRequest carries document texts to ingest.
type IndexRequest struct {
	Documents []string `json:"documents"`
}

// IndexResponse reports how many documents were written.
type IndexResponse struct {
	Indexed int `json:"indexed"`
}
