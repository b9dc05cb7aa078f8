package models

// Chat roles
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one conversation turn
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// SearchPassage is one document hit returned by the search collaborator
type SearchPassage struct {
	SourceID string  `json:"source_id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// ChatResponse is the gateway answer with cited sources
type ChatResponse struct {
	Reply    string        `json:"reply"`
	Sources  []string      `json:"sources"`
	History  []ChatMessage `json:"history"`
	Degraded bool          `json:"degraded"`
}
