// Package ai generates daily-log entries and form field suggestions by
// calling free-tier models on an OpenRouter-compatible API, falling back
// through a fixed priority list until one responds.
package ai

import (
	"time"

	"github.com/google/uuid"
)

// Model describes one free-tier model and its quirks.
type Model struct {
	ID           string
	Name         string
	Provider     string
	NoSystemRole bool // rejects the system role; merge instructions into the first user turn
	Vision       bool // accepts image_url content parts
}

// FreeModels is the fallback order. All entries are :free tier on OpenRouter.
var FreeModels = []Model{
	{ID: "meta-llama/llama-3.2-3b-instruct:free", Name: "Llama 3.2 3B", Provider: "Meta", Vision: true},
	{ID: "qwen/qwen3-4b:free", Name: "Qwen3 4B", Provider: "Alibaba"},
	{ID: "mistralai/mistral-small-3.1-24b-instruct:free", Name: "Mistral Small 3.1", Provider: "Mistral AI"},
	{ID: "google/gemma-3-4b-it:free", Name: "Gemma 3 4B", Provider: "Google", NoSystemRole: true},
	{ID: "meta-llama/llama-3.1-8b-instruct:free", Name: "Llama 3.1 8B", Provider: "Meta"},
	{ID: "qwen/qwen3-8b:free", Name: "Qwen3 8B", Provider: "Alibaba"},
	{ID: "deepseek/deepseek-r1-distill-llama-8b:free", Name: "DeepSeek R1 8B", Provider: "DeepSeek"},
	{ID: "google/gemma-3-27b-it:free", Name: "Gemma 3 27B", Provider: "Google", NoSystemRole: true, Vision: true},
}

// VisionModels returns the vision-capable subset of models, in order.
func VisionModels(models []Model) []Model {
	var out []Model
	for _, m := range models {
		if m.Vision {
			out = append(out, m)
		}
	}
	return out
}

// Message is one turn of a chat conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user", "assistant" or "system"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	ModelUsed string    `json:"modelUsed,omitempty"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// NewMessage returns a Message with a fresh unique ID and the current time.
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
