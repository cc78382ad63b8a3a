package llm

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Request is one system + user exchange. Schema, when set, asks the provider to constrain
// the reply to JSON matching it.
type Request struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	SchemaName   string
	Schema       *jsonschema.Definition
}

// Client sends a request to a text-generation service and returns the reply text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Name identifies the provider in logs and metrics (e.g. "gemini", "ollama").
	Name() string
}
