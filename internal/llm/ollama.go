package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// DefaultOllamaBaseURL is the default base URL for a local Ollama server.
const DefaultOllamaBaseURL = "http://localhost:11434"

// Ollama implements Client using the native Ollama chat API.
type Ollama struct {
	client *api.Client
}

// NewOllama returns a Client for the Ollama server at baseURL.
// If baseURL is empty, DefaultOllamaBaseURL is used. A trailing /v1 is dropped.
func NewOllama(baseURL string, httpClient *http.Client) (*Ollama, error) {
	u := strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")
	if u == "" {
		u = DefaultOllamaBaseURL
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("ollama: base url %q: %w", u, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Ollama{client: api.NewClient(parsed, httpClient)}, nil
}

func (c *Ollama) Name() string { return "ollama" }

// Complete sends system and user messages to Ollama and returns the assistant reply.
// A schema is passed as the structured-output format.
func (c *Ollama) Complete(ctx context.Context, req Request) (string, error) {
	stream := false
	chat := &api.ChatRequest{
		Model:  req.Model,
		Stream: &stream,
		Messages: []api.Message{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserMessage},
		},
	}
	if req.Schema != nil {
		format, err := json.Marshal(req.Schema)
		if err != nil {
			return "", fmt.Errorf("ollama: %w", err)
		}
		chat.Format = format
	}
	var content strings.Builder
	err := c.client.Chat(ctx, chat, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	if content.Len() == 0 {
		return "", fmt.Errorf("ollama: empty response")
	}
	return content.String(), nil
}
