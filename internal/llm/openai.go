package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	openaigo "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Base URLs of OpenAI-compatible chat endpoints.
const (
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	GroqBaseURL   = "https://api.groq.com/openai/v1"
)

// OpenAI implements Client over any OpenAI-compatible Chat Completions API
// (OpenAI itself, Gemini's compatibility endpoint, Groq).
type OpenAI struct {
	name   string
	client *openaigo.Client

	// objectRoot wraps a non-object schema under "items" and unwraps the reply.
	// api.openai.com only accepts structured outputs with an object root.
	objectRoot bool
}

// NewOpenAI returns a Client named name that talks to baseURL with apiKey.
// An empty baseURL uses api.openai.com; a nil httpClient uses the library default.
func NewOpenAI(name, apiKey, baseURL string, httpClient *http.Client) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key not set", name)
	}
	cfg := openaigo.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAI{
		name:       name,
		client:     openaigo.NewClientWithConfig(cfg),
		objectRoot: name == ProviderOpenAI,
	}, nil
}

func (c *OpenAI) Name() string { return c.name }

// Complete sends system and user messages and returns the assistant reply.
func (c *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	chat := openaigo.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openaigo.ChatMessageRoleUser, Content: req.UserMessage},
		},
	}
	wrapped := false
	if req.Schema != nil {
		schema := req.Schema
		if c.objectRoot && schema.Type != jsonschema.Object {
			schema = wrapSchema(schema)
			wrapped = true
		}
		chat.ResponseFormat = &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openaigo.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: schema,
			},
		}
	}
	resp, err := c.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}
	content := resp.Choices[0].Message.Content
	if wrapped {
		return unwrapItems(content), nil
	}
	return content, nil
}

// wrappedKey holds the original value when a schema is wrapped in an object.
const wrappedKey = "items"

func wrapSchema(schema *jsonschema.Definition) *jsonschema.Definition {
	return &jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           map[string]jsonschema.Definition{wrappedKey: *schema},
		Required:             []string{wrappedKey},
		AdditionalProperties: false,
	}
}

// unwrapItems returns the "items" value of an object reply. Anything else is returned as-is
// so the caller classifies it.
func unwrapItems(content string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return content
	}
	if items, ok := obj[wrappedKey]; ok {
		return string(items)
	}
	return content
}
