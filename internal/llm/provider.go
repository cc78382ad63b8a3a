package llm

import (
	"fmt"
	"net/http"
	"time"
)

// Supported provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderOllama = "ollama"
)

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	BaseURL  string // optional override of the provider's default endpoint
	Timeout  time.Duration
}

// RequiresKey reports whether provider needs an API credential.
func RequiresKey(provider string) bool {
	return provider != ProviderOllama
}

// New returns the Client for opts.Provider.
func New(opts Options) (Client, error) {
	var httpClient *http.Client
	if opts.Timeout > 0 {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	switch opts.Provider {
	case ProviderGemini:
		return NewOpenAI(ProviderGemini, opts.APIKey, orDefault(opts.BaseURL, GeminiBaseURL), httpClient)
	case ProviderOpenAI:
		return NewOpenAI(ProviderOpenAI, opts.APIKey, opts.BaseURL, httpClient)
	case ProviderGroq:
		return NewOpenAI(ProviderGroq, opts.APIKey, orDefault(opts.BaseURL, GroqBaseURL), httpClient)
	case ProviderOllama:
		return NewOllama(opts.BaseURL, httpClient)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", opts.Provider)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
