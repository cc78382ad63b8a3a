package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"house-modeler/internal/llm"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration read from the environment (after .env is applied).
type Config struct {
	Provider  string        `envconfig:"AI_PROVIDER" default:"gemini"`
	APIKey    string        `envconfig:"API_KEY"`
	BaseURL   string        `envconfig:"AI_BASE_URL"`
	Model     string        `envconfig:"AI_MODEL" default:"gemini-2.5-flash"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"0s"` // 0 leaves the transport's own timeout

	TextureCacheDir string `envconfig:"TEXTURE_CACHE_DIR" default:"assets/textures/cache"`
	PrefsPath       string `envconfig:"VIEWER_PREFS" default:"config/viewer.yaml"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	LogFile     string `envconfig:"LOG_FILE"`

	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

// ConfigurationError reports a setting without which the process must not start.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Setting, e.Reason)
}

// LoadDotEnv applies KEY=VALUE lines from path to the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment. A credentialed provider without
// API_KEY yields a *ConfigurationError.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the generation client cannot run without.
func (c *Config) Validate() error {
	switch c.Provider {
	case llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderGroq, llm.ProviderOllama:
	default:
		return &ConfigurationError{Setting: "AI_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", c.Provider)}
	}
	if llm.RequiresKey(c.Provider) && c.APIKey == "" {
		return &ConfigurationError{Setting: "API_KEY", Reason: "environment variable not set"}
	}
	if c.Model == "" {
		return &ConfigurationError{Setting: "AI_MODEL", Reason: "must not be empty"}
	}
	return nil
}

// LLMOptions returns the provider selection for llm.New.
func (c *Config) LLMOptions() llm.Options {
	return llm.Options{Provider: c.Provider, APIKey: c.APIKey, BaseURL: c.BaseURL, Timeout: c.AITimeout}
}
