package llm

import (
	"fmt"
	"os"
	"time"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider  string
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig

	// Timeout bounds a single Generate call.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func DefaultConfig() Config {
	return Config{
		Provider:  ProviderAnthropic,
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Timeout:   60 * time.Second,
	}
}

// ConfigFromEnv overlays SENGOKU_* variables read through getenv on the
// defaults. When SENGOKU_LLM_PROVIDER is unset the first provider with a
// standard vendor key (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY)
// is chosen. A nil getenv means os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&cfg.Anthropic.APIKey, "SENGOKU_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "SENGOKU_ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "SENGOKU_OPENAI_API_KEY", "OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "SENGOKU_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "SENGOKU_OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "SENGOKU_GEMINI_API_KEY", "GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "SENGOKU_GEMINI_MODEL")

	if p := getenv("SENGOKU_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	} else {
		switch {
		case cfg.Anthropic.APIKey != "":
			cfg.Provider = ProviderAnthropic
		case cfg.OpenAI.APIKey != "":
			cfg.Provider = ProviderOpenAI
		case cfg.Gemini.APIKey != "":
			cfg.Provider = ProviderGemini
		}
	}
	if t := getenv("SENGOKU_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "SENGOKU_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "SENGOKU_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "SENGOKU_GEMINI_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
