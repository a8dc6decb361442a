package llm

import (
	"context"
	"fmt"
	"log"
	"time"
)

// New builds the configured provider, bounded by cfg.Timeout and journaled
// to journal when one is given.
func New(ctx context.Context, cfg Config, journal RequestJournal, logger *log.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		p = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	if cfg.Timeout > 0 {
		p = &bounded{inner: p, timeout: cfg.Timeout}
	}
	if journal != nil {
		p = WithJournal(p, cfg.Provider, journal, logger)
	}
	return p, nil
}

type bounded struct {
	inner   Provider
	timeout time.Duration
}

func (b *bounded) ModelID() string { return b.inner.ModelID() }

func (b *bounded) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.inner.Generate(ctx, req)
}
