package llm

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/mathmaster/internal/store"
)

// NewProvider builds the configured provider and wraps it as
// timeout(retry(logging(base))). A nil eventRepo skips logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		// Unscripted: every question fails, which exercises the arena's
		// retry path without a network.
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	} else {
		slog.Warn("llm request log disabled: no event store")
	}
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)

	slog.Info("llm provider ready", "provider", cfg.Provider, "model", p.ModelID())
	return p, nil
}

// NewProviderFromEnv builds a provider from MATHMASTER_* variables. When no
// provider is pinned with MATHMASTER_LLM_PROVIDER and the default one has no
// key, the standard key variables (GEMINI_API_KEY, API_KEY, OPENAI_API_KEY,
// ...) are probed. A missing key returns an error wrapping
// ErrMissingCredential.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()

	if os.Getenv("MATHMASTER_LLM_PROVIDER") == "" && cfg.Validate() != nil {
		if found, ok := DiscoverConfig(); ok {
			cfg.Provider = found.Provider
			*cfg.apiKey() = cmp.Or(*cfg.apiKey(), *found.apiKey())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
