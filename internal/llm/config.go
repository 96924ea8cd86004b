package llm

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingCredential means the selected provider has no API key. The
// text is what the player sees in the arena.
var ErrMissingCredential = errors.New("API_KEY is missing")

// Config selects a provider and carries the settings of every provider,
// so switching MATHMASTER_LLM_PROVIDER needs no other change.
type Config struct {
	Provider string // gemini, openai, anthropic, openrouter or mock

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig

	Retry RetryConfig

	// Timeout bounds one question request, retries included.
	Timeout time.Duration
}

// BaseURL fields are optional everywhere and mostly point tests at an
// httptest server.

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor/model
	BaseURL string
}

// RetryConfig drives RetryProvider. MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig is Gemini with a single attempt per question: the player
// sees a failure right away and can ask for another try.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-pro"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays MATHMASTER_* variables on DefaultConfig. Unset
// or unparsable values keep the default.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	for name, dst := range map[string]*string{
		"MATHMASTER_LLM_PROVIDER":       &cfg.Provider,
		"MATHMASTER_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"MATHMASTER_GEMINI_MODEL":       &cfg.Gemini.Model,
		"MATHMASTER_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"MATHMASTER_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"MATHMASTER_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"MATHMASTER_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"MATHMASTER_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"MATHMASTER_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"MATHMASTER_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if n, err := strconv.Atoi(os.Getenv("MATHMASTER_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("MATHMASTER_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// wellKnownKeys are the vendor key variables DiscoverConfig probes, in
// priority order. API_KEY is the generic name the web version used for
// Gemini.
var wellKnownKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", "gemini"},
	{"API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig returns DefaultConfig switched to the first provider
// whose well-known key variable is set.
func DiscoverConfig() (Config, bool) {
	for _, k := range wellKnownKeys {
		key := os.Getenv(k.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = k.provider
		*cfg.apiKey() = key
		return cfg, true
	}
	return Config{}, false
}

// apiKey points at the key field of the selected provider, or nil for
// providers without one.
func (c *Config) apiKey() *string {
	switch c.Provider {
	case "gemini":
		return &c.Gemini.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Validate reports an unknown provider or a missing key. A missing key
// wraps ErrMissingCredential.
func (c Config) Validate() error {
	switch c.Provider {
	case "mock":
		return nil
	case "gemini", "openai", "anthropic", "openrouter":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	if *c.apiKey() != "" {
		return nil
	}
	hint := "MATHMASTER_" + strings.ToUpper(c.Provider) + "_API_KEY"
	if c.Provider == "gemini" {
		hint += " or API_KEY"
	}
	return fmt.Errorf("%w: set %s for the %s provider", ErrMissingCredential, hint, c.Provider)
}
