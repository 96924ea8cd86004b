package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

var keyVars = []string{
	"MATHMASTER_LLM_PROVIDER",
	"MATHMASTER_GEMINI_API_KEY",
	"MATHMASTER_OPENAI_API_KEY",
	"MATHMASTER_ANTHROPIC_API_KEY",
	"MATHMASTER_OPENROUTER_API_KEY",
	"MATHMASTER_LLM_MAX_ATTEMPTS",
	"MATHMASTER_LLM_TIMEOUT",
	"GEMINI_API_KEY",
	"API_KEY",
	"OPENAI_API_KEY",
	"ANTHROPIC_API_KEY",
	"OPENROUTER_API_KEY",
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range keyVars {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("expected gemini by default, got %q", cfg.Provider)
	}
	if got := resolveModel(cfg.Gemini.Model, geminiModels); got != "gemini-3-pro-preview" {
		t.Errorf("unexpected default gemini model %q", got)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("expected a single attempt by default, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout %s", cfg.Timeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("MATHMASTER_LLM_PROVIDER", "openai")
	t.Setenv("MATHMASTER_OPENAI_API_KEY", "sk-test")
	t.Setenv("MATHMASTER_OPENAI_MODEL", "gpt-4o")
	t.Setenv("MATHMASTER_LLM_MAX_ATTEMPTS", "3")
	t.Setenv("MATHMASTER_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("unexpected openai config: %+v", cfg.OpenAI)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Timeout)
	}
}

func TestConfigFromEnv_IgnoresGarbage(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("MATHMASTER_LLM_MAX_ATTEMPTS", "lots")
	t.Setenv("MATHMASTER_LLM_TIMEOUT", "-1s")

	cfg := ConfigFromEnv()
	if cfg.Retry.MaxAttempts != 1 || cfg.Timeout != 30*time.Second {
		t.Fatalf("expected defaults, got attempts=%d timeout=%s", cfg.Retry.MaxAttempts, cfg.Timeout)
	}
}

func TestDiscoverConfig_GenericAPIKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("API_KEY", "generic")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected API_KEY to be discovered")
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "generic" {
		t.Fatalf("unexpected config: provider=%q key=%q", cfg.Provider, cfg.Gemini.APIKey)
	}
}

func TestDiscoverConfig_None(t *testing.T) {
	clearKeyEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected nothing to be discovered")
	}
}

func TestConfig_ValidateMissingCredential(t *testing.T) {
	for _, provider := range []string{"gemini", "openai", "anthropic", "openrouter"} {
		err := Config{Provider: provider}.Validate()
		if !errors.Is(err, ErrMissingCredential) {
			t.Errorf("%s: expected ErrMissingCredential, got %v", provider, err)
		}
	}
	if err := (Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewProviderFromEnv_MissingKey(t *testing.T) {
	clearKeyEnv(t)

	_, err := NewProviderFromEnv(context.Background(), nil)
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestNewProviderFromEnv_Discovers(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("API_KEY", "generic")

	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gemini-3-pro-preview" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
}

func TestNewProviderFromEnv_PinnedProviderNotOverridden(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("MATHMASTER_LLM_PROVIDER", "anthropic")
	t.Setenv("GEMINI_API_KEY", "g")

	_, err := NewProviderFromEnv(context.Background(), nil)
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected pinned provider to require its own key, got %v", err)
	}
}

func TestNewProvider_OpenRouter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or"

	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "telepathy"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if p.ModelID() != "slow" {
		t.Fatalf("expected ModelID to delegate, got %q", p.ModelID())
	}
}

func TestWithTimeout_Disabled(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("expected zero timeout to return the provider unchanged")
	}
}

func TestConfig_ValidateNamesVariable(t *testing.T) {
	tests := map[string]string{
		"gemini":     "MATHMASTER_GEMINI_API_KEY or API_KEY",
		"openrouter": "MATHMASTER_OPENROUTER_API_KEY",
	}
	for provider, want := range tests {
		err := Config{Provider: provider}.Validate()
		if err == nil {
			t.Errorf("%s: expected an error", provider)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%s: error %v should mention %s", provider, err, want)
		}
		if !strings.HasPrefix(err.Error(), "API_KEY is missing") {
			t.Errorf("%s: error %q should lead with the missing key", provider, err)
		}
	}
}

func TestNewProvider_MockFailsEveryCall(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
