// Package providers wires a configured provider name to a concrete backend.
package providers

import (
	"log/slog"

	"github.com/research-tools/paperinator/internal/common"
	"github.com/research-tools/paperinator/internal/llm"
	"github.com/research-tools/paperinator/internal/llm/anthropic"
	"github.com/research-tools/paperinator/internal/llm/ollama"
	"github.com/research-tools/paperinator/internal/llm/openai"
)

// New constructs the backend for cfg.Provider. Unsupported providers are a
// configuration error, surfaced at startup rather than at call time.
func New(cfg common.LLMConfig, logger *slog.Logger) (llm.Backend, error) {
	switch cfg.Provider {
	case common.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	case common.ProviderAnthropic:
		return anthropic.NewClient(anthropic.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	case common.ProviderOllama:
		return ollama.NewClient(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	default:
		return nil, common.NewConfigError("unsupported LLM provider: " + cfg.Provider)
	}
}
