package llm

import (
	"context"
	"fmt"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
	"screen-agent/internal/infrastructure/llm/langchain"
	"screen-agent/internal/infrastructure/llm/openaicompat"
)

// NewFactory returns the GenerationFactory the worker uses to build a
// back-end. API keys are read from env at build time, never shipped in the
// request.
func NewFactory(env output.ConfigPort, logger output.LoggerPort) output.GenerationFactory {
	return func(_ context.Context, cfg entity.ModelConfig) (output.GenerationPort, error) {
		log := logger.Named(string(cfg.Backend)).WithField("model", cfg.Name)

		switch cfg.Backend {
		case entity.BackendOpenAI:
			var apiKey string
			if cfg.APIKeyEnv != "" {
				apiKey = env.Get(cfg.APIKeyEnv)
			}
			return openaicompat.New(openaicompat.Config{APIKey: apiKey, Model: cfg, Logger: log}), nil
		case entity.BackendOllama:
			return langchain.New(cfg, log)
		default:
			return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
		}
	}
}
