package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screen-agent/internal/domain/entity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, []string{"worker"}, cfg.Worker.Args)
	assert.Equal(t, 10*time.Minute, cfg.Worker.Timeout)
	assert.Equal(t, "OS-Copilot/OS-Atlas-Base-7B", cfg.Models.Grounding.Name)
	assert.Equal(t, entity.BackendOpenAI, cfg.Models.Planner.Backend)
	assert.Equal(t, entity.DefaultMaxTokens, cfg.Models.Action.MaxTokens)
	assert.InDelta(t, entity.DefaultTemperature, cfg.Models.Action.Temperature, 1e-9)
	assert.False(t, cfg.Models.Grounding.SkipSpecialTokens)
	assert.Equal(t, []entity.Capability{entity.CapabilityImage, entity.CapabilityText}, cfg.Models.Planner.Capabilities)
	assert.Equal(t, "tagged", cfg.Parser.Action)
	assert.Equal(t, "bracketed", cfg.Parser.Grounding)
	assert.NotNil(t, cfg.Env())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
worker:
  timeout: 90s
models:
  action:
    name: llava
    backend: ollama
    endpoint: http://gpu:11434
    capabilities: [image, text]
    max_tokens: 256
`)
	t.Setenv("AGENT_MODELS_PLANNER_ENDPOINT", "http://planner:9000/v1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Worker.Timeout)
	assert.Equal(t, "llava", cfg.Models.Action.Name)
	assert.Equal(t, entity.BackendOllama, cfg.Models.Action.Backend)
	assert.Equal(t, 256, cfg.Models.Action.MaxTokens)
	assert.Equal(t, "http://planner:9000/v1", cfg.Models.Planner.Endpoint)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "backend", content: "models:\n  planner:\n    backend: tgi\n", wantErr: "models.planner.backend"},
		{name: "max tokens", content: "models:\n  grounding:\n    max_tokens: 0\n", wantErr: "models.grounding.max_tokens"},
		{name: "dialect", content: "parser:\n  action: xml\n", wantErr: "parser.action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
