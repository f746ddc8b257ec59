package entity

import "slices"

type Capability string

const (
	CapabilityImage Capability = "image"
	CapabilityText  Capability = "text"
)

type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendOllama Backend = "ollama"
)

const (
	DefaultMaxTokens     = 512
	DefaultTemperature   = 0.01
	DefaultTopP          = 0.9
	DefaultImageMaxWidth = 1280
)

// ModelConfig describes one model the agent talks to. It is sent to the
// inference worker as-is, so it must not carry secrets: APIKeyEnv names the
// environment variable the worker reads the key from.
type ModelConfig struct {
	Name              string       `json:"name" mapstructure:"name"`
	Backend           Backend      `json:"backend" mapstructure:"backend"`
	Endpoint          string       `json:"endpoint" mapstructure:"endpoint"`
	APIKeyEnv         string       `json:"api_key_env,omitempty" mapstructure:"api_key_env"`
	Capabilities      []Capability `json:"capabilities" mapstructure:"capabilities"`
	MaxTokens         int          `json:"max_tokens" mapstructure:"max_tokens"`
	Temperature       float64      `json:"temperature" mapstructure:"temperature"`
	TopP              float64      `json:"top_p" mapstructure:"top_p"`
	SkipSpecialTokens bool         `json:"skip_special_tokens" mapstructure:"skip_special_tokens"`
	ImageMaxWidth     int          `json:"image_max_width" mapstructure:"image_max_width"`
}

func DefaultModelConfig(name string, backend Backend, endpoint string) ModelConfig {
	return ModelConfig{
		Name:          name,
		Backend:       backend,
		Endpoint:      endpoint,
		Capabilities:  []Capability{CapabilityImage, CapabilityText},
		MaxTokens:     DefaultMaxTokens,
		Temperature:   DefaultTemperature,
		TopP:          DefaultTopP,
		ImageMaxWidth: DefaultImageMaxWidth,
	}
}

func (c ModelConfig) Accepts(capability Capability) bool {
	return slices.Contains(c.Capabilities, capability)
}
