package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"screen-agent/internal/domain/entity"
	"screen-agent/internal/infrastructure/env"
	"screen-agent/internal/infrastructure/inference"
	"screen-agent/internal/infrastructure/logger"
	"screen-agent/internal/infrastructure/parser"
)

const envPrefix = "AGENT"

type Config struct {
	Logger logger.Config    `mapstructure:"logger"`
	Worker inference.Config `mapstructure:"worker"`
	Models ModelsConfig     `mapstructure:"models"`
	Parser ParserConfig     `mapstructure:"parser"`

	env *env.Service
}

type ModelsConfig struct {
	Planner   entity.ModelConfig `mapstructure:"planner"`
	Action    entity.ModelConfig `mapstructure:"action"`
	Grounding entity.ModelConfig `mapstructure:"grounding"`
}

// ParserConfig names the output dialect of the action and grounding models.
type ParserConfig struct {
	Action    string `mapstructure:"action"`
	Grounding string `mapstructure:"grounding"`
}

func (c *Config) Env() *env.Service {
	return c.env
}

// Load reads .env files next to the config file, then the config file
// itself (agent.yaml in the working directory when path is empty), then
// AGENT_* variables, e.g. AGENT_MODELS_PLANNER_ENDPOINT.
func Load(path string) (*Config, error) {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	envService := env.Load(dir)

	v := viper.New()
	SetDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("agent")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.env = envService

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SetDefaults(v *viper.Viper) {
	defaults := logger.DefaultConfig()
	v.SetDefault("logger.level", defaults.Level)
	v.SetDefault("logger.format", defaults.Format)
	v.SetDefault("logger.file", defaults.File)
	v.SetDefault("logger.max_size", defaults.MaxSize)
	v.SetDefault("logger.max_backups", defaults.MaxBackups)
	v.SetDefault("logger.max_age", defaults.MaxAge)
	v.SetDefault("logger.compress", defaults.Compress)
	v.SetDefault("logger.service", defaults.Service)

	worker := inference.DefaultConfig()
	v.SetDefault("worker.command", "")
	v.SetDefault("worker.args", worker.Args)
	v.SetDefault("worker.env", []string{})
	v.SetDefault("worker.timeout", worker.Timeout)
	v.SetDefault("worker.wait_delay", worker.WaitDelay)

	setModelDefaults(v, "models.planner", "Qwen/Qwen2-VL-7B-Instruct-GPTQ-Int4", "http://localhost:8000/v1")
	setModelDefaults(v, "models.action", "Qwen/Qwen2-VL-7B-Instruct-GPTQ-Int4", "http://localhost:8000/v1")
	setModelDefaults(v, "models.grounding", "OS-Copilot/OS-Atlas-Base-7B", "http://localhost:8001/v1")

	v.SetDefault("parser.action", parser.DialectTagged.String())
	v.SetDefault("parser.grounding", parser.DialectBracketed.String())
}

func setModelDefaults(v *viper.Viper, prefix, name, endpoint string) {
	m := entity.DefaultModelConfig(name, entity.BackendOpenAI, endpoint)
	caps := make([]string, len(m.Capabilities))
	for i, c := range m.Capabilities {
		caps[i] = string(c)
	}
	v.SetDefault(prefix+".name", m.Name)
	v.SetDefault(prefix+".backend", string(m.Backend))
	v.SetDefault(prefix+".endpoint", m.Endpoint)
	v.SetDefault(prefix+".api_key_env", "")
	v.SetDefault(prefix+".capabilities", caps)
	v.SetDefault(prefix+".max_tokens", m.MaxTokens)
	v.SetDefault(prefix+".temperature", m.Temperature)
	v.SetDefault(prefix+".top_p", m.TopP)
	v.SetDefault(prefix+".skip_special_tokens", m.SkipSpecialTokens)
	v.SetDefault(prefix+".image_max_width", m.ImageMaxWidth)
}

func (c *Config) Validate() error {
	var errs []error
	for _, r := range []struct {
		role  string
		model entity.ModelConfig
	}{
		{"planner", c.Models.Planner},
		{"action", c.Models.Action},
		{"grounding", c.Models.Grounding},
	} {
		role, m := r.role, r.model
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("models.%s.name is required", role))
		}
		switch m.Backend {
		case entity.BackendOpenAI, entity.BackendOllama:
		default:
			errs = append(errs, fmt.Errorf("models.%s.backend %q is not supported", role, m.Backend))
		}
		if m.MaxTokens <= 0 {
			errs = append(errs, fmt.Errorf("models.%s.max_tokens must be positive", role))
		}
	}
	if c.Worker.Timeout < 0 || c.Worker.WaitDelay < 0 {
		errs = append(errs, errors.New("worker timeouts must not be negative"))
	}
	if _, err := parser.ParseDialect(c.Parser.Action); err != nil {
		errs = append(errs, fmt.Errorf("parser.action: %w", err))
	}
	if _, err := parser.ParseDialect(c.Parser.Grounding); err != nil {
		errs = append(errs, fmt.Errorf("parser.grounding: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
