package di

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"

	"screen-agent/internal/application/port/input"
	"screen-agent/internal/application/port/output"
	"screen-agent/internal/config"
	"screen-agent/internal/infrastructure/inference"
	"screen-agent/internal/infrastructure/llm"
	"screen-agent/internal/infrastructure/logger"
	"screen-agent/internal/infrastructure/parser"
	"screen-agent/internal/infrastructure/screenshot"
	"screen-agent/internal/infrastructure/worker"
	"screen-agent/internal/usecase/orchestrator"
	"screen-agent/internal/usecase/planner"
	"screen-agent/internal/usecase/resolver"
)

type Container struct {
	Logger       output.LoggerPort
	Planner      *planner.UseCase
	Resolver     *resolver.UseCase
	TaskExecutor input.TaskExecutor
}

type Options struct {
	// ConfigPath is handed to workers so they load the same configuration.
	ConfigPath string
	// Executable replaces os.Executable() as the default worker command.
	Executable string
}

func NewContainer(cfg *config.Config, opts Options) (*Container, error) {
	log, err := logger.New(cfg.Logger, zapcore.Lock(os.Stderr))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	workerCfg, err := workerConfig(cfg.Worker, opts)
	if err != nil {
		log.Close()
		return nil, err
	}

	actionDialect, err := parser.ParseDialect(cfg.Parser.Action)
	if err != nil {
		log.Close()
		return nil, err
	}
	groundingDialect, err := parser.ParseDialect(cfg.Parser.Grounding)
	if err != nil {
		log.Close()
		return nil, err
	}

	invokerLog := log.Named("inference")
	plannerModel := inference.NewProcessInvoker(workerCfg, cfg.Models.Planner, invokerLog)
	actionModel := inference.NewProcessInvoker(workerCfg, cfg.Models.Action, invokerLog)
	groundingModel := inference.NewProcessInvoker(workerCfg, cfg.Models.Grounding, invokerLog)

	plannerUC := planner.New(plannerModel, parser.NewPlanParser(), log.Named("planner"))
	resolverUC := resolver.New(
		actionModel,
		groundingModel,
		parser.NewActionParser(actionDialect),
		parser.NewActionParser(groundingDialect),
		log.Named("resolver"),
	)

	log.Debug("Container ready",
		"worker", workerCfg.Command,
		"planner", cfg.Models.Planner.Name,
		"action", cfg.Models.Action.Name,
		"grounding", cfg.Models.Grounding.Name)

	return &Container{
		Logger:       log,
		Planner:      plannerUC,
		Resolver:     resolverUC,
		TaskExecutor: orchestrator.New(plannerUC, resolverUC, log.Named("orchestrator")),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

// workerConfig defaults the worker to this binary's own worker command.
func workerConfig(cfg inference.Config, opts Options) (inference.Config, error) {
	if cfg.Command != "" {
		return cfg, nil
	}

	exe := opts.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return cfg, fmt.Errorf("resolve worker executable: %w", err)
		}
	}
	cfg.Command = exe
	cfg.Args = append([]string(nil), cfg.Args...)
	if opts.ConfigPath != "" {
		cfg.Args = append(cfg.Args, "--config", opts.ConfigPath)
	}
	return cfg, nil
}

// NewWorkerServer wires the worker side: model back-ends and screenshot
// loading.
func NewWorkerServer(cfg *config.Config, log output.LoggerPort) *worker.Server {
	return worker.NewServer(llm.NewFactory(cfg.Env(), log), screenshot.Load, log)
}
