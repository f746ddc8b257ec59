package planner

import (
	"context"
	"fmt"
	"strings"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
	"screen-agent/internal/infrastructure/prompts"
)

type PlanRequest struct {
	Task            string
	Context         string
	TaskDescription string
	// Screenshot is the path of the current screen image; may be empty.
	Screenshot string
}

type UseCase struct {
	invoker output.InferencePort
	parser  output.PlanParser
	logger  output.LoggerPort
}

func New(invoker output.InferencePort, parser output.PlanParser, logger output.LoggerPort) *UseCase {
	return &UseCase{
		invoker: invoker,
		parser:  parser,
		logger:  logger,
	}
}

func (uc *UseCase) Plan(ctx context.Context, req PlanRequest) (*entity.Plan, error) {
	system, err := prompts.PlannerSystem(prompts.PlannerSystemData{Context: req.Context})
	if err != nil {
		return nil, err
	}
	user, err := prompts.PlannerUser(prompts.PlannerUserData{Task: req.Task, TaskDescription: req.TaskDescription})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Planning task", "task", req.Task)

	res, err := uc.invoker.Invoke(ctx, output.InferenceRequest{
		System:   system,
		User:     user,
		Payloads: ScreenshotPayloads(req.Screenshot),
	})
	if err != nil {
		return nil, fmt.Errorf("planner inference: %w", err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, fmt.Errorf("planner: %w", entity.ErrEmptyGeneration)
	}

	plan, err := uc.parser.ParsePlan(res.Messages, res.Text)
	if err != nil {
		uc.logger.Warn("Planner output has no usable steps", "raw", res.Text)
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	uc.logger.Info("Plan ready", "steps", len(plan.Steps))
	uc.logger.Debug("Plan", "plan", plan.String())
	return plan, nil
}

// ScreenshotPayloads wraps a screenshot path as an image payload.
func ScreenshotPayloads(path string) []entity.ContentPart {
	if path == "" {
		return nil
	}
	return []entity.ContentPart{{Type: entity.CapabilityImage, Value: path}}
}
