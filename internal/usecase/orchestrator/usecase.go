package orchestrator

import (
	"context"
	"fmt"

	"screen-agent/internal/application/port/input"
	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
	"screen-agent/internal/usecase/planner"
	"screen-agent/internal/usecase/resolver"
)

var _ input.TaskExecutor = (*UseCase)(nil)

type Planner interface {
	Plan(ctx context.Context, req planner.PlanRequest) (*entity.Plan, error)
}

type Resolver interface {
	Resolve(ctx context.Context, req resolver.ResolveRequest) (*entity.Action, error)
}

// StepError reports the plan step a task stopped at.
type StepError struct {
	Index int
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d %q: %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// UseCase plans a task once and resolves its steps strictly in order into a
// single History.
type UseCase struct {
	planner  Planner
	resolver Resolver
	logger   output.LoggerPort
}

func New(planner Planner, resolver Resolver, logger output.LoggerPort) *UseCase {
	return &UseCase{
		planner:  planner,
		resolver: resolver,
		logger:   logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req input.TaskRequest) (*input.TaskResult, error) {
	history := entity.NewHistory()
	log := uc.logger.WithField("history", history.ID)
	log.Info("Executing task", "task", req.Task)

	plan, err := uc.planner.Plan(ctx, planner.PlanRequest{
		Task:            req.Task,
		Context:         req.Context,
		TaskDescription: req.TaskDescription,
		Screenshot:      req.Screenshot,
	})
	if err != nil {
		return nil, fmt.Errorf("plan task: %w", err)
	}

	steps := plan.Steps
	if req.MaxSteps > 0 && len(steps) > req.MaxSteps {
		log.Info("Limiting plan", "steps", len(steps), "maxSteps", req.MaxSteps)
		steps = steps[:req.MaxSteps]
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, &StepError{Index: i, Step: step, Err: err}
		}

		log.Info("Resolving step", "index", i+1, "of", len(steps), "step", step)
		_, err := uc.resolver.Resolve(ctx, resolver.ResolveRequest{
			Subtask:         step,
			History:         history,
			Task:            req.Task,
			Plan:            plan,
			Context:         req.Context,
			TaskDescription: req.TaskDescription,
			Screenshot:      req.Screenshot,
		})
		if err != nil {
			log.Error("Step failed", "index", i+1, "error", err)
			return nil, &StepError{Index: i, Step: step, Err: err}
		}
	}

	log.Info("Task resolved", "actions", history.Len())
	return &input.TaskResult{
		Plan:    plan,
		History: history,
		Steps:   len(steps),
	}, nil
}
