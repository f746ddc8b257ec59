package resolver

import (
	"context"
	"fmt"
	"strings"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
	"screen-agent/internal/infrastructure/prompts"
	"screen-agent/internal/usecase/planner"
)

type ResolveRequest struct {
	Subtask         string
	History         *entity.History
	Task            string
	Plan            *entity.Plan
	Context         string
	TaskDescription string
	Screenshot      string
}

// UseCase turns one plan step into a located action in two model calls:
// the action model decides what to do, the grounding model finds where.
type UseCase struct {
	action          output.InferencePort
	grounding       output.InferencePort
	actionParser    output.ActionParser
	groundingParser output.ActionParser
	logger          output.LoggerPort
}

func New(
	action output.InferencePort,
	grounding output.InferencePort,
	actionParser output.ActionParser,
	groundingParser output.ActionParser,
	logger output.LoggerPort,
) *UseCase {
	return &UseCase{
		action:          action,
		grounding:       grounding,
		actionParser:    actionParser,
		groundingParser: groundingParser,
		logger:          logger,
	}
}

// Resolve appends the resulting action to req.History as PENDING and
// returns it.
func (uc *UseCase) Resolve(ctx context.Context, req ResolveRequest) (*entity.Action, error) {
	intent, err := uc.decide(ctx, req)
	if err != nil {
		return nil, err
	}

	command := intent.Target
	if command == "" {
		uc.logger.Warn("Action model gave no target, grounding the subtask instead", "subtask", req.Subtask)
		command = req.Subtask
	}

	located, err := uc.locate(ctx, command, req.Screenshot)
	if err != nil {
		return nil, err
	}

	merged := located.WithIntent(intent.Name, intent.Target)
	if merged.Coords == nil {
		uc.logger.Warn("Grounding returned no coordinates", "target", command)
	}

	req.History.Append(merged, entity.ResultPending)
	uc.logger.Info("Action resolved", "action", merged.Name, "target", merged.Target, "coords", merged.Coords.String())
	return merged, nil
}

func (uc *UseCase) decide(ctx context.Context, req ResolveRequest) (*entity.Action, error) {
	user, err := prompts.ActionUser(prompts.ActionUserData{
		Task:            req.Task,
		Steps:           req.Plan.Steps,
		PlanReasoning:   req.Plan.Reasoning,
		History:         req.History,
		LastResult:      req.History.LastResult(),
		TaskDescription: req.TaskDescription,
		Context:         req.Context,
		Subtask:         req.Subtask,
	})
	if err != nil {
		return nil, err
	}

	res, err := uc.action.Invoke(ctx, output.InferenceRequest{
		System:   prompts.ActionSystem(),
		User:     user,
		Payloads: planner.ScreenshotPayloads(req.Screenshot),
	})
	if err != nil {
		return nil, fmt.Errorf("action inference: %w", err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, fmt.Errorf("action model: %w", entity.ErrEmptyGeneration)
	}

	intent, err := uc.actionParser.ParseAction(res.Messages, res.Text)
	if err != nil {
		return nil, fmt.Errorf("parse action: %w", err)
	}
	uc.logger.Debug("Action decided", "action", intent.Extended())
	return intent, nil
}

func (uc *UseCase) locate(ctx context.Context, command, screenshot string) (*entity.Action, error) {
	res, err := uc.grounding.Invoke(ctx, output.InferenceRequest{
		User:     prompts.Grounding(command),
		Payloads: planner.ScreenshotPayloads(screenshot),
	})
	if err != nil {
		return nil, fmt.Errorf("grounding inference: %w", err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, fmt.Errorf("grounding model: %w", entity.ErrEmptyGeneration)
	}

	located, err := uc.groundingParser.ParseAction(res.Messages, res.Text)
	if err != nil {
		return nil, fmt.Errorf("parse grounding: %w", err)
	}
	return located, nil
}
