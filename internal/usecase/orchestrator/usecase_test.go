package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screen-agent/internal/application/port/input"
	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
	"screen-agent/internal/infrastructure/logger"
	"screen-agent/internal/infrastructure/parser"
	"screen-agent/internal/usecase/planner"
	"screen-agent/internal/usecase/resolver"
)

type fakePlanner struct {
	plan *entity.Plan
	err  error
}

func (f *fakePlanner) Plan(context.Context, planner.PlanRequest) (*entity.Plan, error) {
	return f.plan, f.err
}

type fakeResolver struct {
	failAt   int
	cancel   context.CancelFunc
	subtasks []string
}

func (f *fakeResolver) Resolve(_ context.Context, req resolver.ResolveRequest) (*entity.Action, error) {
	f.subtasks = append(f.subtasks, req.Subtask)
	if f.failAt > 0 && len(f.subtasks) == f.failAt {
		return nil, entity.ErrWorkerFailed
	}
	if f.cancel != nil {
		f.cancel()
	}
	action, err := entity.NewAction(entity.ActionParams{Name: "click", Target: req.Subtask})
	if err != nil {
		return nil, err
	}
	req.History.Append(action, entity.ResultPending)
	return action, nil
}

func threeSteps() *entity.Plan {
	return &entity.Plan{Steps: []string{"Open mail", "Read mail", "Reply"}}
}

func TestExecute(t *testing.T) {
	res := &fakeResolver{}
	uc := New(&fakePlanner{plan: threeSteps()}, res, logger.NewNop())

	result, err := uc.Execute(context.Background(), input.TaskRequest{Task: "Answer the mail"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, []string{"Open mail", "Read mail", "Reply"}, res.subtasks)
	require.Equal(t, 3, result.History.Len())
	for i, e := range result.History.Executions() {
		assert.Equal(t, res.subtasks[i], e.Action.Target)
		assert.Equal(t, entity.ResultPending, e.Result)
	}
}

func TestExecute_MaxSteps(t *testing.T) {
	res := &fakeResolver{}
	uc := New(&fakePlanner{plan: threeSteps()}, res, logger.NewNop())

	result, err := uc.Execute(context.Background(), input.TaskRequest{Task: "t", MaxSteps: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, []string{"Open mail"}, res.subtasks)
	assert.Len(t, result.Plan.Steps, 3)
}

func TestExecute_PlanError(t *testing.T) {
	res := &fakeResolver{}
	uc := New(&fakePlanner{err: entity.ErrNoSteps}, res, logger.NewNop())

	result, err := uc.Execute(context.Background(), input.TaskRequest{Task: "t"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, entity.ErrNoSteps)
	assert.Empty(t, res.subtasks)
}

func TestExecute_StepErrorAborts(t *testing.T) {
	res := &fakeResolver{failAt: 2}
	uc := New(&fakePlanner{plan: threeSteps()}, res, logger.NewNop())

	result, err := uc.Execute(context.Background(), input.TaskRequest{Task: "t"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, entity.ErrWorkerFailed)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, "Read mail", stepErr.Step)
	assert.Contains(t, err.Error(), `step 2 "Read mail"`)
	assert.Equal(t, []string{"Open mail", "Read mail"}, res.subtasks)
}

func TestExecute_CanceledBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	res := &fakeResolver{cancel: cancel}
	uc := New(&fakePlanner{plan: threeSteps()}, res, logger.NewNop())

	_, err := uc.Execute(ctx, input.TaskRequest{Task: "t"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"Open mail"}, res.subtasks)
}

type scriptedInvoker struct {
	texts []string
}

func (s *scriptedInvoker) Invoke(_ context.Context, req output.InferenceRequest) (*output.InferenceResult, error) {
	text := s.texts[0]
	s.texts = s.texts[1:]
	return &output.InferenceResult{Messages: []entity.Message{{Role: entity.RoleUser, Text: req.User}}, Text: text}, nil
}

func TestExecute_EndToEnd(t *testing.T) {
	log := logger.NewNop()
	plannerModel := &scriptedInvoker{texts: []string{
		`<|steps_begin|>Open the browser, Navigate to "www.example.com"<|steps_end|>`,
	}}
	actionModel := &scriptedInvoker{texts: []string{
		"<|action_begin|>click<|action_end|><|object_ref_begin|>Firefox icon<|object_ref_end|>",
		"<|action_begin|>type<|action_end|><|object_ref_begin|>address bar<|object_ref_end|>",
	}}
	groundingModel := &scriptedInvoker{texts: []string{
		"<|box_start|>(10,10),(30,50)<|box_end|>",
		"<|box_start|>(100,20),(300,40)<|box_end|>",
	}}

	uc := New(
		planner.New(plannerModel, parser.NewPlanParser(), log),
		resolver.New(actionModel, groundingModel,
			parser.NewActionParser(parser.DialectTagged),
			parser.NewActionParser(parser.DialectBracketed), log),
		log,
	)

	result, err := uc.Execute(context.Background(), input.TaskRequest{Task: "Visit example.com", Screenshot: "screen.png"})
	require.NoError(t, err)

	executions := result.History.Executions()
	require.Len(t, executions, 2)

	assert.Equal(t, "click", executions[0].Action.Name)
	assert.Equal(t, "Firefox icon", executions[0].Action.Target)
	assert.Equal(t, entity.NewPoint(entity.Point{X: 20, Y: 30}), executions[0].Action.Coords)

	assert.Equal(t, "type", executions[1].Action.Name)
	assert.Equal(t, "address bar", executions[1].Action.Target)
	assert.Equal(t, entity.NewPoint(entity.Point{X: 200, Y: 30}), executions[1].Action.Coords)

	for _, e := range executions {
		assert.Equal(t, entity.ResultPending, e.Result)
	}
}
