package input

import (
	"context"

	"screen-agent/internal/domain/entity"
)

type TaskRequest struct {
	Task            string
	Context         string
	TaskDescription string
	Screenshot      string
	// MaxSteps limits how many plan steps are resolved; 0 means all.
	MaxSteps int
}

type TaskResult struct {
	Plan    *entity.Plan
	History *entity.History
	Steps   int
}

type TaskExecutor interface {
	Execute(ctx context.Context, req TaskRequest) (*TaskResult, error)
}
