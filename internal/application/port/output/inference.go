package output

import (
	"context"

	"screen-agent/internal/domain/entity"
)

type InferencePort interface {
	Invoke(ctx context.Context, req InferenceRequest) (*InferenceResult, error)
}

type InferenceRequest struct {
	System   string
	User     string
	Payloads []entity.ContentPart
}

type InferenceResult struct {
	Messages []entity.Message
	Text     string
}
