package output

import (
	"context"

	"screen-agent/internal/domain/entity"
)

// GenerationPort is a loaded model inside the inference worker. Generate
// turns one prompt into decoded text; Close releases everything the model holds.
type GenerationPort interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	Close() error
}

// GenerationRequest carries the prompt with image payloads already loaded.
type GenerationRequest struct {
	Messages []entity.Message
	Images   map[string]Image
}

// Image is an encoded image keyed in GenerationRequest.Images by the payload
// value (the screenshot path) it was loaded from.
type Image struct {
	Data     []byte
	MIMEType string
}

// GenerationFactory builds the back-end for a model. Called once per worker.
type GenerationFactory func(ctx context.Context, cfg entity.ModelConfig) (GenerationPort, error)
