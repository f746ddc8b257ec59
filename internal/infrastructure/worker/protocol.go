package worker

import "screen-agent/internal/domain/entity"

// Request is the single JSON document a worker reads from stdin.
type Request struct {
	ID       string             `json:"id"`
	Model    entity.ModelConfig `json:"model"`
	Messages []entity.Message   `json:"messages"`
}

// Response is the single JSON document a worker writes to stdout. Exactly one
// of Text or Error is meaningful.
type Response struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}
