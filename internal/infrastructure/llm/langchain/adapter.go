package langchain

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
)

var _ output.GenerationPort = (*Adapter)(nil)

// Adapter runs generation against an Ollama server through langchaingo.
type Adapter struct {
	llm    llms.Model
	http   *http.Client
	model  entity.ModelConfig
	logger output.LoggerPort
}

func New(model entity.ModelConfig, logger output.LoggerPort) (*Adapter, error) {
	httpClient := &http.Client{}
	opts := []ollama.Option{
		ollama.WithModel(model.Name),
		ollama.WithHTTPClient(httpClient),
	}
	if model.Endpoint != "" {
		opts = append(opts, ollama.WithServerURL(model.Endpoint))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &Adapter{
		llm:    llm,
		http:   httpClient,
		model:  model,
		logger: logger,
	}, nil
}

func (a *Adapter) Generate(ctx context.Context, req output.GenerationRequest) (string, error) {
	content, err := convertMessages(req.Messages, req.Images)
	if err != nil {
		return "", err
	}

	out, err := a.llm.GenerateContent(ctx, content,
		llms.WithMaxTokens(a.model.MaxTokens),
		llms.WithTemperature(a.model.Temperature),
		llms.WithTopP(a.model.TopP),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	a.logger.Debug("Completion received", "stopReason", out.Choices[0].StopReason)
	return out.Choices[0].Content, nil
}

func (a *Adapter) Close() error {
	a.http.CloseIdleConnections()
	a.llm = nil
	return nil
}

func convertMessages(messages []entity.Message, images map[string]output.Image) ([]llms.MessageContent, error) {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role, err := convertRole(msg.Role)
		if err != nil {
			return nil, err
		}
		mc := llms.MessageContent{Role: role}

		if len(msg.Parts) == 0 {
			mc.Parts = []llms.ContentPart{llms.TextPart(msg.Text)}
			result = append(result, mc)
			continue
		}

		for _, part := range msg.Parts {
			switch part.Type {
			case entity.CapabilityImage:
				img, ok := images[part.Value]
				if !ok {
					return nil, fmt.Errorf("image %s was not loaded", part.Value)
				}
				mc.Parts = append(mc.Parts, llms.BinaryPart(img.MIMEType, img.Data))
			case entity.CapabilityText:
				mc.Parts = append(mc.Parts, llms.TextPart(part.Value))
			default:
				return nil, fmt.Errorf("unsupported content type %q", part.Type)
			}
		}
		result = append(result, mc)
	}
	return result, nil
}

func convertRole(role entity.MessageRole) (llms.ChatMessageType, error) {
	switch role {
	case entity.RoleSystem:
		return llms.ChatMessageTypeSystem, nil
	case entity.RoleUser:
		return llms.ChatMessageTypeHuman, nil
	case entity.RoleAssistant:
		return llms.ChatMessageTypeAI, nil
	default:
		return "", fmt.Errorf("unknown message role %q", role)
	}
}
