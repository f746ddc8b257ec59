package openaicompat

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
)

var _ output.GenerationPort = (*Adapter)(nil)

// Adapter talks to an OpenAI-compatible chat endpoint (vLLM, TGI) serving a
// vision-language model.
type Adapter struct {
	client *openai.Client
	http   *http.Client
	model  entity.ModelConfig
	logger output.LoggerPort
}

type Config struct {
	APIKey string
	Model  entity.ModelConfig
	Logger output.LoggerPort
}

// placeholderKey is accepted by self-hosted servers started without --api-key.
const placeholderKey = "EMPTY"

func New(cfg Config) *Adapter {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = placeholderKey
	}

	config := openai.DefaultConfig(apiKey)
	if cfg.Model.Endpoint != "" {
		config.BaseURL = cfg.Model.Endpoint
	}

	// Grounding tags are special tokens; servers strip them unless told not to.
	var transport http.RoundTripper = &extraBodyTransport{
		base:   http.DefaultTransport,
		fields: map[string]any{"skip_special_tokens": cfg.Model.SkipSpecialTokens},
	}
	if cfg.Logger != nil {
		transport = &loggingTransport{base: transport, logger: cfg.Logger}
	}
	httpClient := &http.Client{Transport: transport}
	config.HTTPClient = httpClient

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		http:   httpClient,
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (a *Adapter) Generate(ctx context.Context, req output.GenerationRequest) (string, error) {
	messages, err := convertMessages(req.Messages, req.Images)
	if err != nil {
		return "", err
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model.Name,
		Messages:    messages,
		MaxTokens:   a.model.MaxTokens,
		Temperature: float32(a.model.Temperature),
		TopP:        float32(a.model.TopP),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	if a.logger != nil {
		a.logger.Debug("Completion received",
			"finishReason", resp.Choices[0].FinishReason,
			"promptTokens", resp.Usage.PromptTokens,
			"completionTokens", resp.Usage.CompletionTokens)
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Adapter) Close() error {
	a.http.CloseIdleConnections()
	return nil
}

func convertMessages(messages []entity.Message, images map[string]output.Image) ([]openai.ChatCompletionMessage, error) {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{Role: string(msg.Role)}

		if len(msg.Parts) == 0 {
			oaiMsg.Content = msg.Text
			result = append(result, oaiMsg)
			continue
		}

		for _, part := range msg.Parts {
			switch part.Type {
			case entity.CapabilityImage:
				img, ok := images[part.Value]
				if !ok {
					return nil, fmt.Errorf("image %s was not loaded", part.Value)
				}
				oaiMsg.MultiContent = append(oaiMsg.MultiContent, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURL(img),
						Detail: openai.ImageURLDetailAuto,
					},
				})
			case entity.CapabilityText:
				oaiMsg.MultiContent = append(oaiMsg.MultiContent, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: part.Value,
				})
			default:
				return nil, fmt.Errorf("unsupported content type %q", part.Type)
			}
		}

		result = append(result, oaiMsg)
	}
	return result, nil
}

func dataURL(img output.Image) string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
