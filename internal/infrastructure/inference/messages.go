package inference

import (
	"slices"

	"screen-agent/internal/domain/entity"
)

// BuildMessages assembles the prompt for one call: an optional system
// message, then a single user message holding the payloads the model can
// take, in order, followed by the user text. Payloads of other types are
// dropped.
func BuildMessages(system, user string, payloads []entity.ContentPart, caps []entity.Capability) []entity.Message {
	var messages []entity.Message
	if system != "" {
		messages = append(messages, entity.Message{Role: entity.RoleSystem, Text: system})
	}

	parts := make([]entity.ContentPart, 0, len(payloads)+1)
	for _, p := range payloads {
		if slices.Contains(caps, p.Type) {
			parts = append(parts, p)
		}
	}
	parts = append(parts, entity.ContentPart{Type: entity.CapabilityText, Value: user})

	return append(messages, entity.Message{Role: entity.RoleUser, Parts: parts})
}
