package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ContentPart is one typed element of a multi-part user message. Type is the
// capability the part requires from the model ("image", "text").
type ContentPart struct {
	Type  Capability `json:"type"`
	Value string     `json:"value"`
}

// Message is a role-tagged prompt message. System messages carry Text; the
// user message carries ordered Parts.
type Message struct {
	Role  MessageRole   `json:"role"`
	Text  string        `json:"text,omitempty"`
	Parts []ContentPart `json:"parts,omitempty"`
}

func CloneMessages(messages []Message) []Message {
	if messages == nil {
		return nil
	}
	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = m
		if m.Parts != nil {
			out[i].Parts = append([]ContentPart(nil), m.Parts...)
		}
	}
	return out
}
