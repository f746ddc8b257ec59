package entity

import "fmt"

// Plan is the planner's answer for one task: ordered subtasks plus the
// reasoning that produced them. Read-only after creation.
type Plan struct {
	Prompt    []Message  `json:"prompt"`
	Raw       string     `json:"raw"`
	Reasoning *Reasoning `json:"reasoning,omitempty"`
	Steps     []string   `json:"steps"`
}

func (p *Plan) String() string {
	return fmt.Sprintf("\nModel Reasoning: %s\n---\nProvided steps: %q\n", p.Reasoning, p.Steps)
}
