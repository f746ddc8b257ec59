package entity

import (
	"fmt"
	"strings"
)

// Action is one proposed UI interaction. It is built once by a parser and
// treated as read-only after it has been appended to a History.
type Action struct {
	Prompt    []Message  `json:"prompt"`
	Raw       string     `json:"raw"`
	Name      string     `json:"action,omitempty"`
	Target    string     `json:"action_target,omitempty"`
	Reasoning *Reasoning `json:"reasoning,omitempty"`
	Coords    *Coords    `json:"coords,omitempty"`
	Key       string     `json:"key,omitempty"`
}

type ActionParams struct {
	Prompt    []Message
	Raw       string
	Name      string
	Target    string
	Reasoning *Reasoning
	Coords    *Coords
	Key       string
}

func NewAction(p ActionParams) (*Action, error) {
	if p.Coords != nil && p.Key != "" {
		return nil, ErrCoordsAndKey
	}
	return &Action{
		Prompt:    CloneMessages(p.Prompt),
		Raw:       p.Raw,
		Name:      p.Name,
		Target:    p.Target,
		Reasoning: p.Reasoning,
		Coords:    p.Coords,
		Key:       p.Key,
	}, nil
}

// WithIntent returns a copy of a that carries the given action name and
// target. Used to put the intent of one model onto the location found by
// another.
func (a *Action) WithIntent(name, target string) *Action {
	merged := *a
	merged.Prompt = CloneMessages(a.Prompt)
	merged.Name = name
	merged.Target = target
	return &merged
}

func (a *Action) describe() string {
	var fields []string
	for _, f := range []string{a.Name, a.Target, a.Key, a.Coords.String()} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return strings.Join(fields, " ")
}

func (a *Action) String() string {
	return fmt.Sprintf("\nModel Reasoning: %s\n---\nProvided action: %s\n", a.Reasoning, a.describe())
}

// Extended includes the prompt and raw output, for debug logs.
func (a *Action) Extended() string {
	return fmt.Sprintf("\nPrompt: %v\n---\nRaw Output: %s\n---\nModel Reasoning: %s\n---\nProvided action: %s\n",
		a.Prompt, a.Raw, a.Reasoning, a.describe())
}
