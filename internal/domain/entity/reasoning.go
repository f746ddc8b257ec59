package entity

import (
	"fmt"
	"strings"
)

type ReasoningSection struct {
	Label      string   `json:"label"`
	Statements []string `json:"statements"`
}

// Reasoning is a model's chain of thought. Exactly one of Statements
// (flat list) or Sections (labelled bullet lists) is set.
type Reasoning struct {
	Statements []string           `json:"statements,omitempty"`
	Sections   []ReasoningSection `json:"sections,omitempty"`
}

func (r *Reasoning) IsEmpty() bool {
	return r == nil || (len(r.Statements) == 0 && len(r.Sections) == 0)
}

// Map returns the sections keyed by label. A repeated label keeps its last
// statements, matching the order they were written in.
func (r *Reasoning) Map() map[string][]string {
	if r == nil {
		return nil
	}
	out := make(map[string][]string, len(r.Sections))
	for _, s := range r.Sections {
		out[s.Label] = s.Statements
	}
	return out
}

func (r *Reasoning) String() string {
	if r.IsEmpty() {
		return "None"
	}
	var b strings.Builder
	if len(r.Sections) > 0 {
		for i, s := range r.Sections {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%d. %s", i+1, s.Label)
			for _, st := range s.Statements {
				b.WriteString("\n- ")
				b.WriteString(st)
			}
		}
		return b.String()
	}
	for i, st := range r.Statements {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, st)
	}
	return b.String()
}
