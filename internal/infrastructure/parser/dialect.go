package parser

import (
	"fmt"
	"strings"

	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
)

// Dialect selects how the action name and its target are read from model
// output.
type Dialect int

const (
	// DialectTagged reads the name from the action pair and the target from
	// the object_ref pair.
	DialectTagged Dialect = iota
	// DialectBracketed reads "name [target]" from a single action pair, with
	// the bracketed target either inside the pair or right after it.
	DialectBracketed
)

func (d Dialect) String() string {
	switch d {
	case DialectTagged:
		return "tagged"
	case DialectBracketed:
		return "bracketed"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tagged":
		return DialectTagged, nil
	case "bracketed":
		return DialectBracketed, nil
	default:
		return 0, fmt.Errorf("unknown parser dialect %q", s)
	}
}

var _ output.ActionParser = (*ActionParser)(nil)

type ActionParser struct {
	dialect Dialect
}

func NewActionParser(d Dialect) *ActionParser {
	return &ActionParser{dialect: d}
}

func (p *ActionParser) Dialect() Dialect {
	return p.dialect
}

// ParseAction builds an Action from raw model output. Missing tags leave the
// matching fields empty; only an inconsistent result is an error.
func (p *ActionParser) ParseAction(prompt []entity.Message, raw string) (*entity.Action, error) {
	params := entity.ActionParams{Prompt: prompt, Raw: raw}

	switch p.dialect {
	case DialectBracketed:
		params.Name, params.Target = parseBracketed(raw)
	default:
		params.Name, _ = Extract(raw, TagAction)
		params.Target, _ = Extract(raw, TagObjectRef)
	}

	if text, ok := Extract(raw, TagContextAnalysis); ok {
		params.Reasoning = ParseReasoning(text, false)
	}
	if box, ok := Extract(raw, TagBox); ok {
		params.Coords = ParseBox(box)
	}

	action, err := entity.NewAction(params)
	if err != nil {
		return nil, &ParseError{Kind: "action", Raw: raw, Err: err}
	}
	return action, nil
}

func parseBracketed(raw string) (name, target string) {
	content, rest, ok := extractWithRest(raw, TagAction)
	if ok {
		if i := strings.Index(content, "["); i >= 0 {
			name = strings.TrimSpace(content[:i])
			target = bracketContent(content[i:])
		} else {
			name = content
			if trimmed := strings.TrimLeft(rest, " \t"); strings.HasPrefix(trimmed, "[") {
				target = bracketContent(trimmed)
			}
		}
	}
	if target == "" {
		target, _ = Extract(raw, TagObjectRef)
	}
	return name, target
}

// bracketContent returns what sits between a leading "[" and its "]". An
// unterminated bracket takes the rest of the line.
func bracketContent(s string) string {
	s = strings.TrimPrefix(s, "[")
	if end := strings.Index(s, "]"); end >= 0 {
		return strings.TrimSpace(s[:end])
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[:nl]
	}
	return strings.TrimSpace(s)
}
