package parser

import (
	"screen-agent/internal/application/port/output"
	"screen-agent/internal/domain/entity"
)

var _ output.PlanParser = (*PlanParser)(nil)

type PlanParser struct{}

func NewPlanParser() *PlanParser {
	return &PlanParser{}
}

// ParsePlan reads the reasoning and steps pairs. A plan without a single
// step is rejected.
func (p *PlanParser) ParsePlan(prompt []entity.Message, raw string) (*entity.Plan, error) {
	plan := &entity.Plan{
		Prompt: entity.CloneMessages(prompt),
		Raw:    raw,
	}
	if text, ok := Extract(raw, TagReasoning); ok {
		plan.Reasoning = ParseReasoning(text, true)
	}
	if content, ok := Extract(raw, TagSteps); ok {
		plan.Steps = ParseSteps(content)
	}
	if len(plan.Steps) == 0 {
		return nil, &ParseError{Kind: "plan", Raw: raw, Err: entity.ErrNoSteps}
	}
	return plan, nil
}
