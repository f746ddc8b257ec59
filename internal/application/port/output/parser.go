package output

import "screen-agent/internal/domain/entity"

type ActionParser interface {
	ParseAction(prompt []entity.Message, raw string) (*entity.Action, error)
}

type PlanParser interface {
	ParsePlan(prompt []entity.Message, raw string) (*entity.Plan, error)
}
