package prompts

import (
	_ "embed"
)

//go:embed planner.txt
var PlannerSystemPrompt string

//go:embed planner_user.txt
var PlannerUserPrompt string

//go:embed action.txt
var ActionSystemPrompt string

//go:embed action_user.txt
var ActionUserPrompt string

// GroundingQuestion asks a grounding model for the box of an element.
const GroundingQuestion = `In this UI screenshot, what is the position of the element corresponding to the command "%s" (with bbox)?`
