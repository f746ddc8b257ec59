package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

type PlannerSystemData struct {
	Context string
}

type PlannerUserData struct {
	Task            string
	TaskDescription string
}

type ActionUserData struct {
	Task            string
	Steps           []string
	PlanReasoning   fmt.Stringer
	History         fmt.Stringer
	LastResult      fmt.Stringer
	TaskDescription string
	Context         string
	Subtask         string
}

// Render executes baseTemplate with data.
func Render(name, baseTemplate string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", fmt.Errorf("parse %s prompt: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}

	return buf.String(), nil
}

func PlannerSystem(data PlannerSystemData) (string, error) {
	return Render("planner", PlannerSystemPrompt, data)
}

func PlannerUser(data PlannerUserData) (string, error) {
	return Render("planner_user", PlannerUserPrompt, data)
}

func ActionSystem() string {
	return ActionSystemPrompt
}

func ActionUser(data ActionUserData) (string, error) {
	return Render("action_user", ActionUserPrompt, actionView{
		ActionUserData: data,
		Steps:          quoteList(data.Steps),
	})
}

func Grounding(target string) string {
	return fmt.Sprintf(GroundingQuestion, target)
}

// actionView shadows Steps with its rendered form.
type actionView struct {
	ActionUserData
	Steps string
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
