package console

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screen-agent/internal/domain/entity"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestPresenter_ShowPlan(t *testing.T) {
	var out bytes.Buffer
	plan := &entity.Plan{
		Steps: []string{"Open the browser", "Navigate to example.com"},
		Reasoning: &entity.Reasoning{Sections: []entity.ReasoningSection{
			{Label: "Screen", Statements: []string{"Desktop"}},
		}},
	}

	NewPresenter(&out).ShowPlan(plan)

	assert.Contains(t, out.String(), "Plan: 2 steps")
	assert.Contains(t, out.String(), "   1. Screen\n   - Desktop")
	assert.Contains(t, out.String(), " 2. Navigate to example.com")
}

func TestPresenter_ShowHistory(t *testing.T) {
	located, err := entity.NewAction(entity.ActionParams{Name: "click", Target: "Submit", Coords: entity.NewPoint(entity.Point{X: 34, Y: 56})})
	require.NoError(t, err)
	lost, err := entity.NewAction(entity.ActionParams{Target: "menu"})
	require.NoError(t, err)

	history := entity.NewHistory()
	history.Append(located, entity.ResultPending)
	history.Append(lost, entity.ResultPending)

	var out bytes.Buffer
	NewPresenter(&out).ShowHistory(history)

	s := out.String()
	assert.Contains(t, s, "Actions: 2")
	assert.Contains(t, s, " 1. click → Submit\n    at (34, 56)\n    PENDING")
	assert.Contains(t, s, " 2. (no action) → menu\n    location not found")
}
