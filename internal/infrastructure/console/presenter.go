package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"screen-agent/internal/domain/entity"
)

// Presenter prints task results for a person at a terminal.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) ShowPlan(plan *entity.Plan) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(p.out, "\n━━━ Plan: %d steps ━━━\n", len(plan.Steps))

	if !plan.Reasoning.IsEmpty() {
		dim := color.New(color.Faint)
		dim.Fprintln(p.out, indent(plan.Reasoning.String(), "   "))
	}

	for i, step := range plan.Steps {
		fmt.Fprintf(p.out, "%2d. %s\n", i+1, step)
	}
}

func (p *Presenter) ShowHistory(history *entity.History) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(p.out, "\n━━━ Actions: %d ━━━\n", history.Len())

	for i, e := range history.Executions() {
		p.showExecution(i+1, e)
	}
}

func (p *Presenter) showExecution(n int, e entity.ActionExecution) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(p.out, "%2d. %s", n, orNone(e.Action.Name))
	if e.Action.Target != "" {
		fmt.Fprintf(p.out, " → %s", e.Action.Target)
	}
	fmt.Fprintln(p.out)

	if point, ok := e.Action.Coords.Resolve(); ok {
		fmt.Fprintf(p.out, "    at %s\n", point)
	} else {
		red := color.New(color.FgRed)
		red.Fprintln(p.out, "    location not found")
	}

	resultColor(e.Result).Fprintf(p.out, "    %s\n", e.Result)
}

func resultColor(r entity.ActionResult) *color.Color {
	switch r {
	case entity.ResultSuccess:
		return color.New(color.FgGreen)
	case entity.ResultFail:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(no action)"
	}
	return s
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
