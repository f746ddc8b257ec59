package entity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// History is the append-only execution record of one task. The orchestration
// loop owns the single instance and passes it by pointer; it must not be copied.
type History struct {
	ID string

	mu         sync.RWMutex
	actions    []*Action
	executions []ActionExecution
}

func NewHistory() *History {
	return &History{ID: uuid.NewString()}
}

// Append records action with result. It is not idempotent: appending the
// same step twice produces two entries.
func (h *History) Append(action *Action, result ActionResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actions = append(h.actions, action)
	h.executions = append(h.executions, ActionExecution{Action: action, Result: result})
}

// UpdateResult replaces the result of entry index. It exists for the
// component that actually performs actions; the agent itself only appends
// PENDING entries.
func (h *History) UpdateResult(index int, result ActionResult) error {
	if !result.Valid() {
		return fmt.Errorf("invalid result %q", string(result))
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if index < 0 || index >= len(h.executions) {
		return fmt.Errorf("%w: %d (len %d)", ErrResultIndex, index, len(h.executions))
	}
	h.executions[index].Result = result
	return nil
}

// LastResult returns the result of the newest entry, or ResultNone.
func (h *History) LastResult() ActionResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.executions) == 0 {
		return ResultNone
	}
	return h.executions[len(h.executions)-1].Result
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.executions)
}

func (h *History) Actions() []*Action {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*Action(nil), h.actions...)
}

func (h *History) Executions() []ActionExecution {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]ActionExecution(nil), h.executions...)
}

func (h *History) String() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	lines := make([]string, len(h.executions))
	for i, e := range h.executions {
		lines[i] = fmt.Sprintf("Executed %s with result %s", e.Action, e.Result)
	}
	return strings.Join(lines, "\n")
}
