package entity

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAction(t *testing.T, name string) *Action {
	t.Helper()
	action, err := NewAction(ActionParams{Name: name, Target: name + " target", Raw: name})
	require.NoError(t, err)
	return action
}

func TestHistory_EmptyLastResult(t *testing.T) {
	h := NewHistory()

	assert.Equal(t, ResultNone, h.LastResult())
	assert.Equal(t, "None", h.LastResult().String())
	assert.Zero(t, h.Len())
	assert.Empty(t, h.String())
	assert.NotEmpty(t, h.ID)
}

func TestHistory_AppendPreservesOrder(t *testing.T) {
	h := NewHistory()
	results := []ActionResult{ResultPending, ResultFail, ResultSuccess, ResultPending}

	for i, r := range results {
		h.Append(newTestAction(t, fmt.Sprintf("a%d", i)), r)
		assert.Equal(t, r, h.LastResult())
	}

	actions := h.Actions()
	executions := h.Executions()
	require.Len(t, actions, len(results))
	require.Len(t, executions, len(results))
	for i := range results {
		assert.Equal(t, fmt.Sprintf("a%d", i), actions[i].Name)
		assert.Same(t, actions[i], executions[i].Action)
		assert.Equal(t, results[i], executions[i].Result)
	}
}

func TestHistory_AppendIsNotIdempotent(t *testing.T) {
	h := NewHistory()
	a := newTestAction(t, "click")

	h.Append(a, ResultPending)
	h.Append(a, ResultPending)

	assert.Equal(t, 2, h.Len())
}

func TestHistory_UpdateResult(t *testing.T) {
	h := NewHistory()
	h.Append(newTestAction(t, "first"), ResultPending)
	h.Append(newTestAction(t, "second"), ResultPending)

	require.NoError(t, h.UpdateResult(1, ResultSuccess))
	assert.Equal(t, ResultSuccess, h.LastResult())
	assert.Equal(t, ResultPending, h.Executions()[0].Result)

	assert.ErrorIs(t, h.UpdateResult(2, ResultFail), ErrResultIndex)
	assert.ErrorIs(t, h.UpdateResult(-1, ResultFail), ErrResultIndex)
	assert.Error(t, h.UpdateResult(0, ResultNone))
}

func TestHistory_String(t *testing.T) {
	h := NewHistory()
	h.Append(newTestAction(t, "click"), ResultPending)

	s := h.String()
	assert.Contains(t, s, "Executed ")
	assert.Contains(t, s, "Provided action: click click target")
	assert.Contains(t, s, "with result PENDING")
}

func TestHistory_ConcurrentReadersDuringUpdate(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 10; i++ {
		h.Append(newTestAction(t, "a"), ResultPending)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = h.UpdateResult(i, ResultSuccess)
		}(i)
		go func() {
			defer wg.Done()
			_ = h.String()
			_ = h.LastResult()
		}()
	}
	wg.Wait()

	for _, e := range h.Executions() {
		assert.Equal(t, ResultSuccess, e.Result)
	}
}
