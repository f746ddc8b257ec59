package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*Adapter, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Adapter{sugar: zap.New(core).Sugar()}, logs
}

func TestAdapter_KeyValueArgs(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)

	l.Info("plan ready", "steps", 2, "task", "login")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "plan ready", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, int64(2), entry.ContextMap()["steps"])
	assert.Equal(t, "login", entry.ContextMap()["task"])
}

func TestAdapter_FieldsAndName(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)

	child := l.Named("resolver").WithField("step", 1).WithFields(map[string]any{"history": "abc"})
	child.Warn("grounding returned no box")
	l.Debug("root")

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "resolver", first.LoggerName)
	assert.Equal(t, int64(1), first.ContextMap()["step"])
	assert.Equal(t, "abc", first.ContextMap()["history"])
	assert.Empty(t, logs.All()[1].ContextMap(), "parent logger must not gain fields")
}

func TestAdapter_LevelFilter(t *testing.T) {
	l, logs := observed(zapcore.WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	l.Error("shown")

	assert.Equal(t, 1, logs.Len())
}

func TestNew_WritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "agent.log")
	cfg := DefaultConfig()
	cfg.File = file
	cfg.Format = "json"

	l, err := New(cfg, zapcore.AddSync(&console))
	require.NoError(t, err)

	l.Info("hello", "k", "v")
	require.NoError(t, l.Close())

	assert.Contains(t, console.String(), `"msg":"hello"`)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "screen-agent", entry["logger"])
}

func TestNew_BadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	cfg.File = ""

	_, err := New(cfg, zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)
}
