package logger

import (
	"io"

	"go.uber.org/zap"

	"screen-agent/internal/application/port/output"
)

var _ output.LoggerPort = (*Adapter)(nil)

// Adapter implements output.LoggerPort over a zap sugared logger. Args are
// alternating key/value pairs.
type Adapter struct {
	sugar  *zap.SugaredLogger
	closer io.Closer
}

func (l *Adapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *Adapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *Adapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *Adapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *Adapter) Named(component string) output.LoggerPort {
	return &Adapter{sugar: l.sugar.Named(component), closer: l.closer}
}

func (l *Adapter) WithField(key string, value any) output.LoggerPort {
	return &Adapter{sugar: l.sugar.With(key, value), closer: l.closer}
}

func (l *Adapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Adapter{sugar: l.sugar.With(args...), closer: l.closer}
}

// Close flushes buffered entries and closes the log file. Derived loggers
// share the file; close only the root one.
func (l *Adapter) Close() error {
	// Sync on a terminal stderr fails with EINVAL on some platforms.
	_ = l.sugar.Sync()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
