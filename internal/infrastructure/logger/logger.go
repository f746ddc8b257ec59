package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
	// File enables a rotated JSON log next to the console output.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Service    string `mapstructure:"service"`
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		File:       filepath.Join("log", "agent.log"),
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Service:    "screen-agent",
	}
}

// New builds a logger writing to console and, when cfg.File is set, to a
// rotated JSON file.
func New(cfg Config, console zapcore.WriteSyncer) (*Adapter, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder(cfg.Format), console, level)}

	var closer io.Closer
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder("json"), zapcore.AddSync(rotated), level))
		closer = rotated
	}

	base := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
	if cfg.Service != "" {
		base = base.Named(cfg.Service)
	}
	return &Adapter{sugar: base.Sugar(), closer: closer}, nil
}

// NewStderr is the logger of the inference worker. stdout carries the
// worker's response, so nothing may be logged there.
func NewStderr(level string) (*Adapter, error) {
	return New(Config{Level: level, Format: "json", Service: "worker"}, zapcore.Lock(os.Stderr))
}

func NewNop() *Adapter {
	return &Adapter{sugar: zap.NewNop().Sugar()}
}

func encoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	if format == "console" {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}
