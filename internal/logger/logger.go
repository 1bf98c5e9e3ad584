package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	level  string
	output []string
}

// Option customizes NewLogger.
type Option func(*options)

// WithLevel overrides the environment's default level: debug, info, warn, error.
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// WithOutput redirects log output (e.g. to a file while a terminal UI owns stdout).
func WithOutput(paths ...string) Option {
	return func(o *options) { o.output = paths }
}

// NewLogger creates a zap logger for the given environment.
// prod uses JSON output, local/dev/docker use colored console output.
func NewLogger(env string, opts ...Option) (*zap.Logger, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if o.level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(o.level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", o.level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	if len(o.output) > 0 {
		cfg.OutputPaths = o.output
		cfg.ErrorOutputPaths = o.output
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
