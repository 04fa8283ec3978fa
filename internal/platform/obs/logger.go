package obs

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKeyType string

const loggerKey = loggerKeyType("logger")

var rootLogger = zap.NewNop()

// NewLogger builds the process logger and installs it as the root logger
// returned by From when a context carries none.
func NewLogger(level string, devMode bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("new logger: parse level %q: %w", level, err)
	}

	var cfg zap.Config
	if devMode {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("new logger: build: %w", err)
	}

	rootLogger = logger
	logger.Info("Logging initialized", zap.Bool("devmode", devMode), zap.Stringer("level", lvl))
	return logger, nil
}

// From returns the logger of the current context, if no logger is available, returns the root logger
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return rootLogger
	}
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		return rootLogger
	}
	return l
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = rootLogger
	}
	return context.WithValue(ctx, loggerKey, logger)
}

func SubFrom(ctx context.Context, name string) (*zap.Logger, context.Context) {
	logger := From(ctx).Named(name)
	return logger, WithLogger(ctx, logger)
}
