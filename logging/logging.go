package logging

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bdpiprava/elastickit/internal"
)

// Key is a type for context key
type Key string

const (
	loggerKey Key = "elastickit-logger"
)

// configRoot is the root of logger config
type configRoot struct {
	LogLevel string `yaml:"log_level"` // LogLevel is the log level
}

var baseLogger = logrus.NewEntry(logrus.New())

func init() {
	config, err := internal.ReadConfigAs[configRoot]()
	if err != nil {
		baseLogger.WithError(err).Debug("failed to read log config, initializing with default")
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	baseLogger.Logger.SetLevel(level)
}

// SetLogLevel sets the level of the base logger
func SetLogLevel(level logrus.Level) {
	baseLogger.Logger.SetLevel(level)
}

// Base returns the base logger
func Base() logrus.FieldLogger {
	return baseLogger
}

// WithLogger returns a copy of ctx carrying the given logger
func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger from the context, falls back to the base logger
func FromContext(ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return baseLogger
	}
	if logger, ok := ctx.Value(loggerKey).(logrus.FieldLogger); ok && logger != nil {
		return logger
	}
	return baseLogger
}
