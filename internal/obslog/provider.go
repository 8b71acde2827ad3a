package obslog

import (
	"os"

	"go.uber.org/zap"
)

// A process-wide zap logger configured from GO_ENV and an explicit level,
// used by the demo cmd/oracle-server and cmd/oracle-watch binaries. The
// core library never calls into this file — it only depends on the Sink
// interface above.

var globalLogger *zap.Logger

// Init initializes the global logger. logLevel may be nil, meaning "info".
func Init(logLevel *string) error {
	var err error

	env := os.Getenv("GO_ENV")
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	appliedLevel := "info"
	if logLevel != nil && *logLevel != "" {
		appliedLevel = *logLevel
	}

	switch appliedLevel {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	globalLogger, err = config.Build()
	return err
}

// Get returns the global logger, falling back to a development logger if
// Init was never called.
func Get() *zap.Logger {
	if globalLogger == nil {
		globalLogger, _ = zap.NewDevelopment()
	}
	return globalLogger
}

// Sync flushes the logger.
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// WithRequestContext returns a logger annotated with an HTTP request id.
func WithRequestContext(requestID string) *zap.Logger {
	if requestID == "" {
		return Get()
	}
	return Get().With(zap.String("request_id", requestID))
}
