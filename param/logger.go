package param

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger replaces the package logger. Call before decoding; the
// decoder emits debug events for header fields and reference-table
// cache fills.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}
