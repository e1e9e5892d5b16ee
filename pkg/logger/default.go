package logger

import "sync"

var (
	defaultLogger Logger
	defaultMu     sync.RWMutex
)

// SetDefault replaces the process-wide default logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the process-wide default logger, lazily building a
// console logger on first use.
func Default() Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		l, err := New(DefaultConfig())
		if err != nil {
			panic(err)
		}
		defaultLogger = l
	}
	return defaultLogger
}
