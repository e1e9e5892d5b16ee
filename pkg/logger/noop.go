package logger

// Noop returns a Logger that discards everything. Useful in tests.
func Noop() Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any)         {}
func (noopLogger) Info(string, ...any)          {}
func (noopLogger) Warn(string, ...any)          {}
func (noopLogger) Error(string, ...any)         {}
func (n noopLogger) Named(string) Logger        { return n }
func (n noopLogger) WithFields(...any) Logger   { return n }
func (noopLogger) Sync() error                  { return nil }
