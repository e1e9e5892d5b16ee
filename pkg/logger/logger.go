package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface shared by every package in this
// repository. Implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// Named returns a logger with the given sub-scope appended to its name.
	Named(name string) Logger
	// WithFields returns a logger that attaches the given key/value pairs
	// to every entry.
	WithFields(keysAndValues ...any) Logger

	Sync() error
}

var _ Logger = (*zapLogger)(nil)

// zapLogger is the zap-backed Logger implementation.
type zapLogger struct {
	sugar *zap.SugaredLogger
	cfg   *Config
}

// New builds a Logger from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	if cfg.Format == ConsoleFormat {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case ConsoleFormat:
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	writers := make([]zapcore.WriteSyncer, 0, 2)
	if cfg.EnableConsole {
		writers = append(writers, zapcore.AddSync(os.Stdout))
	}
	if cfg.EnableFile {
		writers = append(writers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), parseLevel(cfg.Level))

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(parseLevel(cfg.StacktraceLevel)))
	}

	return &zapLogger{
		sugar: zap.New(core, opts...).Sugar(),
		cfg:   cfg,
	}, nil
}

func parseLevel(l Level) zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Debug(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...any) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{sugar: l.sugar.Named(name), cfg: l.cfg}
}

func (l *zapLogger) WithFields(keysAndValues ...any) Logger {
	return &zapLogger{sugar: l.sugar.With(keysAndValues...), cfg: l.cfg}
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}
