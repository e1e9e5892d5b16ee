package logger

import "errors"

// Level is a textual log level as it appears in configuration.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	FatalLevel Level = "fatal"
)

// Format selects the output encoding.
type Format string

const (
	JSONFormat    Format = "json"
	ConsoleFormat Format = "console"
)

var (
	// ErrInvalidOutputPath file output enabled without a path
	ErrInvalidOutputPath = errors.New("logger: output_path is required when enable_file is true")

	// ErrNoOutputEnabled neither console nor file output enabled
	ErrNoOutputEnabled = errors.New("logger: at least one of enable_console or enable_file must be set")
)

// Config logger configuration.
type Config struct {
	Level  Level  `mapstructure:"level"`
	Format Format `mapstructure:"format"`

	EnableConsole bool   `mapstructure:"enable_console"`
	EnableFile    bool   `mapstructure:"enable_file"`
	OutputPath    string `mapstructure:"output_path"`

	TimeFormat string `mapstructure:"time_format"`

	Rotation RotationConfig `mapstructure:"rotation"`

	EnableStacktrace bool  `mapstructure:"enable_stacktrace"`
	StacktraceLevel  Level `mapstructure:"stacktrace_level"`
}

// RotationConfig size-based rotation settings (lumberjack).
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"` // MB
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"` // days
	Compress   bool `mapstructure:"compress"`
}

// DefaultConfig returns a console-only configuration suitable for development.
func DefaultConfig() *Config {
	return &Config{
		Level:         InfoLevel,
		Format:        ConsoleFormat,
		EnableConsole: true,
		TimeFormat:    "2006-01-02 15:04:05",
		Rotation: RotationConfig{
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     7,
			Compress:   true,
		},
		EnableStacktrace: true,
		StacktraceLevel:  ErrorLevel,
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.EnableFile && c.OutputPath == "" {
		return ErrInvalidOutputPath
	}
	if !c.EnableConsole && !c.EnableFile {
		return ErrNoOutputEnabled
	}
	return nil
}
