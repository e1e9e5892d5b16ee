package logger

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{
			name:    "default is valid",
			cfg:     DefaultConfig(),
			wantErr: nil,
		},
		{
			name:    "file output without path",
			cfg:     &Config{EnableFile: true},
			wantErr: ErrInvalidOutputPath,
		},
		{
			name:    "no output at all",
			cfg:     &Config{},
			wantErr: ErrNoOutputEnabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewWithNilConfig(t *testing.T) {
	l, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if l == nil {
		t.Fatal("New(nil) returned nil logger")
	}
	l.Info("hello", "k", "v")
}

func TestNamedAndWithFields(t *testing.T) {
	l, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	named := l.Named("syncer")
	if named == nil {
		t.Fatal("Named() returned nil")
	}

	withFields := named.WithFields("cycle", 1)
	if withFields == nil {
		t.Fatal("WithFields() returned nil")
	}
	withFields.Info("fields attached")
}

func TestNoop(t *testing.T) {
	l := Noop()
	l.Debug("ignored")
	l.Named("x").WithFields("a", 1).Error("also ignored")
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() = %v, want nil", err)
	}
}
