package redis

import (
	"context"
	"testing"
	"time"
)

var testConfig = &Config{
	Host: "localhost",
	Port: 6379,
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}

	var nilCfg *Config
	if err := nilCfg.Validate(); err != ErrNilConfig {
		t.Errorf("nil config Validate() = %v, want ErrNilConfig", err)
	}

	if err := (&Config{Host: "localhost"}).Validate(); err != ErrInvalidConfig {
		t.Errorf("missing port Validate() = %v, want ErrInvalidConfig", err)
	}
}

func TestGetSetDel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, err := NewClient(testConfig)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	key := "test:command:basic"
	defer client.Del(ctx, key)

	if err := client.Set(ctx, key, "value", 10*time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "value" {
		t.Errorf("Get() = %q, want %q", got, "value")
	}

	if _, err := client.Del(ctx, key); err != nil {
		t.Fatalf("Del() error = %v", err)
	}

	if _, err := client.Get(ctx, key); err != ErrNil {
		t.Errorf("Get() after Del = %v, want ErrNil", err)
	}
}
