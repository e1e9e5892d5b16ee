package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Manager wraps viper behind the small surface the service actually needs.
type Manager interface {
	// LoadFile reads a configuration file (YAML, JSON, TOML).
	LoadFile(path string) error
	// BindEnv maps environment variables with the given prefix onto
	// configuration keys, e.g. POKEDEX_SYNC_INTERVAL_HOURS -> sync.interval_hours.
	BindEnv(prefix string)
	// Unmarshal decodes the whole configuration into v.
	Unmarshal(v any) error
	// UnmarshalKey decodes the configuration subtree at key into v.
	UnmarshalKey(key string, v any) error
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	IsSet(key string) bool
	// Watch invokes callback whenever the loaded file changes on disk.
	Watch(callback func(event fsnotify.Event))
}

type manager struct {
	v  *viper.Viper
	mu sync.RWMutex
}

// NewManager creates an empty configuration manager.
func NewManager() Manager {
	return &manager{v: viper.New()}
}

func (m *manager) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.SetConfigFile(path)
	if err := m.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func (m *manager) BindEnv(prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.SetEnvPrefix(prefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()
}

func (m *manager) Unmarshal(v any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.v.Unmarshal(v); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func (m *manager) UnmarshalKey(key string, v any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.v.UnmarshalKey(key, v); err != nil {
		return fmt.Errorf("failed to unmarshal config key %s: %w", key, err)
	}
	return nil
}

func (m *manager) GetString(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetString(key)
}

func (m *manager) GetInt(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetInt(key)
}

func (m *manager) GetBool(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetBool(key)
}

func (m *manager) IsSet(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.IsSet(key)
}

func (m *manager) Watch(callback func(event fsnotify.Event)) {
	m.v.OnConfigChange(callback)
	m.v.WatchConfig()
}
