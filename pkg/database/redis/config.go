package redis

import "time"

// Config Redis connection settings.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxActiveConns  int           `mapstructure:"max_active_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
}

// DefaultConfig returns settings for a local Redis instance.
func DefaultConfig() *Config {
	return &Config{
		Host: "localhost",
		Port: 6379,
		Pool: PoolConfig{
			MaxIdleConns:    10,
			MaxActiveConns:  100,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			DialTimeout:     5 * time.Second,
			ReadTimeout:     3 * time.Second,
			WriteTimeout:    3 * time.Second,
		},
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Host == "" || c.Port == 0 {
		return ErrInvalidConfig
	}
	return nil
}
