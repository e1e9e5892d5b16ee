package postgres

import (
	"fmt"
	"time"
)

// Config PostgreSQL connection settings.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"` // disable, require, verify-ca, verify-full

	Pool PoolConfig `mapstructure:"pool"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
}

// PoolConfig pgxpool settings.
type PoolConfig struct {
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// DefaultConfig returns settings for a local development database.
func DefaultConfig() *Config {
	return &Config{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		DBName:  "pokedex",
		SSLMode: "disable",
		Pool: PoolConfig{
			MaxConns:          25,
			MinConns:          5,
			MaxConnLifetime:   time.Hour,
			MaxConnIdleTime:   30 * time.Minute,
			HealthCheckPeriod: time.Minute,
		},
		ConnectTimeout: 10 * time.Second,
		QueryTimeout:   30 * time.Second,
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Host == "" || c.Port == 0 || c.User == "" || c.DBName == "" {
		return ErrInvalidConfig
	}
	return nil
}

// DSN renders the config as a pgx connection string.
func (c *Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode, int(c.ConnectTimeout.Seconds()),
	)
}
