package web

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Config HTTP server settings.
type Config struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	EnableCORS   bool          `mapstructure:"enable_cors"`
}

// DefaultConfig returns settings for local development.
func DefaultConfig() *Config {
	return &Config{
		Port:         5000,
		Mode:         gin.ReleaseMode,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		EnableCORS:   true,
	}
}
