package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

type Server struct {
	Port            int           `env:"PORT"             envDefault:"3000"`
	GinMode         string        `env:"GIN_MODE"         envDefault:"release"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS"  envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

type Tuning struct {
	// EventQueueSize bounds inbound events waiting for the dispatcher.
	EventQueueSize int `env:"EVENT_QUEUE_SIZE" envDefault:"1024"`
	// SendBuffer bounds outbound messages waiting per connection.
	SendBuffer int `env:"WS_SEND_BUFFER" envDefault:"256"`
}

type Config struct {
	Server Server
	Log    Log
	Tuning Tuning
}

// Load reads the configuration from the environment, falling back to
// defaults for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Server.Port)
	}
	if c.Tuning.EventQueueSize < 1 {
		return fmt.Errorf("EVENT_QUEUE_SIZE must be positive: %d", c.Tuning.EventQueueSize)
	}
	if c.Tuning.SendBuffer < 1 {
		return fmt.Errorf("WS_SEND_BUFFER must be positive: %d", c.Tuning.SendBuffer)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive: %s", c.Server.ShutdownTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Server.Port))
}
