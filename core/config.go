package core

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	SecretKey      string        `koanf:"secret_key" mapstructure:"secret_key"`
	ClientID       string        `koanf:"client_id" mapstructure:"client_id"`
	APIBase        string        `koanf:"api_base" mapstructure:"api_base"`
	ConnectBase    string        `koanf:"connect_base" mapstructure:"connect_base"`
	RequestTimeout time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
}

func DefaultConfig() Config {
	return Config{
		APIBase:        "https://api.stripe.com",
		ConnectBase:    "https://connect.stripe.com",
		RequestTimeout: 30 * time.Second,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBase) == "" {
		return fmt.Errorf("core: api_base is required")
	}
	if strings.TrimSpace(c.ConnectBase) == "" {
		return fmt.Errorf("core: connect_base is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("core: request_timeout must not be negative")
	}
	return nil
}
