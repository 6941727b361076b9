package config

import (
	"fmt"
	"time"
)

// NATSConfig configures publishing of product events. Nothing is checked while Enabled is false.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	Stream  string        `koanf:"stream"`
}

func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URL == "" {
		return fmt.Errorf("url is required when nats is enabled")
	}
	if c.Stream == "" {
		return fmt.Errorf("stream is required when nats is enabled")
	}
	return positive(map[string]time.Duration{"timeout": c.Timeout})
}

func (c *NATSConfig) settings() []setting {
	return []setting{
		{"enabled", c.Enabled},
		{"url", maskURL(c.URL)},
		{"timeout", c.Timeout},
		{"stream", c.Stream},
	}
}
