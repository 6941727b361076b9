package config

import (
	"fmt"
	"time"
)

// HTTPConfig configures the REST listener.
type HTTPConfig struct {
	Port              int           `koanf:"port"`
	MaxHeaderBytes    int           `koanf:"maxheaderbytes"`
	ReadTimeout       time.Duration `koanf:"readtimeout"`
	WriteTimeout      time.Duration `koanf:"writetimeout"`
	IdleTimeout       time.Duration `koanf:"idletimeout"`
	ReadHeaderTimeout time.Duration `koanf:"readheadertimeout"`
}

// Addr is the listen address for the configured port on all interfaces.
func (c *HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *HTTPConfig) Validate() error {
	if err := validPort(c.Port); err != nil {
		return err
	}
	if c.MaxHeaderBytes < 0 {
		return fmt.Errorf("maxheaderbytes must not be negative, got %d", c.MaxHeaderBytes)
	}
	return positive(map[string]time.Duration{
		"readtimeout":       c.ReadTimeout,
		"writetimeout":      c.WriteTimeout,
		"idletimeout":       c.IdleTimeout,
		"readheadertimeout": c.ReadHeaderTimeout,
	})
}

func (c *HTTPConfig) settings() []setting {
	return []setting{
		{"port", c.Port},
		{"maxheaderbytes", c.MaxHeaderBytes},
		{"readtimeout", c.ReadTimeout},
		{"writetimeout", c.WriteTimeout},
		{"idletimeout", c.IdleTimeout},
		{"readheadertimeout", c.ReadHeaderTimeout},
	}
}

func validPort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("port must be within 1-65535, got %d", port)
	}
	return nil
}

// positive fails on the alphabetically first duration that is not greater than zero.
func positive(durations map[string]time.Duration) error {
	var bad string
	for name, d := range durations {
		if d <= 0 && (bad == "" || name < bad) {
			bad = name
		}
	}
	if bad != "" {
		return fmt.Errorf("%s must be greater than 0, got %v", bad, durations[bad])
	}
	return nil
}
