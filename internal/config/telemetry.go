package config

import (
	"fmt"
	"time"
)

type TelemetryConfig struct {
	Traces TracesConfig `koanf:"traces"`
}

// TracesConfig configures span export over OTLP/HTTP. Spans are dropped while Enabled is false.
type TracesConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c *TelemetryConfig) Validate() error {
	if !c.Traces.Enabled {
		return nil
	}
	if c.Traces.Endpoint == "" {
		return fmt.Errorf("traces.endpoint is required when tracing is enabled")
	}
	return positive(map[string]time.Duration{"traces.timeout": c.Traces.Timeout})
}

func (c *TelemetryConfig) settings() []setting {
	return []setting{
		{"traces.enabled", c.Traces.Enabled},
		{"traces.endpoint", c.Traces.Endpoint},
		{"traces.insecure", c.Traces.Insecure},
		{"traces.timeout", c.Traces.Timeout},
	}
}
