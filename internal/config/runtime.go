package config

import (
	"fmt"
	"time"
)

type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown level %q, want one of debug, info, warn, error", c.Level)
}

func (c *LogConfig) settings() []setting {
	return []setting{{"level", c.Level}}
}

// PProfConfig enables the net/http/pprof endpoints on a separate listener.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return fmt.Errorf("addr is required when pprof is enabled")
	}
	return nil
}

func (c *PProfConfig) settings() []setting {
	return []setting{{"enabled", c.Enabled}, {"addr", c.Addr}}
}

// ShutdownConfig bounds how long each server may take to drain.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) Validate() error {
	return positive(map[string]time.Duration{"timeout": c.Timeout})
}

func (c *ShutdownConfig) settings() []setting {
	return []setting{{"timeout", c.Timeout}}
}
