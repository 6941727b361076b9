package config

import "fmt"

// GRPCConfig configures the gRPC listener that serves the health service.
type GRPCConfig struct {
	Port       int  `koanf:"port"`
	Reflection bool `koanf:"reflection"`
}

// Addr is the listen address for the configured port on all interfaces.
func (c *GRPCConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *GRPCConfig) Validate() error {
	return validPort(c.Port)
}

func (c *GRPCConfig) settings() []setting {
	return []setting{
		{"port", c.Port},
		{"reflection", c.Reflection},
	}
}
