// Package config describes the product catalog settings and how they are validated.
//
// Every koanf key is lower case so that environment variables, which are matched
// case-insensitively, can override any value read from config.yaml.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/abgdnv/productcatalog/internal/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTP      HTTPConfig      `koanf:"http"`
	GRPC      GRPCConfig      `koanf:"grpc"`
	Log       LogConfig       `koanf:"log"`
	PProf     PProfConfig     `koanf:"pprof"`
	Shutdown  ShutdownConfig  `koanf:"shutdown"`
	NATS      NATSConfig      `koanf:"nats"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// setting is one printable key/value pair. Keys are the full koanf paths.
type setting struct {
	key   string
	value any
}

type section interface {
	configloader.Validator
	settings() []setting
}

type namedSection struct {
	name string
	section
}

// sections lists every part of the configuration with its koanf prefix, in print order.
func (c *Config) sections() []namedSection {
	return []namedSection{
		{"http", &c.HTTP},
		{"grpc", &c.GRPC},
		{"log", &c.Log},
		{"pprof", &c.PProf},
		{"shutdown", &c.Shutdown},
		{"nats", &c.NATS},
		{"telemetry", &c.Telemetry},
	}
}

// String prints every setting by its koanf key. Credentials in URLs are masked.
func (c *Config) String() string {
	var b strings.Builder
	for _, s := range c.sections() {
		b.WriteString("\n[" + s.name + "]\n")
		for _, kv := range s.settings() {
			fmt.Fprintf(&b, "  %s.%s = %v\n", s.name, kv.key, kv.value)
		}
	}
	return b.String()
}

// Validate checks every section and reports the first failure prefixed with its section name.
func (c *Config) Validate() error {
	for _, s := range c.sections() {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// maskURL hides the user info of a URL.
func maskURL(raw string) string {
	if raw == "" {
		return "<not configured>"
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.User("****")
	return u.String()
}
