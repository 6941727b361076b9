// Package configloader builds a typed configuration from config.yaml, a .env file and the
// process environment, in increasing order of priority.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultConfigFile = "config.yaml"
	defaultEnvFile    = ".env"
	keyDelimiter      = "."
)

type Validator interface {
	Validate() error
}

// validatable is satisfied by *T when T's pointer implements Validator.
type validatable[T any] interface {
	*T
	Validator
}

// Load reads config.yaml and .env from the working directory and the environment.
// Variables are named <SERVICE>_<SECTION>_<KEY>, e.g. PRODUCT_HTTP_PORT.
func Load[T any, PT validatable[T]](serviceName string) (*T, error) {
	return LoadFiles[T, PT](serviceName, defaultConfigFile, defaultEnvFile)
}

// LoadFiles is Load with explicit file paths. Missing files are skipped; unreadable ones fail.
func LoadFiles[T any, PT validatable[T]](serviceName, configFile, envFile string) (*T, error) {
	k := koanf.New(keyDelimiter)
	prefix := strings.ToUpper(serviceName) + "_"
	toKey := envKeyMapper(prefix)

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", configFile, err)
	}
	if err := loadDotEnv(k, envFile, prefix, toKey); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(prefix, keyDelimiter, toKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := new(T)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := PT(cfg).Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotEnv merges the prefixed variables of a .env file. Unprefixed entries are ignored.
func loadDotEnv(k *koanf.Koanf, envFile, prefix string, toKey func(string) string) error {
	vars, err := godotenv.Read(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", envFile, err)
	}
	values := make(map[string]any, len(vars))
	for name, value := range vars {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			values[toKey(name)] = value
		}
	}
	if err := k.Load(confmap.Provider(values, keyDelimiter), nil); err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

// envKeyMapper turns PRODUCT_HTTP_MAXHEADERBYTES into http.maxheaderbytes.
// koanf keys are lower case, so the mapping is exact for every setting.
func envKeyMapper(prefix string) func(string) string {
	return func(name string) string {
		name = strings.ToLower(name[len(prefix):])
		return strings.ReplaceAll(name, "_", keyDelimiter)
	}
}
