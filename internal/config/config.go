// Package config handles server configuration loading and defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultAddr       = ":8080"
	DefaultConfigFile = "todod.toml"
)

// Config holds the full configuration for the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080" or "127.0.0.1:9000".
	Addr string `toml:"addr"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{Addr: DefaultAddr}
}

// Load reads the TOML file at path, falling back to defaults when
// the file does not exist. Environment variables win over the file:
// TODOD_ADDR sets the full address, PORT just the port.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file is fine; defaults and env apply.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if addr := os.Getenv("TODOD_ADDR"); addr != "" {
		cfg.Addr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return cfg, nil
}
