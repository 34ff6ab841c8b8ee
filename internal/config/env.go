package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override config file values.
const (
	EnvPort   = "RESUME_BUILDER_PORT"
	EnvEngine = "RESUME_BUILDER_ENGINE"
)

// ApplyEnv overrides c with values from the environment.
// It reads RESUME_BUILDER_PORT and RESUME_BUILDER_ENGINE; unset variables are ignored.
func (c *Config) ApplyEnv() error {
	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvPort, err)
		}
		c.Port = port
	}

	if engine := os.Getenv(EnvEngine); engine != "" {
		c.Engine = engine
	}

	return nil
}
