package config

import (
	"fmt"
)

func NewReadError(configPath string, err error) error {
	return fmt.Errorf("failed to read config file %q: %w", configPath, err)
}

func NewParseError(configPath string, err error) error {
	return fmt.Errorf("failed to parse config file %q: %w", configPath, err)
}

func NewEnvError(name, value string, err error) error {
	return fmt.Errorf("invalid environment variable %s=%q: %w", name, value, err)
}

func NewDotenvError(path string, err error) error {
	return fmt.Errorf("failed to load dotenv file %q: %w", path, err)
}
