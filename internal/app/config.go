package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // table configuration file (hcl)

	LogFormat   string
	LogLevel    string
	MonitorPort int // observation server port, 0 keeps it off
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.MonitorPort < 0 {
		return nil, fmt.Errorf("MonitorPort must not be negative, got %d", cfg.MonitorPort)
	}

	return &cfg, nil
}
