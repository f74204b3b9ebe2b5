// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all automation plugin configuration.
type Config struct {
	Server  ServerConfig
	Logging LogConfig
	Capture CaptureConfig
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Host string `envconfig:"AUTOMATION_HOST" default:"127.0.0.1"`
	Port string `envconfig:"AUTOMATION_PORT" default:"9876"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// CaptureConfig holds screenshot capture configuration.
type CaptureConfig struct {
	// TimeoutMs bounds how long the screenshot endpoint holds a request
	// open waiting for the asynchronous delivery.
	TimeoutMs      int `envconfig:"CAPTURE_TIMEOUT_MS" default:"5000"`
	ViewportWidth  int `envconfig:"CAPTURE_WIDTH" default:"1280"`
	ViewportHeight int `envconfig:"CAPTURE_HEIGHT" default:"800"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: "9876"},
		Logging: LogConfig{Level: "info"},
		Capture: CaptureConfig{TimeoutMs: 5000, ViewportWidth: 1280, ViewportHeight: 800},
	}
}
