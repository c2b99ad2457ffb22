// Package app wires a camera session to its capture source, displays and
// dashboard, and runs the capture loop.
package app

import (
	"fmt"
	"net/url"
)

// Default configuration values.
const (
	DefaultSettingsPath = "camera.yaml"
	DefaultWebAddr      = ":8080"
)

// Config holds all configuration for the capture application.
// Flag parsing is done in cmd/camera/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// SettingsPath is the YAML settings file. A missing file means defaults.
	SettingsPath string

	// Camera overrides. Zero values (and Index < 0) leave the settings
	// file and environment in charge.
	Name  string
	Type  string
	Index int
	FPS   int

	// Preset names a capture preset applied on top of the settings file.
	Preset string

	// Remote is a ws:// or wss:// frame stream used instead of a local device.
	Remote string

	// WebAddr enables the dashboard when non-empty (e.g. ":8080").
	WebAddr string

	// Headless disables the local preview window.
	Headless bool

	// Paced waits 1/FPS between captures instead of reading as fast as
	// the source delivers.
	Paced bool

	// MaxFrames stops the loop after that many frames. 0 runs until cancelled.
	MaxFrames int

	// LogEvery logs the luminosity every N frames. 0 uses the camera FPS,
	// which is roughly once a second.
	LogEvery int
}

// DefaultConfig returns defaults for the capture application.
func DefaultConfig() Config {
	return Config{
		SettingsPath: DefaultSettingsPath,
		Index:        -1,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxFrames < 0 {
		return &ConfigError{Field: "MaxFrames", Message: "must not be negative"}
	}
	if c.LogEvery < 0 {
		return &ConfigError{Field: "LogEvery", Message: "must not be negative"}
	}
	if c.Remote != "" {
		u, err := url.Parse(c.Remote)
		if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
			return &ConfigError{Field: "Remote", Message: "must be a ws:// or wss:// URL"}
		}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s %s", e.Field, e.Message)
}
