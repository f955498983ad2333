// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the QueueEscape
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - the QUEUEESCAPE_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable naming the config file.
const EnvVar = "QUEUEESCAPE_CONFIG"

// Default poll and display timings, applied when the file leaves them
// out.
const (
	DefaultStatusPollInterval = 5 * time.Second
	DefaultStaffPollInterval  = 10 * time.Second
	DefaultNoticeFade         = 5 * time.Second
)

// Config is the client configuration.
type Config struct {
	// QueueAPIURL is the base URL of the queue service. Required.
	QueueAPIURL string `yaml:"queue_api_url"`

	// IdentityURL is the base URL of the identity service. Required.
	IdentityURL string `yaml:"identity_url"`

	// DefaultQueue is the queue name pre-filled in the join form.
	DefaultQueue string `yaml:"default_queue"`

	// StatusPollInterval is how often the ticket status view re-fetches.
	// Duration string ("5s", "1m"). Default: 5s.
	StatusPollInterval string `yaml:"status_poll_interval"`

	// StaffPollInterval is how often the staff dashboard re-fetches the
	// queue summary. Default: 10s.
	StaffPollInterval string `yaml:"staff_poll_interval"`

	// NoticeFade is how long transient notices stay on screen.
	// Default: 5s.
	NoticeFade string `yaml:"notice_fade"`

	statusPollInterval time.Duration
	staffPollInterval  time.Duration
	noticeFade         time.Duration
}

// Locate returns the config file path from the --config flag value or
// the environment. An explicit flag wins.
func Locate(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if path := os.Getenv(EnvVar); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("config: no config file: set %s or pass --config", EnvVar)
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.QueueAPIURL == "" {
		return fmt.Errorf("queue_api_url is required")
	}
	if c.IdentityURL == "" {
		return fmt.Errorf("identity_url is required")
	}

	var err error
	if c.statusPollInterval, err = parseInterval(c.StatusPollInterval, DefaultStatusPollInterval); err != nil {
		return fmt.Errorf("status_poll_interval: %w", err)
	}
	if c.staffPollInterval, err = parseInterval(c.StaffPollInterval, DefaultStaffPollInterval); err != nil {
		return fmt.Errorf("staff_poll_interval: %w", err)
	}
	if c.noticeFade, err = parseInterval(c.NoticeFade, DefaultNoticeFade); err != nil {
		return fmt.Errorf("notice_fade: %w", err)
	}
	return nil
}

func parseInterval(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", value)
	}
	return parsed, nil
}

// StatusInterval returns the resolved ticket status poll interval.
func (c *Config) StatusInterval() time.Duration { return c.statusPollInterval }

// StaffInterval returns the resolved staff summary poll interval.
func (c *Config) StaffInterval() time.Duration { return c.staffPollInterval }

// NoticeFadeDelay returns how long transient notices stay visible.
func (c *Config) NoticeFadeDelay() time.Duration { return c.noticeFade }
