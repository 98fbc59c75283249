// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config reads the configuration of the netstack command.
package config

import (
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"gopkg.in/yaml.v3"

	"github.com/juju/netstack/internal/provider/openstack"
)

// Default values used for unset config fields.
const (
	DefaultDatabase      = "netstack.db"
	DefaultPollDelay     = 2 * time.Second
	DefaultPollTimeout   = 10 * time.Minute
	DefaultLoggingConfig = "<root>=INFO"
)

// Config is the configuration of the netstack command.
type Config struct {
	// Database is the path of the sqlite database holding the resource
	// records.
	Database string `yaml:"database"`

	// PollDelay is the delay between two convergence checks.
	PollDelay time.Duration `yaml:"poll-delay"`

	// PollTimeout bounds the time spent waiting for a resource to
	// converge.
	PollTimeout time.Duration `yaml:"poll-timeout"`

	// LoggingConfig is a loggo logging config string.
	LoggingConfig string `yaml:"logging-config"`

	// OpenStack describes the cloud holding the networks. Without it no
	// resource types are available.
	OpenStack *openstack.Config `yaml:"openstack,omitempty"`
}

// Parse returns the config held in data, with defaults and environment
// credentials applied.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.NewNotValid(err, "parsing config")
	}
	return cfg.withDefaults()
}

// ReadFile returns the config held in the file at path. An empty path
// returns the default config.
func ReadFile(path string) (Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Annotatef(err, "reading config %q", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Annotatef(err, "config %q", path)
	}
	return cfg, nil
}

func (c Config) withDefaults() (Config, error) {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.PollDelay == 0 {
		c.PollDelay = DefaultPollDelay
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = DefaultPollTimeout
	}
	if c.LoggingConfig == "" {
		c.LoggingConfig = DefaultLoggingConfig
	}

	var cloud openstack.Config
	if c.OpenStack != nil {
		cloud = *c.OpenStack
	}
	cloud, err := cloud.WithEnvironment()
	if err != nil {
		return Config{}, errors.Trace(err)
	}
	// The environment alone is enough to describe a cloud.
	if c.OpenStack != nil || cloud.AuthURL != "" {
		c.OpenStack = &cloud
	}
	return c, nil
}

// Validate returns an error satisfying errors.NotValid if the config
// cannot be used.
func (c Config) Validate() error {
	if c.Database == "" {
		return errors.NotValidf("empty database")
	}
	if c.PollDelay <= 0 {
		return errors.NotValidf("poll-delay %v", c.PollDelay)
	}
	if c.PollTimeout < c.PollDelay {
		return errors.NotValidf("poll-timeout %v shorter than poll-delay %v", c.PollTimeout, c.PollDelay)
	}
	if _, err := loggo.ParseConfigString(c.LoggingConfig); err != nil {
		return errors.NewNotValid(err, "logging-config")
	}
	if c.OpenStack != nil {
		if err := c.OpenStack.Validate(); err != nil {
			return errors.NewNotValid(err, "openstack")
		}
	}
	return nil
}
