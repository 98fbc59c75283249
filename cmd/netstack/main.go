// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/netstack/domain/vpc/service"
	"github.com/juju/netstack/domain/vpc/state"
	"github.com/juju/netstack/internal/config"
	"github.com/juju/netstack/internal/provider/openstack"
	"github.com/juju/netstack/internal/stack"
)

var logger = loggo.GetLogger("netstack.cmd")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	code := Main(&Context{
		Context: ctx,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, os.Args[1:], newCommands(openEnvironment))
	cancel()
	os.Exit(code)
}

// environment holds the engine the commands operate on.
type environment struct {
	engine   *stack.Engine
	registry *stack.Registry
	metrics  *stack.Collector
	db       *sql.DB
}

// Close releases the database held by the environment.
func (e *environment) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

// opener returns the environment described by cfg.
type opener func(ctx context.Context, cfg config.Config) (*environment, error)

// openEnvironment connects to the cloud and the database described by cfg
// and returns an engine managing the resource types the cloud supports.
func openEnvironment(ctx context.Context, cfg config.Config) (*environment, error) {
	if err := loggo.ConfigureLoggers(cfg.LoggingConfig); err != nil {
		return nil, errors.Annotate(err, "configuring loggers")
	}

	var networking service.Networking
	if cfg.OpenStack != nil {
		n, ok, err := openstack.Open(ctx, *cfg.OpenStack)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if ok {
			networking = n
		}
	} else {
		logger.Warningf("no openstack cloud configured, no resource types are available")
	}
	registry, err := stack.NewRegistry(service.ResourceMapping(networking))
	if err != nil {
		return nil, errors.Trace(err)
	}

	db, err := state.OpenDB(cfg.Database)
	if err != nil {
		return nil, errors.Trace(err)
	}
	st := state.NewState(db)
	if err := st.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Trace(err)
	}

	metrics := stack.NewMetricsCollector()
	engine, err := stack.NewEngine(stack.Config{
		Registry:    registry,
		State:       st,
		Clock:       clock.WallClock,
		Logger:      loggo.GetLogger("netstack.stack"),
		Metrics:     metrics,
		PollDelay:   cfg.PollDelay,
		PollTimeout: cfg.PollTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Trace(err)
	}
	return &environment{
		engine:   engine,
		registry: registry,
		metrics:  metrics,
		db:       db,
	}, nil
}
