// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/utils/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/juju/netstack/domain/vpc"
	"github.com/juju/netstack/internal/config"
	"github.com/juju/netstack/internal/stack"
)

func newCommands(open opener) []Command {
	base := func() baseCommand { return baseCommand{open: open} }
	return []Command{
		&createCommand{baseCommand: base()},
		&waitCommand{baseCommand: base()},
		&deleteCommand{baseCommand: base()},
		&listCommand{baseCommand: base()},
		&typesCommand{baseCommand: base()},
	}
}

// baseCommand holds the flags and behaviour shared by every command.
type baseCommand struct {
	open        opener
	configPath  string
	metricsPath string
}

// SetFlags is part of the Command interface.
func (c *baseCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Path to the netstack configuration file")
	f.StringVar(&c.metricsPath, "metrics-file", "", "Write engine metrics in the Prometheus text format to this file")
}

// run opens the environment and passes it to fn, closing it afterwards.
// The engine metrics are written out whether or not fn succeeds.
func (c *baseCommand) run(ctx *Context, fn func(*environment) error) (err error) {
	cfg, err := config.ReadFile(c.configPath)
	if err != nil {
		return errors.Trace(err)
	}
	if err := cfg.Validate(); err != nil {
		return errors.Trace(err)
	}
	env, err := c.open(ctx, cfg)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err := env.Close(); err != nil {
			logger.Warningf("closing database: %v", err)
		}
	}()
	defer func() {
		if writeErr := c.writeMetrics(env.metrics); writeErr != nil && err == nil {
			err = writeErr
		}
	}()
	return fn(env)
}

func (c *baseCommand) writeMetrics(metrics *stack.Collector) error {
	if c.metricsPath == "" || metrics == nil {
		return nil
	}
	registry := prometheus.NewRegistry()
	if err := registry.Register(metrics); err != nil {
		return errors.Annotate(err, "registering engine metrics")
	}
	if err := prometheus.WriteToTextfile(c.metricsPath, registry); err != nil {
		return errors.Annotatef(err, "writing metrics to %q", c.metricsPath)
	}
	return nil
}

func checkUUID(uuid string) error {
	if !utils.IsValidUUIDString(uuid) {
		return errors.NotValidf("resource uuid %q", uuid)
	}
	return nil
}

const createDoc = `
Create provisions a resource in the given stack and prints the uuid of its
record. Resources of type AWS::EC2::VPC are a Neutron network and a router
sharing the resource's physical name.

With --wait the command returns once the resource has converged.
`

type createCommand struct {
	baseCommand

	typeName     string
	wait         bool
	stackName    string
	resourceName string
}

func (c *createCommand) Info() *Info {
	return &Info{
		Name:    "create",
		Args:    "<stack> <resource>",
		Purpose: "Create a resource.",
		Doc:     createDoc,
	}
}

func (c *createCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.StringVar(&c.typeName, "type", vpc.ResourceType, "Type of the resource")
	f.BoolVar(&c.wait, "wait", false, "Wait for the resource to converge")
}

func (c *createCommand) Init(args []string) error {
	if len(args) < 2 {
		return errors.New("expected a stack name and a resource name")
	}
	c.stackName, c.resourceName = args[0], args[1]
	return CheckEmpty(args[2:])
}

func (c *createCommand) Run(ctx *Context) error {
	return c.run(ctx, func(env *environment) error {
		r, err := env.engine.Create(ctx, c.stackName, c.resourceName, c.typeName)
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Fprintln(ctx.Stdout, r.UUID)
		if !c.wait {
			return nil
		}
		return errors.Trace(env.engine.WaitConverged(ctx, r.UUID))
	})
}

type waitCommand struct {
	baseCommand

	uuid string
}

func (c *waitCommand) Info() *Info {
	return &Info{
		Name:    "wait",
		Args:    "<uuid>",
		Purpose: "Wait for a resource to converge.",
	}
}

func (c *waitCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no resource uuid specified")
	}
	c.uuid = args[0]
	if err := checkUUID(c.uuid); err != nil {
		return err
	}
	return CheckEmpty(args[1:])
}

func (c *waitCommand) Run(ctx *Context) error {
	return c.run(ctx, func(env *environment) error {
		return errors.Trace(env.engine.WaitConverged(ctx, c.uuid))
	})
}

type deleteCommand struct {
	baseCommand

	uuid string
}

func (c *deleteCommand) Info() *Info {
	return &Info{
		Name:    "delete",
		Args:    "<uuid>",
		Purpose: "Delete a resource.",
		Doc:     "Deleting a resource that does not exist succeeds.",
	}
}

func (c *deleteCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no resource uuid specified")
	}
	c.uuid = args[0]
	if err := checkUUID(c.uuid); err != nil {
		return err
	}
	return CheckEmpty(args[1:])
}

func (c *deleteCommand) Run(ctx *Context) error {
	return c.run(ctx, func(env *environment) error {
		return errors.Trace(env.engine.Delete(ctx, c.uuid))
	})
}

// resourceInfo is the output form of a resource record.
type resourceInfo struct {
	UUID         string `yaml:"uuid" json:"uuid"`
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"`
	PhysicalName string `yaml:"physical-name" json:"physical-name"`
	ProviderID   string `yaml:"provider-id,omitempty" json:"provider-id,omitempty"`
	Life         string `yaml:"life" json:"life"`
}

type listCommand struct {
	baseCommand
	out Output

	stackName string
}

func (c *listCommand) Info() *Info {
	return &Info{
		Name:    "list",
		Args:    "<stack>",
		Purpose: "List the resources of a stack.",
	}
}

func (c *listCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	c.out.AddFlags(f, "tabular", listFormatters)
}

func (c *listCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no stack name specified")
	}
	c.stackName = args[0]
	return CheckEmpty(args[1:])
}

func (c *listCommand) Run(ctx *Context) error {
	return c.run(ctx, func(env *environment) error {
		resources, err := env.engine.Resources(ctx, c.stackName)
		if err != nil {
			return errors.Trace(err)
		}
		infos := make([]resourceInfo, len(resources))
		for i, r := range resources {
			infos[i] = resourceInfo{
				UUID:         r.UUID,
				Name:         r.ResourceName,
				Type:         r.TypeName,
				PhysicalName: r.PhysicalName,
				ProviderID:   r.ProviderID,
				Life:         r.Life.String(),
			}
		}
		return c.out.Write(ctx, infos)
	})
}

type typesCommand struct {
	baseCommand
	out Output
}

func (c *typesCommand) Info() *Info {
	return &Info{
		Name:    "types",
		Purpose: "List the resource types available.",
	}
}

func (c *typesCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	c.out.AddFlags(f, "yaml", DefaultFormatters)
}

func (c *typesCommand) Init(args []string) error {
	return CheckEmpty(args)
}

func (c *typesCommand) Run(ctx *Context) error {
	return c.run(ctx, func(env *environment) error {
		return c.out.Write(ctx, env.registry.Types())
	})
}
