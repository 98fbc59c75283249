// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"gopkg.in/yaml.v3"
)

// Info holds everything necessary to describe a Command's intent and usage.
type Info struct {
	// Name is the Command's name.
	Name string

	// Args describes the command's expected arguments.
	Args string

	// Purpose is a short explanation of the Command's purpose.
	Purpose string

	// Doc is the long documentation for the Command.
	Doc string
}

// Usage combines Name and Args to describe the Command's intended usage.
func (i *Info) Usage() string {
	if i.Args == "" {
		return fmt.Sprintf("%s [options]", i.Name)
	}
	return fmt.Sprintf("%s [options] %s", i.Name, i.Args)
}

// Context holds the streams a Command writes to.
type Context struct {
	context.Context

	Stdout io.Writer
	Stderr io.Writer
}

// Command is implemented by the netstack subcommands.
type Command interface {
	// Info returns information about the command.
	Info() *Info

	// SetFlags adds command specific flags to the flag set.
	SetFlags(f *gnuflag.FlagSet)

	// Init initializes the command from the positional arguments.
	Init(args []string) error

	// Run will execute the command according to the options and positional
	// arguments interpreted by a call to Init.
	Run(ctx *Context) error
}

// CheckEmpty returns an error if args is not empty.
func CheckEmpty(args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unrecognized args: %q", args)
	}
	return nil
}

func newFlagSet(c Command) *gnuflag.FlagSet {
	f := gnuflag.NewFlagSet(c.Info().Name, gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	return f
}

func printUsage(c Command, w io.Writer) {
	i := c.Info()
	fmt.Fprintf(w, "usage: netstack %s\n", i.Usage())
	fmt.Fprintf(w, "purpose: %s\n", i.Purpose)
	f := newFlagSet(c)
	f.SetOutput(w)
	fmt.Fprintf(w, "\noptions:\n")
	f.PrintDefaults()
	if i.Doc != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(i.Doc))
	}
}

// parse parses args on c. This must be called before c is Run.
func parse(c Command, args []string) error {
	f := newFlagSet(c)
	if err := f.Parse(true, args); err != nil {
		return err
	}
	return c.Init(f.Args())
}

// Main runs the subcommand named by args[0] and returns the process exit
// code.
func Main(ctx *Context, args []string, commands []Command) int {
	byName := make(map[string]Command, len(commands))
	for _, c := range commands {
		byName[c.Info().Name] = c
	}
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		printCommands(ctx.Stderr, commands)
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	c, ok := byName[args[0]]
	if !ok {
		fmt.Fprintf(ctx.Stderr, "ERROR unrecognized command: netstack %s\n", args[0])
		return 2
	}
	if err := parse(c, args[1:]); err != nil {
		if err == gnuflag.ErrHelp {
			printUsage(c, ctx.Stderr)
			return 0
		}
		fmt.Fprintf(ctx.Stderr, "ERROR %v\n", err)
		return 2
	}
	if err := c.Run(ctx); err != nil {
		logger.Debugf("%s command failed: %s", c.Info().Name, errors.ErrorStack(err))
		fmt.Fprintf(ctx.Stderr, "ERROR %v\n", err)
		return 1
	}
	return 0
}

func printCommands(w io.Writer, commands []Command) {
	fmt.Fprintf(w, "usage: netstack <command> [options] ...\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "    %-8s - %s\n", c.Info().Name, c.Info().Purpose)
	}
}

// Formatter converts an arbitrary object into a []byte.
type Formatter func(value interface{}) ([]byte, error)

// formatYaml marshals value to a yaml-formatted []byte, unless value is nil.
func formatYaml(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	result, err := yaml.Marshal(value)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSuffix(string(result), "\n")), nil
}

// formatJson marshals value to a json-formatted []byte.
func formatJson(value interface{}) ([]byte, error) {
	return json.Marshal(value)
}

// DefaultFormatters are the formatters accepted by --format.
var DefaultFormatters = map[string]Formatter{
	"yaml": formatYaml,
	"json": formatJson,
}

// formatterValue implements gnuflag.Value for the --format flag.
type formatterValue struct {
	name       string
	formatters map[string]Formatter
}

func newFormatterValue(initial string, formatters map[string]Formatter) *formatterValue {
	v := &formatterValue{formatters: formatters}
	if err := v.Set(initial); err != nil {
		panic(err)
	}
	return v
}

// Set stores the chosen formatter name in v.name.
func (v *formatterValue) Set(value string) error {
	if v.formatters[value] == nil {
		return errors.Errorf("unknown format %q", value)
	}
	v.name = value
	return nil
}

// String returns the chosen formatter name.
func (v *formatterValue) String() string {
	return v.name
}

func (v *formatterValue) doc() string {
	choices := set.NewStrings()
	for name := range v.formatters {
		choices.Add(name)
	}
	return "Specify output format (" + strings.Join(choices.SortedValues(), "|") + ")"
}

// Output is responsible for interpreting output-related command line flags
// and writing a value to stdout as directed.
type Output struct {
	formatter *formatterValue
}

// AddFlags injects the --format flag into f.
func (c *Output) AddFlags(f *gnuflag.FlagSet, name string, formatters map[string]Formatter) {
	c.formatter = newFormatterValue(name, formatters)
	f.Var(c.formatter, "format", c.formatter.doc())
}

// Write formats and outputs value as directed by the --format flag.
func (c *Output) Write(ctx *Context, value interface{}) error {
	bytes, err := c.formatter.formatters[c.formatter.name](value)
	if err != nil {
		return errors.Trace(err)
	}
	if len(bytes) == 0 {
		return nil
	}
	_, err = fmt.Fprintf(ctx.Stdout, "%s\n", bytes)
	return errors.Trace(err)
}
