// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/juju/ansiterm"
	"github.com/juju/errors"
)

// tabWriter returns a writer laying out tab separated columns the way
// every tabular listing does.
func tabWriter(writer io.Writer) *ansiterm.TabWriter {
	const (
		minwidth = 0
		tabwidth = 1
		padding  = 2
		padchar  = ' '
		flags    = 0
	)
	return ansiterm.NewTabWriter(writer, minwidth, tabwidth, padding, padchar, flags)
}

// lifeColor highlights the lifecycle states needing attention.
var lifeColor = map[string]*ansiterm.Context{
	"creating": ansiterm.Foreground(ansiterm.Yellow),
	"active":   ansiterm.Foreground(ansiterm.Green),
	"deleting": ansiterm.Foreground(ansiterm.BrightRed),
}

// formatResourcesTabular writes the resources held by value, which must be
// a []resourceInfo, as a table.
func formatResourcesTabular(value interface{}) ([]byte, error) {
	infos, ok := value.([]resourceInfo)
	if !ok {
		return nil, errors.Errorf("expected value of type %T, got %T", infos, value)
	}
	if len(infos) == 0 {
		return nil, nil
	}

	var out bytes.Buffer
	tw := tabWriter(&out)
	fmt.Fprintln(tw, strings.Join([]string{"Name", "Type", "Life", "Physical name", "Provider ID", "UUID"}, "\t"))
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t", info.Name, info.Type)
		if ctx, ok := lifeColor[info.Life]; ok {
			ctx.Fprint(tw, info.Life)
		} else {
			fmt.Fprint(tw, info.Life)
		}
		fmt.Fprintf(tw, "\t%s\t%s\t%s\n", info.PhysicalName, info.ProviderID, info.UUID)
	}
	if err := tw.Flush(); err != nil {
		return nil, errors.Trace(err)
	}
	return bytes.TrimSuffix(out.Bytes(), []byte("\n")), nil
}

// listFormatters are the formatters accepted by list --format.
var listFormatters = map[string]Formatter{
	"yaml":    formatYaml,
	"json":    formatJson,
	"tabular": formatResourcesTabular,
}
