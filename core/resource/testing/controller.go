// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/juju/errors"

	"github.com/juju/netstack/core/resource"
)

// Controller is an in-memory resource.Controller for use by callers of the
// controller contract. Created resources converge after ConvergeAfter
// calls to IsConverged.
type Controller struct {
	mu sync.Mutex

	// ConvergeAfter is the number of IsConverged calls answering false
	// before a resource is reported as converged.
	ConvergeAfter int

	// CreateErr, ConvergeErr and DeleteErr, when set, are returned by the
	// matching method.
	CreateErr   error
	ConvergeErr error
	DeleteErr   error

	next    int
	polls   map[string]int
	names   map[string]string
	calls   []string
	deleted []string
}

var _ resource.Controller = (*Controller)(nil)

// NewController returns a Controller converging after convergeAfter polls.
func NewController(convergeAfter int) *Controller {
	return &Controller{
		ConvergeAfter: convergeAfter,
		polls:         make(map[string]int),
		names:         make(map[string]string),
	}
}

// Create is part of the resource.Controller interface.
func (c *Controller) Create(_ context.Context, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "Create "+name)
	if c.CreateErr != nil {
		return "", c.CreateErr
	}
	c.next++
	id := fmt.Sprintf("id-%d", c.next)
	c.names[id] = name
	c.polls[id] = 0
	return id, nil
}

// IsConverged is part of the resource.Controller interface.
func (c *Controller) IsConverged(_ context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "IsConverged "+id)
	if c.ConvergeErr != nil {
		return false, c.ConvergeErr
	}
	polls, ok := c.polls[id]
	if !ok {
		return false, errors.NotFoundf("resource %q", id)
	}
	if polls < c.ConvergeAfter {
		c.polls[id] = polls + 1
		return false, nil
	}
	return true, nil
}

// Delete is part of the resource.Controller interface.
func (c *Controller) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "Delete "+id)
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	if _, ok := c.names[id]; ok {
		c.deleted = append(c.deleted, id)
	}
	delete(c.names, id)
	delete(c.polls, id)
	return nil
}

// Calls returns every call made so far, in order.
func (c *Controller) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// Names returns the physical names of the resources that currently exist,
// keyed by id.
func (c *Controller) Names() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make(map[string]string, len(c.names))
	for id, name := range c.names {
		names[id] = name
	}
	return names
}

// Deleted returns the ids of the resources removed by Delete.
func (c *Controller) Deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}
