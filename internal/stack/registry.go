// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package stack

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/juju/netstack/core/resource"
)

// Registry resolves external resource type names to the controllers
// handling them.
type Registry struct {
	controllers map[string]resource.Controller
}

// NewRegistry returns a Registry holding every entry of the given
// mappings. A type name registered more than once is an error.
func NewRegistry(mappings ...resource.Mapping) (*Registry, error) {
	controllers := make(map[string]resource.Controller)
	for _, mapping := range mappings {
		for typeName, controller := range mapping {
			if typeName == "" {
				return nil, errors.NotValidf("empty resource type name")
			}
			if controller == nil {
				return nil, errors.NotValidf("nil controller for resource type %q", typeName)
			}
			if _, ok := controllers[typeName]; ok {
				return nil, errors.AlreadyExistsf("resource type %q", typeName)
			}
			controllers[typeName] = controller
		}
	}
	return &Registry{controllers: controllers}, nil
}

// Controller returns the controller registered for typeName.
func (r *Registry) Controller(typeName string) (resource.Controller, error) {
	controller, ok := r.controllers[typeName]
	if !ok {
		return nil, errors.NotFoundf("resource type %q", typeName)
	}
	return controller, nil
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	types := set.NewStrings()
	for typeName := range r.controllers {
		types.Add(typeName)
	}
	return types.SortedValues()
}
