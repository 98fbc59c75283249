// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package resource defines the contract between the orchestration engine and
// the controllers that provision composite resources against a remote API.
package resource

import (
	"context"
)

// Controller drives the lifecycle of one kind of composite resource.
// Implementations hold no state between calls; everything they need is
// derived from the identity handed back by Create.
type Controller interface {
	// Create issues the provisioning requests for a composite resource with
	// the given name and returns the identity of its primary object. The
	// remote objects may still be building when Create returns.
	Create(ctx context.Context, name string) (string, error)

	// IsConverged reports whether every sub-object of the composite
	// resource identified by id has been built. It has no side effects and
	// may be called repeatedly.
	IsConverged(ctx context.Context, id string) (bool, error)

	// Delete removes every sub-object of the composite resource identified
	// by id. Deleting a resource that no longer exists succeeds.
	Delete(ctx context.Context, id string) error
}

// Mapping associates external resource type names with the controller
// handling them.
type Mapping map[string]Controller
