// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package errors

import "github.com/juju/errors"

const (
	// AmbiguousLinkage is returned when more than one router carries the
	// name of a VPC network. It is never resolved automatically.
	AmbiguousLinkage = errors.ConstError("ambiguous router linkage")

	// ResourceNotFound is returned when a composite resource record does
	// not exist.
	ResourceNotFound = errors.ConstError("resource not found")

	// ResourceAlreadyExists is returned when a composite resource record
	// with the same identity or physical name already exists.
	ResourceAlreadyExists = errors.ConstError("resource already exists")
)
