// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package status

import (
	"github.com/juju/errors"
)

// ResourceFailed is returned when a remote object reports a status that
// will never become built without human intervention.
const ResourceFailed = errors.ConstError("resource failed")

// Status is the provisioning status reported by the remote networking API
// for a network or a router.
type Status string

// String returns a string representation of the Status.
func (s Status) String() string {
	return string(s)
}

const (
	// Build is set while the remote object is still being provisioned.
	Build Status = "BUILD"

	// Active is set once the remote object is provisioned and usable.
	Active Status = "ACTIVE"

	// Down is set when the remote object is provisioned but administratively
	// or operationally down. It still counts as built.
	Down Status = "DOWN"

	// Error is set when provisioning of the remote object failed.
	Error Status = "ERROR"
)

// IsBuilt is the readiness predicate shared by every remote object kind.
// It returns false while the object is still building, true once it is
// active or down, and an error satisfying ResourceFailed for any other
// status.
func IsBuilt(s Status) (bool, error) {
	switch s {
	case Build:
		return false, nil
	case Active, Down:
		return true, nil
	}
	return false, errors.WithType(
		errors.Errorf("resource status %q", s),
		ResourceFailed,
	)
}
