// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package life

import (
	"github.com/juju/errors"
)

// InvalidTransition is returned when a composite resource is asked to move
// between two lifecycle states that are not connected.
const InvalidTransition = errors.ConstError("invalid life transition")

// Value holds the lifecycle state of a composite resource.
type Value string

const (
	// Absent means nothing exists for the resource, either because it was
	// never created or because it has been fully removed.
	Absent Value = "absent"

	// Creating means the provisioning requests have been issued and the
	// identity recorded, but the remote objects have not converged yet.
	Creating Value = "creating"

	// Active means every sub-object reported a built status.
	Active Value = "active"

	// Deleting means removal has been requested and may still be in
	// progress or need retrying.
	Deleting Value = "deleting"
)

// transitions lists, for each state, the states it may move to.
var transitions = map[Value][]Value{
	Absent:   {Creating},
	Creating: {Active, Deleting},
	Active:   {Deleting},
	Deleting: {Deleting, Absent},
}

// String returns the string form of the value.
func (v Value) String() string {
	return string(v)
}

// Validate returns an error if the value is not a known lifecycle state.
func (v Value) Validate() error {
	if _, ok := transitions[v]; ok {
		return nil
	}
	return errors.NotValidf("life value %q", v)
}

// Transition checks that moving from one state to the other is legal.
func Transition(from, to Value) error {
	if err := from.Validate(); err != nil {
		return errors.Trace(err)
	}
	if err := to.Validate(); err != nil {
		return errors.Trace(err)
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.WithType(
		errors.Errorf("cannot move from %q to %q", from, to),
		InvalidTransition,
	)
}

// IsProvisioned returns true if the resource has remote objects that may
// need removing.
func IsProvisioned(v Value) bool {
	return v == Creating || v == Active || v == Deleting
}
