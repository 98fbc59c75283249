// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package vpc

import (
	"github.com/juju/netstack/core/life"
	"github.com/juju/netstack/core/status"
)

// ResourceType is the external type name under which the network and
// router pair is registered.
const ResourceType = "AWS::EC2::VPC"

// Network is the remote representation of the primary object of a VPC.
type Network struct {
	// ID is the provider assigned identity of the network. It is also the
	// identity of the VPC as a whole.
	ID string

	// Name is the physical name of the VPC. The router belonging to the
	// VPC carries the same name.
	Name string

	// Status is the provisioning status reported for the network.
	Status status.Status
}

// Router is the remote representation of the router linked to a VPC
// network by name.
type Router struct {
	ID     string
	Name   string
	Status status.Status
}

// Resource is the record an orchestration engine keeps for a composite
// resource it manages.
type Resource struct {
	// UUID identifies the record.
	UUID string

	// StackName and ResourceName identify the resource within its owning
	// stack.
	StackName    string
	ResourceName string

	// TypeName is the external type name the resource was registered under.
	TypeName string

	// PhysicalName is the name given to the remote objects.
	PhysicalName string

	// ProviderID is the identity returned by the controller on create. It
	// is empty until creation of the primary object succeeds.
	ProviderID string

	// Life is the lifecycle state of the resource.
	Life life.Value
}
