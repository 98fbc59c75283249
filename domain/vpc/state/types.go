// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package state

import (
	"github.com/juju/netstack/core/life"
	"github.com/juju/netstack/domain/vpc"
)

// dbResource represents a row of the composite_resource table.
type dbResource struct {
	UUID         string `db:"uuid"`
	StackName    string `db:"stack_name"`
	ResourceName string `db:"resource_name"`
	TypeName     string `db:"type_name"`
	PhysicalName string `db:"physical_name"`
	ProviderID   string `db:"provider_id"`
	Life         string `db:"life"`
}

func fromResource(r vpc.Resource) dbResource {
	return dbResource{
		UUID:         r.UUID,
		StackName:    r.StackName,
		ResourceName: r.ResourceName,
		TypeName:     r.TypeName,
		PhysicalName: r.PhysicalName,
		ProviderID:   r.ProviderID,
		Life:         r.Life.String(),
	}
}

func (r dbResource) toResource() vpc.Resource {
	return vpc.Resource{
		UUID:         r.UUID,
		StackName:    r.StackName,
		ResourceName: r.ResourceName,
		TypeName:     r.TypeName,
		PhysicalName: r.PhysicalName,
		ProviderID:   r.ProviderID,
		Life:         life.Value(r.Life),
	}
}
