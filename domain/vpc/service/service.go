// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import (
	"context"

	"github.com/juju/errors"

	"github.com/juju/netstack/core/resource"
	"github.com/juju/netstack/core/status"
	"github.com/juju/netstack/domain/vpc"
	vpcerrors "github.com/juju/netstack/domain/vpc/errors"
)

// Networking describes the remote networking API needed to manage a VPC.
// Lookups and deletes of objects that no longer exist must return an error
// satisfying errors.NotFound. Every other failure is returned as is.
type Networking interface {
	// CreateNetwork requests a network with the given name and returns its
	// identity. The network may still be building on return.
	CreateNetwork(ctx context.Context, name string) (string, error)
	// CreateRouter requests a router with the given name and returns its
	// identity. The router may still be building on return.
	CreateRouter(ctx context.Context, name string) (string, error)
	// Network returns the network with the given identity.
	Network(ctx context.Context, id string) (vpc.Network, error)
	// RoutersByName returns every router whose name is exactly name.
	RoutersByName(ctx context.Context, name string) ([]vpc.Router, error)
	// DeleteNetwork removes the network with the given identity.
	DeleteNetwork(ctx context.Context, id string) error
	// DeleteRouter removes the router with the given identity.
	DeleteRouter(ctx context.Context, id string) error
}

// Service provisions and removes VPCs. It keeps no state between calls.
type Service struct {
	networking Networking
}

var _ resource.Controller = (*Service)(nil)

// NewService returns a new Service using the given networking API.
func NewService(networking Networking) *Service {
	return &Service{
		networking: networking,
	}
}

// ResourceMapping returns the registration of the VPC resource type. No
// type is registered when networking is not available.
func ResourceMapping(networking Networking) resource.Mapping {
	if networking == nil {
		return resource.Mapping{}
	}
	return resource.Mapping{
		vpc.ResourceType: NewService(networking),
	}
}

// Create requests a network and a router, both called name, and returns
// the identity of the network. Neither object is waited on. A failure to
// create the router is returned together with the identity of the network,
// which is not removed; Delete copes with partially created VPCs.
func (s *Service) Create(ctx context.Context, name string) (string, error) {
	id, err := s.networking.CreateNetwork(ctx, name)
	if err != nil {
		return "", err
	}
	if _, err := s.networking.CreateRouter(ctx, name); err != nil {
		return id, err
	}
	return id, nil
}

// Network returns the network of the VPC identified by id. An error
// satisfying errors.NotFound is returned if it no longer exists.
func (s *Service) Network(ctx context.Context, id string) (vpc.Network, error) {
	return s.networking.Network(ctx, id)
}

// Router returns the router linked to the VPC identified by id, found by
// the name of the VPC network. A nil router is returned when there is none,
// which happens when the network was created by other means. An error
// satisfying AmbiguousLinkage is returned when several routers match.
func (s *Service) Router(ctx context.Context, id string) (*vpc.Router, error) {
	network, err := s.Network(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.routerFor(ctx, network)
}

// routerFor returns the router sharing the name of network.
func (s *Service) routerFor(ctx context.Context, network vpc.Network) (*vpc.Router, error) {
	routers, err := s.networking.RoutersByName(ctx, network.Name)
	if err != nil {
		return nil, err
	}
	switch len(routers) {
	case 0:
		return nil, nil
	case 1:
		return &routers[0], nil
	}
	return nil, errors.WithType(
		errors.Errorf("%d routers found with name %q", len(routers), network.Name),
		vpcerrors.AmbiguousLinkage,
	)
}

// IsConverged reports whether both the network and the router of the VPC
// identified by id are built. The router is not looked up while the
// network is still building. A VPC without a router never converges.
func (s *Service) IsConverged(ctx context.Context, id string) (bool, error) {
	network, err := s.Network(ctx, id)
	if err != nil {
		return false, err
	}
	if built, err := status.IsBuilt(network.Status); err != nil || !built {
		return false, errors.Annotatef(err, "network %q", id)
	}

	router, err := s.routerFor(ctx, network)
	if err != nil || router == nil {
		return false, err
	}
	built, err := status.IsBuilt(router.Status)
	return built, errors.Annotatef(err, "router %q", router.ID)
}

// Delete removes the router and then the network of the VPC identified by
// id. Objects that are already gone are ignored, so Delete may be called
// any number of times. If the router cannot be removed the network is left
// in place, because the router is only reachable through the network name.
func (s *Service) Delete(ctx context.Context, id string) error {
	router, err := s.Router(ctx, id)
	if err != nil && !errors.Is(err, errors.NotFound) {
		return err
	}
	if router != nil {
		if err := s.networking.DeleteRouter(ctx, router.ID); err != nil && !errors.Is(err, errors.NotFound) {
			return err
		}
	}
	if err := s.networking.DeleteNetwork(ctx, id); err != nil && !errors.Is(err, errors.NotFound) {
		return err
	}
	return nil
}
