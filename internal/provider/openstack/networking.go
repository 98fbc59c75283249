// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package openstack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-goose/goose/v5/client"
	gooseerrors "github.com/go-goose/goose/v5/errors"
	goosehttp "github.com/go-goose/goose/v5/http"
	"github.com/juju/errors"

	"github.com/juju/netstack/core/status"
	"github.com/juju/netstack/domain/vpc"
)

const (
	networkServiceType = "network"
	networkAPIVersion  = "v2.0"

	apiNetworks = "networks"
	apiRouters  = "routers"
)

// Requester sends requests to an OpenStack service. It is satisfied by
// goose's client.Client.
type Requester interface {
	SendRequest(method, svcType, apiVersion, apiCall string, requestData *goosehttp.RequestData) error
}

// networkV2 is the Neutron representation of a network.
type networkV2 struct {
	Id     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// routerV2 is the Neutron representation of a router.
type routerV2 struct {
	Id     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// Networking manages Neutron networks and routers.
type Networking struct {
	client Requester
}

// NewNetworking returns a Networking sending its requests through client.
func NewNetworking(client Requester) *Networking {
	return &Networking{client: client}
}

// CreateNetwork requests a network with the given name and returns its id.
func (n *Networking) CreateNetwork(_ context.Context, name string) (string, error) {
	var req, resp struct {
		Network networkV2 `json:"network"`
	}
	req.Network.Name = name
	requestData := goosehttp.RequestData{
		ReqValue:       &req,
		RespValue:      &resp,
		ExpectedStatus: []int{http.StatusCreated},
	}
	if err := n.client.SendRequest(client.POST, networkServiceType, networkAPIVersion, apiNetworks, &requestData); err != nil {
		return "", errors.Annotatef(err, "creating network %q", name)
	}
	return resp.Network.Id, nil
}

// CreateRouter requests a router with the given name and returns its id.
func (n *Networking) CreateRouter(_ context.Context, name string) (string, error) {
	var req, resp struct {
		Router routerV2 `json:"router"`
	}
	req.Router.Name = name
	requestData := goosehttp.RequestData{
		ReqValue:       &req,
		RespValue:      &resp,
		ExpectedStatus: []int{http.StatusCreated},
	}
	if err := n.client.SendRequest(client.POST, networkServiceType, networkAPIVersion, apiRouters, &requestData); err != nil {
		return "", errors.Annotatef(err, "creating router %q", name)
	}
	return resp.Router.Id, nil
}

// Network returns the network with the given id.
func (n *Networking) Network(_ context.Context, id string) (vpc.Network, error) {
	var resp struct {
		Network networkV2 `json:"network"`
	}
	requestData := goosehttp.RequestData{
		RespValue:      &resp,
		ExpectedStatus: []int{http.StatusOK},
	}
	apiCall := fmt.Sprintf("%s/%s", apiNetworks, id)
	if err := n.client.SendRequest(client.GET, networkServiceType, networkAPIVersion, apiCall, &requestData); err != nil {
		return vpc.Network{}, maybeNotFound(err, "network %q", id)
	}
	return vpc.Network{
		ID:     resp.Network.Id,
		Name:   resp.Network.Name,
		Status: status.Status(resp.Network.Status),
	}, nil
}

// RoutersByName returns the routers whose name is exactly name.
func (n *Networking) RoutersByName(_ context.Context, name string) ([]vpc.Router, error) {
	var resp struct {
		Routers []routerV2 `json:"routers"`
	}
	params := url.Values{}
	params.Set("name", name)
	requestData := goosehttp.RequestData{
		RespValue:      &resp,
		Params:         &params,
		ExpectedStatus: []int{http.StatusOK},
	}
	if err := n.client.SendRequest(client.GET, networkServiceType, networkAPIVersion, apiRouters, &requestData); err != nil {
		return nil, errors.Annotatef(err, "listing routers named %q", name)
	}

	// The name filter is applied by the server; guard against servers
	// that ignore it.
	var routers []vpc.Router
	for _, r := range resp.Routers {
		if r.Name != name {
			continue
		}
		routers = append(routers, vpc.Router{
			ID:     r.Id,
			Name:   r.Name,
			Status: status.Status(r.Status),
		})
	}
	return routers, nil
}

// DeleteNetwork removes the network with the given id.
func (n *Networking) DeleteNetwork(_ context.Context, id string) error {
	requestData := goosehttp.RequestData{
		ExpectedStatus: []int{http.StatusNoContent},
	}
	apiCall := fmt.Sprintf("%s/%s", apiNetworks, id)
	if err := n.client.SendRequest(client.DELETE, networkServiceType, networkAPIVersion, apiCall, &requestData); err != nil {
		return maybeNotFound(err, "network %q", id)
	}
	return nil
}

// DeleteRouter removes the router with the given id.
func (n *Networking) DeleteRouter(_ context.Context, id string) error {
	requestData := goosehttp.RequestData{
		ExpectedStatus: []int{http.StatusNoContent},
	}
	apiCall := fmt.Sprintf("%s/%s", apiRouters, id)
	if err := n.client.SendRequest(client.DELETE, networkServiceType, networkAPIVersion, apiCall, &requestData); err != nil {
		return maybeNotFound(err, "router %q", id)
	}
	return nil
}

// maybeNotFound turns goose not found errors into errors satisfying
// errors.NotFound. The goose error stays reachable through errors.Is.
func maybeNotFound(err error, format string, args ...interface{}) error {
	if gooseerrors.IsNotFound(err) {
		return errors.NewNotFound(err, fmt.Sprintf(format, args...))
	}
	return errors.Annotatef(err, format, args...)
}
