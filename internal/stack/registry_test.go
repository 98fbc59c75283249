// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package stack

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/netstack/core/resource"
	resourcetesting "github.com/juju/netstack/core/resource/testing"
)

type registrySuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&registrySuite{})

func (s *registrySuite) TestController(c *gc.C) {
	vpcController := resourcetesting.NewController(0)
	subnetController := resourcetesting.NewController(0)

	registry, err := NewRegistry(
		resource.Mapping{"AWS::EC2::VPC": vpcController},
		resource.Mapping{"AWS::EC2::Subnet": subnetController},
	)
	c.Assert(err, jc.ErrorIsNil)

	controller, err := registry.Controller("AWS::EC2::VPC")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(controller, gc.Equals, resource.Controller(vpcController))

	c.Check(registry.Types(), jc.DeepEquals, []string{"AWS::EC2::Subnet", "AWS::EC2::VPC"})
}

func (s *registrySuite) TestControllerNotFound(c *gc.C) {
	registry, err := NewRegistry()
	c.Assert(err, jc.ErrorIsNil)

	_, err = registry.Controller("AWS::EC2::VPC")
	c.Check(err, jc.ErrorIs, errors.NotFound)
	c.Check(err, gc.ErrorMatches, `resource type "AWS::EC2::VPC" not found`)
	c.Check(registry.Types(), gc.HasLen, 0)
}

func (s *registrySuite) TestEmptyMapping(c *gc.C) {
	registry, err := NewRegistry(resource.Mapping{}, nil)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(registry.Types(), gc.HasLen, 0)
}

func (s *registrySuite) TestDuplicateType(c *gc.C) {
	_, err := NewRegistry(
		resource.Mapping{"AWS::EC2::VPC": resourcetesting.NewController(0)},
		resource.Mapping{"AWS::EC2::VPC": resourcetesting.NewController(0)},
	)
	c.Check(err, jc.ErrorIs, errors.AlreadyExists)
}

func (s *registrySuite) TestNilController(c *gc.C) {
	_, err := NewRegistry(resource.Mapping{"AWS::EC2::VPC": nil})
	c.Check(err, jc.ErrorIs, errors.NotValid)
}

type namesSuite struct{}

var _ = gc.Suite(&namesSuite{})

func (*namesSuite) TestPhysicalResourceName(c *gc.C) {
	name := PhysicalResourceName("stack", "net", "6f2b9a51-0bd4-4f5e-8d2a-3c1f7e9b0a12")
	c.Check(name, gc.Equals, "stack-net-6f2b9a51")
	c.Check(PhysicalResourceName("stack", "net", "6f2b9a51-0bd4-4f5e-8d2a-3c1f7e9b0a12"), gc.Equals, name)
}

func (*namesSuite) TestPhysicalResourceNameShortID(c *gc.C) {
	c.Check(PhysicalResourceName("stack", "net", "1"), gc.Equals, "stack-net-1")
}
