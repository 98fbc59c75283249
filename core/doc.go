// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

/*
Package core exists to hold concepts and pure logic shared by the netstack
domain packages and their callers.

It's most important to be aware of what should *not* go here. In particular:

  - if it makes any reference to the database, it should not be in here.
  - if it has to do with the *specifics* of a cloud API (Neutron networks,
    routers, ...) it should not be in here.

...and more generally, when adding to core:

  - it's fine to import from any subpackage of "github.com/juju/netstack/core"
  - but never import from any other subpackage of "github.com/juju/netstack"
  - don't introduce mutable global state
*/
package core
