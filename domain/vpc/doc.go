// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package vpc models a composite network resource made of a network and a
// router. The two remote objects are not linked by reference: a router
// belongs to a VPC if and only if its name equals the name of the VPC
// network. At most one router may carry that name.
package vpc
