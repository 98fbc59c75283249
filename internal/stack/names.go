// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package stack

import (
	"fmt"
	"strings"
)

const shortIDLength = 8

// PhysicalResourceName returns the name given to the remote objects of a
// resource. It only depends on its arguments, so a retried create reuses
// the name of the first attempt.
func PhysicalResourceName(stackName, resourceName, uuid string) string {
	shortID := strings.ReplaceAll(uuid, "-", "")
	if len(shortID) > shortIDLength {
		shortID = shortID[:shortIDLength]
	}
	return fmt.Sprintf("%s-%s-%s", stackName, resourceName, shortID)
}
