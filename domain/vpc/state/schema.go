// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package state

// schema holds the DDL for composite resource records. Records only exist
// while a resource is provisioned; removal of the record is the absent
// state.
var schema = []string{`
CREATE TABLE IF NOT EXISTS composite_resource (
    uuid           TEXT NOT NULL PRIMARY KEY,
    stack_name     TEXT NOT NULL,
    resource_name  TEXT NOT NULL,
    type_name      TEXT NOT NULL,
    physical_name  TEXT NOT NULL,
    provider_id    TEXT NOT NULL DEFAULT '',
    life           TEXT NOT NULL,
    CONSTRAINT chk_composite_resource_life
        CHECK (life IN ('creating', 'active', 'deleting')),
    CONSTRAINT uniq_composite_resource_physical_name
        UNIQUE (physical_name)
);`, `
CREATE UNIQUE INDEX IF NOT EXISTS idx_composite_resource_stack_resource
ON composite_resource (stack_name, resource_name);`,
}
