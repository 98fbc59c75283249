// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package state

import (
	"context"
	"database/sql"

	"github.com/canonical/sqlair"
	"github.com/juju/collections/transform"
	"github.com/juju/errors"
	"github.com/mattn/go-sqlite3"

	"github.com/juju/netstack/core/life"
	"github.com/juju/netstack/domain/vpc"
	vpcerrors "github.com/juju/netstack/domain/vpc/errors"
)

// OpenDB opens the SQLite database at path.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=1&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Annotatef(err, "opening database %q", path)
	}
	// SQLite allows a single writer; serialise access through one
	// connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

// State persists the records of the composite resources managed by an
// orchestration engine.
type State struct {
	plain *sql.DB
	db    *sqlair.DB
}

// NewState returns a new State backed by db.
func NewState(db *sql.DB) *State {
	return &State{
		plain: db,
		db:    sqlair.NewDB(db),
	}
}

// EnsureSchema creates the tables used by State if they do not exist.
func (st *State) EnsureSchema(ctx context.Context) error {
	for _, ddl := range schema {
		if _, err := st.plain.ExecContext(ctx, ddl); err != nil {
			return errors.Annotate(err, "applying schema")
		}
	}
	return nil
}

// AddResource inserts a new record. The record must be creating.
func (st *State) AddResource(ctx context.Context, r vpc.Resource) error {
	if r.Life != life.Creating {
		return errors.NotValidf("adding resource with life %q", r.Life)
	}
	row := fromResource(r)

	stmt, err := sqlair.Prepare(`
INSERT INTO composite_resource (uuid, stack_name, resource_name, type_name, physical_name, provider_id, life)
VALUES ($dbResource.*)`, row)
	if err != nil {
		return errors.Annotate(err, "preparing insert resource statement")
	}

	err = st.db.Query(ctx, stmt, row).Run()
	if isConstraintUnique(err) {
		return errors.WithType(
			errors.Errorf("resource %q in stack %q", r.ResourceName, r.StackName),
			vpcerrors.ResourceAlreadyExists,
		)
	} else if err != nil {
		return errors.Annotatef(err, "adding resource %q", r.UUID)
	}
	return nil
}

// GetResource returns the record with the given UUID.
func (st *State) GetResource(ctx context.Context, uuid string) (vpc.Resource, error) {
	row := dbResource{UUID: uuid}
	stmt, err := sqlair.Prepare(`
SELECT &dbResource.*
FROM   composite_resource
WHERE  uuid = $dbResource.uuid`, row)
	if err != nil {
		return vpc.Resource{}, errors.Annotate(err, "preparing select resource statement")
	}

	err = st.db.Query(ctx, stmt, row).Get(&row)
	if errors.Is(err, sqlair.ErrNoRows) {
		return vpc.Resource{}, errors.WithType(
			errors.Errorf("resource %q", uuid), vpcerrors.ResourceNotFound)
	} else if err != nil {
		return vpc.Resource{}, errors.Annotatef(err, "retrieving resource %q", uuid)
	}
	return row.toResource(), nil
}

// GetResourceByName returns the record of the named resource of a stack.
func (st *State) GetResourceByName(ctx context.Context, stackName, resourceName string) (vpc.Resource, error) {
	row := dbResource{StackName: stackName, ResourceName: resourceName}
	stmt, err := sqlair.Prepare(`
SELECT &dbResource.*
FROM   composite_resource
WHERE  stack_name = $dbResource.stack_name
AND    resource_name = $dbResource.resource_name`, row)
	if err != nil {
		return vpc.Resource{}, errors.Annotate(err, "preparing select resource statement")
	}

	err = st.db.Query(ctx, stmt, row).Get(&row)
	if errors.Is(err, sqlair.ErrNoRows) {
		return vpc.Resource{}, errors.WithType(
			errors.Errorf("resource %q in stack %q", resourceName, stackName), vpcerrors.ResourceNotFound)
	} else if err != nil {
		return vpc.Resource{}, errors.Annotatef(err, "retrieving resource %q in stack %q", resourceName, stackName)
	}
	return row.toResource(), nil
}

// ListResources returns the records of a stack ordered by resource name.
func (st *State) ListResources(ctx context.Context, stackName string) ([]vpc.Resource, error) {
	arg := dbResource{StackName: stackName}
	stmt, err := sqlair.Prepare(`
SELECT   &dbResource.*
FROM     composite_resource
WHERE    stack_name = $dbResource.stack_name
ORDER BY resource_name`, arg)
	if err != nil {
		return nil, errors.Annotate(err, "preparing select resources statement")
	}

	var rows []dbResource
	err = st.db.Query(ctx, stmt, arg).GetAll(&rows)
	if err != nil && !errors.Is(err, sqlair.ErrNoRows) {
		return nil, errors.Annotatef(err, "listing resources in stack %q", stackName)
	}
	return transform.Slice(rows, dbResource.toResource), nil
}

// SetProviderID records the identity returned by the controller when the
// resource was created.
func (st *State) SetProviderID(ctx context.Context, uuid, providerID string) error {
	row := dbResource{UUID: uuid, ProviderID: providerID}
	stmt, err := sqlair.Prepare(`
UPDATE composite_resource
SET    provider_id = $dbResource.provider_id
WHERE  uuid = $dbResource.uuid`, row)
	if err != nil {
		return errors.Annotate(err, "preparing update provider id statement")
	}

	var outcome sqlair.Outcome
	if err := st.db.Query(ctx, stmt, row).Get(&outcome); err != nil {
		return errors.Annotatef(err, "setting provider id of resource %q", uuid)
	}
	return errors.Trace(expectOneRow(outcome, uuid))
}

// SetLife moves the resource to the given lifecycle state. The move must be
// a legal transition from the recorded state. Moving to life.Absent
// removes the record.
func (st *State) SetLife(ctx context.Context, uuid string, to life.Value) error {
	row := dbResource{UUID: uuid, Life: to.String()}
	selectStmt, err := sqlair.Prepare(`
SELECT &dbResource.life
FROM   composite_resource
WHERE  uuid = $dbResource.uuid`, row)
	if err != nil {
		return errors.Annotate(err, "preparing select life statement")
	}
	updateStmt, err := sqlair.Prepare(`
UPDATE composite_resource
SET    life = $dbResource.life
WHERE  uuid = $dbResource.uuid`, row)
	if err != nil {
		return errors.Annotate(err, "preparing update life statement")
	}
	deleteStmt, err := sqlair.Prepare(`
DELETE FROM composite_resource
WHERE  uuid = $dbResource.uuid`, row)
	if err != nil {
		return errors.Annotate(err, "preparing delete resource statement")
	}

	return st.txn(ctx, func(ctx context.Context, tx *sqlair.TX) error {
		var current dbResource
		err := tx.Query(ctx, selectStmt, row).Get(&current)
		if errors.Is(err, sqlair.ErrNoRows) {
			return errors.WithType(errors.Errorf("resource %q", uuid), vpcerrors.ResourceNotFound)
		} else if err != nil {
			return errors.Annotatef(err, "retrieving life of resource %q", uuid)
		}

		if err := life.Transition(life.Value(current.Life), to); err != nil {
			return errors.Annotatef(err, "resource %q", uuid)
		}

		stmt := updateStmt
		if to == life.Absent {
			stmt = deleteStmt
		}
		if err := tx.Query(ctx, stmt, row).Run(); err != nil {
			return errors.Annotatef(err, "setting life of resource %q to %q", uuid, to)
		}
		return nil
	})
}

// RemoveResource deletes the record with the given UUID whatever its
// lifecycle state. It is used for records whose remote objects were never
// created.
func (st *State) RemoveResource(ctx context.Context, uuid string) error {
	row := dbResource{UUID: uuid}
	stmt, err := sqlair.Prepare(`
DELETE FROM composite_resource
WHERE  uuid = $dbResource.uuid`, row)
	if err != nil {
		return errors.Annotate(err, "preparing delete resource statement")
	}

	var outcome sqlair.Outcome
	if err := st.db.Query(ctx, stmt, row).Get(&outcome); err != nil {
		return errors.Annotatef(err, "removing resource %q", uuid)
	}
	return errors.Trace(expectOneRow(outcome, uuid))
}

func (st *State) txn(ctx context.Context, fn func(context.Context, *sqlair.TX) error) error {
	tx, err := st.db.Begin(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "beginning transaction")
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Annotate(tx.Commit(), "committing transaction")
}

func expectOneRow(outcome sqlair.Outcome, uuid string) error {
	affected, err := outcome.Result().RowsAffected()
	if err != nil {
		return errors.Trace(err)
	}
	if affected == 0 {
		return errors.WithType(errors.Errorf("resource %q", uuid), vpcerrors.ResourceNotFound)
	}
	return nil
}

func isConstraintUnique(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
