// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package stack

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/retry"
	"github.com/juju/utils/v4"

	"github.com/juju/netstack/core/life"
	"github.com/juju/netstack/core/resource"
	"github.com/juju/netstack/domain/vpc"
	vpcerrors "github.com/juju/netstack/domain/vpc/errors"
)

const (
	// ConvergenceTimeout is returned when a resource does not converge
	// within the configured poll timeout.
	ConvergenceTimeout = errors.ConstError("convergence timed out")

	errNotConverged = errors.ConstError("not converged")
)

// Logger represents the logging methods used by the engine.
type Logger interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warningf(string, ...interface{})
}

// State describes the persistence used by the engine to keep its records.
type State interface {
	AddResource(ctx context.Context, r vpc.Resource) error
	GetResource(ctx context.Context, uuid string) (vpc.Resource, error)
	GetResourceByName(ctx context.Context, stackName, resourceName string) (vpc.Resource, error)
	ListResources(ctx context.Context, stackName string) ([]vpc.Resource, error)
	SetProviderID(ctx context.Context, uuid, providerID string) error
	SetLife(ctx context.Context, uuid string, to life.Value) error
	RemoveResource(ctx context.Context, uuid string) error
}

// Config holds the dependencies and parameters of an Engine.
type Config struct {
	Registry    *Registry
	State       State
	Clock       clock.Clock
	Logger      Logger
	Metrics     *Collector
	PollDelay   time.Duration
	PollTimeout time.Duration
}

// Validate returns an error if the config cannot be used to start an
// Engine.
func (config Config) Validate() error {
	if config.Registry == nil {
		return errors.NotValidf("nil Registry")
	}
	if config.State == nil {
		return errors.NotValidf("nil State")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	if config.Metrics == nil {
		return errors.NotValidf("nil Metrics")
	}
	if config.PollDelay <= 0 {
		return errors.NotValidf("non-positive PollDelay")
	}
	if config.PollTimeout < config.PollDelay {
		return errors.NotValidf("PollTimeout shorter than PollDelay")
	}
	return nil
}

// Engine drives composite resources through their lifecycle, keeping a
// record of each one and owning the polling, timeouts and cancellation
// that controllers leave to their callers.
type Engine struct {
	config Config
}

// NewEngine returns an Engine using the given config.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Engine{config: config}, nil
}

// Create provisions the resource resourceName of type typeName in the
// given stack and returns its record. The remote objects may still be
// building when Create returns; see WaitConverged.
//
// A record left in the creating state by an earlier failed attempt is
// reused, so the physical name does not change between attempts. If that
// attempt left remote objects behind, their identity is kept and they are
// not created again; WaitConverged reports what is missing and Delete
// removes what exists.
func (e *Engine) Create(ctx context.Context, stackName, resourceName, typeName string) (vpc.Resource, error) {
	controller, err := e.config.Registry.Controller(typeName)
	if err != nil {
		return vpc.Resource{}, errors.Trace(err)
	}

	r, err := e.config.State.GetResourceByName(ctx, stackName, resourceName)
	switch {
	case errors.Is(err, vpcerrors.ResourceNotFound):
		if r, err = e.newResource(ctx, stackName, resourceName, typeName); err != nil {
			return vpc.Resource{}, errors.Trace(err)
		}
	case err != nil:
		return vpc.Resource{}, errors.Trace(err)
	case r.TypeName != typeName:
		return vpc.Resource{}, errors.Annotatef(vpcerrors.ResourceAlreadyExists,
			"resource %q in stack %q has type %q", resourceName, stackName, r.TypeName)
	case r.Life != life.Creating:
		return vpc.Resource{}, errors.Annotatef(vpcerrors.ResourceAlreadyExists,
			"resource %q in stack %q is %s", resourceName, stackName, r.Life)
	case r.ProviderID != "":
		e.config.Logger.Debugf("resource %q already created as %q", r.PhysicalName, r.ProviderID)
		return r, nil
	default:
		e.config.Logger.Infof("retrying creation of resource %q", r.PhysicalName)
	}

	providerID, createErr := controller.Create(ctx, r.PhysicalName)
	e.config.Metrics.recordOperation(typeName, operationCreate, createErr)
	// A partial create still identifies remote objects that Delete must
	// be able to find.
	if providerID != "" {
		if err := e.config.State.SetProviderID(ctx, r.UUID, providerID); err != nil {
			return vpc.Resource{}, errors.Trace(err)
		}
		r.ProviderID = providerID
	}
	if createErr != nil {
		if providerID != "" {
			e.config.Logger.Warningf("resource %q partially created as %q", r.PhysicalName, providerID)
		}
		return vpc.Resource{}, errors.Annotatef(createErr, "creating resource %q", r.PhysicalName)
	}
	e.config.Logger.Infof("created resource %q as %q", r.PhysicalName, providerID)
	return r, nil
}

func (e *Engine) newResource(ctx context.Context, stackName, resourceName, typeName string) (vpc.Resource, error) {
	uuid, err := utils.NewUUID()
	if err != nil {
		return vpc.Resource{}, errors.Trace(err)
	}
	r := vpc.Resource{
		UUID:         uuid.String(),
		StackName:    stackName,
		ResourceName: resourceName,
		TypeName:     typeName,
		PhysicalName: PhysicalResourceName(stackName, resourceName, uuid.String()),
		Life:         life.Creating,
	}
	if err := e.config.State.AddResource(ctx, r); err != nil {
		return vpc.Resource{}, errors.Trace(err)
	}
	return r, nil
}

// WaitConverged polls the controller of the resource until it reports the
// resource as converged, the poll timeout expires or ctx is done. A
// converged resource becomes active.
func (e *Engine) WaitConverged(ctx context.Context, uuid string) error {
	r, err := e.config.State.GetResource(ctx, uuid)
	if err != nil {
		return errors.Trace(err)
	}
	switch {
	case r.Life == life.Active:
		return nil
	case r.Life != life.Creating:
		return errors.NotValidf("waiting on %s resource %q", r.Life, r.PhysicalName)
	case r.ProviderID == "":
		return errors.NotValidf("waiting on resource %q that was never created", r.PhysicalName)
	}
	controller, err := e.config.Registry.Controller(r.TypeName)
	if err != nil {
		return errors.Trace(err)
	}

	started := e.config.Clock.Now()
	err = e.poll(ctx, controller, r)
	e.config.Metrics.recordOperation(r.TypeName, operationWait, err)
	if err != nil {
		return errors.Trace(err)
	}
	e.config.Metrics.observeConvergence(r.TypeName, e.config.Clock.Now().Sub(started).Seconds())

	if err := e.config.State.SetLife(ctx, r.UUID, life.Active); err != nil {
		return errors.Trace(err)
	}
	e.config.Logger.Infof("resource %q is active", r.PhysicalName)
	return nil
}

func (e *Engine) poll(ctx context.Context, controller resource.Controller, r vpc.Resource) error {
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			converged, err := controller.IsConverged(ctx, r.ProviderID)
			if err != nil {
				return errors.Annotatef(err, "checking resource %q", r.PhysicalName)
			}
			if !converged {
				return errNotConverged
			}
			return nil
		},
		IsFatalError: func(err error) bool {
			return !errors.Is(err, errNotConverged)
		},
		NotifyFunc: func(_ error, attempt int) {
			e.config.Logger.Debugf("resource %q not converged after %d checks", r.PhysicalName, attempt)
		},
		Delay:       e.config.PollDelay,
		MaxDuration: e.config.PollTimeout,
		Clock:       e.config.Clock,
		Stop:        ctx.Done(),
	})
	switch {
	case err == nil:
		return nil
	case retry.IsDurationExceeded(err):
		// Zero routers carrying the network's name looks exactly like a
		// router that is still building.
		return errors.WithType(errors.Errorf(
			"resource %q did not converge within %s, a router named %q may be missing",
			r.PhysicalName, e.config.PollTimeout, r.PhysicalName,
		), ConvergenceTimeout)
	case retry.IsRetryStopped(err):
		return errors.Annotatef(ctx.Err(), "waiting for resource %q", r.PhysicalName)
	default:
		return err
	}
}

// Delete removes the remote objects of the resource and then its record.
// Deleting a resource without a record succeeds. A failed delete leaves the
// record in the deleting state so the delete can be retried.
func (e *Engine) Delete(ctx context.Context, uuid string) error {
	r, err := e.config.State.GetResource(ctx, uuid)
	if errors.Is(err, vpcerrors.ResourceNotFound) {
		e.config.Logger.Debugf("resource %q already deleted", uuid)
		return nil
	} else if err != nil {
		return errors.Trace(err)
	}
	if r.ProviderID == "" {
		e.config.Logger.Warningf("resource %q has no remote objects, removing record", r.PhysicalName)
		return errors.Trace(e.config.State.RemoveResource(ctx, r.UUID))
	}
	controller, err := e.config.Registry.Controller(r.TypeName)
	if err != nil {
		return errors.Trace(err)
	}
	if err := e.config.State.SetLife(ctx, r.UUID, life.Deleting); err != nil {
		return errors.Trace(err)
	}
	err = controller.Delete(ctx, r.ProviderID)
	e.config.Metrics.recordOperation(r.TypeName, operationDelete, err)
	if err != nil {
		return errors.Annotatef(err, "deleting resource %q", r.PhysicalName)
	}

	if err := e.config.State.SetLife(ctx, r.UUID, life.Absent); err != nil {
		return errors.Trace(err)
	}
	e.config.Logger.Infof("deleted resource %q", r.PhysicalName)
	return nil
}

// Resource returns the record with the given uuid.
func (e *Engine) Resource(ctx context.Context, uuid string) (vpc.Resource, error) {
	r, err := e.config.State.GetResource(ctx, uuid)
	return r, errors.Trace(err)
}

// Resources returns the records of the given stack.
func (e *Engine) Resources(ctx context.Context, stackName string) ([]vpc.Resource, error) {
	resources, err := e.config.State.ListResources(ctx, stackName)
	return resources, errors.Trace(err)
}
