package commands

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/pkg/errs"
)

var ErrRiderNotFound = errors.New("rider not found")

// updateRider loads a rider, applies a change, and persists it in one
// transaction.
func updateRider(
	ctx context.Context,
	uowFactory RiderUoWFactory,
	riderID kernel.UUID,
	mutate func(*rider.Rider) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RiderRepository().Get(ctx, riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRiderNotFound
	}
	if err != nil {
		return err
	}

	if err = mutate(r); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// RegisterRiderCommandHandler onboards new riders.
type RegisterRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewRegisterRiderCommandHandler creates a handler for rider registration.
func NewRegisterRiderCommandHandler(uowFactory RiderUoWFactory) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers the rider in pending approval state.
func (h RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r, err := rider.NewRider(cmd.RiderID(), cmd.Name(), cmd.Phone(), cmd.Vehicle())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ApproveRiderCommandHandler approves riders for dispatch.
type ApproveRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewApproveRiderCommandHandler creates a handler for rider approval.
func NewApproveRiderCommandHandler(uowFactory RiderUoWFactory) ApproveRiderCommandHandler {
	return ApproveRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the rider approved.
func (h ApproveRiderCommandHandler) Handle(ctx context.Context, cmd ApproveRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRider(ctx, h.uowFactory, cmd.RiderID(), func(r *rider.Rider) error {
		r.Approve()
		return nil
	})
}

// SuspendRiderCommandHandler suspends riders from dispatch.
type SuspendRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSuspendRiderCommandHandler creates a handler for rider suspension.
func NewSuspendRiderCommandHandler(uowFactory RiderUoWFactory) SuspendRiderCommandHandler {
	return SuspendRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle suspends the rider. Suspension also takes the rider off shift so
// the dispatch pool never offers work to a blocked account.
func (h SuspendRiderCommandHandler) Handle(ctx context.Context, cmd SuspendRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRider(ctx, h.uowFactory, cmd.RiderID(), func(r *rider.Rider) error {
		r.Suspend()
		return nil
	})
}

// SetRiderAvailabilityCommandHandler moves riders on and off shift.
type SetRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderAvailabilityCommandHandler creates a handler for shift changes.
func NewSetRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle changes the rider's shift state. Going on shift requires an
// approved rider; the aggregate enforces that.
func (h SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRider(ctx, h.uowFactory, cmd.RiderID(), func(r *rider.Rider) error {
		return r.SetAvailable(cmd.Available())
	})
}
