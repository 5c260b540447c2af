package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/pkg/errs"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrRegisterRiderCommandIsNotConstructed = errors.New(
		"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
	)
	ErrApproveRiderCommandIsNotConstructed = errors.New(
		"ApproveRiderCommand must be created via NewApproveRiderCommand constructor",
	)
	ErrSuspendRiderCommandIsNotConstructed = errors.New(
		"SuspendRiderCommand must be created via NewSuspendRiderCommand constructor",
	)
	ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
		"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
	)
)

// RegisterRiderCommand represents onboarding a new rider. Riders start
// pending approval and off shift.
type RegisterRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	name    string
	phone   string
	vehicle rider.Vehicle

	guard guard.ConstructorGuard
}

// NewRegisterRiderCommand creates a command to register a rider.
func NewRegisterRiderCommand(
	riderID kernel.UUID,
	name string,
	phone string,
	vehicle rider.Vehicle,
) (RegisterRiderCommand, error) {
	if err := errors.Join(riderID.Validate(), vehicle.Validate()); err != nil {
		return RegisterRiderCommand{}, err
	}
	if name == "" {
		return RegisterRiderCommand{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return RegisterRiderCommand{}, errs.NewValueIsRequiredError("phone")
	}
	return RegisterRiderCommand{
		riderID: riderID,
		name:    name,
		phone:   phone,
		vehicle: vehicle,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

// RiderID returns the identifier for the new rider.
func (c RegisterRiderCommand) RiderID() kernel.UUID { return c.riderID }

// Name returns the rider's display name.
func (c RegisterRiderCommand) Name() string { return c.name }

// Phone returns the rider's contact number.
func (c RegisterRiderCommand) Phone() string { return c.phone }

// Vehicle returns the rider's vehicle type.
func (c RegisterRiderCommand) Vehicle() rider.Vehicle { return c.vehicle }

// ApproveRiderCommand represents approving a rider for dispatch.
type ApproveRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveRiderCommand creates a command to approve a rider.
func NewApproveRiderCommand(riderID kernel.UUID) (ApproveRiderCommand, error) {
	if err := riderID.Validate(); err != nil {
		return ApproveRiderCommand{}, err
	}
	return ApproveRiderCommand{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveRiderCommand) Validate() error {
	return c.guard.Validate(ErrApproveRiderCommandIsNotConstructed)
}

// RiderID returns the rider to approve.
func (c ApproveRiderCommand) RiderID() kernel.UUID { return c.riderID }

// SuspendRiderCommand represents suspending a rider from dispatch.
type SuspendRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSuspendRiderCommand creates a command to suspend a rider.
func NewSuspendRiderCommand(riderID kernel.UUID) (SuspendRiderCommand, error) {
	if err := riderID.Validate(); err != nil {
		return SuspendRiderCommand{}, err
	}
	return SuspendRiderCommand{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SuspendRiderCommand) Validate() error {
	return c.guard.Validate(ErrSuspendRiderCommandIsNotConstructed)
}

// RiderID returns the rider to suspend.
func (c SuspendRiderCommand) RiderID() kernel.UUID { return c.riderID }

// SetRiderAvailabilityCommand represents a rider going on or off shift.
type SetRiderAvailabilityCommand struct { //nolint:recvcheck //using for validation
	riderID   kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetRiderAvailabilityCommand creates a command to change a rider's
// shift state. Going on shift requires an approved rider; the aggregate
// enforces that.
func NewSetRiderAvailabilityCommand(riderID kernel.UUID, available bool) (SetRiderAvailabilityCommand, error) {
	if err := riderID.Validate(); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}
	return SetRiderAvailabilityCommand{
		riderID:   riderID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

// RiderID returns the rider changing shift state.
func (c SetRiderAvailabilityCommand) RiderID() kernel.UUID { return c.riderID }

// Available returns the requested shift state.
func (c SetRiderAvailabilityCommand) Available() bool { return c.available }
