package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
		"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
	)
	ErrMarkPickedUpCommandIsNotConstructed = errors.New(
		"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
	)
	ErrStartDeliveryCommandIsNotConstructed = errors.New(
		"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
	)
	ErrCompleteAssignmentCommandIsNotConstructed = errors.New(
		"CompleteAssignmentCommand must be created via NewCompleteAssignmentCommand constructor",
	)
	ErrCancelAssignmentCommandIsNotConstructed = errors.New(
		"CancelAssignmentCommand must be created via NewCancelAssignmentCommand constructor",
	)
	ErrCancelReasonIsRequired = errors.New("cancellation reason is required")
)

// AcceptAssignmentCommand represents a rider confirming an offered batch.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a command to accept an assignment.
func NewAcceptAssignmentCommand(assignmentID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return AcceptAssignmentCommand{}, err
	}
	return AcceptAssignmentCommand{
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the assignment to accept.
func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// MarkPickedUpCommand represents a rider collecting the batch's packages.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to record the pickup.
func NewMarkPickedUpCommand(assignmentID kernel.UUID) (MarkPickedUpCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return MarkPickedUpCommand{}, err
	}
	return MarkPickedUpCommand{
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// AssignmentID returns the assignment being picked up.
func (c MarkPickedUpCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// StartDeliveryCommand represents a rider leaving the pharmacy.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to start the delivery run.
func NewStartDeliveryCommand(assignmentID kernel.UUID) (StartDeliveryCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return StartDeliveryCommand{}, err
	}
	return StartDeliveryCommand{
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// AssignmentID returns the assignment starting delivery.
func (c StartDeliveryCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// CompleteAssignmentCommand represents a rider finishing the batch.
type CompleteAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteAssignmentCommand creates a command to complete an assignment.
func NewCompleteAssignmentCommand(assignmentID kernel.UUID) (CompleteAssignmentCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return CompleteAssignmentCommand{}, err
	}
	return CompleteAssignmentCommand{
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the assignment to complete.
func (c CompleteAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// CancelAssignmentCommand represents abandoning an assignment with a reason.
type CancelAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewCancelAssignmentCommand creates a command to cancel an assignment.
func NewCancelAssignmentCommand(assignmentID kernel.UUID, reason string) (CancelAssignmentCommand, error) {
	cmd := CancelAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := assignmentID.Validate(); err != nil {
		return CancelAssignmentCommand{}, err
	}
	if reason == "" {
		return CancelAssignmentCommand{}, ErrCancelReasonIsRequired
	}

	cmd.assignmentID = assignmentID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the assignment to cancel.
func (c CancelAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// Reason returns why the assignment is being cancelled.
func (c CancelAssignmentCommand) Reason() string { return c.reason }
