package dispatch

import (
	"errors"
	"fmt"

	"pharmadispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned for any assignment status change that is
// not an edge of the lifecycle graph. The assignment is left unchanged.
var ErrInvalidTransition = errors.New("invalid assignment status transition")

// Status represents the lifecycle state of a rider assignment.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAssigned means the batch was offered to a rider.
	StatusAssigned

	// StatusAccepted means the rider confirmed the assignment.
	StatusAccepted

	// StatusPickedUp means the rider collected all packages.
	StatusPickedUp

	// StatusDelivering means the rider is en route to customers.
	StatusDelivering

	// StatusCompleted is terminal; all orders were delivered.
	StatusCompleted

	// StatusCancelled is terminal; the assignment was abandoned.
	StatusCancelled

	// StatusReassigned is terminal; the batch went to another rider.
	StatusReassigned
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusAssigned:   "assigned",
		StatusAccepted:   "accepted",
		StatusPickedUp:   "picked_up",
		StatusDelivering: "delivering",
		StatusCompleted:  "completed",
		StatusCancelled:  "cancelled",
		StatusReassigned: "reassigned",
	}
}

// statusTransitions is the allowed-edge table. Cancellation and
// reassignment stay open from every non-terminal state; a rider stranded
// mid-route hands the packages back and the batch goes out again.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusAssigned:   {StatusAccepted, StatusCancelled, StatusReassigned},
		StatusAccepted:   {StatusPickedUp, StatusCancelled, StatusReassigned},
		StatusPickedUp:   {StatusDelivering, StatusCancelled, StatusReassigned},
		StatusDelivering: {StatusCompleted, StatusCancelled, StatusReassigned},
		StatusCompleted:  {},
		StatusCancelled:  {},
		StatusReassigned: {},
	}
}

// StatusFromString parses a persisted status value.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("assignment status",
		fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("assignment status")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("assignment status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether to is a direct successor of s.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range statusTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge and returns the new status, or
// ErrInvalidTransition without side effects.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(to) {
		return StatusUnknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
	}
	return to, nil
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(statusTransitions()[s]) == 0
}

// IsActive reports whether the assignment still occupies the rider.
func (s Status) IsActive() bool {
	switch s {
	case StatusAssigned, StatusAccepted, StatusPickedUp, StatusDelivering:
		return true
	default:
		return false
	}
}
