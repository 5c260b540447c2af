package order

import (
	"errors"
	"fmt"

	"pharmadispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned for any order status change that is not
// an edge of the lifecycle graph. The order is left unchanged.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Status represents the delivery lifecycle state of an order.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial state of a freshly placed order.
	StatusPending

	// StatusAccepted means the pharmacy has confirmed the order.
	StatusAccepted

	// StatusPreparing means the pharmacy is picking and packing items.
	StatusPreparing

	// StatusReadyForPickup means the package is awaiting a rider.
	StatusReadyForPickup

	// StatusPickedUp means a rider is carrying the package.
	StatusPickedUp

	// StatusDelivered means the package reached the customer.
	StatusDelivered

	// StatusCancelled is terminal; reachable before pickup only.
	StatusCancelled

	// StatusRefunded is terminal; reachable from delivered via payment refund.
	StatusRefunded
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPending:        "pending",
		StatusAccepted:       "accepted",
		StatusPreparing:      "preparing",
		StatusReadyForPickup: "ready_for_pickup",
		StatusPickedUp:       "picked_up",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
		StatusRefunded:       "refunded",
	}
}

// statusTransitions is the allowed-edge table of the lifecycle graph.
// Terminal states have no outgoing edges.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusAccepted, StatusCancelled},
		StatusAccepted:       {StatusPreparing, StatusCancelled},
		StatusPreparing:      {StatusReadyForPickup, StatusCancelled},
		StatusReadyForPickup: {StatusPickedUp, StatusCancelled},
		StatusPickedUp:       {StatusDelivered},
		StatusDelivered:      {StatusRefunded},
		StatusCancelled:      {},
		StatusRefunded:       {},
	}
}

// StatusFromString parses a persisted status value.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("order status")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order status",
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

// IsCancellable reports whether an order in this status may still be
// cancelled. Once a rider has the package, cancellation is no longer
// possible and the refund flow takes over.
func (s Status) IsCancellable() bool {
	return s == StatusPending || s == StatusAccepted ||
		s == StatusPreparing || s == StatusReadyForPickup
}

// PaymentState mirrors the payment side of an order. It is driven by the
// payment aggregate, not by order handlers directly.
type PaymentState int

const (
	// PaymentUnknown catches uninitialized PaymentState values.
	PaymentUnknown PaymentState = iota

	// PaymentUnpaid is the initial state.
	PaymentUnpaid

	// PaymentPaid means a payment completed for the full amount.
	PaymentPaid

	// PaymentFailed means the last payment attempt failed.
	PaymentFailed

	// PaymentRefunded means the payment was fully refunded.
	PaymentRefunded

	// PaymentPartiallyRefunded means part of the payment was returned.
	PaymentPartiallyRefunded
)

func paymentStateStrings() map[PaymentState]string {
	return map[PaymentState]string{
		PaymentUnknown:           "unknown",
		PaymentUnpaid:            "unpaid",
		PaymentPaid:              "paid",
		PaymentFailed:            "failed",
		PaymentRefunded:          "refunded",
		PaymentPartiallyRefunded: "partially_refunded",
	}
}

// PaymentStateFromString parses a persisted payment state value.
func PaymentStateFromString(s string) (PaymentState, error) {
	for state, str := range paymentStateStrings() {
		if str == s && state != PaymentUnknown {
			return state, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment state",
		fmt.Errorf("%q is not a known payment state", s))
}

// Validate checks that the PaymentState is defined.
func (p PaymentState) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidError("payment state")
	}
	if _, ok := paymentStateStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment state",
			fmt.Errorf("%d is not a valid payment state", p))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (p PaymentState) String() string {
	if str, ok := paymentStateStrings()[p]; ok {
		return str
	}
	return "unknown"
}
