package payment

import (
	"errors"
	"fmt"

	"pharmadispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned for any payment status change that is
// not an edge of the state machine. The payment is left unchanged.
var ErrInvalidTransition = errors.New("invalid payment status transition")

// Status represents the processing state of a payment.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial state of a created payment.
	StatusPending

	// StatusProcessing means the provider is handling the charge.
	StatusProcessing

	// StatusPaid means the charge succeeded in full.
	StatusPaid

	// StatusFailed means the last attempt failed; retry is allowed.
	StatusFailed

	// StatusPartiallyRefunded means part of the amount was returned.
	StatusPartiallyRefunded

	// StatusRefunded is terminal; the full amount was returned.
	StatusRefunded

	// StatusCancelled is terminal; the payment was abandoned before success.
	StatusCancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:           "unknown",
		StatusPending:           "pending",
		StatusProcessing:        "processing",
		StatusPaid:              "paid",
		StatusFailed:            "failed",
		StatusPartiallyRefunded: "partially_refunded",
		StatusRefunded:          "refunded",
		StatusCancelled:         "cancelled",
	}
}

// statusTransitions is the allowed-edge table. Cash on delivery settles
// pending -> paid directly, without a processing step.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:           {StatusProcessing, StatusPaid, StatusFailed, StatusCancelled},
		StatusProcessing:        {StatusPaid, StatusFailed, StatusCancelled},
		StatusPaid:              {StatusPartiallyRefunded, StatusRefunded},
		StatusFailed:            {StatusProcessing, StatusCancelled},
		StatusPartiallyRefunded: {StatusPartiallyRefunded, StatusRefunded},
		StatusRefunded:          {},
		StatusCancelled:         {},
	}
}

// StatusFromString parses a persisted status value.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("payment status")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
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

// Method is the payment instrument chosen at checkout.
type Method int

const (
	// MethodUnknown catches uninitialized Method values.
	MethodUnknown Method = iota

	// MethodCashOnDelivery settles in cash at handover.
	MethodCashOnDelivery

	// MethodGCash is an e-wallet charge.
	MethodGCash

	// MethodCard is a credit or debit card charge.
	MethodCard
)

func methodStrings() map[Method]string {
	return map[Method]string{
		MethodUnknown:        "unknown",
		MethodCashOnDelivery: "cod",
		MethodGCash:          "gcash",
		MethodCard:           "card",
	}
}

// MethodFromString parses a persisted method value.
func MethodFromString(s string) (Method, error) {
	for method, str := range methodStrings() {
		if str == s && method != MethodUnknown {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a known method", s))
}

// Validate checks that the Method is defined.
func (m Method) Validate() error {
	if m == MethodUnknown {
		return errs.NewValueIsInvalidError("payment method")
	}
	if _, ok := methodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid method", m))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (m Method) String() string {
	if str, ok := methodStrings()[m]; ok {
		return str
	}
	return "unknown"
}
