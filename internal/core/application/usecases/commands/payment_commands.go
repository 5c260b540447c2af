package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/payment"
	"pharmadispatch/internal/pkg/errs"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrCreatePaymentCommandIsNotConstructed = errors.New(
		"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
	)
	ErrCompletePaymentCommandIsNotConstructed = errors.New(
		"CompletePaymentCommand must be created via NewCompletePaymentCommand constructor",
	)
	ErrRefundPaymentCommandIsNotConstructed = errors.New(
		"RefundPaymentCommand must be created via NewRefundPaymentCommand constructor",
	)
	ErrProcessPaymentCommandIsNotConstructed = errors.New(
		"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
	)
	ErrFailPaymentCommandIsNotConstructed = errors.New(
		"FailPaymentCommand must be created via NewFailPaymentCommand constructor",
	)
	ErrCancelPaymentCommandIsNotConstructed = errors.New(
		"CancelPaymentCommand must be created via NewCancelPaymentCommand constructor",
	)
	ErrRefundReasonIsRequired  = errors.New("refund reason is required")
	ErrFailureReasonIsRequired = errors.New("failure reason is required")
)

// CreatePaymentCommand represents opening a payment record for an order.
// The charged amount is the order's current total, captured by the handler;
// the fee breakdown comes from the provider's schedule.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID     kernel.UUID
	orderID       kernel.UUID
	method        payment.Method
	processingFee float64
	gatewayFee    float64

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand creates a command to open a payment record.
func NewCreatePaymentCommand(
	paymentID kernel.UUID,
	orderID kernel.UUID,
	method payment.Method,
	processingFee float64,
	gatewayFee float64,
) (CreatePaymentCommand, error) {
	if err := errors.Join(paymentID.Validate(), orderID.Validate(), method.Validate()); err != nil {
		return CreatePaymentCommand{}, err
	}
	if processingFee < 0 {
		return CreatePaymentCommand{}, errs.NewValueIsInvalidError("processingFee")
	}
	if gatewayFee < 0 {
		return CreatePaymentCommand{}, errs.NewValueIsInvalidError("gatewayFee")
	}
	return CreatePaymentCommand{
		paymentID:     paymentID,
		orderID:       orderID,
		method:        method,
		processingFee: processingFee,
		gatewayFee:    gatewayFee,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier for the new payment record.
func (c CreatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// OrderID returns the order being paid.
func (c CreatePaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Method returns the chosen payment instrument.
func (c CreatePaymentCommand) Method() payment.Method { return c.method }

// ProcessingFee returns the platform's processing cut.
func (c CreatePaymentCommand) ProcessingFee() float64 { return c.processingFee }

// GatewayFee returns the provider's gateway charge.
func (c CreatePaymentCommand) GatewayFee() float64 { return c.gatewayFee }

// CompletePaymentCommand represents a charge settling with the provider.
type CompletePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID      kernel.UUID
	transactionRef string

	guard guard.ConstructorGuard
}

// NewCompletePaymentCommand creates a command to settle a payment.
func NewCompletePaymentCommand(paymentID kernel.UUID, transactionRef string) (CompletePaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return CompletePaymentCommand{}, err
	}
	return CompletePaymentCommand{
		paymentID:      paymentID,
		transactionRef: transactionRef,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCompletePaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to settle.
func (c CompletePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// TransactionRef returns the provider's transaction reference.
func (c CompletePaymentCommand) TransactionRef() string { return c.transactionRef }

// RefundPaymentCommand represents returning part or all of a settled
// payment.
type RefundPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	amount    float64
	reason    string

	guard guard.ConstructorGuard
}

// NewRefundPaymentCommand creates a command to refund a payment. The bound
// against the refundable remainder is enforced by the aggregate.
func NewRefundPaymentCommand(paymentID kernel.UUID, amount float64, reason string) (RefundPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return RefundPaymentCommand{}, err
	}
	if reason == "" {
		return RefundPaymentCommand{}, ErrRefundReasonIsRequired
	}
	return RefundPaymentCommand{
		paymentID: paymentID,
		amount:    amount,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRefundPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to refund.
func (c RefundPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// Amount returns the refund amount.
func (c RefundPaymentCommand) Amount() float64 { return c.amount }

// Reason returns why the refund is issued.
func (c RefundPaymentCommand) Reason() string { return c.reason }

// ProcessPaymentCommand represents handing a pending charge to the provider.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to start processing a payment.
func NewProcessPaymentCommand(paymentID kernel.UUID) (ProcessPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return ProcessPaymentCommand{}, err
	}
	return ProcessPaymentCommand{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to process.
func (c ProcessPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// FailPaymentCommand represents a charge attempt rejected by the provider.
type FailPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewFailPaymentCommand creates a command to record a failed charge.
func NewFailPaymentCommand(paymentID kernel.UUID, reason string) (FailPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return FailPaymentCommand{}, err
	}
	if reason == "" {
		return FailPaymentCommand{}, ErrFailureReasonIsRequired
	}
	return FailPaymentCommand{
		paymentID: paymentID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailPaymentCommand) Validate() error {
	return c.guard.Validate(ErrFailPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment that failed.
func (c FailPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// Reason returns the provider's failure reason.
func (c FailPaymentCommand) Reason() string { return c.reason }

// CancelPaymentCommand represents abandoning an unsettled payment.
type CancelPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelPaymentCommand creates a command to cancel a pending payment.
func NewCancelPaymentCommand(paymentID kernel.UUID) (CancelPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return CancelPaymentCommand{}, err
	}
	return CancelPaymentCommand{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelPaymentCommand) Validate() error {
	return c.guard.Validate(ErrCancelPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to cancel.
func (c CancelPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
