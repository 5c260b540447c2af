package payment

import (
	"errors"
	"fmt"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
)

// Domain errors for payment operations.
var (
	// ErrPaymentIsNotConstructed is returned when using an improperly
	// initialized Payment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")
	// ErrRefundExceedsRemainder is returned when a refund is larger than
	// what is left of the paid amount.
	ErrRefundExceedsRemainder = errors.New("refund exceeds the refundable remainder")
)

// Payment is the payment record aggregate for one order. An order may get
// several records over its life (a failed charge retried with another
// method creates a new record); each record tracks its own state machine
// and refund accounting.
type Payment struct {
	id        kernel.UUID
	reference string
	orderID   kernel.UUID
	method    Method

	amount         float64
	processingFee  float64
	gatewayFee     float64
	refundedAmount float64

	status         Status
	transactionRef string
	failureReason  string
	refundReason   string

	createdAt time.Time
	paidAt    *time.Time

	isConstructed bool
}

// NewPayment creates a pending payment record for an order. The fee
// breakdown is the platform's processing cut and the provider's gateway
// charge, both taken out of the charged amount.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	method Method,
	amount float64,
	processingFee float64,
	gatewayFee float64,
) (*Payment, error) {
	p := &Payment{
		reference:     kernel.NewReference(kernel.PaymentRefPrefix),
		status:        StatusPending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setMethod(method),
		p.setAmount(amount),
		p.setFees(processingFee, gatewayFee),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a payment record from persistence.
func RestorePayment(
	id kernel.UUID,
	reference string,
	orderID kernel.UUID,
	method Method,
	amount float64,
	processingFee float64,
	gatewayFee float64,
	refundedAmount float64,
	status Status,
	transactionRef string,
	failureReason string,
	refundReason string,
	createdAt time.Time,
	paidAt *time.Time,
) (*Payment, error) {
	p := &Payment{
		transactionRef: transactionRef,
		failureReason:  failureReason,
		refundReason:   refundReason,
		createdAt:      createdAt,
		paidAt:         paidAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setReference(reference),
		p.setOrderID(orderID),
		p.setMethod(method),
		p.setAmount(amount),
		p.setFees(processingFee, gatewayFee),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if refundedAmount < 0 || refundedAmount > p.amount {
		return nil, errs.NewValueIsOutOfRangeError("refundedAmount", refundedAmount, 0, p.amount)
	}

	p.status = status
	p.refundedAmount = refundedAmount
	return p, nil
}

// Validate ensures the Payment was built through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// Reference returns the immutable human-readable payment number.
func (p *Payment) Reference() string { return p.reference }

// OrderID returns the paid order.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// Method returns the payment instrument.
func (p *Payment) Method() Method { return p.method }

// Amount returns the charged amount.
func (p *Payment) Amount() float64 { return p.amount }

// ProcessingFee returns the platform's processing cut.
func (p *Payment) ProcessingFee() float64 { return p.processingFee }

// GatewayFee returns the provider's gateway charge.
func (p *Payment) GatewayFee() float64 { return p.gatewayFee }

// TotalFees returns the combined fee load on this payment.
func (p *Payment) TotalFees() float64 { return p.processingFee + p.gatewayFee }

// NetAmount returns what the merchant keeps after fees.
func (p *Payment) NetAmount() float64 { return p.amount - p.TotalFees() }

// RefundedAmount returns the total returned so far.
func (p *Payment) RefundedAmount() float64 { return p.refundedAmount }

// Status returns the current processing state.
func (p *Payment) Status() Status { return p.status }

// TransactionRef returns the provider's transaction reference, if settled.
func (p *Payment) TransactionRef() string { return p.transactionRef }

// FailureReason returns why the last attempt failed, if it did.
func (p *Payment) FailureReason() string { return p.failureReason }

// RefundReason returns the recorded refund reason, if any.
func (p *Payment) RefundReason() string { return p.refundReason }

// CreatedAt returns the record creation time.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// PaidAt returns when the charge succeeded, if it has.
func (p *Payment) PaidAt() *time.Time { return p.paidAt }

// RefundableRemainder returns how much of the paid amount can still be
// returned.
func (p *Payment) RefundableRemainder() float64 {
	return p.amount - p.refundedAmount
}

// Process hands the charge to the provider. Retrying a failed payment goes
// through here as well.
func (p *Payment) Process() error {
	next, err := p.status.TransitionTo(StatusProcessing)
	if err != nil {
		return err
	}

	p.status = next
	p.failureReason = ""
	return nil
}

// Complete settles the charge, recording the provider's transaction
// reference. Cash on delivery settles straight from pending.
func (p *Payment) Complete(transactionRef string) error {
	next, err := p.status.TransitionTo(StatusPaid)
	if err != nil {
		return err
	}

	p.status = next
	p.transactionRef = transactionRef
	now := time.Now().UTC()
	p.paidAt = &now
	return nil
}

// Fail records a failed charge attempt with the provider's reason.
func (p *Payment) Fail(reason string) error {
	next, err := p.status.TransitionTo(StatusFailed)
	if err != nil {
		return err
	}

	p.status = next
	p.failureReason = reason
	return nil
}

// Cancel abandons an unsettled payment.
func (p *Payment) Cancel() error {
	next, err := p.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	p.status = next
	return nil
}

// Refund returns part or all of the paid amount. The refund must be
// positive and must not exceed the refundable remainder; returning the
// last centavo moves the record to refunded, anything less to
// partially_refunded.
func (p *Payment) Refund(amount float64, reason string) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("refund amount",
			fmt.Errorf("%f is not positive", amount))
	}
	if amount > p.RefundableRemainder() {
		return fmt.Errorf("%w: %.2f > %.2f", ErrRefundExceedsRemainder,
			amount, p.RefundableRemainder())
	}

	target := StatusPartiallyRefunded
	if p.refundedAmount+amount >= p.amount {
		target = StatusRefunded
	}

	next, err := p.status.TransitionTo(target)
	if err != nil {
		return err
	}

	p.status = next
	p.refundedAmount += amount
	p.refundReason = reason
	return nil
}

// IsFullyRefunded reports whether the whole amount went back.
func (p *Payment) IsFullyRefunded() bool {
	return p.status == StatusRefunded
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setReference(reference string) error {
	if err := kernel.ValidateReference(reference, kernel.PaymentRefPrefix); err != nil {
		return err
	}
	p.reference = reference
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("payment amount")
	}
	p.amount = amount
	return nil
}

func (p *Payment) setFees(processingFee, gatewayFee float64) error {
	if processingFee < 0 {
		return errs.NewValueIsInvalidError("processingFee")
	}
	if gatewayFee < 0 {
		return errs.NewValueIsInvalidError("gatewayFee")
	}
	p.processingFee = processingFee
	p.gatewayFee = gatewayFee
	return nil
}
