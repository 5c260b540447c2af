package order

import (
	"errors"
	"fmt"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
)

// TaxRate is the VAT fraction applied to the order subtotal.
// Kept as a named constant so it can be tuned without touching the
// recomputation logic.
const TaxRate = 0.12

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// ErrDiscountExceedsSubtotal is returned by ApplyDiscount when the
// requested discount is larger than the current subtotal.
var ErrDiscountExceedsSubtotal = errors.New("discount cannot exceed subtotal")

// Order is the customer order aggregate root.
//
// Invariants:
//   - order number is generated at creation and never changes
//   - at least one line; every line is valid
//   - subtotal and total are never negative
//   - total = subtotal + tax - discount + delivery fee, recomputed on
//     every line or discount mutation
//   - status only moves along the lifecycle graph in status.go
type Order struct {
	id          kernel.UUID
	number      string
	customerID  kernel.UUID
	addressID   kernel.UUID
	destination *kernel.GeoPoint

	lines []Line

	status       Status
	paymentState PaymentState

	subtotal       float64
	taxAmount      float64
	deliveryFee    float64
	discountAmount float64
	totalAmount    float64

	notes             string
	estimatedDelivery *time.Time
	actualDelivery    *time.Time
	createdAt         time.Time

	isConstructed bool
}

// NewOrder creates a pending order with a freshly generated order number
// and totals computed from the given lines. destination is the coordinate
// snapshot of the delivery address; nil when the address is not geocoded.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	addressID kernel.UUID,
	destination *kernel.GeoPoint,
	deliveryFee float64,
	lines []Line,
) (*Order, error) {
	o := &Order{
		number:        kernel.NewReference(kernel.OrderRefPrefix),
		status:        StatusPending,
		paymentState:  PaymentUnpaid,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddressID(addressID),
		o.setDestination(destination),
		o.setDeliveryFee(deliveryFee),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.RecomputeTotals()
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Totals are taken
// as stored; callers recompute only on mutation.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	addressID kernel.UUID,
	destination *kernel.GeoPoint,
	lines []Line,
	status Status,
	paymentState PaymentState,
	deliveryFee float64,
	discountAmount float64,
	notes string,
	estimatedDelivery *time.Time,
	actualDelivery *time.Time,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		notes:             notes,
		estimatedDelivery: estimatedDelivery,
		actualDelivery:    actualDelivery,
		createdAt:         createdAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setAddressID(addressID),
		o.setDestination(destination),
		o.setDeliveryFee(deliveryFee),
		o.setLines(lines),
		status.Validate(),
		paymentState.Validate(),
	); err != nil {
		return nil, err
	}

	if discountAmount < 0 {
		return nil, errs.NewValueIsInvalidError("discountAmount")
	}

	o.status = status
	o.paymentState = paymentState
	o.discountAmount = discountAmount
	o.RecomputeTotals()
	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the immutable human-readable order number.
func (o *Order) Number() string { return o.number }

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// AddressID returns the delivery address reference.
func (o *Order) AddressID() kernel.UUID { return o.addressID }

// Destination returns the delivery coordinate snapshot, or nil when the
// delivery address has no coordinates.
func (o *Order) Destination() *kernel.GeoPoint { return o.destination }

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentState returns the payment side of the order.
func (o *Order) PaymentState() PaymentState { return o.paymentState }

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() float64 { return o.subtotal }

// TaxAmount returns the tax computed from the subtotal.
func (o *Order) TaxAmount() float64 { return o.taxAmount }

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() float64 { return o.deliveryFee }

// DiscountAmount returns the applied discount.
func (o *Order) DiscountAmount() float64 { return o.discountAmount }

// TotalAmount returns the grand total.
func (o *Order) TotalAmount() float64 { return o.totalAmount }

// Notes returns the free-form order notes, including cancellation reasons.
func (o *Order) Notes() string { return o.notes }

// EstimatedDelivery returns the promised delivery time, if any.
func (o *Order) EstimatedDelivery() *time.Time { return o.estimatedDelivery }

// ActualDelivery returns the moment the order entered delivered, if it has.
func (o *Order) ActualDelivery() *time.Time { return o.actualDelivery }

// CreatedAt returns the creation timestamp. Batching sorts by it.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// HasDestination reports whether the delivery address was geocoded at
// order time. Orders without a destination are never batchable.
func (o *Order) HasDestination() bool { return o.destination != nil }

// AddLine appends a line and recomputes totals.
func (o *Order) AddLine(line Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	o.lines = append(o.lines, line)
	o.RecomputeTotals()
	return nil
}

// RecomputeTotals rebuilds the financial fields from the current lines:
// subtotal = Σ line totals, tax = subtotal × TaxRate,
// total = subtotal + tax - discount + delivery fee.
// Callers must invoke it after any line mutation.
func (o *Order) RecomputeTotals() {
	subtotal := 0.0
	for _, line := range o.lines {
		subtotal += line.Total()
	}

	o.subtotal = subtotal
	o.taxAmount = subtotal * TaxRate
	o.totalAmount = o.subtotal + o.taxAmount - o.discountAmount + o.deliveryFee

	// A negative subtotal or total cannot be produced by valid lines and a
	// bounded discount; reaching this state is a bug, not an input error.
	if o.subtotal < 0 || o.totalAmount < 0 {
		panic(fmt.Sprintf("order %s totals went negative: subtotal=%f total=%f",
			o.number, o.subtotal, o.totalAmount))
	}
}

// ApplyDiscount sets the order discount and recomputes totals. The
// discount must not exceed the current subtotal.
func (o *Order) ApplyDiscount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidError("discount")
	}
	if amount > o.subtotal {
		return ErrDiscountExceedsSubtotal
	}

	o.discountAmount = amount
	o.RecomputeTotals()
	return nil
}

// TransitionTo moves the order along the lifecycle graph. Entering
// delivered stamps the actual delivery time. On an invalid edge the
// status is left unchanged and ErrInvalidTransition is returned.
func (o *Order) TransitionTo(newStatus Status) error {
	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	o.status = next
	if next == StatusDelivered {
		now := time.Now().UTC()
		o.actualDelivery = &now
	}
	return nil
}

// Cancel cancels the order, recording the reason in the notes. Only
// orders that have not been picked up yet may be cancelled.
func (o *Order) Cancel(reason string) error {
	if !o.status.IsCancellable() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, StatusCancelled)
	}

	o.status = StatusCancelled
	o.appendNote("order cancelled: " + reason)
	return nil
}

// SetEstimatedDelivery records the promised delivery time, usually taken
// from the rider assignment's estimated completion.
func (o *Order) SetEstimatedDelivery(at time.Time) {
	o.estimatedDelivery = &at
}

// MarkPaid flips the payment side to paid. Driven by payment completion.
func (o *Order) MarkPaid() {
	o.paymentState = PaymentPaid
}

// MarkPaymentFailed flips the payment side to failed.
func (o *Order) MarkPaymentFailed() {
	o.paymentState = PaymentFailed
}

// MarkRefunded records a refund on the payment side. A full refund of a
// delivered order also moves the order status to refunded, the only path
// into that state.
func (o *Order) MarkRefunded(partial bool) error {
	if partial {
		o.paymentState = PaymentPartiallyRefunded
		return nil
	}

	o.paymentState = PaymentRefunded
	if o.status == StatusDelivered {
		next, err := o.status.TransitionTo(StatusRefunded)
		if err != nil {
			return err
		}
		o.status = next
	}
	return nil
}

func (o *Order) appendNote(note string) {
	if o.notes == "" {
		o.notes = note
		return
	}
	o.notes += "\n" + note
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := kernel.ValidateReference(number, kernel.OrderRefPrefix); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setDestination(destination *kernel.GeoPoint) error {
	if destination == nil {
		return nil
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("deliveryFee")
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}
