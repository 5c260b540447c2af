package dispatch

import (
	"errors"
	"fmt"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
	"pharmadispatch/internal/pkg/guard"
)

// ErrOrderLinkIsNotConstructed is returned when validating a zero-value OrderLink.
var ErrOrderLinkIsNotConstructed = errors.New("OrderLink must be created via NewOrderLink constructor")

// OrderLink ties one order into an assignment's batch: its position in the
// pickup and delivery sequences and the per-order progress timestamps.
type OrderLink struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	pickupSeq   int
	deliverySeq int
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrderLink creates a link for a freshly planned batch. Sequence numbers
// start at 1.
func NewOrderLink(orderID kernel.UUID, pickupSeq, deliverySeq int) (OrderLink, error) {
	link := OrderLink{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		link.setOrderID(orderID),
		link.setSequences(pickupSeq, deliverySeq),
	); err != nil {
		return OrderLink{}, err
	}

	return link, nil
}

// RestoreOrderLink reconstructs a link from persistence.
func RestoreOrderLink(
	orderID kernel.UUID,
	pickupSeq, deliverySeq int,
	pickedUpAt, deliveredAt *time.Time,
) (OrderLink, error) {
	link, err := NewOrderLink(orderID, pickupSeq, deliverySeq)
	if err != nil {
		return OrderLink{}, err
	}

	link.pickedUpAt = pickedUpAt
	link.deliveredAt = deliveredAt
	return link, nil
}

// Validate checks that the link was built via NewOrderLink.
func (l OrderLink) Validate() error {
	return l.guard.Validate(ErrOrderLinkIsNotConstructed)
}

// OrderID returns the linked order.
func (l OrderLink) OrderID() kernel.UUID { return l.orderID }

// PickupSeq returns the 1-based position in the pickup sequence.
func (l OrderLink) PickupSeq() int { return l.pickupSeq }

// DeliverySeq returns the 1-based position in the delivery sequence.
func (l OrderLink) DeliverySeq() int { return l.deliverySeq }

// PickedUpAt returns when this order's package was collected, if it was.
func (l OrderLink) PickedUpAt() *time.Time { return l.pickedUpAt }

// DeliveredAt returns when this order was handed to the customer, if it was.
func (l OrderLink) DeliveredAt() *time.Time { return l.deliveredAt }

// IsDelivered reports whether this order reached the customer.
func (l OrderLink) IsDelivered() bool { return l.deliveredAt != nil }

func (l *OrderLink) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	l.orderID = orderID
	return nil
}

func (l *OrderLink) setSequences(pickupSeq, deliverySeq int) error {
	if pickupSeq < 1 {
		return errs.NewValueIsInvalidErrorWithCause("pickupSeq",
			fmt.Errorf("%d is less than 1", pickupSeq))
	}
	if deliverySeq < 1 {
		return errs.NewValueIsInvalidErrorWithCause("deliverySeq",
			fmt.Errorf("%d is less than 1", deliverySeq))
	}

	l.pickupSeq = pickupSeq
	l.deliverySeq = deliverySeq
	return nil
}
