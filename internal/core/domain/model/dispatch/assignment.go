package dispatch

import (
	"errors"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
)

// RiderSharePct is the fraction of the delivery fees paid out to the rider.
const RiderSharePct = 0.80

// Domain errors for assignment operations.
var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly
	// initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	// ErrOrderNotInAssignment is returned when an order-level operation
	// references an order outside the batch.
	ErrOrderNotInAssignment = errors.New("order is not part of this assignment")
)

// Assignment is the rider assignment aggregate root: a batch of orders
// handed to one rider, with the delivery fee split and per-order delivery
// progress. One rider carries at most one active assignment at a time; that
// is enforced at dispatch time, not here.
type Assignment struct {
	id        kernel.UUID
	reference string
	riderID   kernel.UUID
	zoneID    kernel.UUID

	orders []OrderLink
	status Status

	totalDeliveryFee float64
	riderEarnings    float64

	assignedAt          time.Time
	acceptedAt          *time.Time
	pickedUpAt          *time.Time
	completedAt         *time.Time
	estimatedCompletion *time.Time

	cancelReason string

	isConstructed bool
}

// NewAssignment creates an assignment in the assigned state with a fresh
// reference. The rider's earnings are the fixed share of the batch's
// delivery fees, computed once here.
func NewAssignment(
	id kernel.UUID,
	riderID kernel.UUID,
	zoneID kernel.UUID,
	orders []OrderLink,
	totalDeliveryFee float64,
	estimatedCompletion *time.Time,
) (*Assignment, error) {
	a := &Assignment{
		reference:           kernel.NewReference(kernel.AssignmentRefPrefix),
		status:              StatusAssigned,
		estimatedCompletion: estimatedCompletion,
		assignedAt:          time.Now().UTC(),
		isConstructed:       true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setRiderID(riderID),
		a.setZoneID(zoneID),
		a.setOrders(orders),
		a.setTotalDeliveryFee(totalDeliveryFee),
	); err != nil {
		return nil, err
	}

	a.riderEarnings = a.totalDeliveryFee * RiderSharePct
	return a, nil
}

// RestoreAssignment reconstructs an assignment from persistence. Earnings
// are taken as stored, not recomputed, so historical share changes survive.
func RestoreAssignment(
	id kernel.UUID,
	reference string,
	riderID kernel.UUID,
	zoneID kernel.UUID,
	orders []OrderLink,
	status Status,
	totalDeliveryFee float64,
	riderEarnings float64,
	assignedAt time.Time,
	acceptedAt *time.Time,
	pickedUpAt *time.Time,
	completedAt *time.Time,
	estimatedCompletion *time.Time,
	cancelReason string,
) (*Assignment, error) {
	a := &Assignment{
		assignedAt:          assignedAt,
		acceptedAt:          acceptedAt,
		pickedUpAt:          pickedUpAt,
		completedAt:         completedAt,
		estimatedCompletion: estimatedCompletion,
		cancelReason:        cancelReason,
		isConstructed:       true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setReference(reference),
		a.setRiderID(riderID),
		a.setZoneID(zoneID),
		a.setOrders(orders),
		a.setTotalDeliveryFee(totalDeliveryFee),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if riderEarnings < 0 {
		return nil, errs.NewValueIsInvalidError("riderEarnings")
	}

	a.status = status
	a.riderEarnings = riderEarnings
	return a, nil
}

// Validate ensures the Assignment was built through a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// Reference returns the immutable human-readable assignment number.
func (a *Assignment) Reference() string { return a.reference }

// RiderID returns the assigned rider.
func (a *Assignment) RiderID() kernel.UUID { return a.riderID }

// ZoneID returns the zone the batch was planned in.
func (a *Assignment) ZoneID() kernel.UUID { return a.zoneID }

// Orders returns a copy of the batch's order links.
func (a *Assignment) Orders() []OrderLink {
	orders := make([]OrderLink, len(a.orders))
	copy(orders, a.orders)
	return orders
}

// OrderIDs returns the linked order identifiers in pickup order.
func (a *Assignment) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(a.orders))
	for i, link := range a.orders {
		ids[i] = link.orderID
	}
	return ids
}

// BatchSize returns how many orders the assignment carries.
func (a *Assignment) BatchSize() int { return len(a.orders) }

// IsBatch reports whether the assignment carries more than one order.
func (a *Assignment) IsBatch() bool { return len(a.orders) > 1 }

// Status returns the current lifecycle status.
func (a *Assignment) Status() Status { return a.status }

// TotalDeliveryFee returns the summed delivery fees of the batch.
func (a *Assignment) TotalDeliveryFee() float64 { return a.totalDeliveryFee }

// RiderEarnings returns the rider's share of the delivery fees.
func (a *Assignment) RiderEarnings() float64 { return a.riderEarnings }

// AssignedAt returns when the batch was offered to the rider.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// AcceptedAt returns when the rider accepted, if they have.
func (a *Assignment) AcceptedAt() *time.Time { return a.acceptedAt }

// PickedUpAt returns when the packages were collected, if they were.
func (a *Assignment) PickedUpAt() *time.Time { return a.pickedUpAt }

// CompletedAt returns when the last order was delivered, if it was.
func (a *Assignment) CompletedAt() *time.Time { return a.completedAt }

// EstimatedCompletion returns the planned completion time, if any.
func (a *Assignment) EstimatedCompletion() *time.Time { return a.estimatedCompletion }

// CancelReason returns the recorded cancellation reason, if any.
func (a *Assignment) CancelReason() string { return a.cancelReason }

// IsActive reports whether the assignment still occupies the rider.
func (a *Assignment) IsActive() bool { return a.status.IsActive() }

// Accept records the rider's confirmation.
func (a *Assignment) Accept() error {
	next, err := a.status.TransitionTo(StatusAccepted)
	if err != nil {
		return err
	}

	a.status = next
	now := time.Now().UTC()
	a.acceptedAt = &now
	return nil
}

// MarkPickedUp records that the rider collected all packages, stamping the
// assignment and every order link. Calling it again once picked up is a
// no-op so retried rider requests stay safe.
func (a *Assignment) MarkPickedUp() error {
	if a.status == StatusPickedUp {
		return nil
	}

	next, err := a.status.TransitionTo(StatusPickedUp)
	if err != nil {
		return err
	}

	a.status = next
	now := time.Now().UTC()
	a.pickedUpAt = &now
	for i := range a.orders {
		if a.orders[i].pickedUpAt == nil {
			a.orders[i].pickedUpAt = &now
		}
	}
	return nil
}

// StartDelivery records that the rider left the pharmacy for the customers.
func (a *Assignment) StartDelivery() error {
	next, err := a.status.TransitionTo(StatusDelivering)
	if err != nil {
		return err
	}

	a.status = next
	return nil
}

// MarkOrderDelivered stamps one order of the batch as handed over. The
// assignment must be in delivering.
func (a *Assignment) MarkOrderDelivered(orderID kernel.UUID) error {
	if a.status != StatusDelivering {
		return errs.NewStateConflictError("assignment status", StatusDelivering.String())
	}

	for i := range a.orders {
		if a.orders[i].orderID.IsEqual(orderID) {
			now := time.Now().UTC()
			a.orders[i].deliveredAt = &now
			return nil
		}
	}
	return ErrOrderNotInAssignment
}

// AllOrdersDelivered reports whether every order in the batch was handed over.
func (a *Assignment) AllOrdersDelivered() bool {
	for _, link := range a.orders {
		if !link.IsDelivered() {
			return false
		}
	}
	return true
}

// Complete finishes the assignment. Any order not individually stamped gets
// the completion time as its delivery time.
func (a *Assignment) Complete() error {
	next, err := a.status.TransitionTo(StatusCompleted)
	if err != nil {
		return err
	}

	a.status = next
	now := time.Now().UTC()
	a.completedAt = &now
	for i := range a.orders {
		if a.orders[i].deliveredAt == nil {
			a.orders[i].deliveredAt = &now
		}
	}
	return nil
}

// Cancel abandons the assignment, recording the reason.
func (a *Assignment) Cancel(reason string) error {
	next, err := a.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	a.status = next
	a.cancelReason = reason
	return nil
}

// Reassign closes this assignment so the batch can be offered to another
// rider.
func (a *Assignment) Reassign() error {
	next, err := a.status.TransitionTo(StatusReassigned)
	if err != nil {
		return err
	}

	a.status = next
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setReference(reference string) error {
	if err := kernel.ValidateReference(reference, kernel.AssignmentRefPrefix); err != nil {
		return err
	}
	a.reference = reference
	return nil
}

func (a *Assignment) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	a.riderID = riderID
	return nil
}

func (a *Assignment) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	a.zoneID = zoneID
	return nil
}

func (a *Assignment) setOrders(orders []OrderLink) error {
	if len(orders) == 0 {
		return errs.NewValueIsRequiredError("assignment orders")
	}

	seen := make(map[kernel.UUID]bool, len(orders))
	pickupSeqs := make(map[int]bool, len(orders))
	deliverySeqs := make(map[int]bool, len(orders))
	for _, link := range orders {
		if err := link.Validate(); err != nil {
			return err
		}
		if seen[link.orderID] {
			return errs.NewValueIsInvalidError("duplicate order in assignment")
		}
		if pickupSeqs[link.pickupSeq] {
			return errs.NewValueIsInvalidError("duplicate pickup sequence in assignment")
		}
		if deliverySeqs[link.deliverySeq] {
			return errs.NewValueIsInvalidError("duplicate delivery sequence in assignment")
		}
		seen[link.orderID] = true
		pickupSeqs[link.pickupSeq] = true
		deliverySeqs[link.deliverySeq] = true
	}

	a.orders = make([]OrderLink, len(orders))
	copy(a.orders, orders)
	return nil
}

func (a *Assignment) setTotalDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("totalDeliveryFee")
	}
	a.totalDeliveryFee = fee
	return nil
}
