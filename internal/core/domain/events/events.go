// Package events defines the integration events published when aggregates
// pass notable lifecycle points. Payloads are flat and string-keyed so
// downstream consumers do not need the domain model to decode them.
package events

import "time"

// Event is implemented by every integration event. Name is the event type
// identifier on the wire; Key is the partition key, chosen so events of one
// aggregate stay ordered.
type Event interface {
	Name() string
	Key() string
}

// OrderStatusChanged fires on every order lifecycle transition, including
// cancellation and refund.
type OrderStatusChanged struct {
	OrderID    string    `json:"order_id"`
	Number     string    `json:"number"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Name implements Event.
func (OrderStatusChanged) Name() string { return "order.status_changed" }

// Key implements Event.
func (e OrderStatusChanged) Key() string { return e.OrderID }

// AssignmentCreated fires when a batch is offered to a rider.
type AssignmentCreated struct {
	AssignmentID string    `json:"assignment_id"`
	Reference    string    `json:"reference"`
	RiderID      string    `json:"rider_id"`
	ZoneID       string    `json:"zone_id"`
	OrderIDs     []string  `json:"order_ids"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Name implements Event.
func (AssignmentCreated) Name() string { return "assignment.created" }

// Key implements Event.
func (e AssignmentCreated) Key() string { return e.AssignmentID }

// AssignmentStatusChanged fires on every assignment lifecycle transition.
type AssignmentStatusChanged struct {
	AssignmentID string    `json:"assignment_id"`
	Reference    string    `json:"reference"`
	RiderID      string    `json:"rider_id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Name implements Event.
func (AssignmentStatusChanged) Name() string { return "assignment.status_changed" }

// Key implements Event.
func (e AssignmentStatusChanged) Key() string { return e.AssignmentID }

// AssignmentCompleted fires when all orders of a batch are delivered,
// carrying the rider's payout for the batch.
type AssignmentCompleted struct {
	AssignmentID  string    `json:"assignment_id"`
	Reference     string    `json:"reference"`
	RiderID       string    `json:"rider_id"`
	RiderEarnings float64   `json:"rider_earnings"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Name implements Event.
func (AssignmentCompleted) Name() string { return "assignment.completed" }

// Key implements Event.
func (e AssignmentCompleted) Key() string { return e.AssignmentID }

// PaymentCompleted fires when a charge settles.
type PaymentCompleted struct {
	PaymentID  string    `json:"payment_id"`
	Reference  string    `json:"reference"`
	OrderID    string    `json:"order_id"`
	Method     string    `json:"method"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Name implements Event.
func (PaymentCompleted) Name() string { return "payment.completed" }

// Key implements Event.
func (e PaymentCompleted) Key() string { return e.OrderID }

// PaymentRefunded fires on every refund, partial or full.
type PaymentRefunded struct {
	PaymentID  string    `json:"payment_id"`
	Reference  string    `json:"reference"`
	OrderID    string    `json:"order_id"`
	Amount     float64   `json:"amount"`
	Partial    bool      `json:"partial"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Name implements Event.
func (PaymentRefunded) Name() string { return "payment.refunded" }

// Key implements Event.
func (e PaymentRefunded) Key() string { return e.OrderID }
