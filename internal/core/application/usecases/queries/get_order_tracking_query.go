package queries

import (
	"errors"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)

	// ErrOrderNotFound is returned when the tracked order does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

// GetOrderTrackingQuery retrieves the customer-facing tracking view of one
// order: its own status plus, when a rider carries it, the assignment state
// and the rider's last known position.
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a tracking query for one order.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the tracked order.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderTrackingQueryResponse is the tracking view. Assignment fields are
// empty and RiderPosition nil while the order waits for dispatch; the
// position is also nil when the rider's last fix has expired.
type GetOrderTrackingQueryResponse struct {
	OrderID      kernel.UUID
	Number       string
	Status       string
	PaymentState string

	AssignmentReference string
	AssignmentStatus    string
	RiderName           string
	EstimatedCompletion *time.Time

	RiderPosition *ports.RiderPosition
}
