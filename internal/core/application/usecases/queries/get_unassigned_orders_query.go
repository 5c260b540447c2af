package queries

import (
	"errors"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/guard"
)

var ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
	"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
)

// GetUnassignedOrdersQuery retrieves the orders ready for pickup that no
// active assignment covers yet. This is the dispatch backlog: what the next
// batching pass will work on.
//
// Example:
//
//	query := NewGetUnassignedOrdersQuery()
//	handler := NewGetUnassignedOrdersQueryHandler(db)
//
//	backlog, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get dispatch backlog: %w", err)
//	}
//
//	fmt.Printf("%d orders waiting for a rider\n", len(backlog))
type GetUnassignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates a query for the dispatch backlog.
func NewGetUnassignedOrdersQuery() GetUnassignedOrdersQuery {
	return GetUnassignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

// GetUnassignedOrdersQueryResponse is one backlog row. Destination is nil
// when the order has no geocoded delivery point; such orders never batch and
// need operator attention.
type GetUnassignedOrdersQueryResponse struct {
	ID          kernel.UUID
	Number      string
	Destination *kernel.GeoPoint
	DeliveryFee float64
	CreatedAt   time.Time
}
