package ports

import (
	"context"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByIDs retrieves the orders with the given identifiers.
	// Missing identifiers are an error: a batch must load completely.
	GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// GetAllReadyForPickup retrieves orders awaiting a rider, oldest
	// first. This is the dispatch queue the batching run consumes.
	GetAllReadyForPickup(ctx context.Context) ([]*order.Order, error)
}
