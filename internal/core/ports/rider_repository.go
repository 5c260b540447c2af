package ports

import (
	"context"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllDispatchable retrieves riders that are approved and currently
	// available, in a stable order. Dispatch offers batches to the first
	// suitable one.
	GetAllDispatchable(ctx context.Context) ([]*rider.Rider, error)
}
