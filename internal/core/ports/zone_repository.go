package ports

import (
	"context"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
)

// ZoneRepository defines the persistence contract for delivery zones.
type ZoneRepository interface {
	// Add persists a new zone to storage.
	Add(ctx context.Context, aggregate *dispatch.Zone) error

	// Update persists changes to an existing zone.
	Update(ctx context.Context, aggregate *dispatch.Zone) error

	// Get retrieves a zone by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*dispatch.Zone, error)

	// GetAllActive retrieves zones currently accepting dispatch.
	GetAllActive(ctx context.Context) ([]*dispatch.Zone, error)
}
