package ports

import (
	"context"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/location"
)

// AddressRepository defines the persistence contract for customer delivery
// addresses.
type AddressRepository interface {
	// Add persists a new address to storage.
	Add(ctx context.Context, aggregate *location.Address) error

	// Update persists changes to an existing address.
	Update(ctx context.Context, aggregate *location.Address) error

	// Get retrieves an address by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*location.Address, error)

	// GetAllForCustomer retrieves every address owned by the customer.
	GetAllForCustomer(ctx context.Context, customerID kernel.UUID) ([]*location.Address, error)
}
