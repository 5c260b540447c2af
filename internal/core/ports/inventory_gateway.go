package ports

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
)

// ErrInsufficientStock is returned when a reservation asks for more units
// than the pharmacy has on hand.
var ErrInsufficientStock = errors.New("insufficient stock for inventory item")

// StockReservation is one line of a stock reservation request.
type StockReservation struct {
	InventoryItemID kernel.UUID
	Quantity        int
}

// InventoryGateway fronts the pharmacy inventory system. Order creation
// reserves stock before the order is persisted; a failed reservation aborts
// the order.
type InventoryGateway interface {
	// Reserve atomically reserves all requested items, or none of them.
	// Returns ErrInsufficientStock when any line cannot be covered.
	Reserve(ctx context.Context, reservations []StockReservation) error

	// Release returns previously reserved stock, used when an order is
	// cancelled before pickup.
	Release(ctx context.Context, reservations []StockReservation) error
}
