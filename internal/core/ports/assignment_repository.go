package ports

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
)

// ErrAlreadyAssigned is returned when persisting an assignment would put an
// order on a second live assignment. The store enforces this, so exactly one
// of two racing dispatch transactions wins and the loser's write is refused.
var ErrAlreadyAssigned = errors.New("order already rides on a live assignment")

// AssignmentRepository defines the persistence contract for rider
// assignment aggregates.
type AssignmentRepository interface {
	// Add persists a new assignment aggregate to storage. Fails with
	// ErrAlreadyAssigned when any linked order is already on a live
	// assignment.
	Add(ctx context.Context, aggregate *dispatch.Assignment) error

	// Update persists changes to an existing assignment aggregate.
	Update(ctx context.Context, aggregate *dispatch.Assignment) error

	// Get retrieves an assignment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*dispatch.Assignment, error)

	// GetAllActive retrieves assignments that still occupy a rider.
	GetAllActive(ctx context.Context) ([]*dispatch.Assignment, error)

	// GetActiveByOrder retrieves the active assignment carrying the given
	// order, or an ObjectNotFoundError when none does.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*dispatch.Assignment, error)

	// ActiveOrderIDs returns the identifiers of every order linked to an
	// active assignment, locking the matching assignment rows when called
	// inside a unit of work transaction. The read narrows the candidate
	// set; the at-most-one-live-assignment guarantee itself comes from the
	// store's constraint surfaced by Add as ErrAlreadyAssigned.
	ActiveOrderIDs(ctx context.Context) ([]kernel.UUID, error)
}
