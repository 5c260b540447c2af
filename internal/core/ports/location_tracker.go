package ports

import (
	"context"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
)

// RiderPosition is a rider's last reported coordinate.
type RiderPosition struct {
	RiderID    kernel.UUID
	Point      kernel.GeoPoint
	ReportedAt time.Time
}

// LocationTracker keeps the latest known position of each rider. Positions
// are ephemeral: they expire when a rider stops reporting, so a stale fix
// never masquerades as a live one.
type LocationTracker interface {
	// Track records a rider's current position.
	Track(ctx context.Context, riderID kernel.UUID, point kernel.GeoPoint) error

	// LastKnown returns the rider's most recent position, or an
	// ObjectNotFoundError when the rider has no unexpired fix.
	LastKnown(ctx context.Context, riderID kernel.UUID) (RiderPosition, error)
}
