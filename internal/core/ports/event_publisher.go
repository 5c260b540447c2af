package ports

import (
	"context"

	"pharmadispatch/internal/core/domain/events"
)

// EventPublisher pushes integration events to the message broker. Publishing
// happens after the owning transaction commits; a publish failure is logged
// and never rolls the business change back.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.Event) error
}
