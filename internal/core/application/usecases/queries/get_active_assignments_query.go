package queries

import (
	"errors"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/guard"
)

var ErrGetActiveAssignmentsQueryIsNotConstructed = errors.New(
	"GetActiveAssignmentsQuery must be created via NewGetActiveAssignmentsQuery constructor",
)

// GetActiveAssignmentsQuery retrieves every assignment currently in flight,
// across all zones. Used by the operations dashboard.
type GetActiveAssignmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveAssignmentsQuery creates a query for in-flight assignments.
func NewGetActiveAssignmentsQuery() GetActiveAssignmentsQuery {
	return GetActiveAssignmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveAssignmentsQueryIsNotConstructed)
}

// GetActiveAssignmentsQueryResponse is one in-flight assignment row.
type GetActiveAssignmentsQueryResponse struct {
	ID                  kernel.UUID
	Reference           string
	RiderName           string
	Status              string
	OrderCount          int
	TotalDeliveryFee    float64
	AssignedAt          time.Time
	EstimatedCompletion *time.Time
}
