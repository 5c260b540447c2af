package queries

import (
	"context"
	"database/sql"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveAssignmentsQueryHandler reads in-flight assignments straight from
// the database, joined with the rider's name and the batch size.
type GetActiveAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveAssignmentsQueryHandler creates a handler for in-flight
// assignment queries.
func NewGetActiveAssignmentsQueryHandler(db *gorm.DB) GetActiveAssignmentsQueryHandler {
	return GetActiveAssignmentsQueryHandler{db: db}
}

// Handle returns every active assignment, most recent first.
func (h GetActiveAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveAssignmentsQuery,
) ([]GetActiveAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	assignments := make([]GetActiveAssignmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.reference,
			r.name,
			a.status,
			COUNT(ao.order_id),
			a.total_delivery_fee,
			a.assigned_at,
			a.estimated_completion
		FROM assignments a
		JOIN riders r ON r.id = a.rider_id
		JOIN assignment_orders ao ON ao.assignment_id = a.id
		WHERE a.status IN ?
		GROUP BY a.id, a.reference, r.name, a.status,
			a.total_delivery_fee, a.assigned_at, a.estimated_completion
		ORDER BY a.assigned_at DESC
	`, activeAssignmentStatuses()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveAssignmentsQueryResponse
		var id uuid.UUID
		var estimated sql.NullTime
		var assignedAt time.Time

		err = rows.Scan(
			&id,
			&resp.Reference,
			&resp.RiderName,
			&resp.Status,
			&resp.OrderCount,
			&resp.TotalDeliveryFee,
			&assignedAt,
			&estimated,
		)
		if err != nil {
			return nil, err
		}

		assignmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = assignmentID
		resp.AssignedAt = assignedAt
		if estimated.Valid {
			t := estimated.Time
			resp.EstimatedCompletion = &t
		}

		assignments = append(assignments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
