package queries

import (
	"context"
	"database/sql"
	"time"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignedOrdersQueryHandler reads the dispatch backlog straight from
// the database. Read models bypass the aggregates for performance.
type GetUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedOrdersQueryHandler creates a handler for backlog queries.
func NewGetUnassignedOrdersQueryHandler(db *gorm.DB) GetUnassignedOrdersQueryHandler {
	return GetUnassignedOrdersQueryHandler{db: db}
}

// Handle returns ready-for-pickup orders that are not covered by any active
// assignment, oldest first.
func (h GetUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedOrdersQuery,
) ([]GetUnassignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnassignedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.dest_lat,
			o.dest_lon,
			o.delivery_fee,
			o.created_at
		FROM orders o
		WHERE o.status = ?
		  AND NOT EXISTS (
			SELECT 1
			FROM assignment_orders ao
			JOIN assignments a ON a.id = ao.assignment_id
			WHERE ao.order_id = o.id
			  AND a.status IN ?
		  )
		ORDER BY o.created_at
	`, order.StatusReadyForPickup.String(), activeAssignmentStatuses()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnassignedOrdersQueryResponse
		var id uuid.UUID
		var lat, lon sql.NullFloat64
		var createdAt time.Time

		err = rows.Scan(&id, &resp.Number, &lat, &lon, &resp.DeliveryFee, &createdAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CreatedAt = createdAt

		if lat.Valid && lon.Valid {
			point, pointErr := kernel.NewGeoPoint(lat.Float64, lon.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			resp.Destination = &point
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// activeAssignmentStatuses lists the assignment statuses that still claim
// their orders.
func activeAssignmentStatuses() []string {
	return []string{
		dispatch.StatusAssigned.String(),
		dispatch.StatusAccepted.String(),
		dispatch.StatusPickedUp.String(),
		dispatch.StatusDelivering.String(),
	}
}
