package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler assembles the tracking view from the database
// and the live position tracker. A missing or expired rider fix degrades the
// view instead of failing it.
type GetOrderTrackingQueryHandler struct {
	db      *gorm.DB
	tracker ports.LocationTracker
	log     *slog.Logger
}

// NewGetOrderTrackingQueryHandler creates a handler for order tracking.
func NewGetOrderTrackingQueryHandler(
	db *gorm.DB,
	tracker ports.LocationTracker,
	log *slog.Logger,
) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{
		db:      db,
		tracker: tracker,
		log:     log.With("component", "order_tracking_handler"),
	}
}

// Handle returns the tracking view for one order. ErrOrderNotFound when the
// order does not exist.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.payment_state,
			a.reference,
			a.status,
			a.estimated_completion,
			r.id,
			r.name
		FROM orders o
		LEFT JOIN assignment_orders ao ON ao.order_id = o.id
		LEFT JOIN assignments a ON a.id = ao.assignment_id AND a.status IN ?
		LEFT JOIN riders r ON r.id = a.rider_id
		WHERE o.id = ?
		ORDER BY a.assigned_at DESC
		LIMIT 1
	`, activeAssignmentStatuses(), query.OrderID().String()).Row()

	var resp GetOrderTrackingQueryResponse
	var id uuid.UUID
	var assignmentRef, assignmentStatus, riderName sql.NullString
	var estimated sql.NullTime
	var riderID uuid.NullUUID

	err := row.Scan(
		&id,
		&resp.Number,
		&resp.Status,
		&resp.PaymentState,
		&assignmentRef,
		&assignmentStatus,
		&estimated,
		&riderID,
		&riderName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{}, ErrOrderNotFound
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	resp.OrderID = orderID

	if assignmentRef.Valid {
		resp.AssignmentReference = assignmentRef.String
		resp.AssignmentStatus = assignmentStatus.String
		resp.RiderName = riderName.String
		if estimated.Valid {
			t := estimated.Time
			resp.EstimatedCompletion = &t
		}
	}

	if riderID.Valid {
		trackedRider, idErr := kernel.UUIDFromBytes(riderID.UUID[:])
		if idErr != nil {
			return GetOrderTrackingQueryResponse{}, idErr
		}
		resp.RiderPosition = h.lastKnownPosition(ctx, trackedRider)
	}

	return resp, nil
}

// lastKnownPosition fetches the rider's live fix, tolerating expiry and
// tracker outages.
func (h GetOrderTrackingQueryHandler) lastKnownPosition(
	ctx context.Context,
	riderID kernel.UUID,
) *ports.RiderPosition {
	position, err := h.tracker.LastKnown(ctx, riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		h.log.Warn("location tracker unavailable", "rider_id", riderID.String(), "error", err)
		return nil
	}
	return &position
}
