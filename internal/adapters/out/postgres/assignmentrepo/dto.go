// Package assignmentrepo provides data transfer objects and mapping
// functions for rider assignment persistence.
package assignmentrepo

import (
	"time"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignment
// aggregates.
type AssignmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	RiderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ZoneID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(32);not null;index"`

	TotalDeliveryFee float64 `gorm:"not null"`
	RiderEarnings    float64 `gorm:"not null"`

	AssignedAt          time.Time `gorm:"not null"`
	AcceptedAt          *time.Time
	PickedUpAt          *time.Time
	CompletedAt         *time.Time
	EstimatedCompletion *time.Time
	CancelReason        string `gorm:"type:text"`

	Orders []AssignmentOrderDTO `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// AssignmentOrderDTO links one order into an assignment with its route
// sequencing and per-order delivery stamps. Active mirrors the parent
// assignment's status; the partial unique index on it is what guarantees an
// order rides on at most one live assignment, even across concurrent
// batching transactions.
type AssignmentOrderDTO struct {
	AssignmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey;index;uniqueIndex:uq_assignment_orders_active_order,where:active"`
	Active       bool      `gorm:"not null"`
	PickupSeq    int       `gorm:"not null"`
	DeliverySeq  int       `gorm:"not null"`
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time
}

// TableName overrides GORM's default naming to use "assignment_orders".
func (AssignmentOrderDTO) TableName() string {
	return "assignment_orders"
}

// fromDomain converts an assignment aggregate to its database representation.
func fromDomain(a *dispatch.Assignment) AssignmentDTO {
	assignmentID := a.ID().Bytes()

	links := a.Orders()
	orders := make([]AssignmentOrderDTO, 0, len(links))
	for _, link := range links {
		orders = append(orders, AssignmentOrderDTO{
			AssignmentID: assignmentID,
			OrderID:      link.OrderID().Bytes(),
			Active:       a.IsActive(),
			PickupSeq:    link.PickupSeq(),
			DeliverySeq:  link.DeliverySeq(),
			PickedUpAt:   link.PickedUpAt(),
			DeliveredAt:  link.DeliveredAt(),
		})
	}

	return AssignmentDTO{
		ID:                  assignmentID,
		Reference:           a.Reference(),
		RiderID:             a.RiderID().Bytes(),
		ZoneID:              a.ZoneID().Bytes(),
		Status:              a.Status().String(),
		TotalDeliveryFee:    a.TotalDeliveryFee(),
		RiderEarnings:       a.RiderEarnings(),
		AssignedAt:          a.AssignedAt(),
		AcceptedAt:          a.AcceptedAt(),
		PickedUpAt:          a.PickedUpAt(),
		CompletedAt:         a.CompletedAt(),
		EstimatedCompletion: a.EstimatedCompletion(),
		CancelReason:        a.CancelReason(),
		Orders:              orders,
	}
}

// toDomain converts a database DTO to an assignment aggregate.
func toDomain(dto AssignmentDTO) (*dispatch.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	status, err := dispatch.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	links := make([]dispatch.OrderLink, 0, len(dto.Orders))
	for _, orderDTO := range dto.Orders {
		orderID, linkErr := kernel.UUIDFromBytes(orderDTO.OrderID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		link, linkErr := dispatch.RestoreOrderLink(
			orderID,
			orderDTO.PickupSeq,
			orderDTO.DeliverySeq,
			orderDTO.PickedUpAt,
			orderDTO.DeliveredAt,
		)
		if linkErr != nil {
			return nil, linkErr
		}
		links = append(links, link)
	}

	return dispatch.RestoreAssignment(
		id,
		dto.Reference,
		riderID,
		zoneID,
		links,
		status,
		dto.TotalDeliveryFee,
		dto.RiderEarnings,
		dto.AssignedAt,
		dto.AcceptedAt,
		dto.PickedUpAt,
		dto.CompletedAt,
		dto.EstimatedCompletion,
		dto.CancelReason,
	)
}
