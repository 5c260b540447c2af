// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence.
package riderrepo

import (
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
type RiderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32)"`
	Vehicle   string    `gorm:"type:varchar(32);not null"`
	Approval  string    `gorm:"type:varchar(32);not null;index"`
	Available bool      `gorm:"not null;index"`

	TotalDeliveries int     `gorm:"not null"`
	TotalEarnings   float64 `gorm:"not null"`
	Rating          float64 `gorm:"not null"`
	RatingCount     int     `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "riders".
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:              r.ID().Bytes(),
		Name:            r.Name(),
		Phone:           r.Phone(),
		Vehicle:         r.Vehicle().String(),
		Approval:        r.Approval().String(),
		Available:       r.IsAvailable(),
		TotalDeliveries: r.TotalDeliveries(),
		TotalEarnings:   r.TotalEarnings(),
		Rating:          r.Rating(),
		RatingCount:     r.RatingCount(),
	}
}

// toDomain converts a database DTO to a rider aggregate.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := rider.VehicleFromString(dto.Vehicle)
	if err != nil {
		return nil, err
	}
	approval, err := rider.ApprovalStatusFromString(dto.Approval)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(
		id,
		dto.Name,
		dto.Phone,
		vehicle,
		approval,
		dto.Available,
		dto.TotalDeliveries,
		dto.TotalEarnings,
		dto.Rating,
		dto.RatingCount,
	)
}
