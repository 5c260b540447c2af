// Package zonerepo provides data transfer objects and mapping functions for
// delivery zone persistence.
package zonerepo

import (
	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ZoneDTO represents the database structure for persisting delivery zones.
type ZoneDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	City      string    `gorm:"type:varchar(255)"`
	CenterLat float64   `gorm:"not null"`
	CenterLon float64   `gorm:"not null"`
	RadiusKm  float64   `gorm:"not null"`

	MaxBatchSize       int     `gorm:"not null"`
	MaxBatchDistanceKm float64 `gorm:"not null"`
	Active             bool    `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "zones".
func (ZoneDTO) TableName() string {
	return "zones"
}

// fromDomain converts a zone aggregate to its database representation.
func fromDomain(z *dispatch.Zone) ZoneDTO {
	return ZoneDTO{
		ID:                 z.ID().Bytes(),
		Name:               z.Name(),
		City:               z.City(),
		CenterLat:          z.Center().Latitude(),
		CenterLon:          z.Center().Longitude(),
		RadiusKm:           z.RadiusKm(),
		MaxBatchSize:       z.MaxBatchSize(),
		MaxBatchDistanceKm: z.MaxBatchDistanceKm(),
		Active:             z.IsActive(),
	}
}

// toDomain converts a database DTO to a zone aggregate.
func toDomain(dto ZoneDTO) (*dispatch.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	center, err := kernel.NewGeoPoint(dto.CenterLat, dto.CenterLon)
	if err != nil {
		return nil, err
	}

	return dispatch.RestoreZone(
		id,
		dto.Name,
		dto.City,
		center,
		dto.RadiusKm,
		dto.MaxBatchSize,
		dto.MaxBatchDistanceKm,
		dto.Active,
	)
}
