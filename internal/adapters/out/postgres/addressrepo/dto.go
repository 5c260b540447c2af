// Package addressrepo provides data transfer objects and mapping functions
// for customer address persistence.
package addressrepo

import (
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// AddressDTO represents the database structure for persisting customer
// addresses. Coordinates are nullable: an address waits ungeocoded until a
// fix arrives.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label      string    `gorm:"type:varchar(64)"`
	Street     string    `gorm:"type:varchar(255);not null"`
	Barangay   string    `gorm:"type:varchar(255)"`
	City       string    `gorm:"type:varchar(255);not null"`
	Province   string    `gorm:"type:varchar(255)"`
	Lat        *float64
	Lon        *float64
}

// TableName overrides GORM's default naming to use "addresses".
func (AddressDTO) TableName() string {
	return "addresses"
}

// fromDomain converts an address entity to its database representation.
func fromDomain(a *location.Address) AddressDTO {
	var lat, lon *float64
	if point := a.Point(); point != nil {
		la, lo := point.Latitude(), point.Longitude()
		lat, lon = &la, &lo
	}

	return AddressDTO{
		ID:         a.ID().Bytes(),
		CustomerID: a.CustomerID().Bytes(),
		Label:      a.Label(),
		Street:     a.Street(),
		Barangay:   a.Barangay(),
		City:       a.City(),
		Province:   a.Province(),
		Lat:        lat,
		Lon:        lon,
	}
}

// toDomain converts a database DTO to an address entity.
func toDomain(dto AddressDTO) (*location.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var point *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		point = &p
	}

	return location.RestoreAddress(
		id,
		customerID,
		dto.Label,
		dto.Street,
		dto.Barangay,
		dto.City,
		dto.Province,
		point,
	)
}
