// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Destination coordinates are nullable: an order whose address failed
// geocoding persists without them and stays out of batching.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AddressID    uuid.UUID `gorm:"type:uuid;not null"`
	DestLat      *float64
	DestLon      *float64
	Status       string `gorm:"type:varchar(32);not null;index"`
	PaymentState string `gorm:"type:varchar(32);not null"`

	DeliveryFee    float64
	DiscountAmount float64

	Notes             string `gorm:"type:text"`
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	CreatedAt         time.Time `gorm:"not null;index"`

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one order line. Lines are value objects keyed by
// their position within the order, so updates overwrite deterministically.
type OrderLineDTO struct {
	OrderID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineNo               int       `gorm:"primaryKey"`
	InventoryItemID      uuid.UUID `gorm:"type:uuid;not null"`
	ProductName          string    `gorm:"type:varchar(255);not null"`
	Quantity             int       `gorm:"not null"`
	UnitPrice            float64   `gorm:"not null"`
	PrescriptionRequired bool      `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "order_lines".
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var destLat, destLon *float64
	if dest := o.Destination(); dest != nil {
		lat, lon := dest.Latitude(), dest.Longitude()
		destLat, destLon = &lat, &lon
	}

	domainLines := o.Lines()
	lines := make([]OrderLineDTO, 0, len(domainLines))
	for i, line := range domainLines {
		lines = append(lines, OrderLineDTO{
			OrderID:              orderID,
			LineNo:               i + 1,
			InventoryItemID:      line.InventoryItemID().Bytes(),
			ProductName:          line.ProductName(),
			Quantity:             line.Quantity(),
			UnitPrice:            line.UnitPrice(),
			PrescriptionRequired: line.PrescriptionRequired(),
		})
	}

	return OrderDTO{
		ID:                orderID,
		Number:            o.Number(),
		CustomerID:        o.CustomerID().Bytes(),
		AddressID:         o.AddressID().Bytes(),
		DestLat:           destLat,
		DestLon:           destLon,
		Status:            o.Status().String(),
		PaymentState:      o.PaymentState().String(),
		DeliveryFee:       o.DeliveryFee(),
		DiscountAmount:    o.DiscountAmount(),
		Notes:             o.Notes(),
		EstimatedDelivery: o.EstimatedDelivery(),
		ActualDelivery:    o.ActualDelivery(),
		CreatedAt:         o.CreatedAt(),
		Lines:             lines,
	}
}

// toDomain converts a database DTO to an order aggregate. Monetary totals are
// recomputed by RestoreOrder from the lines, fee and discount.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var destination *kernel.GeoPoint
	if dto.DestLat != nil && dto.DestLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DestLat, *dto.DestLon)
		if pointErr != nil {
			return nil, pointErr
		}
		destination = &point
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		itemID, lineErr := kernel.UUIDFromBytes(lineDTO.InventoryItemID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := order.NewLine(
			itemID,
			lineDTO.ProductName,
			lineDTO.Quantity,
			lineDTO.UnitPrice,
			lineDTO.PrescriptionRequired,
		)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentState, err := order.PaymentStateFromString(dto.PaymentState)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		addressID,
		destination,
		lines,
		status,
		paymentState,
		dto.DeliveryFee,
		dto.DiscountAmount,
		dto.Notes,
		dto.EstimatedDelivery,
		dto.ActualDelivery,
		dto.CreatedAt,
	)
}
