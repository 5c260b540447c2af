// Package paymentrepo provides data transfer objects and mapping functions
// for payment record persistence.
package paymentrepo

import (
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for persisting payment
// records.
type PaymentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Method    string    `gorm:"type:varchar(32);not null"`
	Status    string    `gorm:"type:varchar(32);not null;index"`

	Amount         float64 `gorm:"not null"`
	ProcessingFee  float64 `gorm:"not null"`
	GatewayFee     float64 `gorm:"not null"`
	RefundedAmount float64 `gorm:"not null"`

	TransactionRef string `gorm:"type:varchar(255)"`
	FailureReason  string `gorm:"type:text"`
	RefundReason   string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	PaidAt    *time.Time
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment aggregate to its database representation.
func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:             p.ID().Bytes(),
		Reference:      p.Reference(),
		OrderID:        p.OrderID().Bytes(),
		Method:         p.Method().String(),
		Status:         p.Status().String(),
		Amount:         p.Amount(),
		ProcessingFee:  p.ProcessingFee(),
		GatewayFee:     p.GatewayFee(),
		RefundedAmount: p.RefundedAmount(),
		TransactionRef: p.TransactionRef(),
		FailureReason:  p.FailureReason(),
		RefundReason:   p.RefundReason(),
		CreatedAt:      p.CreatedAt(),
		PaidAt:         p.PaidAt(),
	}
}

// toDomain converts a database DTO to a payment aggregate.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	method, err := payment.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}
	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		dto.Reference,
		orderID,
		method,
		dto.Amount,
		dto.ProcessingFee,
		dto.GatewayFee,
		dto.RefundedAmount,
		status,
		dto.TransactionRef,
		dto.FailureReason,
		dto.RefundReason,
		dto.CreatedAt,
		dto.PaidAt,
	)
}
