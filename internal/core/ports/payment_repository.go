package ports

import (
	"context"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
type PaymentRepository interface {
	// Add persists a new payment record to storage.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment record.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetAllByOrder retrieves every payment record attached to an order,
	// oldest first. An order accumulates records across retried charges.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
