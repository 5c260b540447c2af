package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrApplyDiscountCommandIsNotConstructed = errors.New(
		"ApplyDiscountCommand must be created via NewApplyDiscountCommand constructor",
	)
)

// UpdateOrderStatusCommand represents the pharmacy advancing an order along
// its lifecycle (accepting, preparing, marking ready for pickup).
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move an order to the
// given status. The transition itself is validated by the aggregate.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, status order.Status) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return UpdateOrderStatusCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Status returns the target status.
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }

// CancelOrderCommand represents cancelling an order before pickup.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	if reason == "" {
		return CancelOrderCommand{}, ErrCancelReasonIsRequired
	}
	return CancelOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Reason returns why the order is being cancelled.
func (c CancelOrderCommand) Reason() string { return c.reason }

// ApplyDiscountCommand represents applying a discount to an order.
type ApplyDiscountCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  float64

	guard guard.ConstructorGuard
}

// NewApplyDiscountCommand creates a command to apply a discount. The bound
// against the order's subtotal is enforced by the aggregate.
func NewApplyDiscountCommand(orderID kernel.UUID, amount float64) (ApplyDiscountCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApplyDiscountCommand{}, err
	}
	return ApplyDiscountCommand{
		orderID: orderID,
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyDiscountCommand) Validate() error {
	return c.guard.Validate(ErrApplyDiscountCommandIsNotConstructed)
}

// OrderID returns the order to discount.
func (c ApplyDiscountCommand) OrderID() kernel.UUID { return c.orderID }

// Amount returns the discount amount.
func (c ApplyDiscountCommand) Amount() float64 { return c.amount }
