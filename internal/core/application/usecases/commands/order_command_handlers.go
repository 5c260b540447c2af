package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharmadispatch/internal/core/domain/events"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderIsActivelyAssigned = errors.New("order is on an active assignment")
)

// UpdateOrderStatusCommandHandler advances an order along its lifecycle at
// the pharmacy's request.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log.With("component", "update_order_status_handler"),
	}
}

// Handle moves the order to the requested status. Invalid edges surface the
// aggregate's ErrInvalidTransition unchanged.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	from := o.Status()
	if err = o.TransitionTo(cmd.Status()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, events.OrderStatusChanged{
		OrderID:    o.ID().String(),
		Number:     o.Number(),
		From:       from.String(),
		To:         o.Status().String(),
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		h.log.Error("failed to publish event", "error", err)
	}
	return nil
}

// CancelOrderCommandHandler cancels an order. An order riding on an active
// assignment cannot be cancelled directly; the assignment must be dealt
// with first.
type CancelOrderCommandHandler struct {
	uowFactory OrderCancelUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderCancelUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log.With("component", "cancel_order_handler"),
	}
}

// Handle cancels the order, rejecting orders on an active assignment with
// ErrOrderIsActivelyAssigned.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	_, err = uow.AssignmentRepository().GetActiveByOrder(ctx, o.ID())
	if err == nil {
		return ErrOrderIsActivelyAssigned
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	from := o.Status()
	if err = o.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, events.OrderStatusChanged{
		OrderID:    o.ID().String(),
		Number:     o.Number(),
		From:       from.String(),
		To:         o.Status().String(),
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		h.log.Error("failed to publish event", "error", err)
	}
	return nil
}

// ApplyDiscountCommandHandler applies a discount to an order and recomputes
// its totals.
type ApplyDiscountCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApplyDiscountCommandHandler creates a handler for discount application.
func NewApplyDiscountCommandHandler(uowFactory OrderUoWFactory) ApplyDiscountCommandHandler {
	return ApplyDiscountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the discount within the aggregate's subtotal bound.
func (h ApplyDiscountCommandHandler) Handle(ctx context.Context, cmd ApplyDiscountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if err = o.ApplyDiscount(cmd.Amount()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
