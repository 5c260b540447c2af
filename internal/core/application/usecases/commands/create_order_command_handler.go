package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharmadispatch/internal/core/domain/events"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order placement. Stock is reserved with
// the pharmacy inventory before the order is persisted; a failed
// reservation aborts the whole command with ports.ErrInsufficientStock.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	inventory  ports.InventoryGateway
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	inventory ports.InventoryGateway,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		publisher:  publisher,
		log:        log.With("component", "create_order_handler"),
	}
}

// Handle processes the order placement command: reserves stock, builds the
// order aggregate in pending status and persists it. The reservation is
// released if persistence fails.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lines, err := cmd.DomainLines()
	if err != nil {
		return err
	}

	reservations := make([]ports.StockReservation, len(lines))
	for i, line := range lines {
		reservations[i] = ports.StockReservation{
			InventoryItemID: line.InventoryItemID(),
			Quantity:        line.Quantity(),
		}
	}

	if err = h.inventory.Reserve(ctx, reservations); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.releaseReservation(ctx, reservations)
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	destination, err := h.resolveDestination(ctx, uow, cmd)
	if err != nil {
		h.releaseReservation(ctx, reservations)
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.AddressID(),
		destination, cmd.DeliveryFee(), lines)
	if err != nil {
		h.releaseReservation(ctx, reservations)
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		h.releaseReservation(ctx, reservations)
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.releaseReservation(ctx, reservations)
		return err
	}

	h.publish(ctx, events.OrderStatusChanged{
		OrderID:    newOrder.ID().String(),
		Number:     newOrder.Number(),
		From:       "",
		To:         newOrder.Status().String(),
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// resolveDestination picks the delivery coordinate snapshot: the one on the
// command when the client supplied it, otherwise the stored address's fix.
// An address without coordinates yields a nil snapshot; the order is
// accepted and waits out of batching until geocoded.
func (h CreateOrderCommandHandler) resolveDestination(
	ctx context.Context,
	uow OrderUoW,
	cmd CreateOrderCommand,
) (*kernel.GeoPoint, error) {
	if cmd.Destination() != nil {
		return cmd.Destination(), nil
	}

	address, err := uow.AddressRepository().Get(ctx, cmd.AddressID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	return address.Point(), nil
}

func (h CreateOrderCommandHandler) releaseReservation(ctx context.Context, reservations []ports.StockReservation) {
	if err := h.inventory.Release(ctx, reservations); err != nil {
		h.log.Error("failed to release stock reservation", "error", err)
	}
}

func (h CreateOrderCommandHandler) publish(ctx context.Context, evt events.Event) {
	if err := h.publisher.Publish(ctx, evt); err != nil {
		h.log.Error("failed to publish event", "event", evt.Name(), "error", err)
	}
}
