package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharmadispatch/internal/core/domain/events"
	"pharmadispatch/internal/core/domain/model/payment"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"
)

var ErrPaymentNotFound = errors.New("payment not found")

// CreatePaymentCommandHandler opens a payment record for an order, charging
// the order's current total.
type CreatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewCreatePaymentCommandHandler creates a handler for payment creation.
func NewCreatePaymentCommandHandler(uowFactory PaymentUoWFactory) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates a pending payment record over the order's total amount.
func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) error {
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

	p, err := payment.NewPayment(cmd.PaymentID(), o.ID(), cmd.Method(), o.TotalAmount(),
		cmd.ProcessingFee(), cmd.GatewayFee())
	if err != nil {
		return err
	}

	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ProcessPaymentCommandHandler hands a pending charge to the provider.
type ProcessPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewProcessPaymentCommandHandler creates a handler for starting a charge.
func NewProcessPaymentCommandHandler(uowFactory PaymentUoWFactory) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the payment to processing. A failed payment retried with the
// same record also goes through here.
func (h ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) error {
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

	p, err := uow.PaymentRepository().Get(ctx, cmd.PaymentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = p.Process(); err != nil {
		return err
	}
	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// FailPaymentCommandHandler records a rejected charge and flips the order's
// payment state to failed in the same transaction.
type FailPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewFailPaymentCommandHandler creates a handler for failed charges.
func NewFailPaymentCommandHandler(uowFactory PaymentUoWFactory) FailPaymentCommandHandler {
	return FailPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails the payment and marks the order's payment side failed.
func (h FailPaymentCommandHandler) Handle(ctx context.Context, cmd FailPaymentCommand) error {
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

	p, err := uow.PaymentRepository().Get(ctx, cmd.PaymentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = p.Fail(cmd.Reason()); err != nil {
		return err
	}
	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, p.OrderID())
	if err != nil {
		return err
	}
	o.MarkPaymentFailed()
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// CancelPaymentCommandHandler abandons an unsettled payment. The order's
// payment state stays pending; the customer can open a new record with
// another method.
type CancelPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewCancelPaymentCommandHandler creates a handler for payment cancellation.
func NewCancelPaymentCommandHandler(uowFactory PaymentUoWFactory) CancelPaymentCommandHandler {
	return CancelPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the payment record.
func (h CancelPaymentCommandHandler) Handle(ctx context.Context, cmd CancelPaymentCommand) error {
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

	p, err := uow.PaymentRepository().Get(ctx, cmd.PaymentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = p.Cancel(); err != nil {
		return err
	}
	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// CompletePaymentCommandHandler settles a payment and flips the order's
// payment state to paid in the same transaction.
type CompletePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewCompletePaymentCommandHandler creates a handler for payment settlement.
func NewCompletePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CompletePaymentCommandHandler {
	return CompletePaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log.With("component", "complete_payment_handler"),
	}
}

// Handle settles the payment and marks the order paid.
func (h CompletePaymentCommandHandler) Handle(ctx context.Context, cmd CompletePaymentCommand) error {
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

	p, err := uow.PaymentRepository().Get(ctx, cmd.PaymentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = p.Complete(cmd.TransactionRef()); err != nil {
		return err
	}
	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, p.OrderID())
	if err != nil {
		return err
	}
	o.MarkPaid()
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, events.PaymentCompleted{
		PaymentID:  p.ID().String(),
		Reference:  p.Reference(),
		OrderID:    p.OrderID().String(),
		Method:     p.Method().String(),
		Amount:     p.Amount(),
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		h.log.Error("failed to publish event", "error", err)
	}
	return nil
}

// RefundPaymentCommandHandler returns money to the customer. A refund that
// empties the payment also drives the order's refund state; a delivered
// order fully refunded this way ends up refunded itself.
type RefundPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewRefundPaymentCommandHandler creates a handler for refunds.
func NewRefundPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) RefundPaymentCommandHandler {
	return RefundPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log.With("component", "refund_payment_handler"),
	}
}

// Handle refunds the payment and syncs the order's payment state.
func (h RefundPaymentCommandHandler) Handle(ctx context.Context, cmd RefundPaymentCommand) error {
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

	p, err := uow.PaymentRepository().Get(ctx, cmd.PaymentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = p.Refund(cmd.Amount(), cmd.Reason()); err != nil {
		return err
	}
	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, p.OrderID())
	if err != nil {
		return err
	}
	if err = o.MarkRefunded(!p.IsFullyRefunded()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, events.PaymentRefunded{
		PaymentID:  p.ID().String(),
		Reference:  p.Reference(),
		OrderID:    p.OrderID().String(),
		Amount:     cmd.Amount(),
		Partial:    !p.IsFullyRefunded(),
		Reason:     cmd.Reason(),
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		h.log.Error("failed to publish event", "error", err)
	}
	return nil
}
