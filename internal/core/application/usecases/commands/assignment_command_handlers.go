package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharmadispatch/internal/core/domain/events"
	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

// assignmentWorkflow carries the shared plumbing of the rider-driven
// assignment transitions: aggregate loading, order synchronization and
// event publishing.
type assignmentWorkflow struct {
	uowFactory DispatchUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

func newAssignmentWorkflow(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
	component string,
) assignmentWorkflow {
	return assignmentWorkflow{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log.With("component", component),
	}
}

func (w assignmentWorkflow) loadAssignment(
	ctx context.Context,
	uow DispatchUoW,
	id kernel.UUID,
) (*dispatch.Assignment, error) {
	assignment, err := uow.AssignmentRepository().Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// syncOrders moves every order of the batch to the given status and
// persists them.
func (w assignmentWorkflow) syncOrders(
	ctx context.Context,
	uow DispatchUoW,
	assignment *dispatch.Assignment,
	to order.Status,
) ([]events.Event, error) {
	orders, err := uow.OrderRepository().GetAllByIDs(ctx, assignment.OrderIDs())
	if err != nil {
		return nil, err
	}

	evts := make([]events.Event, 0, len(orders))
	for _, o := range orders {
		from := o.Status()
		if err = o.TransitionTo(to); err != nil {
			return nil, err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return nil, err
		}
		evts = append(evts, events.OrderStatusChanged{
			OrderID:    o.ID().String(),
			Number:     o.Number(),
			From:       from.String(),
			To:         to.String(),
			OccurredAt: time.Now().UTC(),
		})
	}
	return evts, nil
}

func (w assignmentWorkflow) statusChangedEvent(
	assignment *dispatch.Assignment,
	from dispatch.Status,
) events.Event {
	return events.AssignmentStatusChanged{
		AssignmentID: assignment.ID().String(),
		Reference:    assignment.Reference(),
		RiderID:      assignment.RiderID().String(),
		From:         from.String(),
		To:           assignment.Status().String(),
		OccurredAt:   time.Now().UTC(),
	}
}

func (w assignmentWorkflow) publish(ctx context.Context, evts ...events.Event) {
	for _, evt := range evts {
		if err := w.publisher.Publish(ctx, evt); err != nil {
			w.log.Error("failed to publish event", "event", evt.Name(), "error", err)
		}
	}
}

// AcceptAssignmentCommandHandler records a rider confirming an offered batch.
type AcceptAssignmentCommandHandler struct {
	assignmentWorkflow
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment acceptance.
func NewAcceptAssignmentCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		assignmentWorkflow: newAssignmentWorkflow(uowFactory, publisher, log, "accept_assignment_handler"),
	}
}

// Handle moves the assignment to accepted.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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

	assignment, err := h.loadAssignment(ctx, uow, cmd.AssignmentID())
	if err != nil {
		return err
	}

	from := assignment.Status()
	if err = assignment.Accept(); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, h.statusChangedEvent(assignment, from))
	return nil
}

// MarkPickedUpCommandHandler records the rider collecting all packages of
// the batch and moves the batch's orders to picked_up in the same
// transaction, so the order and assignment views never disagree.
type MarkPickedUpCommandHandler struct {
	assignmentWorkflow
}

// NewMarkPickedUpCommandHandler creates a handler for pickup recording.
func NewMarkPickedUpCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		assignmentWorkflow: newAssignmentWorkflow(uowFactory, publisher, log, "mark_picked_up_handler"),
	}
}

// Handle moves the assignment to picked_up and syncs the batch's orders.
// Repeating the call once picked up is a no-op.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
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

	assignment, err := h.loadAssignment(ctx, uow, cmd.AssignmentID())
	if err != nil {
		return err
	}

	from := assignment.Status()
	if from == dispatch.StatusPickedUp {
		return nil
	}
	if err = assignment.MarkPickedUp(); err != nil {
		return err
	}

	orderEvents, err := h.syncOrders(ctx, uow, assignment, order.StatusPickedUp)
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, h.statusChangedEvent(assignment, from))
	h.publish(ctx, orderEvents...)
	return nil
}

// StartDeliveryCommandHandler records the rider leaving the pharmacy.
type StartDeliveryCommandHandler struct {
	assignmentWorkflow
}

// NewStartDeliveryCommandHandler creates a handler for delivery start.
func NewStartDeliveryCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		assignmentWorkflow: newAssignmentWorkflow(uowFactory, publisher, log, "start_delivery_handler"),
	}
}

// Handle moves the assignment to delivering.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	assignment, err := h.loadAssignment(ctx, uow, cmd.AssignmentID())
	if err != nil {
		return err
	}

	from := assignment.Status()
	if err = assignment.StartDelivery(); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, h.statusChangedEvent(assignment, from))
	return nil
}

// CompleteAssignmentCommandHandler finishes a batch: the assignment
// completes, every order moves to delivered, and the rider gets the
// earnings credit and returns to the dispatch pool.
type CompleteAssignmentCommandHandler struct {
	assignmentWorkflow
}

// NewCompleteAssignmentCommandHandler creates a handler for assignment completion.
func NewCompleteAssignmentCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CompleteAssignmentCommandHandler {
	return CompleteAssignmentCommandHandler{
		assignmentWorkflow: newAssignmentWorkflow(uowFactory, publisher, log, "complete_assignment_handler"),
	}
}

// Handle completes the assignment, delivers its orders and credits the rider.
func (h CompleteAssignmentCommandHandler) Handle(ctx context.Context, cmd CompleteAssignmentCommand) error {
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

	assignment, err := h.loadAssignment(ctx, uow, cmd.AssignmentID())
	if err != nil {
		return err
	}

	from := assignment.Status()
	if err = assignment.Complete(); err != nil {
		return err
	}

	orderEvents, err := h.syncOrders(ctx, uow, assignment, order.StatusDelivered)
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return err
	}

	assignedRider, err := uow.RiderRepository().Get(ctx, assignment.RiderID())
	if err != nil {
		return err
	}
	if err = assignedRider.RecordDelivery(assignment.RiderEarnings()); err != nil {
		return err
	}
	if err = assignedRider.SetAvailable(true); err != nil {
		return err
	}
	if err = uow.RiderRepository().Update(ctx, assignedRider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, h.statusChangedEvent(assignment, from))
	h.publish(ctx, events.AssignmentCompleted{
		AssignmentID:  assignment.ID().String(),
		Reference:     assignment.Reference(),
		RiderID:       assignment.RiderID().String(),
		RiderEarnings: assignment.RiderEarnings(),
		OccurredAt:    time.Now().UTC(),
	})
	h.publish(ctx, orderEvents...)
	return nil
}

// CancelAssignmentCommandHandler abandons an assignment. Its orders are not
// touched: not-yet-picked-up orders simply re-enter the next batching pass,
// while picked-up ones need operator follow-up.
type CancelAssignmentCommandHandler struct {
	assignmentWorkflow
}

// NewCancelAssignmentCommandHandler creates a handler for assignment cancellation.
func NewCancelAssignmentCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CancelAssignmentCommandHandler {
	return CancelAssignmentCommandHandler{
		assignmentWorkflow: newAssignmentWorkflow(uowFactory, publisher, log, "cancel_assignment_handler"),
	}
}

// Handle cancels the assignment and returns the rider to the dispatch pool
// when their approval still allows it.
func (h CancelAssignmentCommandHandler) Handle(ctx context.Context, cmd CancelAssignmentCommand) error {
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

	assignment, err := h.loadAssignment(ctx, uow, cmd.AssignmentID())
	if err != nil {
		return err
	}

	from := assignment.Status()
	if err = assignment.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return err
	}

	assignedRider, err := uow.RiderRepository().Get(ctx, assignment.RiderID())
	if err != nil {
		return err
	}
	if err = assignedRider.SetAvailable(true); err != nil {
		// A suspended rider stays off shift; the cancellation itself holds.
		h.log.Warn("rider not returned to dispatch pool",
			"rider_id", assignedRider.ID().String(), "error", err)
	}
	if err = uow.RiderRepository().Update(ctx, assignedRider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, h.statusChangedEvent(assignment, from))
	return nil
}
