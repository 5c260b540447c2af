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
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/core/domain/services"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"
)

var (
	ErrZoneNotFound      = errors.New("delivery zone not found")
	ErrZoneInactive      = errors.New("delivery zone is not active")
	ErrNoOrdersToBatch   = errors.New("no orders ready for batching")
	ErrNoRidersAvailable = errors.New("no riders available for dispatch")
)

// BatchOrdersCommandHandler runs one batching pass for a zone. It is the
// write side of the dispatch loop: the cron job and the manual dispatch
// endpoint both funnel through here.
//
// The whole pass runs in a single transaction. ActiveOrderIDs locks the
// active assignment rows, so two concurrent passes serialize and an order
// can never end up on two riders.
type BatchOrdersCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.EventPublisher
	tracker    ports.LocationTracker
	log        *slog.Logger
}

// NewBatchOrdersCommandHandler creates a handler for batching runs.
func NewBatchOrdersCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	tracker ports.LocationTracker,
	log *slog.Logger,
) BatchOrdersCommandHandler {
	return BatchOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		tracker:    tracker,
		log:        log.With("component", "batch_orders_handler"),
	}
}

// Handle processes one batching pass: loads the zone's ready unassigned
// orders, groups them with the zone's batch planner, and offers each batch
// to an available rider. Batches left without a rider stay queued for the
// next pass.
func (h BatchOrdersCommandHandler) Handle(ctx context.Context, cmd BatchOrdersCommand) error {
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

	zone, err := uow.ZoneRepository().Get(ctx, cmd.ZoneID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrZoneNotFound
	}
	if err != nil {
		return err
	}
	if !zone.IsActive() {
		return ErrZoneInactive
	}

	planner, err := services.NewBatchPlannerForZone(zone)
	if err != nil {
		return err
	}

	candidates, err := h.loadCandidates(ctx, uow, zone)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrNoOrdersToBatch
	}

	batches, err := planner.PlanBatches(candidates)
	if err != nil {
		return err
	}

	riders, err := uow.RiderRepository().GetAllDispatchable(ctx)
	if err != nil {
		return err
	}

	positions := h.riderPositions(ctx, riders)

	created, err := h.assignBatches(ctx, uow, planner, zone, batches, riders, positions)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		return ErrNoRidersAvailable
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, evt := range created {
		if err = h.publisher.Publish(ctx, evt); err != nil {
			h.log.Error("failed to publish event", "event", evt.Name(), "error", err)
		}
	}

	h.log.Info("batching pass finished",
		"zone", zone.Name(), "candidates", len(candidates), "assignments", len(created))
	return nil
}

// loadCandidates returns the zone's ready orders that are not already on an
// active assignment and whose destination falls inside the zone.
func (h BatchOrdersCommandHandler) loadCandidates(
	ctx context.Context,
	uow DispatchUoW,
	zone *dispatch.Zone,
) ([]*order.Order, error) {
	ready, err := uow.OrderRepository().GetAllReadyForPickup(ctx)
	if err != nil {
		return nil, err
	}

	activeIDs, err := uow.AssignmentRepository().ActiveOrderIDs(ctx)
	if err != nil {
		return nil, err
	}
	active := make(map[kernel.UUID]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}

	candidates := make([]*order.Order, 0, len(ready))
	for _, o := range ready {
		if active[o.ID()] || !o.HasDestination() {
			continue
		}

		inside, err := zone.ContainsPoint(*o.Destination())
		if err != nil {
			return nil, err
		}
		if inside {
			candidates = append(candidates, o)
		}
	}
	return candidates, nil
}

// riderPositions collects each rider's last known fix. A rider without a
// recent fix is simply absent from the map; a tracker outage degrades to an
// empty map rather than stalling the pass.
func (h BatchOrdersCommandHandler) riderPositions(
	ctx context.Context,
	riders []*rider.Rider,
) map[kernel.UUID]kernel.GeoPoint {
	positions := make(map[kernel.UUID]kernel.GeoPoint, len(riders))
	for _, r := range riders {
		position, err := h.tracker.LastKnown(ctx, r.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			h.log.Warn("location tracker unavailable", "rider", r.ID().String(), "error", err)
			continue
		}
		positions[r.ID()] = position.Point
	}
	return positions
}

// assignBatches offers batches to riders in planning order. Riders with a
// recent fix near the batch's first drop are preferred; without position
// data the pool order decides. When riders run out the remaining batches
// are simply left for the next pass.
func (h BatchOrdersCommandHandler) assignBatches(
	ctx context.Context,
	uow DispatchUoW,
	planner services.BatchPlanner,
	zone *dispatch.Zone,
	batches [][]*order.Order,
	riders []*rider.Rider,
	positions map[kernel.UUID]kernel.GeoPoint,
) ([]events.Event, error) {
	var created []events.Event

	for _, batch := range batches {
		chosen, err := h.chooseRider(planner, batch, riders, positions)
		if errors.Is(err, services.ErrRiderNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}

		assignment, err := planner.BuildAssignment(chosen.ID(), zone.ID(), batch)
		if err != nil {
			return nil, err
		}

		if err = uow.AssignmentRepository().Add(ctx, assignment); err != nil {
			return nil, err
		}

		if err = chosen.SetAvailable(false); err != nil {
			return nil, err
		}
		if err = uow.RiderRepository().Update(ctx, chosen); err != nil {
			return nil, err
		}

		orderIDs := make([]string, 0, len(batch))
		for _, o := range batch {
			orderIDs = append(orderIDs, o.ID().String())
		}
		created = append(created, events.AssignmentCreated{
			AssignmentID: assignment.ID().String(),
			Reference:    assignment.Reference(),
			RiderID:      chosen.ID().String(),
			ZoneID:       zone.ID().String(),
			OrderIDs:     orderIDs,
			OccurredAt:   time.Now().UTC(),
		})
	}

	return created, nil
}

// chooseRider picks the rider for one batch: first a nearby rider with a
// recent fix, then the first dispatchable rider in pool order.
func (h BatchOrdersCommandHandler) chooseRider(
	planner services.BatchPlanner,
	batch []*order.Order,
	riders []*rider.Rider,
	positions map[kernel.UUID]kernel.GeoPoint,
) (*rider.Rider, error) {
	nearby, err := planner.FindAvailableRiders(batch[0].Destination(), riders, positions)
	if err != nil {
		return nil, err
	}
	if len(nearby) > 0 {
		return nearby[0], nil
	}

	return planner.FindRider(riders)
}
