package services

import (
	"errors"
	"sort"
	"time"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/pkg/errs"
)

// completionEstimate is how far ahead a freshly planned batch is promised.
const completionEstimate = 2 * time.Hour

// Domain errors for batch planning.
var (
	// ErrRiderNotFound is returned when no dispatchable rider is available
	// for a planned batch.
	ErrRiderNotFound = errors.New("no available rider found")
	// ErrEmptyBatch is returned when building an assignment from no orders.
	ErrEmptyBatch = errors.New("batch contains no orders")
	// ErrInfeasibleBatch is returned when a batch violates the zone's
	// batching constraints.
	ErrInfeasibleBatch = errors.New("batch violates batching constraints")
)

// BatchPlanner is a domain service that groups ready orders into rider
// batches and turns a batch into an assignment.
//
// Planning is greedy and FIFO: orders are walked oldest first, each order
// seeds a batch, and later orders join while the batch has room and every
// pairwise delivery distance stays within the zone's cap. The oldest order
// is never starved by a better grouping further down the queue.
type BatchPlanner struct {
	maxBatchSize       int
	maxBatchDistanceKm float64
}

// NewBatchPlanner creates a planner with the given zone batching settings.
func NewBatchPlanner(maxBatchSize int, maxBatchDistanceKm float64) (BatchPlanner, error) {
	if maxBatchSize < dispatch.BatchSizeMin || maxBatchSize > dispatch.BatchSizeMax {
		return BatchPlanner{}, errs.NewValueIsOutOfRangeError("maxBatchSize",
			float64(maxBatchSize), dispatch.BatchSizeMin, dispatch.BatchSizeMax)
	}
	if maxBatchDistanceKm <= 0 {
		return BatchPlanner{}, errs.NewValueIsInvalidError("maxBatchDistanceKm")
	}

	return BatchPlanner{
		maxBatchSize:       maxBatchSize,
		maxBatchDistanceKm: maxBatchDistanceKm,
	}, nil
}

// NewBatchPlannerForZone creates a planner using a zone's settings.
func NewBatchPlannerForZone(zone *dispatch.Zone) (BatchPlanner, error) {
	if err := zone.Validate(); err != nil {
		return BatchPlanner{}, err
	}
	return NewBatchPlanner(zone.MaxBatchSize(), zone.MaxBatchDistanceKm())
}

// CanBatch reports whether the given orders may travel together: the batch
// must fit the size cap and every pair of destinations must be within the
// distance cap. Zero or one orders are trivially batchable; once there is a
// pair to measure, an order without coordinates fails closed. The answer
// does not depend on the input order.
func (p BatchPlanner) CanBatch(orders []*order.Order) (bool, error) {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return false, err
		}
	}

	if len(orders) > p.maxBatchSize {
		return false, nil
	}
	if len(orders) <= 1 {
		return true, nil
	}

	for _, o := range orders {
		if !o.HasDestination() {
			return false, nil
		}
	}

	for i := 0; i < len(orders); i++ {
		for j := i + 1; j < len(orders); j++ {
			distance, err := orders[i].Destination().DistanceKm(*orders[j].Destination())
			if err != nil {
				return false, err
			}
			if distance > p.maxBatchDistanceKm {
				return false, nil
			}
		}
	}

	return true, nil
}

// PlanBatches groups orders into batches, oldest order first. Orders
// without a destination are skipped; they cannot be dispatched until
// geocoded. Every returned batch satisfies CanBatch and the size cap.
func (p BatchPlanner) PlanBatches(orders []*order.Order) ([][]*order.Order, error) {
	candidates := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.HasDestination() {
			candidates = append(candidates, o)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt().Before(candidates[j].CreatedAt())
	})

	var batches [][]*order.Order
	batched := make(map[kernel.UUID]bool, len(candidates))

	for i, seed := range candidates {
		if batched[seed.ID()] {
			continue
		}

		batch := []*order.Order{seed}
		batched[seed.ID()] = true

		for j := i + 1; j < len(candidates) && len(batch) < p.maxBatchSize; j++ {
			next := candidates[j]
			if batched[next.ID()] {
				continue
			}

			fits, err := p.fitsBatch(batch, next)
			if err != nil {
				return nil, err
			}
			if fits {
				batch = append(batch, next)
				batched[next.ID()] = true
			}
		}

		batches = append(batches, batch)
	}

	return batches, nil
}

// BuildAssignment turns a planned batch into a rider assignment. Pickup and
// delivery sequences follow the batch order; the fee pool is the sum of the
// orders' delivery fees.
func (p BatchPlanner) BuildAssignment(
	riderID kernel.UUID,
	zoneID kernel.UUID,
	batch []*order.Order,
) (*dispatch.Assignment, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(batch) > p.maxBatchSize {
		return nil, ErrInfeasibleBatch
	}

	feasible, err := p.CanBatch(batch)
	if err != nil {
		return nil, err
	}
	if !feasible {
		return nil, ErrInfeasibleBatch
	}

	links := make([]dispatch.OrderLink, len(batch))
	totalFee := 0.0
	for i, o := range batch {
		link, err := dispatch.NewOrderLink(o.ID(), i+1, i+1)
		if err != nil {
			return nil, err
		}
		links[i] = link
		totalFee += o.DeliveryFee()
	}

	estimated := time.Now().UTC().Add(completionEstimate)
	return dispatch.NewAssignment(kernel.NewUUID(), riderID, zoneID, links, totalFee, &estimated)
}

// FindRider picks the rider for a batch: the first dispatchable one in the
// given order. Callers control the ordering (and therefore the fairness
// policy) by how they load the candidate list.
func (p BatchPlanner) FindRider(riders []*rider.Rider) (*rider.Rider, error) {
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.IsDispatchable() {
			return r, nil
		}
	}
	return nil, ErrRiderNotFound
}

// FindAvailableRiders filters the pool down to dispatchable riders whose
// most recent position fix lies within the distance cap of the destination.
// A nil destination fails closed to an empty list, as does a rider without
// a fix: dispatch never guesses where anyone is. Linear scan; fleets here
// are small.
func (p BatchPlanner) FindAvailableRiders(
	destination *kernel.GeoPoint,
	riders []*rider.Rider,
	positions map[kernel.UUID]kernel.GeoPoint,
) ([]*rider.Rider, error) {
	nearby := make([]*rider.Rider, 0, len(riders))
	if destination == nil {
		return nearby, nil
	}

	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if !r.IsDispatchable() {
			continue
		}

		fix, ok := positions[r.ID()]
		if !ok {
			continue
		}

		distance, err := fix.DistanceKm(*destination)
		if err != nil {
			return nil, err
		}
		if distance <= p.maxBatchDistanceKm {
			nearby = append(nearby, r)
		}
	}
	return nearby, nil
}

// fitsBatch checks a candidate against every current member of the batch.
func (p BatchPlanner) fitsBatch(batch []*order.Order, candidate *order.Order) (bool, error) {
	for _, member := range batch {
		distance, err := member.Destination().DistanceKm(*candidate.Destination())
		if err != nil {
			return false, err
		}
		if distance > p.maxBatchDistanceKm {
			return false, nil
		}
	}
	return true, nil
}
