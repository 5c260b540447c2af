package services_test

import (
	"testing"
	"time"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseLat = 8.2280
	baseLon = 124.2452

	// ~0.5 km and ~5 km of latitude at the test geography.
	halfKmLat = 0.0045
	fiveKmLat = 0.045
)

func plannerWithDefaults(t *testing.T) services.BatchPlanner {
	t.Helper()
	p, err := services.NewBatchPlanner(dispatch.DefaultMaxBatchSize, dispatch.DefaultMaxBatchDistanceKm)
	require.NoError(t, err)
	return p
}

// orderAt builds an order delivered to the given coordinate with a
// controlled creation time so FIFO ordering is deterministic.
func orderAt(t *testing.T, lat, lon, fee float64, createdAt time.Time) *order.Order {
	t.Helper()

	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)

	line, err := order.NewLine(kernel.NewUUID(), "Paracetamol 500mg", 1, 100, false)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewReference(kernel.OrderRefPrefix),
		kernel.NewUUID(), kernel.NewUUID(), &point,
		[]order.Line{line},
		order.StatusReadyForPickup, order.PaymentPaid,
		fee, 0, "", nil, nil, createdAt,
	)
	require.NoError(t, err)
	return o
}

func orderWithoutDestination(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()

	line, err := order.NewLine(kernel.NewUUID(), "Paracetamol 500mg", 1, 100, false)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewReference(kernel.OrderRefPrefix),
		kernel.NewUUID(), kernel.NewUUID(), nil,
		[]order.Line{line},
		order.StatusReadyForPickup, order.PaymentPaid,
		0, 0, "", nil, nil, createdAt,
	)
	require.NoError(t, err)
	return o
}

func TestNewBatchPlanner(t *testing.T) {
	t.Run("valid_settings", func(t *testing.T) {
		_, err := services.NewBatchPlanner(3, 2.0)
		require.NoError(t, err)
	})

	t.Run("batch_size_out_of_range_fails", func(t *testing.T) {
		_, err := services.NewBatchPlanner(0, 2.0)
		require.Error(t, err)

		_, err = services.NewBatchPlanner(dispatch.BatchSizeMax+1, 2.0)
		require.Error(t, err)
	})

	t.Run("non_positive_distance_fails", func(t *testing.T) {
		_, err := services.NewBatchPlanner(3, 0)
		require.Error(t, err)
	})
}

func TestBatchPlanner_CanBatch(t *testing.T) {
	planner := plannerWithDefaults(t)
	now := time.Now().UTC()

	t.Run("nearby_pair_is_batchable", func(t *testing.T) {
		// Two destinations ~0.5 km apart.
		a := orderAt(t, baseLat, baseLon, 50, now)
		b := orderAt(t, baseLat+halfKmLat, baseLon, 50, now)

		ok, err := planner.CanBatch([]*order.Order{a, b})

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("distant_order_breaks_the_batch", func(t *testing.T) {
		// Third destination ~5 km from the first two.
		a := orderAt(t, baseLat, baseLon, 50, now)
		b := orderAt(t, baseLat+halfKmLat, baseLon, 50, now)
		c := orderAt(t, baseLat+fiveKmLat, baseLon, 100, now)

		ok, err := planner.CanBatch([]*order.Order{a, b, c})

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing_destination_fails_closed", func(t *testing.T) {
		a := orderAt(t, baseLat, baseLon, 50, now)
		b := orderWithoutDestination(t, now)

		ok, err := planner.CanBatch([]*order.Order{a, b})

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("single_order_is_batchable", func(t *testing.T) {
		a := orderAt(t, baseLat, baseLon, 50, now)

		ok, err := planner.CanBatch([]*order.Order{a})

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("single_order_without_coordinates_is_batchable", func(t *testing.T) {
		// One order never needs a pairwise distance, geocoded or not.
		a := orderWithoutDestination(t, now)

		ok, err := planner.CanBatch([]*order.Order{a})

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty_input_is_batchable", func(t *testing.T) {
		ok, err := planner.CanBatch(nil)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("size_cap_rejects_even_co_located_orders", func(t *testing.T) {
		// Four orders on the same corner under the default cap of three.
		orders := make([]*order.Order, 0, dispatch.DefaultMaxBatchSize+1)
		for range dispatch.DefaultMaxBatchSize + 1 {
			orders = append(orders, orderAt(t, baseLat, baseLon, 50, now))
		}

		ok, err := planner.CanBatch(orders)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("answer_does_not_depend_on_input_order", func(t *testing.T) {
		a := orderAt(t, baseLat, baseLon, 50, now)
		b := orderAt(t, baseLat+halfKmLat, baseLon, 50, now)
		far := orderAt(t, baseLat+fiveKmLat, baseLon, 100, now)

		for _, perm := range [][]*order.Order{
			{a, b, far}, {far, b, a}, {b, far, a},
		} {
			ok, err := planner.CanBatch(perm)
			require.NoError(t, err)
			assert.False(t, ok)
		}

		for _, perm := range [][]*order.Order{{a, b}, {b, a}} {
			ok, err := planner.CanBatch(perm)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})
}

func TestBatchPlanner_PlanBatches(t *testing.T) {
	planner := plannerWithDefaults(t)
	base := time.Now().UTC().Add(-time.Hour)

	t.Run("groups_nearby_orders_oldest_first", func(t *testing.T) {
		// Given three nearby orders and one far away; created in order a, far, b, c.
		a := orderAt(t, baseLat, baseLon, 50, base)
		far := orderAt(t, baseLat+fiveKmLat, baseLon, 100, base.Add(time.Minute))
		b := orderAt(t, baseLat+halfKmLat, baseLon, 50, base.Add(2*time.Minute))
		c := orderAt(t, baseLat-halfKmLat, baseLon, 50, base.Add(3*time.Minute))

		// When
		batches, err := planner.PlanBatches([]*order.Order{c, far, a, b})

		// Then: the oldest order seeds the first batch and picks up the
		// nearby later ones; the far order rides alone.
		require.NoError(t, err)
		require.Len(t, batches, 2)
		require.Len(t, batches[0], 3)
		assert.Equal(t, a.ID(), batches[0][0].ID())
		assert.Equal(t, b.ID(), batches[0][1].ID())
		assert.Equal(t, c.ID(), batches[0][2].ID())
		require.Len(t, batches[1], 1)
		assert.Equal(t, far.ID(), batches[1][0].ID())
	})

	t.Run("respects_max_batch_size", func(t *testing.T) {
		orders := make([]*order.Order, 0, 4)
		for i := range 4 {
			orders = append(orders, orderAt(t, baseLat+float64(i)*0.001, baseLon, 50,
				base.Add(time.Duration(i)*time.Minute)))
		}

		batches, err := planner.PlanBatches(orders)

		require.NoError(t, err)
		require.Len(t, batches, 2)
		assert.Len(t, batches[0], dispatch.DefaultMaxBatchSize)
		assert.Len(t, batches[1], 1)
	})

	t.Run("skips_orders_without_destination", func(t *testing.T) {
		a := orderAt(t, baseLat, baseLon, 50, base)
		missing := orderWithoutDestination(t, base.Add(time.Minute))

		batches, err := planner.PlanBatches([]*order.Order{a, missing})

		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Len(t, batches[0], 1)
	})

	t.Run("no_orders_no_batches", func(t *testing.T) {
		batches, err := planner.PlanBatches(nil)

		require.NoError(t, err)
		assert.Empty(t, batches)
	})

	t.Run("planning_the_same_set_twice_gives_the_same_batches", func(t *testing.T) {
		orders := []*order.Order{
			orderAt(t, baseLat, baseLon, 50, base),
			orderAt(t, baseLat+fiveKmLat, baseLon, 100, base.Add(time.Minute)),
			orderAt(t, baseLat+halfKmLat, baseLon, 50, base.Add(2*time.Minute)),
			orderAt(t, baseLat-halfKmLat, baseLon, 50, base.Add(3*time.Minute)),
		}

		first, err := planner.PlanBatches(orders)
		require.NoError(t, err)
		second, err := planner.PlanBatches(orders)
		require.NoError(t, err)

		require.Len(t, second, len(first))
		for i := range first {
			require.Len(t, second[i], len(first[i]))
			for j := range first[i] {
				assert.Equal(t, first[i][j].ID(), second[i][j].ID())
			}
		}
	})
}

func TestBatchPlanner_BuildAssignment(t *testing.T) {
	planner := plannerWithDefaults(t)
	now := time.Now().UTC()

	t.Run("builds_assignment_with_fee_pool_and_sequences", func(t *testing.T) {
		// Given a three-order batch with fees 50, 50, 100.
		batch := []*order.Order{
			orderAt(t, baseLat, baseLon, 50, now),
			orderAt(t, baseLat+halfKmLat, baseLon, 50, now),
			orderAt(t, baseLat-halfKmLat, baseLon, 100, now),
		}
		riderID := kernel.NewUUID()

		// When
		a, err := planner.BuildAssignment(riderID, kernel.NewUUID(), batch)

		// Then
		require.NoError(t, err)
		assert.Equal(t, riderID, a.RiderID())
		assert.InDelta(t, 200, a.TotalDeliveryFee(), 1e-9)
		assert.InDelta(t, 160, a.RiderEarnings(), 1e-9)
		require.NotNil(t, a.EstimatedCompletion())
		assert.WithinDuration(t, now.Add(2*time.Hour), *a.EstimatedCompletion(), time.Minute)

		links := a.Orders()
		require.Len(t, links, 3)
		for i, link := range links {
			assert.Equal(t, batch[i].ID(), link.OrderID())
			assert.Equal(t, i+1, link.PickupSeq())
			assert.Equal(t, i+1, link.DeliverySeq())
		}
	})

	t.Run("empty_batch_fails", func(t *testing.T) {
		_, err := planner.BuildAssignment(kernel.NewUUID(), kernel.NewUUID(), nil)

		require.ErrorIs(t, err, services.ErrEmptyBatch)
	})

	t.Run("oversized_batch_fails", func(t *testing.T) {
		batch := make([]*order.Order, 0, 4)
		for i := range 4 {
			batch = append(batch, orderAt(t, baseLat+float64(i)*0.001, baseLon, 50, now))
		}

		_, err := planner.BuildAssignment(kernel.NewUUID(), kernel.NewUUID(), batch)

		require.ErrorIs(t, err, services.ErrInfeasibleBatch)
	})

	t.Run("spread_out_batch_fails", func(t *testing.T) {
		batch := []*order.Order{
			orderAt(t, baseLat, baseLon, 50, now),
			orderAt(t, baseLat+fiveKmLat, baseLon, 50, now),
		}

		_, err := planner.BuildAssignment(kernel.NewUUID(), kernel.NewUUID(), batch)

		require.ErrorIs(t, err, services.ErrInfeasibleBatch)
	})
}

func TestBatchPlanner_FindRider(t *testing.T) {
	planner := plannerWithDefaults(t)

	newRider := func(t *testing.T, name string) *rider.Rider {
		t.Helper()
		r, err := rider.NewRider(kernel.NewUUID(), name, "", rider.VehicleMotorcycle)
		require.NoError(t, err)
		return r
	}

	t.Run("first_dispatchable_rider_wins", func(t *testing.T) {
		offShift := newRider(t, "off shift")
		offShift.Approve()

		pending := newRider(t, "pending approval")

		available := newRider(t, "available")
		available.Approve()
		require.NoError(t, available.SetAvailable(true))

		alsoAvailable := newRider(t, "also available")
		alsoAvailable.Approve()
		require.NoError(t, alsoAvailable.SetAvailable(true))

		got, err := planner.FindRider([]*rider.Rider{offShift, pending, available, alsoAvailable})

		require.NoError(t, err)
		assert.True(t, got.IsEqual(available))
	})

	t.Run("no_dispatchable_rider_fails", func(t *testing.T) {
		pending := newRider(t, "pending approval")

		_, err := planner.FindRider([]*rider.Rider{pending})

		require.ErrorIs(t, err, services.ErrRiderNotFound)
	})
}

func TestBatchPlanner_FindAvailableRiders(t *testing.T) {
	planner := plannerWithDefaults(t)

	newDispatchable := func(t *testing.T, name string) *rider.Rider {
		t.Helper()
		r, err := rider.NewRider(kernel.NewUUID(), name, "", rider.VehicleMotorcycle)
		require.NoError(t, err)
		r.Approve()
		require.NoError(t, r.SetAvailable(true))
		return r
	}

	geoPoint := func(t *testing.T, lat, lon float64) kernel.GeoPoint {
		t.Helper()
		p, err := kernel.NewGeoPoint(lat, lon)
		require.NoError(t, err)
		return p
	}

	destination := geoPoint(t, baseLat, baseLon)

	t.Run("only_nearby_riders_with_a_fix_qualify", func(t *testing.T) {
		near := newDispatchable(t, "near")
		far := newDispatchable(t, "far")
		silent := newDispatchable(t, "no fix")

		positions := map[kernel.UUID]kernel.GeoPoint{
			near.ID(): geoPoint(t, baseLat+halfKmLat, baseLon),
			far.ID():  geoPoint(t, baseLat+fiveKmLat, baseLon),
		}

		got, err := planner.FindAvailableRiders(&destination,
			[]*rider.Rider{near, far, silent}, positions)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsEqual(near))
	})

	t.Run("off_shift_rider_is_excluded_despite_a_nearby_fix", func(t *testing.T) {
		offShift := newDispatchable(t, "off shift")
		require.NoError(t, offShift.SetAvailable(false))

		positions := map[kernel.UUID]kernel.GeoPoint{
			offShift.ID(): geoPoint(t, baseLat, baseLon),
		}

		got, err := planner.FindAvailableRiders(&destination, []*rider.Rider{offShift}, positions)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing_destination_fails_closed", func(t *testing.T) {
		r := newDispatchable(t, "ready")
		positions := map[kernel.UUID]kernel.GeoPoint{
			r.ID(): geoPoint(t, baseLat, baseLon),
		}

		got, err := planner.FindAvailableRiders(nil, []*rider.Rider{r}, positions)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
