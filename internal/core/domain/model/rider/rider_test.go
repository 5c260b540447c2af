package rider_test

import (
	"testing"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedRider(t *testing.T) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), "Juan Dela Cruz", "+639171234567", rider.VehicleMotorcycle)
	require.NoError(t, err)
	r.Approve()
	return r
}

func TestNewRider(t *testing.T) {
	t.Run("valid_rider_starts_pending_and_off_shift", func(t *testing.T) {
		r, err := rider.NewRider(kernel.NewUUID(), "Juan Dela Cruz", "+639171234567", rider.VehicleMotorcycle)

		require.NoError(t, err)
		assert.Equal(t, rider.ApprovalPending, r.Approval())
		assert.False(t, r.IsAvailable())
		assert.False(t, r.IsDispatchable())
		assert.Zero(t, r.TotalDeliveries())
		assert.Zero(t, r.Rating())
	})

	t.Run("empty_name_fails", func(t *testing.T) {
		_, err := rider.NewRider(kernel.NewUUID(), "", "+639171234567", rider.VehicleMotorcycle)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown_vehicle_fails", func(t *testing.T) {
		_, err := rider.NewRider(kernel.NewUUID(), "Juan Dela Cruz", "", rider.VehicleUnknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var r rider.Rider

		require.ErrorIs(t, r.Validate(), rider.ErrRiderIsNotConstructed)
	})
}

func TestRider_Availability(t *testing.T) {
	t.Run("pending_rider_cannot_go_available", func(t *testing.T) {
		r, err := rider.NewRider(kernel.NewUUID(), "Juan Dela Cruz", "", rider.VehicleBicycle)
		require.NoError(t, err)

		require.ErrorIs(t, r.SetAvailable(true), rider.ErrRiderNotApproved)
		assert.False(t, r.IsAvailable())
	})

	t.Run("approved_rider_goes_on_and_off_shift", func(t *testing.T) {
		r := approvedRider(t)

		require.NoError(t, r.SetAvailable(true))
		assert.True(t, r.IsDispatchable())

		require.NoError(t, r.SetAvailable(false))
		assert.False(t, r.IsDispatchable())
	})

	t.Run("suspension_takes_rider_off_shift", func(t *testing.T) {
		r := approvedRider(t)
		require.NoError(t, r.SetAvailable(true))

		r.Suspend()

		assert.Equal(t, rider.ApprovalSuspended, r.Approval())
		assert.False(t, r.IsAvailable())
		require.ErrorIs(t, r.SetAvailable(true), rider.ErrRiderNotApproved)
	})
}

func TestRider_RecordDelivery(t *testing.T) {
	t.Run("accumulates_count_and_earnings", func(t *testing.T) {
		r := approvedRider(t)

		require.NoError(t, r.RecordDelivery(160))
		require.NoError(t, r.RecordDelivery(120.50))

		assert.Equal(t, 2, r.TotalDeliveries())
		assert.InDelta(t, 280.50, r.TotalEarnings(), 1e-9)
	})

	t.Run("negative_earnings_fail", func(t *testing.T) {
		r := approvedRider(t)

		require.ErrorIs(t, r.RecordDelivery(-1), errs.ErrValueIsInvalid)
		assert.Zero(t, r.TotalDeliveries())
	})
}

func TestRider_RecordRating(t *testing.T) {
	t.Run("running_average", func(t *testing.T) {
		r := approvedRider(t)

		require.NoError(t, r.RecordRating(5))
		assert.InDelta(t, 5.0, r.Rating(), 1e-9)

		require.NoError(t, r.RecordRating(4))
		assert.InDelta(t, 4.5, r.Rating(), 1e-9)

		require.NoError(t, r.RecordRating(3))
		assert.InDelta(t, 4.0, r.Rating(), 1e-9)
		assert.Equal(t, 3, r.RatingCount())
	})

	t.Run("out_of_range_score_fails", func(t *testing.T) {
		r := approvedRider(t)

		require.ErrorIs(t, r.RecordRating(0), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, r.RecordRating(6), errs.ErrValueIsOutOfRange)
		assert.Zero(t, r.RatingCount())
	})
}

func TestRestoreRider(t *testing.T) {
	t.Run("restores_state", func(t *testing.T) {
		id := kernel.NewUUID()

		r, err := rider.RestoreRider(id, "Maria Santos", "+639181234567",
			rider.VehicleCar, rider.ApprovalApproved, true, 42, 8400.25, 4.7, 30)

		require.NoError(t, err)
		assert.Equal(t, id, r.ID())
		assert.True(t, r.IsDispatchable())
		assert.Equal(t, 42, r.TotalDeliveries())
		assert.InDelta(t, 4.7, r.Rating(), 1e-9)
	})

	t.Run("negative_metrics_fail", func(t *testing.T) {
		_, err := rider.RestoreRider(kernel.NewUUID(), "Maria Santos", "",
			rider.VehicleCar, rider.ApprovalApproved, false, -1, 0, 0, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rated_rider_with_out_of_range_average_fails", func(t *testing.T) {
		_, err := rider.RestoreRider(kernel.NewUUID(), "Maria Santos", "",
			rider.VehicleCar, rider.ApprovalApproved, false, 10, 100, 9.5, 10)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestVehicle_StringRoundTrip(t *testing.T) {
	for _, v := range []rider.Vehicle{rider.VehicleMotorcycle, rider.VehicleBicycle, rider.VehicleCar} {
		parsed, err := rider.VehicleFromString(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := rider.VehicleFromString("truck")
	require.Error(t, err)
}
