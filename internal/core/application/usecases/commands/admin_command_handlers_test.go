package commands_test

import (
	"context"
	"testing"

	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type riderAdminMocks struct {
	riderRepo *MockRiderRepository
	uow       *MockRiderUoW
	factory   *MockRiderUoWFactory
}

func newRiderAdminMocks(ctx context.Context) riderAdminMocks {
	m := riderAdminMocks{
		riderRepo: &MockRiderRepository{},
		uow:       &MockRiderUoW{},
		factory:   &MockRiderUoWFactory{},
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.uow.On("RiderRepository").Return(m.riderRepo)
	return m
}

func TestRegisterRiderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("registers_a_pending_rider", func(t *testing.T) {
		// Given
		m := newRiderAdminMocks(ctx)
		m.riderRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewRegisterRiderCommand(
			kernel.NewUUID(), "Marites Cruz", "09181234567", rider.VehicleMotorcycle)
		require.NoError(t, err)

		handler := commands.NewRegisterRiderCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		created := m.riderRepo.Calls[0].Arguments.Get(1).(*rider.Rider)
		assert.Equal(t, rider.ApprovalPending, created.Approval())
		assert.False(t, created.IsAvailable())
		m.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("blank_name_is_rejected_by_the_command", func(t *testing.T) {
		// Given / When
		_, err := commands.NewRegisterRiderCommand(
			kernel.NewUUID(), "", "09181234567", rider.VehicleMotorcycle)

		// Then
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestApproveRiderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("approves_a_pending_rider", func(t *testing.T) {
		// Given
		r, err := rider.NewRider(kernel.NewUUID(), "Jun Dela Cruz", "09171112233", rider.VehicleMotorcycle)
		require.NoError(t, err)

		m := newRiderAdminMocks(ctx)
		m.riderRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		m.riderRepo.On("Update", ctx, r).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewApproveRiderCommand(r.ID())
		require.NoError(t, err)

		handler := commands.NewApproveRiderCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, rider.ApprovalApproved, r.Approval())
	})

	t.Run("unknown_rider_fails", func(t *testing.T) {
		// Given
		riderID := kernel.NewUUID()
		m := newRiderAdminMocks(ctx)
		m.riderRepo.On("Get", ctx, riderID).
			Return(nil, errs.NewObjectNotFoundError("rider", riderID.String())).Once()

		cmd, err := commands.NewApproveRiderCommand(riderID)
		require.NoError(t, err)

		handler := commands.NewApproveRiderCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		assert.ErrorIs(t, err, commands.ErrRiderNotFound)
	})
}

func TestSuspendRiderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("suspension_takes_the_rider_off_shift", func(t *testing.T) {
		// Given
		r, err := rider.NewRider(kernel.NewUUID(), "Ana Reyes", "09179998877", rider.VehicleMotorcycle)
		require.NoError(t, err)
		r.Approve()
		require.NoError(t, r.SetAvailable(true))

		m := newRiderAdminMocks(ctx)
		m.riderRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		m.riderRepo.On("Update", ctx, r).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewSuspendRiderCommand(r.ID())
		require.NoError(t, err)

		handler := commands.NewSuspendRiderCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, rider.ApprovalSuspended, r.Approval())
		assert.False(t, r.IsAvailable())
	})
}

func TestSetRiderAvailabilityCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("approved_rider_goes_on_shift", func(t *testing.T) {
		// Given
		r, err := rider.NewRider(kernel.NewUUID(), "Leo Santos", "09170001122", rider.VehicleMotorcycle)
		require.NoError(t, err)
		r.Approve()

		m := newRiderAdminMocks(ctx)
		m.riderRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		m.riderRepo.On("Update", ctx, r).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewSetRiderAvailabilityCommand(r.ID(), true)
		require.NoError(t, err)

		handler := commands.NewSetRiderAvailabilityCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.True(t, r.IsDispatchable())
	})

	t.Run("pending_rider_cannot_go_on_shift", func(t *testing.T) {
		// Given
		r, err := rider.NewRider(kernel.NewUUID(), "Leo Santos", "09170001122", rider.VehicleMotorcycle)
		require.NoError(t, err)

		m := newRiderAdminMocks(ctx)
		m.riderRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()

		cmd, err := commands.NewSetRiderAvailabilityCommand(r.ID(), true)
		require.NoError(t, err)

		handler := commands.NewSetRiderAvailabilityCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		assert.ErrorIs(t, err, rider.ErrRiderNotApproved)
		m.uow.AssertNotCalled(t, "Commit", ctx)
	})
}

type zoneAdminMocks struct {
	zoneRepo *MockZoneRepository
	uow      *MockZoneUoW
	factory  *MockZoneUoWFactory
}

func newZoneAdminMocks(ctx context.Context) zoneAdminMocks {
	m := zoneAdminMocks{
		zoneRepo: &MockZoneRepository{},
		uow:      &MockZoneUoW{},
		factory:  &MockZoneUoWFactory{},
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.uow.On("ZoneRepository").Return(m.zoneRepo)
	return m
}

func TestCreateZoneCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("opens_an_active_zone_with_default_settings", func(t *testing.T) {
		// Given
		center, err := kernel.NewGeoPoint(8.2280, 124.2452)
		require.NoError(t, err)

		m := newZoneAdminMocks(ctx)
		m.zoneRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewCreateZoneCommand(
			kernel.NewUUID(), "Iligan Central", "Iligan City", center, 5)
		require.NoError(t, err)

		handler := commands.NewCreateZoneCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		created := m.zoneRepo.Calls[0].Arguments.Get(1).(*dispatch.Zone)
		assert.True(t, created.IsActive())
		assert.Equal(t, dispatch.DefaultMaxBatchSize, created.MaxBatchSize())
	})

	t.Run("blank_name_is_rejected_by_the_command", func(t *testing.T) {
		// Given
		center, err := kernel.NewGeoPoint(8.2280, 124.2452)
		require.NoError(t, err)

		// When
		_, err = commands.NewCreateZoneCommand(kernel.NewUUID(), "", "Iligan City", center, 5)

		// Then
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestSetZoneActiveCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("closes_a_zone_for_dispatch", func(t *testing.T) {
		// Given
		center, err := kernel.NewGeoPoint(8.2280, 124.2452)
		require.NoError(t, err)
		zone, err := dispatch.NewZone(kernel.NewUUID(), "Iligan Central", "Iligan City", center, 5)
		require.NoError(t, err)

		m := newZoneAdminMocks(ctx)
		m.zoneRepo.On("Get", ctx, zone.ID()).Return(zone, nil).Once()
		m.zoneRepo.On("Update", ctx, zone).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewSetZoneActiveCommand(zone.ID(), false)
		require.NoError(t, err)

		handler := commands.NewSetZoneActiveCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.False(t, zone.IsActive())
	})

	t.Run("unknown_zone_fails", func(t *testing.T) {
		// Given
		zoneID := kernel.NewUUID()
		m := newZoneAdminMocks(ctx)
		m.zoneRepo.On("Get", ctx, zoneID).
			Return(nil, errs.NewObjectNotFoundError("zone", zoneID.String())).Once()

		cmd, err := commands.NewSetZoneActiveCommand(zoneID, true)
		require.NoError(t, err)

		handler := commands.NewSetZoneActiveCommandHandler(m.factory)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		assert.ErrorIs(t, err, commands.ErrZoneNotFound)
	})
}
