package commands_test

import (
	"context"
	"io"
	"log/slog"

	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/domain/events"
	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/location"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/core/domain/model/payment"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReadyForPickup(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAllDispatchable(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *dispatch.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *dispatch.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetAllActive(ctx context.Context) ([]*dispatch.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dispatch.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*dispatch.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ActiveOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

type MockZoneRepository struct{ mock.Mock }

func (m *MockZoneRepository) Add(ctx context.Context, z *dispatch.Zone) error {
	args := m.Called(ctx, z)
	return args.Error(0)
}

func (m *MockZoneRepository) Update(ctx context.Context, z *dispatch.Zone) error {
	args := m.Called(ctx, z)
	return args.Error(0)
}

func (m *MockZoneRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Zone), args.Error(1)
}

func (m *MockZoneRepository) GetAllActive(ctx context.Context) ([]*dispatch.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dispatch.Zone), args.Error(1)
}

type MockDispatchUoW struct{ mock.Mock }

func (m *MockDispatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDispatchUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockDispatchUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockDispatchUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) AddressRepository() ports.AddressRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPaymentUoW struct{ mock.Mock }

func (m *MockPaymentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPaymentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPaymentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPaymentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPaymentUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockOrderCancelUoW struct{ mock.Mock }

func (m *MockOrderCancelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderCancelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderCancelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderCancelUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderCancelUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockOrderCancelUoWFactory struct{ mock.Mock }

func (m *MockOrderCancelUoWFactory) Create() commands.OrderCancelUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderCancelUoW)
}

type MockRiderUoW struct{ mock.Mock }

func (m *MockRiderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRiderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRiderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRiderUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}

type MockZoneUoW struct{ mock.Mock }

func (m *MockZoneUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

type MockZoneUoWFactory struct{ mock.Mock }

func (m *MockZoneUoWFactory) Create() commands.ZoneUoW {
	args := m.Called()
	return args.Get(0).(commands.ZoneUoW)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Add(ctx context.Context, a *location.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Update(ctx context.Context, a *location.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Get(ctx context.Context, id kernel.UUID) (*location.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Address), args.Error(1)
}

func (m *MockAddressRepository) GetAllForCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) ([]*location.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*location.Address), args.Error(1)
}

type MockAddressUoW struct{ mock.Mock }

func (m *MockAddressUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddressUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddressUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAddressUoW) AddressRepository() ports.AddressRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressRepository)
}

type MockAddressUoWFactory struct{ mock.Mock }

func (m *MockAddressUoWFactory) Create() commands.AddressUoW {
	args := m.Called()
	return args.Get(0).(commands.AddressUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

type MockLocationTracker struct{ mock.Mock }

func (m *MockLocationTracker) Track(ctx context.Context, riderID kernel.UUID, point kernel.GeoPoint) error {
	args := m.Called(ctx, riderID, point)
	return args.Error(0)
}

func (m *MockLocationTracker) LastKnown(ctx context.Context, riderID kernel.UUID) (ports.RiderPosition, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(ports.RiderPosition), args.Error(1)
}

type MockInventoryGateway struct{ mock.Mock }

func (m *MockInventoryGateway) Reserve(ctx context.Context, reservations []ports.StockReservation) error {
	args := m.Called(ctx, reservations)
	return args.Error(0)
}

func (m *MockInventoryGateway) Release(ctx context.Context, reservations []ports.StockReservation) error {
	args := m.Called(ctx, reservations)
	return args.Error(0)
}
