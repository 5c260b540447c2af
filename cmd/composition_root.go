package cmd

import (
	"log/slog"

	"pharmadispatch/internal/adapters/out/postgres"
	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/application/usecases/queries"
	"pharmadispatch/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Every handler gets
// its own scoped unit of work factory so it cannot reach repositories it
// does not own.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	tracker    ports.LocationTracker
	inventory  ports.InventoryGateway
	logger     *slog.Logger
}

// NewCompositionRoot assembles the application over the given adapters.
func NewCompositionRoot(
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	tracker ports.LocationTracker,
	inventory ports.InventoryGateway,
	logger *slog.Logger,
) *CompositionRoot {
	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		tracker:    tracker,
		inventory:  inventory,
		logger:     logger,
	}
}

// ZoneRepository returns a zone repository over the bare connection, used by
// read-only consumers such as the batching job's zone scan.
func (c *CompositionRoot) ZoneRepository() ports.ZoneRepository {
	return c.uowFactory.Create().ZoneRepository()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderCancelUoWFactory() commands.OrderCancelUoWFactory {
	return FuncOrderCancelUoWFactory(func() commands.OrderCancelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) zoneUoWFactory() commands.ZoneUoWFactory {
	return FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) addressUoWFactory() commands.AddressUoWFactory {
	return FuncAddressUoWFactory(func() commands.AddressUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.inventory, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(
		c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.orderCancelUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateApplyDiscountCommandHandler() commands.ApplyDiscountCommandHandler {
	return commands.NewApplyDiscountCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateBatchOrdersCommandHandler() commands.BatchOrdersCommandHandler {
	return commands.NewBatchOrdersCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.tracker, c.logger)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteAssignmentCommandHandler() commands.CompleteAssignmentCommandHandler {
	return commands.NewCompleteAssignmentCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelAssignmentCommandHandler() commands.CancelAssignmentCommandHandler {
	return commands.NewCancelAssignmentCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	return commands.NewCreatePaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateFailPaymentCommandHandler() commands.FailPaymentCommandHandler {
	return commands.NewFailPaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateCancelPaymentCommandHandler() commands.CancelPaymentCommandHandler {
	return commands.NewCancelPaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateCompletePaymentCommandHandler() commands.CompletePaymentCommandHandler {
	return commands.NewCompletePaymentCommandHandler(
		c.paymentUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRefundPaymentCommandHandler() commands.RefundPaymentCommandHandler {
	return commands.NewRefundPaymentCommandHandler(
		c.paymentUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateApproveRiderCommandHandler() commands.ApproveRiderCommandHandler {
	return commands.NewApproveRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateSuspendRiderCommandHandler() commands.SuspendRiderCommandHandler {
	return commands.NewSuspendRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateRegisterAddressCommandHandler() commands.RegisterAddressCommandHandler {
	return commands.NewRegisterAddressCommandHandler(c.addressUoWFactory())
}

func (c *CompositionRoot) CreateGeocodeAddressCommandHandler() commands.GeocodeAddressCommandHandler {
	return commands.NewGeocodeAddressCommandHandler(c.addressUoWFactory())
}

func (c *CompositionRoot) CreateCreateZoneCommandHandler() commands.CreateZoneCommandHandler {
	return commands.NewCreateZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateSetZoneActiveCommandHandler() commands.SetZoneActiveCommandHandler {
	return commands.NewSetZoneActiveCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveAssignmentsQueryHandler() queries.GetActiveAssignmentsQueryHandler {
	return queries.NewGetActiveAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB, c.tracker, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncOrderCancelUoWFactory func() commands.OrderCancelUoW

func (f FuncOrderCancelUoWFactory) Create() commands.OrderCancelUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}

type FuncAddressUoWFactory func() commands.AddressUoW

func (f FuncAddressUoWFactory) Create() commands.AddressUoW {
	return f()
}
