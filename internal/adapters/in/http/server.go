// Package http exposes the dispatch platform over a JSON REST API. Handlers
// translate requests into commands and queries; all business rules live in
// the application layer.
package http

import (
	"net/http"

	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/application/usecases/queries"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/core/domain/model/payment"
	"pharmadispatch/internal/core/domain/model/rider"
	"pharmadispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// OrderHandlers groups the order lifecycle and address command handlers.
type OrderHandlers struct {
	Create          commands.CreateOrderCommandHandler
	UpdateStatus    commands.UpdateOrderStatusCommandHandler
	Cancel          commands.CancelOrderCommandHandler
	ApplyDiscount   commands.ApplyDiscountCommandHandler
	RegisterAddress commands.RegisterAddressCommandHandler
	GeocodeAddress  commands.GeocodeAddressCommandHandler
}

// DispatchHandlers groups the batching and assignment command handlers.
type DispatchHandlers struct {
	BatchOrders   commands.BatchOrdersCommandHandler
	Accept        commands.AcceptAssignmentCommandHandler
	MarkPickedUp  commands.MarkPickedUpCommandHandler
	StartDelivery commands.StartDeliveryCommandHandler
	Complete      commands.CompleteAssignmentCommandHandler
	Cancel        commands.CancelAssignmentCommandHandler
}

// PaymentHandlers groups the payment command handlers.
type PaymentHandlers struct {
	Create   commands.CreatePaymentCommandHandler
	Process  commands.ProcessPaymentCommandHandler
	Complete commands.CompletePaymentCommandHandler
	Fail     commands.FailPaymentCommandHandler
	Cancel   commands.CancelPaymentCommandHandler
	Refund   commands.RefundPaymentCommandHandler
}

// AdminHandlers groups the rider and zone administration handlers.
type AdminHandlers struct {
	RegisterRider        commands.RegisterRiderCommandHandler
	ApproveRider         commands.ApproveRiderCommandHandler
	SuspendRider         commands.SuspendRiderCommandHandler
	SetRiderAvailability commands.SetRiderAvailabilityCommandHandler
	CreateZone           commands.CreateZoneCommandHandler
	SetZoneActive        commands.SetZoneActiveCommandHandler
}

// QueryHandlers groups the read-side handlers.
type QueryHandlers struct {
	UnassignedOrders  queries.GetUnassignedOrdersQueryHandler
	ActiveAssignments queries.GetActiveAssignmentsQueryHandler
	OrderTracking     queries.GetOrderTrackingQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	orders   OrderHandlers
	dispatch DispatchHandlers
	payments PaymentHandlers
	admin    AdminHandlers
	queries  QueryHandlers
	tracker  ports.LocationTracker
}

// NewServer creates the HTTP server over the application's use cases.
func NewServer(
	orders OrderHandlers,
	dispatch DispatchHandlers,
	payments PaymentHandlers,
	admin AdminHandlers,
	queryHandlers QueryHandlers,
	tracker ports.LocationTracker,
) *Server {
	return &Server{
		orders:   orders,
		dispatch: dispatch,
		payments: payments,
		admin:    admin,
		queries:  queryHandlers,
		tracker:  tracker,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/unassigned", s.GetUnassignedOrders)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/discount", s.ApplyDiscount)

	api.POST("/addresses", s.RegisterAddress)
	api.POST("/addresses/:id/coordinates", s.GeocodeAddress)

	api.POST("/dispatch/batch", s.BatchOrders)

	api.GET("/assignments/active", s.GetActiveAssignments)
	api.POST("/assignments/:id/accept", s.AcceptAssignment)
	api.POST("/assignments/:id/pickup", s.MarkPickedUp)
	api.POST("/assignments/:id/start-delivery", s.StartDelivery)
	api.POST("/assignments/:id/complete", s.CompleteAssignment)
	api.POST("/assignments/:id/cancel", s.CancelAssignment)

	api.POST("/payments", s.CreatePayment)
	api.POST("/payments/:id/process", s.ProcessPayment)
	api.POST("/payments/:id/complete", s.CompletePayment)
	api.POST("/payments/:id/fail", s.FailPayment)
	api.POST("/payments/:id/cancel", s.CancelPayment)
	api.POST("/payments/:id/refund", s.RefundPayment)

	api.POST("/riders", s.RegisterRider)
	api.POST("/riders/:id/approve", s.ApproveRider)
	api.POST("/riders/:id/suspend", s.SuspendRider)
	api.POST("/riders/:id/availability", s.SetRiderAvailability)
	api.POST("/riders/:id/location", s.ReportRiderLocation)

	api.POST("/zones", s.CreateZone)
	api.POST("/zones/:id/active", s.SetZoneActive)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, err)
	}
	addressID, err := kernel.UUIDFromString(request.AddressID)
	if err != nil {
		return badRequest(ctx, err)
	}

	var destination *kernel.GeoPoint
	if request.Destination != nil {
		point, pointErr := kernel.NewGeoPoint(request.Destination.Latitude, request.Destination.Longitude)
		if pointErr != nil {
			return badRequest(ctx, pointErr)
		}
		destination = &point
	}

	lines := make([]commands.LineSpec, 0, len(request.Lines))
	for _, line := range request.Lines {
		itemID, lineErr := kernel.UUIDFromString(line.InventoryItemID)
		if lineErr != nil {
			return badRequest(ctx, lineErr)
		}
		lines = append(lines, commands.LineSpec{
			InventoryItemID:      itemID,
			ProductName:          line.ProductName,
			Quantity:             line.Quantity,
			UnitPrice:            line.UnitPrice,
			PrescriptionRequired: line.PrescriptionRequired,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, addressID, destination, request.DeliveryFee, lines)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.orders.Create.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.orders.UpdateStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CancelRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.orders.Cancel.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyDiscount handles POST /api/v1/orders/:id/discount.
func (s *Server) ApplyDiscount(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ApplyDiscountRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewApplyDiscountCommand(orderID, request.Amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.orders.ApplyDiscount.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterAddress handles POST /api/v1/addresses.
func (s *Server) RegisterAddress(ctx echo.Context) error {
	var request RegisterAddressRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	var point *kernel.GeoPoint
	if request.Point != nil {
		p, pointErr := kernel.NewGeoPoint(request.Point.Latitude, request.Point.Longitude)
		if pointErr != nil {
			return badRequest(ctx, pointErr)
		}
		point = &p
	}

	addressID := kernel.NewUUID()
	cmd, err := commands.NewRegisterAddressCommand(
		addressID, customerID,
		request.Label, request.Street, request.Barangay, request.City, request.Province,
		point)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.orders.RegisterAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: addressID.String()})
}

// GeocodeAddress handles POST /api/v1/addresses/:id/coordinates.
func (s *Server) GeocodeAddress(ctx echo.Context) error {
	addressID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request GeocodeAddressRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	point, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewGeocodeAddressCommand(addressID, point)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.orders.GeocodeAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BatchOrders handles POST /api/v1/dispatch/batch. It runs one batching pass
// over the zone and reports how the pass ended through the status code.
func (s *Server) BatchOrders(ctx echo.Context) error {
	var request BatchOrdersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	zoneID, err := kernel.UUIDFromString(request.ZoneID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewBatchOrdersCommand(zoneID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.dispatch.BatchOrders.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// AcceptAssignment handles POST /api/v1/assignments/:id/accept.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptAssignmentCommand(assignmentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.dispatch.Accept.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkPickedUp handles POST /api/v1/assignments/:id/pickup.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMarkPickedUpCommand(assignmentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.dispatch.MarkPickedUp.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/assignments/:id/start-delivery.
func (s *Server) StartDelivery(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(assignmentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.dispatch.StartDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteAssignment handles POST /api/v1/assignments/:id/complete.
func (s *Server) CompleteAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCompleteAssignmentCommand(assignmentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.dispatch.Complete.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelAssignment handles POST /api/v1/assignments/:id/cancel.
func (s *Server) CancelAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CancelRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelAssignmentCommand(assignmentID, request.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.dispatch.Cancel.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreatePayment handles POST /api/v1/payments.
func (s *Server) CreatePayment(ctx echo.Context) error {
	var request CreatePaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	method, err := payment.MethodFromString(request.Method)
	if err != nil {
		return badRequest(ctx, err)
	}

	paymentID := kernel.NewUUID()
	cmd, err := commands.NewCreatePaymentCommand(paymentID, orderID, method,
		request.ProcessingFee, request.GatewayFee)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payments.Create.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: paymentID.String()})
}

// CompletePayment handles POST /api/v1/payments/:id/complete.
func (s *Server) CompletePayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CompletePaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCompletePaymentCommand(paymentID, request.TransactionRef)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payments.Complete.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessPayment handles POST /api/v1/payments/:id/process.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewProcessPaymentCommand(paymentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payments.Process.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailPayment handles POST /api/v1/payments/:id/fail.
func (s *Server) FailPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request FailPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewFailPaymentCommand(paymentID, request.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payments.Fail.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelPayment handles POST /api/v1/payments/:id/cancel.
func (s *Server) CancelPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelPaymentCommand(paymentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payments.Cancel.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefundPayment handles POST /api/v1/payments/:id/refund.
func (s *Server) RefundPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request RefundPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRefundPaymentCommand(paymentID, request.Amount, request.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payments.Refund.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterRider handles POST /api/v1/riders.
func (s *Server) RegisterRider(ctx echo.Context) error {
	var request RegisterRiderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	vehicle, err := rider.VehicleFromString(request.Vehicle)
	if err != nil {
		return badRequest(ctx, err)
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewRegisterRiderCommand(riderID, request.Name, request.Phone, vehicle)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.admin.RegisterRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: riderID.String()})
}

// ApproveRider handles POST /api/v1/riders/:id/approve.
func (s *Server) ApproveRider(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewApproveRiderCommand(riderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.admin.ApproveRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SuspendRider handles POST /api/v1/riders/:id/suspend.
func (s *Server) SuspendRider(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSuspendRiderCommand(riderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.admin.SuspendRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetRiderAvailability handles POST /api/v1/riders/:id/availability.
func (s *Server) SetRiderAvailability(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request SetAvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(riderID, request.Available)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.admin.SetRiderAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateZone handles POST /api/v1/zones.
func (s *Server) CreateZone(ctx echo.Context) error {
	var request CreateZoneRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	center, err := kernel.NewGeoPoint(request.Center.Latitude, request.Center.Longitude)
	if err != nil {
		return badRequest(ctx, err)
	}

	zoneID := kernel.NewUUID()
	cmd, err := commands.NewCreateZoneCommand(zoneID, request.Name, request.City, center, request.RadiusKm)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.admin.CreateZone.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: zoneID.String()})
}

// SetZoneActive handles POST /api/v1/zones/:id/active.
func (s *Server) SetZoneActive(ctx echo.Context) error {
	zoneID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request SetActiveRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetZoneActiveCommand(zoneID, request.Active)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.admin.SetZoneActive.Handle(ctx.Request().Context(), cmd); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportRiderLocation handles POST /api/v1/riders/:id/location.
func (s *Server) ReportRiderLocation(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ReportLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	point, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.tracker.Track(ctx.Request().Context(), riderID, point); err != nil {
		return failedWith(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUnassignedOrders handles GET /api/v1/orders/unassigned.
func (s *Server) GetUnassignedOrders(ctx echo.Context) error {
	query := queries.NewGetUnassignedOrdersQuery()

	orders, err := s.queries.UnassignedOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failedWith(ctx, err)
	}

	response := make([]UnassignedOrderResponse, len(orders))
	for i, o := range orders {
		var destination *CoordinateRequest
		if o.Destination != nil {
			destination = &CoordinateRequest{
				Latitude:  o.Destination.Latitude(),
				Longitude: o.Destination.Longitude(),
			}
		}

		response[i] = UnassignedOrderResponse{
			ID:          o.ID.String(),
			Number:      o.Number,
			Destination: destination,
			DeliveryFee: o.DeliveryFee,
			CreatedAt:   o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveAssignments handles GET /api/v1/assignments/active.
func (s *Server) GetActiveAssignments(ctx echo.Context) error {
	query := queries.NewGetActiveAssignmentsQuery()

	assignments, err := s.queries.ActiveAssignments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failedWith(ctx, err)
	}

	response := make([]ActiveAssignmentResponse, len(assignments))
	for i, a := range assignments {
		response[i] = ActiveAssignmentResponse{
			ID:                  a.ID.String(),
			Reference:           a.Reference,
			RiderName:           a.RiderName,
			Status:              a.Status,
			OrderCount:          a.OrderCount,
			TotalDeliveryFee:    a.TotalDeliveryFee,
			AssignedAt:          a.AssignedAt,
			EstimatedCompletion: a.EstimatedCompletion,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	tracking, err := s.queries.OrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failedWith(ctx, err)
	}

	var riderPosition *CoordinateRequest
	if tracking.RiderPosition != nil {
		riderPosition = &CoordinateRequest{
			Latitude:  tracking.RiderPosition.Point.Latitude(),
			Longitude: tracking.RiderPosition.Point.Longitude(),
		}
	}

	return ctx.JSON(http.StatusOK, OrderTrackingResponse{
		OrderID:             tracking.OrderID.String(),
		Number:              tracking.Number,
		Status:              tracking.Status,
		PaymentState:        tracking.PaymentState,
		AssignmentReference: tracking.AssignmentReference,
		AssignmentStatus:    tracking.AssignmentStatus,
		RiderName:           tracking.RiderName,
		EstimatedCompletion: tracking.EstimatedCompletion,
		RiderPosition:       riderPosition,
	})
}
