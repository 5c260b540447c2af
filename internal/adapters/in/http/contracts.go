package http

import "time"

// ErrorResponse is the JSON error body for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CoordinateRequest is a WGS-84 point in a request body.
type CoordinateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OrderLineRequest is one priced line of a new order.
type OrderLineRequest struct {
	InventoryItemID      string  `json:"inventory_item_id"`
	ProductName          string  `json:"product_name"`
	Quantity             int     `json:"quantity"`
	UnitPrice            float64 `json:"unit_price"`
	PrescriptionRequired bool    `json:"prescription_required"`
}

// CreateOrderRequest places a new pharmacy order. Destination may be null
// when the address has no coordinates yet.
type CreateOrderRequest struct {
	CustomerID  string             `json:"customer_id"`
	AddressID   string             `json:"address_id"`
	Destination *CoordinateRequest `json:"destination"`
	DeliveryFee float64            `json:"delivery_fee"`
	Lines       []OrderLineRequest `json:"lines"`
}

// RegisterAddressRequest saves a customer delivery address. Point may be
// null for an address awaiting geocoding.
type RegisterAddressRequest struct {
	CustomerID string             `json:"customer_id"`
	Label      string             `json:"label"`
	Street     string             `json:"street"`
	Barangay   string             `json:"barangay"`
	City       string             `json:"city"`
	Province   string             `json:"province"`
	Point      *CoordinateRequest `json:"point"`
}

// GeocodeAddressRequest attaches coordinates to a stored address.
type GeocodeAddressRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreatedResponse carries the server-generated identifier of a new resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// UpdateOrderStatusRequest advances an order to the given status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// CancelRequest carries the operator-supplied cancellation reason.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// ApplyDiscountRequest applies an absolute discount to an order.
type ApplyDiscountRequest struct {
	Amount float64 `json:"amount"`
}

// BatchOrdersRequest runs one batching pass over a delivery zone.
type BatchOrdersRequest struct {
	ZoneID string `json:"zone_id"`
}

// CreatePaymentRequest opens a payment record for an order. The fee fields
// carry the provider's schedule for the chosen method.
type CreatePaymentRequest struct {
	OrderID       string  `json:"order_id"`
	Method        string  `json:"method"`
	ProcessingFee float64 `json:"processing_fee"`
	GatewayFee    float64 `json:"gateway_fee"`
}

// CompletePaymentRequest settles a payment with the provider's reference.
type CompletePaymentRequest struct {
	TransactionRef string `json:"transaction_ref"`
}

// RefundPaymentRequest refunds part or all of a settled payment.
type RefundPaymentRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// FailPaymentRequest records a charge rejected by the provider.
type FailPaymentRequest struct {
	Reason string `json:"reason"`
}

// RegisterRiderRequest onboards a new rider.
type RegisterRiderRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

// SetAvailabilityRequest moves a rider on or off shift.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// CreateZoneRequest opens a new delivery zone.
type CreateZoneRequest struct {
	Name     string            `json:"name"`
	City     string            `json:"city"`
	Center   CoordinateRequest `json:"center"`
	RadiusKm float64           `json:"radius_km"`
}

// SetActiveRequest opens or closes a zone for dispatch.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// ReportLocationRequest is a rider's position fix.
type ReportLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UnassignedOrderResponse is one order waiting for dispatch.
type UnassignedOrderResponse struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	Destination *CoordinateRequest `json:"destination"`
	DeliveryFee float64            `json:"delivery_fee"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ActiveAssignmentResponse is one in-flight assignment.
type ActiveAssignmentResponse struct {
	ID                  string     `json:"id"`
	Reference           string     `json:"reference"`
	RiderName           string     `json:"rider_name"`
	Status              string     `json:"status"`
	OrderCount          int        `json:"order_count"`
	TotalDeliveryFee    float64    `json:"total_delivery_fee"`
	AssignedAt          time.Time  `json:"assigned_at"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`
}

// OrderTrackingResponse is the customer-facing view of one order's progress.
// Assignment fields are empty until the order is batched; rider position is
// null when the rider has no recent fix.
type OrderTrackingResponse struct {
	OrderID             string             `json:"order_id"`
	Number              string             `json:"number"`
	Status              string             `json:"status"`
	PaymentState        string             `json:"payment_state"`
	AssignmentReference string             `json:"assignment_reference,omitempty"`
	AssignmentStatus    string             `json:"assignment_status,omitempty"`
	RiderName           string             `json:"rider_name,omitempty"`
	EstimatedCompletion *time.Time         `json:"estimated_completion"`
	RiderPosition       *CoordinateRequest `json:"rider_position"`
}
