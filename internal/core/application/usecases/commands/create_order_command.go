package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/order"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one order line is required")
)

// LineSpec carries one requested order line through the command layer.
// Prices are captured here, at order time, not looked up again later.
type LineSpec struct {
	InventoryItemID      kernel.UUID
	ProductName          string
	Quantity             int
	UnitPrice            float64
	PrescriptionRequired bool
}

// CreateOrderCommand represents a request to place a new pharmacy order:
// the customer, the delivery address with its coordinate snapshot, and the
// priced line items.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	addressID   kernel.UUID
	destination *kernel.GeoPoint
	deliveryFee float64
	lines       []LineSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. destination
// is nil when the delivery address has no coordinates yet; such orders are
// accepted but cannot be batched until geocoded.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	addressID kernel.UUID,
	destination *kernel.GeoPoint,
	deliveryFee float64,
	lines []LineSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		destination: destination,
		deliveryFee: deliveryFee,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setAddressID(addressID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// AddressID returns the delivery address reference.
func (c CreateOrderCommand) AddressID() kernel.UUID { return c.addressID }

// Destination returns the delivery coordinate snapshot, or nil.
func (c CreateOrderCommand) Destination() *kernel.GeoPoint { return c.destination }

// DeliveryFee returns the quoted delivery fee.
func (c CreateOrderCommand) DeliveryFee() float64 { return c.deliveryFee }

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []LineSpec { return c.lines }

// DomainLines converts the line specs into validated domain lines.
func (c CreateOrderCommand) DomainLines() ([]order.Line, error) {
	lines := make([]order.Line, 0, len(c.lines))
	for _, spec := range c.lines {
		line, err := order.NewLine(spec.InventoryItemID, spec.ProductName,
			spec.Quantity, spec.UnitPrice, spec.PrescriptionRequired)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	c.addressID = addressID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []LineSpec) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	c.lines = lines
	return nil
}
