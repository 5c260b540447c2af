package order

import (
	"errors"
	"fmt"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
	"pharmadispatch/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when validating a zero-value Line.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is a value object describing one order position: an inventory item
// with the quantity and the unit price captured at order time.
type Line struct { //nolint:recvcheck //using for validation
	inventoryItemID      kernel.UUID
	productName          string
	quantity             int
	unitPrice            float64
	prescriptionRequired bool

	guard guard.ConstructorGuard
}

// NewLine creates a validated order line. Quantity must be at least 1 and
// the unit price must not be negative.
func NewLine(
	inventoryItemID kernel.UUID,
	productName string,
	quantity int,
	unitPrice float64,
	prescriptionRequired bool,
) (Line, error) {
	line := Line{
		productName:          productName,
		prescriptionRequired: prescriptionRequired,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setInventoryItemID(inventoryItemID),
		line.setQuantity(quantity),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate checks that the line was built via NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// InventoryItemID returns the referenced pharmacy inventory item.
func (l Line) InventoryItemID() kernel.UUID {
	return l.inventoryItemID
}

// ProductName returns the display name captured at order time.
func (l Line) ProductName() string {
	return l.productName
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the per-unit price captured at order time.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// PrescriptionRequired reports whether the item needs a verified prescription.
func (l Line) PrescriptionRequired() bool {
	return l.prescriptionRequired
}

// Total returns quantity × unit price.
func (l Line) Total() float64 {
	return float64(l.quantity) * l.unitPrice
}

func (l *Line) setInventoryItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.inventoryItemID = id
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%f is negative", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}
