package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrRegisterAddressCommandIsNotConstructed = errors.New(
		"RegisterAddressCommand must be created via NewRegisterAddressCommand constructor",
	)
	ErrGeocodeAddressCommandIsNotConstructed = errors.New(
		"GeocodeAddressCommand must be created via NewGeocodeAddressCommand constructor",
	)
)

// RegisterAddressCommand represents saving a customer delivery address.
// point is nil when the address has not been geocoded yet; such addresses
// can receive orders but those orders stay out of batching.
type RegisterAddressCommand struct { //nolint:recvcheck //using for validation
	addressID  kernel.UUID
	customerID kernel.UUID
	label      string
	street     string
	barangay   string
	city       string
	province   string
	point      *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRegisterAddressCommand creates a command to register a delivery
// address. Street and city checks are left to the address entity.
func NewRegisterAddressCommand(
	addressID kernel.UUID,
	customerID kernel.UUID,
	label string,
	street string,
	barangay string,
	city string,
	province string,
	point *kernel.GeoPoint,
) (RegisterAddressCommand, error) {
	if err := errors.Join(addressID.Validate(), customerID.Validate()); err != nil {
		return RegisterAddressCommand{}, err
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return RegisterAddressCommand{}, err
		}
	}
	return RegisterAddressCommand{
		addressID:  addressID,
		customerID: customerID,
		label:      label,
		street:     street,
		barangay:   barangay,
		city:       city,
		province:   province,
		point:      point,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAddressCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAddressCommandIsNotConstructed)
}

// AddressID returns the identifier for the new address.
func (c RegisterAddressCommand) AddressID() kernel.UUID { return c.addressID }

// CustomerID returns the owning customer.
func (c RegisterAddressCommand) CustomerID() kernel.UUID { return c.customerID }

// Label returns the customer-facing label.
func (c RegisterAddressCommand) Label() string { return c.label }

// Street returns the street line.
func (c RegisterAddressCommand) Street() string { return c.street }

// Barangay returns the barangay.
func (c RegisterAddressCommand) Barangay() string { return c.barangay }

// City returns the city.
func (c RegisterAddressCommand) City() string { return c.city }

// Province returns the province.
func (c RegisterAddressCommand) Province() string { return c.province }

// Point returns the GPS coordinates, or nil when ungeocoded.
func (c RegisterAddressCommand) Point() *kernel.GeoPoint { return c.point }

// GeocodeAddressCommand represents attaching coordinates to an address.
type GeocodeAddressCommand struct { //nolint:recvcheck //using for validation
	addressID kernel.UUID
	point     kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewGeocodeAddressCommand creates a command to geocode an address.
func NewGeocodeAddressCommand(addressID kernel.UUID, point kernel.GeoPoint) (GeocodeAddressCommand, error) {
	if err := errors.Join(addressID.Validate(), point.Validate()); err != nil {
		return GeocodeAddressCommand{}, err
	}
	return GeocodeAddressCommand{
		addressID: addressID,
		point:     point,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GeocodeAddressCommand) Validate() error {
	return c.guard.Validate(ErrGeocodeAddressCommandIsNotConstructed)
}

// AddressID returns the address to geocode.
func (c GeocodeAddressCommand) AddressID() kernel.UUID { return c.addressID }

// Point returns the coordinates to attach.
func (c GeocodeAddressCommand) Point() kernel.GeoPoint { return c.point }
