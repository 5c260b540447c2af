// Package location models customer delivery addresses. An address may or
// may not carry GPS coordinates; batching and rider matching treat a
// coordinate-less address as unbatchable rather than as an error.
package location

import (
	"errors"
	"strings"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through NewAddress or RestoreAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a delivery destination owned by a customer.
//
// Invariants:
//   - id and customerID are valid UUIDs
//   - street and city are non-empty
//   - coordinates, when present, are a validated GeoPoint; latitude and
//     longitude are always jointly present or jointly absent
type Address struct {
	id         kernel.UUID
	customerID kernel.UUID
	label      string
	street     string
	barangay   string
	city       string
	province   string
	point      *kernel.GeoPoint

	isConstructed bool
}

// NewAddress creates a validated Address. point may be nil when the
// customer has not geocoded the address yet.
func NewAddress(
	id kernel.UUID,
	customerID kernel.UUID,
	label string,
	street string,
	barangay string,
	city string,
	province string,
	point *kernel.GeoPoint,
) (*Address, error) {
	address := &Address{
		label:         strings.TrimSpace(label),
		barangay:      strings.TrimSpace(barangay),
		province:      strings.TrimSpace(province),
		isConstructed: true,
	}

	if err := errors.Join(
		address.setID(id),
		address.setCustomerID(customerID),
		address.setStreet(street),
		address.setCity(city),
		address.setPoint(point),
	); err != nil {
		return nil, err
	}

	return address, nil
}

// RestoreAddress reconstructs an Address from persistence.
func RestoreAddress(
	id kernel.UUID,
	customerID kernel.UUID,
	label string,
	street string,
	barangay string,
	city string,
	province string,
	point *kernel.GeoPoint,
) (*Address, error) {
	return NewAddress(id, customerID, label, street, barangay, city, province, point)
}

// Validate ensures the Address was built through a constructor.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// ID returns the address identifier.
func (a *Address) ID() kernel.UUID {
	return a.id
}

// CustomerID returns the owning customer's identifier.
func (a *Address) CustomerID() kernel.UUID {
	return a.customerID
}

// Label returns the customer-facing label (home, work, ...).
func (a *Address) Label() string {
	return a.label
}

// Street returns the street line.
func (a *Address) Street() string {
	return a.street
}

// Barangay returns the barangay.
func (a *Address) Barangay() string {
	return a.barangay
}

// City returns the city.
func (a *Address) City() string {
	return a.city
}

// Province returns the province.
func (a *Address) Province() string {
	return a.province
}

// FullAddress returns the complete formatted address line.
func (a *Address) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.street, a.barangay, a.city, a.province} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HasCoordinates reports whether the address has been geocoded.
func (a *Address) HasCoordinates() bool {
	return a.point != nil
}

// Point returns the GPS coordinates, or nil when the address has none.
func (a *Address) Point() *kernel.GeoPoint {
	return a.point
}

// SetCoordinates geocodes the address. Re-geocoding an address overwrites
// the previous fix; orders already placed keep their own snapshot.
func (a *Address) SetCoordinates(point kernel.GeoPoint) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := point.Validate(); err != nil {
		return err
	}
	a.point = &point
	return nil
}

// DistanceToKm returns the great-circle distance from this address to the
// given point. The second return value is false when the address has no
// coordinates.
func (a *Address) DistanceToKm(other kernel.GeoPoint) (float64, bool) {
	if a.point == nil {
		return 0, false
	}
	d, err := a.point.DistanceKm(other)
	if err != nil {
		return 0, false
	}
	return d, true
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	a.customerID = customerID
	return nil
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPoint(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}
	a.point = point
	return nil
}
