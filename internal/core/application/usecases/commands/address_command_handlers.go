package commands

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/location"
	"pharmadispatch/internal/pkg/errs"
)

// ErrAddressNotFound is returned when an address command targets an unknown
// address.
var ErrAddressNotFound = errors.New("address not found")

// RegisterAddressCommandHandler saves customer delivery addresses.
type RegisterAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

// NewRegisterAddressCommandHandler creates a handler for address registration.
func NewRegisterAddressCommandHandler(uowFactory AddressUoWFactory) RegisterAddressCommandHandler {
	return RegisterAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the address and persists it.
func (h RegisterAddressCommandHandler) Handle(ctx context.Context, cmd RegisterAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	address, err := location.NewAddress(
		cmd.AddressID(), cmd.CustomerID(),
		cmd.Label(), cmd.Street(), cmd.Barangay(), cmd.City(), cmd.Province(),
		cmd.Point())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AddressRepository().Add(ctx, address); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// GeocodeAddressCommandHandler attaches coordinates to stored addresses.
type GeocodeAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

// NewGeocodeAddressCommandHandler creates a handler for address geocoding.
func NewGeocodeAddressCommandHandler(uowFactory AddressUoWFactory) GeocodeAddressCommandHandler {
	return GeocodeAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the fix on the address. Orders placed before the geocode
// keep their original (possibly absent) snapshot.
func (h GeocodeAddressCommandHandler) Handle(ctx context.Context, cmd GeocodeAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	address, err := uow.AddressRepository().Get(ctx, cmd.AddressID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrAddressNotFound
	}
	if err != nil {
		return err
	}

	if err = address.SetCoordinates(cmd.Point()); err != nil {
		return err
	}

	if err = uow.AddressRepository().Update(ctx, address); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
