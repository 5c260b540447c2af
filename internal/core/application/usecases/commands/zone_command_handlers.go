package commands

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/pkg/errs"
)

// CreateZoneCommandHandler opens new delivery zones.
type CreateZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

// NewCreateZoneCommandHandler creates a handler for zone creation.
func NewCreateZoneCommandHandler(uowFactory ZoneUoWFactory) CreateZoneCommandHandler {
	return CreateZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle opens the zone with default batching settings.
func (h CreateZoneCommandHandler) Handle(ctx context.Context, cmd CreateZoneCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	zone, err := dispatch.NewZone(cmd.ZoneID(), cmd.Name(), cmd.City(), cmd.Center(), cmd.RadiusKm())
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

	if err = uow.ZoneRepository().Add(ctx, zone); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// SetZoneActiveCommandHandler opens and closes zones for dispatch.
type SetZoneActiveCommandHandler struct {
	uowFactory ZoneUoWFactory
}

// NewSetZoneActiveCommandHandler creates a handler for zone activation.
func NewSetZoneActiveCommandHandler(uowFactory ZoneUoWFactory) SetZoneActiveCommandHandler {
	return SetZoneActiveCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle flips the zone's active flag. A closed zone keeps its settings and
// history; it just stops producing batches.
func (h SetZoneActiveCommandHandler) Handle(ctx context.Context, cmd SetZoneActiveCommand) error {
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

	zone, err := uow.ZoneRepository().Get(ctx, cmd.ZoneID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrZoneNotFound
	}
	if err != nil {
		return err
	}

	zone.SetActive(cmd.Active())

	if err = uow.ZoneRepository().Update(ctx, zone); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
