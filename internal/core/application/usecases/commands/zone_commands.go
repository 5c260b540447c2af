package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
	"pharmadispatch/internal/pkg/guard"
)

var (
	ErrCreateZoneCommandIsNotConstructed = errors.New(
		"CreateZoneCommand must be created via NewCreateZoneCommand constructor",
	)
	ErrSetZoneActiveCommandIsNotConstructed = errors.New(
		"SetZoneActiveCommand must be created via NewSetZoneActiveCommand constructor",
	)
)

// CreateZoneCommand represents opening a new delivery zone. New zones start
// active with default batching settings.
type CreateZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID   kernel.UUID
	name     string
	city     string
	center   kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewCreateZoneCommand creates a command to open a delivery zone.
func NewCreateZoneCommand(
	zoneID kernel.UUID,
	name string,
	city string,
	center kernel.GeoPoint,
	radiusKm float64,
) (CreateZoneCommand, error) {
	if err := errors.Join(zoneID.Validate(), center.Validate()); err != nil {
		return CreateZoneCommand{}, err
	}
	if name == "" {
		return CreateZoneCommand{}, errs.NewValueIsRequiredError("name")
	}
	return CreateZoneCommand{
		zoneID:   zoneID,
		name:     name,
		city:     city,
		center:   center,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateZoneCommandIsNotConstructed)
}

// ZoneID returns the identifier for the new zone.
func (c CreateZoneCommand) ZoneID() kernel.UUID { return c.zoneID }

// Name returns the zone's display name.
func (c CreateZoneCommand) Name() string { return c.name }

// City returns the city the zone belongs to.
func (c CreateZoneCommand) City() string { return c.city }

// Center returns the zone's center coordinate.
func (c CreateZoneCommand) Center() kernel.GeoPoint { return c.center }

// RadiusKm returns the zone's coverage radius.
func (c CreateZoneCommand) RadiusKm() float64 { return c.radiusKm }

// SetZoneActiveCommand represents opening or closing a zone for dispatch.
type SetZoneActiveCommand struct { //nolint:recvcheck //using for validation
	zoneID kernel.UUID
	active bool

	guard guard.ConstructorGuard
}

// NewSetZoneActiveCommand creates a command to change a zone's active flag.
func NewSetZoneActiveCommand(zoneID kernel.UUID, active bool) (SetZoneActiveCommand, error) {
	if err := zoneID.Validate(); err != nil {
		return SetZoneActiveCommand{}, err
	}
	return SetZoneActiveCommand{
		zoneID: zoneID,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetZoneActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetZoneActiveCommandIsNotConstructed)
}

// ZoneID returns the zone to change.
func (c SetZoneActiveCommand) ZoneID() kernel.UUID { return c.zoneID }

// Active returns the requested state.
func (c SetZoneActiveCommand) Active() bool { return c.active }
