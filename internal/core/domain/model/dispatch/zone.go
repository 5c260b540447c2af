package dispatch

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
)

// Batch setting bounds and defaults for delivery zones.
const (
	BatchSizeMin = 1
	BatchSizeMax = 5

	DefaultMaxBatchSize       = 3
	DefaultMaxBatchDistanceKm = 2.0
)

// ErrZoneIsNotConstructed is returned when using an improperly
// initialized Zone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is a circular delivery area with its own batching settings. Orders
// are batchable together only within one zone, and a zone caps both the
// batch size and the spread between delivery points.
type Zone struct {
	id       kernel.UUID
	name     string
	city     string
	center   kernel.GeoPoint
	radiusKm float64

	maxBatchSize       int
	maxBatchDistanceKm float64
	active             bool

	isConstructed bool
}

// NewZone creates an active zone with the default batch settings.
func NewZone(id kernel.UUID, name string, city string, center kernel.GeoPoint, radiusKm float64) (*Zone, error) {
	z := &Zone{
		maxBatchSize:       DefaultMaxBatchSize,
		maxBatchDistanceKm: DefaultMaxBatchDistanceKm,
		active:             true,
		isConstructed:      true,
	}

	if err := errors.Join(
		z.setID(id),
		z.setName(name),
		z.setCenter(center),
		z.setRadiusKm(radiusKm),
	); err != nil {
		return nil, err
	}

	z.city = city
	return z, nil
}

// RestoreZone reconstructs a zone from persistence.
func RestoreZone(
	id kernel.UUID,
	name string,
	city string,
	center kernel.GeoPoint,
	radiusKm float64,
	maxBatchSize int,
	maxBatchDistanceKm float64,
	active bool,
) (*Zone, error) {
	z := &Zone{
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		z.setID(id),
		z.setName(name),
		z.setCenter(center),
		z.setRadiusKm(radiusKm),
		z.setBatchSettings(maxBatchSize, maxBatchDistanceKm),
	); err != nil {
		return nil, err
	}

	z.city = city
	return z, nil
}

// Validate ensures the Zone was built through a constructor.
func (z *Zone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

// ID returns the zone identifier.
func (z *Zone) ID() kernel.UUID { return z.id }

// Name returns the zone's display name.
func (z *Zone) Name() string { return z.name }

// City returns the city the zone belongs to.
func (z *Zone) City() string { return z.city }

// Center returns the zone's center coordinate.
func (z *Zone) Center() kernel.GeoPoint { return z.center }

// RadiusKm returns the zone's coverage radius.
func (z *Zone) RadiusKm() float64 { return z.radiusKm }

// MaxBatchSize returns the cap on orders per batch in this zone.
func (z *Zone) MaxBatchSize() int { return z.maxBatchSize }

// MaxBatchDistanceKm returns the cap on the distance between any two
// delivery points in a batch.
func (z *Zone) MaxBatchDistanceKm() float64 { return z.maxBatchDistanceKm }

// IsActive reports whether the zone currently accepts dispatch.
func (z *Zone) IsActive() bool { return z.active }

// ContainsPoint reports whether a coordinate falls inside the zone's
// coverage circle.
func (z *Zone) ContainsPoint(point kernel.GeoPoint) (bool, error) {
	distance, err := z.center.DistanceKm(point)
	if err != nil {
		return false, err
	}
	return distance <= z.radiusKm, nil
}

// UpdateBatchSettings changes the zone's batching caps.
func (z *Zone) UpdateBatchSettings(maxBatchSize int, maxBatchDistanceKm float64) error {
	return z.setBatchSettings(maxBatchSize, maxBatchDistanceKm)
}

// SetActive toggles whether the zone accepts dispatch.
func (z *Zone) SetActive(active bool) {
	z.active = active
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *Zone) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("zone name")
	}
	z.name = name
	return nil
}

func (z *Zone) setCenter(center kernel.GeoPoint) error {
	if err := center.Validate(); err != nil {
		return err
	}
	z.center = center
	return nil
}

func (z *Zone) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidError("zone radius")
	}
	z.radiusKm = radiusKm
	return nil
}

func (z *Zone) setBatchSettings(maxBatchSize int, maxBatchDistanceKm float64) error {
	if maxBatchSize < BatchSizeMin || maxBatchSize > BatchSizeMax {
		return errs.NewValueIsOutOfRangeError("maxBatchSize",
			float64(maxBatchSize), BatchSizeMin, BatchSizeMax)
	}
	if maxBatchDistanceKm <= 0 {
		return errs.NewValueIsInvalidError("maxBatchDistanceKm")
	}

	z.maxBatchSize = maxBatchSize
	z.maxBatchDistanceKm = maxBatchDistanceKm
	return nil
}
