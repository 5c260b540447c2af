package rider

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"
)

// Rating bounds for delivery ratings.
const (
	RatingMin = 1
	RatingMax = 5
)

// Domain errors for rider operations.
var (
	// ErrNameIsRequired is returned when creating a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
	// ErrRiderNotApproved is returned when an operation requires an approved rider.
	ErrRiderNotApproved = errors.New("rider is not approved for deliveries")
)

// Rider is the delivery rider aggregate root.
//
// A rider is dispatchable only when approved AND available. Availability is
// toggled by the rider (going on/off shift and while carrying a batch);
// approval is an operator decision. Performance metrics accumulate over the
// rider's lifetime and feed the dispatch ordering.
type Rider struct {
	id      kernel.UUID
	name    string
	phone   string
	vehicle Vehicle

	approval  ApprovalStatus
	available bool

	totalDeliveries int
	totalEarnings   float64
	rating          float64
	ratingCount     int

	isConstructed bool
}

// NewRider creates a rider in the pending approval state. Fresh riders are
// unavailable until they go on shift.
func NewRider(id kernel.UUID, name string, phone string, vehicle Vehicle) (*Rider, error) {
	r := &Rider{
		approval:      ApprovalPending,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	r.phone = phone
	return r, nil
}

// RestoreRider reconstructs a rider from persistence.
func RestoreRider(
	id kernel.UUID,
	name string,
	phone string,
	vehicle Vehicle,
	approval ApprovalStatus,
	available bool,
	totalDeliveries int,
	totalEarnings float64,
	rating float64,
	ratingCount int,
) (*Rider, error) {
	r := &Rider{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setVehicle(vehicle),
		approval.Validate(),
	); err != nil {
		return nil, err
	}

	if totalDeliveries < 0 || totalEarnings < 0 || ratingCount < 0 {
		return nil, errs.NewValueIsInvalidError("rider metrics")
	}
	if ratingCount > 0 && (rating < RatingMin || rating > RatingMax) {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}

	r.phone = phone
	r.approval = approval
	r.available = available
	r.totalDeliveries = totalDeliveries
	r.totalEarnings = totalEarnings
	r.rating = rating
	r.ratingCount = ratingCount
	return r, nil
}

// Validate ensures the Rider was built through a constructor.
func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

// IsEqual compares riders by identity.
func (r *Rider) IsEqual(other *Rider) bool {
	if other == nil {
		return false
	}
	return r.id.IsEqual(other.id)
}

// ID returns the rider identifier.
func (r *Rider) ID() kernel.UUID { return r.id }

// Name returns the rider's display name.
func (r *Rider) Name() string { return r.name }

// Phone returns the rider's contact number.
func (r *Rider) Phone() string { return r.phone }

// Vehicle returns the rider's registered vehicle.
func (r *Rider) Vehicle() Vehicle { return r.vehicle }

// Approval returns the onboarding state.
func (r *Rider) Approval() ApprovalStatus { return r.approval }

// IsAvailable reports whether the rider is on shift and free.
func (r *Rider) IsAvailable() bool { return r.available }

// TotalDeliveries returns the lifetime completed delivery count.
func (r *Rider) TotalDeliveries() int { return r.totalDeliveries }

// TotalEarnings returns the lifetime accumulated earnings.
func (r *Rider) TotalEarnings() float64 { return r.totalEarnings }

// Rating returns the running average delivery rating, 0 when unrated.
func (r *Rider) Rating() float64 { return r.rating }

// RatingCount returns how many ratings the average is built from.
func (r *Rider) RatingCount() int { return r.ratingCount }

// IsDispatchable reports whether the rider can receive a new assignment:
// approved and currently available.
func (r *Rider) IsDispatchable() bool {
	return r.approval == ApprovalApproved && r.available
}

// Approve clears the rider for deliveries.
func (r *Rider) Approve() {
	r.approval = ApprovalApproved
}

// Suspend bars the rider from dispatch and takes them off shift.
func (r *Rider) Suspend() {
	r.approval = ApprovalSuspended
	r.available = false
}

// SetAvailable toggles the rider's shift state. Going available requires
// approval; dispatch marks riders unavailable while they carry a batch.
func (r *Rider) SetAvailable(available bool) error {
	if available && r.approval != ApprovalApproved {
		return ErrRiderNotApproved
	}

	r.available = available
	return nil
}

// RecordDelivery credits a completed delivery: bumps the lifetime count and
// adds the rider's earnings share for the batch.
func (r *Rider) RecordDelivery(earnings float64) error {
	if earnings < 0 {
		return errs.NewValueIsInvalidError("earnings")
	}

	r.totalDeliveries++
	r.totalEarnings += earnings
	return nil
}

// RecordRating folds a customer rating into the running average:
// avg' = avg + (score - avg) / count.
func (r *Rider) RecordRating(score int) error {
	if score < RatingMin || score > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", float64(score), RatingMin, RatingMax)
	}

	r.ratingCount++
	r.rating += (float64(score) - r.rating) / float64(r.ratingCount)
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	r.vehicle = vehicle
	return nil
}
