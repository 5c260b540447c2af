package rider

import (
	"fmt"

	"pharmadispatch/internal/pkg/errs"
)

// Vehicle is the transport a rider uses for deliveries.
type Vehicle int

const (
	// VehicleUnknown catches uninitialized Vehicle values.
	VehicleUnknown Vehicle = iota

	// VehicleMotorcycle is the common case for city deliveries.
	VehicleMotorcycle

	// VehicleBicycle suits short-range, small-package runs.
	VehicleBicycle

	// VehicleCar handles bulky or long-range deliveries.
	VehicleCar
)

func vehicleStrings() map[Vehicle]string {
	return map[Vehicle]string{
		VehicleUnknown:    "unknown",
		VehicleMotorcycle: "motorcycle",
		VehicleBicycle:    "bicycle",
		VehicleCar:        "car",
	}
}

// VehicleFromString parses a persisted vehicle value.
func VehicleFromString(s string) (Vehicle, error) {
	for vehicle, str := range vehicleStrings() {
		if str == s && vehicle != VehicleUnknown {
			return vehicle, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle",
		fmt.Errorf("%q is not a known vehicle", s))
}

// Validate checks that the Vehicle is one of the defined kinds.
func (v Vehicle) Validate() error {
	if v == VehicleUnknown {
		return errs.NewValueIsInvalidError("vehicle")
	}
	if _, ok := vehicleStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("%d is not a valid vehicle", v))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (v Vehicle) String() string {
	if str, ok := vehicleStrings()[v]; ok {
		return str
	}
	return "unknown"
}

// ApprovalStatus tracks the onboarding state of a rider. Only approved
// riders may receive assignments.
type ApprovalStatus int

const (
	// ApprovalUnknown catches uninitialized ApprovalStatus values.
	ApprovalUnknown ApprovalStatus = iota

	// ApprovalPending means the rider applied but documents are unverified.
	ApprovalPending

	// ApprovalApproved means the rider may take deliveries.
	ApprovalApproved

	// ApprovalSuspended means the rider is temporarily barred from dispatch.
	ApprovalSuspended
)

func approvalStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		ApprovalUnknown:   "unknown",
		ApprovalPending:   "pending",
		ApprovalApproved:  "approved",
		ApprovalSuspended: "suspended",
	}
}

// ApprovalStatusFromString parses a persisted approval status value.
func ApprovalStatusFromString(s string) (ApprovalStatus, error) {
	for status, str := range approvalStrings() {
		if str == s && status != ApprovalUnknown {
			return status, nil
		}
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause("approval status",
		fmt.Errorf("%q is not a known approval status", s))
}

// Validate checks that the ApprovalStatus is defined.
func (a ApprovalStatus) Validate() error {
	if a == ApprovalUnknown {
		return errs.NewValueIsInvalidError("approval status")
	}
	if _, ok := approvalStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("approval status",
			fmt.Errorf("%d is not a valid approval status", a))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (a ApprovalStatus) String() string {
	if str, ok := approvalStrings()[a]; ok {
		return str
	}
	return "unknown"
}
