package kernel

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"pharmadispatch/internal/pkg/errs"
)

// Reference number prefixes for human-readable business identifiers.
const (
	OrderRefPrefix      = "ORD"
	AssignmentRefPrefix = "ASG"
	PaymentRefPrefix    = "PAY"
)

const refSuffixAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewReference generates a human-readable business identifier of the form
// PREFIX + UTC timestamp + 4-character random suffix, e.g. ORD20250828143022K7Q4.
// The suffix avoids collisions for records created within the same second;
// uniqueness is still enforced by the store's unique constraint.
func NewReference(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(time.Now().UTC().Format("20060102150405"))
	for range 4 {
		b.WriteByte(refSuffixAlphabet[rand.IntN(len(refSuffixAlphabet))]) //nolint:gosec // not security sensitive
	}
	return b.String()
}

// ValidateReference checks that a reference carries the expected prefix and
// a plausible length. Used when reconstructing aggregates from persistence.
func ValidateReference(ref, prefix string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	if !strings.HasPrefix(ref, prefix) || len(ref) < len(prefix)+14 {
		return errs.NewValueIsInvalidErrorWithCause("reference",
			fmt.Errorf("%q does not look like a %s reference", ref, prefix))
	}
	return nil
}
