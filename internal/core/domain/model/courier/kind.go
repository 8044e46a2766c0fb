package courier

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Kind distinguishes individual delivery agents from company couriers.
// The synthetic courier standing in for the external carrier is always a
// company.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindPerson is an individual delivery agent.
	KindPerson

	// KindCompany is a delivery company, including the external carrier's
	// synthetic courier record.
	KindCompany
)

// getKindStrings returns the string representations for all kinds.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "unknown",
		KindPerson:  "person",
		KindCompany: "company",
	}
}

// Validate checks if the kind is one of the defined values.
func (k Kind) Validate() error {
	if k != KindPerson && k != KindCompany {
		return errs.NewValueIsInvalidErrorWithCause(
			"kind is invalid",
			fmt.Errorf("%d is not a valid courier kind", k),
		)
	}
	return nil
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}
