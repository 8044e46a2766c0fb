package parcel

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// CarrierMode tells who physically moves a parcel: an internal courier or
// the external carrier. The mode decides where tracking truth lives: the
// persisted ledger for internal parcels, the carrier's live feed for
// external ones.
type CarrierMode int

const (
	// CarrierModeUnknown represents an invalid or undefined mode.
	CarrierModeUnknown CarrierMode = iota

	// CarrierModeInternal means the parcel is delivered by the company's own couriers.
	CarrierModeInternal

	// CarrierModeExternal means the parcel was handed off to the external carrier.
	// Parcels in this mode carry an external tracking id and are reconciled
	// against the carrier's feed.
	CarrierModeExternal
)

// getCarrierModeStrings returns the string representations for all modes.
func getCarrierModeStrings() map[CarrierMode]string {
	return map[CarrierMode]string{
		CarrierModeUnknown:  "unknown",
		CarrierModeInternal: "internal",
		CarrierModeExternal: "external",
	}
}

// Validate checks if the mode is one of the two defined carrier modes.
func (m CarrierMode) Validate() error {
	if m != CarrierModeInternal && m != CarrierModeExternal {
		return errs.NewValueIsInvalidErrorWithCause(
			"carrier mode is invalid",
			fmt.Errorf("%d is not a valid carrier mode", m),
		)
	}
	return nil
}

// String returns the string representation of the mode.
// Returns "unknown" for invalid values.
func (m CarrierMode) String() string {
	if str, ok := getCarrierModeStrings()[m]; ok {
		return str
	}
	return "unknown"
}
