package parcel

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// The set is closed: every parcel is always in exactly one of these states,
// whether it is delivered by an internal courier or handed off to the
// external carrier.
//
// Typical progression:
//
//	New ──> WaitingPickup ──> PickedUp ──> InTransit ──> Delivered
//	         │
//	         └──> HandedToCarrier ──> (carrier-reported states)
//
// Reconciliation replaces the status with whatever the carrier reports,
// translated through the vocabulary table; the progression above is the
// common path, not an enforced transition graph.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of a freshly registered parcel.
	New

	// WaitingPickup means the parcel is waiting to be collected.
	// It is also the default translation for carrier states the
	// vocabulary does not know.
	WaitingPickup

	// PickedUp means the parcel was collected by an agency or courier.
	PickedUp

	// HandedToCarrier means the parcel was registered with the external
	// carrier; from this point reconciliation owns the status.
	HandedToCarrier

	// InTransit means the parcel is on its way to the recipient.
	InTransit

	// Delivered means the parcel reached the recipient.
	Delivered

	// Returned means the parcel came back to the sender.
	Returned

	// Canceled means the shipment was called off.
	Canceled
)

// getStatusStrings returns the display names for all Status values,
// including Unknown, to support string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Inconnu",
		New:             "Nouveau Colis",
		WaitingPickup:   "attente de ramassage",
		PickedUp:        "Ramassée",
		HandedToCarrier: "Remise au transporteur",
		InTransit:       "En cours de livraison",
		Delivered:       "Livrée",
		Returned:        "Retournée",
		Canceled:        "Annulée",
	}
}

// getValidStatusStrings returns only the Status values a parcel may hold.
// Unknown is excluded to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:             "Nouveau Colis",
		WaitingPickup:   "attente de ramassage",
		PickedUp:        "Ramassée",
		HandedToCarrier: "Remise au transporteur",
		InTransit:       "En cours de livraison",
		Delivered:       "Livrée",
		Returned:        "Retournée",
		Canceled:        "Annulée",
	}
}

// Validate checks if the Status value is one of the closed set.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display name of the status.
// Returns "Inconnu" for invalid values. Implements fmt.Stringer and is safe
// to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Inconnu"
}
