package parcel

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through NewParcel or RestoreParcel. This ensures all parcels are validated.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

	// ErrExternalTrackingInconsistent is returned when the external tracking id
	// and the carrier mode disagree: the id must be present if and only if the
	// parcel is carried externally.
	ErrExternalTrackingInconsistent = errors.New("external tracking id must be set if and only if carrier mode is external")
)

// Parcel represents a single shipment tracked by the system. It is the
// aggregate root for the parcel lifecycle, from registration through hand-off
// and final disposition.
//
// Parcel maintains these invariants:
//   - Tracking code is unique, immutable and never empty
//   - Status is always one of the closed Status set
//   - External tracking id is present exactly when carrier mode is external
//   - Can only be created through NewParcel or RestoreParcel
//
// The tracking code is the stable reference used across systems; the external
// tracking id is the carrier's own identifier, assigned at hand-off.
type Parcel struct {
	// id is the unique identifier for the parcel
	id kernel.UUID

	// trackingCode is the stable internal reference, immutable after creation
	trackingCode string

	// recipient is the delivery destination
	recipient Recipient

	// price is the amount collected from the recipient on delivery
	price decimal.Decimal

	// product describes the shipped goods
	product string

	// note carries free-form delivery instructions
	note string

	// openPackage allows the recipient to inspect the package before paying
	openPackage bool

	// carrierMode tells whether the parcel is carried internally or externally
	carrierMode CarrierMode

	// externalTrackingID is the carrier's identifier (nil unless carried externally)
	externalTrackingID *string

	// courierID references the assigned courier (nil if unassigned);
	// ownership of the courier record lives in the courier registry
	courierID *kernel.UUID

	// status is the current lifecycle state
	status Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel creates a new Parcel with validation. New parcels start in the
// New status, carried internally, with no courier assigned.
func NewParcel(
	id kernel.UUID,
	trackingCode string,
	recipient Recipient,
	price decimal.Decimal,
	product string,
	note string,
	openPackage bool,
) (*Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}
	if err := recipient.Validate(); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, errs.NewValueIsInvalidError("price")
	}

	now := time.Now().UTC()
	return &Parcel{
		id:            id,
		trackingCode:  trackingCode,
		recipient:     recipient,
		price:         price,
		product:       product,
		note:          note,
		openPackage:   openPackage,
		carrierMode:   CarrierModeInternal,
		status:        New,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreParcel reconstructs a Parcel from persistence. All invariants are
// re-checked so a corrupted row never becomes a live aggregate.
func RestoreParcel(
	id kernel.UUID,
	trackingCode string,
	recipient Recipient,
	price decimal.Decimal,
	product string,
	note string,
	openPackage bool,
	carrierMode CarrierMode,
	externalTrackingID *string,
	courierID *kernel.UUID,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}
	if err := recipient.Validate(); err != nil {
		return nil, err
	}
	if err := carrierMode.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := validateExternalTracking(carrierMode, externalTrackingID); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Parcel{
		id:                 id,
		trackingCode:       trackingCode,
		recipient:          recipient,
		price:              price,
		product:            product,
		note:               note,
		openPackage:        openPackage,
		carrierMode:        carrierMode,
		externalTrackingID: externalTrackingID,
		courierID:          courierID,
		status:             status,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		isConstructed:      true,
	}, nil
}

// validateExternalTracking enforces the invariant that the external tracking id
// is set exactly when the parcel is carried externally.
func validateExternalTracking(mode CarrierMode, externalTrackingID *string) error {
	external := mode == CarrierModeExternal
	present := externalTrackingID != nil && *externalTrackingID != ""
	if external != present {
		return ErrExternalTrackingInconsistent
	}
	return nil
}

// Validate ensures the Parcel was properly constructed through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the stable internal tracking code.
func (p *Parcel) TrackingCode() string {
	return p.trackingCode
}

// Recipient returns the delivery destination.
func (p *Parcel) Recipient() Recipient {
	return p.recipient
}

// Price returns the amount collected on delivery.
func (p *Parcel) Price() decimal.Decimal {
	return p.price
}

// Product returns the description of the shipped goods.
func (p *Parcel) Product() string {
	return p.product
}

// Note returns the free-form delivery instructions.
func (p *Parcel) Note() string {
	return p.note
}

// OpenPackage reports whether the recipient may open the package before paying.
func (p *Parcel) OpenPackage() bool {
	return p.openPackage
}

// CarrierMode returns the current carrier mode.
func (p *Parcel) CarrierMode() CarrierMode {
	return p.carrierMode
}

// ExternalTrackingID returns the carrier's identifier for this parcel.
// Returns nil unless the parcel is carried externally.
func (p *Parcel) ExternalTrackingID() *string {
	return p.externalTrackingID
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (p *Parcel) Courier() *kernel.UUID {
	return p.courierID
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// CreatedAt returns the registration time of the parcel.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// HandOffToCarrier records a successful hand-off to the external carrier.
//
// The parcel switches to external carrier mode, stores the tracking id the
// carrier returned, is assigned to the synthetic carrier courier, and moves
// to the HandedToCarrier status. From this point the reconciliation process
// owns status updates.
func (p *Parcel) HandOffToCarrier(externalTrackingID string, carrierCourierID kernel.UUID) error {
	if externalTrackingID == "" {
		return errs.NewValueIsRequiredError("externalTrackingID")
	}
	if err := carrierCourierID.Validate(); err != nil {
		return err
	}

	p.carrierMode = CarrierModeExternal
	p.externalTrackingID = &externalTrackingID
	p.courierID = &carrierCourierID
	p.status = HandedToCarrier
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus replaces the parcel's current status.
//
// Reconciliation and manual status endpoints both funnel through here.
// The closed Status set is the only constraint: the carrier's feed is the
// source of truth for externally carried parcels, so arbitrary transitions
// are accepted as long as the status itself is valid.
func (p *Parcel) UpdateStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	p.status = status
	p.updatedAt = time.Now().UTC()
	return nil
}
