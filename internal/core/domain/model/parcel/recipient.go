package parcel

import (
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

// ErrRecipientIsNotConstructed is returned when a Recipient instance was not
// created through the NewRecipient factory function.
var ErrRecipientIsNotConstructed = errs.NewValueIsRequiredError("Recipient must be created via NewRecipient constructor")

// Recipient is a value object holding the delivery destination of a parcel:
// who receives it and where. These attributes are forwarded verbatim to the
// external carrier when the parcel is handed off.
type Recipient struct {
	fullName string
	phone    string
	city     string
	address  string

	guard guard.ConstructorGuard
}

// NewRecipient creates a validated Recipient.
// Full name, phone and city are required; the street address may be empty
// since some rural deliveries are arranged by phone.
func NewRecipient(fullName, phone, city, address string) (Recipient, error) {
	if fullName == "" {
		return Recipient{}, errs.NewValueIsRequiredError("fullName")
	}
	if phone == "" {
		return Recipient{}, errs.NewValueIsRequiredError("phone")
	}
	if city == "" {
		return Recipient{}, errs.NewValueIsRequiredError("city")
	}

	return Recipient{
		fullName: fullName,
		phone:    phone,
		city:     city,
		address:  address,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Recipient was built through NewRecipient.
func (r Recipient) Validate() error {
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// FullName returns the recipient's full name.
func (r Recipient) FullName() string {
	return r.fullName
}

// Phone returns the recipient's phone number.
func (r Recipient) Phone() string {
	return r.phone
}

// City returns the destination city name.
func (r Recipient) City() string {
	return r.city
}

// Address returns the street address, possibly empty.
func (r Recipient) Address() string {
	return r.address
}
