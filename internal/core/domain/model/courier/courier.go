package courier

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrCourierIsNotConstructed is returned when a Courier instance was not
	// created through NewCourier or RestoreCourier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
)

// Courier represents a delivery agent in the internal courier registry.
// A courier is either an individual agent or a company; the external carrier
// is represented by a single synthetic company courier provisioned on demand
// and identified by its registered email.
//
// Courier maintains these invariants:
//   - Must have a valid unique identifier
//   - Name and email are required; email is the identifying attribute and is
//     unique at the storage level
//   - Base tariff is never negative
//   - Can only be created through NewCourier or RestoreCourier
type Courier struct {
	// id is the unique identifier for the courier
	id kernel.UUID

	// name is the display name
	name string

	// email is the identifying attribute, unique across the registry
	email string

	// kind tells whether this is a person or a company
	kind Kind

	// baseTariff is the per-delivery fee credited to the courier
	baseTariff decimal.Decimal

	// serviceableCities lists the city names this courier delivers to
	serviceableCities []string

	// passwordHash is the bcrypt hash of the courier's credential;
	// never exposed through read models
	passwordHash string

	// isConstructed ensures the courier was created via a constructor
	isConstructed bool
}

// NewCourier creates a new Courier with validation.
func NewCourier(
	id kernel.UUID,
	name string,
	email string,
	kind Kind,
	baseTariff decimal.Decimal,
	serviceableCities []string,
	passwordHash string,
) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if baseTariff.IsNegative() {
		return nil, errs.NewValueIsInvalidError("baseTariff")
	}
	if passwordHash == "" {
		return nil, errs.NewValueIsRequiredError("passwordHash")
	}

	cities := make([]string, len(serviceableCities))
	copy(cities, serviceableCities)

	return &Courier{
		id:                id,
		name:              name,
		email:             email,
		kind:              kind,
		baseTariff:        baseTariff,
		serviceableCities: cities,
		passwordHash:      passwordHash,
		isConstructed:     true,
	}, nil
}

// RestoreCourier reconstructs a Courier from persistence, re-checking all
// invariants.
func RestoreCourier(
	id kernel.UUID,
	name string,
	email string,
	kind Kind,
	baseTariff decimal.Decimal,
	serviceableCities []string,
	passwordHash string,
) (*Courier, error) {
	return NewCourier(id, name, email, kind, baseTariff, serviceableCities, passwordHash)
}

// Validate ensures the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Email returns the courier's identifying email.
func (c *Courier) Email() string {
	return c.email
}

// Kind returns whether the courier is a person or a company.
func (c *Courier) Kind() Kind {
	return c.kind
}

// BaseTariff returns the per-delivery fee.
func (c *Courier) BaseTariff() decimal.Decimal {
	return c.baseTariff
}

// ServiceableCities returns a copy of the cities this courier delivers to.
func (c *Courier) ServiceableCities() []string {
	cities := make([]string, len(c.serviceableCities))
	copy(cities, c.serviceableCities)
	return cities
}

// PasswordHash returns the bcrypt hash of the courier's credential.
// Only the persistence layer reads this; query responses must redact it.
func (c *Courier) PasswordHash() string {
	return c.passwordHash
}
