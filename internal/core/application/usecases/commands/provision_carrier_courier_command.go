package commands

import (
	"errors"

	"parcel/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrProvisionCarrierCourierCommandIsNotConstructed = errors.New(
		"ProvisionCarrierCourierCommand must be created via NewProvisionCarrierCourierCommand constructor",
	)
	ErrCarrierEmailIsRequired  = errors.New("carrier email is required")
	ErrCarrierNameIsRequired   = errors.New("carrier name is required")
	ErrCarrierTariffIsInvalid  = errors.New("carrier tariff must not be negative")
)

// ProvisionCarrierCourierCommand represents a request to ensure the synthetic
// courier standing in for the external carrier exists in the courier
// registry. The email is the identifying attribute; name and tariff are the
// fixed defaults used only when the record has to be created.
type ProvisionCarrierCourierCommand struct { //nolint:recvcheck //using for validation
	email      string
	name       string
	baseTariff decimal.Decimal

	guard guard.ConstructorGuard
}

// NewProvisionCarrierCourierCommand creates a command to provision the
// carrier's synthetic courier.
func NewProvisionCarrierCourierCommand(
	email string,
	name string,
	baseTariff decimal.Decimal,
) (ProvisionCarrierCourierCommand, error) {
	command := ProvisionCarrierCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setEmail(email),
		command.setName(name),
		command.setBaseTariff(baseTariff),
	); err != nil {
		return ProvisionCarrierCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProvisionCarrierCourierCommand) Validate() error {
	return c.guard.Validate(ErrProvisionCarrierCourierCommandIsNotConstructed)
}

// Email returns the carrier's identifying email.
func (c ProvisionCarrierCourierCommand) Email() string {
	return c.email
}

// Name returns the display name used when creating the courier.
func (c ProvisionCarrierCourierCommand) Name() string {
	return c.name
}

// BaseTariff returns the default per-delivery fee used when creating the
// courier.
func (c ProvisionCarrierCourierCommand) BaseTariff() decimal.Decimal {
	return c.baseTariff
}

func (c *ProvisionCarrierCourierCommand) setEmail(email string) error {
	if email == "" {
		return ErrCarrierEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *ProvisionCarrierCourierCommand) setName(name string) error {
	if name == "" {
		return ErrCarrierNameIsRequired
	}

	c.name = name
	return nil
}

func (c *ProvisionCarrierCourierCommand) setBaseTariff(baseTariff decimal.Decimal) error {
	if baseTariff.IsNegative() {
		return ErrCarrierTariffIsInvalid
	}

	c.baseTariff = baseTariff
	return nil
}
