package commands

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/courier"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// ProvisionCarrierCourierCommandHandler implements the idempotent
// get-or-create for the carrier's synthetic courier. Uniqueness is enforced
// by the registry's email constraint, not by check-then-act: a concurrent
// create that loses the race surfaces as an already-exists error and falls
// back to a re-fetch.
type ProvisionCarrierCourierCommandHandler struct {
	uowFactory   CourierUoWFactory
	cityRegistry ports.CityRegistry
}

// NewProvisionCarrierCourierCommandHandler creates a handler for carrier
// courier provisioning.
func NewProvisionCarrierCourierCommandHandler(
	uowFactory CourierUoWFactory,
	cityRegistry ports.CityRegistry,
) ProvisionCarrierCourierCommandHandler {
	return ProvisionCarrierCourierCommandHandler{
		uowFactory:   uowFactory,
		cityRegistry: cityRegistry,
	}
}

// Handle returns the id of the carrier's courier record, creating it with
// the command's defaults when absent. The created record is a company
// courier serviceable in every registered city, carrying a hashed
// placeholder credential that is never used for login.
func (h *ProvisionCarrierCourierCommandHandler) Handle(
	ctx context.Context,
	cmd ProvisionCarrierCourierCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	existing, err := courierRepo.GetByEmail(ctx, cmd.Email())
	if err == nil {
		return existing.ID(), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	cities, err := h.cityRegistry.ListCityNames(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword(
		[]byte(kernel.NewUUID().String()), bcrypt.DefaultCost)
	if err != nil {
		return kernel.UUID{}, err
	}

	carrierCourier, err := courier.NewCourier(
		kernel.NewUUID(),
		cmd.Name(),
		cmd.Email(),
		courier.KindCompany,
		cmd.BaseTariff(),
		cities,
		string(passwordHash),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = courierRepo.Add(ctx, carrierCourier); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			// Lost a concurrent provisioning race; the winner's record
			// is the one to use.
			return h.refetch(ctx, cmd.Email())
		}
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return carrierCourier.ID(), nil
}

// refetch reads the courier created by a concurrent caller outside the
// current, now poisoned, transaction.
func (h *ProvisionCarrierCourierCommandHandler) refetch(ctx context.Context, email string) (kernel.UUID, error) {
	fresh := h.uowFactory.Create()
	winner, err := fresh.CourierRepository().GetByEmail(ctx, email)
	if err != nil {
		return kernel.UUID{}, err
	}
	return winner.ID(), nil
}
