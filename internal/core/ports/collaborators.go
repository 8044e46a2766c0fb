package ports

import (
	"context"

	"parcel/internal/core/domain/model/parcel"
)

// StatusChangedHook is invoked by reconciliation after a parcel's status was
// updated from the carrier's feed. Implementations dispatch notifications or
// other side effects; they are external collaborators and must not mutate the
// parcel. A hook failure is logged by the caller but never fails the
// reconciliation item.
type StatusChangedHook interface {
	OnStatusChanged(ctx context.Context, updated *parcel.Parcel, oldStatus, newStatus parcel.Status)
}

// CityRegistry exposes the city master data owned by an external collaborator.
// The carrier provisioner reads it once to seed the synthetic courier's
// serviceable-city list.
type CityRegistry interface {
	// ListCityNames returns the names of all registered cities.
	ListCityNames(ctx context.Context) ([]string, error)
}
