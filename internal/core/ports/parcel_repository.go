// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work, the external carrier client and
// the collaborator hooks. These interfaces establish dependency inversion and
// keep the core testable without infrastructure.
package ports

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// The parcel must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateStatusGuarded performs a compare-and-swap status update: the new
	// status is written only if the stored status still equals expected.
	// Returns false (without error) when the guard missed, meaning a
	// concurrent writer got there first and the caller's view is stale.
	UpdateStatusGuarded(ctx context.Context, id kernel.UUID, expected, next parcel.Status) (bool, error)

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingCode retrieves a parcel by its stable tracking code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*parcel.Parcel, error)

	// GetExternallyCarriedCreatedSince retrieves all parcels in external
	// carrier mode created at or after the given instant. Used by
	// reconciliation to bound polling to a trailing window; older parcels
	// are assumed terminal.
	GetExternallyCarriedCreatedSince(ctx context.Context, since time.Time) ([]*parcel.Parcel, error)
}
