package ports

import (
	"context"

	"parcel/internal/core/domain/model/courier"
	"parcel/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
// The registry enforces email uniqueness at the storage level; Add reports a
// collision as an object-already-exists error so get-or-create callers can
// fall back to a re-fetch instead of relying on check-then-act.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// Returns an object-already-exists error when the email is taken.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByEmail retrieves a courier by its identifying email.
	GetByEmail(ctx context.Context, email string) (*courier.Courier, error)
}
