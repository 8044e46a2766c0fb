package ports

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/core/domain/model/tracking"
)

// LedgerRepository defines the persistence contract for per-parcel status
// histories.
type LedgerRepository interface {
	// Append records a status event for the parcel. If no ledger exists yet,
	// one is created seeded with this single event; otherwise the event is
	// pushed to the end of the existing sequence. The operation is atomic
	// per parcel.
	//
	// The ledger stays chronologically ordered only when callers append in
	// increasing timestamp order; the repository does not re-sort.
	Append(ctx context.Context, parcelID kernel.UUID, trackingCode string, status parcel.Status, recordedAt time.Time) error

	// Get retrieves the ledger for a parcel with its events in insertion
	// order. Returns an object-not-found error when the parcel has no
	// ledger yet.
	Get(ctx context.Context, parcelID kernel.UUID) (*tracking.Ledger, error)
}
