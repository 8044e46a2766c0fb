// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read storage directly or call the carrier live; they never
// mutate state.
package queries

import (
	"errors"
	"time"

	"parcel/internal/pkg/guard"
)

var (
	ErrTrackParcelQueryIsNotConstructed = errors.New(
		"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
	)
	ErrTrackingCodeIsRequired = errors.New("tracking code is required")
)

// TrackParcelQuery asks where a parcel is. For internally carried parcels
// the answer comes from the persisted ledger; for externally carried ones it
// is an ephemeral view of the carrier's live feed.
type TrackParcelQuery struct { //nolint:recvcheck //using for validation
	trackingCode string

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a tracking lookup for the given code.
func NewTrackParcelQuery(trackingCode string) (TrackParcelQuery, error) {
	query := TrackParcelQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setTrackingCode(trackingCode); err != nil {
		return TrackParcelQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackingCode returns the tracking code being looked up.
func (q TrackParcelQuery) TrackingCode() string {
	return q.trackingCode
}

func (q *TrackParcelQuery) setTrackingCode(trackingCode string) error {
	if trackingCode == "" {
		return ErrTrackingCodeIsRequired
	}

	q.trackingCode = trackingCode
	return nil
}

// TrackingEventResponse is one event in a tracking view. Status carries the
// internal display name, already translated from the carrier vocabulary for
// external parcels.
type TrackingEventResponse struct {
	Status     string
	OccurredAt time.Time
}

// TrackParcelQueryResponse is the tracking view for one parcel. Live is true
// when the events came from the carrier's feed instead of the persisted
// ledger.
type TrackParcelQueryResponse struct {
	TrackingCode string
	Live         bool
	Events       []TrackingEventResponse
}
