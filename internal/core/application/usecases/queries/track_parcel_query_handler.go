package queries

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackParcelQueryHandler answers tracking lookups. Internally carried
// parcels are read from the persisted ledger; externally carried ones are
// looked up live against the carrier and never written back.
type TrackParcelQueryHandler struct {
	db            *gorm.DB
	carrierClient ports.CarrierClient
}

// NewTrackParcelQueryHandler creates a handler for tracking lookups.
// The carrier client is typically the cached decorator, keeping repeat
// lookups for the same parcel off the vendor's endpoint.
func NewTrackParcelQueryHandler(db *gorm.DB, carrierClient ports.CarrierClient) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{
		db:            db,
		carrierClient: carrierClient,
	}
}

// Handle executes the lookup. Carrier failures on the live path propagate to
// the caller as a single failed request.
func (h TrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	var (
		parcelID           uuid.UUID
		carrierMode        int
		externalTrackingID sql.NullString
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			carrier_mode,
			external_tracking_id
		FROM parcels
		WHERE tracking_code = ?
	`, query.TrackingCode()).Row()
	if err := row.Scan(&parcelID, &carrierMode, &externalTrackingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackParcelQueryResponse{}, errs.NewObjectNotFoundError("trackingCode", query.TrackingCode())
		}
		return TrackParcelQueryResponse{}, err
	}

	if parcel.CarrierMode(carrierMode) == parcel.CarrierModeExternal && externalTrackingID.Valid {
		return h.trackLive(ctx, query.TrackingCode(), externalTrackingID.String)
	}

	return h.trackFromLedger(ctx, query.TrackingCode(), parcelID)
}

// trackFromLedger returns the persisted history. The ledger's insertion
// order is its chronological order, so no re-sort is needed.
func (h TrackParcelQueryHandler) trackFromLedger(
	ctx context.Context,
	trackingCode string,
	parcelID uuid.UUID,
) (TrackParcelQueryResponse, error) {
	events := make([]TrackingEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			recorded_at
		FROM tracking_ledger_events
		WHERE parcel_id = ?
		ORDER BY id
	`, parcelID).Rows()
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status     int
			recordedAt time.Time
		)
		if err = rows.Scan(&status, &recordedAt); err != nil {
			return TrackParcelQueryResponse{}, err
		}

		events = append(events, TrackingEventResponse{
			Status:     parcel.Status(status).String(),
			OccurredAt: recordedAt.UTC(),
		})
	}
	if err = rows.Err(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	return TrackParcelQueryResponse{
		TrackingCode: trackingCode,
		Live:         false,
		Events:       events,
	}, nil
}

// trackLive builds the ephemeral view from the carrier's feed: statuses
// translated through the vocabulary, timestamps already UTC, sorted
// ascending because the feed's own order is not trusted.
func (h TrackParcelQueryHandler) trackLive(
	ctx context.Context,
	trackingCode string,
	externalTrackingID string,
) (TrackParcelQueryResponse, error) {
	carrierEvents, err := h.carrierClient.FetchEvents(ctx, externalTrackingID)
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}

	events := make([]TrackingEventResponse, 0, len(carrierEvents))
	for _, event := range carrierEvents {
		events = append(events, TrackingEventResponse{
			Status:     parcel.MapCarrierStatus(event.Status).String(),
			OccurredAt: event.OccurredAt,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})

	return TrackParcelQueryResponse{
		TrackingCode: trackingCode,
		Live:         true,
		Events:       events,
	}, nil
}
