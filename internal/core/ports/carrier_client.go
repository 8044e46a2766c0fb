package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CarrierEvent is one tracking event reported by the external carrier's feed.
// It is ephemeral: translated through the status vocabulary and then either
// discarded (live lookups) or folded into the ledger (reconciliation), never
// persisted as-is.
type CarrierEvent struct {
	// Status is the carrier-native status string, untranslated.
	Status string

	// OccurredAt is the event time, already converted from the carrier's
	// epoch-seconds representation to a UTC instant.
	OccurredAt time.Time
}

// ShipmentRequest carries the parcel attributes forwarded to the carrier when
// registering a shipment.
type ShipmentRequest struct {
	FullName    string
	Phone       string
	City        string
	Address     string
	Price       decimal.Decimal
	Product     string
	Quantity    int
	Note        string
	OpenPackage bool
}

// CarrierClient is the thin adapter over the external carrier's HTTP
// endpoints. Implementations return carrier-native shapes and never retry;
// retry policy belongs to callers.
//
// Failure taxonomy (matched with errors.Is against the errs sentinels):
//   - ErrCarrierUnavailable: transport or HTTP-level failure, retryable.
//   - ErrCarrierMalformedResponse: payload violates the documented shape.
//   - ErrCarrierRejected: the carrier refused a create-shipment request.
type CarrierClient interface {
	// FetchEvents returns the tracking events the carrier knows for the
	// given external tracking id. No ordering is guaranteed by the feed.
	FetchEvents(ctx context.Context, externalTrackingID string) ([]CarrierEvent, error)

	// ListShipments returns all shipment records registered with the
	// carrier, as opaque carrier-native documents.
	ListShipments(ctx context.Context) ([]json.RawMessage, error)

	// CreateShipment registers a shipment with the carrier and returns the
	// external tracking id it assigned. Success is recognized solely by the
	// carrier's documented success marker; anything else is a rejection.
	CreateShipment(ctx context.Context, request ShipmentRequest) (string, error)
}
