package queries

import (
	"context"
	"encoding/json"

	"parcel/internal/core/ports"
)

// ListCarrierShipmentsQueryHandler passes the carrier's shipment list
// through untouched. The records stay opaque; interpreting them is the
// admin UI's concern.
type ListCarrierShipmentsQueryHandler struct {
	carrierClient ports.CarrierClient
}

// NewListCarrierShipmentsQueryHandler creates a handler for shipment
// listings.
func NewListCarrierShipmentsQueryHandler(carrierClient ports.CarrierClient) ListCarrierShipmentsQueryHandler {
	return ListCarrierShipmentsQueryHandler{carrierClient: carrierClient}
}

// Handle fetches the carrier's shipment records. Carrier failures propagate
// to the caller.
func (h ListCarrierShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListCarrierShipmentsQuery,
) ([]json.RawMessage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.carrierClient.ListShipments(ctx)
}
