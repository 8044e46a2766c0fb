package queries

import (
	"errors"

	"parcel/internal/pkg/guard"
)

var (
	ErrListCarrierShipmentsQueryIsNotConstructed = errors.New(
		"ListCarrierShipmentsQuery must be created via NewListCarrierShipmentsQuery constructor",
	)
)

// ListCarrierShipmentsQuery retrieves every shipment registered with the
// external carrier, as the carrier-native records. Used by the admin
// shipment overview.
type ListCarrierShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewListCarrierShipmentsQuery creates a parameterless shipment listing
// query.
func NewListCarrierShipmentsQuery() ListCarrierShipmentsQuery {
	return ListCarrierShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListCarrierShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListCarrierShipmentsQueryIsNotConstructed)
}
