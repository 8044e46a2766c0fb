package parcel

// carrierVocabulary translates the carrier's native status strings into the
// internal Status set. The table is process-wide, read-only configuration:
// it is versioned with the code and never mutated at runtime.
//
// The carrier's wording is an unversioned contract; additions show up without
// notice. Any string absent from this table deliberately falls back to
// WaitingPickup rather than failing, so an unannounced vendor state never
// breaks reconciliation.
var carrierVocabulary = map[string]Status{
	"Nouveau":                        New,
	"attente de ramassage":           WaitingPickup,
	"Collecté par agence principale": PickedUp,
	"Collecté par agence secondaire": PickedUp,
	"En cours de livraison":          InTransit,
	"Sortie pour livraison":          InTransit,
	"Livrée":                         Delivered,
	"Retournée":                      Returned,
	"Annulée":                        Canceled,
}

// MapCarrierStatus translates a carrier-native status string into an internal
// Status. The function is total: unmapped input resolves to WaitingPickup.
// Pure lookup, no side effects, no errors.
func MapCarrierStatus(raw string) Status {
	if status, ok := carrierVocabulary[raw]; ok {
		return status
	}
	return WaitingPickup
}
