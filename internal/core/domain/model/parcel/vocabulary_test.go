package parcel_test

import (
	"testing"

	"parcel/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
)

func TestMapCarrierStatus_KnownStrings(t *testing.T) {
	testCases := []struct {
		raw      string
		expected parcel.Status
	}{
		{"Nouveau", parcel.New},
		{"attente de ramassage", parcel.WaitingPickup},
		{"Collecté par agence principale", parcel.PickedUp},
		{"Collecté par agence secondaire", parcel.PickedUp},
		{"En cours de livraison", parcel.InTransit},
		{"Sortie pour livraison", parcel.InTransit},
		{"Livrée", parcel.Delivered},
		{"Retournée", parcel.Returned},
		{"Annulée", parcel.Canceled},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, parcel.MapCarrierStatus(tc.raw))
		})
	}
}

func TestMapCarrierStatus_MappedStringsKeepTheirMeaning(t *testing.T) {
	assert.Equal(t, "Livrée", parcel.MapCarrierStatus("Livrée").String())
	assert.Equal(t, "Nouveau Colis", parcel.MapCarrierStatus("Nouveau").String())
	assert.Equal(t, "Ramassée", parcel.MapCarrierStatus("Collecté par agence principale").String())
}

func TestMapCarrierStatus_UnmappedFallsBackToWaitingPickup(t *testing.T) {
	testCases := []string{
		"Unknown Carrier State",
		"",
		"livrée", // case-sensitive, lowercase is not in the table
		"En attente",
	}

	for _, raw := range testCases {
		t.Run(raw, func(t *testing.T) {
			status := parcel.MapCarrierStatus(raw)

			assert.Equal(t, parcel.WaitingPickup, status)
			assert.Equal(t, "attente de ramassage", status.String())
		})
	}
}

func TestMapCarrierStatus_IsTotal(t *testing.T) {
	// Whatever the input, the result is always a valid internal status.
	for _, raw := range []string{"Livrée", "garbage", "123", "\n"} {
		assert.NoError(t, parcel.MapCarrierStatus(raw).Validate())
	}
}
