// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate, converting between domain entities and database rows.
package parcelrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. Indexed for the reconciliation candidate query
// (carrier_mode + created_at) and for tracking-code lookups.
type ParcelDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingCode       string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Recipient          RecipientDTO    `gorm:"embedded;embeddedPrefix:recipient_"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Product            string          `gorm:"type:varchar(255)"`
	Note               string          `gorm:"type:text"`
	OpenPackage        bool            `gorm:"not null"`
	CarrierMode        int             `gorm:"type:smallint;not null;index:idx_parcels_mode_created"`
	ExternalTrackingID *string         `gorm:"type:varchar(64)"`
	CourierID          *uuid.UUID      `gorm:"type:uuid;index"`
	Status             int             `gorm:"type:smallint;not null"`
	CreatedAt          time.Time       `gorm:"not null;index:idx_parcels_mode_created"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// RecipientDTO represents the embedded delivery destination within the
// parcels table.
type RecipientDTO struct {
	FullName string `gorm:"type:varchar(255);not null"`
	Phone    string `gorm:"type:varchar(32);not null"`
	City     string `gorm:"type:varchar(128);not null"`
	Address  string `gorm:"type:varchar(255)"`
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return ParcelDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode(),
		Recipient: RecipientDTO{
			FullName: aggregate.Recipient().FullName(),
			Phone:    aggregate.Recipient().Phone(),
			City:     aggregate.Recipient().City(),
			Address:  aggregate.Recipient().Address(),
		},
		Price:              aggregate.Price(),
		Product:            aggregate.Product(),
		Note:               aggregate.Note(),
		OpenPackage:        aggregate.OpenPackage(),
		CarrierMode:        int(aggregate.CarrierMode()),
		ExternalTrackingID: aggregate.ExternalTrackingID(),
		CourierID:          courierID,
		Status:             int(aggregate.Status()),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row back to a parcel aggregate, re-running all
// domain validation through RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	recipient, err := parcel.NewRecipient(
		dto.Recipient.FullName,
		dto.Recipient.Phone,
		dto.Recipient.City,
		dto.Recipient.Address,
	)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingCode,
		recipient,
		dto.Price,
		dto.Product,
		dto.Note,
		dto.OpenPackage,
		parcel.CarrierMode(dto.CarrierMode),
		dto.ExternalTrackingID,
		courierID,
		parcel.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
