// Package ledgerrepo provides data transfer objects and mapping functions for
// tracking-ledger persistence. The ledger is keyed 1:1 by parcel id with its
// events in a child table ordered by insertion (serial id).
package ledgerrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// LedgerDTO represents the one-per-parcel ledger row.
type LedgerDTO struct {
	ParcelID     uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TrackingCode string           `gorm:"type:varchar(64);not null"`
	Events       []LedgerEventDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for ledger rows.
func (LedgerDTO) TableName() string {
	return "tracking_ledgers"
}

// LedgerEventDTO represents one appended status event. The serial primary key
// preserves insertion order, which is the ledger's ordering contract.
type LedgerEventDTO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ParcelID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     int       `gorm:"type:smallint;not null"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for ledger events.
func (LedgerEventDTO) TableName() string {
	return "tracking_ledger_events"
}

// toDomain converts a ledger row and its ordered events back to the aggregate.
func toDomain(dto LedgerDTO) (*tracking.Ledger, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	events := make([]tracking.Event, 0, len(dto.Events))
	for _, eventDTO := range dto.Events {
		event, eventErr := tracking.NewEvent(parcel.Status(eventDTO.Status), eventDTO.RecordedAt)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return tracking.RestoreLedger(parcelID, dto.TrackingCode, events)
}
