package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/core/domain/model/tracking"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append records a status event for the parcel. The ledger row is created on
// first write (ON CONFLICT DO NOTHING keeps concurrent first writes safe) and
// the event goes to the end of the child table, whose serial key preserves
// insertion order. The two statements run against the caller's connection, so
// inside a unit of work they share its transaction.
func (r *GormLedgerRepository) Append(
	ctx context.Context,
	parcelID kernel.UUID,
	trackingCode string,
	status parcel.Status,
	recordedAt time.Time,
) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	if trackingCode == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}

	ledgerRow := LedgerDTO{
		ParcelID:     parcelID.Bytes(),
		TrackingCode: trackingCode,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ledgerRow).Error
	if err != nil {
		return err
	}

	eventRow := LedgerEventDTO{
		ParcelID:   parcelID.Bytes(),
		Status:     int(status),
		RecordedAt: recordedAt,
	}
	return r.db.WithContext(ctx).Create(&eventRow).Error
}

// Get retrieves the ledger for a parcel with events in insertion order.
func (r *GormLedgerRepository) Get(ctx context.Context, parcelID kernel.UUID) (*tracking.Ledger, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto LedgerDTO
	err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("tracking_ledger_events.id")
		}).
		First(&dto, "parcel_id = ?", parcelID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ledger", parcelID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
