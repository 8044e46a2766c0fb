// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. The email column carries the unique index that
// makes carrier-courier provisioning idempotent under concurrency.
package courierrepo

import (
	"parcel/internal/core/domain/model/courier"
	"parcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CourierDTO represents the database structure for persisting courier
// aggregates.
type CourierDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name         string           `gorm:"type:varchar(255);not null"`
	Email        string           `gorm:"type:varchar(255);not null;uniqueIndex"`
	Kind         int              `gorm:"type:smallint;not null"`
	BaseTariff   decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Cities       []CourierCityDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
	PasswordHash string           `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// CourierCityDTO is one serviceable city of a courier.
type CourierCityDTO struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;index"`
	CityName  string    `gorm:"type:varchar(128);not null"`
}

// TableName specifies the database table name for courier cities.
func (CourierCityDTO) TableName() string {
	return "courier_cities"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	cityNames := aggregate.ServiceableCities()
	cities := make([]CourierCityDTO, 0, len(cityNames))
	for _, name := range cityNames {
		cities = append(cities, CourierCityDTO{
			CourierID: aggregate.ID().Bytes(),
			CityName:  name,
		})
	}

	return CourierDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		Kind:         int(aggregate.Kind()),
		BaseTariff:   aggregate.BaseTariff(),
		Cities:       cities,
		PasswordHash: aggregate.PasswordHash(),
	}
}

// toDomain converts a database row back to a courier aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(dto.Cities))
	for _, cityDTO := range dto.Cities {
		cities = append(cities, cityDTO.CityName)
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		dto.Email,
		courier.Kind(dto.Kind),
		dto.BaseTariff,
		cities,
		dto.PasswordHash,
	)
}
