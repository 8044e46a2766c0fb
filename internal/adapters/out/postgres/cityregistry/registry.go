// Package cityregistry reads the city master data owned by the back office.
// The parcel system only lists city names; creating and renaming cities
// happens elsewhere.
package cityregistry

import (
	"context"

	"gorm.io/gorm"
)

// GormCityRegistry implements ports.CityRegistry using GORM.
type GormCityRegistry struct {
	db *gorm.DB
}

// NewGormCityRegistry creates a new city registry backed by the database.
func NewGormCityRegistry(db *gorm.DB) *GormCityRegistry {
	return &GormCityRegistry{db: db}
}

// ListCityNames returns the names of all registered cities in stable order.
func (r *GormCityRegistry) ListCityNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&CityDTO{}).
		Order("name").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}

	return names, nil
}
