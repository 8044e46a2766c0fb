package cityregistry

// CityDTO represents city master data in the database.
type CityDTO struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(120);uniqueIndex;not null"`
}

// TableName returns the database table name for cities.
func (CityDTO) TableName() string {
	return "cities"
}
