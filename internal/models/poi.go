package models

// PointOfInterest belongs to exactly one city and is removed with it.
type PointOfInterest struct {
	Base
	CityID      int    `json:"city_id" db:"city_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}
