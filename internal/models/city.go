package models

// City is a top-level resource owning zero or more points of interest.
type City struct {
	Base
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	// PointsOfInterest is only populated when the city is loaded with its children.
	PointsOfInterest []PointOfInterest `json:"points_of_interest" db:"-"`
}

// NewCity creates a city with no points of interest.
func NewCity(id int, name, description string) City {
	return City{
		Base:        Base{ID: id},
		Name:        name,
		Description: description,
	}
}
