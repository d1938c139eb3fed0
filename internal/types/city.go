package types

// CityDto is the representation of a city including its points of interest.
type CityDto struct {
	ID                       int                  `json:"id"`
	Name                     string               `json:"name"`
	Description              string               `json:"description"`
	NumberOfPointsOfInterest int                  `json:"numberOfPointsOfInterest"`
	PointsOfInterest         []PointOfInterestDto `json:"pointsOfInterest"`
}

// CityWithoutPointsOfInterestDto is returned by the list endpoint and when
// includePointsOfInterest is false. It has no nested collection field.
type CityWithoutPointsOfInterestDto struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CityFilter narrows the city list. Zero values disable the filter.
type CityFilter struct {
	// Name matches the city name exactly.
	Name string
	// SearchQuery matches a case-insensitive substring of name or description.
	SearchQuery string
}
