package types

type PointOfInterestDto struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PointOfInterestForCreationDto struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=200,nefield=Name"`
}

// PointOfInterestForUpdateDto is used for both full (PUT) and partial (PATCH) updates.
type PointOfInterestForUpdateDto struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=200,nefield=Name"`
}
