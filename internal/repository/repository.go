package repository

import (
	"context"

	"github.com/FACorreiaa/go-cityinfo-api/internal/models"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

// Repository is the query/mutate facade over the city store.
//
// Lookups of a missing city or point of interest return an error wrapping
// types.ErrNotFound. Mutations are described by explicit command values and
// applied immediately; each call is atomic at the store's granularity.
type Repository interface {
	CityExists(ctx context.Context, cityID int) (bool, error)
	GetCities(ctx context.Context, filter types.CityFilter) ([]models.City, error)
	GetCity(ctx context.Context, cityID int, includePointsOfInterest bool) (*models.City, error)
	GetPointsOfInterestForCity(ctx context.Context, cityID int) ([]models.PointOfInterest, error)
	GetPointOfInterest(ctx context.Context, cityID, poiID int) (*models.PointOfInterest, error)

	AddPointOfInterest(ctx context.Context, cityID int, cmd AddPointOfInterestCommand) (*models.PointOfInterest, error)
	UpdatePointOfInterest(ctx context.Context, cmd UpdatePointOfInterestCommand) error
	DeletePointOfInterest(ctx context.Context, cmd DeletePointOfInterestCommand) error

	// Save is the commit point callers invoke after a mutation. Commands are
	// applied as they are issued, so neither store has pending state to flush.
	Save(ctx context.Context) error
}

// AddPointOfInterestCommand creates a point of interest. The store assigns the id.
type AddPointOfInterestCommand struct {
	Name        string
	Description string
}

// UpdatePointOfInterestCommand replaces the mutable fields of a point of interest.
type UpdatePointOfInterestCommand struct {
	CityID            int
	PointOfInterestID int
	Name              string
	Description       string
}

type DeletePointOfInterestCommand struct {
	CityID            int
	PointOfInterestID int
}
