package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FACorreiaa/go-cityinfo-api/internal/models"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository keeps cities in process memory. It is safe for concurrent use.
type MemoryRepository struct {
	logger    *slog.Logger
	mu        sync.RWMutex
	cities    []models.City
	nextPOIID atomic.Int64
}

// NewMemoryRepository creates a store holding a copy of cities. Point of
// interest ids continue from the highest seeded id.
func NewMemoryRepository(logger *slog.Logger, cities []models.City) *MemoryRepository {
	r := &MemoryRepository{
		logger: logger,
		cities: make([]models.City, 0, len(cities)),
	}

	var maxID int
	for _, c := range cities {
		r.cities = append(r.cities, copyCity(c, true))
		for _, p := range c.PointsOfInterest {
			maxID = max(maxID, p.ID)
		}
	}
	r.nextPOIID.Store(int64(maxID))
	return r
}

// SeedCities returns the cities the service ships with.
func SeedCities() []models.City {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	poi := func(id, cityID int, name, description string) models.PointOfInterest {
		return models.PointOfInterest{
			Base:        models.Base{ID: id, CreatedAt: now, UpdatedAt: now},
			CityID:      cityID,
			Name:        name,
			Description: description,
		}
	}
	city := func(id int, name, description string, pois ...models.PointOfInterest) models.City {
		c := models.NewCity(id, name, description)
		c.CreatedAt, c.UpdatedAt = now, now
		c.PointsOfInterest = pois
		return c
	}

	return []models.City{
		city(1, "New York City", "The one with that big park.",
			poi(1, 1, "Central Park", "The most visited urban park in the United States."),
			poi(2, 1, "Empire State Building", "A 102-story skyscraper located in Midtown Manhattan."),
		),
		city(2, "Antwerp", "The one with the cathedral that was never really finished.",
			poi(3, 2, "Cathedral of Our Lady", "A Gothic style cathedral, conceived by architects Jan and Pieter Appelmans."),
			poi(4, 2, "Antwerp Central Station", "The finest example of railway architecture in Belgium."),
		),
		city(3, "Paris", "The one with that big tower.",
			poi(5, 3, "Eiffel Tower", "A wrought iron lattice tower on the Champ de Mars, named after engineer Gustave Eiffel."),
			poi(6, 3, "The Louvre", "The world's largest museum."),
		),
	}
}

func copyCity(c models.City, withChildren bool) models.City {
	out := c
	out.PointsOfInterest = nil
	if withChildren {
		out.PointsOfInterest = make([]models.PointOfInterest, len(c.PointsOfInterest))
		copy(out.PointsOfInterest, c.PointsOfInterest)
	}
	return out
}

// findCity returns the index of the city or -1. Callers must hold mu.
func (r *MemoryRepository) findCity(cityID int) int {
	for i := range r.cities {
		if r.cities[i].ID == cityID {
			return i
		}
	}
	return -1
}

func findPointOfInterest(pois []models.PointOfInterest, poiID int) int {
	for i := range pois {
		if pois[i].ID == poiID {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) CityExists(_ context.Context, cityID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findCity(cityID) >= 0, nil
}

func (r *MemoryRepository) GetCities(_ context.Context, filter types.CityFilter) ([]models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.TrimSpace(filter.Name)
	query := strings.ToLower(strings.TrimSpace(filter.SearchQuery))

	cities := []models.City{}
	for _, c := range r.cities {
		if name != "" && c.Name != name {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(strings.ToLower(c.Description), query) {
			continue
		}
		cities = append(cities, copyCity(c, false))
	}
	sort.SliceStable(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities, nil
}

func (r *MemoryRepository) GetCity(_ context.Context, cityID int, includePointsOfInterest bool) (*models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.findCity(cityID)
	if i < 0 {
		return nil, fmt.Errorf("city %d: %w", cityID, types.ErrCityNotFound)
	}
	c := copyCity(r.cities[i], includePointsOfInterest)
	return &c, nil
}

func (r *MemoryRepository) GetPointsOfInterestForCity(_ context.Context, cityID int) ([]models.PointOfInterest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.findCity(cityID)
	if i < 0 {
		return nil, fmt.Errorf("city %d: %w", cityID, types.ErrCityNotFound)
	}
	return copyCity(r.cities[i], true).PointsOfInterest, nil
}

func (r *MemoryRepository) GetPointOfInterest(_ context.Context, cityID, poiID int) (*models.PointOfInterest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.findCity(cityID)
	if i < 0 {
		return nil, fmt.Errorf("city %d: %w", cityID, types.ErrCityNotFound)
	}
	j := findPointOfInterest(r.cities[i].PointsOfInterest, poiID)
	if j < 0 {
		return nil, fmt.Errorf("point of interest %d in city %d: %w", poiID, cityID, types.ErrPointOfInterestNotFound)
	}
	p := r.cities[i].PointsOfInterest[j]
	return &p, nil
}

func (r *MemoryRepository) AddPointOfInterest(ctx context.Context, cityID int, cmd AddPointOfInterestCommand) (*models.PointOfInterest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findCity(cityID)
	if i < 0 {
		return nil, fmt.Errorf("city %d: %w", cityID, types.ErrCityNotFound)
	}

	now := time.Now().UTC()
	p := models.PointOfInterest{
		Base: models.Base{
			ID:        int(r.nextPOIID.Add(1)),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CityID:      cityID,
		Name:        cmd.Name,
		Description: cmd.Description,
	}
	r.cities[i].PointsOfInterest = append(r.cities[i].PointsOfInterest, p)

	r.logger.DebugContext(ctx, "Point of interest stored in memory", slog.Int("cityID", cityID), slog.Int("poiID", p.ID))
	return &p, nil
}

func (r *MemoryRepository) UpdatePointOfInterest(_ context.Context, cmd UpdatePointOfInterestCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findCity(cmd.CityID)
	if i < 0 {
		return fmt.Errorf("city %d: %w", cmd.CityID, types.ErrCityNotFound)
	}
	j := findPointOfInterest(r.cities[i].PointsOfInterest, cmd.PointOfInterestID)
	if j < 0 {
		return fmt.Errorf("point of interest %d in city %d: %w", cmd.PointOfInterestID, cmd.CityID, types.ErrPointOfInterestNotFound)
	}

	p := &r.cities[i].PointsOfInterest[j]
	p.Name = cmd.Name
	p.Description = cmd.Description
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) DeletePointOfInterest(_ context.Context, cmd DeletePointOfInterestCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findCity(cmd.CityID)
	if i < 0 {
		return fmt.Errorf("city %d: %w", cmd.CityID, types.ErrCityNotFound)
	}
	pois := r.cities[i].PointsOfInterest
	j := findPointOfInterest(pois, cmd.PointOfInterestID)
	if j < 0 {
		return fmt.Errorf("point of interest %d in city %d: %w", cmd.PointOfInterestID, cmd.CityID, types.ErrPointOfInterestNotFound)
	}
	r.cities[i].PointsOfInterest = append(pois[:j:j], pois[j+1:]...)
	return nil
}

func (r *MemoryRepository) Save(context.Context) error {
	return nil
}
