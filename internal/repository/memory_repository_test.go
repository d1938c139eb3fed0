package repository

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-cityinfo-api/internal/models"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

func newTestMemoryRepository() *MemoryRepository {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewMemoryRepository(logger, SeedCities())
}

func TestMemoryRepository_Reads(t *testing.T) {
	ctx := context.Background()
	repo := newTestMemoryRepository()

	t.Run("city exists", func(t *testing.T) {
		exists, err := repo.CityExists(ctx, 1)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.CityExists(ctx, 42)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("cities are sorted by name without children", func(t *testing.T) {
		cities, err := repo.GetCities(ctx, types.CityFilter{})
		require.NoError(t, err)
		require.Len(t, cities, 3)
		assert.Equal(t, []string{"Antwerp", "New York City", "Paris"},
			[]string{cities[0].Name, cities[1].Name, cities[2].Name})
		for _, c := range cities {
			assert.Nil(t, c.PointsOfInterest)
		}
	})

	t.Run("filters", func(t *testing.T) {
		cities, err := repo.GetCities(ctx, types.CityFilter{Name: "Paris"})
		require.NoError(t, err)
		require.Len(t, cities, 1)
		assert.Equal(t, 3, cities[0].ID)

		cities, err = repo.GetCities(ctx, types.CityFilter{SearchQuery: "CATHEDRAL"})
		require.NoError(t, err)
		require.Len(t, cities, 1)
		assert.Equal(t, "Antwerp", cities[0].Name)

		cities, err = repo.GetCities(ctx, types.CityFilter{Name: "Paris", SearchQuery: "park"})
		require.NoError(t, err)
		assert.Empty(t, cities)
	})

	t.Run("get city with and without children", func(t *testing.T) {
		city, err := repo.GetCity(ctx, 2, true)
		require.NoError(t, err)
		assert.Len(t, city.PointsOfInterest, 2)

		city, err = repo.GetCity(ctx, 2, false)
		require.NoError(t, err)
		assert.Nil(t, city.PointsOfInterest)

		_, err = repo.GetCity(ctx, 42, false)
		assert.ErrorIs(t, err, types.ErrCityNotFound)
	})

	t.Run("point of interest lookups", func(t *testing.T) {
		pois, err := repo.GetPointsOfInterestForCity(ctx, 3)
		require.NoError(t, err)
		require.Len(t, pois, 2)
		assert.Equal(t, "Eiffel Tower", pois[0].Name)

		poi, err := repo.GetPointOfInterest(ctx, 3, 6)
		require.NoError(t, err)
		assert.Equal(t, "The Louvre", poi.Name)

		_, err = repo.GetPointOfInterest(ctx, 1, 6)
		assert.ErrorIs(t, err, types.ErrPointOfInterestNotFound)
	})

	t.Run("returned values do not alias the store", func(t *testing.T) {
		city, err := repo.GetCity(ctx, 1, true)
		require.NoError(t, err)
		city.PointsOfInterest[0].Name = "changed"

		poi, err := repo.GetPointOfInterest(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "Central Park", poi.Name)
	})
}

func TestMemoryRepository_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("new ids are strictly increasing", func(t *testing.T) {
		repo := newTestMemoryRepository()
		last := 6
		for _, cityID := range []int{1, 2, 3, 1} {
			poi, err := repo.AddPointOfInterest(ctx, cityID, AddPointOfInterestCommand{Name: "n", Description: "d"})
			require.NoError(t, err)
			assert.Greater(t, poi.ID, last)
			last = poi.ID
		}
	})

	t.Run("concurrent adds never collide", func(t *testing.T) {
		repo := newTestMemoryRepository()
		const workers = 50

		var wg sync.WaitGroup
		ids := make(chan int, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				poi, err := repo.AddPointOfInterest(ctx, 1, AddPointOfInterestCommand{Name: "n"})
				if err == nil {
					ids <- poi.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})

	t.Run("add to missing city", func(t *testing.T) {
		repo := newTestMemoryRepository()
		_, err := repo.AddPointOfInterest(ctx, 42, AddPointOfInterestCommand{Name: "n"})
		assert.ErrorIs(t, err, types.ErrCityNotFound)
	})

	t.Run("update then read", func(t *testing.T) {
		repo := newTestMemoryRepository()
		err := repo.UpdatePointOfInterest(ctx, UpdatePointOfInterestCommand{
			CityID: 1, PointOfInterestID: 2, Name: "Empire State", Description: "Tall.",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx))

		poi, err := repo.GetPointOfInterest(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "Empire State", poi.Name)
		assert.Equal(t, "Tall.", poi.Description)

		err = repo.UpdatePointOfInterest(ctx, UpdatePointOfInterestCommand{CityID: 2, PointOfInterestID: 2, Name: "x"})
		assert.ErrorIs(t, err, types.ErrPointOfInterestNotFound)
	})

	t.Run("delete then read", func(t *testing.T) {
		repo := newTestMemoryRepository()
		require.NoError(t, repo.DeletePointOfInterest(ctx, DeletePointOfInterestCommand{CityID: 2, PointOfInterestID: 3}))

		_, err := repo.GetPointOfInterest(ctx, 2, 3)
		assert.ErrorIs(t, err, types.ErrPointOfInterestNotFound)

		pois, err := repo.GetPointsOfInterestForCity(ctx, 2)
		require.NoError(t, err)
		require.Len(t, pois, 1)
		assert.Equal(t, 4, pois[0].ID)

		err = repo.DeletePointOfInterest(ctx, DeletePointOfInterestCommand{CityID: 2, PointOfInterestID: 3})
		assert.ErrorIs(t, err, types.ErrPointOfInterestNotFound)
	})

	t.Run("deleted ids are not reused", func(t *testing.T) {
		repo := newTestMemoryRepository()
		require.NoError(t, repo.DeletePointOfInterest(ctx, DeletePointOfInterestCommand{CityID: 3, PointOfInterestID: 6}))

		poi, err := repo.AddPointOfInterest(ctx, 3, AddPointOfInterestCommand{Name: "Sacré-Cœur"})
		require.NoError(t, err)
		assert.Equal(t, 7, poi.ID)
	})

	t.Run("empty store starts at one", func(t *testing.T) {
		repo := NewMemoryRepository(slog.Default(), []models.City{models.NewCity(1, "Paris", "")})
		poi, err := repo.AddPointOfInterest(ctx, 1, AddPointOfInterestCommand{Name: "Eiffel Tower"})
		require.NoError(t, err)
		assert.Equal(t, 1, poi.ID)
	})
}
