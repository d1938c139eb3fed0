package repository

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Repository = (*CachedRepository)(nil)

// CachedRepository remembers cities known to exist. Cities are never
// created or removed through the API, so a positive answer stays valid for
// the TTL. Misses are not cached.
type CachedRepository struct {
	Repository
	logger *slog.Logger
	cache  *cache.Cache
}

func NewCachedRepository(next Repository, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		Repository: next,
		logger:     logger,
		cache:      cache.New(ttl, 2*ttl),
	}
}

func cityKey(cityID int) string {
	return "city:" + strconv.Itoa(cityID)
}

func (r *CachedRepository) CityExists(ctx context.Context, cityID int) (bool, error) {
	key := cityKey(cityID)
	if _, found := r.cache.Get(key); found {
		r.logger.DebugContext(ctx, "City existence served from cache", slog.Int("cityID", cityID))
		return true, nil
	}

	exists, err := r.Repository.CityExists(ctx, cityID)
	if err != nil {
		return false, err
	}
	if exists {
		r.cache.Set(key, struct{}{}, cache.DefaultExpiration)
	}
	return exists, nil
}
