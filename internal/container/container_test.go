package container

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-cityinfo-api/config"
	"github.com/FACorreiaa/go-cityinfo-api/internal/repository"
)

const memoryConfig = `
mode: test
server:
  httpPort: "8000"
  httpTimeout: 30s
  rateLimit: 10
  allowedOrigins: ["http://localhost:3000"]
store:
  driver: memory
cache:
  cityTTL: 1m
mail:
  driver: local
  mailTo: admin@mycompany.com
  mailFrom: noreply@mycompany.com
metrics:
  enabled: false
`

func TestNewContainer_MemoryStore(t *testing.T) {
	cfg, err := config.Load([]byte(memoryConfig))
	require.NoError(t, err)

	c, err := NewContainer(context.Background(), &cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Nil(t, c.Pool)
	assert.IsType(t, &repository.CachedRepository{}, c.Repository)
	assert.NotNil(t, c.CityHandler)
	assert.NotNil(t, c.POIHandler)

	exists, err := c.Repository.CityExists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	rc := c.RouterConfig()
	assert.Equal(t, 10, rc.RequestsPerMinute)
	assert.Equal(t, []string{"http://localhost:3000"}, rc.AllowedOrigins)
}

func TestNewContainer_WithoutCache(t *testing.T) {
	cfg, err := config.Load([]byte(memoryConfig))
	require.NoError(t, err)
	cfg.Cache.CityTTL = 0

	c, err := NewContainer(context.Background(), &cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.IsType(t, &repository.MemoryRepository{}, c.Repository)
}
