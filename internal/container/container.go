package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-cityinfo-api/app/db"
	"github.com/FACorreiaa/go-cityinfo-api/app/observability/metrics"
	"github.com/FACorreiaa/go-cityinfo-api/config"
	"github.com/FACorreiaa/go-cityinfo-api/internal/api/city"
	"github.com/FACorreiaa/go-cityinfo-api/internal/api/poi"
	"github.com/FACorreiaa/go-cityinfo-api/internal/notification"
	"github.com/FACorreiaa/go-cityinfo-api/internal/repository"
	"github.com/FACorreiaa/go-cityinfo-api/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	Pool        *pgxpool.Pool
	Metrics     *metrics.AppMetrics
	Repository  repository.Repository
	Mailer      notification.MailService
	CityHandler *city.HandlerImpl
	POIHandler  *poi.HandlerImpl

	closeMailer func() error
}

// NewContainer initializes and returns a new dependency container. With the
// postgres store it connects, waits for and migrates the database.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	appMetrics, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: appMetrics,
	}

	var store repository.Repository
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Info("Using in-memory store")
		store = repository.NewMemoryRepository(logger, repository.SeedCities())
	case config.StoreDriverPostgres:
		pool, err := c.initPostgres(ctx)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		store = repository.NewPostgresRepository(pool, logger, appMetrics)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if cfg.Cache.CityTTL > 0 {
		store = repository.NewCachedRepository(store, cfg.Cache.CityTTL, logger)
	}
	c.Repository = store

	mailer, closeMailer, err := notification.NewMailService(cfg, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create mail service: %w", err)
	}
	c.Mailer = mailer
	c.closeMailer = closeMailer

	cityService := city.NewServiceImpl(store, logger)
	c.CityHandler = city.NewHandlerImpl(cityService, logger)

	poiService := poi.NewServiceImpl(store, mailer, appMetrics, logger)
	c.POIHandler = poi.NewHandlerImpl(poiService, logger)

	return c, nil
}

func (c *Container) initPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if err != nil {
		c.Logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
		return nil, err
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Config.Repositories.Postgres.MaxConns, c.Logger)
	if err != nil {
		c.Logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	if !database.WaitForDB(ctx, pool, c.Logger) {
		pool.Close()
		return nil, errors.New("database is not reachable")
	}
	return pool, nil
}

// RouterConfig returns the router dependencies held by the container.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		CityHandler:       c.CityHandler,
		POIHandler:        c.POIHandler,
		AllowedOrigins:    c.Config.Server.AllowedOrigins,
		RequestsPerMinute: c.Config.Server.RateLimit,
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.closeMailer != nil {
		if err := c.closeMailer(); err != nil {
			c.Logger.Warn("Failed to close mail service", slog.Any("error", err))
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
