package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-cityinfo-api/app/observability/metrics"
	"github.com/FACorreiaa/go-cityinfo-api/internal/models"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

const pgForeignKeyViolation = "23503"

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	logger  *slog.Logger
	db      DB
	metrics *metrics.AppMetrics
}

// NewPostgresRepository creates a repository backed by PostgreSQL. m may be nil.
func NewPostgresRepository(db DB, logger *slog.Logger, m *metrics.AppMetrics) *PostgresRepository {
	return &PostgresRepository{
		logger:  logger,
		db:      db,
		metrics: m,
	}
}

func (r *PostgresRepository) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, semconv.DBSystemPostgreSQL)
	return otel.Tracer("CityInfoRepository").Start(ctx, name, trace.WithAttributes(attrs...))
}

// observe records the query duration and marks the span.
func (r *PostgresRepository) observe(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	if r.metrics != nil {
		opAttr := metric.WithAttributes(attribute.String("db.operation", operation))
		r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), opAttr)
		if err != nil && !errors.Is(err, types.ErrNotFound) {
			r.metrics.DbQueryErrorsTotal.Add(ctx, 1, opAttr)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, operation+" failed")
		return
	}
	span.SetStatus(codes.Ok, "")
}

func (r *PostgresRepository) CityExists(ctx context.Context, cityID int) (exists bool, err error) {
	ctx, span := r.startSpan(ctx, "CityExists", attribute.Int("city.id", cityID))
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "CityExists", start, err) }(time.Now())

	query := `SELECT EXISTS(SELECT 1 FROM cities WHERE id = $1)`
	if err = r.db.QueryRow(ctx, query, cityID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check city existence", slog.Int("cityID", cityID), slog.Any("error", err))
		return false, fmt.Errorf("failed to check city %d exists: %w", cityID, err)
	}
	return exists, nil
}

func (r *PostgresRepository) GetCities(ctx context.Context, filter types.CityFilter) (cities []models.City, err error) {
	ctx, span := r.startSpan(ctx, "GetCities",
		attribute.String("filter.name", filter.Name),
		attribute.String("filter.search_query", filter.SearchQuery),
	)
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "GetCities", start, err) }(time.Now())

	var (
		conditions []string
		args       []any
		argID      = 1
	)
	if name := strings.TrimSpace(filter.Name); name != "" {
		conditions = append(conditions, fmt.Sprintf("name = $%d", argID))
		args = append(args, name)
		argID++
	}
	if q := strings.TrimSpace(filter.SearchQuery); q != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argID, argID))
		args = append(args, "%"+q+"%")
	}

	query := `SELECT id, name, description, created_at, updated_at FROM cities`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query cities", slog.Any("error", err))
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities = []models.City{}
	for rows.Next() {
		var c models.City
		if err = rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	r.logger.DebugContext(ctx, "Fetched cities", slog.Int("count", len(cities)))
	return cities, nil
}

func (r *PostgresRepository) GetCity(ctx context.Context, cityID int, includePointsOfInterest bool) (city *models.City, err error) {
	ctx, span := r.startSpan(ctx, "GetCity",
		attribute.Int("city.id", cityID),
		attribute.Bool("include_points_of_interest", includePointsOfInterest),
	)
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "GetCity", start, err) }(time.Now())

	query := `SELECT id, name, description, created_at, updated_at FROM cities WHERE id = $1`
	var c models.City
	err = r.db.QueryRow(ctx, query, cityID).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("city %d: %w", cityID, types.ErrCityNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to fetch city", slog.Int("cityID", cityID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch city %d: %w", cityID, err)
	}

	if includePointsOfInterest {
		c.PointsOfInterest, err = r.queryPointsOfInterest(ctx, cityID)
		if err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *PostgresRepository) GetPointsOfInterestForCity(ctx context.Context, cityID int) (pois []models.PointOfInterest, err error) {
	ctx, span := r.startSpan(ctx, "GetPointsOfInterestForCity", attribute.Int("city.id", cityID))
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "GetPointsOfInterestForCity", start, err) }(time.Now())

	return r.queryPointsOfInterest(ctx, cityID)
}

func (r *PostgresRepository) queryPointsOfInterest(ctx context.Context, cityID int) ([]models.PointOfInterest, error) {
	query := `
		SELECT id, city_id, name, description, created_at, updated_at
		FROM points_of_interest
		WHERE city_id = $1
		ORDER BY id`
	rows, err := r.db.Query(ctx, query, cityID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query points of interest", slog.Int("cityID", cityID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to query points of interest for city %d: %w", cityID, err)
	}
	defer rows.Close()

	pois := []models.PointOfInterest{}
	for rows.Next() {
		var p models.PointOfInterest
		if err := rows.Scan(&p.ID, &p.CityID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan point of interest row: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point of interest rows: %w", err)
	}
	return pois, nil
}

func (r *PostgresRepository) GetPointOfInterest(ctx context.Context, cityID, poiID int) (poi *models.PointOfInterest, err error) {
	ctx, span := r.startSpan(ctx, "GetPointOfInterest",
		attribute.Int("city.id", cityID),
		attribute.Int("poi.id", poiID),
	)
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "GetPointOfInterest", start, err) }(time.Now())

	query := `
		SELECT id, city_id, name, description, created_at, updated_at
		FROM points_of_interest
		WHERE city_id = $1 AND id = $2`
	var p models.PointOfInterest
	err = r.db.QueryRow(ctx, query, cityID, poiID).Scan(&p.ID, &p.CityID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("point of interest %d in city %d: %w", poiID, cityID, types.ErrPointOfInterestNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to fetch point of interest",
			slog.Int("cityID", cityID), slog.Int("poiID", poiID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch point of interest %d: %w", poiID, err)
	}
	return &p, nil
}

func (r *PostgresRepository) AddPointOfInterest(ctx context.Context, cityID int, cmd AddPointOfInterestCommand) (poi *models.PointOfInterest, err error) {
	ctx, span := r.startSpan(ctx, "AddPointOfInterest", attribute.Int("city.id", cityID))
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "AddPointOfInterest", start, err) }(time.Now())

	query := `
		INSERT INTO points_of_interest (city_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, city_id, name, description, created_at, updated_at`
	var p models.PointOfInterest
	err = r.db.QueryRow(ctx, query, cityID, cmd.Name, cmd.Description).
		Scan(&p.ID, &p.CityID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, fmt.Errorf("city %d: %w", cityID, types.ErrCityNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to insert point of interest", slog.Int("cityID", cityID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert point of interest: %w", err)
	}

	r.logger.InfoContext(ctx, "Point of interest inserted", slog.Int("cityID", cityID), slog.Int("poiID", p.ID))
	return &p, nil
}

func (r *PostgresRepository) UpdatePointOfInterest(ctx context.Context, cmd UpdatePointOfInterestCommand) (err error) {
	ctx, span := r.startSpan(ctx, "UpdatePointOfInterest",
		attribute.Int("city.id", cmd.CityID),
		attribute.Int("poi.id", cmd.PointOfInterestID),
	)
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "UpdatePointOfInterest", start, err) }(time.Now())

	query := `
		UPDATE points_of_interest
		SET name = $1, description = $2, updated_at = NOW()
		WHERE city_id = $3 AND id = $4`
	tag, err := r.db.Exec(ctx, query, cmd.Name, cmd.Description, cmd.CityID, cmd.PointOfInterestID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update point of interest",
			slog.Int("poiID", cmd.PointOfInterestID), slog.Any("error", err))
		return fmt.Errorf("failed to update point of interest %d: %w", cmd.PointOfInterestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("point of interest %d in city %d: %w", cmd.PointOfInterestID, cmd.CityID, types.ErrPointOfInterestNotFound)
	}
	return nil
}

func (r *PostgresRepository) DeletePointOfInterest(ctx context.Context, cmd DeletePointOfInterestCommand) (err error) {
	ctx, span := r.startSpan(ctx, "DeletePointOfInterest",
		attribute.Int("city.id", cmd.CityID),
		attribute.Int("poi.id", cmd.PointOfInterestID),
	)
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, span, "DeletePointOfInterest", start, err) }(time.Now())

	query := `DELETE FROM points_of_interest WHERE city_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, cmd.CityID, cmd.PointOfInterestID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete point of interest",
			slog.Int("poiID", cmd.PointOfInterestID), slog.Any("error", err))
		return fmt.Errorf("failed to delete point of interest %d: %w", cmd.PointOfInterestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("point of interest %d in city %d: %w", cmd.PointOfInterestID, cmd.CityID, types.ErrPointOfInterestNotFound)
	}
	return nil
}

func (r *PostgresRepository) Save(context.Context) error {
	return nil
}
