package city

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-cityinfo-api/internal/mapper"
	"github.com/FACorreiaa/go-cityinfo-api/internal/models"
	"github.com/FACorreiaa/go-cityinfo-api/internal/repository"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetCities(ctx context.Context, filter types.CityFilter) ([]types.CityWithoutPointsOfInterestDto, error)
	// GetCity returns types.ErrCityNotFound when the city does not exist.
	GetCity(ctx context.Context, cityID int) (*types.CityWithoutPointsOfInterestDto, error)
	GetCityWithPointsOfInterest(ctx context.Context, cityID int) (*types.CityDto, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   repository.Repository
}

func NewServiceImpl(repo repository.Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) GetCities(ctx context.Context, filter types.CityFilter) ([]types.CityWithoutPointsOfInterestDto, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "GetCities", trace.WithAttributes(
		attribute.String("filter.name", filter.Name),
		attribute.String("filter.search_query", filter.SearchQuery),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetCities"))
	l.DebugContext(ctx, "Fetching cities")

	cities, err := s.repo.GetCities(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch cities")
		return nil, fmt.Errorf("error fetching cities: %w", err)
	}

	span.SetStatus(codes.Ok, "Cities fetched")
	return mapper.ToCityWithoutPointsOfInterestDtos(cities), nil
}

func (s *ServiceImpl) GetCity(ctx context.Context, cityID int) (*types.CityWithoutPointsOfInterestDto, error) {
	city, err := s.getCity(ctx, cityID, false)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCityWithoutPointsOfInterestDto(*city)
	return &dto, nil
}

func (s *ServiceImpl) GetCityWithPointsOfInterest(ctx context.Context, cityID int) (*types.CityDto, error) {
	city, err := s.getCity(ctx, cityID, true)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCityDto(*city)
	return &dto, nil
}

func (s *ServiceImpl) getCity(ctx context.Context, cityID int, includePointsOfInterest bool) (*models.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "GetCity", trace.WithAttributes(
		attribute.Int("city.id", cityID),
		attribute.Bool("include_points_of_interest", includePointsOfInterest),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetCity"), slog.Int("cityID", cityID))

	city, err := s.repo.GetCity(ctx, cityID, includePointsOfInterest)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.InfoContext(ctx, "City not found")
			span.SetStatus(codes.Ok, "City not found")
		} else {
			l.ErrorContext(ctx, "Failed to fetch city", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to fetch city")
		}
		return nil, fmt.Errorf("error fetching city: %w", err)
	}

	span.SetStatus(codes.Ok, "City fetched")
	return city, nil
}
