package poi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-cityinfo-api/app/observability/metrics"
	"github.com/FACorreiaa/go-cityinfo-api/internal/api"
	"github.com/FACorreiaa/go-cityinfo-api/internal/mapper"
	"github.com/FACorreiaa/go-cityinfo-api/internal/notification"
	"github.com/FACorreiaa/go-cityinfo-api/internal/repository"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service handles the points of interest of a city. Every method checks that
// the city exists before looking at its points of interest and returns
// types.ErrCityNotFound otherwise.
type Service interface {
	GetPointsOfInterest(ctx context.Context, cityID int) ([]types.PointOfInterestDto, error)
	GetPointOfInterest(ctx context.Context, cityID, poiID int) (*types.PointOfInterestDto, error)
	// CreatePointOfInterest validates dto before checking the city.
	CreatePointOfInterest(ctx context.Context, cityID int, dto types.PointOfInterestForCreationDto) (*types.PointOfInterestDto, error)
	// UpdatePointOfInterest validates dto before checking the city.
	UpdatePointOfInterest(ctx context.Context, cityID, poiID int, dto types.PointOfInterestForUpdateDto) error
	// PartiallyUpdatePointOfInterest applies patch to the stored point of
	// interest and validates the result before persisting it.
	PartiallyUpdatePointOfInterest(ctx context.Context, cityID, poiID int, patch jsonpatch.Patch) error
	// DeletePointOfInterest removes the point of interest and sends a mail.
	// A failed mail does not fail the deletion.
	DeletePointOfInterest(ctx context.Context, cityID, poiID int) error
}

type ServiceImpl struct {
	logger  *slog.Logger
	repo    repository.Repository
	mailer  notification.MailService
	metrics *metrics.AppMetrics
}

func NewServiceImpl(repo repository.Repository, mailer notification.MailService, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		repo:    repo,
		mailer:  mailer,
		metrics: m,
	}
}

func (s *ServiceImpl) startSpan(ctx context.Context, name string, cityID int, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.Int("city.id", cityID))
	return otel.Tracer("PointOfInterestService").Start(ctx, name, trace.WithAttributes(attrs...))
}

// fail records err on the span and wraps it with action.
func (s *ServiceImpl) fail(ctx context.Context, l *slog.Logger, span trace.Span, action string, err error) error {
	var verr *types.ValidationError
	switch {
	case errors.Is(err, types.ErrNotFound):
		l.InfoContext(ctx, "Resource not found", slog.Any("error", err))
		span.SetStatus(codes.Ok, "not found")
	case errors.As(err, &verr):
		l.InfoContext(ctx, "Validation failed", slog.Any("error", err))
		span.SetStatus(codes.Ok, "validation failed")
	default:
		l.ErrorContext(ctx, "Failed to "+action, slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to "+action)
	}
	return fmt.Errorf("error trying to %s: %w", action, err)
}

func (s *ServiceImpl) ensureCity(ctx context.Context, cityID int) error {
	exists, err := s.repo.CityExists(ctx, cityID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("city %d: %w", cityID, types.ErrCityNotFound)
	}
	return nil
}

func (s *ServiceImpl) GetPointsOfInterest(ctx context.Context, cityID int) ([]types.PointOfInterestDto, error) {
	ctx, span := s.startSpan(ctx, "GetPointsOfInterest", cityID)
	defer span.End()
	l := s.logger.With(slog.String("method", "GetPointsOfInterest"), slog.Int("cityID", cityID))

	if err := s.ensureCity(ctx, cityID); err != nil {
		return nil, s.fail(ctx, l, span, "get points of interest", err)
	}

	pois, err := s.repo.GetPointsOfInterestForCity(ctx, cityID)
	if err != nil {
		return nil, s.fail(ctx, l, span, "get points of interest", err)
	}

	span.SetStatus(codes.Ok, "Points of interest fetched")
	return mapper.ToPointOfInterestDtos(pois), nil
}

func (s *ServiceImpl) GetPointOfInterest(ctx context.Context, cityID, poiID int) (*types.PointOfInterestDto, error) {
	ctx, span := s.startSpan(ctx, "GetPointOfInterest", cityID, attribute.Int("poi.id", poiID))
	defer span.End()
	l := s.logger.With(slog.String("method", "GetPointOfInterest"), slog.Int("cityID", cityID), slog.Int("poiID", poiID))

	if err := s.ensureCity(ctx, cityID); err != nil {
		return nil, s.fail(ctx, l, span, "get point of interest", err)
	}

	poi, err := s.repo.GetPointOfInterest(ctx, cityID, poiID)
	if err != nil {
		return nil, s.fail(ctx, l, span, "get point of interest", err)
	}

	dto := mapper.ToPointOfInterestDto(*poi)
	span.SetStatus(codes.Ok, "Point of interest fetched")
	return &dto, nil
}

func (s *ServiceImpl) CreatePointOfInterest(ctx context.Context, cityID int, dto types.PointOfInterestForCreationDto) (*types.PointOfInterestDto, error) {
	ctx, span := s.startSpan(ctx, "CreatePointOfInterest", cityID)
	defer span.End()
	l := s.logger.With(slog.String("method", "CreatePointOfInterest"), slog.Int("cityID", cityID))

	if err := api.Validate(dto); err != nil {
		return nil, s.fail(ctx, l, span, "create point of interest", err)
	}
	if err := s.ensureCity(ctx, cityID); err != nil {
		return nil, s.fail(ctx, l, span, "create point of interest", err)
	}

	poi, err := s.repo.AddPointOfInterest(ctx, cityID, mapper.ToAddPointOfInterestCommand(dto))
	if err != nil {
		return nil, s.fail(ctx, l, span, "create point of interest", err)
	}
	if err := s.repo.Save(ctx); err != nil {
		return nil, s.fail(ctx, l, span, "create point of interest", err)
	}

	s.metrics.PointsOfInterestCreated.Add(ctx, 1, metric.WithAttributes(attribute.Int("city.id", cityID)))
	l.InfoContext(ctx, "Point of interest created", slog.Int("poiID", poi.ID))
	span.SetStatus(codes.Ok, "Point of interest created")

	created := mapper.ToPointOfInterestDto(*poi)
	return &created, nil
}

func (s *ServiceImpl) UpdatePointOfInterest(ctx context.Context, cityID, poiID int, dto types.PointOfInterestForUpdateDto) error {
	ctx, span := s.startSpan(ctx, "UpdatePointOfInterest", cityID, attribute.Int("poi.id", poiID))
	defer span.End()
	l := s.logger.With(slog.String("method", "UpdatePointOfInterest"), slog.Int("cityID", cityID), slog.Int("poiID", poiID))

	if err := api.Validate(dto); err != nil {
		return s.fail(ctx, l, span, "update point of interest", err)
	}
	if err := s.ensureCity(ctx, cityID); err != nil {
		return s.fail(ctx, l, span, "update point of interest", err)
	}
	if _, err := s.repo.GetPointOfInterest(ctx, cityID, poiID); err != nil {
		return s.fail(ctx, l, span, "update point of interest", err)
	}

	if err := s.persistUpdate(ctx, cityID, poiID, dto); err != nil {
		return s.fail(ctx, l, span, "update point of interest", err)
	}

	l.InfoContext(ctx, "Point of interest updated")
	span.SetStatus(codes.Ok, "Point of interest updated")
	return nil
}

func (s *ServiceImpl) PartiallyUpdatePointOfInterest(ctx context.Context, cityID, poiID int, patch jsonpatch.Patch) error {
	ctx, span := s.startSpan(ctx, "PartiallyUpdatePointOfInterest", cityID,
		attribute.Int("poi.id", poiID),
		attribute.Int("patch.operations", len(patch)),
	)
	defer span.End()
	l := s.logger.With(slog.String("method", "PartiallyUpdatePointOfInterest"), slog.Int("cityID", cityID), slog.Int("poiID", poiID))

	if err := s.ensureCity(ctx, cityID); err != nil {
		return s.fail(ctx, l, span, "patch point of interest", err)
	}
	poi, err := s.repo.GetPointOfInterest(ctx, cityID, poiID)
	if err != nil {
		return s.fail(ctx, l, span, "patch point of interest", err)
	}

	patched, err := applyPatch(mapper.ToPointOfInterestForUpdateDto(*poi), patch)
	if err != nil {
		return s.fail(ctx, l, span, "patch point of interest", err)
	}
	if err := api.Validate(patched); err != nil {
		return s.fail(ctx, l, span, "patch point of interest", err)
	}

	if err := s.persistUpdate(ctx, cityID, poiID, patched); err != nil {
		return s.fail(ctx, l, span, "patch point of interest", err)
	}

	l.InfoContext(ctx, "Point of interest patched")
	span.SetStatus(codes.Ok, "Point of interest patched")
	return nil
}

func (s *ServiceImpl) persistUpdate(ctx context.Context, cityID, poiID int, dto types.PointOfInterestForUpdateDto) error {
	if err := s.repo.UpdatePointOfInterest(ctx, mapper.ToUpdatePointOfInterestCommand(cityID, poiID, dto)); err != nil {
		return err
	}
	return s.repo.Save(ctx)
}

func (s *ServiceImpl) DeletePointOfInterest(ctx context.Context, cityID, poiID int) error {
	ctx, span := s.startSpan(ctx, "DeletePointOfInterest", cityID, attribute.Int("poi.id", poiID))
	defer span.End()
	l := s.logger.With(slog.String("method", "DeletePointOfInterest"), slog.Int("cityID", cityID), slog.Int("poiID", poiID))

	if err := s.ensureCity(ctx, cityID); err != nil {
		return s.fail(ctx, l, span, "delete point of interest", err)
	}
	poi, err := s.repo.GetPointOfInterest(ctx, cityID, poiID)
	if err != nil {
		return s.fail(ctx, l, span, "delete point of interest", err)
	}

	cmd := repository.DeletePointOfInterestCommand{CityID: cityID, PointOfInterestID: poiID}
	if err := s.repo.DeletePointOfInterest(ctx, cmd); err != nil {
		return s.fail(ctx, l, span, "delete point of interest", err)
	}
	if err := s.repo.Save(ctx); err != nil {
		return s.fail(ctx, l, span, "delete point of interest", err)
	}
	s.metrics.PointsOfInterestDeleted.Add(ctx, 1, metric.WithAttributes(attribute.Int("city.id", cityID)))

	message := fmt.Sprintf("Point of interest %s with id %d was deleted.", poi.Name, poi.ID)
	if err := s.mailer.Send(ctx, "Point of interest deleted.", message); err != nil {
		l.WarnContext(ctx, "Failed to send deletion mail", slog.Any("error", err))
	}

	l.InfoContext(ctx, "Point of interest deleted")
	span.SetStatus(codes.Ok, "Point of interest deleted")
	return nil
}
