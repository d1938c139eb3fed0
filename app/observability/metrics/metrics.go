package metrics

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "cityinfo-api"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal          metric.Int64Counter
	HTTPRequestDurationSeconds metric.Float64Histogram
	PointsOfInterestCreated    metric.Int64Counter
	PointsOfInterestDeleted    metric.Int64Counter
	DbQueryDurationSeconds     metric.Float64Histogram
	DbQueryErrorsTotal         metric.Int64Counter
}

// New creates the instruments on the global MeterProvider. Without a
// configured provider the instruments are no-ops, which is what tests use.
func New() (*AppMetrics, error) {
	return NewWithMeter(otel.GetMeterProvider().Meter(meterName))
}

func NewWithMeter(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests completed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create http_requests_total: %w", err)
	}

	m.HTTPRequestDurationSeconds, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create http_request_duration_seconds: %w", err)
	}

	m.PointsOfInterestCreated, err = meter.Int64Counter(
		"points_of_interest_created_total",
		metric.WithDescription("Total number of points of interest created"),
		metric.WithUnit("{poi}"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create points_of_interest_created_total: %w", err)
	}

	m.PointsOfInterestDeleted, err = meter.Int64Counter(
		"points_of_interest_deleted_total",
		metric.WithDescription("Total number of points of interest deleted"),
		metric.WithUnit("{poi}"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create points_of_interest_deleted_total: %w", err)
	}

	m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create db_query_duration_seconds: %w", err)
	}

	m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create db_query_errors_total: %w", err)
	}

	return m, nil
}
