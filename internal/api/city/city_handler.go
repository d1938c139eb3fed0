package city

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-cityinfo-api/internal/api"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

type HandlerImpl struct {
	logger  *slog.Logger
	service Service
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		logger:  logger,
		service: service,
	}
}

// GetCities godoc
// @Summary      List cities
// @Description  Lists cities without their points of interest, sorted by name.
// @Tags         Cities
// @Produce      json
// @Param        name         query string false "Exact city name"
// @Param        searchQuery  query string false "Case-insensitive text found in name or description"
// @Success      200 {array} types.CityWithoutPointsOfInterestDto
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /cities [get]
func (h *HandlerImpl) GetCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCities", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/cities"),
	))
	defer span.End()

	filter := types.CityFilter{
		Name:        r.URL.Query().Get("name"),
		SearchQuery: r.URL.Query().Get("searchQuery"),
	}

	cities, err := h.service.GetCities(ctx, filter)
	if err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, cities)
}

// GetCity godoc
// @Summary      Get a city
// @Description  Returns a city. Its points of interest are nested only when includePointsOfInterest is true.
// @Tags         Cities
// @Produce      json
// @Param        id                       path  int  true  "City ID"
// @Param        includePointsOfInterest  query bool false "Include the city's points of interest"
// @Success      200 {object} types.CityDto
// @Failure      400 {object} types.ValidationProblem
// @Failure      404 "City not found"
// @Router       /cities/{id} [get]
func (h *HandlerImpl) GetCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/cities/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetCity"))

	cityID, err := api.IntURLParam(r, "id")
	if err != nil {
		api.ValidationProblemResponse(w, r, api.FieldError("id", err.Error()))
		return
	}
	include, err := api.BoolQueryParam(r, "includePointsOfInterest", false)
	if err != nil {
		api.ValidationProblemResponse(w, r, api.FieldError("includePointsOfInterest", err.Error()))
		return
	}

	if include {
		city, err := h.service.GetCityWithPointsOfInterest(ctx, cityID)
		if err != nil {
			api.WriteServiceError(w, r, l, err)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, city)
		return
	}

	city, err := h.service.GetCity(ctx, cityID)
	if err != nil {
		api.WriteServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, city)
}
