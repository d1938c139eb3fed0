package poi

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-cityinfo-api/internal/api"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

const (
	routeCollection = "/api/cities/{cityId}/pointsofinterest"
	routeItem       = "/api/cities/{cityId}/pointsofinterest/{id}"
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

func (h *HandlerImpl) startSpan(r *http.Request, name, route string) (*http.Request, trace.Span) {
	ctx, span := otel.Tracer("PointOfInterestHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	return r.WithContext(ctx), span
}

// cityAndPointOfInterestIDs reads both route ids, writing a 400 on failure.
func cityAndPointOfInterestIDs(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	cityID, ok := cityIDParam(w, r)
	if !ok {
		return 0, 0, false
	}
	poiID, err := api.IntURLParam(r, "id")
	if err != nil {
		api.ValidationProblemResponse(w, r, api.FieldError("id", err.Error()))
		return 0, 0, false
	}
	return cityID, poiID, true
}

func cityIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	cityID, err := api.IntURLParam(r, "cityId")
	if err != nil {
		api.ValidationProblemResponse(w, r, api.FieldError("cityId", err.Error()))
		return 0, false
	}
	return cityID, true
}

// GetPointsOfInterest godoc
// @Summary      List points of interest
// @Description  Lists the points of interest of a city.
// @Tags         PointsOfInterest
// @Produce      json
// @Param        cityId path int true "City ID"
// @Success      200 {array} types.PointOfInterestDto
// @Failure      404 "City not found"
// @Router       /cities/{cityId}/pointsofinterest [get]
func (h *HandlerImpl) GetPointsOfInterest(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GetPointsOfInterest", routeCollection)
	defer span.End()

	cityID, ok := cityIDParam(w, r)
	if !ok {
		return
	}

	pois, err := h.service.GetPointsOfInterest(r.Context(), cityID)
	if err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, pois)
}

// GetPointOfInterest godoc
// @Summary      Get a point of interest
// @Tags         PointsOfInterest
// @Produce      json
// @Param        cityId path int true "City ID"
// @Param        id     path int true "Point of interest ID"
// @Success      200 {object} types.PointOfInterestDto
// @Failure      404 "City or point of interest not found"
// @Router       /cities/{cityId}/pointsofinterest/{id} [get]
func (h *HandlerImpl) GetPointOfInterest(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GetPointOfInterest", routeItem)
	defer span.End()

	cityID, poiID, ok := cityAndPointOfInterestIDs(w, r)
	if !ok {
		return
	}

	poi, err := h.service.GetPointOfInterest(r.Context(), cityID, poiID)
	if err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, poi)
}

// CreatePointOfInterest godoc
// @Summary      Create a point of interest
// @Description  Adds a point of interest to a city. The Location header points at the new resource.
// @Tags         PointsOfInterest
// @Accept       json
// @Produce      json
// @Param        cityId path int true "City ID"
// @Param        poi    body types.PointOfInterestForCreationDto true "Point of interest"
// @Success      201 {object} types.PointOfInterestDto
// @Failure      400 {object} types.ValidationProblem
// @Failure      404 "City not found"
// @Router       /cities/{cityId}/pointsofinterest [post]
func (h *HandlerImpl) CreatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "CreatePointOfInterest", routeCollection)
	defer span.End()

	cityID, ok := cityIDParam(w, r)
	if !ok {
		return
	}

	var dto types.PointOfInterestForCreationDto
	if err := api.DecodeJSONBody(w, r, &dto); err != nil {
		api.ValidationProblemResponse(w, r, api.FieldError("body", err.Error()))
		return
	}

	created, err := h.service.CreatePointOfInterest(r.Context(), cityID, dto)
	if err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.Itoa(created.ID)))
	api.WriteJSONResponse(w, r, http.StatusCreated, created)
}

// UpdatePointOfInterest godoc
// @Summary      Replace a point of interest
// @Tags         PointsOfInterest
// @Accept       json
// @Param        cityId path int true "City ID"
// @Param        id     path int true "Point of interest ID"
// @Param        poi    body types.PointOfInterestForUpdateDto true "Point of interest"
// @Success      204
// @Failure      400 {object} types.ValidationProblem
// @Failure      404 "City or point of interest not found"
// @Router       /cities/{cityId}/pointsofinterest/{id} [put]
func (h *HandlerImpl) UpdatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "UpdatePointOfInterest", routeItem)
	defer span.End()

	cityID, poiID, ok := cityAndPointOfInterestIDs(w, r)
	if !ok {
		return
	}

	var dto types.PointOfInterestForUpdateDto
	if err := api.DecodeJSONBody(w, r, &dto); err != nil {
		api.ValidationProblemResponse(w, r, api.FieldError("body", err.Error()))
		return
	}

	if err := h.service.UpdatePointOfInterest(r.Context(), cityID, poiID, dto); err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// PartiallyUpdatePointOfInterest godoc
// @Summary      Patch a point of interest
// @Description  Applies a JSON Patch (RFC 6902) document, then validates the result.
// @Tags         PointsOfInterest
// @Accept       json-patch+json
// @Param        cityId path int true "City ID"
// @Param        id     path int true "Point of interest ID"
// @Param        patch  body []object true "JSON Patch operations"
// @Success      204
// @Failure      400 {object} types.ValidationProblem
// @Failure      404 "City or point of interest not found"
// @Router       /cities/{cityId}/pointsofinterest/{id} [patch]
func (h *HandlerImpl) PartiallyUpdatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "PartiallyUpdatePointOfInterest", routeItem)
	defer span.End()

	cityID, poiID, ok := cityAndPointOfInterestIDs(w, r)
	if !ok {
		return
	}

	body, err := api.ReadJSONBody(w, r)
	if err != nil {
		api.ValidationProblemResponse(w, r, api.FieldError(patchDocumentField, err.Error()))
		return
	}
	patch, err := DecodePatch(body)
	if err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}

	if err := h.service.PartiallyUpdatePointOfInterest(r.Context(), cityID, poiID, patch); err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// DeletePointOfInterest godoc
// @Summary      Delete a point of interest
// @Description  Deletes a point of interest and notifies the administrator by mail.
// @Tags         PointsOfInterest
// @Param        cityId path int true "City ID"
// @Param        id     path int true "Point of interest ID"
// @Success      204
// @Failure      404 "City or point of interest not found"
// @Router       /cities/{cityId}/pointsofinterest/{id} [delete]
func (h *HandlerImpl) DeletePointOfInterest(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "DeletePointOfInterest", routeItem)
	defer span.End()

	cityID, poiID, ok := cityAndPointOfInterestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePointOfInterest(r.Context(), cityID, poiID); err != nil {
		api.WriteServiceError(w, r, h.logger, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
