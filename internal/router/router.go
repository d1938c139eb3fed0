package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/go-cityinfo-api/internal/api/city"
	"github.com/FACorreiaa/go-cityinfo-api/internal/api/poi"

	_ "github.com/FACorreiaa/go-cityinfo-api/docs"
)

// Config contains dependencies needed for the router setup
type Config struct {
	CityHandler    *city.HandlerImpl
	POIHandler     *poi.HandlerImpl
	AllowedOrigins []string
	// RequestsPerMinute limits each client IP. Zero disables the limit.
	RequestsPerMinute int
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) is applied by the
// caller before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestsPerMinute > 0 {
			r.Use(httprate.LimitByIP(cfg.RequestsPerMinute, time.Minute))
		}

		r.Route("/cities", func(r chi.Router) {
			r.Get("/", cfg.CityHandler.GetCities)
			r.Get("/{id}", cfg.CityHandler.GetCity)

			r.Route("/{cityId}/pointsofinterest", func(r chi.Router) {
				r.Get("/", cfg.POIHandler.GetPointsOfInterest)
				r.Post("/", cfg.POIHandler.CreatePointOfInterest)
				r.Get("/{id}", cfg.POIHandler.GetPointOfInterest)
				r.Put("/{id}", cfg.POIHandler.UpdatePointOfInterest)
				r.Patch("/{id}", cfg.POIHandler.PartiallyUpdatePointOfInterest)
				r.Delete("/{id}", cfg.POIHandler.DeletePointOfInterest)
			})
		})
	})

	return r
}
