package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps collects the handlers the router mounts.
type RouterDeps struct {
	Calculator *CalculatorHandler
	AI         *AIHandler
	Lead       *LeadHandler
	Report     *ReportHandler
}

// NewRouter builds the API router. All endpoints sit behind the
// per-client rate limiter; CORS is open to the configured origins
// since the calculator UI is served separately.
func NewRouter(deps RouterDeps, limiter *RateLimiter, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post("/api/calculate", deps.Calculator.Calculate)
		r.Post("/api/value-estimate", deps.AI.EstimateValue)
		r.Post("/api/property-details", deps.AI.PropertyDetails)
		r.Post("/api/analysis", deps.AI.Analyze)
		r.Post("/api/lead", deps.Lead.Submit)
		r.Post("/api/report", deps.Report.Generate)
	})

	return r
}
