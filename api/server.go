/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. httplog:    Structured request logging (ECS schema), when a logger is set
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CleanPath:  Collapse double slashes before routing
  5. Heartbeat:  GET /health for load balancers
  6. CORS:       Cross-origin requests from the calculator front-end

ROUTE GROUPS:
  /api/finiquito/*      Calculations, stored results, receipts
  /api/legal-constants  Active legal table
  /api/scenarios/*      Worked examples

SECURITY NOTE:
  No authentication. The calculator is public and stores no personal data
  beyond salary and dates, which expire.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	// RequestLogger enables httplog request logging when set.
	RequestLogger *slog.Logger
	LogLevel      slog.Level
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	if opts.RequestLogger != nil {
		r.Use(httplog.RequestLogger(opts.RequestLogger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/finiquito", func(r chi.Router) {
			r.Post("/", h.Calculate)
			r.Post("/validate", h.Validate)
			r.Get("/{id}", h.GetResult)
			r.Get("/{id}/pdf", h.GetResultPDF)
		})

		r.Get("/legal-constants", h.LegalConstants)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// NewLogger builds the JSON slog logger shared by the server and httplog.
func NewLogger(w io.Writer, level slog.Level, attrs ...any) *slog.Logger {
	format := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: format.ReplaceAttr,
	})).With(attrs...)
}
