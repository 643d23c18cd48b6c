package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterOptions configures optional router behavior.
type RouterOptions struct {
	// AdminMiddleware guards the report routes; nil leaves them open.
	AdminMiddleware func(http.Handler) http.Handler
	// MetricsHandler, when non-nil, is mounted at /metrics.
	MetricsHandler http.Handler
}

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: handlers decode/encode JSON and
// delegate to the application services; this package wires routes/middleware.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoint is unauthenticated (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/categories", s.handleListCategories)
		r.Post("/signup/person", s.handleSignupPerson)
		r.Post("/signup/organization", s.handleSignupOrganization)

		r.Group(func(r chi.Router) {
			if opts.AdminMiddleware != nil {
				r.Use(opts.AdminMiddleware)
			}
			r.Get("/reports/debts", s.handleDebtsReport)
			r.Get("/reports/debts/export", s.handleDebtsReportExport)
			r.Get("/reports/missing", s.handleMissingReport)
		})
	})

	return r
}
