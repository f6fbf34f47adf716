package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"

	"github.com/kushtati/kushtati-immo/internal/http/advisor"
	"github.com/kushtati/kushtati-immo/internal/http/contact"
	"github.com/kushtati/kushtati-immo/internal/http/documents"
	"github.com/kushtati/kushtati-immo/internal/http/importcsv"
	"github.com/kushtati/kushtati-immo/internal/http/listings"
	"github.com/kushtati/kushtati-immo/internal/http/maintenance"
	authmw "github.com/kushtati/kushtati-immo/internal/http/middleware"
	"github.com/kushtati/kushtati-immo/internal/http/payments"
	"github.com/kushtati/kushtati-immo/internal/http/portfolio"
)

type Options struct {
	// JWTSecret enables bearer authentication on /api/v1 when set. Property
	// search and the contact form stay public.
	JWTSecret      string
	CORSOrigins    []string
	AdvisorLimiter *limiter.Limiter
}

func New(
	opts Options,
	paymentsV1 *payments.Handler,
	documentsV1 *documents.Handler,
	maintenanceV1 *maintenance.Handler,
	portfolioV1 *portfolio.Handler,
	advisorV1 *advisor.Handler,
	importV1 *importcsv.Handler,
	listingsV1 *listings.Handler,
	contactV1 *contact.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		auth := func(r chi.Router) {
			if opts.JWTSecret != "" {
				r.Use(authmw.Auth(opts.JWTSecret))
			}
		}

		r.Route("/properties", func(r chi.Router) {
			listingsV1.Routes(r)

			r.Group(func(r chi.Router) {
				auth(r)
				r.Use(middleware.AllowContentType("application/json"))
				listingsV1.OwnerRoutes(r)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			contactV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			auth(r)

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				paymentsV1.Routes(r)
			})

			r.Route("/documents", documentsV1.Routes)

			r.Route("/import", importV1.Routes)

			r.Route("/maintenance", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				maintenanceV1.Routes(r)
			})

			r.Route("/portfolio", portfolioV1.Routes)

			r.Route("/advisor", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))

				if opts.AdvisorLimiter != nil {
					r.Use(authmw.RateLimit(opts.AdvisorLimiter))
				}

				advisorV1.Routes(r)
			})
		})
	})

	return router
}
