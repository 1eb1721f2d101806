package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Niiaks/pixcode/internal/brcode"
	"github.com/Niiaks/pixcode/internal/health"
	"github.com/Niiaks/pixcode/internal/middleware"
	"github.com/Niiaks/pixcode/internal/payee"
	"github.com/Niiaks/pixcode/internal/server"
)

type Handlers struct {
	BRCode *brcode.BRCodeHandler
	Payee  *payee.PayeeHandler
	Health *health.HealthHandler
}

func NewRouter(s *server.Server, h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	mw := middleware.NewMiddlewares(s)

	// Apply middleware in order
	r.Use(middleware.RequestID)
	r.Use(mw.Tracing.NewRelicMiddleware())
	r.Use(mw.Tracing.EnhanceTracing)
	r.Use(mw.ContextEnhancer.EnhanceContext)
	r.Use(mw.Global.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	if h.Health != nil {
		r.Get("/health", h.Health.Check)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit.Limit("api"))

		r.Post("/brcodes", h.BRCode.Generate)

		if h.Payee != nil {
			r.Route("/payees/{payeeID}", func(r chi.Router) {
				r.Get("/", h.Payee.GetPayee)
				r.Post("/brcodes", h.Payee.GenerateBRCode)
			})
		}
	})

	return r
}
