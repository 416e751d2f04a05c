package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/handler"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/middleware"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger         *logger.Logger
	AllowedOrigins []string
	AuthHandler    *handler.AuthHandler
	TradeHandler   *handler.TradeHandler
	ModalHandler   *handler.ModalHandler
	HealthHandler  *handler.HealthHandler
	SessionGuard   func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no authentication required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/password/verify", cfg.AuthHandler.VerifyIdentity)
			r.Post("/auth/password/reset", cfg.AuthHandler.ResetPassword)
		}

		// Protected routes (require a live session and the admin role)
		if cfg.SessionGuard != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.SessionGuard)

				if cfg.AuthHandler != nil {
					r.Post("/auth/logout", cfg.AuthHandler.Logout)
				}

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)

					if cfg.TradeHandler != nil {
						r.Get("/admin/trades", cfg.TradeHandler.ListTrades)
						r.Get("/admin/trades/{id}", cfg.TradeHandler.GetTrade)
					}

					if cfg.ModalHandler != nil {
						r.Route("/admin/trade-modal", func(r chi.Router) {
							r.Get("/", cfg.ModalHandler.GetState)
							r.Post("/open", cfg.ModalHandler.Open)
							r.Post("/close", cfg.ModalHandler.Close)
							r.Post("/retry", cfg.ModalHandler.Retry)
						})
					}
				})
			})
		}
	})

	return r
}
