package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cleanbook/internal/api"
	"cleanbook/internal/audit"
	"cleanbook/internal/auth"
	"cleanbook/internal/booking"
	"cleanbook/internal/contact"
	"cleanbook/internal/quote"
	"cleanbook/internal/submission"
	"cleanbook/pkg/config"
)

type Dependencies struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Log      *zap.Logger
	Auth     *auth.Service
	Notifier submission.Notifier
}

func NewRouter(deps Dependencies) http.Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(api.CORSMiddleware(api.CORSOptions{
		AllowedOrigins: deps.Cfg.PublicAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Confirm-Delete"},
		MaxAgeSeconds:  600,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	bookingRepo := booking.NewRepository(deps.DB)
	quoteRepo := quote.NewRepository(deps.DB)
	contactRepo := contact.NewRepository(deps.DB)
	auditRepo := audit.NewRepository(deps.DB)

	adminEmail := deps.Cfg.Mail.AdminNotifyEmail
	bookingHandlers := booking.Handlers{Bookings: bookingRepo, Notifier: deps.Notifier, AdminEmail: adminEmail, Log: log}
	quoteHandlers := quote.Handlers{Quotes: quoteRepo, Amounts: quoteRepo, Notifier: deps.Notifier, AdminEmail: adminEmail, Log: log}
	contactHandlers := contact.Handlers{Messages: contactRepo, Notifier: deps.Notifier, AdminEmail: adminEmail, Log: log}
	authHandlers := auth.Handlers{Auth: deps.Auth, Log: log}

	limiter := api.NewIPRateLimiter(deps.Cfg.PublicRateLimitPerMinute, deps.Cfg.PublicRateLimitBurst)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/services", listServices)

		// Public forms
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware(log))

			r.Post("/bookings", bookingHandlers.Create)
			r.Post("/bookings/instant", bookingHandlers.CreateInstant)
			r.Post("/quotes", quoteHandlers.Create)
			r.Post("/contact", contactHandlers.Create)
		})

		// Admin console
		r.Route("/admin", func(r chi.Router) {
			r.With(limiter.Middleware(log)).Post("/login", authHandlers.Login)

			r.Group(func(r chi.Router) {
				r.Use(api.AdminAuth(deps.Auth))

				r.Post("/logout", authHandlers.Logout)
				r.Get("/me", authHandlers.Me)

				r.Route("/bookings", adminRoutes(submission.Handlers[booking.Booking]{
					Kind: submission.KindBooking, Store: bookingRepo, Audit: auditRepo, Log: log,
				}))
				r.Route("/quotes", func(r chi.Router) {
					adminRoutes(submission.Handlers[quote.Quote]{
						Kind: submission.KindQuote, Store: quoteRepo, Audit: auditRepo, Log: log,
					})(r)
					r.Put("/{id}/amount", quoteHandlers.SetAmount)
				})
				r.Route("/contact", adminRoutes(submission.Handlers[contact.Message]{
					Kind: submission.KindContact, Store: contactRepo, Audit: auditRepo, Log: log,
				}))
			})
		})
	})

	return r
}

func adminRoutes[T any](h submission.Handlers[T]) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/statuses", h.Statuses)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/audit", h.AuditTrail)
		r.Patch("/{id}/status", h.PatchStatus)
		r.Patch("/{id}/notes", h.PatchNotes)
		r.Delete("/{id}", h.Delete)
	}
}
