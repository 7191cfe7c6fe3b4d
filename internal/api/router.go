/**
 * @description
 * HTTP router setup for the quote service using go-chi/chi.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/weblifystudio/quote-service/internal/session"
)

// NewRouter creates a new Chi router and registers all routes.
func NewRouter(h *Handler, sessions session.Store) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Quote service is healthy"))
	})

	r.Get("/catalog", h.handleGetCatalog)
	r.Post("/quotes", h.handleComputeQuote)
	r.Post("/quotes/pdf", h.handleQuotePDF)
	r.Post("/quote-requests", h.handleQuoteRequest)
	r.Post("/contact", h.handleContact)
	r.Post("/newsletter/subscribe", h.handleSubscribe)
	r.Post("/newsletter/unsubscribe", h.handleUnsubscribe)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(SessionAuthMiddleware(sessions))
			r.Post("/logout", h.handleLogout)
			r.Get("/leads", h.handleListLeads)
			r.Get("/leads/{id}", h.handleGetLead)
			r.Post("/leads/{id}/read", h.handleMarkLeadRead)
			r.Get("/newsletter/stats", h.handleNewsletterStats)
			r.Post("/emails", h.handleSendEmail)
		})
	})

	return r
}
