/**
 * @description
 * HTTP handlers for the quote service.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/weblifystudio/quote-service/internal/app"
	"github.com/weblifystudio/quote-service/internal/quote"
	"github.com/weblifystudio/quote-service/internal/session"
	"github.com/weblifystudio/quote-service/internal/store"
)

// Handler holds the application service and session store.
type Handler struct {
	service  app.Service
	sessions session.Store
}

// NewHandler creates a new Handler.
func NewHandler(service app.Service, sessions session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"catalog_version": quote.CatalogVersion,
		"tiers":           quote.Tiers(),
		"features":        quote.Features(),
	})
}

func (h *Handler) handleComputeQuote(w http.ResponseWriter, r *http.Request) {
	var input app.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ComputeQuote(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	var input struct {
		app.QuoteInput
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pdfBytes, err := h.service.RenderQuotePDF(r.Context(), input.QuoteInput, input.Name, input.Email)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quote.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

func (h *Handler) handleQuoteRequest(w http.ResponseWriter, r *http.Request) {
	var input app.QuoteRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := h.service.SubmitQuoteRequest(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var input app.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.service.SubmitContact(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"id": lead.ID})
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeEmailBody(w, r)
	if !ok {
		return
	}

	if err := h.service.Subscribe(r.Context(), email); err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "subscribed"})
}

func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeEmailBody(w, r)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(r.Context(), email); err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Authenticate(input.Email, input.Password); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	sess, err := h.sessions.Create(h.service.AdminEmail())
	if err != nil {
		log.Printf("Error creating admin session: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := bearerToken(r); ok {
		h.sessions.Invalidate(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListLeads(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	leads, err := h.service.ListLeads(r.Context(), unreadOnly)
	if err != nil {
		log.Printf("Error listing leads: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, leads)
}

func (h *Handler) handleGetLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.service.GetLead(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, lead)
}

func (h *Handler) handleMarkLeadRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.MarkLeadRead(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleNewsletterStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.NewsletterStats(r.Context())
	if err != nil {
		log.Printf("Error fetching newsletter stats: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var input app.AdminEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SendAdminEmail(r.Context(), input); err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// respondServiceError maps service errors onto HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var cfgErr *quote.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		http.Error(w, cfgErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, app.ErrCatalogVersionMismatch):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, app.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrLeadNotFound):
		http.Error(w, "Lead not found", http.StatusNotFound)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func decodeEmailBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return "", false
	}
	return input.Email, true
}

// respondWithJSON writes JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
