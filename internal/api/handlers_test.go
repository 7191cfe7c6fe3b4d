package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/weblifystudio/quote-service/internal/app"
	"github.com/weblifystudio/quote-service/internal/domain"
	"github.com/weblifystudio/quote-service/internal/quote"
	"github.com/weblifystudio/quote-service/internal/session"
	"github.com/weblifystudio/quote-service/internal/store"
	"github.com/weblifystudio/quote-service/pkg/mailerclient"
)

type apiRepoStub struct {
	leads []domain.Lead
}

func (r *apiRepoStub) InsertLead(ctx context.Context, lead domain.Lead) (*domain.Lead, error) {
	lead.CreatedAt = time.Now().UTC()
	r.leads = append(r.leads, lead)
	return &lead, nil
}

func (r *apiRepoStub) ListLeads(ctx context.Context, unreadOnly bool, limit int) ([]domain.Lead, error) {
	return r.leads, nil
}

func (r *apiRepoStub) GetLeadByID(ctx context.Context, id string) (*domain.Lead, error) {
	for i := range r.leads {
		if r.leads[i].ID == id {
			return &r.leads[i], nil
		}
	}
	return nil, store.ErrLeadNotFound
}

func (r *apiRepoStub) MarkLeadRead(ctx context.Context, id string) error { return nil }

func (r *apiRepoStub) CountUnreadLeads(ctx context.Context) (int64, error) { return 0, nil }

func (r *apiRepoStub) InsertNewsletterEvent(ctx context.Context, event domain.NewsletterEvent) error {
	return nil
}

type apiRendererStub struct{}

func (apiRendererStub) RenderQuote(contactName, contactEmail string, result *quote.Result) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newTestRouter(t *testing.T) (http.Handler, session.Store) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	service := app.NewService(&apiRepoStub{}, mailerclient.Fallback{}, &noopPublisher{},
		apiRendererStub{}, "admin@weblify.studio", string(hash))
	sessions := session.NewMemoryStore(time.Hour)
	handler := NewHandler(service, sessions)
	return NewRouter(handler, sessions), sessions
}

type noopPublisher struct{}

func (*noopPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	return nil
}

func postJSON(t *testing.T, router http.Handler, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestComputeQuoteEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/quotes", map[string]interface{}{
		"tier":              "showcase",
		"page_count":        10,
		"selected_features": []string{"seo-advanced"},
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result quote.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.TotalPrice != 1069 {
		t.Fatalf("expected total 1069, got %d", result.TotalPrice)
	}
}

func TestComputeQuoteEndpoint_UnknownFeatureIs422(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/quotes", map[string]interface{}{
		"tier":              "showcase",
		"page_count":        8,
		"selected_features": []string{"hologram"},
	}, nil)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown feature, got %d", rec.Code)
	}
}

func TestComputeQuoteEndpoint_StaleCatalogIs409(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/quotes", map[string]interface{}{
		"tier":            "showcase",
		"page_count":      8,
		"catalog_version": "2024-01",
	}, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for stale catalog version, got %d", rec.Code)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		CatalogVersion string           `json:"catalog_version"`
		Tiers          []quote.TierInfo `json:"tiers"`
		Features       []quote.Feature  `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.CatalogVersion != quote.CatalogVersion {
		t.Fatalf("expected catalog version %s, got %s", quote.CatalogVersion, body.CatalogVersion)
	}
	if len(body.Tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(body.Tiers))
	}
	if len(body.Features) == 0 {
		t.Fatal("expected features in the catalog")
	}
}

func TestAdminLoginAndLeadAccess(t *testing.T) {
	router, _ := newTestRouter(t)

	// Wrong password is rejected.
	rec := postJSON(t, router, "/admin/login", map[string]string{
		"email":    "admin@weblify.studio",
		"password": "wrong",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	// Leads are gated without a session.
	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	recLeads := httptest.NewRecorder()
	router.ServeHTTP(recLeads, req)
	if recLeads.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", recLeads.Code)
	}

	// Valid login yields a usable token.
	rec = postJSON(t, router, "/admin/login", map[string]string{
		"email":    "admin@weblify.studio",
		"password": "hunter2",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", rec.Code, rec.Body.String())
	}

	var sess session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if sess.Token == "" {
		t.Fatal("expected a session token")
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	recLeads = httptest.NewRecorder()
	router.ServeHTTP(recLeads, req)
	if recLeads.Code != http.StatusOK {
		t.Fatalf("expected 200 with a session, got %d", recLeads.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	router, sessions := newTestRouter(t)

	sess, err := sessions.Create("admin@weblify.studio")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	headers := map[string]string{"Authorization": "Bearer " + sess.Token}

	rec := postJSON(t, router, "/admin/logout", map[string]string{}, headers)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on logout, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	recAfter := httptest.NewRecorder()
	router.ServeHTTP(recAfter, req)
	if recAfter.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", recAfter.Code)
	}
}

func TestQuoteRequestEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/quote-requests", map[string]interface{}{
		"tier":              "showcase",
		"page_count":        10,
		"selected_features": []string{"seo-advanced"},
		"express_delivery":  true,
		"name":              "Ada",
		"email":             "ada@example.com",
	}, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var receipt app.QuoteRequestReceipt
	if err := json.Unmarshal(rec.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("failed to decode receipt: %v", err)
	}
	if receipt.LeadID == "" {
		t.Fatal("expected a lead id")
	}
	if receipt.Quote.TotalPrice != 1390 {
		t.Fatalf("expected express total 1390, got %d", receipt.Quote.TotalPrice)
	}
}

func TestQuotePDFEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/quotes/pdf", map[string]interface{}{
		"tier":       "showcase",
		"page_count": 8,
		"name":       "Ada",
		"email":      "ada@example.com",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected a PDF body")
	}
}
