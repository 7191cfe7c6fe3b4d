/**
 * @description
 * Core business logic for the quote service: authoritative quote
 * computation, lead capture, newsletter membership and admin email.
 *
 * The quote engine itself is pure; this service is the boundary where its
 * results meet persistence, the mailing provider, the PDF renderer and the
 * event broker. Quote computation succeeding is independent of whether the
 * confirmation email or event publish succeeds afterwards — those failures
 * are logged, never surfaced to the visitor.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/weblifystudio/quote-service/internal/domain"
	"github.com/weblifystudio/quote-service/internal/quote"
	"github.com/weblifystudio/quote-service/internal/store"
	"github.com/weblifystudio/quote-service/pkg/mailerclient"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrCatalogVersionMismatch = errors.New("catalog version mismatch")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// Repository defines the database operations the service needs.
type Repository interface {
	InsertLead(ctx context.Context, lead domain.Lead) (*domain.Lead, error)
	ListLeads(ctx context.Context, unreadOnly bool, limit int) ([]domain.Lead, error)
	GetLeadByID(ctx context.Context, id string) (*domain.Lead, error)
	MarkLeadRead(ctx context.Context, id string) error
	CountUnreadLeads(ctx context.Context) (int64, error)
	InsertNewsletterEvent(ctx context.Context, event domain.NewsletterEvent) error
}

// MailerClient defines the interface to the mailing provider.
type MailerClient interface {
	AddSubscriber(ctx context.Context, email string) error
	RemoveSubscriber(ctx context.Context, email string) error
	GetListStats(ctx context.Context) (*mailerclient.ListStats, error)
	SendEmail(ctx context.Context, email mailerclient.Email) error
}

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// PDFRenderer renders a quote document.
type PDFRenderer interface {
	RenderQuote(contactName, contactEmail string, result *quote.Result) ([]byte, error)
}

// Service provides the business logic for the quote backend.
type Service struct {
	repo              Repository
	mailer            MailerClient
	publisher         EventPublisher
	renderer          PDFRenderer
	adminEmail        string
	adminPasswordHash string
}

// NewService creates a new service.
func NewService(repo Repository, mailer MailerClient, publisher EventPublisher, renderer PDFRenderer, adminEmail, adminPasswordHash string) Service {
	return Service{
		repo:              repo,
		mailer:            mailer,
		publisher:         publisher,
		renderer:          renderer,
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: adminPasswordHash,
	}
}

// QuoteInput is the payload of a quote computation request. CatalogVersion
// is optional; when set, a stale client is rejected instead of repriced.
type QuoteInput struct {
	Tier             string   `json:"tier"`
	PageCount        int      `json:"page_count"`
	SelectedFeatures []string `json:"selected_features"`
	ExpressDelivery  bool     `json:"express_delivery"`
	CatalogVersion   string   `json:"catalog_version,omitempty"`
}

// ContactInput is a plain contact form submission.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// QuoteRequestInput combines a configuration with contact details.
type QuoteRequestInput struct {
	QuoteInput
	ContactInput
}

// QuoteRequestReceipt is returned to the visitor after a quote request.
type QuoteRequestReceipt struct {
	LeadID string        `json:"lead_id"`
	Quote  *quote.Result `json:"quote"`
}

// ComputeQuote validates the input and prices it against the active catalog.
func (s Service) ComputeQuote(ctx context.Context, input QuoteInput) (*quote.Result, error) {
	if input.PageCount < 1 {
		return nil, fmt.Errorf("%w: page_count must be at least 1", ErrInvalidInput)
	}
	if input.CatalogVersion != "" && input.CatalogVersion != quote.CatalogVersion {
		return nil, fmt.Errorf("%w: client has %s, server has %s",
			ErrCatalogVersionMismatch, input.CatalogVersion, quote.CatalogVersion)
	}

	return quote.ComputeQuote(quote.Config{
		Tier:             quote.Tier(input.Tier),
		PageCount:        input.PageCount,
		SelectedFeatures: input.SelectedFeatures,
		ExpressDelivery:  input.ExpressDelivery,
	})
}

// RenderQuotePDF computes a quote and renders it as a PDF document.
func (s Service) RenderQuotePDF(ctx context.Context, input QuoteInput, contactName, contactEmail string) ([]byte, error) {
	if contactName == "" || contactEmail == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	result, err := s.ComputeQuote(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderQuote(contactName, contactEmail, result)
}

// SubmitContact persists a plain contact lead.
func (s Service) SubmitContact(ctx context.Context, input ContactInput) (*domain.Lead, error) {
	if err := validateContact(input, true); err != nil {
		return nil, err
	}

	lead, err := s.repo.InsertLead(ctx, domain.Lead{
		ID:      uuid.NewString(),
		Source:  domain.LeadSourceContact,
		Name:    input.Name,
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   input.Phone,
		Company: input.Company,
		Message: input.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist contact lead: %w", err)
	}

	s.publishLeadCreated(ctx, lead)
	return lead, nil
}

// SubmitQuoteRequest computes the quote authoritatively, persists the lead
// with a snapshot of the configuration and total, and sends a best-effort
// confirmation email with the quote PDF attached.
func (s Service) SubmitQuoteRequest(ctx context.Context, input QuoteRequestInput) (*QuoteRequestReceipt, error) {
	if err := validateContact(input.ContactInput, false); err != nil {
		return nil, err
	}

	result, err := s.ComputeQuote(ctx, input.QuoteInput)
	if err != nil {
		return nil, err
	}

	total := result.TotalPrice
	snapshot := quote.Config{
		Tier:             result.Tier,
		PageCount:        input.PageCount,
		SelectedFeatures: input.SelectedFeatures,
		ExpressDelivery:  input.ExpressDelivery,
	}

	lead, err := s.repo.InsertLead(ctx, domain.Lead{
		ID:             uuid.NewString(),
		Source:         domain.LeadSourceQuoteRequest,
		Name:           input.Name,
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:          input.Phone,
		Company:        input.Company,
		Message:        input.Message,
		Configuration:  &snapshot,
		QuotedTotal:    &total,
		CatalogVersion: result.CatalogVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist quote request: %w", err)
	}

	s.publishLeadCreated(ctx, lead)
	s.sendQuoteConfirmation(ctx, lead, result)

	return &QuoteRequestReceipt{LeadID: lead.ID, Quote: result}, nil
}

// Subscribe adds an address to the newsletter list.
func (s Service) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	if err := s.mailer.AddSubscriber(ctx, email); err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", email, err)
	}

	s.recordNewsletterEvent(ctx, email, domain.NewsletterActionSubscribe, domain.RoutingKeyNewsletterSubscribed)
	return nil
}

// Unsubscribe removes an address from the newsletter list.
func (s Service) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	if err := s.mailer.RemoveSubscriber(ctx, email); err != nil {
		return fmt.Errorf("failed to unsubscribe %s: %w", email, err)
	}

	s.recordNewsletterEvent(ctx, email, domain.NewsletterActionUnsubscribe, domain.RoutingKeyNewsletterUnsubscribed)
	return nil
}

// NewsletterStats fetches subscriber counts from the mailing provider.
func (s Service) NewsletterStats(ctx context.Context) (*mailerclient.ListStats, error) {
	return s.mailer.GetListStats(ctx)
}

// ListLeads returns the lead inbox, newest first.
func (s Service) ListLeads(ctx context.Context, unreadOnly bool) ([]domain.Lead, error) {
	return s.repo.ListLeads(ctx, unreadOnly, 200)
}

// GetLead fetches a lead and marks it read.
func (s Service) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.repo.GetLeadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !lead.Read {
		if err := s.repo.MarkLeadRead(ctx, id); err != nil && !errors.Is(err, store.ErrLeadNotFound) {
			log.Printf("Error marking lead %s read: %v", id, err)
		} else {
			lead.Read = true
		}
	}
	return lead, nil
}

// MarkLeadRead flips the read flag without fetching the lead.
func (s Service) MarkLeadRead(ctx context.Context, id string) error {
	return s.repo.MarkLeadRead(ctx, id)
}

// AdminEmailInput is a composed message from the admin panel.
type AdminEmailInput struct {
	ToEmail string `json:"to_email"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendAdminEmail sends a composed email to a lead via the mailing provider.
func (s Service) SendAdminEmail(ctx context.Context, input AdminEmailInput) error {
	if !validEmail(input.ToEmail) {
		return fmt.Errorf("%w: a valid recipient email is required", ErrInvalidInput)
	}
	if input.Subject == "" || input.Body == "" {
		return fmt.Errorf("%w: subject and body are required", ErrInvalidInput)
	}

	return s.mailer.SendEmail(ctx, mailerclient.Email{
		ToEmail:  input.ToEmail,
		ToName:   input.ToName,
		Subject:  input.Subject,
		HTMLBody: input.Body,
	})
}

// Authenticate checks the admin credentials against the configured hash.
func (s Service) Authenticate(email, password string) error {
	if strings.ToLower(strings.TrimSpace(email)) != s.adminEmail {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// AdminEmail returns the configured admin identity.
func (s Service) AdminEmail() string {
	return s.adminEmail
}

func (s Service) publishLeadCreated(ctx context.Context, lead *domain.Lead) {
	event := domain.LeadCreatedEvent{
		LeadID:      lead.ID,
		Source:      lead.Source,
		Email:       lead.Email,
		QuotedTotal: lead.QuotedTotal,
		CreatedAt:   lead.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, domain.EventsExchange, domain.RoutingKeyLeadCreated, event); err != nil {
		log.Printf("Error publishing lead.created for lead %s: %v", lead.ID, err)
	}
}

func (s Service) sendQuoteConfirmation(ctx context.Context, lead *domain.Lead, result *quote.Result) {
	pdfBytes, err := s.renderer.RenderQuote(lead.Name, lead.Email, result)
	if err != nil {
		log.Printf("Error rendering quote PDF for lead %s: %v", lead.ID, err)
		pdfBytes = nil
	}

	email := mailerclient.Email{
		ToEmail:  lead.Email,
		ToName:   lead.Name,
		Subject:  fmt.Sprintf("Your quote — %s", result.TierDisplayName),
		HTMLBody: confirmationBody(lead.Name, result),
	}
	if pdfBytes != nil {
		email.Attachment = &mailerclient.Attachment{Name: "quote.pdf", Content: pdfBytes}
	}

	if err := s.mailer.SendEmail(ctx, email); err != nil {
		log.Printf("Error sending quote confirmation to %s for lead %s: %v", lead.Email, lead.ID, err)
	}
}

func confirmationBody(name string, result *quote.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p>", name)
	fmt.Fprintf(&b, "<p>Thank you for your request. Your estimated total is <strong>%d €</strong>.</p>", result.TotalPrice)
	if result.ExpressDelivery && result.ExpressDeliveryDays != nil {
		fmt.Fprintf(&b, "<p>Express delivery in approximately %d working days.</p>", *result.ExpressDeliveryDays)
	} else {
		fmt.Fprintf(&b, "<p>Delivery in approximately %d working days.</p>", result.EstimatedDeliveryDays)
	}
	b.WriteString("<p>The full breakdown is attached. We will get back to you within one business day.</p>")
	return b.String()
}

func (s Service) recordNewsletterEvent(ctx context.Context, email, action, routingKey string) {
	now := time.Now().UTC()
	event := domain.NewsletterEvent{
		ID:        uuid.NewString(),
		Email:     email,
		Action:    action,
		CreatedAt: now,
	}
	if err := s.repo.InsertNewsletterEvent(ctx, event); err != nil {
		log.Printf("Error recording newsletter %s for %s: %v", action, email, err)
	}

	payload := domain.NewsletterEventPayload{Email: email, Action: action, CreatedAt: now}
	if err := s.publisher.Publish(ctx, domain.EventsExchange, routingKey, payload); err != nil {
		log.Printf("Error publishing newsletter %s for %s: %v", action, email, err)
	}
}

func validateContact(input ContactInput, requireMessage bool) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !validEmail(input.Email) {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if requireMessage && strings.TrimSpace(input.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	return nil
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
