/**
 * @description
 * Domain models for incoming leads and newsletter activity.
 */
package domain

import (
	"time"

	"github.com/weblifystudio/quote-service/internal/quote"
)

// Lead sources.
const (
	LeadSourceContact      = "contact"
	LeadSourceQuoteRequest = "quote_request"
)

// Lead is a persisted visitor submission: either a plain contact message
// or a quote request. Quote requests snapshot the submitted configuration
// and the server-computed total; the quote itself is always recomputed,
// never read back as the source of truth.
type Lead struct {
	ID             string        `json:"id"`
	Source         string        `json:"source"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone,omitempty"`
	Company        string        `json:"company,omitempty"`
	Message        string        `json:"message,omitempty"`
	Configuration  *quote.Config `json:"configuration,omitempty"`
	QuotedTotal    *int64        `json:"quoted_total,omitempty"`
	CatalogVersion string        `json:"catalog_version,omitempty"`
	Read           bool          `json:"read"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewsletterEvent is an audit row for subscribe/unsubscribe actions.
type NewsletterEvent struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// Newsletter actions.
const (
	NewsletterActionSubscribe   = "subscribe"
	NewsletterActionUnsubscribe = "unsubscribe"
)
