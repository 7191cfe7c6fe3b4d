/**
 * @description
 * Event payloads published to the message broker.
 */
package domain

import "time"

// Exchange and routing keys for published events.
const (
	EventsExchange = "weblify.events"

	RoutingKeyLeadCreated            = "lead.created"
	RoutingKeyNewsletterSubscribed   = "newsletter.subscribed"
	RoutingKeyNewsletterUnsubscribed = "newsletter.unsubscribed"
)

// LeadCreatedEvent notifies downstream consumers of a new lead.
type LeadCreatedEvent struct {
	LeadID      string    `json:"lead_id"`
	Source      string    `json:"source"`
	Email       string    `json:"email"`
	QuotedTotal *int64    `json:"quoted_total,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewsletterEventPayload notifies consumers of list membership changes.
type NewsletterEventPayload struct {
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
