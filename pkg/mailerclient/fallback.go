/**
 * @description
 * Log-only mailer used when no provider API key is configured, so local
 * development works without a mailing account.
 */
package mailerclient

import (
	"context"
	"log"
)

// Fallback implements the mailer operations as log statements.
type Fallback struct{}

func (Fallback) AddSubscriber(ctx context.Context, email string) error {
	log.Printf("[MAILER-FALLBACK] Would subscribe %s", email)
	return nil
}

func (Fallback) RemoveSubscriber(ctx context.Context, email string) error {
	log.Printf("[MAILER-FALLBACK] Would unsubscribe %s", email)
	return nil
}

func (Fallback) GetListStats(ctx context.Context) (*ListStats, error) {
	return &ListStats{}, nil
}

func (Fallback) SendEmail(ctx context.Context, email Email) error {
	log.Printf("[MAILER-FALLBACK] Would send %q to %s (attachment: %v)",
		email.Subject, email.ToEmail, email.Attachment != nil)
	return nil
}
