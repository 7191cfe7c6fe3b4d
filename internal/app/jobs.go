/**
 * @description
 * Scheduled maintenance jobs: admin session sweeping and a daily
 * newsletter/inbox digest log.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/weblifystudio/quote-service/internal/session"
)

// Jobs holds the dependencies for scheduled work.
type Jobs struct {
	sessions session.Store
	repo     Repository
	mailer   MailerClient
	logger   *slog.Logger
}

// NewJobs creates the job set.
func NewJobs(sessions session.Store, repo Repository, mailer MailerClient, logger *slog.Logger) *Jobs {
	return &Jobs{sessions: sessions, repo: repo, mailer: mailer, logger: logger}
}

// SweepSessions drops expired admin sessions from the store.
func (j *Jobs) SweepSessions() {
	removed := j.sessions.SweepExpired()
	if removed > 0 {
		j.logger.Info("swept expired admin sessions", "removed", removed)
	}
}

// RefreshStats logs the current newsletter and inbox figures. The numbers
// land in the log stream so the studio sees them without opening the panel.
func (j *Jobs) RefreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	unread, err := j.repo.CountUnreadLeads(ctx)
	if err != nil {
		j.logger.Error("failed to count unread leads", "error", err)
		return
	}

	stats, err := j.mailer.GetListStats(ctx)
	if err != nil {
		j.logger.Error("failed to fetch newsletter stats", "error", err)
		return
	}

	j.logger.Info("daily digest",
		"unread_leads", unread,
		"newsletter_subscribers", stats.TotalSubscribers,
		"newsletter_blacklisted", stats.TotalBlacklisted)
}
