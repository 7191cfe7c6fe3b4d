/**
 * @description
 * Data access layer for leads and the newsletter audit log.
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weblifystudio/quote-service/internal/domain"
	"github.com/weblifystudio/quote-service/internal/quote"
)

var ErrLeadNotFound = errors.New("lead not found")

// Repository handles database operations for the quote service.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the tables the service needs if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id              UUID PRIMARY KEY,
			source          TEXT NOT NULL,
			name            TEXT NOT NULL,
			email           TEXT NOT NULL,
			phone           TEXT NOT NULL DEFAULT '',
			company         TEXT NOT NULL DEFAULT '',
			message         TEXT NOT NULL DEFAULT '',
			configuration   JSONB,
			quoted_total    BIGINT,
			catalog_version TEXT NOT NULL DEFAULT '',
			read            BOOLEAN NOT NULL DEFAULT FALSE,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS newsletter_events (
			id         UUID PRIMARY KEY,
			email      TEXT NOT NULL,
			action     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// InsertLead persists a lead and returns it with its stored timestamp.
func (r *Repository) InsertLead(ctx context.Context, lead domain.Lead) (*domain.Lead, error) {
	// JSONB wants text, not bytea, under the simple query protocol.
	var configJSON *string
	if lead.Configuration != nil {
		b, err := json.Marshal(lead.Configuration)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal configuration snapshot: %w", err)
		}
		s := string(b)
		configJSON = &s
	}

	query := `
		INSERT INTO leads (id, source, name, email, phone, company, message,
		                   configuration, quoted_total, catalog_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		lead.ID,
		lead.Source,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Message,
		configJSON,
		lead.QuotedTotal,
		lead.CatalogVersion,
	).Scan(&lead.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

// ListLeads returns leads newest first, optionally only unread ones.
func (r *Repository) ListLeads(ctx context.Context, unreadOnly bool, limit int) ([]domain.Lead, error) {
	query := `
		SELECT id, source, name, email, phone, company, message,
		       configuration, quoted_total, catalog_version, read, created_at
		FROM leads
	`
	if unreadOnly {
		query += " WHERE read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT $1"

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// GetLeadByID fetches a single lead.
func (r *Repository) GetLeadByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `
		SELECT id, source, name, email, phone, company, message,
		       configuration, quoted_total, catalog_version, read, created_at
		FROM leads
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

// MarkLeadRead flips the read flag on a lead.
func (r *Repository) MarkLeadRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "UPDATE leads SET read = TRUE WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// CountUnreadLeads returns how many leads are still unread.
func (r *Repository) CountUnreadLeads(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM leads WHERE read = FALSE").Scan(&count)
	return count, err
}

// InsertNewsletterEvent appends a subscribe/unsubscribe audit row.
func (r *Repository) InsertNewsletterEvent(ctx context.Context, event domain.NewsletterEvent) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO newsletter_events (id, email, action) VALUES ($1, $2, $3)",
		event.ID, event.Email, event.Action,
	)
	return err
}

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var (
		lead       domain.Lead
		configJSON []byte
	)
	if err := row.Scan(
		&lead.ID,
		&lead.Source,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Message,
		&configJSON,
		&lead.QuotedTotal,
		&lead.CatalogVersion,
		&lead.Read,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(configJSON) > 0 {
		var cfg quote.Config
		if err := json.Unmarshal(configJSON, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal configuration snapshot: %w", err)
		}
		lead.Configuration = &cfg
	}

	return &lead, nil
}
