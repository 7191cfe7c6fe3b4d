/**
 * @description
 * This package provides a client for the mailing provider's HTTP API
 * (Brevo-compatible). It covers the two things the site needs from the
 * provider: newsletter list membership (add, remove, stats) and
 * transactional email (quote confirmations, admin compose).
 *
 * @notes
 * - A default HTTP client with a timeout prevents requests from hanging.
 * - API errors are returned with the status code and response body so
 *   failures are debuggable from logs alone.
 */
package mailerclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ListStats summarizes the newsletter list.
type ListStats struct {
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalBlacklisted int64 `json:"total_blacklisted"`
}

// Attachment is an optional file attached to a transactional email.
type Attachment struct {
	Name    string
	Content []byte
}

// Email is a transactional message.
type Email struct {
	ToEmail    string
	ToName     string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Client is a client for the mailing provider API.
type Client struct {
	baseURL    string
	apiKey     string
	listID     string
	fromName   string
	fromEmail  string
	httpClient *http.Client
}

// NewClient creates a new mailing provider client.
func NewClient(baseURL, apiKey, listID, fromName, fromEmail string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		listID:     listID,
		fromName:   fromName,
		fromEmail:  fromEmail,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// AddSubscriber adds an email address to the newsletter list. Adding an
// address that is already on the list is treated as success.
func (c *Client) AddSubscriber(ctx context.Context, email string) error {
	payload := map[string]interface{}{
		"email":         email,
		"listIds":       []string{c.listID},
		"updateEnabled": true,
	}

	resp, err := c.do(ctx, http.MethodPost, "/contacts", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 201 on create, 204 when the contact already existed and was updated.
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return c.errorFromResponse("add subscriber", resp)
	}
	return nil
}

// RemoveSubscriber removes an email address from the newsletter list.
func (c *Client) RemoveSubscriber(ctx context.Context, email string) error {
	path := "/contacts/" + url.PathEscape(email)
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// An address that was never subscribed is not an error worth surfacing
	// to the visitor.
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return c.errorFromResponse("remove subscriber", resp)
	}
	return nil
}

// GetListStats fetches subscriber counts for the configured list.
func (c *Client) GetListStats(ctx context.Context) (*ListStats, error) {
	resp, err := c.do(ctx, http.MethodGet, "/contacts/lists/"+url.PathEscape(c.listID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse("get list stats", resp)
	}

	var body struct {
		TotalSubscribers int64 `json:"totalSubscribers"`
		TotalBlacklisted int64 `json:"totalBlacklisted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode list stats response: %w", err)
	}

	return &ListStats{
		TotalSubscribers: body.TotalSubscribers,
		TotalBlacklisted: body.TotalBlacklisted,
	}, nil
}

// SendEmail sends a transactional email, optionally with an attachment.
func (c *Client) SendEmail(ctx context.Context, email Email) error {
	payload := map[string]interface{}{
		"sender":      map[string]string{"name": c.fromName, "email": c.fromEmail},
		"to":          []map[string]string{{"email": email.ToEmail, "name": email.ToName}},
		"subject":     email.Subject,
		"htmlContent": email.HTMLBody,
	}
	if email.Attachment != nil {
		payload["attachment"] = []map[string]string{{
			"name":    email.Attachment.Name,
			"content": base64.StdEncoding.EncodeToString(email.Attachment.Content),
		}}
	}

	resp, err := c.do(ctx, http.MethodPost, "/smtp/email", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.errorFromResponse("send email", resp)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to mailing provider: %w", err)
	}
	return resp, nil
}

func (c *Client) errorFromResponse(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return fmt.Errorf("mailing provider %s failed with status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
