// Package source is the read-only client for the external news search
// endpoint.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"feedsync/internal/core/domain"
	"feedsync/internal/core/ports"
)

// pubDateLayout is the timestamp format the endpoint emits.
const pubDateLayout = "2006-01-02 15:04:05"

// Client fetches candidate articles for a search query.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

var _ ports.Source = (*Client)(nil)

// New builds a Client against the search endpoint at baseURL. A nil now
// defaults to time.Now.
func New(baseURL, apiKey string, timeout time.Duration, now func() time.Time) *Client {
	if now == nil {
		now = time.Now
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		now:     now,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Search issues the query and returns the raw response payload. Callers cache
// the payload before decoding it.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("source: parse url: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("q", query)
	q.Set("language", "en")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("source: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Decode maps a search payload into candidate articles. Publish dates that
// are missing or unparseable become the current time; the remote schema does
// not accept null timestamps.
func (c *Client) Decode(raw []byte) ([]domain.SourceArticle, error) {
	var body apiResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("source: decode payload: %w", err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("source: status %q", body.Status)
	}

	out := make([]domain.SourceArticle, 0, len(body.Results))
	for _, a := range body.Results {
		published := c.now().UTC()
		if a.PubDate != "" {
			if t, err := time.Parse(pubDateLayout, a.PubDate); err == nil {
				published = t.UTC()
			}
		}
		out = append(out, domain.SourceArticle{
			Title:       a.Title,
			Description: a.Description,
			Link:        a.Link,
			ImageURL:    a.ImageURL,
			SourceID:    a.SourceID,
			PublishedAt: published,
			Categories:  a.Category,
		})
	}
	return out, nil
}
