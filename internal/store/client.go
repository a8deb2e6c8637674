// Package store is a typed client for the remote REST data store. The store
// speaks a PostgREST-style dialect: resource collections addressed by path,
// operator-prefixed filter query parameters, and Prefer headers controlling
// write behavior. The client never retries; recovery is the caller's call.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	preferRepresentation = "return=representation"
	preferUpsert         = "return=representation,resolution=merge-duplicates"
)

// Client issues authenticated requests against one remote store deployment.
// The same credential rides in both auth headers, as the store expects.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// New builds a Client for the store at baseURL. A zero timeout leaves the
// transport default in place.
func New(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
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

// Fetch returns rows from collection matching the filters.
func Fetch[T any](ctx context.Context, c *Client, collection string, f Filters) ([]T, error) {
	return roundTrip[T](ctx, c, http.MethodGet, collection, nil, f, "")
}

// Insert writes one record or a batch and returns the inserted rows. A batch
// either fully succeeds or fails as reported by the store; no partial-success
// handling happens client-side.
func Insert[T any](ctx context.Context, c *Client, collection string, records any) ([]T, error) {
	return roundTrip[T](ctx, c, http.MethodPost, collection, records, nil, preferRepresentation)
}

// Upsert inserts records, merging with existing rows on the conflict column.
func Upsert[T any](ctx context.Context, c *Client, collection, conflictColumn string, records any) ([]T, error) {
	return roundTrip[T](ctx, c, http.MethodPost, collection, records, Filters{OnConflict(conflictColumn)}, preferUpsert)
}

// Patch updates rows matching the filters and returns them.
func Patch[T any](ctx context.Context, c *Client, collection string, body any, f Filters) ([]T, error) {
	return roundTrip[T](ctx, c, http.MethodPatch, collection, body, f, preferRepresentation)
}

// Remove deletes rows matching the filters and returns them.
func Remove[T any](ctx context.Context, c *Client, collection string, f Filters) ([]T, error) {
	return roundTrip[T](ctx, c, http.MethodDelete, collection, nil, f, preferRepresentation)
}

func (c *Client) endpoint(collection string, f Filters) (string, error) {
	if collection == "" {
		return "", ErrInvalidRequest
	}
	u, err := url.Parse(c.baseURL + "/" + collection)
	if err != nil {
		return "", ErrInvalidRequest
	}
	if len(f) > 0 {
		u.RawQuery = f.Encode()
	}
	return u.String(), nil
}

func roundTrip[T any](ctx context.Context, c *Client, method, collection string, body any, f Filters, prefer string) ([]T, error) {
	endpoint, err := c.endpoint(collection, f)
	if err != nil {
		return nil, err
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, &EncodeError{Err: err}
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ServerError{Message: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServerError{Message: err.Error()}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Debug("store request failed",
			zap.String("collection", collection),
			zap.String("method", method),
			zap.Int("status", resp.StatusCode))
		return nil, &ServerError{Status: resp.StatusCode, Message: serverMessage(payload)}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrNoData
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return out, nil
}

// serverMessage pulls the message field out of a store error body, falling
// back to the raw text.
func serverMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(payload))
}
