// Package catalog is the HTTP client for the remote pen catalog service.
//
// This package handles retrieving item listings, aggregate stats, and flag
// mutations, and classifies failures so callers can tell an unreachable
// service from a misbehaving one.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/logging"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

// TokenSource supplies the ambient bearer credential for requests. The
// client never inspects the token beyond checking for presence; an empty
// token simply means unauthenticated requests.
type TokenSource interface {
	Token() string
}

// Client talks to the catalog service.
type Client struct {
	base    string
	client  *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
}

// New creates a Client for the service at base. rps throttles outgoing
// requests client-side; zero disables the throttle.
func New(base string, timeout time.Duration, rps float64, tokens TokenSource) *Client {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(rps)*2)
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		limiter: limiter,
	}
}

// listPath maps a view to its listing endpoint. The date windows and the
// saved flag are evaluated server-side per view; search is evaluated within
// the same window.
func listPath(view model.View) string {
	switch view {
	case model.ViewToday:
		return "/items/today"
	case model.ViewLast3Days:
		return "/items/last3days"
	case model.ViewSaved:
		return "/items/saved"
	}
	return "/items"
}

// ListItems fetches the item sequence for a view, optionally narrowed by a
// search query. Ordering is whatever the service returned.
func (c *Client) ListItems(ctx context.Context, view model.View, query string) ([]model.Item, error) {
	op := "list " + string(view)

	u := c.base + listPath(view)
	if query != "" {
		u += "?q=" + url.QueryEscape(query)
	}

	body, err := c.do(ctx, op, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var items []model.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &FormatError{Op: op, Err: err}
	}
	return items, nil
}

// FetchStats fetches the aggregate per-view totals.
func (c *Client) FetchStats(ctx context.Context) (model.Counts, error) {
	const op = "fetch stats"

	body, err := c.do(ctx, op, http.MethodGet, c.base+"/items/stats", nil)
	if err != nil {
		return model.Counts{}, err
	}

	var counts model.Counts
	if err := json.Unmarshal(body, &counts); err != nil {
		return model.Counts{}, &FormatError{Op: op, Err: err}
	}
	return counts, nil
}

// SetItemFlag persists a boolean flag change for one item. The flag rides in
// the query string and the full item, with the flag already applied, rides
// in the body. Returns the server's copy of the item.
func (c *Client) SetItemFlag(ctx context.Context, item model.Item, flag string, value bool) (model.Item, error) {
	op := fmt.Sprintf("set %s=%t", flag, value)

	u := fmt.Sprintf("%s/items/%s?%s=%s", c.base, url.PathEscape(item.ID), flag, strconv.FormatBool(value))

	payload, err := json.Marshal(item)
	if err != nil {
		return model.Item{}, &FormatError{Op: op, Err: err}
	}

	body, err := c.do(ctx, op, http.MethodPut, u, bytes.NewReader(payload))
	if err != nil {
		return model.Item{}, err
	}

	// Some deployments answer flag mutations with an empty body. Treat that
	// as echoing the request.
	if len(bytes.TrimSpace(body)) == 0 {
		return item, nil
	}

	var updated model.Item
	if err := json.Unmarshal(body, &updated); err != nil {
		return model.Item{}, &FormatError{Op: op, Err: err}
	}
	return updated, nil
}

// do performs one request and classifies the failure modes. Success means
// any 2xx status; the raw body is returned for the caller to decode.
func (c *Client) do(ctx context.Context, op, method, u string, body io.Reader) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req.Header.Set("User-Agent", "pendash/0.1")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		logging.Debug("catalog request failed", "op", op, "status", resp.StatusCode)
		return nil, &ProtocolError{Op: op, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return data, nil
}
