// Package backend is the typed client for the commerce backend, the remote
// system of record for catalog, orders, user profiles, and payment
// configuration. The storefront owns no durable data of its own besides
// carts; everything else round-trips through this client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/httpclient"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/middleware"
)

// Doer executes HTTP requests. Satisfied by httpclient.Client and
// httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the commerce backend's REST API.
type Client struct {
	baseURL string
	doer    Doer
}

// NewClient creates a backend client. baseURL is the API root, without a
// trailing slash.
func NewClient(baseURL string, doer Doer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
	}
}

// dataEnvelope is the success envelope the backend wraps payloads in.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// do issues a request and decodes the enveloped response into out. The
// caller's principal, when present in ctx, is forwarded so the backend can
// apply its own authorization. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if principal := middleware.Principal(ctx); principal != "" {
		req.Header.Set("X-Principal", principal)
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("backend %s %s: %w", method, path, err)
		}
		// Transport failures and an open circuit breaker are both the
		// retryable upstream category.
		return apperrors.Upstream(fmt.Errorf("backend %s %s: %w", method, path, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpclient.ParseResponseError(resp, method+" "+path)
	}

	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode backend response for %s %s: %w", method, path, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode backend payload for %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
