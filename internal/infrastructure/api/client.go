// Package api implements the single point of outbound HTTP communication
// with the ShareStay backend. Every request carries the bearer token when
// one is stored, plus cookies so an OAuth-issued session rides alongside.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// loginPath is the one endpoint whose 401 responses do not raise the
// session-expired notice: a failed login is the form's business, not a
// session event.
const loginPath = "/auth/login"

// Config captures the settings for constructing a Client.
type Config struct {
	// BaseURL is the backend API root, e.g. http://localhost:8080/api.
	BaseURL string
	// AssetBaseURL prefixes relative image paths returned by the backend.
	AssetBaseURL string
	// Timeout bounds each request end-to-end. Defaults to 30s.
	Timeout time.Duration
}

// Client is the typed HTTP client over the remote REST API. It satisfies
// ports.AuthAPI, ports.RoomAPI, ports.FavoriteAPI, ports.AdminAPI and
// ports.StatsAPI.
type Client struct {
	base      *url.URL
	assetBase string
	http      *http.Client
	log       zerolog.Logger
}

var (
	_ ports.AuthAPI     = (*Client)(nil)
	_ ports.RoomAPI     = (*Client)(nil)
	_ ports.FavoriteAPI = (*Client)(nil)
	_ ports.AdminAPI    = (*Client)(nil)
	_ ports.StatsAPI    = (*Client)(nil)
)

// New builds a Client. The token store supplies the bearer credential at
// request-construction time; the notifier receives blocking 401/403 notices.
func New(cfg Config, store ports.TokenStore, notifier ports.Notifier, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}

	// Cookie jar enables the parallel cookie-based session issued by the
	// OAuth flow.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base:      base,
		assetBase: strings.TrimRight(cfg.AssetBaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: newAuthTransport(http.DefaultTransport, store, notifier, log),
		},
		log: log,
	}, nil
}

// do performs one request/response cycle: JSON-encode body, send, map non-2xx
// to a typed error, decode the (possibly enveloped) response into out.
// There is no retrying or queuing; failures propagate unchanged.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.NewAPIError(resp.StatusCode, serverMessage(data), path)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := decodeEnvelope(data, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
