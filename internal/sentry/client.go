package sentry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ylchen07/sentry-cli/internal/apperr"
	"github.com/ylchen07/sentry-cli/internal/auth"
)

const apiPrefix = "/api/0"

// Client is a helper around the Sentry REST API, scoped to one organization.
type Client struct {
	baseURL    *url.URL
	org        string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client for the specified server, organization and token.
func NewClient(base, org, token string, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, apperr.Config("server URL required")
	}
	if strings.TrimSpace(org) == "" {
		return nil, apperr.Config("No organization specified. Use --org or configure default_org")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, apperr.URLParse(err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, apperr.URLParse(fmt.Errorf("invalid server URL %q", base))
	}

	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: auth.NewTransport(nil, token),
	}

	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("client configured", "server", parsed.String(), "org", org)

	return &Client{
		baseURL:    parsed,
		org:        org,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// NewRequest builds an HTTP request rooted at the server with optional query parameters and JSON body.
// The path replaces any path carried by the base URL.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := *c.baseURL
	u.Path = path
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.JSON(err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, apperr.URLParse(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Do executes the request and decodes the response JSON into out if provided.
// The response headers are returned on success and on classified failures.
func (c *Client) Do(req *http.Request, out any) (http.Header, error) {
	c.logger.Debug("request", "method", req.Method, "url", req.URL.String())

	res, err := c.httpClient.Do(req)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperr.Network(err)
	}
	defer res.Body.Close()

	c.logger.Debug("response", "status", res.StatusCode)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return res.Header, apperr.Network(err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res.Header, classify(res.StatusCode, res.Header, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return res.Header, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return res.Header, apperr.JSON(err)
	}

	return res.Header, nil
}

// SetTransport replaces the transport underneath the bearer-token layer. Useful for testing.
func (c *Client) SetTransport(rt http.RoundTripper) {
	if rt == nil {
		return
	}
	c.httpClient.Transport = auth.NewTransport(rt, c.token)
}

// apiPath joins parts under the versioned API prefix, keeping a trailing slash.
func apiPath(parts ...string) string {
	builder := strings.Builder{}
	builder.WriteString(apiPrefix)

	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			builder.WriteByte('/')
			builder.WriteString(trimmed)
		}
	}

	builder.WriteByte('/')
	return builder.String()
}
