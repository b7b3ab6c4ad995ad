// Package httpclient is the EduBlog REST API client: one request routine that
// attaches the JSON and role headers, plus typed resource operations on top.
package httpclient

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

	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
	"github.com/edublog/edublog-client/internal/core/ports"
	"github.com/edublog/edublog-client/internal/metrics"
)

const headerRole = "role"

// Client talks to the EduBlog API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	session ports.SessionStore
	policy  RolePolicy
	log     zerolog.Logger
	timeout time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout, applied on top of whichever
// *http.Client ends up configured. Zero keeps the platform default, which for
// net/http means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithRolePolicy(p RolePolicy) Option {
	return func(c *Client) { c.policy = p }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New validates baseURL and returns a ready client. An empty or relative
// base URL is a configuration error; callers treat it as fatal at startup.
func New(baseURL string, session ports.SessionStore, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("%w: API base URL is not set", domain.ErrConfig)
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: API base URL %q must be an absolute http(s) URL", domain.ErrConfig, baseURL)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session store is required", domain.ErrConfig)
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{},
		session: session,
		policy:  LegacyRolePolicy(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// Policy returns the role header policy in use.
func (c *Client) Policy() RolePolicy { return c.policy }

// request describes a single API call. route is the path template used as a
// metric label; path is the concrete, already escaped path.
type request struct {
	method string
	route  string
	path   string
	body   any
	role   RoleSource
}

// do issues req and decodes a successful JSON body into out (when out is not
// nil and the body is not empty). It returns the HTTP status.
func (c *Client) do(ctx context.Context, req request, out any) (int, error) {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return 0, fmt.Errorf("%s %s: encode body: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return 0, fmt.Errorf("%s %s: build request: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	role, send, err := req.role.resolve(ctx, c.session)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	if send {
		httpReq.Header.Set(headerRole, role)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.method, req.route, "network_error").Inc()
		c.log.Warn().Err(err).Str("method", req.method).Str("path", req.path).Msg("api request failed")
		return 0, &NetworkError{Method: req.method, Path: req.path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	metrics.RequestDuration.WithLabelValues(req.method, req.route).Observe(elapsed.Seconds())
	metrics.RequestsTotal.WithLabelValues(req.method, req.route, strconv.Itoa(resp.StatusCode)).Inc()
	if err != nil {
		return resp.StatusCode, &NetworkError{Method: req.method, Path: req.path, Err: err}
	}

	c.log.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Str("role", role).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &RequestError{
			Method: req.method,
			Path:   req.path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, &DecodeError{Method: req.method, Path: req.path, Err: err}
		}
	}
	return resp.StatusCode, nil
}

// doEnvelope issues req and wraps the decoded body in a Result. The role of
// the envelope is the "role" field of the body, not the session role.
func doEnvelope[T any](ctx context.Context, c *Client, req request) (*domain.Result[T], error) {
	var raw json.RawMessage
	status, err := c.do(ctx, req, &raw)
	if err != nil {
		return nil, err
	}

	res := &domain.Result[T]{StatusCode: status}
	if len(raw) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(raw, &res.Data); err != nil {
		return nil, &DecodeError{Method: req.method, Path: req.path, Err: err}
	}

	var meta struct {
		Role string `json:"role"`
	}
	if json.Unmarshal(raw, &meta) == nil {
		res.Role = meta.Role
	}
	return res, nil
}

// pathOf joins escaped segments into an absolute path.
func pathOf(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

var (
	_ ports.AuthAPI = (*Client)(nil)
	_ ports.UserAPI = (*Client)(nil)
	_ ports.PostAPI = (*Client)(nil)
)
