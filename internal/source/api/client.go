// Package api reads dashboard payloads from the time-tracking backend over
// HTTP. Concurrent identical requests share one upstream call; nothing is
// retried.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"myspace/internal/core"
	applog "myspace/internal/log"
)

const maxBodyBytes = 1 << 20

// Client is a read-only JSON client for the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
	logger     *applog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(l *applog.Logger) Option {
	return func(c *Client) { c.logger = l.WithComponent(applog.ComponentSource) }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported API URL scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentSource),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ReadDay fetches /{year}/{month}/{day}.
func (c *Client) ReadDay(ctx context.Context, d core.Date) (core.DayReport, error) {
	return fetch[core.DayReport](ctx, c, d.Link())
}

// ReadCalendar fetches /{year}/{month}/calendar.
func (c *Client) ReadCalendar(ctx context.Context, p core.Period) (core.CalendarReport, error) {
	return fetch[core.CalendarReport](ctx, c, p.ModeLink(core.ModeCalendar))
}

// ReadProjects fetches /{year}/{month}/projects.
func (c *Client) ReadProjects(ctx context.Context, p core.Period) (core.ProjectsReport, error) {
	return fetch[core.ProjectsReport](ctx, c, p.ModeLink(core.ModeProjects))
}

// fetch shares one upstream call per path. The shared call is detached from
// the caller's cancellation and bounded by the client timeout, so a caller
// that gives up never fails the others waiting on the same path.
func fetch[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T
	ch := c.group.DoChan(path, func() (any, error) {
		var out T
		if err := c.getJSON(context.WithoutCancel(ctx), path, &out); err != nil {
			return out, err
		}
		return out, nil
	})

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: GET %s: %w", core.ErrFetchFailed, path, ctx.Err())
	case res := <-ch:
		if res.Shared {
			c.logger.DebugContext(ctx, "Shared in-flight upstream request", applog.FieldPath, path)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	endpoint := c.baseURL + path
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request for %s: %w", core.ErrFetchFailed, path, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", core.ErrFetchFailed, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return fmt.Errorf("%w: GET %s: unexpected status %d", core.ErrFetchFailed, path, res.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", core.ErrFetchFailed, path, err)
	}

	c.logger.DebugContext(ctx, "Upstream request completed",
		applog.FieldUpstreamURL, endpoint,
		applog.FieldStatusCode, res.StatusCode,
		applog.FieldDuration, time.Since(start).Milliseconds())
	return nil
}
