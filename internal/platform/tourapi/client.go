// Package tourapi is a client for the Korea Tourism Organization
// KorService2 open API.
package tourapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"tourapi/internal/logger"
	"tourapi/internal/metrics"
)

// Upstream endpoints, relative to the configured base URL.
const (
	EndpointAreaBasedList  = "areaBasedList2"
	EndpointSearchFestival = "searchFestival2"
	EndpointSearchStay     = "searchStay2"
	EndpointDetailCommon   = "detailCommon2"
	EndpointDetailInfo     = "detailInfo2"
)

const maxBodyBytes = 8 << 20

var (
	ErrUpstreamTimeout   = errors.New("upstream timeout")
	ErrUpstreamTransport = errors.New("upstream transport error")
	// ErrUpstreamStatus is a transport error carrying a non-2xx reply.
	ErrUpstreamStatus = fmt.Errorf("%w: unexpected status", ErrUpstreamTransport)
)

type Config struct {
	BaseURL    string
	ServiceKey string
	MobileOS   string
	MobileApp  string
	Timeout    time.Duration
}

type Client struct {
	httpClient *http.Client
	cfg        Config
	timeout    time.Duration
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		timeout:    cfg.Timeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout returns a client sharing the same transport whose calls are
// bounded by d instead.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cp := *c
	cp.timeout = d
	return &cp
}

// Timeout reports the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// List calls endpoint with params and returns the normalized item sequence.
func (c *Client) List(ctx context.Context, endpoint string, params url.Values) ([]Item, error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	items, ok := ParseItems(body)
	if !ok {
		logger.FromContext(ctx, c.logger).Warn("malformed upstream envelope",
			zap.String("endpoint", endpoint),
			zap.Int("bytes", len(body)),
		)
		c.metrics.ObserveUpstream(endpoint, "malformed", 0)
	}
	return items, nil
}

// Detail fetches the common detail record of contentID. An empty envelope
// yields an empty Item.
func (c *Client) Detail(ctx context.Context, contentID string) (Item, error) {
	items, err := c.List(ctx, EndpointDetailCommon, url.Values{"contentId": {contentID}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return Item{}, nil
	}
	return items[0], nil
}

// DetailInfo fetches the repeated info rows of contentID; for travel
// courses these are the places along the course.
func (c *Client) DetailInfo(ctx context.Context, contentID, contentTypeID string) ([]Item, error) {
	return c.List(ctx, EndpointDetailInfo, url.Values{
		"contentId":     {contentID},
		"contentTypeId": {contentTypeID},
	})
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("serviceKey", c.cfg.ServiceKey)
	q.Set("MobileOS", c.cfg.MobileOS)
	q.Set("MobileApp", c.cfg.MobileApp)
	q.Set("_type", "json")

	u := c.cfg.BaseURL + "/" + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, classify(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = classify(endpoint, err)
		c.metrics.ObserveUpstream(endpoint, outcome(err), time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.metrics.ObserveUpstream(endpoint, "status", time.Since(start))
		return nil, fmt.Errorf("%s: %w %d", endpoint, ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		err = classify(endpoint, err)
		c.metrics.ObserveUpstream(endpoint, outcome(err), time.Since(start))
		return nil, err
	}

	c.metrics.ObserveUpstream(endpoint, "ok", time.Since(start))
	return body, nil
}

// classify maps err onto the upstream error classes. The request URL
// carries the service key, so a *url.Error is reduced to its cause.
func classify(endpoint string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w: %w", endpoint, ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", endpoint, ErrUpstreamTransport, err)
}

func outcome(err error) string {
	if errors.Is(err, ErrUpstreamTimeout) {
		return "timeout"
	}
	return "transport"
}
