package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
)

const (
	defaultBaseURL   = "127.0.0.1:7488"
	defaultUserAgent = "perch/0.1"
	defaultTimeout   = 5 * time.Second

	// RequestIDHeader carries a per-request id the API echoes in its logs.
	RequestIDHeader = "X-Request-Id"
)

// Query narrows FetchPeripherals. Zero fields are not sent.
type Query struct {
	Category string
	Brand    string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Features []string
}

// Values encodes the query the way the catalog API expects it.
func (q Query) Values() url.Values {
	values := url.Values{}
	if v := strings.TrimSpace(q.Category); v != "" {
		values.Set("category", v)
	}
	if v := strings.TrimSpace(q.Brand); v != "" {
		values.Set("brand", v)
	}
	if v := strings.TrimSpace(q.Search); v != "" {
		values.Set("search", v)
	}
	if q.MinPrice != nil {
		values.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		values.Set("maxPrice", q.MaxPrice.String())
	}
	for _, f := range q.Features {
		if f = strings.TrimSpace(f); f != "" {
			values.Add("feature", f)
		}
	}
	return values
}

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// NewClient builds a Client for baseURL. A bare host:port gets http://.
// timeout bounds every call; zero uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		timeout:   timeout,
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchPeripherals lists peripherals matching q.
func (c *Client) FetchPeripherals(ctx context.Context, q Query) ([]catalog.Peripheral, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/peripherals", RawQuery: q.Values().Encode()}
	var payload []catalog.Peripheral
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchPeripheral fetches one peripheral. Unknown ids return catalog.ErrNotFound.
func (c *Client) FetchPeripheral(ctx context.Context, id string) (catalog.Peripheral, error) {
	if c == nil {
		return catalog.Peripheral{}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Peripheral{}, catalog.ErrNotFound
	}
	var payload catalog.Peripheral
	if err := c.do(ctx, http.MethodGet, "/peripherals/"+url.PathEscape(id), &payload); err != nil {
		return catalog.Peripheral{}, err
	}
	if payload.ID == "" {
		return catalog.Peripheral{}, catalog.ErrNotFound
	}
	return payload, nil
}

// FetchCategories lists the catalog categories.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/categories", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return catalog.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: api %s returned status %d", catalog.ErrUnavailable, rel.Path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
