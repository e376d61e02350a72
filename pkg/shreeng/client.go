// Package shreeng provides a client for the Shreeng astronomical engine:
// panchang, muhurta, choghadiya and astronomical facts plus city geocoding.
package shreeng

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the engine's versioned API base.
const DefaultBaseURL = "http://localhost:3333/v2"

// DefaultTimeout is the per-request deadline.
const DefaultTimeout = 10 * time.Second

// Client defines the engine operations.
type Client interface {
	// Panchang returns the five daily elements for a location and datetime.
	Panchang(ctx context.Context, locationID int, datetime string) (*PanchangResponse, error)
	// Muhurta returns the named auspicious/inauspicious windows.
	Muhurta(ctx context.Context, locationID int, datetime string) (*MuhurtaResponse, error)
	// Choghadiya returns the day and night period sequences.
	Choghadiya(ctx context.Context, locationID int, datetime string) (*ChoghadiyaResponse, error)
	// Astronomical returns sun and moon facts.
	Astronomical(ctx context.Context, locationID int, datetime string) (*AstronomicalResponse, error)
	// SunTimes returns sun facts only.
	SunTimes(ctx context.Context, locationID int, datetime string) (*SunTimes, error)
	// MoonTimes returns moon facts only.
	MoonTimes(ctx context.Context, locationID int, datetime string) (*MoonTimes, error)
	// Festivals returns the festival calendar for a year. locationID 0 omits
	// the location filter.
	Festivals(ctx context.Context, year, locationID int) ([]Festival, error)
	// UpcomingFestivals returns the next festivals from today.
	UpcomingFestivals(ctx context.Context, limit, locationID int) ([]Festival, error)
	// SearchCities queries the geocode index by city name.
	SearchCities(ctx context.Context, query string, opts SearchOptions) ([]GeoResult, error)
	// ReverseGeocode returns the nearest city for a coordinate, or nil when
	// the index has no match.
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeoResult, error)
}

// SearchOptions narrows a city search.
type SearchOptions struct {
	Country         string
	PriorityCountry string
	Limit           int // default 8
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets the versioned API base URL.
func WithBaseURL(base string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithAPIKey attaches a bearer token to every request.
func WithAPIKey(key string) Option {
	return func(c *httpClient) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
		}
	}
}

type httpClient struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	http    *http.Client
}

// NewClient creates an engine client with the given options.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(20, 20),
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rootURL strips the version suffix: geocode endpoints live at the root.
func (c *httpClient) rootURL() string {
	return strings.TrimSuffix(c.baseURL, "/v2")
}

// get performs a GET against the engine and decodes the JSON body into out.
// Failures come back as *APIError: 408 on deadline expiry, the engine's own
// status on non-2xx, 502 on transport or decode problems.
func (c *httpClient) get(ctx context.Context, root bool, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return classifyTransportError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	base := c.baseURL
	if root {
		base = c.rootURL()
	}
	reqURL := base + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err), Status: http.StatusInternalServerError}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromBody(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Message: "malformed engine response", Status: http.StatusBadGateway}
	}
	return nil
}

// classifyTransportError maps deadline expiry to the 408 timeout error and
// everything else to a 502.
func classifyTransportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutError()
	}
	if errors.Is(err, context.Canceled) {
		return &APIError{Message: "request canceled", Status: http.StatusBadGateway}
	}
	return &APIError{Message: fmt.Sprintf("engine unreachable: %v", err), Status: http.StatusBadGateway}
}

// apiErrorFromBody builds an APIError for a non-2xx response, picking up the
// optional {message, code} error body.
func apiErrorFromBody(status int, body []byte) *APIError {
	ae := &APIError{
		Message: fmt.Sprintf("engine error: %s", http.StatusText(status)),
		Status:  status,
	}
	var eb struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			ae.Message = eb.Message
		}
		ae.Code = eb.Code
	}
	return ae
}

func locationParams(locationID int, datetime string) url.Values {
	return url.Values{
		"locationId": {strconv.Itoa(locationID)},
		"datetime":   {datetime},
	}
}

func (c *httpClient) Panchang(ctx context.Context, locationID int, datetime string) (*PanchangResponse, error) {
	var out PanchangResponse
	if err := c.get(ctx, false, "/panchang", locationParams(locationID, datetime), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Muhurta(ctx context.Context, locationID int, datetime string) (*MuhurtaResponse, error) {
	var out MuhurtaResponse
	if err := c.get(ctx, false, "/panchang/muhurta", locationParams(locationID, datetime), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Choghadiya(ctx context.Context, locationID int, datetime string) (*ChoghadiyaResponse, error) {
	var out ChoghadiyaResponse
	if err := c.get(ctx, false, "/panchang/choghadiya", locationParams(locationID, datetime), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Astronomical(ctx context.Context, locationID int, datetime string) (*AstronomicalResponse, error) {
	var out AstronomicalResponse
	if err := c.get(ctx, false, "/astronomical", locationParams(locationID, datetime), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) SunTimes(ctx context.Context, locationID int, datetime string) (*SunTimes, error) {
	var out SunTimes
	if err := c.get(ctx, false, "/astronomical/sun", locationParams(locationID, datetime), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) MoonTimes(ctx context.Context, locationID int, datetime string) (*MoonTimes, error) {
	var out MoonTimes
	if err := c.get(ctx, false, "/astronomical/moon", locationParams(locationID, datetime), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Festivals(ctx context.Context, year, locationID int) ([]Festival, error) {
	params := url.Values{}
	if locationID > 0 {
		params.Set("locationId", strconv.Itoa(locationID))
	}
	var out []Festival
	if err := c.get(ctx, false, fmt.Sprintf("/festivals/%d", year), params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) UpcomingFestivals(ctx context.Context, limit, locationID int) ([]Festival, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	if locationID > 0 {
		params.Set("locationId", strconv.Itoa(locationID))
	}
	var out []Festival
	if err := c.get(ctx, false, "/festivals/upcoming", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
