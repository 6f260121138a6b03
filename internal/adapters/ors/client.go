package ors

import (
	"crawl-route-service/internal/ports"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"
	DefaultProfile = "foot-walking"
)

// Client talks to OpenRouteService for geocoding, matrices and directions.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	geocodeCache ports.GeocodeCache
	backoff      time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithProfile sets the routing profile, e.g. "foot-walking" or "driving-car".
func WithProfile(p string) Option {
	return func(c *Client) { c.profile = p }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.session = h }
}

func WithGeocodeCache(gc ports.GeocodeCache) Option {
	return func(c *Client) { c.geocodeCache = gc }
}

// WithBackoff sets the initial retry delay.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	c := &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		profile: DefaultProfile,
		backoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Profile returns the routing profile used for matrix and directions calls.
func (o *Client) Profile() string { return o.profile }

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
