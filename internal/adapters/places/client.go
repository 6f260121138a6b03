package places

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
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

const (
	DefaultBaseURL   = "https://maps.googleapis.com/maps/api/place"
	DefaultRateLimit = 5
)

// Client is a Google Places web service client for nearby and text search.
// Every request waits on a shared limiter so the key's per-second quota holds.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	backoff time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.session = h }
}

// WithBackoff sets the initial retry delay.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// WithRateLimit sets the request quota in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	c := &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		backoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type placesResponse struct {
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message"`
	NextPageToken string        `json:"next_page_token"`
	Results       []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         *string  `json:"vicinity"`
	FormattedAddress *string  `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (p placeResult) toRaw() domain.RawPlace {
	vicinity := p.Vicinity
	if vicinity == nil {
		vicinity = p.FormattedAddress
	}

	return domain.RawPlace{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Vicinity:         vicinity,
		Location:         domain.Coordinates{Lon: p.Geometry.Location.Lng, Lat: p.Geometry.Location.Lat},
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingsTotal,
		Types:            p.Types,
	}
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string { return fmt.Sprintf("Code %d: %s", e.Code, e.Body) }
func (e *httpStatusError) StatusCode() int { return e.Code }

// apiStatusError is a non-OK "status" field in a 200 response.
type apiStatusError struct {
	Status  string
	Message string
}

func (e *apiStatusError) Error() string {
	if e.Message == "" {
		return "places status " + e.Status
	}
	return fmt.Sprintf("places status %s: %s", e.Status, e.Message)
}

// SearchNearby runs one page of a category-scoped nearby search.
func (c *Client) SearchNearby(ctx context.Context, q ports.NearbyQuery) (_ ports.PlacesPage, err error) {
	defer obs.Time(ctx, "places.SearchNearby")(&err)

	params := url.Values{}
	if q.PageToken != "" {
		params.Set("pagetoken", q.PageToken)
	} else {
		params.Set("location", formatLocation(q.Origin))
		params.Set("radius", strconv.Itoa(q.RadiusMeters))
		params.Set("type", q.Category)
	}

	decoded, err := c.get(ctx, "/nearbysearch/json", params)
	if err != nil {
		return ports.PlacesPage{}, domain.Upstream("places nearby search", err)
	}

	page := ports.PlacesPage{
		Results:       make([]domain.RawPlace, 0, len(decoded.Results)),
		NextPageToken: decoded.NextPageToken,
	}
	for _, r := range decoded.Results {
		page.Results = append(page.Results, r.toRaw())
	}

	return page, nil
}

// SearchByKeyword runs a free-text search biased to the origin and radius.
func (c *Client) SearchByKeyword(ctx context.Context, q ports.KeywordQuery) (_ []domain.RawPlace, err error) {
	defer obs.Time(ctx, "places.SearchByKeyword")(&err)

	params := url.Values{}
	params.Set("query", q.Keyword)
	params.Set("location", formatLocation(q.Origin))
	params.Set("radius", strconv.Itoa(q.RadiusMeters))

	decoded, err := c.get(ctx, "/textsearch/json", params)
	if err != nil {
		return nil, domain.Upstream("places keyword search", err)
	}

	out := make([]domain.RawPlace, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		out = append(out, r.toRaw())
	}

	return out, nil
}

// get retries transient failures (network errors, 429 and 5xx responses,
// OVER_QUERY_LIMIT and UNKNOWN_ERROR statuses) with exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*placesResponse, error) {
	const maxAttempts = 4
	backoff := c.backoff

	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		decoded, err := c.getOnce(ctx, reqURL)
		if err == nil {
			return decoded, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, reqURL string) (*placesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var decoded placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	switch decoded.Status {
	case "OK", "ZERO_RESULTS":
		return &decoded, nil
	default:
		return nil, &apiStatusError{Status: decoded.Status, Message: decoded.ErrorMessage}
	}
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var ae *apiStatusError
	if errors.As(err, &ae) {
		return ae.Status == "OVER_QUERY_LIMIT" || ae.Status == "UNKNOWN_ERROR"
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func formatLocation(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
