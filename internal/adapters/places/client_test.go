package places

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient("k", WithBaseURL(srv.URL), WithRateLimit(0), WithBackoff(time.Millisecond))
	require.NoError(t, err)
	return c
}

func TestSearchNearbyFirstPage(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "39.95,-75.16", q.Get("location"))
		assert.Equal(t, "8045", q.Get("radius"))
		assert.Equal(t, "bar", q.Get("type"))
		assert.Equal(t, "k", q.Get("key"))
		assert.Empty(t, q.Get("pagetoken"))

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"next_page_token": "tok-2",
			"results": [{
				"place_id": "p1", "name": "Dirty Frank's", "vicinity": "347 S 13th St",
				"rating": 4.5, "user_ratings_total": 900, "types": ["bar", "point_of_interest"],
				"geometry": {"location": {"lat": 39.9451, "lng": -75.1628}}
			}]
		}`))
	})
	c := newTestClient(t, h)

	page, err := c.SearchNearby(context.Background(), ports.NearbyQuery{
		Origin:       domain.Coordinates{Lat: 39.95, Lon: -75.16},
		RadiusMeters: 8045,
		Category:     "bar",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-2", page.NextPageToken)
	require.Len(t, page.Results, 1)

	p := page.Results[0]
	assert.Equal(t, "p1", p.PlaceID)
	require.NotNil(t, p.Vicinity)
	assert.Equal(t, "347 S 13th St", *p.Vicinity)
	assert.Equal(t, domain.Coordinates{Lat: 39.9451, Lon: -75.1628}, p.Location)
	require.NotNil(t, p.UserRatingsTotal)
	assert.Equal(t, 900, *p.UserRatingsTotal)
}

func TestSearchNearbyPageToken(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-2", r.URL.Query().Get("pagetoken"))
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})
	c := newTestClient(t, h)

	page, err := c.SearchNearby(context.Background(), ports.NearbyQuery{PageToken: "tok-2"})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Empty(t, page.NextPageToken)
}

func TestSearchByKeywordUsesFormattedAddress(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "brewery", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"place_id":"p9","name":"Yards Brewing","formatted_address":"500 Spring Garden St",
			 "types":["brewery"],"geometry":{"location":{"lat":39.96,"lng":-75.14}}}]}`))
	})
	c := newTestClient(t, h)

	got, err := c.SearchByKeyword(context.Background(), ports.KeywordQuery{Keyword: "brewery"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Vicinity)
	assert.Equal(t, "500 Spring Garden St", *got[0].Vicinity)
	assert.Nil(t, got[0].Rating)
}

func TestNonOKStatusIsUpstreamError(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status":"OVER_QUERY_LIMIT","error_message":"quota"}`))
	})
	c := newTestClient(t, h)

	_, err := c.SearchByKeyword(context.Background(), ports.KeywordQuery{Keyword: "pub"})
	require.Error(t, err)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
	assert.Contains(t, err.Error(), "OVER_QUERY_LIMIT")
	assert.Equal(t, int32(4), calls.Load())
}

func TestRequestDeniedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
	})
	c := newTestClient(t, h)

	_, err := c.SearchNearby(context.Background(), ports.NearbyQuery{Category: "bar"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTransientFailuresAreRetried(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			http.Error(w, "slow down", http.StatusTooManyRequests)
		case 2:
			_, _ = w.Write([]byte(`{"status":"OVER_QUERY_LIMIT"}`))
		default:
			assert.Equal(t, "tok-2", r.URL.Query().Get("pagetoken"))
			_, _ = w.Write([]byte(`{"status":"OK","results":[
				{"place_id":"p1","name":"Bar","types":["bar"],"geometry":{"location":{"lat":1,"lng":2}}}]}`))
		}
	})
	c := newTestClient(t, h)

	page, err := c.SearchNearby(context.Background(), ports.NearbyQuery{PageToken: "tok-2"})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "p1", page.Results[0].PlaceID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPErrorKeepsStatus(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "denied", http.StatusForbidden)
	})
	c := newTestClient(t, h)

	_, err := c.SearchNearby(context.Background(), ports.NearbyQuery{Category: "bar"})
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, de.Status)
	assert.Equal(t, int32(1), calls.Load())
}
