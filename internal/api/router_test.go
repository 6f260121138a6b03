package api

import (
	"context"
	"crawl-route-service/internal/adapters/mock"
	"crawl-route-service/internal/adapters/repositories"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/ports"
	"crawl-route-service/internal/services"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alpha = domain.Venue{PlaceID: "a", Name: "Alpha Bar", Latitude: 39.95, Longitude: -75.16}
	bravo = domain.Venue{PlaceID: "b", Name: "Bravo Pub", Latitude: 39.96, Longitude: -75.17}
)

type testServer struct {
	handler http.Handler
	places  *mock.PlacesSearcher
	routing *mock.RoutingProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := repositories.NewMemoryVenueRepository()
	require.NoError(t, repo.UpsertVenues(context.Background(), []domain.Venue{alpha, bravo}))

	places := mock.NewPlacesSearcher()
	rating := 4.4
	places.Pages["bar"] = [][]domain.RawPlace{{{
		PlaceID:  "p1",
		Name:     "Dirty Frank's",
		Location: domain.Coordinates{Lon: -75.1628, Lat: 39.9451},
		Rating:   &rating,
		Types:    []string{"bar"},
	}}}

	routing := mock.NewRoutingProvider([]mock.MockLeg{{
		From: alpha.Coordinates(),
		To:   bravo.Coordinates(),
		Leg: ports.RouteLeg{
			Units: "mi",
			Segments: []ports.RouteLegSegment{{
				Distance:        0.84,
				DurationSeconds: 1008,
				Steps:           []ports.RouteStep{{Instruction: "Walk west", Distance: 0.84, DurationSeconds: 1008}},
			}},
			Geometry: []domain.Coordinates{alpha.Coordinates(), bravo.Coordinates()},
		},
	}})
	routing.Durations = [][]float64{{0, 1008}, {1008, 0}}
	routing.Distances = [][]float64{{0, 1352}, {1352, 0}}

	geocoder := mock.NewGeocoder(map[string]domain.Coordinates{
		"Philadelphia": {Lon: -75.1652, Lat: 39.9526},
	})

	aggregator := services.NewVenueAggregator(
		places,
		services.NewVenueClassifier(services.DefaultClassifierConfig(true, false)),
		services.DefaultAggregatorConfig(),
		services.WithSleep(func(context.Context, time.Duration) error { return nil }),
	)
	itinerary := services.NewItineraryBuilder(routing)

	h := NewRouter(Deps{
		Search:    services.NewSearchService(geocoder, aggregator, repo, nil, 0),
		Itinerary: itinerary,
		Crawl:     services.NewCrawlPlanner(repo, services.NewDurationMatrixClient(routing, nil, "foot-walking"), itinerary),
		Venues:    repo,
	})

	return &testServer{handler: h, places: places, routing: routing}
}

func (s *testServer) get(t *testing.T, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	post := httptest.NewRecorder()
	s.handler.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, post.Code)
	assert.Equal(t, http.MethodGet, post.Header().Get("Allow"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestSearchWithoutParamsDocumentsInterface(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/search/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Please provide search parameters", body["message"])
	assert.Contains(t, body["parameters"], "address")
	assert.Equal(t, 0, s.places.CallCount())
}

func TestSearchByAddress(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/search?address=Philadelphia&radius=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total_locations"])

	locations := body["locations"].([]any)
	first := locations[0].(map[string]any)
	assert.Equal(t, "p1", first["place_id"])
	assert.Nil(t, first["address"])
	assert.Equal(t, 4.4, first["rating"])

	params := body["search_params"].(map[string]any)
	assert.Equal(t, 5.0, params["radius_miles"])
	assert.Equal(t, "bar", params["type"])
}

func TestSearchErrors(t *testing.T) {
	cases := []struct {
		target string
		status int
		kind   string
	}{
		{"/api/search?address=Atlantis", http.StatusNotFound, "not_found"},
		{"/api/search?lat=abc&lng=1", http.StatusBadRequest, "invalid_input"},
		{"/api/search?lat=91&lng=1", http.StatusBadRequest, "invalid_input"},
		{"/api/search?address=Philadelphia&radius=-2", http.StatusBadRequest, "invalid_input"},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			s := newTestServer(t)
			rec, body := s.get(t, tc.target)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.kind, body["kind"])
			assert.Equal(t, 0, s.places.CallCount())
		})
	}
}

func TestSearchRequiresBothCoordinates(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/search?lat=39.9")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []any{"lat", "lng"}, body["details"])
}

func TestRouteMissingParameter(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/route/?start_lat=39.95&start_lng=-75.16&end_lat=39.96")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required parameter: end_lng", body["error"])
	assert.Contains(t, body["parameters"], "start_name")
}

func TestRoute(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/route?start_lat=39.95&start_lng=-75.16&end_lat=39.96&end_lng=-75.17&end_name=Pub")
	require.Equal(t, http.StatusOK, rec.Code)

	route := body["route"].(map[string]any)
	assert.Equal(t, "Start", route["start"].(map[string]any)["name"])
	assert.Equal(t, "Pub", route["end"].(map[string]any)["name"])

	summary := route["summary"].(map[string]any)
	assert.Equal(t, "0.8 miles", summary["distance"])
	assert.Equal(t, "16.8 minutes", summary["duration"])

	coords := route["coordinates"].([]any)
	assert.Equal(t, []any{39.95, -75.16}, coords[0])
}

func TestOptimizeCrawl(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/optimize-crawl/?location=a&location=b")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.InDelta(t, 0.84, body["total_distance_miles"], 1e-9)
	assert.InDelta(t, 1008.0, body["total_time_seconds"], 1e-6)

	ordered := body["ordered_locations"].([]any)
	require.Len(t, ordered, 2)
	assert.Equal(t, "a", ordered[0].(map[string]any)["place_id"])

	geo := body["geo_json"].(map[string]any)
	assert.Equal(t, "FeatureCollection", geo["type"])
	feature := geo["features"].([]any)[0].(map[string]any)
	line := feature["geometry"].(map[string]any)["coordinates"].([]any)
	assert.Equal(t, []any{-75.16, 39.95}, line[0])
}

func TestOptimizeCrawlErrors(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/optimize-crawl")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", body["kind"])

	rec, body = s.get(t, "/api/optimize-crawl?location=a&location=zzz")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []any{"zzz"}, body["details"])

	matrixCalls, routeCalls := s.routing.Calls()
	assert.Zero(t, matrixCalls+routeCalls)

	s.routing.MatrixErr = &domain.Error{Kind: domain.KindUpstream, Msg: "upstream request failed", Status: 503, Err: errors.New("unavailable")}
	rec, body = s.get(t, "/api/optimize-crawl?location=a&location=b")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "upstream_error", body["kind"])
}

func TestVenues(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.get(t, "/api/venues?id=b&id=a")
	require.Equal(t, http.StatusOK, rec.Code)
	venues := body["venues"].([]any)
	assert.Equal(t, "b", venues[0].(map[string]any)["place_id"])

	rec, _ = s.get(t, "/api/venues")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
