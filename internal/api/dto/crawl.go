package dto

import "crawl-route-service/internal/domain"

type Geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type CrawlResponse struct {
	TotalDistanceMiles   float64           `json:"total_distance_miles"`
	TotalTimeSeconds     float64           `json:"total_time_seconds"`
	TotalDurationMinutes float64           `json:"total_duration_minutes"`
	Summary              SummaryResponse   `json:"summary"`
	EstimatedSeconds     float64           `json:"estimated_seconds"`
	EstimatedMeters      float64           `json:"estimated_meters"`
	OrderedLocations     []VenueResponse   `json:"ordered_locations"`
	Legs                 []LegResponse     `json:"legs"`
	GeoJSON              FeatureCollection `json:"geo_json"`
}

// NewCrawlResponse renders a plan. GeoJSON coordinates are [lng, lat] per RFC 7946.
func NewCrawlResponse(plan *domain.CrawlPlan) CrawlResponse {
	it := plan.Itinerary

	res := CrawlResponse{
		TotalDistanceMiles:   it.TotalDistanceMiles,
		TotalTimeSeconds:     it.TotalDurationMinutes * 60,
		TotalDurationMinutes: it.TotalDurationMinutes,
		Summary:              NewSummary(it.TotalDistanceMiles, it.TotalDurationMinutes),
		EstimatedSeconds:     plan.EstimatedSeconds,
		EstimatedMeters:      plan.EstimatedMeters,
		OrderedLocations:     NewVenueResponses(plan.Venues),
		Legs:                 make([]LegResponse, 0, len(it.Segments)),
		GeoJSON:              FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(it.Segments))},
	}

	for i, seg := range it.Segments {
		res.Legs = append(res.Legs, NewLegResponse(seg))

		line := make([][2]float64, 0, len(seg.Polyline))
		for _, c := range seg.Polyline {
			line = append(line, [2]float64{c.Lon, c.Lat})
		}
		res.GeoJSON.Features = append(res.GeoJSON.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "LineString", Coordinates: line},
			Properties: map[string]any{
				"leg":              i + 1,
				"from":             seg.From.Name,
				"to":               seg.To.Name,
				"distance_miles":   seg.DistanceMiles,
				"duration_minutes": seg.DurationMinutes,
			},
		})
	}

	return res
}
