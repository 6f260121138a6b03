package ors

import (
	"bytes"
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
	Units        string      `json:"units"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Steps    []struct {
					Instruction string  `json:"instruction"`
					Distance    float64 `json:"distance"`
					Duration    float64 `json:"duration"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Route requests one start->end route from /v2/directions/{profile}/geojson
// with turn-by-turn instructions. Distances come back in units; durations in seconds.
func (o *Client) Route(
	ctx context.Context,
	start domain.Coordinates,
	end domain.Coordinates,
	units string,
) (_ ports.RouteLeg, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	switch units {
	case "mi", "km", "m":
	default:
		return ports.RouteLeg{}, domain.InvalidInput("ors route", "unsupported distance units", "units="+units)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  [][]float64{start.CoordsToList(), end.CoordsToList()},
		Instructions: true,
		Units:        units,
	})
	if err != nil {
		return ports.RouteLeg{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.RouteLeg{}, domain.Upstream("ors route", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteLeg{}, domain.Upstreamf("ors route", "decode directions response: %v", err)
	}

	if len(dr.Features) == 0 {
		return ports.RouteLeg{}, domain.Upstreamf("ors route", "directions response has no features")
	}
	feature := dr.Features[0]

	if len(feature.Properties.Segments) == 0 {
		return ports.RouteLeg{}, domain.Upstreamf("ors route", "directions response has no segments")
	}

	leg := ports.RouteLeg{
		Units:    units,
		Segments: make([]ports.RouteLegSegment, 0, len(feature.Properties.Segments)),
		Geometry: make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates)),
	}

	for _, s := range feature.Properties.Segments {
		seg := ports.RouteLegSegment{
			Distance:        s.Distance,
			DurationSeconds: s.Duration,
			Steps:           make([]ports.RouteStep, 0, len(s.Steps)),
		}
		for _, st := range s.Steps {
			seg.Steps = append(seg.Steps, ports.RouteStep{
				Instruction:     st.Instruction,
				Distance:        st.Distance,
				DurationSeconds: st.Duration,
			})
		}
		leg.Segments = append(leg.Segments, seg)
	}

	for i, c := range feature.Geometry.Coordinates {
		if len(c) < 2 {
			return ports.RouteLeg{}, domain.Upstreamf("ors route", "invalid geometry point %d", i)
		}
		leg.Geometry = append(leg.Geometry, domain.Coordinates{Lon: c[0], Lat: c[1]})
	}

	return leg, nil
}
