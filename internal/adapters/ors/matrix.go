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

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
	Units     string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// Matrix retrieves all-pairs durations (seconds) and distances (meters)
// from the /v2/matrix endpoint in a single request.
func (o *Client) Matrix(ctx context.Context, coords []domain.Coordinates) (_ ports.MatrixResult, err error) {
	defer obs.Time(ctx, "ors.Matrix")(&err)

	n := len(coords)
	if n == 0 {
		return ports.MatrixResult{}, domain.InvalidInput("ors matrix", "at least one location is required", "locations")
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, n)
	for _, c := range coords {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"duration", "distance"},
		Units:     "m",
	})
	if err != nil {
		return ports.MatrixResult{}, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.MatrixResult{}, domain.Upstream("ors matrix", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return ports.MatrixResult{}, domain.Upstreamf("ors matrix", "decode matrix response: %v", err)
	}

	durations, err := squareTable(mr.Durations, n, "durations")
	if err != nil {
		return ports.MatrixResult{}, err
	}
	distances, err := squareTable(mr.Distances, n, "distances")
	if err != nil {
		return ports.MatrixResult{}, err
	}

	return ports.MatrixResult{Durations: durations, Distances: distances}, nil
}

// squareTable checks the n×n shape and rejects unroutable (null) cells.
func squareTable(rows [][]*float64, n int, name string) ([][]float64, error) {
	if len(rows) != n {
		return nil, domain.Upstreamf("ors matrix", "expected %d %s rows; got %d", n, name, len(rows))
	}

	out := make([][]float64, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, domain.Upstreamf("ors matrix", "%s row %d has %d cells; want %d", name, i, len(row), n)
		}
		out[i] = make([]float64, n)
		for j, v := range row {
			if v == nil {
				return nil, domain.Upstreamf("ors matrix", "no %s between locations %d and %d", name, i, j)
			}
			out[i][j] = *v
		}
	}

	return out, nil
}
