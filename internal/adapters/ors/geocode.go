package ors

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"encoding/json"
	"net/http"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a free-form address using /geocode/search.
// Cached coordinates are served without an external call. An address with
// no candidates yields a domain NotFound error.
func (o *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, domain.InvalidInput("ors geocode", "address must be non-empty", "address")
	}

	if o.geocodeCache != nil {
		c, ok, cerr := o.geocodeCache.Get(ctx, norm)
		if cerr != nil {
			obs.Logger(ctx).WithError(cerr).Warn("geocode cache read failed")
		} else if ok {
			return c, nil
		}
	}

	endpoint := o.baseURL + "/geocode/search"
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, domain.Upstream("ors geocode", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, domain.Upstreamf("ors geocode", "decode geocode response: %v", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, domain.NotFound("ors geocode", "address not found", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, domain.Upstreamf("ors geocode", "invalid coordinate format for %q", address)
	}

	out := domain.Coordinates{Lon: coords[0], Lat: coords[1]}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.Put(ctx, norm, out); err != nil {
			obs.Logger(ctx).WithError(err).Warn("geocode cache write failed")
		}
	}

	return out, nil
}
