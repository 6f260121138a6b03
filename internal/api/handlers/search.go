package handlers

import (
	"crawl-route-service/internal/api/dto"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/services"
	"net/http"
	"strings"
)

type SearchHandler struct {
	Service *services.SearchService
}

var searchHelp = dto.ParameterHelp{
	Message: "Please provide search parameters",
	Parameters: map[string]string{
		"address": "string (required unless lat/lng given)",
		"lat":     "float (optional, with lng)",
		"lng":     "float (optional, with lat)",
		"radius":  "float (optional, default: 10 miles)",
		"type":    "string (optional, default: bar)",
	},
	Example: "/api/search?address=Philadelphia&radius=5&type=bar",
}

// Search finds ranked alcohol-serving venues around an address or coordinates.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	q := r.URL.Query()
	address := strings.TrimSpace(q.Get("address"))

	lat, hasLat, err := parseFloatParam(r, "lat")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	lng, hasLng, err := parseFloatParam(r, "lng")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if address == "" && !hasLat && !hasLng {
		writeJSON(w, r, http.StatusOK, searchHelp)
		return
	}
	if hasLat != hasLng {
		writeError(w, r, http.StatusBadRequest, "lat and lng must be given together", "lat", "lng")
		return
	}

	radius, _, err := parseFloatParam(r, "radius")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	req := domain.SearchRequest{
		Address:      address,
		RadiusMiles:  radius,
		CategoryHint: q.Get("type"),
	}
	if hasLat {
		req.Origin = &domain.Coordinates{Lon: lng, Lat: lat}
	}

	res, err := h.Service.Search(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SearchResponse{
		Locations: dto.NewVenueResponses(res.Venues),
		SearchParams: dto.SearchParams{
			Address:     res.Address,
			Lat:         res.Origin.Lat,
			Lng:         res.Origin.Lon,
			RadiusMiles: res.RadiusMiles,
			Type:        res.CategoryHint,
		},
		TotalLocations: len(res.Venues),
		Cached:         res.FromCache,
	})
}
