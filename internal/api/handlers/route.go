package handlers

import (
	"crawl-route-service/internal/api/dto"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/services"
	"net/http"
	"strings"
)

type RouteHandler struct {
	Builder *services.ItineraryBuilder
}

var routeParams = map[string]string{
	"start_lat":  "float (required)",
	"start_lng":  "float (required)",
	"end_lat":    "float (required)",
	"end_lng":    "float (required)",
	"start_name": "string (optional)",
	"end_name":   "string (optional)",
}

const routeExample = "/api/route?start_lat=39.9526&start_lng=-75.1652&end_lat=39.9496&end_lng=-75.1503"

// Route returns a single walking leg between two points.
func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	var vals [4]float64
	for i, name := range []string{"start_lat", "start_lng", "end_lat", "end_lng"} {
		v, ok, err := parseFloatParam(r, name)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		if !ok {
			writeJSON(w, r, http.StatusBadRequest, dto.ParameterHelp{
				Error:      "Missing required parameter: " + name,
				Parameters: routeParams,
				Example:    routeExample,
			})
			return
		}
		vals[i] = v
	}

	q := r.URL.Query()
	from := domain.Endpoint{
		Name:        strings.TrimSpace(q.Get("start_name")),
		Coordinates: domain.Coordinates{Lat: vals[0], Lon: vals[1]},
	}
	to := domain.Endpoint{
		Name:        strings.TrimSpace(q.Get("end_name")),
		Coordinates: domain.Coordinates{Lat: vals[2], Lon: vals[3]},
	}

	seg, err := h.Builder.Leg(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{Route: dto.NewLegResponse(seg)})
}
