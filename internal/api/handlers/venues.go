package handlers

import (
	"crawl-route-service/internal/api/dto"
	"crawl-route-service/internal/ports"
	"net/http"
)

// VenueHandler exposes read-only lookups of stored venues.
type VenueHandler struct {
	Repo ports.VenueRepository
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ids := r.URL.Query()["id"]
	if len(ids) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one id is required", "id")
		return
	}

	venues, err := h.Repo.GetVenuesByIDs(r.Context(), ids)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListVenuesResponse{Venues: dto.NewVenueResponses(venues)})
}
