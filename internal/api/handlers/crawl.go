package handlers

import (
	"crawl-route-service/internal/api/dto"
	"crawl-route-service/internal/services"
	"net/http"
)

type CrawlHandler struct {
	Planner *services.CrawlPlanner
}

// Optimize plans a crawl over ?location=ID&location=ID..., starting at the first id.
func (h *CrawlHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	plan, err := h.Planner.OptimizeCrawl(r.Context(), r.URL.Query()["location"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewCrawlResponse(plan))
}
