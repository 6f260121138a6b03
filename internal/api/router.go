package api

import (
	"crawl-route-service/internal/api/handlers"
	"crawl-route-service/internal/ports"
	"crawl-route-service/internal/services"
	"net/http"
)

// Deps are the services the HTTP layer exposes.
type Deps struct {
	Search    *services.SearchService
	Itinerary *services.ItineraryBuilder
	Crawl     *services.CrawlPlanner
	Venues    ports.VenueRepository
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	searchHandler := &handlers.SearchHandler{Service: d.Search}
	routeHandler := &handlers.RouteHandler{Builder: d.Itinerary}
	crawlHandler := &handlers.CrawlHandler{Planner: d.Crawl}
	venueHandler := &handlers.VenueHandler{Repo: d.Venues}

	mux.HandleFunc("/health", handlers.Health)
	for _, prefix := range []string{"/api/search", "/api/search/"} {
		mux.HandleFunc(prefix, searchHandler.Search)
	}
	for _, prefix := range []string{"/api/route", "/api/route/"} {
		mux.HandleFunc(prefix, routeHandler.Route)
	}
	for _, prefix := range []string{"/api/optimize-crawl", "/api/optimize-crawl/"} {
		mux.HandleFunc(prefix, crawlHandler.Optimize)
	}
	mux.HandleFunc("/api/venues", venueHandler.Get)

	// Request ids are assigned outside logging so the access log carries them.
	return requestIDMiddleware(loggingMiddleware(mux))
}
