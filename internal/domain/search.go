package domain

import "strings"

const (
	MetersPerMile      = 1609
	DefaultRadiusMiles = 10.0
	DefaultCategory    = "bar"
)

// MaxRadiusMeters is the largest radius the places service accepts.
const MaxRadiusMeters = 50000

// MinRadiusMeters is the smallest radius sent upstream.
const MinRadiusMeters = 1

// SearchRequest describes a venue search. Exactly one of Address or Origin is set.
type SearchRequest struct {
	Address      string
	Origin       *Coordinates
	RadiusMiles  float64
	CategoryHint string
}

// RadiusMeters converts the mile radius with the integer factor used upstream,
// clamped to [MinRadiusMeters, MaxRadiusMeters].
func (r SearchRequest) RadiusMeters() int {
	miles := r.RadiusMiles
	if miles <= 0 {
		miles = DefaultRadiusMiles
	}
	m := int(miles * MetersPerMile)
	switch {
	case m > MaxRadiusMeters:
		m = MaxRadiusMeters
	case m < MinRadiusMeters:
		m = MinRadiusMeters
	}
	return m
}

// EffectiveRadiusMiles is the radius actually searched, in miles.
func (r SearchRequest) EffectiveRadiusMiles() float64 {
	miles := r.RadiusMiles
	if miles <= 0 {
		miles = DefaultRadiusMiles
	}
	if limit := float64(MaxRadiusMeters) / MetersPerMile; miles > limit {
		return limit
	}
	return miles
}

func (r SearchRequest) Category() string {
	c := strings.ToLower(strings.TrimSpace(r.CategoryHint))
	if c == "" {
		return DefaultCategory
	}
	return c
}

// SearchResult is the ranked outcome of a search.
type SearchResult struct {
	Address      string
	Origin       Coordinates
	RadiusMiles  float64
	CategoryHint string
	Venues       []Venue
	FromCache    bool
}
