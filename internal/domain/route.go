package domain

// Endpoint is a named stop at the start or end of a route segment.
type Endpoint struct {
	Name    string
	PlaceID string
	Coordinates
}

// RouteStep is one turn-by-turn instruction within a segment.
type RouteStep struct {
	Instruction     string
	DistanceMiles   float64
	DurationMinutes float64
}

// RouteSegment is a single leg between two consecutive stops.
// Distance is always miles and duration always minutes, at full precision.
// Polyline points are ordered along the path.
type RouteSegment struct {
	From            Endpoint
	To              Endpoint
	DistanceMiles   float64
	DurationMinutes float64
	Steps           []RouteStep
	Polyline        []Coordinates
}

// Itinerary is the stitched result of an ordered walk across venues.
// Totals are the running sums of the segment values, never recomputed.
type Itinerary struct {
	Segments             []RouteSegment
	TotalDistanceMiles   float64
	TotalDurationMinutes float64
}

// Represents the planned crawl across chosen venues.
// Venues are in visiting order; the first requested venue is always first.
// EstimatedSeconds/Meters come from the travel-cost matrix for that order.
type CrawlPlan struct {
	Venues           []Venue
	Order            []int
	Itinerary        *Itinerary
	EstimatedSeconds float64
	EstimatedMeters  float64
}
