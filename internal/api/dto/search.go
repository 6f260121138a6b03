package dto

type SearchParams struct {
	Address     string  `json:"address,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	RadiusMiles float64 `json:"radius_miles"`
	Type        string  `json:"type"`
}

type SearchResponse struct {
	Locations      []VenueResponse `json:"locations"`
	SearchParams   SearchParams    `json:"search_params"`
	TotalLocations int             `json:"total_locations"`
	Cached         bool            `json:"cached"`
}

// ParameterHelp documents a query interface when a request carries no parameters.
type ParameterHelp struct {
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	Parameters map[string]string `json:"parameters"`
	Example    string            `json:"example"`
}
