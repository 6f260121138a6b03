package dto

import "crawl-route-service/internal/domain"

type VenueResponse struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Address          *string  `json:"address"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
}

func NewVenueResponse(v domain.Venue) VenueResponse {
	return VenueResponse{
		PlaceID:          v.PlaceID,
		Name:             v.Name,
		Address:          v.Address,
		Lat:              v.Latitude,
		Lng:              v.Longitude,
		Rating:           v.Rating,
		UserRatingsTotal: v.UserRatingsTotal,
	}
}

func NewVenueResponses(venues []domain.Venue) []VenueResponse {
	out := make([]VenueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, NewVenueResponse(v))
	}
	return out
}

type ListVenuesResponse struct {
	Venues []VenueResponse `json:"venues"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind,omitempty"`
	Details []string `json:"details,omitempty"`
}
