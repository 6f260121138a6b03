package domain

import (
	"math"
	"strings"
)

const (
	coordDecimals  = 7
	ratingDecimals = 1
)

// Venue is a discovered alcohol-serving place.
// PlaceID is the stable upstream identifier and the storage primary key;
// re-ingesting the same PlaceID overwrites every other field.
// A nil Address means upstream gave none; a nil Rating means not yet rated.
type Venue struct {
	PlaceID          string   `json:"place_id" db:"place_id"`
	Name             string   `json:"name" db:"name"`
	Address          *string  `json:"address" db:"address"`
	Latitude         float64  `json:"latitude" db:"latitude"`
	Longitude        float64  `json:"longitude" db:"longitude"`
	Rating           *float64 `json:"rating" db:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total" db:"user_ratings_total"`
}

func (v Venue) Coordinates() Coordinates {
	return Coordinates{Lon: v.Longitude, Lat: v.Latitude}
}

// RawPlace is one unnormalized result from the places search service.
type RawPlace struct {
	PlaceID          string
	Name             string
	Vicinity         *string
	Location         Coordinates
	Rating           *float64
	UserRatingsTotal *int
	Types            []string
}

// NewVenueFromRaw normalizes a raw search result into a Venue,
// rounding coordinates and rating to their stored precision.
func NewVenueFromRaw(p RawPlace) Venue {
	v := Venue{
		PlaceID:   p.PlaceID,
		Name:      strings.TrimSpace(p.Name),
		Latitude:  RoundTo(p.Location.Lat, coordDecimals),
		Longitude: RoundTo(p.Location.Lon, coordDecimals),
	}

	if p.Vicinity != nil {
		if a := strings.TrimSpace(*p.Vicinity); a != "" {
			v.Address = &a
		}
	}

	if p.Rating != nil {
		r := RoundTo(*p.Rating, ratingDecimals)
		v.Rating = &r
	}

	if p.UserRatingsTotal != nil && *p.UserRatingsTotal > 0 {
		v.UserRatingsTotal = *p.UserRatingsTotal
	}

	return v
}

// RoundTo rounds x half away from zero to the given number of decimals.
func RoundTo(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}
