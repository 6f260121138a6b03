package services

import (
	"cmp"
	"crawl-route-service/internal/domain"
	"slices"
)

// RankVenues returns a copy sorted by rating descending. Unrated venues
// sort after every rated one; equal ratings keep their input order.
func RankVenues(venues []domain.Venue) []domain.Venue {
	out := slices.Clone(venues)
	slices.SortStableFunc(out, func(a, b domain.Venue) int {
		switch {
		case a.Rating == nil && b.Rating == nil:
			return 0
		case a.Rating == nil:
			return 1
		case b.Rating == nil:
			return -1
		default:
			return cmp.Compare(*b.Rating, *a.Rating)
		}
	})
	return out
}
