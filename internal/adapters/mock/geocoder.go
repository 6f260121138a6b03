package mock

import (
	"context"
	"crawl-route-service/internal/domain"
	"sync"
)

// Geocoder resolves from a fixed address book. Unknown addresses are NotFound.
type Geocoder struct {
	mu    sync.Mutex
	book  map[string]domain.Coordinates
	Err   error
	Calls int
}

func NewGeocoder(book map[string]domain.Coordinates) *Geocoder {
	return &Geocoder{book: book}
}

func (g *Geocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls++

	if g.Err != nil {
		return domain.Coordinates{}, g.Err
	}

	c, ok := g.book[address]
	if !ok {
		return domain.Coordinates{}, domain.NotFound("geocode", "no match for address", address)
	}
	return c, nil
}
