package mock

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/ports"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// PlacesSearcher serves canned pages per category and results per keyword.
// Category pages are chained by token: page i carries token "<category>#<i+1>".
type PlacesSearcher struct {
	mu sync.Mutex

	Pages       map[string][][]domain.RawPlace
	Keywords    map[string][]domain.RawPlace
	CategoryErr map[string]error
	KeywordErr  map[string]error

	NearbyQueries  []ports.NearbyQuery
	KeywordQueries []ports.KeywordQuery
}

func NewPlacesSearcher() *PlacesSearcher {
	return &PlacesSearcher{
		Pages:       map[string][][]domain.RawPlace{},
		Keywords:    map[string][]domain.RawPlace{},
		CategoryErr: map[string]error{},
		KeywordErr:  map[string]error{},
	}
}

func (s *PlacesSearcher) SearchNearby(_ context.Context, q ports.NearbyQuery) (ports.PlacesPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NearbyQueries = append(s.NearbyQueries, q)

	category, idx := q.Category, 0
	if q.PageToken != "" {
		category, idx = splitToken(q.PageToken)
	}

	if err := s.CategoryErr[category]; err != nil {
		return ports.PlacesPage{}, err
	}

	pages := s.Pages[category]
	if idx >= len(pages) {
		return ports.PlacesPage{}, nil
	}

	page := ports.PlacesPage{Results: pages[idx]}
	if idx+1 < len(pages) {
		page.NextPageToken = fmt.Sprintf("%s#%d", category, idx+1)
	}

	return page, nil
}

func (s *PlacesSearcher) SearchByKeyword(_ context.Context, q ports.KeywordQuery) ([]domain.RawPlace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.KeywordQueries = append(s.KeywordQueries, q)

	if err := s.KeywordErr[q.Keyword]; err != nil {
		return nil, err
	}

	return s.Keywords[q.Keyword], nil
}

// CallCount returns the total number of upstream searches issued.
func (s *PlacesSearcher) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.NearbyQueries) + len(s.KeywordQueries)
}

func splitToken(tok string) (string, int) {
	i := strings.LastIndexByte(tok, '#')
	if i < 0 {
		return tok, 0
	}
	n, err := strconv.Atoi(tok[i+1:])
	if err != nil {
		return tok, 0
	}
	return tok[:i], n
}
