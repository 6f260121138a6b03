package services

import (
	"crawl-route-service/internal/domain"
	"strings"
)

var (
	// Lowercase name fragments that mark a place as alcohol-serving.
	DefaultAlcoholNameTerms = []string{
		"bar", "pub", "tavern", "brewery", "beer", "wine", "spirits", "cocktail", "lounge", "ale house",
	}

	DefaultAlcoholTypes = []string{"bar", "night_club", "brewery"}

	DefaultUnwantedTypes = []string{
		"beauty_salon", "hair_care", "barber", "grocery_store", "supermarket", "school", "store",
	}

	WorshipTypes = []string{"church", "mosque", "temple"}
)

// SearchSource tells the classifier how a raw place was found.
type SearchSource int

const (
	SourceCategory SearchSource = iota
	SourceKeyword
)

func (s SearchSource) String() string {
	if s == SourceKeyword {
		return "keyword"
	}
	return "category"
}

type Verdict int

const (
	Keep Verdict = iota
	Reject
)

type ClassifierConfig struct {
	AlcoholNameTerms []string
	AlcoholTypes     []string
	UnwantedTypes    []string
	// RequireAddress rejects places without a vicinity.
	RequireAddress bool
}

// DefaultClassifierConfig returns the standard term sets, optionally
// extending the unwanted set with places of worship.
func DefaultClassifierConfig(excludeWorship, requireAddress bool) ClassifierConfig {
	unwanted := append([]string(nil), DefaultUnwantedTypes...)
	if excludeWorship {
		unwanted = append(unwanted, WorshipTypes...)
	}

	return ClassifierConfig{
		AlcoholNameTerms: DefaultAlcoholNameTerms,
		AlcoholTypes:     DefaultAlcoholTypes,
		UnwantedTypes:    unwanted,
		RequireAddress:   requireAddress,
	}
}

// VenueClassifier decides which raw search results become venues.
// It holds only immutable sets and is safe for concurrent use.
type VenueClassifier struct {
	nameTerms      []string
	alcoholTypes   map[string]struct{}
	unwantedTypes  map[string]struct{}
	requireAddress bool
}

func NewVenueClassifier(cfg ClassifierConfig) *VenueClassifier {
	terms := make([]string, 0, len(cfg.AlcoholNameTerms))
	for _, t := range cfg.AlcoholNameTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}

	return &VenueClassifier{
		nameTerms:      terms,
		alcoholTypes:   toSet(cfg.AlcoholTypes),
		unwantedTypes:  toSet(cfg.UnwantedTypes),
		requireAddress: cfg.RequireAddress,
	}
}

// IsAlcoholVenue reports whether the name contains an alcohol term or the
// place carries an alcohol category tag. Matching is case-insensitive.
func (c *VenueClassifier) IsAlcoholVenue(p domain.RawPlace) bool {
	name := strings.ToLower(p.Name)
	for _, term := range c.nameTerms {
		if strings.Contains(name, term) {
			return true
		}
	}

	return intersects(p.Types, c.alcoholTypes)
}

// Classify applies the unwanted-category and address policy. Keyword results
// must also pass IsAlcoholVenue; category results are trusted.
func (c *VenueClassifier) Classify(p domain.RawPlace, src SearchSource) Verdict {
	if strings.TrimSpace(p.PlaceID) == "" {
		return Reject
	}

	if intersects(p.Types, c.unwantedTypes) {
		return Reject
	}

	if c.requireAddress && (p.Vicinity == nil || strings.TrimSpace(*p.Vicinity) == "") {
		return Reject
	}

	if src == SourceKeyword && !c.IsAlcoholVenue(p) {
		return Reject
	}

	return Keep
}

func toSet(items []string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[strings.ToLower(strings.TrimSpace(it))] = struct{}{}
	}
	return s
}

func intersects(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}
