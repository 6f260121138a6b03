package services

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
	"strings"
	"time"
)

// MinPageDelay is the shortest wait allowed between page fetches of one category.
const MinPageDelay = 2 * time.Second

var (
	DefaultCategoryMapping = map[string][]string{
		"bar":        {"bar", "night_club"},
		"night_club": {"night_club", "bar"},
		"brewery":    {"brewery"},
		"pub":        {"bar"},
	}

	DefaultKeywords = []string{"bar", "pub", "tavern", "brewery", "beer", "cocktail"}
)

type AggregatorConfig struct {
	CategoryMapping map[string][]string
	Keywords        []string
	PageDelay       time.Duration
	// MaxPages caps pages per category; zero follows every token.
	MaxPages int
}

func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		CategoryMapping: DefaultCategoryMapping,
		Keywords:        DefaultKeywords,
		PageDelay:       MinPageDelay,
	}
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type AggregatorOption func(*VenueAggregator)

// WithSleep replaces the inter-page wait.
func WithSleep(fn SleepFunc) AggregatorOption {
	return func(a *VenueAggregator) { a.sleep = fn }
}

// VenueAggregator runs every category and keyword search for one origin
// sequentially and turns the merged raw results into a ranked venue list.
type VenueAggregator struct {
	places     ports.PlacesSearcher
	classifier *VenueClassifier
	cfg        AggregatorConfig
	sleep      SleepFunc
}

func NewVenueAggregator(
	places ports.PlacesSearcher,
	classifier *VenueClassifier,
	cfg AggregatorConfig,
	opts ...AggregatorOption,
) *VenueAggregator {
	if cfg.PageDelay < MinPageDelay {
		cfg.PageDelay = MinPageDelay
	}
	if cfg.CategoryMapping == nil {
		cfg.CategoryMapping = DefaultCategoryMapping
	}

	a := &VenueAggregator{
		places:     places,
		classifier: classifier,
		cfg:        cfg,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Categories resolves a hint to upstream categories. Unknown hints pass through.
func (a *VenueAggregator) Categories(hint string) []string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		hint = domain.DefaultCategory
	}
	if cats, ok := a.cfg.CategoryMapping[hint]; ok {
		return cats
	}
	return []string{hint}
}

type sourcedPlace struct {
	place  domain.RawPlace
	source SearchSource
}

// Aggregation is the outcome of one aggregate run. DegradedLegs counts the
// category chains and keyword searches that failed and were skipped.
type Aggregation struct {
	Venues       []domain.Venue
	DegradedLegs int
}

// Complete reports whether every search leg succeeded.
func (g Aggregation) Complete() bool { return g.DegradedLegs == 0 }

// Aggregate searches around origin and returns deduplicated, ranked venues.
// Failed search legs are logged and skipped; only cancellation of ctx is an error.
func (a *VenueAggregator) Aggregate(
	ctx context.Context,
	origin domain.Coordinates,
	radiusMeters int,
	categoryHint string,
) ([]domain.Venue, error) {
	res, err := a.Collect(ctx, origin, radiusMeters, categoryHint)
	if err != nil {
		return nil, err
	}
	return res.Venues, nil
}

// Collect is Aggregate with the number of degraded legs reported alongside.
func (a *VenueAggregator) Collect(
	ctx context.Context,
	origin domain.Coordinates,
	radiusMeters int,
	categoryHint string,
) (_ Aggregation, err error) {
	defer obs.Time(ctx, "aggregator.Aggregate")(&err)

	var (
		collected []sourcedPlace
		degraded  int
	)

	for _, category := range a.Categories(categoryHint) {
		raws, ok, err := a.searchCategory(ctx, origin, radiusMeters, category)
		if err != nil {
			return Aggregation{}, err
		}
		if !ok {
			degraded++
		}
		for _, p := range raws {
			collected = append(collected, sourcedPlace{place: p, source: SourceCategory})
		}
	}

	for _, keyword := range a.cfg.Keywords {
		if err := ctx.Err(); err != nil {
			return Aggregation{}, err
		}

		raws, err := a.places.SearchByKeyword(ctx, ports.KeywordQuery{
			Keyword:      keyword,
			Origin:       origin,
			RadiusMeters: radiusMeters,
		})
		if err != nil {
			a.degraded(ctx, "keyword", keyword, err)
			degraded++
			continue
		}
		for _, p := range raws {
			collected = append(collected, sourcedPlace{place: p, source: SourceKeyword})
		}
	}

	return Aggregation{Venues: RankVenues(a.merge(collected)), DegradedLegs: degraded}, nil
}

// searchCategory follows the pagination chain for one category, pausing
// between pages. A failed page ends the chain with what was collected so far
// and reports ok=false.
func (a *VenueAggregator) searchCategory(
	ctx context.Context,
	origin domain.Coordinates,
	radiusMeters int,
	category string,
) ([]domain.RawPlace, bool, error) {
	q := ports.NearbyQuery{Origin: origin, RadiusMeters: radiusMeters, Category: category}
	seenTokens := map[string]struct{}{}

	var out []domain.RawPlace
	for page := 0; ; page++ {
		if page > 0 {
			if err := a.sleep(ctx, a.cfg.PageDelay); err != nil {
				return nil, false, err
			}
		} else if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		res, err := a.places.SearchNearby(ctx, q)
		if err != nil {
			a.degraded(ctx, "category", category, err)
			return out, false, nil
		}
		out = append(out, res.Results...)

		next := res.NextPageToken
		if next == "" {
			return out, true, nil
		}
		if a.cfg.MaxPages > 0 && page+1 >= a.cfg.MaxPages {
			return out, true, nil
		}
		if _, dup := seenTokens[next]; dup {
			return out, true, nil
		}
		seenTokens[next] = struct{}{}
		q.PageToken = next
	}
}

// merge classifies and dedupes by place id, keeping the first copy seen.
func (a *VenueAggregator) merge(collected []sourcedPlace) []domain.Venue {
	seen := make(map[string]struct{}, len(collected))
	out := make([]domain.Venue, 0, len(collected))

	for _, sp := range collected {
		if a.classifier.Classify(sp.place, sp.source) == Reject {
			continue
		}
		if _, dup := seen[sp.place.PlaceID]; dup {
			continue
		}
		seen[sp.place.PlaceID] = struct{}{}
		out = append(out, domain.NewVenueFromRaw(sp.place))
	}

	return out
}

func (a *VenueAggregator) degraded(ctx context.Context, kind, value string, err error) {
	obs.Logger(ctx).
		WithError(domain.Degraded("aggregate "+kind, err)).
		WithField(kind, value).
		Warn("search leg failed; continuing with partial results")
}
