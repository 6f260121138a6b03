package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	SeedPath    string

	RedisURL       string
	SearchCacheTTL time.Duration

	ORSAPIKey  string
	ORSBaseURL string
	ORSProfile string

	GoogleMapsAPIKey string
	PlacesBaseURL    string
	PlacesRateLimit  float64
	PlacesPageDelay  time.Duration

	DefaultRadiusMiles   float64
	RequireVenueAddress  bool
	ExcludeWorshipPlaces bool

	LogLevel  string
	LogFormat string
}

// Load reads every setting, applying defaults for unset or malformed values.
func Load() Config {
	return Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedPath:    Get("SEED_PATH", ""),

		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		SearchCacheTTL: GetDuration("SEARCH_CACHE_TTL", 15*time.Minute),

		ORSAPIKey:  strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSBaseURL: Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSProfile: Get("ORS_PROFILE", "foot-walking"),

		GoogleMapsAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		PlacesBaseURL:    Get("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesRateLimit:  GetFloat("PLACES_RATE_LIMIT", 5),
		PlacesPageDelay:  GetDuration("PLACES_PAGE_DELAY", 2*time.Second),

		DefaultRadiusMiles:   GetFloat("DEFAULT_RADIUS_MILES", 10),
		RequireVenueAddress:  GetBool("REQUIRE_VENUE_ADDRESS", false),
		ExcludeWorshipPlaces: GetBool("EXCLUDE_WORSHIP_PLACES", true),

		LogLevel:  Get("LOG_LEVEL", "info"),
		LogFormat: Get("LOG_FORMAT", "json"),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid float value %q, using default %v", v, fallback)
		return fallback
	}
	return f
}

func GetBool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid boolean value %q, using default %v", v, fallback)
		return fallback
	}
	return b
}

// GetDuration accepts Go duration strings ("2s", "15m").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid duration value %q, using default %v", v, fallback)
		return fallback
	}
	return d
}
