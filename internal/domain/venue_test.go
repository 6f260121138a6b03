package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVenueFromRaw(t *testing.T) {
	vicinity := "  12 Main St  "
	rating := 4.46
	total := 120

	v := NewVenueFromRaw(RawPlace{
		PlaceID:          "p1",
		Name:             " The Ale House ",
		Vicinity:         &vicinity,
		Location:         Coordinates{Lon: -75.165222712345, Lat: 39.952583712345},
		Rating:           &rating,
		UserRatingsTotal: &total,
		Types:            []string{"bar"},
	})

	assert.Equal(t, "p1", v.PlaceID)
	assert.Equal(t, "The Ale House", v.Name)
	require.NotNil(t, v.Address)
	assert.Equal(t, "12 Main St", *v.Address)
	assert.Equal(t, 39.9525837, v.Latitude)
	assert.Equal(t, -75.1652227, v.Longitude)
	require.NotNil(t, v.Rating)
	assert.Equal(t, 4.5, *v.Rating)
	assert.Equal(t, 120, v.UserRatingsTotal)
}

func TestNewVenueFromRawOptionalFields(t *testing.T) {
	blank := "   "
	v := NewVenueFromRaw(RawPlace{PlaceID: "p2", Name: "Pub", Vicinity: &blank})

	assert.Nil(t, v.Address)
	assert.Nil(t, v.Rating)
	assert.Equal(t, 0, v.UserRatingsTotal)
}

func TestCoordinatesValidate(t *testing.T) {
	assert.NoError(t, Coordinates{Lat: 90, Lon: -180}.Validate())

	err := Coordinates{Lat: 91, Lon: 0}.Validate()
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	err = Coordinates{Lat: 0, Lon: math.NaN()}.Validate()
	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Len(t, de.Details, 1)
	assert.Contains(t, de.Details[0], "longitude")
}

func TestSearchRequestRadiusMeters(t *testing.T) {
	assert.Equal(t, 16090, SearchRequest{}.RadiusMeters())
	assert.Equal(t, 8045, SearchRequest{RadiusMiles: 5}.RadiusMeters())
	assert.Equal(t, MaxRadiusMeters, SearchRequest{RadiusMiles: 100}.RadiusMeters())
	assert.Equal(t, MinRadiusMeters, SearchRequest{RadiusMiles: 0.0005}.RadiusMeters())
	assert.Equal(t, "bar", SearchRequest{}.Category())
	assert.Equal(t, "brewery", SearchRequest{CategoryHint: " Brewery "}.Category())
}

func TestSearchRequestEffectiveRadiusMiles(t *testing.T) {
	assert.Equal(t, DefaultRadiusMiles, SearchRequest{}.EffectiveRadiusMiles())
	assert.Equal(t, 5.0, SearchRequest{RadiusMiles: 5}.EffectiveRadiusMiles())
	assert.InDelta(t, 31.075, SearchRequest{RadiusMiles: 100}.EffectiveRadiusMiles(), 0.001)
}
