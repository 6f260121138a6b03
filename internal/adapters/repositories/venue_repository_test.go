package repositories

import (
	"context"
	"crawl-route-service/internal/domain"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newMockRepo(t *testing.T) (*PostgresVenueRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresVenueRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestPostgresUpsertVenues(t *testing.T) {
	repo, mock := newMockRepo(t)

	venues := []domain.Venue{
		{PlaceID: "p1", Name: "Dirty Frank's", Address: ptr("347 S 13th St"), Latitude: 39.9451, Longitude: -75.1628, Rating: ptr(4.5), UserRatingsTotal: 900},
		{PlaceID: "p2", Name: "New Spot", Latitude: 39.95, Longitude: -75.16},
	}

	insert := regexp.QuoteMeta("INSERT INTO venues (place_id, name, address, latitude, longitude, rating, user_ratings_total) VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (place_id) DO UPDATE")
	mock.ExpectBegin()
	mock.ExpectExec(insert).
		WithArgs("p1", "Dirty Frank's", "347 S 13th St", 39.9451, -75.1628, 4.5, 900).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).
		WithArgs("p2", "New Spot", nil, 39.95, -75.16, nil, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertVenues(context.Background(), venues))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertVenuesRejectsEmptyPlaceID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.UpsertVenues(context.Background(), []domain.Venue{{Name: "nameless"}})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetVenuesByIDsKeepsRequestOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"place_id", "name", "address", "latitude", "longitude", "rating", "user_ratings_total"}).
		AddRow("p1", "A", "1 Main St", 39.9, -75.1, 4.5, 10).
		AddRow("p2", "B", nil, 39.8, -75.2, nil, 0)

	mock.ExpectQuery(regexp.QuoteMeta("FROM venues WHERE place_id IN ($1, $2)")).
		WithArgs("p2", "p1").
		WillReturnRows(rows)

	got, err := repo.GetVenuesByIDs(context.Background(), []string{"p2", "p1", "p2"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].PlaceID)
	assert.Nil(t, got[0].Address)
	assert.Nil(t, got[0].Rating)
	assert.Equal(t, "p1", got[1].PlaceID)
	require.NotNil(t, got[1].Rating)
	assert.Equal(t, 4.5, *got[1].Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetVenuesByIDsReportsMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM venues WHERE place_id IN ($1, $2)")).
		WithArgs("p1", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"place_id", "name", "address", "latitude", "longitude", "rating", "user_ratings_total"}).
			AddRow("p1", "A", nil, 39.9, -75.1, nil, 0))

	_, err := repo.GetVenuesByIDs(context.Background(), []string{"p1", "ghost"})
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNotFound, de.Kind)
	assert.Equal(t, []string{"ghost"}, de.Details)
}

func TestMemoryUpsertIsIdempotentAndOverwrites(t *testing.T) {
	repo := NewMemoryVenueRepository()
	ctx := context.Background()

	first := domain.Venue{PlaceID: "p1", Name: "Old Name", Rating: ptr(3.0)}
	require.NoError(t, repo.UpsertVenues(ctx, []domain.Venue{first}))
	require.NoError(t, repo.UpsertVenues(ctx, []domain.Venue{first}))
	assert.Equal(t, 1, repo.Len())

	updated := domain.Venue{PlaceID: "p1", Name: "New Name", Rating: ptr(4.2), UserRatingsTotal: 12}
	require.NoError(t, repo.UpsertVenues(ctx, []domain.Venue{updated}))

	got, err := repo.GetVenuesByIDs(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Venue{updated}, got)
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryGetVenuesByIDsNotFound(t *testing.T) {
	repo := NewMemoryVenueRepository()
	_, err := repo.GetVenuesByIDs(context.Background(), []string{"nope"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSeedFromJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "venues.json")
	data := `[
		{"place_id": " p1 ", "name": "Dirty Frank's", "latitude": 39.94512345678, "longitude": -75.1628, "rating": 4.5},
		{"place_id": "p2", "name": "Bob & Barbara's", "latitude": 39.9437, "longitude": -75.1672}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	repo := NewMemoryVenueRepository()
	n, err := SeedFromJSON(context.Background(), repo, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repo.GetVenuesByIDs(context.Background(), []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, 39.9451235, got[0].Latitude)
}

func TestSeedFromJSONRejectsBadRows(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"empty id":      `[{"place_id": "", "name": "x", "latitude": 1, "longitude": 1}]`,
		"empty name":    `[{"place_id": "p", "name": " ", "latitude": 1, "longitude": 1}]`,
		"bad latitude":  `[{"place_id": "p", "name": "x", "latitude": 91, "longitude": 1}]`,
		"malformed doc": `{`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

			_, err := SeedFromJSON(context.Background(), NewMemoryVenueRepository(), path)
			assert.Error(t, err)
		})
	}
}
