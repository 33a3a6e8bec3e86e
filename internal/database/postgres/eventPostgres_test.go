package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doffpett/evhenter/internal/entity"
)

var listColumns = []string{
	"id", "title", "slug", "description", "start_date", "end_date",
	"venue_name", "venue_address", "original_url", "ticket_url", "image_url",
	"organizer_name", "price_min", "price_max", "currency", "is_free", "is_featured",
	"event_type", "event_type_slug", "event_type_icon", "event_type_color",
	"location_name", "city", "region", "latitude", "longitude", "created_at",
}

func addListRow(rows *sqlmock.Rows, id, title, slug, city string, start time.Time, featured bool) {
	rows.AddRow(
		id, title, slug, "beskrivelse", start, nil,
		"Sentrum Scene", nil, nil, nil, nil,
		nil, nil, nil, "NOK", false, featured,
		"Konsert", "konsert", "music", "#e74c3c",
		"Sentrum Scene", city, "Oslo", nil, nil, start.Add(-30*24*time.Hour),
	)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	// Count and page queries run concurrently, so expectations cannot be
	// matched in order.
	mock.MatchExpectationsInOrder(false)
	return db, mock
}

func TestEventRepository_List(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(listColumns)
	addListRow(rows, "aaaa-1", "Jazzkveld", "jazzkveld-ab12cd34", "Oslo", now.Add(24*time.Hour), true)
	addListRow(rows, "aaaa-2", "Vinterfestival", "vinterfestival-ef56ab78", "Oslo", now.Add(48*time.Hour), false)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(3))
	mock.ExpectQuery(`SELECT "e"\."id"`).
		WillReturnRows(rows)

	filter := &entity.EventFilter{Page: 1, Limit: 2}
	events, total, err := repo.List(context.Background(), filter, now)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, events, 2)
	assert.Equal(t, "Jazzkveld", events[0].Title)
	assert.True(t, events[0].IsFeatured)
	assert.Nil(t, events[0].EndDate)
	require.NotNil(t, events[0].City)
	assert.Equal(t, "Oslo", *events[0].City)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListCountFailureFailsRequest(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectQuery(`SELECT "e"\."id"`).
		WillReturnRows(sqlmock.NewRows(listColumns))

	_, _, err := repo.List(context.Background(), &entity.EventFilter{Page: 1, Limit: 24}, now)

	require.Error(t, err)
	var qe *entity.QueryError
	assert.True(t, errors.As(err, &qe))
}

func TestEventRepository_ListEmpty(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))
	mock.ExpectQuery(`SELECT "e"\."id"`).
		WillReturnRows(sqlmock.NewRows(listColumns))

	events, total, err := repo.List(context.Background(), &entity.EventFilter{Page: 1, Limit: 24}, time.Now())

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, events)
}

func TestEventRepository_GetByIdentifier(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)
	start := time.Date(2026, 5, 17, 14, 0, 0, 0, time.UTC)

	columns := append(append([]string{}, listColumns[:12]...),
		"organizer_url", "price_min", "price_max", "currency", "is_free", "is_featured",
		"event_type", "event_type_slug", "event_type_icon", "event_type_color",
		"location_name", "city", "region", "latitude", "longitude", "created_at", "published_at",
	)

	rows := sqlmock.NewRows(columns).AddRow(
		"aaaa-1", "Nasjonaldagen", "nasjonaldagen-12ab34cd", "feiring", start, nil,
		"Karl Johans gate", nil, nil, nil, nil, nil,
		nil, nil, nil, "NOK", true, false,
		"Festival", "festival", "star", "#f39c12",
		"Sentrum", "Oslo", "Oslo", 59.91, 10.75, start.Add(-60*24*time.Hour), nil,
	)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (e.id::text = $1 OR e.slug = $1)`)).
		WithArgs("nasjonaldagen-12ab34cd").
		WillReturnRows(rows)

	event, err := repo.GetByIdentifier(context.Background(), "nasjonaldagen-12ab34cd")

	require.NoError(t, err)
	assert.Equal(t, "Nasjonaldagen", event.Title)
	assert.True(t, event.IsFree)
	require.NotNil(t, event.Latitude)
	assert.InDelta(t, 59.91, *event.Latitude, 0.001)
}

func TestEventRepository_GetByIdentifierNotFound(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)

	mock.ExpectQuery(`FROM events e`).
		WithArgs("finnes-ikke").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIdentifier(context.Background(), "finnes-ikke")

	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestEventRepository_EventTypes(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "description", "icon", "color"}).
		AddRow("t1", "Festival", "festival", nil, "star", "#f39c12").
		AddRow("t2", "Konsert", "konsert", nil, "music", "#e74c3c")

	mock.ExpectQuery(`FROM event_types`).WillReturnRows(rows)

	types, err := repo.EventTypes(context.Background())

	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "festival", types[0].Slug)
}

func TestEventRepository_CitiesWithCounts(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"city", "event_count"}).
		AddRow("Oslo", 12).
		AddRow("Bergen", 5)

	mock.ExpectQuery(`GROUP BY l\.city`).
		WithArgs(now).
		WillReturnRows(rows)

	cities, err := repo.CitiesWithCounts(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Oslo", cities[0].City)
	assert.Equal(t, 12, cities[0].EventCount)
}

func TestEventRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := NewEventRepository(db)
	start := time.Now().Add(14 * 24 * time.Hour)
	userID := "user-1"

	mock.ExpectQuery(`INSERT INTO events`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "created_at"}).
			AddRow("ev-1", "sommerkonsert-ab12cd34", time.Now()))

	created, err := repo.Create(context.Background(), &entity.NewEvent{
		Title:       "Sommerkonsert",
		Slug:        "sommerkonsert-ab12cd34",
		StartDate:   start,
		Source:      "manual",
		SubmittedBy: &userID,
	})

	require.NoError(t, err)
	assert.Equal(t, "ev-1", created.ID)
	assert.Equal(t, "sommerkonsert-ab12cd34", created.Slug)
}
