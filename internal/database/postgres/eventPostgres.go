package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/doffpett/evhenter/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

// List executes the count and row queries for one predicate. Both run
// concurrently; the request fails as a whole if either fails, so the
// reported total always matches the returned page.
func (r *eventRepository) List(ctx context.Context, filter *entity.EventFilter, now time.Time) ([]*entity.Event, int, error) {
	predicate := BuildEventPredicate(filter, now)

	countQuery, countArgs, err := predicate.CountSQL()
	if err != nil {
		return nil, 0, entity.NewQueryError("build count", err)
	}
	pageQuery, pageArgs, err := predicate.PageSQL(filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, entity.NewQueryError("build page", err)
	}

	var (
		total  int
		events []*entity.Event
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, countQuery, countArgs...).Scan(&total); err != nil {
			return entity.NewQueryError("count events", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.db.QueryContext(gctx, pageQuery, pageArgs...)
		if err != nil {
			return entity.NewQueryError("list events", err)
		}
		defer rows.Close()

		for rows.Next() {
			event, err := scanListedEvent(rows)
			if err != nil {
				return entity.NewQueryError("scan event", err)
			}
			events = append(events, event)
		}
		if err := rows.Err(); err != nil {
			return entity.NewQueryError("list events", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func scanListedEvent(rows *sql.Rows) (*entity.Event, error) {
	var event entity.Event
	err := rows.Scan(
		&event.ID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.VenueName,
		&event.VenueAddress,
		&event.OriginalURL,
		&event.TicketURL,
		&event.ImageURL,
		&event.OrganizerName,
		&event.PriceMin,
		&event.PriceMax,
		&event.Currency,
		&event.IsFree,
		&event.IsFeatured,
		&event.EventType,
		&event.EventTypeSlug,
		&event.EventTypeIcon,
		&event.EventTypeColor,
		&event.LocationName,
		&event.City,
		&event.Region,
		&event.Latitude,
		&event.Longitude,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetByIdentifier looks up one publicly visible event by UUID or slug.
func (r *eventRepository) GetByIdentifier(ctx context.Context, identifier string) (*entity.Event, error) {
	query := `
		SELECT
			e.id, e.title, e.slug, e.description, e.start_date, e.end_date,
			e.venue_name, e.venue_address, e.original_url, e.ticket_url, e.image_url,
			e.organizer_name, e.organizer_url, e.price_min, e.price_max, e.currency,
			e.is_free, e.is_featured,
			et.name AS event_type, et.slug AS event_type_slug,
			et.icon AS event_type_icon, et.color AS event_type_color,
			l.name AS location_name, l.city, l.region, l.latitude, l.longitude,
			e.created_at, e.published_at
		FROM events e
		LEFT JOIN event_types et ON e.event_type_id = et.id
		LEFT JOIN locations l ON e.location_id = l.id
		WHERE (e.id::text = $1 OR e.slug = $1)
			AND e.status = 'approved'
			AND e.is_cancelled = false
	`

	var event entity.Event
	err := r.db.QueryRowContext(ctx, query, identifier).Scan(
		&event.ID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.VenueName,
		&event.VenueAddress,
		&event.OriginalURL,
		&event.TicketURL,
		&event.ImageURL,
		&event.OrganizerName,
		&event.OrganizerURL,
		&event.PriceMin,
		&event.PriceMax,
		&event.Currency,
		&event.IsFree,
		&event.IsFeatured,
		&event.EventType,
		&event.EventTypeSlug,
		&event.EventTypeIcon,
		&event.EventTypeColor,
		&event.LocationName,
		&event.City,
		&event.Region,
		&event.Latitude,
		&event.Longitude,
		&event.CreatedAt,
		&event.PublishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, entity.NewQueryError("get event", err)
	}

	return &event, nil
}

// Create inserts a submitted event with status 'pending'.
func (r *eventRepository) Create(ctx context.Context, event *entity.NewEvent) (*entity.CreatedEvent, error) {
	query := `
		INSERT INTO events (
			title, slug, description, event_type_id, location_id,
			venue_name, venue_address, start_date, end_date,
			original_url, ticket_url, image_url,
			organizer_name, organizer_url,
			price_min, price_max, is_free,
			source, submitted_by, status
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, 'pending'
		)
		RETURNING id, slug, created_at
	`

	var created entity.CreatedEvent
	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Slug,
		event.Description,
		event.EventTypeID,
		event.LocationID,
		event.VenueName,
		event.VenueAddress,
		event.StartDate,
		event.EndDate,
		event.OriginalURL,
		event.TicketURL,
		event.ImageURL,
		event.OrganizerName,
		event.OrganizerURL,
		event.PriceMin,
		event.PriceMax,
		event.IsFree,
		event.Source,
		event.SubmittedBy,
	).Scan(&created.ID, &created.Slug, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &created, nil
}

// EventTypes returns the full taxonomy, name ascending.
func (r *eventRepository) EventTypes(ctx context.Context) ([]*entity.EventType, error) {
	query := `
		SELECT id, name, slug, description, icon, color
		FROM event_types
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, entity.NewQueryError("list event types", err)
	}
	defer rows.Close()

	var types []*entity.EventType
	for rows.Next() {
		var et entity.EventType
		if err := rows.Scan(&et.ID, &et.Name, &et.Slug, &et.Description, &et.Icon, &et.Color); err != nil {
			return nil, entity.NewQueryError("scan event type", err)
		}
		types = append(types, &et)
	}
	if err := rows.Err(); err != nil {
		return nil, entity.NewQueryError("list event types", err)
	}

	return types, nil
}

// CitiesWithCounts aggregates cities that still have at least one future,
// approved, non-cancelled event, most events first, ties by name.
func (r *eventRepository) CitiesWithCounts(ctx context.Context, now time.Time) ([]*entity.CityCount, error) {
	query := `
		SELECT l.city, COUNT(e.id) AS event_count
		FROM locations l
		LEFT JOIN events e ON e.location_id = l.id
			AND e.status = 'approved'
			AND e.is_cancelled = false
			AND e.start_date >= $1
		GROUP BY l.city
		HAVING COUNT(e.id) > 0
		ORDER BY event_count DESC, l.city ASC
	`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, entity.NewQueryError("list cities", err)
	}
	defer rows.Close()

	var cities []*entity.CityCount
	for rows.Next() {
		var cc entity.CityCount
		if err := rows.Scan(&cc.City, &cc.EventCount); err != nil {
			return nil, entity.NewQueryError("scan city", err)
		}
		cities = append(cities, &cc)
	}
	if err := rows.Err(); err != nil {
		return nil, entity.NewQueryError("list cities", err)
	}

	return cities, nil
}
