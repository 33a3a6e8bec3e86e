package entity

import (
	"time"
)

type EventStatus string

const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

// Event is the flattened public listing shape: one row of the events table
// joined with its event type and location.
type Event struct {
	ID            string     `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Description   *string    `json:"description" db:"description"`
	StartDate     time.Time  `json:"start_date" db:"start_date"`
	EndDate       *time.Time `json:"end_date" db:"end_date"`
	VenueName     *string    `json:"venue_name" db:"venue_name"`
	VenueAddress  *string    `json:"venue_address" db:"venue_address"`
	OriginalURL   *string    `json:"original_url" db:"original_url"`
	TicketURL     *string    `json:"ticket_url" db:"ticket_url"`
	ImageURL      *string    `json:"image_url" db:"image_url"`
	OrganizerName *string    `json:"organizer_name" db:"organizer_name"`
	OrganizerURL  *string    `json:"organizer_url,omitempty" db:"organizer_url"`
	PriceMin      *float64   `json:"price_min" db:"price_min"`
	PriceMax      *float64   `json:"price_max" db:"price_max"`
	Currency      *string    `json:"currency" db:"currency"`
	IsFree        bool       `json:"is_free" db:"is_free"`
	IsFeatured    bool       `json:"is_featured" db:"is_featured"`

	EventType      *string `json:"event_type" db:"event_type"`
	EventTypeSlug  *string `json:"event_type_slug" db:"event_type_slug"`
	EventTypeIcon  *string `json:"event_type_icon" db:"event_type_icon"`
	EventTypeColor *string `json:"event_type_color" db:"event_type_color"`

	LocationName *string  `json:"location_name" db:"location_name"`
	City         *string  `json:"city" db:"city"`
	Region       *string  `json:"region" db:"region"`
	Latitude     *float64 `json:"latitude" db:"latitude"`
	Longitude    *float64 `json:"longitude" db:"longitude"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
}

// EventType is immutable classification reference data.
type EventType struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Slug        string  `json:"slug" db:"slug"`
	Description *string `json:"description" db:"description"`
	Icon        *string `json:"icon" db:"icon"`
	Color       *string `json:"color" db:"color"`
}

type Location struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	City      string   `json:"city" db:"city"`
	Region    *string  `json:"region" db:"region"`
	Latitude  *float64 `json:"latitude" db:"latitude"`
	Longitude *float64 `json:"longitude" db:"longitude"`
}

// CityCount is one row of the cities filter metadata: a city together with
// the number of its future, approved, non-cancelled events.
type CityCount struct {
	City       string `json:"city" db:"city"`
	EventCount int    `json:"event_count" db:"event_count"`
}

// ListMetadata populates the client's filter dropdowns. It is computed
// without the active filter applied and only attached to first pages.
type ListMetadata struct {
	EventTypes []*EventType `json:"eventTypes"`
	Cities     []*CityCount `json:"cities"`
}

// NewEvent carries a submitted event on its way into the store.
type NewEvent struct {
	Title         string
	Slug          string
	Description   *string
	EventTypeID   *string
	LocationID    *string
	VenueName     *string
	VenueAddress  *string
	StartDate     time.Time
	EndDate       *time.Time
	OriginalURL   *string
	TicketURL     *string
	ImageURL      *string
	OrganizerName *string
	OrganizerURL  *string
	PriceMin      *float64
	PriceMax      *float64
	IsFree        bool
	Source        string
	SubmittedBy   *string
}

// CreatedEvent is what the store reports back for a submission.
type CreatedEvent struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
