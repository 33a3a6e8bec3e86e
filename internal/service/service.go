package service

import (
	"context"
	"time"

	"github.com/doffpett/evhenter/internal/entity"
)

type EventService interface {
	ListEvents(ctx context.Context, raw entity.RawEventFilter) (*EventList, error)
	GetEvent(ctx context.Context, identifier string) (*entity.Event, error)
	FeaturedEvents(ctx context.Context) ([]*entity.Event, error)
	SubmitEvent(ctx context.Context, req *SubmitEventRequest, userID string) (*entity.CreatedEvent, error)
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, string, error)
	Login(ctx context.Context, req *LoginRequest) (*entity.User, string, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type ParserService interface {
	ParseEventFromURL(ctx context.Context, url string) (*EventDraft, error)
	GenerateEventImage(ctx context.Context, req *GenerateImageRequest) (string, error)
}

// ListingCache caches reference data and single events between requests.
// A nil cache disables caching; misses and cache errors fall through to
// the store.
type ListingCache interface {
	GetMetadata(ctx context.Context) (*entity.ListMetadata, error)
	SetMetadata(ctx context.Context, metadata *entity.ListMetadata) error
	GetEvent(ctx context.Context, identifier string) (*entity.Event, error)
	SetEvent(ctx context.Context, identifier string, event *entity.Event) error
}

// FilterEcho mirrors the normalized filters actually applied to a listing,
// not the raw request input.
type FilterEcho struct {
	City      *string    `json:"city"`
	EventType *string    `json:"eventType"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Search    *string    `json:"search"`
	Featured  bool       `json:"featured"`
}

// EventList is the composed listing result. Metadata is only attached to
// first pages; every other page carries nil.
type EventList struct {
	Events     []*entity.Event      `json:"data"`
	Pagination Pagination           `json:"pagination"`
	Filters    FilterEcho           `json:"filters"`
	Metadata   *entity.ListMetadata `json:"metadata"`
}

// SubmitEventRequest carries an authenticated event submission.
type SubmitEventRequest struct {
	Title         string     `json:"title" binding:"required,min=3,max=255"`
	Description   *string    `json:"description" binding:"omitempty,max=5000"`
	EventTypeID   *string    `json:"event_type_id"`
	LocationID    *string    `json:"location_id"`
	VenueName     *string    `json:"venue_name"`
	VenueAddress  *string    `json:"venue_address"`
	StartDate     time.Time  `json:"start_date" binding:"required"`
	EndDate       *time.Time `json:"end_date"`
	OriginalURL   *string    `json:"original_url" binding:"omitempty,url"`
	TicketURL     *string    `json:"ticket_url" binding:"omitempty,url"`
	ImageURL      *string    `json:"image_url" binding:"omitempty,url"`
	OrganizerName *string    `json:"organizer_name"`
	OrganizerURL  *string    `json:"organizer_url" binding:"omitempty,url"`
	PriceMin      *float64   `json:"price_min" binding:"omitempty,min=0"`
	PriceMax      *float64   `json:"price_max" binding:"omitempty,min=0"`
	IsFree        bool       `json:"is_free"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EventDraft is the structured record extracted from an arbitrary event
// page by the AI collaborator. Fields the model could not find stay nil.
type EventDraft struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	EventType     string   `json:"eventType"`
	VenueName     *string  `json:"venueName,omitempty"`
	VenueAddress  *string  `json:"venueAddress,omitempty"`
	City          string   `json:"city"`
	StartDate     string   `json:"startDate"`
	EndDate       *string  `json:"endDate,omitempty"`
	IsFree        bool     `json:"isFree"`
	PriceMin      *float64 `json:"priceMin,omitempty"`
	PriceMax      *float64 `json:"priceMax,omitempty"`
	OrganizerName *string  `json:"organizerName,omitempty"`
	OrganizerURL  *string  `json:"organizerUrl,omitempty"`
	TicketURL     *string  `json:"ticketUrl,omitempty"`
	Capacity      *int     `json:"capacity,omitempty"`
}

type GenerateImageRequest struct {
	Title       string `json:"title" binding:"required"`
	EventType   string `json:"eventType" binding:"required"`
	City        string `json:"city"`
	Description string `json:"description"`
}
