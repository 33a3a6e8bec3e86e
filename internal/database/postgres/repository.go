package repository

import (
	"context"
	"time"

	"github.com/doffpett/evhenter/internal/entity"
)

type EventRepository interface {
	// Listing engine: count and page rows computed against one predicate.
	List(ctx context.Context, filter *entity.EventFilter, now time.Time) ([]*entity.Event, int, error)

	GetByIdentifier(ctx context.Context, identifier string) (*entity.Event, error)
	Create(ctx context.Context, event *entity.NewEvent) (*entity.CreatedEvent, error)

	// Filter metadata
	EventTypes(ctx context.Context) ([]*entity.EventType, error)
	CitiesWithCounts(ctx context.Context, now time.Time) ([]*entity.CityCount, error)
}

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, name string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}
