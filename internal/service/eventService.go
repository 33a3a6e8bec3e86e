package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	repository "github.com/doffpett/evhenter/internal/database/postgres"
	"github.com/doffpett/evhenter/internal/entity"
)

const featuredListLimit = 6

type eventService struct {
	eventRepo repository.EventRepository
	cache     ListingCache
	now       func() time.Time
}

// NewEventService wires the listing engine. The clock is injectable so the
// implicit "now" lower bound can be fixed in tests; pass nil for time.Now.
func NewEventService(eventRepo repository.EventRepository, cache ListingCache, now func() time.Time) EventService {
	if now == nil {
		now = time.Now
	}
	return &eventService{
		eventRepo: eventRepo,
		cache:     cache,
		now:       now,
	}
}

// ListEvents runs the full pipeline: normalize, query, paginate, compose.
// "now" is read once per request so the count and page queries share the
// same lower time bound.
func (s *eventService) ListEvents(ctx context.Context, raw entity.RawEventFilter) (*EventList, error) {
	filter, err := entity.NormalizeEventFilter(raw)
	if err != nil {
		return nil, err
	}

	now := s.now()

	events, total, err := s.eventRepo.List(ctx, filter, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	list := &EventList{
		Events:     events,
		Pagination: NewPagination(total, filter.Page, filter.Limit),
		Filters:    echoFilters(filter),
	}
	if list.Events == nil {
		list.Events = []*entity.Event{}
	}

	// Filter dropdowns only need populating once per browsing session, so
	// the metadata pair of queries is skipped beyond the first page.
	if filter.Page == 1 {
		metadata, err := s.listMetadata(ctx, now)
		if err != nil {
			return nil, err
		}
		list.Metadata = metadata
	}

	return list, nil
}

func (s *eventService) listMetadata(ctx context.Context, now time.Time) (*entity.ListMetadata, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetMetadata(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	var (
		types  []*entity.EventType
		cities []*entity.CityCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		types, err = s.eventRepo.EventTypes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cities, err = s.eventRepo.CitiesWithCounts(gctx, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load listing metadata: %w", err)
	}

	metadata := &entity.ListMetadata{
		EventTypes: types,
		Cities:     cities,
	}
	if metadata.EventTypes == nil {
		metadata.EventTypes = []*entity.EventType{}
	}
	if metadata.Cities == nil {
		metadata.Cities = []*entity.CityCount{}
	}

	if s.cache != nil {
		if err := s.cache.SetMetadata(ctx, metadata); err != nil {
			logrus.WithError(err).Warn("failed to cache listing metadata")
		}
	}

	return metadata, nil
}

func echoFilters(f *entity.EventFilter) FilterEcho {
	return FilterEcho{
		City:      optionalString(f.City),
		EventType: optionalString(f.EventType),
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Search:    optionalString(f.Search),
		Featured:  f.FeaturedOnly,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *eventService) GetEvent(ctx context.Context, identifier string) (*entity.Event, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetEvent(ctx, identifier); err == nil && cached != nil {
			return cached, nil
		}
	}

	event, err := s.eventRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetEvent(ctx, identifier, event); err != nil {
			logrus.WithError(err).Warn("failed to cache event")
		}
	}

	return event, nil
}

// FeaturedEvents reuses the listing engine with featuredOnly set; there is
// deliberately no separate query path for the featured strip.
func (s *eventService) FeaturedEvents(ctx context.Context) ([]*entity.Event, error) {
	list, err := s.ListEvents(ctx, entity.RawEventFilter{
		Limit:    fmt.Sprintf("%d", featuredListLimit),
		Featured: "true",
	})
	if err != nil {
		return nil, err
	}
	return list.Events, nil
}

func (s *eventService) SubmitEvent(ctx context.Context, req *SubmitEventRequest, userID string) (*entity.CreatedEvent, error) {
	if req.StartDate.Before(s.now()) {
		return nil, entity.NewValidationError("start_date must be in the future")
	}
	if req.PriceMin != nil && req.PriceMax != nil && *req.PriceMax < *req.PriceMin {
		return nil, entity.NewValidationError("price_max must not be below price_min")
	}

	event := &entity.NewEvent{
		Title:         req.Title,
		Slug:          slugify(req.Title),
		Description:   req.Description,
		EventTypeID:   req.EventTypeID,
		LocationID:    req.LocationID,
		VenueName:     req.VenueName,
		VenueAddress:  req.VenueAddress,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		OriginalURL:   req.OriginalURL,
		TicketURL:     req.TicketURL,
		ImageURL:      req.ImageURL,
		OrganizerName: req.OrganizerName,
		OrganizerURL:  req.OrganizerURL,
		PriceMin:      req.PriceMin,
		PriceMax:      req.PriceMax,
		IsFree:        req.IsFree,
		Source:        "manual",
		SubmittedBy:   &userID,
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to submit event: %w", err)
	}

	return created, nil
}

var slugReplacer = strings.NewReplacer(
	"æ", "ae", "ø", "o", "å", "a",
	"Æ", "ae", "Ø", "o", "Å", "a",
)

// slugify builds a URL-safe, unique slug from a title. A short uuid suffix
// keeps repeated titles from colliding.
func slugify(title string) string {
	s := strings.ToLower(slugReplacer.Replace(title))

	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "event"
	}

	return slug + "-" + uuid.NewString()[:8]
}
