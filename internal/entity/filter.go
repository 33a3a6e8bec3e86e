package entity

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 24
	MaxLimit     = 100
)

// EventFilter is the normalized query intent for one listing request.
// It is built once from raw parameters, consumed immediately and never
// shared between requests.
type EventFilter struct {
	Page         int
	Limit        int
	City         string
	EventType    string
	StartDate    *time.Time
	EndDate      *time.Time
	Search       string
	FeaturedOnly bool
}

// RawEventFilter holds the query parameters exactly as received.
type RawEventFilter struct {
	Page      string
	Limit     string
	City      string
	EventType string
	StartDate string
	EndDate   string
	Search    string
	Featured  string
}

// NormalizeEventFilter validates and types raw listing parameters.
// Pagination inputs are clamped, never rejected; only an unparseable
// date fails. It supplies no default lower time bound, the predicate
// builder injects "now" when StartDate stays nil.
func NormalizeEventFilter(raw RawEventFilter) (*EventFilter, error) {
	f := &EventFilter{
		Page:         parsePage(raw.Page),
		Limit:        parseLimit(raw.Limit),
		City:         strings.TrimSpace(raw.City),
		EventType:    strings.TrimSpace(raw.EventType),
		Search:       strings.TrimSpace(raw.Search),
		FeaturedOnly: raw.Featured == "true",
	}

	if raw.StartDate != "" {
		t, err := parseDate(raw.StartDate)
		if err != nil {
			return nil, NewValidationError("invalid startDate, use ISO 8601 format")
		}
		f.StartDate = &t
	}

	if raw.EndDate != "" {
		t, err := parseDate(raw.EndDate)
		if err != nil {
			return nil, NewValidationError("invalid endDate, use ISO 8601 format")
		}
		f.EndDate = &t
	}

	return f, nil
}

// Offset derives the row offset for the page fetch.
func (f *EventFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultLimit
	}
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
