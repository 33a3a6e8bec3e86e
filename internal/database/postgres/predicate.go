package repository

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/doffpett/evhenter/internal/entity"
)

const dialectPostgres = "postgres"

// Public listing columns, flattened across the two joins.
var eventColumns = []interface{}{
	goqu.I("e.id"),
	goqu.I("e.title"),
	goqu.I("e.slug"),
	goqu.I("e.description"),
	goqu.I("e.start_date"),
	goqu.I("e.end_date"),
	goqu.I("e.venue_name"),
	goqu.I("e.venue_address"),
	goqu.I("e.original_url"),
	goqu.I("e.ticket_url"),
	goqu.I("e.image_url"),
	goqu.I("e.organizer_name"),
	goqu.I("e.price_min"),
	goqu.I("e.price_max"),
	goqu.I("e.currency"),
	goqu.I("e.is_free"),
	goqu.I("e.is_featured"),
	goqu.I("et.name").As("event_type"),
	goqu.I("et.slug").As("event_type_slug"),
	goqu.I("et.icon").As("event_type_icon"),
	goqu.I("et.color").As("event_type_color"),
	goqu.I("l.name").As("location_name"),
	goqu.I("l.city").As("city"),
	goqu.I("l.region").As("region"),
	goqu.I("l.latitude"),
	goqu.I("l.longitude"),
	goqu.I("e.created_at"),
}

// EventPredicate is an ordered list of boolean conditions over the events
// listing join. The count and page queries are both derived from the same
// predicate, so their parameter lists only differ by the trailing
// limit/offset pair of the page variant.
type EventPredicate struct {
	conditions []goqu.Expression
}

// BuildEventPredicate translates a normalized filter into conditions.
//
// The three base conditions come first so parameter positions stay stable.
// The lower time bound is the caller's startDate when given, otherwise the
// injected now; this is what keeps past events out of every listing.
// Optional conditions follow in a fixed order: city, event type, end date,
// featured, full-text search.
func BuildEventPredicate(f *entity.EventFilter, now time.Time) *EventPredicate {
	lowerBound := now
	if f.StartDate != nil {
		lowerBound = *f.StartDate
	}

	conditions := []goqu.Expression{
		goqu.I("e.status").Eq(string(entity.StatusApproved)),
		goqu.I("e.is_cancelled").Eq(false),
		goqu.I("e.start_date").Gte(lowerBound),
	}

	if f.City != "" {
		conditions = append(conditions, goqu.I("l.city").ILike(f.City))
	}
	if f.EventType != "" {
		conditions = append(conditions, goqu.I("et.slug").Eq(f.EventType))
	}
	if f.EndDate != nil {
		conditions = append(conditions, goqu.I("e.start_date").Lte(*f.EndDate))
	}
	if f.FeaturedOnly {
		conditions = append(conditions, goqu.I("e.is_featured").IsTrue())
	}
	if f.Search != "" {
		conditions = append(conditions, goqu.L("e.search_vector @@ plainto_tsquery('norwegian', ?)", f.Search))
	}

	return &EventPredicate{conditions: conditions}
}

func (p *EventPredicate) base() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T("events").As("e")).
		LeftJoin(goqu.T("event_types").As("et"), goqu.On(goqu.I("e.event_type_id").Eq(goqu.I("et.id")))).
		LeftJoin(goqu.T("locations").As("l"), goqu.On(goqu.I("e.location_id").Eq(goqu.I("l.id")))).
		Where(p.conditions...)
}

// CountSQL renders the total-count variant of the predicate.
func (p *EventPredicate) CountSQL() (string, []interface{}, error) {
	return p.base().
		Select(goqu.COUNT("*").As("total")).
		Prepared(true).
		ToSQL()
}

// PageSQL renders the row-fetch variant. Featured events sort first, then
// ascending start time; id breaks remaining ties so pages are deterministic.
// Limit and offset are appended as the final two parameters.
func (p *EventPredicate) PageSQL(limit, offset int) (string, []interface{}, error) {
	return p.base().
		Select(eventColumns...).
		Order(
			goqu.I("e.is_featured").Desc(),
			goqu.I("e.start_date").Asc(),
			goqu.I("e.id").Asc(),
		).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
}

// ConditionCount reports how many conditions the predicate holds.
func (p *EventPredicate) ConditionCount() int {
	return len(p.conditions)
}
