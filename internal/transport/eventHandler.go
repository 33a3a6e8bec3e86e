package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/doffpett/evhenter/internal/entity"
	"github.com/doffpett/evhenter/internal/service"
	"github.com/doffpett/evhenter/internal/transport/middleware"
)

const (
	listCacheControl   = "s-maxage=300, stale-while-revalidate=600"
	detailCacheControl = "s-maxage=600, stale-while-revalidate=1200"
)

type EventHandler struct {
	eventService service.EventService
	debug        bool
}

func NewEventHandler(eventService service.EventService, debug bool) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		debug:        debug,
	}
}

// ListEvents serves GET /api/v1/events.
func (h *EventHandler) ListEvents(c *gin.Context) {
	raw := entity.RawEventFilter{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		City:      c.Query("city"),
		EventType: c.Query("type"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Search:    c.Query("search"),
		Featured:  c.Query("featured"),
	}

	list, err := h.eventService.ListEvents(c.Request.Context(), raw)
	if err != nil {
		if entity.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation error",
				"message": err.Error(),
			})
			return
		}
		h.serverError(c, err, "Failed to fetch events")
		return
	}

	c.Header("Cache-Control", listCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       list.Events,
		"pagination": list.Pagination,
		"filters":    list.Filters,
		"metadata":   list.Metadata,
	})
}

// GetEvent serves GET /api/v1/events/:id, by UUID or slug.
func (h *EventHandler) GetEvent(c *gin.Context) {
	identifier := c.Param("id")

	event, err := h.eventService.GetEvent(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Event not found",
				"message": "No event found with ID or slug: " + identifier,
			})
			return
		}
		h.serverError(c, err, "Failed to fetch event")
		return
	}

	c.Header("Cache-Control", detailCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    event,
	})
}

// FeaturedEvents serves GET /api/v1/events/featured.
func (h *EventHandler) FeaturedEvents(c *gin.Context) {
	events, err := h.eventService.FeaturedEvents(c.Request.Context())
	if err != nil {
		h.serverError(c, err, "Failed to fetch featured events")
		return
	}

	c.Header("Cache-Control", listCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    events,
	})
}

// SubmitEvent serves POST /api/v1/events (authenticated).
func (h *EventHandler) SubmitEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req service.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"message": err.Error(),
		})
		return
	}

	created, err := h.eventService.SubmitEvent(c.Request.Context(), &req, user.ID)
	if err != nil {
		if entity.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation error",
				"message": err.Error(),
			})
			return
		}
		h.serverError(c, err, "Failed to submit event")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Event submitted for review",
		"data":    created,
	})
}

func (h *EventHandler) serverError(c *gin.Context, err error, fallback string) {
	logrus.WithError(err).Error("events API error")

	message := fallback
	if h.debug {
		message = err.Error()
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": message,
	})
}
