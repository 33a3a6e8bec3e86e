package transport

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/doffpett/evhenter/internal/entity"
	"github.com/doffpett/evhenter/internal/service"
	"github.com/doffpett/evhenter/internal/transport/middleware"
)

type AIHandler struct {
	parserService service.ParserService
}

func NewAIHandler(parserService service.ParserService) *AIHandler {
	return &AIHandler{parserService: parserService}
}

type parseURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ParseURL serves POST /api/v1/parse-url (authenticated).
func (h *AIHandler) ParseURL(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req parseURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"message": "URL is required",
		})
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"message": "Invalid URL format",
		})
		return
	}

	draft, err := h.parserService.ParseEventFromURL(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, entity.ErrAIUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Service unavailable",
				"message": "AI service is not configured. Please contact administrator.",
			})
			return
		}
		logrus.WithError(err).Error("parse URL failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to parse event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event parsed successfully",
		"data":    draft,
		"meta": gin.H{
			"originalUrl": req.URL,
			"parsedBy":    "ai",
			"userId":      user.ID,
		},
	})
}

// GenerateImage serves POST /api/v1/images/generate (authenticated).
func (h *AIHandler) GenerateImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req service.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"message": "Title and eventType are required",
		})
		return
	}

	imageURL, err := h.parserService.GenerateEventImage(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrAIUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Service unavailable",
				"message": "AI image service is not configured. Please contact administrator.",
			})
		case errors.Is(err, entity.ErrContentPolicy):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Content policy violation",
				"message": "The requested image violates content policy. Please try different event details.",
			})
		default:
			logrus.WithError(err).Error("image generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to generate image",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image generated successfully",
		"data": gin.H{
			"imageUrl":    imageURL,
			"generatedBy": "dall-e-3",
		},
		"meta": gin.H{
			"title":     req.Title,
			"eventType": req.EventType,
			"userId":    user.ID,
		},
	})
}
