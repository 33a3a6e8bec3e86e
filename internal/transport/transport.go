package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doffpett/evhenter/internal/metrics"
	"github.com/doffpett/evhenter/internal/service"
	"github.com/doffpett/evhenter/internal/transport/middleware"
)

func InitRoutes(
	eventHandler *EventHandler,
	authHandler *AuthHandler,
	aiHandler *AIHandler,
	authService service.AuthService,
	health gin.HandlerFunc,
) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))
	router.Use(metrics.Middleware())

	api := router.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/featured", eventHandler.FeaturedEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", middleware.RequireAuth(authService), eventHandler.SubmitEvent)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(authService), authHandler.Me)
		}

		ai := api.Group("", middleware.RequireAuth(authService))
		{
			ai.POST("/parse-url", aiHandler.ParseURL)
			ai.POST("/images/generate", aiHandler.GenerateImage)
		}
	}

	router.GET("/health", health)
	router.GET("/metrics", metrics.Handler())

	return router
}

// NewHealthHandler reports API status plus per-service configuration state.
func NewHealthHandler(version, environment string, services map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": environment,
			"version":     version,
			"services":    services,
		})
	}
}
