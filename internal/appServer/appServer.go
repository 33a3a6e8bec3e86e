package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/doffpett/evhenter/config"
	repository "github.com/doffpett/evhenter/internal/database/postgres"
	cache "github.com/doffpett/evhenter/internal/database/redis"
	"github.com/doffpett/evhenter/internal/service"
	"github.com/doffpett/evhenter/internal/transport"
	"github.com/doffpett/evhenter/pkg/postgres"
	"github.com/doffpett/evhenter/pkg/redis"
	"github.com/doffpett/evhenter/pkg/token"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Optional redis cache
	var listingCache service.ListingCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		listingCache = cache.NewCacheRepository(redisClient, cfg.App.MetadataCacheTTL, cfg.App.EventCacheTTL)
		logrus.Info("Redis cache initialized")
	} else {
		logrus.Warn("Redis disabled, serving without cache")
	}

	// Initialize services
	tokenManager := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	eventService := service.NewEventService(eventRepo, listingCache, nil)
	authService := service.NewAuthService(userRepo, tokenManager)
	parserService := service.NewParserService(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.ImageModel)

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService, cfg.App.Debug)
	authHandler := transport.NewAuthHandler(authService)
	aiHandler := transport.NewAIHandler(parserService)

	health := transport.NewHealthHandler(cfg.Server.AppVersion, cfg.Server.Env, map[string]string{
		"api":      "operational",
		"database": "configured",
		"openai":   configured(cfg.OpenAI.APIKey != ""),
		"cache":    configured(cfg.Redis.Enabled),
	})

	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(eventHandler, authHandler, aiHandler, authService, health)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not-configured"
}
