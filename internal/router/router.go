package router

import (
	"net/http"

	"escape-room-backend/internal/config"
	"escape-room-backend/internal/handlers"
	"escape-room-backend/internal/middleware"
	"escape-room-backend/internal/services"

	_ "escape-room-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Auth       *services.AuthService
	Catalog    *services.CatalogService
	Scheduler  *services.SchedulerService
	Enrollment *services.EnrollmentService
	Progress   *services.ProgressService
}

func Setup(cfg *config.Config, svc Services, limiter *middleware.RateLimiter) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	roomHandler := handlers.NewRoomHandler(svc.Catalog, svc.Scheduler)
	sessionHandler := handlers.NewSessionHandler(svc.Scheduler, svc.Enrollment, svc.Progress)
	adminHandler := handlers.NewAdminHandler(svc.Catalog, svc.Scheduler)

	r := gin.Default()
	r.Use(middleware.RequestID())
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: !containsWildcard(cfg.CORSOrigins),
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.JWTAuth(svc.Auth))
		{
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/:id", roomHandler.GetRoom)
		}

		me := api.Group("/me")
		me.Use(middleware.JWTAuth(svc.Auth))
		{
			me.GET("/sessions", sessionHandler.MySessions)
		}

		sessions := api.Group("/sessions")
		sessions.Use(middleware.JWTAuth(svc.Auth))
		{
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.POST("/:id/register", sessionHandler.Register)
			sessions.POST("/:id/answers", middleware.RateLimit(limiter), sessionHandler.SubmitAnswer)
			sessions.GET("/:id/attempts", sessionHandler.ListAttempts)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(svc.Auth), middleware.AdminOnly())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.POST("/rooms", adminHandler.CreateRoom)
			admin.POST("/rooms/import", adminHandler.ImportRoom)
			admin.GET("/rooms/:id/export", adminHandler.ExportRoom)
			admin.POST("/sessions", adminHandler.CreateSession)
			admin.POST("/puzzles", adminHandler.CreatePuzzle)
			admin.POST("/hints", adminHandler.CreateHint)
		}
	}

	return r
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
