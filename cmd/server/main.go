package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"escape-room-backend/internal/config"
	"escape-room-backend/internal/database"
	"escape-room-backend/internal/middleware"
	"escape-room-backend/internal/router"
	"escape-room-backend/internal/services"

	"github.com/redis/go-redis/v9"
)

// @title           Escape Room API
// @version         1.0
// @description     Booking and gameplay tracking for escape-room sessions
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	if cfg.AdminUsername != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to seed admin account: %v", err)
		}
	}

	cache, closeCache := newProgressCache(cfg)
	defer closeCache()

	catalog := services.NewCatalogService(db)
	scheduler := services.NewSchedulerService(db, cfg.VenueLocation)
	enrollment := services.NewEnrollmentService(db)
	progress := services.NewProgressService(db, enrollment, scheduler, catalog, cache)

	limiter := middleware.NewRateLimiter(cfg.AnswerRatePerMinute, cfg.AnswerRateBurst)
	stopSweeper := make(chan struct{})
	go limiter.RunSweeper(time.Minute, stopSweeper)
	defer close(stopSweeper)

	r := router.Setup(cfg, router.Services{
		Auth:       authService,
		Catalog:    catalog,
		Scheduler:  scheduler,
		Enrollment: enrollment,
		Progress:   progress,
	}, limiter)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

// newProgressCache uses Redis when REDIS_ADDR is set and reachable, and the
// in-process cache otherwise.
func newProgressCache(cfg *config.Config) (services.ProgressCache, func()) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, using in-memory progress cache")
		return services.NewMemoryProgressCache(cfg.CacheTTL), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s (%v), using in-memory progress cache", cfg.RedisAddr, err)
		rdb.Close()
		return services.NewMemoryProgressCache(cfg.CacheTTL), func() {}
	}

	log.Printf("progress cache backed by redis at %s", cfg.RedisAddr)
	return services.NewRedisProgressCache(rdb, cfg.CacheTTL), func() { rdb.Close() }
}
