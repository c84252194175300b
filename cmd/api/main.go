package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/workbridge/workbridge/internal/config"
	"github.com/workbridge/workbridge/internal/database"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/handlers"
	"github.com/workbridge/workbridge/internal/middleware"
	"github.com/workbridge/workbridge/internal/security"
	"github.com/workbridge/workbridge/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	dtos.RegisterValidators()

	// 2. Database Connection
	db, err := database.Connect(database.Options{
		DSN:          cfg.PostgresDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		ConnMaxLife:  cfg.DBConnMaxLife,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// 3. Core Services
	jwtProvider := security.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL)
	notificationService := services.NewNotificationService(db)
	dispatcher := services.NewDispatcher(notificationService, cfg.QueueSize)
	dispatcher.Start()

	authService := services.NewAuthService(db, jwtProvider)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db, dispatcher)
	reviewService := services.NewReviewService(db, dispatcher)

	// 4. Rate limiter: Redis when configured, in-memory otherwise
	var limiter middleware.Limiter
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("Invalid REDIS_URL: ", err)
		}
		limiter = middleware.NewRedisLimiter(redis.NewClient(redisOpts))
		log.Println("Rate limiting backed by Redis")
	} else {
		limiter = middleware.NewMemoryLimiter()
	}

	// 5. Metrics
	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)

	// 6. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(r, handlers.RouterDeps{
		Auth:          handlers.NewAuthHandler(authService),
		Jobs:          handlers.NewJobHandler(jobService),
		Applications:  handlers.NewApplicationHandler(applicationService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Reviews:       handlers.NewReviewHandler(reviewService),
		JWT:           jwtProvider,
		Limiter:       limiter,
		Metrics:       metrics,
	})

	// 7. Serve until signalled, then drain the notification queue
	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: r}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s...", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Server shutdown error: ", err)
	}
	dispatcher.Stop()
	log.Println("Bye")
}
