package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	cataloghttp "github.com/VCL-tt/BK-VenComp/internal/catalog/delivery/http"
	catalogrepo "github.com/VCL-tt/BK-VenComp/internal/catalog/repository"
	commenthttp "github.com/VCL-tt/BK-VenComp/internal/comment/delivery/http"
	commentrepo "github.com/VCL-tt/BK-VenComp/internal/comment/repository"
	favoritehttp "github.com/VCL-tt/BK-VenComp/internal/favorite/delivery/http"
	favoriterepo "github.com/VCL-tt/BK-VenComp/internal/favorite/repository"
	orderhttp "github.com/VCL-tt/BK-VenComp/internal/order/delivery/http"
	orderrepo "github.com/VCL-tt/BK-VenComp/internal/order/repository"
	paymenthttp "github.com/VCL-tt/BK-VenComp/internal/payment/delivery/http"
	"github.com/VCL-tt/BK-VenComp/internal/payment/receipt"
	paymentrepo "github.com/VCL-tt/BK-VenComp/internal/payment/repository"
	userhttp "github.com/VCL-tt/BK-VenComp/internal/user/delivery/http"
	userrepo "github.com/VCL-tt/BK-VenComp/internal/user/repository"
	"github.com/VCL-tt/BK-VenComp/kafka"
	"github.com/VCL-tt/BK-VenComp/pkg/cache"
	"github.com/VCL-tt/BK-VenComp/pkg/database"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
	"github.com/VCL-tt/BK-VenComp/pkg/mailer"
	"github.com/VCL-tt/BK-VenComp/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "vencomp-api")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting API server")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "vencompdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories
	productRepo := catalogrepo.NewGormProductRepositoryWithTracing(db)
	specRepo := catalogrepo.NewGormSpecificationRepository(db)
	orderRepo := orderrepo.NewGormOrderRepository(db)
	paymentRepo := paymentrepo.NewGormPaymentRepository(db)
	userRepo := userrepo.NewGormUserRepository(db)
	commentRepo := commentrepo.NewGormCommentRepository(db)
	favoriteRepo := favoriterepo.NewGormFavoriteRepository(db)

	// Run migrations
	for _, migrate := range []func() error{
		productRepo.AutoMigrate,
		orderRepo.AutoMigrate,
		paymentRepo.AutoMigrate,
		userRepo.AutoMigrate,
		commentRepo.AutoMigrate,
		favoriteRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis cache for catalog listings
	var productCache *cache.Cache
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		productCache = cache.New(redisClient, 5*time.Minute)
		logger.Logger.Info().Str("addr", redisAddr).Msg("Redis cache enabled")
	}

	// Optional Kafka publisher for order paid events
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Mailer for password reset codes
	var m mailer.Mailer = mailer.LogMailer{}
	if smtpHost := getEnv("SMTP_HOST", ""); smtpHost != "" {
		m = mailer.NewSMTPMailer(
			smtpHost,
			getEnv("SMTP_PORT", "587"),
			getEnv("SMTP_USERNAME", ""),
			getEnv("SMTP_PASSWORD", ""),
			getEnv("SMTP_FROM", "no-reply@vencomp.local"),
		)
	}

	// HTTP handlers
	productHandler := cataloghttp.NewProductHandler(productRepo, productCache)
	specHandler := cataloghttp.NewSpecificationHandler(specRepo)
	orderHandler := orderhttp.NewOrderHandler(orderRepo)
	paymentHandler := paymenthttp.NewPaymentHandler(
		paymentRepo, orderRepo, productRepo,
		receipt.NewTextRenderer(getEnv("STORE_NAME", "VenComp")),
		publisher,
	)
	userHandler := userhttp.NewUserHandler(userRepo, m)
	commentHandler := commenthttp.NewCommentHandler(commentRepo, productRepo)
	favoriteHandler := favoritehttp.NewFavoriteHandler(favoriteRepo)

	// Setup router
	router := mux.NewRouter()

	userHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	specHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	paymentHandler.RegisterRoutes(router)
	commentHandler.RegisterRoutes(router)
	favoriteHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", healthHandler(sqlDB)).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: c.Handler(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "database unreachable"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
