package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	catalogrepo "github.com/VCL-tt/BK-VenComp/internal/catalog/repository"
	"github.com/VCL-tt/BK-VenComp/kafka"
	"github.com/VCL-tt/BK-VenComp/pkg/database"
	"github.com/VCL-tt/BK-VenComp/pkg/logger"
	"github.com/VCL-tt/BK-VenComp/pkg/tracing"
)

// The stock worker consumes order paid events and decrements inventory for
// every product in the paid order.
func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "vencomp-stockworker")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Msg("Starting stock worker")

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

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "vencompdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	productRepo := catalogrepo.NewGormProductRepository(db)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "stock-worker")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicOrderPaid})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeOrderPaid, func(ctx context.Context, event kafka.OrderPaidEvent) error {
		for _, productID := range event.ProductIDs {
			if err := productRepo.DecrementStock(productID, 1); err != nil {
				logger.Logger.Error().
					Err(err).
					Uint("product_id", productID).
					Uint("order_id", event.OrderID).
					Msg("Failed to decrement stock")
				continue
			}
			logger.Logger.Info().
				Uint("product_id", productID).
				Uint("order_id", event.OrderID).
				Msg("Stock decremented")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down stock worker...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
