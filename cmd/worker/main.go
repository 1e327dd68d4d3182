package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/adapters/event"
	"github.com/khoahotran/rentredi/adapters/persistence"
	"github.com/khoahotran/rentredi/internal/application/service"
	auditUC "github.com/khoahotran/rentredi/internal/application/usecase/audit"
	"github.com/khoahotran/rentredi/internal/config"
	"github.com/khoahotran/rentredi/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting RentRedi Audit Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("KAFKA_BROKERS is required for the worker", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store
	userRepo, closeStore, err := persistence.NewUserRepository(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect user store", err)
	}
	defer closeStore()

	// Worker Use Case
	processUserEventUC := auditUC.NewProcessUserEventUseCase(userRepo, appLogger)

	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = event.TopicUserEvents
	}

	// Kafka Consumer
	userConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  event.UserAuditGroup,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer userConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", topic), zap.String("group", event.UserAuditGroup))

	for {
		msg, err := userConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload service.UserEvent
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Warn("Failed to unmarshal event. Skipping.", zap.Error(err), zap.String("key", string(msg.Key)))
			commitMessage(userConsumer, msg, appLogger)
			continue
		}

		if err := processUserEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process event", err, zap.String("user_id", payload.UserID))
			continue
		}

		commitMessage(userConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
