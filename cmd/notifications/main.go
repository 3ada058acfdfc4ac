package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tutorhub/internal/notifications/worker"
	"tutorhub/pkg/config"
	"tutorhub/pkg/kafka"
)

const ServiceName = "notifications"

func main() {
	cfg := config.Load(ServiceName)

	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Fatal("Notifications service requires Kafka brokers")
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.BookingEventsTopic, cfg.NotificationsGroup)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	w := worker.New(cfg.Log)
	cfg.Log.Info("Starting Notifications worker",
		"topic", cfg.BookingEventsTopic,
		"group", cfg.NotificationsGroup,
	)

	if err := consumer.Run(ctx, w.Handle); err != nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifications worker stopped")
}
