package main

import (
	"tutorhub/internal/bookings/events"
	"tutorhub/internal/bookings/handler"
	"tutorhub/internal/bookings/repository"
	"tutorhub/internal/bookings/service"
	"tutorhub/internal/bookings/validator"
	tutorsrepository "tutorhub/internal/tutors/repository"
	"tutorhub/pkg/app"
	"tutorhub/pkg/config"
	"tutorhub/pkg/kafka"
	"tutorhub/pkg/session"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log), sessions)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	tutorDirectory := tutorsrepository.NewDirectory(tutorsrepository.NewMongoTutorRepository(cfg))

	publisher := initPublisher(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		tutorDirectory,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("No Kafka brokers configured, booking events will be dropped")
		return events.NewNoopPublisher(cfg.Log)
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	return events.NewKafkaPublisher(producer, cfg.Log, ServiceName)
}
