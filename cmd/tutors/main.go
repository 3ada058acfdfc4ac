package main

import (
	"tutorhub/internal/tutors/handler"
	"tutorhub/internal/tutors/repository"
	"tutorhub/internal/tutors/service"
	"tutorhub/internal/tutors/validator"
	"tutorhub/pkg/app"
	"tutorhub/pkg/blob"
	"tutorhub/pkg/config"
	"tutorhub/pkg/session"
)

const (
	ServiceName         = "tutors"
	documentsBucketName = "tutor_documents"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Tutors service")
	tutorService := initServices(cfg)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewTutorHandler(tutorService, cfg.Log), sessions)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.TutorService {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	blobs, err := blob.NewGridFSStore(db, documentsBucketName)
	if err != nil {
		cfg.Log.Fatal("Failed to open document store", "error", err)
	}

	tutorValidator := validator.NewTutorValidator(cfg.Log)
	tutorRepo := repository.NewMongoTutorRepository(cfg)
	tutorService := service.NewTutorService(tutorRepo, blobs, tutorValidator, cfg)

	cfg.Log.Info("Tutor service initialized", "database", cfg.MongoDatabaseName)
	return tutorService
}
