package main

import (
	"tutorhub/internal/accounts/handler"
	"tutorhub/internal/accounts/repository"
	"tutorhub/internal/accounts/service"
	"tutorhub/pkg/app"
	"tutorhub/pkg/config"
	"tutorhub/pkg/session"
)

const ServiceName = "accounts"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Accounts service")
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	accountService := initServices(cfg, sessions)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAccountHandler(accountService, cfg.Log), sessions)
	serverApp.Run()
}

func initServices(cfg *config.Config, sessions *session.Manager) service.AccountService {
	userRepo := repository.NewMongoUserRepository(cfg)
	accountService := service.NewAccountService(userRepo, sessions, cfg)

	cfg.Log.Info("Account service initialized", "database", cfg.MongoDatabaseName)
	return accountService
}
