package handlers

import (
	"QuickMemo/internal/config"
	"QuickMemo/internal/middleware"
	"QuickMemo/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	backupService *service.BackupService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	backupHandler := NewBackupHandler(backupService, logger, config)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)

	// Account/backup routes
	r.Get("/api/account/status", backupHandler.AccountStatus)
	r.Put("/api/backup", backupHandler.PutBackup)
	r.Get("/api/backup", backupHandler.GetBackup)
	r.Put("/api/subscription", backupHandler.PutSubscription)
	r.Get("/api/subscription", backupHandler.GetSubscription)

	return &Handler{Router: r}
}
