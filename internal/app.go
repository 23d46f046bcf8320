package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	router "instantshare/internal/api"
	"instantshare/internal/api/handler"
	"instantshare/internal/auth"
	"instantshare/internal/config"
	"instantshare/internal/media"
	"instantshare/internal/service"
	"instantshare/internal/store"
	"instantshare/internal/util"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config   *config.AppConfig
	Logger   *slog.Logger
	Store    *store.Store
	Media    *media.Storage
	Sessions *auth.SessionManager

	InstantService service.InstantService

	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// Loading fails fast on a corrupt snapshot instead of starting empty.
	st, err := store.Open(cfg.DataFile)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	app.Store = st
	app.Logger.Info("Store loaded.", "path", cfg.DataFile)

	storage, err := media.NewStorage(cfg.MediaDir)
	if err != nil {
		return fmt.Errorf("failed to initialize media storage: %w", err)
	}
	app.Media = storage

	app.Sessions = auth.NewSessionManager(cfg.SessionTTL)

	app.InstantService = service.NewInstantService(app.Store)
	app.Logger.Info("Services initialized.")

	authHandler := handler.NewAuthHandler(app.InstantService, app.Sessions, app.Logger)
	instantHandler := handler.NewInstantHandler(app.InstantService, app.Media, app.Logger)
	userHandler := handler.NewUserHandler(app.InstantService, app.Logger)
	app.HTTPHandler = router.NewRouter(authHandler, instantHandler, userHandler, app.Sessions, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources with a final flush.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Logger.Error("Failed to flush store", "error", err)
			return fmt.Errorf("failed to flush store: %w", err)
		}
		app.Logger.Info("Store flushed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
