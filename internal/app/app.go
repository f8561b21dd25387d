package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Risingdell/Placement-mangement/internal/config"
	"github.com/Risingdell/Placement-mangement/internal/delivery/httpd"
	"github.com/Risingdell/Placement-mangement/internal/repository"
	"github.com/Risingdell/Placement-mangement/internal/service"
	"github.com/Risingdell/Placement-mangement/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	store, err := storage.NewMinIOStore(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db, log)
	academicRepo := repository.NewAcademicRepository(db, log)
	driveRepo := repository.NewDriveRepository(db, log)
	applicationRepo := repository.NewApplicationRepository(db, log)
	inboxRepo := repository.NewInboxRepository(db, log)
	eventRepo := repository.NewEventRepository(db, log)
	tokenRepo := repository.NewTokenRepository(db, log)
	portfolioRepo := repository.NewPortfolioRepository(db, log)

	authService := service.NewAuthService(userRepo, tokenRepo, cfg.Auth, log)
	applicationService := service.NewApplicationService(applicationRepo, driveRepo, academicRepo, log)
	driveService := service.NewDriveService(driveRepo, applicationRepo, academicRepo, log)
	profileService := service.NewProfileService(userRepo, academicRepo, portfolioRepo, store, log)
	inboxService := service.NewInboxService(inboxRepo, userRepo, log)
	eventService := service.NewEventService(eventRepo, log)

	handler := httpd.NewHandler(
		authService,
		applicationService,
		driveService,
		profileService,
		inboxService,
		eventService,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
		db:     db,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting placement portal on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down placement portal...")

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
