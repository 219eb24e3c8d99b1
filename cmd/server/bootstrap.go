package main

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/reviewhub/reviewhub/internal/config"
	"github.com/reviewhub/reviewhub/internal/handlers"
	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/internal/services"
	"github.com/reviewhub/reviewhub/internal/storage"
	"github.com/reviewhub/reviewhub/internal/utils"
	"github.com/reviewhub/reviewhub/pkg/logger"
)

// appServices holds all initialized dependencies and handlers.
type appServices struct {
	cfg               *config.Config
	store             *storage.LocalStore
	cleanupCron       *cron.Cron
	authHandler       *handlers.AuthHandler
	projectHandler    *handlers.ProjectHandler
	memberHandler     *handlers.ProjectMemberHandler
	submissionHandler *handlers.SubmissionHandler
}

// bootstrap initializes database, storage, services, and schedulers.
func bootstrap(cfg *config.Config) (*appServices, error) {
	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetTokenTTLs(
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLHours)*time.Hour,
	)

	db, err := models.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.TempDir)
	if err != nil {
		return nil, fmt.Errorf("init artifact storage: %w", err)
	}

	projectService := services.NewProjectService(db, store)
	submissionService := services.NewSubmissionService(db, store)

	return &appServices{
		cfg:               cfg,
		store:             store,
		cleanupCron:       storage.StartCleanupScheduler(store),
		authHandler:       handlers.NewAuthHandler(db, cfg),
		projectHandler:    handlers.NewProjectHandler(projectService),
		memberHandler:     handlers.NewProjectMemberHandler(projectService),
		submissionHandler: handlers.NewSubmissionHandler(submissionService, store, cfg.Upload.MaxSizeMB),
	}, nil
}

// shutdown stops background schedulers.
func (s *appServices) shutdown() {
	if s.cleanupCron != nil {
		s.cleanupCron.Stop()
	}
	logger.Info().Msg("Schedulers stopped")
}
