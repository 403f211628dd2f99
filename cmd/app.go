package cmd

import (
	"fmt"

	"steam-ledger/core/config"
	"steam-ledger/core/database"
	"steam-ledger/core/logger"
	"steam-ledger/core/storage"
	"steam-ledger/feature/games/store"
	"steam-ledger/feature/notion"
	"steam-ledger/feature/report"
	"steam-ledger/feature/steam"
	steamsync "steam-ledger/feature/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *store.GormStore
}

// bootstrap loads the configuration, builds the logger and opens the migrated store.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	l.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))

	return &app{
		cfg:    cfg,
		logger: l,
		db:     db,
		store:  store.New(db, l.Named("store")),
	}, nil
}

// orchestrator wires both providers to the store. It fails when credentials are missing.
func (a *app) orchestrator() (*steamsync.Orchestrator, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	lib := steam.NewClient(a.cfg.Steam, a.logger.Named("steam"))
	notes := notion.NewClient(a.cfg.Notion, a.logger.Named("notion"))
	return steamsync.NewOrchestrator(lib, notes, a.store, a.cfg.Steam.UserID, a.cfg.Sync, a.logger), nil
}

// archiver returns nil when report archiving is disabled.
func (a *app) archiver() (*report.Archiver, error) {
	if !a.cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return report.NewArchiver(client, a.cfg.Storage, a.logger.Named("report")), nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
