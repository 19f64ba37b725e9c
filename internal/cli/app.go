package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/chartmaker/internal/config"
	"github.com/dukerupert/chartmaker/internal/database"
	"github.com/dukerupert/chartmaker/internal/objstore"
	"github.com/dukerupert/chartmaker/internal/progress"
	"github.com/dukerupert/chartmaker/internal/service"
	"github.com/dukerupert/chartmaker/internal/store"
	"github.com/dukerupert/chartmaker/internal/websocket"
)

// app is the assembled storage and service stack shared by commands.
type app struct {
	cfg    config.Config
	db     *sql.DB
	hub    *websocket.Hub
	svc    *service.ChartService
	now    func() time.Time
	logger *slog.Logger
}

func openApp(cfg config.Config, now func() time.Time, logger *slog.Logger) (*app, error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	kv, err := progressKV(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("progress backend ready", "backend", cfg.Progress.Backend)

	hub := websocket.NewHub(logger.With("component", "websocket"))
	svc := service.New(
		store.NewChartStore(db),
		store.NewChildStore(db),
		progress.NewStore(kv, logger.With("component", "progress")),
		service.WithClock(now),
		service.WithHub(hub),
		service.WithLogger(logger.With("component", "service")),
	)
	return &app{cfg: cfg, db: db, hub: hub, svc: svc, now: now, logger: logger}, nil
}

func progressKV(cfg config.Config, db *sql.DB) (progress.KV, error) {
	switch cfg.Progress.Backend {
	case config.BackendMemory:
		return progress.NewMemoryKV(), nil
	case config.BackendS3:
		s3 := cfg.Progress.S3
		kv, err := objstore.NewS3KV(objstore.Config{
			Endpoint:  s3.Endpoint,
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Prefix:    s3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 progress backend: %w", err)
		}
		return kv, nil
	default:
		return store.NewKVStore(db), nil
	}
}

func (a *app) Close() error {
	return a.db.Close()
}
