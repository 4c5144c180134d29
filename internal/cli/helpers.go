package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/analyzer"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/config"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/logging"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/models"
	"github.com/jairodriguez/Xelite-repost-engine-sub002/internal/store"
)

// app bundles everything a command needs once config is resolved.
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

func loadApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	return &app{
		cfg: cfg,
		log: logging.NewWithService(cfg.Logging.Level, cfg.Logging.Format, "xelite"),
	}, nil
}

// withStore resolves config, opens the database, runs fn, and cleans up.
func withStore(fn func(*app, *store.SQLiteStore) error) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	s, err := store.Open(a.cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(a, s)
}

func (a *app) newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(analyzer.Config{
		TopN:         a.cfg.Engine.TopN,
		CacheEnabled: a.cfg.Engine.CacheEnabled,
	}, a.log)
}

func (a *app) engagementMode() models.EngagementMode {
	if a.cfg.Engine.EngagementMode == "reposts" {
		return models.EngagementReposts
	}
	return models.EngagementSum
}
