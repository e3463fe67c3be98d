package main

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/Joseda-hg/lazymemo/internal/config"
	"github.com/Joseda-hg/lazymemo/internal/db"
	"github.com/Joseda-hg/lazymemo/internal/logging"
	"github.com/Joseda-hg/lazymemo/internal/remote"
	"github.com/Joseda-hg/lazymemo/internal/tasklist"
	"github.com/Joseda-hg/lazymemo/internal/todo"
)

type rootOptions struct {
	configPath string
	baseURL    string
	dbPath     string
	logPath    string
	logLevel   string
	category   string
	verbose    bool
}

type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	store   *db.Store
	service *todo.Service
	closers []io.Closer
}

// openApp resolves config (file, then flags), persists it the way the TUI
// expects to find it next time, and wires the service.
func (o *rootOptions) openApp() (*app, error) {
	cfgPath, err := resolveConfigPath(o.configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logPath != "" {
		cfg.LogPath = o.logPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.category != "" {
		cfg.Category = o.category
	}
	cfg.FillPaths(cfgPath)

	category, err := tasklist.ParseCategory(cfg.Category)
	if err != nil {
		return nil, err
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel, o.verbose)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, store)

	client, err := remote.NewClient(cfg.BaseURL, remote.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.service = todo.NewService(client, tasklist.New(category), store, logger)
	logger.Debug().Str("base_url", client.BaseURL()).Str("category", category.String()).Str("version", version).Msg("lazymemo started")
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func openStore(dbPath string) (*db.Store, error) {
	if err := config.EnsureDir(dbPath); err != nil {
		return nil, err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return db.NewStore(sqlDB), nil
}
