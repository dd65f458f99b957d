// Package app wires configuration, the model store and the quoter together.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"insurecast/config"
	"insurecast/logging"
	"insurecast/ml"
	"insurecast/quote"
)

type App struct {
	Config *config.Config
	Logger *zap.Logger
	Models *ml.Store
	Quoter *quote.Quoter
}

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Console:    cfg.Log.Console,
	})
}

// New loads the model and builds the quoter. The model must have been
// trained on quote.Columns.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	models, err := ml.NewStore(cfg.Model.Type, cfg.Model.Path, quote.Columns, logger.Named("model"))
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	locale, err := language.Parse(cfg.Form.Locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale: %w", err)
	}
	opts := quote.DefaultOptions()
	opts.HeightUnit = quote.HeightUnit(cfg.Form.HeightUnit)
	opts.Locale = locale
	opts.CacheSize = cfg.Cache.Size

	quoter, err := quote.NewQuoter(models, opts, logger.Named("quote"))
	if err != nil {
		return nil, err
	}
	models.OnReload(func(*ml.Loaded) { quoter.Purge() })

	return &App{
		Config: cfg,
		Logger: logger,
		Models: models,
		Quoter: quoter,
	}, nil
}

// WatchModel starts hot reload when enabled in config.
func (a *App) WatchModel(ctx context.Context) error {
	if !a.Config.Model.Watch {
		return nil
	}
	if err := a.Models.Watch(ctx); err != nil {
		return fmt.Errorf("watch model: %w", err)
	}
	a.Logger.Info("watching model artifact", zap.String("path", a.Config.Model.Path))
	return nil
}

func (a *App) HeightUnit() quote.HeightUnit {
	return quote.HeightUnit(a.Config.Form.HeightUnit)
}
