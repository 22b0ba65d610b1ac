// Package app wires configuration, persistence and the catalog services
// together for a single run of the CLI.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/menu-catalog/internal/bulk"
	"github.com/nhle/menu-catalog/internal/catalog"
	"github.com/nhle/menu-catalog/internal/clock"
	"github.com/nhle/menu-catalog/internal/ident"
	"github.com/nhle/menu-catalog/internal/lifecycle"
	"github.com/nhle/menu-catalog/internal/model"
	"github.com/nhle/menu-catalog/internal/store"
	"github.com/nhle/menu-catalog/internal/visibility"
)

// App holds the loaded catalog and the services that operate on it.
type App struct {
	Config     *model.AppConfig
	Logger     *zap.Logger
	Catalog    *catalog.Store
	Bulk       *bulk.Service
	Lifecycle  *lifecycle.Manager
	Visibility *visibility.Evaluator

	store store.Store
}

// Option configures Open.
type Option func(*options)

type options struct {
	clock clock.Clock
	ids   ident.Generator
	store store.Store
}

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithIDs replaces the generator chosen by ids.format.
func WithIDs(g ident.Generator) Option {
	return func(o *options) { o.ids = g }
}

// WithStore uses s instead of opening the SQLite file at store.path.
func WithStore(s store.Store) Option {
	return func(o *options) { o.store = s }
}

// Open builds an App from cfg and loads the persisted catalog into it.
func Open(ctx context.Context, cfg *model.AppConfig, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{clock: clock.System{}}
	for _, opt := range opts {
		opt(&o)
	}

	if o.ids == nil {
		g, err := ident.ForFormat(cfg.IDs.Format)
		if err != nil {
			return nil, err
		}
		o.ids = g
	}

	eval, err := visibility.NewEvaluatorFromConfig(o.clock, cfg.Visibility)
	if err != nil {
		return nil, fmt.Errorf("configuring visibility: %w", err)
	}

	if o.store == nil {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		o.store = s
	}

	cat := catalog.New(
		catalog.WithClock(o.clock),
		catalog.WithIDs(o.ids),
		catalog.WithLogger(logger.Named("catalog")),
	)
	snap, err := o.store.LoadSnapshot(ctx)
	if err != nil {
		o.store.Close()
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if err := cat.Load(snap); err != nil {
		o.store.Close()
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Catalog:    cat,
		Bulk:       bulk.New(cat, logger.Named("bulk")),
		Lifecycle:  lifecycle.New(cat, logger.Named("lifecycle")),
		Visibility: eval,
		store:      o.store,
	}, nil
}

// Save persists the current catalog.
func (a *App) Save(ctx context.Context) error {
	if err := a.store.SaveSnapshot(ctx, a.Catalog.Snapshot()); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}

// Retention returns how long archived entities are kept, or zero when
// they are kept forever.
func (a *App) Retention() time.Duration {
	return time.Duration(a.Config.Lifecycle.RetentionDays) * 24 * time.Hour
}

// PurgeExpired permanently deletes archived entities older than the
// configured retention. It does nothing when retention is zero.
func (a *App) PurgeExpired() (int, error) {
	r := a.Retention()
	if r <= 0 {
		return 0, nil
	}
	return a.Lifecycle.Purge(r)
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}
