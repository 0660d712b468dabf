package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/corkboard/pkg/adapters/fs"
	"github.com/aretw0/corkboard/pkg/adapters/memory"
	"github.com/aretw0/corkboard/pkg/adapters/sqlite"
	"github.com/aretw0/corkboard/pkg/core"
)

// New wires a store and a Board together. The uri argument is
// adapter-specific: a snapshot file path for "fs", a database file for
// "sqlite", ignored by "memory". ctx bounds the initial load and, when
// auto-reload is enabled, the watcher's lifetime.
func New(ctx context.Context, uri string, opts ...Option) (*core.Board, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := openStore(uri, o)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}

	board, err := core.NewBoard(ctx, store, core.Config{
		Logger:      o.logger,
		Rand:        o.rng,
		EventBuffer: o.eventBuffer,
	})
	if err != nil {
		return nil, err
	}

	if o.autoReload {
		if err := wireAutoReload(ctx, board, store, o.logger); err != nil {
			return nil, err
		}
	}

	return board, nil
}

// Open returns the configured store without constructing a Board.
func Open(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return openStore(uri, o)
}

func openStore(uri string, o *options) (core.Store, error) {
	if o.store != nil {
		return o.store, nil
	}

	switch o.adapter {
	case "fs":
		return initFS(uri, o)
	case "memory":
		return memory.NewStore(), nil
	case "sqlite":
		return sqlite.NewStore(sqlite.Config{Path: uri, Logger: o.logger})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Store, error) {
	if path == "" {
		path = "board.json"
	}

	serializers := fs.DefaultSerializers()
	for ext, raw := range o.serializers {
		s, ok := raw.(fs.Serializer)
		if !ok {
			return nil, fmt.Errorf("serializer for %q does not implement fs.Serializer", ext)
		}
		serializers[ext] = s
	}

	return fs.NewStore(fs.Config{
		Path:        path,
		Logger:      o.logger,
		Serializers: serializers,
	})
}

// wireAutoReload bridges a watchable store's change signal to Board.Reload.
func wireAutoReload(ctx context.Context, board *core.Board, store core.Store, logger *slog.Logger) error {
	w, ok := store.(core.Watchable)
	if !ok {
		if logger != nil {
			logger.Debug("store does not support watching, auto-reload disabled")
		}
		return nil
	}

	signal, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start store watcher: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-signal:
				if !ok {
					return nil
				}
				if err := board.Reload(ctx); err != nil {
					if logger != nil {
						logger.Warn("auto-reload failed", "error", err)
					}
				}
			}
		}
	})
	return nil
}
