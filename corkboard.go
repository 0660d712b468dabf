package corkboard

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/corkboard/internal/platform"
	"github.com/aretw0/corkboard/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note entity.
type Note = core.Note

// Board is a public alias for the note collection model.
type Board = core.Board

// Dragger is a public alias for the drag interaction state machine.
type Dragger = core.Dragger

// Event is a public alias for board change events.
type Event = core.Event

// Color is a public alias for palette colors.
type Color = core.Color

// The fixed note palette.
const (
	ColorYellow = core.ColorYellow
	ColorPink   = core.ColorPink
	ColorBlue   = core.ColorBlue
	ColorGreen  = core.ColorGreen
	ColorOrange = core.ColorOrange
	ColorPurple = core.ColorPurple
)

// Store is a public alias for the persistence contract.
type Store = core.Store

// --- Configuration ---

// Option defines a functional option for configuring corkboard.
type Option = platform.Option

// WithLogger sets the logger for the board and its store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name ("fs", "memory", "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithRand injects the random source used for spawn positions and colors.
func WithRand(rng *rand.Rand) Option {
	return platform.WithRand(rng)
}

// WithEventBuffer sets the per-subscriber event channel capacity.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithAutoReload reloads the board when the persisted record changes on disk.
func WithAutoReload(enabled bool) Option {
	return platform.WithAutoReload(enabled)
}

// WithSerializer registers a custom snapshot serializer for a file extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// --- Factory ---

// New creates a Board backed by the configured store and loads the
// persisted snapshot. The uri is adapter-specific (snapshot file path for
// "fs", database file for "sqlite", ignored by "memory").
func New(ctx context.Context, uri string, opts ...Option) (*core.Board, error) {
	return platform.New(ctx, uri, opts...)
}

// Open returns the configured store without constructing a Board.
func Open(uri string, opts ...Option) (core.Store, error) {
	return platform.Open(uri, opts...)
}

// NewDragger creates a drag state machine operating on board.
func NewDragger(board *core.Board) *core.Dragger {
	return core.NewDragger(board)
}

// Palette returns the fixed set of note colors.
func Palette() []Color {
	return core.Palette()
}
