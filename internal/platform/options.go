package platform

import (
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/corkboard/pkg/core"
)

// options holds the internal configuration for the corkboard service.
type options struct {
	store       core.Store
	logger      *slog.Logger
	rng         *rand.Rand
	adapter     string
	eventBuffer int
	autoReload  bool
	serializers map[string]any
}

// Option defines a functional option for configuring corkboard.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:     "fs",
		serializers: make(map[string]any),
	}
}

// WithLogger sets the logger for the board and its store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom storage adapter (e.g. mock, S3).
// If provided, the adapter selection is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name: "fs", "memory" or
// "sqlite". Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithRand injects the random source used for spawn positions and colors.
// Seed it for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithEventBuffer sets the per-subscriber event channel capacity.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithAutoReload reloads the board whenever the store reports an external
// change to the persisted record. Requires a store that supports watching;
// other stores ignore this quietly.
func WithAutoReload(enabled bool) Option {
	return func(o *options) {
		o.autoReload = enabled
	}
}

// WithSerializer registers a custom snapshot serializer for a file
// extension (fs adapter only). The serializer must implement fs.Serializer;
// using 'any' keeps the public API clean, and validation happens during New.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}
