// Package fs implements the file-backed board store.
//
// The whole board lives in a single snapshot file (board.json by default;
// .yaml/.yml supported through the serializer registry). Writes are atomic
// (temp file + rename) and guarded by an advisory flock so two processes
// sharing a board file cannot interleave partial writes.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/aretw0/corkboard/pkg/core"
)

const lockRetryInterval = 10 * time.Millisecond

// Config holds the configuration for the file-backed store.
type Config struct {
	// Path is the snapshot file. Its extension selects the serializer.
	Path string
	// Logger receives malformed-payload warnings and watcher diagnostics.
	Logger *slog.Logger
	// Serializers overrides the default extension registry. Optional.
	Serializers map[string]Serializer
}

// Store implements core.Store on a single snapshot file.
type Store struct {
	path       string
	serializer Serializer
	logger     *slog.Logger
	flk        *flock.Flock

	mu            sync.RWMutex
	watcherActive bool
}

// NewStore creates a file-backed store for the given config.
// Fails when the file extension has no registered serializer.
func NewStore(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	serializers := config.Serializers
	if serializers == nil {
		serializers = DefaultSerializers()
	}
	ext := strings.ToLower(filepath.Ext(config.Path))
	serializer, ok := serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer registered for %q", ext)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store{
		path:       config.Path,
		serializer: serializer,
		logger:     logger,
		flk:        flock.New(config.Path + ".lock"),
	}, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize ensures the parent directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create board directory: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. A missing file is an absent record.
// A malformed or non-array payload is treated as absent too: logged, never
// fatal, so a damaged file degrades to a fresh board instead of a crash.
func (s *Store) Load(ctx context.Context) ([]core.Note, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Warn("snapshot unreadable, starting empty", "path", s.path, "error", err)
		return nil, false, nil
	}

	notes, err := s.serializer.Decode(data)
	if err != nil {
		s.logger.Warn("snapshot malformed, starting empty", "path", s.path, "error", err)
		return nil, false, nil
	}
	return notes, true, nil
}

// Save persists the full snapshot atomically under the advisory lock.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	data, err := s.serializer.Encode(notes)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	return s.writeAtomic(data, 0644)
}

// writeAtomic stages the snapshot in a temp file next to the target and
// renames it into place, so a concurrent reader never observes a partial
// write. The temp name carries the snapshot name so leftovers from a crash
// are attributable.
func (s *Store) writeAtomic(data []byte, perm os.FileMode) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", s.path, err)
	}
	return nil
}

// Clear erases the record entirely. A later Load reports absent, which is
// how an intentional wipe stays distinguishable from an empty snapshot.
func (s *Store) Clear(ctx context.Context) error {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	locked, err := s.flk.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire board lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("board lock held elsewhere")
	}
	return func() {
		if err := s.flk.Unlock(); err != nil {
			s.logger.Warn("failed to release board lock", "error", err)
		}
	}, nil
}

var _ core.Store = (*Store)(nil)
