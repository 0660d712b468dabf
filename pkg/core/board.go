package core

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// New notes spawn inside this region so successive creations never stack
// perfectly on top of each other.
const (
	spawnOrigin = 48.0
	spawnSpread = 320.0
)

const defaultEventBuffer = 100

// Config holds the configuration for a Board.
type Config struct {
	// Logger receives storage failures and diagnostics. Optional.
	Logger *slog.Logger
	// Rand drives initial note position and color. Inject a seeded source
	// for deterministic tests. Optional.
	Rand *rand.Rand
	// EventBuffer is the per-subscriber event channel capacity.
	// Zero means default (100).
	EventBuffer int
}

// Board owns the note collection and the stacking counter.
// All mutation funnels through it so the persistence side effect
// ("every change reaches the store") can never be bypassed.
type Board struct {
	mu     sync.RWMutex
	store  Store
	logger *slog.Logger
	rng    *rand.Rand

	notes    []Note // insertion order
	maxStack int
	loaded   bool

	eventBuffer int
	subMu       sync.Mutex
	subs        map[int]*subscriber
	nextSub     int
}

type subscriber struct {
	pattern string
	ch      chan Event
}

// NewBoard creates a Board backed by store and loads the persisted snapshot.
// Until that initial load has completed no save is issued, so existing data
// is never clobbered by an empty starting state.
func NewBoard(ctx context.Context, store Store, cfg Config) (*Board, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17))
	}
	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}

	b := &Board{
		store:       store,
		logger:      logger,
		rng:         rng,
		eventBuffer: buffer,
		subs:        make(map[int]*subscriber),
	}
	if err := b.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial load failed: %w", err)
	}
	return b, nil
}

// Reload re-reads the snapshot from the store, replacing in-memory state.
// Used at construction and when a watcher reports an external change.
func (b *Board) Reload(ctx context.Context) error {
	notes, found, err := b.store.Load(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !found {
		notes = nil
	}
	b.notes = notes
	b.maxStack = 0
	for _, n := range b.notes {
		if n.Stack > b.maxStack {
			b.maxStack = n.Stack
		}
	}
	b.loaded = true
	return nil
}

// CreateNote allocates a new note: fresh ID, randomized spawn position,
// random palette color, default size, and the next stacking slot.
func (b *Board) CreateNote(ctx context.Context) Note {
	b.mu.Lock()
	palette := Palette()
	b.maxStack++
	n := Note{
		ID:    uuid.NewString(),
		X:     spawnOrigin + b.rng.Float64()*spawnSpread,
		Y:     spawnOrigin + b.rng.Float64()*spawnSpread,
		Color: palette[b.rng.IntN(len(palette))],
		Stack: b.maxStack,
		W:     DefaultNoteWidth,
		H:     DefaultNoteHeight,
	}
	b.notes = append(b.notes, n)
	b.save(ctx)
	b.mu.Unlock()

	b.publish(Event{Type: EventCreate, ID: n.ID, Timestamp: time.Now().Unix()})
	return n
}

// UpdateContent replaces the text of the note with the given id.
func (b *Board) UpdateContent(ctx context.Context, id, text string) error {
	return b.modify(ctx, id, func(n *Note) error {
		n.Content = text
		return nil
	})
}

// UpdateColor replaces the color of the note with the given id.
// The color must be a palette member.
func (b *Board) UpdateColor(ctx context.Context, id string, color Color) error {
	if !ValidColor(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return b.modify(ctx, id, func(n *Note) error {
		n.Color = color
		return nil
	})
}

// MoveNote repositions the note with the given id. Drag sessions funnel
// their positional writes through here.
func (b *Board) MoveNote(ctx context.Context, id string, x, y float64) error {
	return b.modify(ctx, id, func(n *Note) error {
		n.X = x
		n.Y = y
		return nil
	})
}

// BringToFront raises the note above every other note. When the note already
// holds the top slot this is a side-effect-free no-op: no save, no event.
func (b *Board) BringToFront(ctx context.Context, id string) error {
	b.mu.Lock()
	n := b.find(id)
	if n == nil {
		b.mu.Unlock()
		return ErrNoteNotFound
	}
	if n.Stack == b.maxStack {
		b.mu.Unlock()
		return nil
	}
	b.maxStack++
	n.Stack = b.maxStack
	b.save(ctx)
	b.mu.Unlock()

	b.publish(Event{Type: EventModify, ID: id, Timestamp: time.Now().Unix()})
	return nil
}

// Raise assigns the note a fresh top slot unconditionally, advancing the
// stacking counter even when the note is already on top. Drag-start uses
// this, and the asymmetry with BringToFront is deliberate: starting a drag
// always reorders.
func (b *Board) Raise(ctx context.Context, id string) error {
	b.mu.Lock()
	n := b.find(id)
	if n == nil {
		b.mu.Unlock()
		return ErrNoteNotFound
	}
	b.maxStack++
	n.Stack = b.maxStack
	b.save(ctx)
	b.mu.Unlock()

	b.publish(Event{Type: EventModify, ID: id, Timestamp: time.Now().Unix()})
	return nil
}

// DeleteNote removes the note with the given id; deleting an absent id is a
// no-op. Removing the last note persists an empty snapshot; it does not erase
// the record (see ClearAll).
func (b *Board) DeleteNote(ctx context.Context, id string) error {
	b.mu.Lock()
	idx := -1
	for i := range b.notes {
		if b.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return nil
	}
	b.notes = append(b.notes[:idx], b.notes[idx+1:]...)
	b.save(ctx)
	b.mu.Unlock()

	b.publish(Event{Type: EventDelete, ID: id, Timestamp: time.Now().Unix()})
	return nil
}

// ClearAll empties the board and erases the persisted record entirely.
// A later Load reports absent, which is distinct from an empty snapshot.
func (b *Board) ClearAll(ctx context.Context) error {
	b.mu.Lock()
	b.notes = nil
	b.maxStack = 0
	if err := b.store.Clear(ctx); err != nil {
		b.logger.Warn("store clear failed, board wiped in memory only", "error", err)
	}
	b.mu.Unlock()

	b.publish(Event{Type: EventClear, Timestamp: time.Now().Unix()})
	return nil
}

// Get returns a copy of the note with the given id.
func (b *Board) Get(id string) (Note, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n := b.find(id); n != nil {
		return *n, true
	}
	return Note{}, false
}

// Snapshot returns a copy of all notes in insertion order.
func (b *Board) Snapshot() []Note {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Note, len(b.notes))
	copy(out, b.notes)
	return out
}

// NotesByStack returns a copy of all notes in paint order: ascending stack,
// so higher values are painted last and end up visually on top.
func (b *Board) NotesByStack() []Note {
	out := b.Snapshot()
	// Insertion sort; boards are small and mostly ordered already.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Stack < out[j-1].Stack; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Len returns the number of notes on the board.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.notes)
}

// MaxStack returns the current stacking counter.
func (b *Board) MaxStack() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.maxStack
}

// Watch subscribes to board events whose note ID matches the given
// doublestar pattern ("*" for everything). Clear events match any pattern.
// The channel closes when ctx is done. Slow subscribers drop events rather
// than block mutation.
func (b *Board) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	sub := &subscriber{pattern: pattern, ch: make(chan Event, b.eventBuffer)}

	b.subMu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = sub
	b.subMu.Unlock()

	go func() {
		<-ctx.Done()
		b.subMu.Lock()
		delete(b.subs, id)
		b.subMu.Unlock()
		close(sub.ch)
	}()

	return sub.ch, nil
}

// modify applies fn to the note with the given id, then saves and publishes.
func (b *Board) modify(ctx context.Context, id string, fn func(*Note) error) error {
	b.mu.Lock()
	n := b.find(id)
	if n == nil {
		b.mu.Unlock()
		return ErrNoteNotFound
	}
	if err := fn(n); err != nil {
		b.mu.Unlock()
		return err
	}
	b.save(ctx)
	b.mu.Unlock()

	b.publish(Event{Type: EventModify, ID: id, Timestamp: time.Now().Unix()})
	return nil
}

// find returns a pointer into the notes slice. Callers hold b.mu.
func (b *Board) find(id string) *Note {
	for i := range b.notes {
		if b.notes[i].ID == id {
			return &b.notes[i]
		}
	}
	return nil
}

// save pushes the current snapshot to the store. Best-effort: failures are
// logged and the board keeps operating in memory for the session. Callers
// hold b.mu. No save is issued before the initial load has completed.
func (b *Board) save(ctx context.Context) {
	if !b.loaded {
		return
	}
	snapshot := make([]Note, len(b.notes))
	copy(snapshot, b.notes)
	if err := b.store.Save(ctx, snapshot); err != nil {
		b.logger.Warn("snapshot save failed, continuing in memory", "error", err)
	}
}

func (b *Board) publish(e Event) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	for _, sub := range b.subs {
		if e.ID != "" {
			if ok, err := doublestar.Match(sub.pattern, e.ID); err != nil || !ok {
				continue
			}
		}
		select {
		case sub.ch <- e:
		default:
			b.logger.Debug("subscriber buffer full, dropping event", "event", e.String())
		}
	}
}
