package core

import "context"

// Store defines the contract for persisting a board snapshot.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (Filesystem, SQLite, memory, S3, etc).
//
// A snapshot is the full note list at a point in time. Stores must keep
// "record absent" distinguishable from "record holds an empty list": an
// explicit Clear erases the record, while saving an empty snapshot leaves an
// empty record behind.
type Store interface {
	// Initialize ensures the underlying storage is ready (e.g. create
	// directories, open the database, run schema setup).
	Initialize(ctx context.Context) error

	// Load retrieves the persisted snapshot. found is false when no record
	// exists. A malformed record must be reported as absent, not as an error.
	Load(ctx context.Context) (notes []Note, found bool, err error)

	// Save persists the full snapshot, replacing any previous record.
	Save(ctx context.Context, notes []Note) error

	// Clear erases the record entirely, so a later Load reports absent.
	Clear(ctx context.Context) error
}

// Watchable is implemented by stores that can report external changes to the
// persisted record (e.g. another process rewriting the board file).
type Watchable interface {
	// Watch emits a signal whenever the record changes outside this process.
	// The channel closes when ctx is done or the watcher stops.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
