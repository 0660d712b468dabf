// Package corkboard is the Composition Root for the corkboard engine.
//
// It connects the core board logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Corkboard is a headless sticky-note board. It owns the note collection,
// the stacking order, and the drag interaction state machine; rendering is
// left to whatever view you attach (the bundled terminal UI, or your own).
// Every mutation reaches the persistent store, and a damaged or missing
// record degrades to a fresh board instead of an error.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Snapshot Persistence**: Every change persists the full board atomically.
//   - **Drag State Machine**: Absolute anchored repositioning, immune to missed events.
//   - **Default Adapter (JSON file)**: A single human-readable snapshot file.
//   - **Extensible**: SQLite and in-memory adapters included; bring your own via `core.Store`.
//   - **Reactive**: Board events and on-disk change watching for live views.
//
// Usage:
//
//	// Initialize a board with functional options
//	board, err := corkboard.New(ctx, "./board.json",
//		corkboard.WithLogger(logger),
//	)
//
//	// Create and edit a note
//	note := board.CreateNote(ctx)
//	err = board.UpdateContent(ctx, note.ID, "buy milk")
package corkboard
