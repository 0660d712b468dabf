package core

import (
	"github.com/aretw0/introspection"
)

// BoardState exposes internal state for observability.
type BoardState struct {
	NoteCount   int    `json:"note_count"`
	MaxStack    int    `json:"max_stack"`
	Loaded      bool   `json:"loaded"`
	Subscribers int    `json:"subscribers"`
	StoreType   string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (b *Board) State() any {
	b.mu.RLock()
	noteCount := len(b.notes)
	maxStack := b.maxStack
	loaded := b.loaded
	b.mu.RUnlock()

	b.subMu.Lock()
	subscribers := len(b.subs)
	b.subMu.Unlock()

	storeType := "store"
	if comp, ok := b.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	return BoardState{
		NoteCount:   noteCount,
		MaxStack:    maxStack,
		Loaded:      loaded,
		Subscribers: subscribers,
		StoreType:   storeType,
	}
}

// ComponentType implements introspection.Component.
func (b *Board) ComponentType() string {
	return "board"
}

var _ introspection.Introspectable = (*Board)(nil)
var _ introspection.Component = (*Board)(nil)
