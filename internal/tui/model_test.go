package tui

import (
	"context"
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/corkboard/pkg/adapters/memory"
	"github.com/aretw0/corkboard/pkg/core"
)

// setupModel builds a sized view over a one-note board with the note pinned
// at the canvas origin, so cell coordinates are easy to reason about.
func setupModel(t *testing.T) (Model, *core.Board, core.Note) {
	t.Helper()

	ctx := context.Background()
	board, err := core.NewBoard(ctx, memory.NewStore(), core.Config{
		Rand: rand.New(rand.NewPCG(3, 5)),
	})
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	n := board.CreateNote(ctx)
	if err := board.MoveNote(ctx, n.ID, 0, 0); err != nil {
		t.Fatalf("MoveNote failed: %v", err)
	}

	m, err := NewModel(ctx, board, nil)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return resized.(Model), board, n
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestMouseDragGesture(t *testing.T) {
	m, board, n := setupModel(t)

	// Press on the handle row (cell 0,0 -> canvas 0,0, inside the top row).
	m = step(t, m, press(0, 0))
	if !m.drag.Active() {
		t.Fatal("expected press on the handle to start a drag")
	}
	if id, _ := m.drag.Target(); id != n.ID {
		t.Fatalf("expected target %s, got %s", n.ID, id)
	}

	// Motion to cell (5, 3): pointer moved 50 canvas units right, 60 down.
	m = step(t, m, motion(5, 3))
	got, _ := board.Get(n.ID)
	if got.X != 50 || got.Y != 60 {
		t.Errorf("expected note at (50, 60), got (%g, %g)", got.X, got.Y)
	}

	m = step(t, m, release(5, 3))
	if m.drag.Active() {
		t.Error("expected release to end the drag")
	}

	// Motion after release must not move anything.
	m = step(t, m, motion(20, 10))
	after, _ := board.Get(n.ID)
	if after.X != got.X || after.Y != got.Y {
		t.Error("note moved after the gesture ended")
	}
}

func TestBodyClickRaisesWithoutDrag(t *testing.T) {
	m, board, n := setupModel(t)
	board.CreateNote(context.Background())

	// Cell (1, 2) -> canvas (10, 40): inside the note, below the handle.
	m = step(t, m, press(1, 2))
	if m.drag.Active() {
		t.Error("expected body click not to start a drag")
	}
	if m.selected != n.ID {
		t.Errorf("expected selection %s, got %q", n.ID, m.selected)
	}
	got, _ := board.Get(n.ID)
	if got.Stack != board.MaxStack() {
		t.Error("expected body click to raise the note")
	}
}

func TestClickEmptyCanvasDeselects(t *testing.T) {
	m, _, _ := setupModel(t)

	m = step(t, m, press(1, 2))
	if m.selected == "" {
		t.Fatal("expected a selection first")
	}
	// Far outside the note.
	m = step(t, m, press(79, 23))
	if m.selected != "" {
		t.Error("expected empty-canvas click to clear the selection")
	}
}

func TestKeyboardActions(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		m, board, _ := setupModel(t)
		m = step(t, m, key("n"))
		if board.Len() != 2 {
			t.Errorf("expected 2 notes, got %d", board.Len())
		}
		if m.selected == "" {
			t.Error("expected the new note to be selected")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		m, board, n := setupModel(t)
		m.selected = n.ID
		m = step(t, m, key("d"))
		if board.Len() != 0 {
			t.Errorf("expected empty board, got %d notes", board.Len())
		}
	})

	t.Run("Cycle Color", func(t *testing.T) {
		m, board, n := setupModel(t)
		m.selected = n.ID
		before, _ := board.Get(n.ID)
		m = step(t, m, key("c"))
		after, _ := board.Get(n.ID)
		if before.Color == after.Color {
			t.Error("expected the color to change")
		}
		if !core.ValidColor(after.Color) {
			t.Errorf("cycled to a non-palette color %q", after.Color)
		}
	})

	t.Run("Clear Requires Confirmation", func(t *testing.T) {
		m, board, _ := setupModel(t)

		m = step(t, m, key("X"))
		if board.Len() != 1 {
			t.Fatal("expected nothing cleared before confirmation")
		}
		// Anything but y cancels.
		m = step(t, m, key("n"))
		if board.Len() != 1 {
			t.Error("expected cancel to keep the board")
		}

		m = step(t, m, key("X"))
		m = step(t, m, key("y"))
		if board.Len() != 0 {
			t.Error("expected confirmed clear to empty the board")
		}
	})
}

func TestEditModePersistsEachKeystroke(t *testing.T) {
	m, board, n := setupModel(t)
	m.selected = n.ID

	m = step(t, m, key("e"))
	if m.mode != modeEdit {
		t.Fatal("expected edit mode")
	}

	m = step(t, m, key("h"))
	m = step(t, m, key("i"))
	got, _ := board.Get(n.ID)
	if got.Content != "hi" {
		t.Errorf("expected content %q, got %q", "hi", got.Content)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBoard {
		t.Error("expected esc to leave edit mode")
	}
}

func TestEditDoesNotInterceptDrag(t *testing.T) {
	m, _, _ := setupModel(t)

	// Start a drag, then try to enter edit mode mid-gesture.
	m = step(t, m, press(0, 0))
	m.selected, _ = m.drag.Target()
	m = step(t, m, key("e"))
	if m.mode == modeEdit {
		t.Error("expected edit mode to be unreachable while dragging")
	}
}
