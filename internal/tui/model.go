// Package tui is the terminal view layer for a corkboard.
//
// It routes raw mouse and key events into the board and the drag state
// machine, and re-renders from the current collection snapshot. The board
// stays the single owner of all note state; the view holds identifiers only.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/corkboard/pkg/core"
)

// Canvas units per terminal cell. Terminal cells are roughly twice as tall
// as they are wide, so the vertical scale doubles the horizontal one to keep
// notes square-ish on screen.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0
)

// panStep is the canvas distance covered by one arrow-key pan.
const panStep = 40.0

type mode int

const (
	modeBoard mode = iota
	modeEdit
	modeConfirmClear
)

// boardEventMsg carries a board change event into the bubbletea loop.
type boardEventMsg core.Event

// Model is the bubbletea model for the board view.
type Model struct {
	board  *core.Board
	drag   *core.Dragger
	logger *slog.Logger

	ctx    context.Context
	events <-chan core.Event

	width  int
	height int

	// Canvas coordinates of the top-left visible cell.
	offsetX float64
	offsetY float64

	mode     mode
	selected string
	editing  string
	editor   textarea.Model
	status   string
}

// NewModel creates the board view. ctx bounds the event subscription.
func NewModel(ctx context.Context, board *core.Board, logger *slog.Logger) (Model, error) {
	events, err := board.Watch(ctx, "*")
	if err != nil {
		return Model{}, err
	}

	editor := textarea.New()
	editor.Placeholder = "write something..."
	editor.CharLimit = 0

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return Model{
		board:  board,
		drag:   core.NewDragger(board),
		logger: logger,
		ctx:    ctx,
		events: events,
		editor: editor,
		status: "n new · drag handle to move · e edit · c color · d delete · X clear · q quit",
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent forwards the next board event into the update loop, so
// external changes (auto-reload, another writer) repaint the canvas.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.events
		if !ok {
			return nil
		}
		return boardEventMsg(e)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(min(60, max(20, msg.Width-4)))
		m.editor.SetHeight(min(10, max(3, msg.Height-6)))
		return m, nil

	case boardEventMsg:
		// State already changed on the board; repaint and keep listening.
		return m, m.waitForEvent()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEditKeys(msg)
		case modeConfirmClear:
			return m.updateConfirmKeys(msg)
		default:
			return m.updateBoardKeys(msg)
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px, py := m.cellToCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// A press anywhere commits and leaves edit mode first, so the text
		// surface never intercepts the gesture.
		if m.mode == modeEdit {
			m = m.commitEdit()
		}
		if m.mode == modeConfirmClear {
			m.mode = modeBoard
		}

		id, onHandle, ok := m.hit(msg.X, msg.Y)
		if !ok {
			m.selected = ""
			return m, nil
		}
		m.selected = id
		if onHandle {
			if err := m.drag.Begin(m.ctx, id, px, py); err != nil {
				m.logger.Debug("drag begin rejected", "error", err)
			}
		} else {
			// Clicking the body raises without starting a gesture.
			if err := m.board.BringToFront(m.ctx, id); err != nil {
				m.logger.Debug("bring to front failed", "error", err)
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.drag.Active() {
			if err := m.drag.Move(m.ctx, px, py); err != nil {
				m.logger.Warn("drag move failed", "error", err)
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		m.drag.End()
		return m, nil
	}
	return m, nil
}

func (m Model) updateBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "n":
		n := m.board.CreateNote(m.ctx)
		m.selected = n.ID
		return m, nil

	case "d":
		if m.selected != "" {
			if err := m.board.DeleteNote(m.ctx, m.selected); err != nil {
				m.logger.Debug("delete failed", "error", err)
			}
			m.selected = ""
		}
		return m, nil

	case "c":
		if m.selected != "" {
			if n, ok := m.board.Get(m.selected); ok {
				if err := m.board.UpdateColor(m.ctx, m.selected, nextColor(n.Color)); err != nil {
					m.logger.Debug("recolor failed", "error", err)
				}
			}
		}
		return m, nil

	case "f":
		if m.selected != "" {
			if err := m.board.BringToFront(m.ctx, m.selected); err != nil {
				m.logger.Debug("bring to front failed", "error", err)
			}
		}
		return m, nil

	case "e", "enter":
		// The drag gesture owns the pointer; no editing mid-drag.
		if m.selected != "" && !m.drag.Active() {
			if n, ok := m.board.Get(m.selected); ok {
				m.mode = modeEdit
				m.editing = n.ID
				m.editor.SetValue(n.Content)
				m.editor.Focus()
				return m, textarea.Blink
			}
		}
		return m, nil

	case "X":
		// Clearing the whole board needs explicit confirmation.
		m.mode = modeConfirmClear
		return m, nil

	case "tab":
		m.selected = m.nextSelection()
		return m, nil

	case "up":
		m.offsetY -= panStep
		return m, nil
	case "down":
		m.offsetY += panStep
		return m, nil
	case "left":
		m.offsetX -= panStep
		return m, nil
	case "right":
		m.offsetX += panStep
		return m, nil
	}
	return m, nil
}

func (m Model) updateEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.commitEdit(), nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	// Every keystroke funnels through the collection, so persistence and
	// subscribers see each edit, matching the per-keystroke change event.
	if err := m.board.UpdateContent(m.ctx, m.editing, m.editor.Value()); err != nil {
		// The note vanished underneath the editor (e.g. external clear).
		m.logger.Debug("edit target gone", "error", err)
		m = m.commitEdit()
	}
	return m, cmd
}

func (m Model) updateConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.board.ClearAll(m.ctx); err != nil {
			m.logger.Warn("clear failed", "error", err)
		}
		m.selected = ""
	case "ctrl+c":
		return m, tea.Quit
	}
	m.mode = modeBoard
	return m, nil
}

func (m Model) commitEdit() Model {
	m.editor.Blur()
	m.mode = modeBoard
	m.editing = ""
	return m
}

// cellToCanvas maps a terminal cell to canvas coordinates.
func (m Model) cellToCanvas(cx, cy int) (float64, float64) {
	return m.offsetX + float64(cx)*unitsPerCol, m.offsetY + float64(cy)*unitsPerRow
}

// hit returns the topmost note under the cell and whether the cell lies on
// the note's drag handle (its top border row).
func (m Model) hit(cx, cy int) (id string, onHandle bool, ok bool) {
	px, py := m.cellToCanvas(cx, cy)

	best := core.Note{Stack: -1}
	for _, n := range m.board.Snapshot() {
		if px >= n.X && px < n.X+n.W && py >= n.Y && py < n.Y+n.H {
			if n.Stack > best.Stack {
				best = n
			}
		}
	}
	if best.Stack < 0 {
		return "", false, false
	}
	// The handle is the first cell row of the note.
	handle := py-best.Y < unitsPerRow
	return best.ID, handle, true
}

// nextSelection cycles through notes in paint order.
func (m Model) nextSelection() string {
	ordered := m.board.NotesByStack()
	if len(ordered) == 0 {
		return ""
	}
	for i, n := range ordered {
		if n.ID == m.selected {
			return ordered[(i+1)%len(ordered)].ID
		}
	}
	return ordered[0].ID
}

func nextColor(c core.Color) core.Color {
	palette := core.Palette()
	for i, p := range palette {
		if p == c {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}

var _ tea.Model = Model{}
