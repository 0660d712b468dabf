package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/corkboard/pkg/core"
)

// Terminal colors per palette entry.
var noteColors = map[core.Color]lipgloss.Color{
	core.ColorYellow: lipgloss.Color("#F7E26B"),
	core.ColorPink:   lipgloss.Color("#F2A2C0"),
	core.ColorBlue:   lipgloss.Color("#8FC7F2"),
	core.ColorGreen:  lipgloss.Color("#A3D977"),
	core.ColorOrange: lipgloss.Color("#F2B05E"),
	core.ColorPurple: lipgloss.Color("#C7A6F2"),
}

var (
	inkColor    = lipgloss.Color("#1A1A2E")
	statusStyle = lipgloss.NewStyle().Faint(true)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// cell is one terminal cell of the composited canvas.
type cell struct {
	r        rune
	color    core.Color // empty = bare canvas
	handle   bool
	lifted   bool
	selected bool
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "opening board..."
	}

	canvasHeight := m.height - 1
	if canvasHeight < 1 {
		canvasHeight = 1
	}

	if m.mode == modeEdit {
		return m.viewEditor(canvasHeight) + "\n" + m.viewStatus()
	}
	return m.viewCanvas(canvasHeight) + "\n" + m.viewStatus()
}

func (m Model) viewCanvas(height int) string {
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, m.width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}

	dragTarget, _ := m.drag.Target()
	// Paint ascending by stack so higher values land on top.
	for _, n := range m.board.NotesByStack() {
		m.paintNote(grid, n, n.ID == dragTarget, n.ID == m.selected)
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderRow(grid[y]))
	}
	return b.String()
}

// paintNote rasterizes one note into the grid: border, handle row, wrapped
// content.
func (m Model) paintNote(grid [][]cell, n core.Note, lifted, selected bool) {
	col := int((n.X - m.offsetX) / unitsPerCol)
	row := int((n.Y - m.offsetY) / unitsPerRow)
	w := max(4, int(n.W/unitsPerCol))
	h := max(3, int(n.H/unitsPerRow))

	put := func(x, y int, r rune, handle bool) {
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			return
		}
		grid[y][x] = cell{r: r, color: n.Color, handle: handle, lifted: lifted, selected: selected}
	}

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r := ' '
			switch {
			case dy == 0 && dx == 0:
				r = '╭'
			case dy == 0 && dx == w-1:
				r = '╮'
			case dy == h-1 && dx == 0:
				r = '╰'
			case dy == h-1 && dx == w-1:
				r = '╯'
			case dy == 0 || dy == h-1:
				r = '─'
			case dx == 0 || dx == w-1:
				r = '│'
			}
			put(col+dx, row+dy, r, dy == 0)
		}
	}

	// Content inside the border, chopped to the note's inner box.
	lines := wrapContent(n.Content, w-2, h-2)
	for dy, line := range lines {
		for dx, r := range []rune(line) {
			put(col+1+dx, row+1+dy, r, false)
		}
	}
}

// renderRow groups runs of identically-styled cells to keep the escape
// sequence count down.
func renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && sameStyle(row[i], row[start]) {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.r)
		}
		b.WriteString(styleFor(row[start]).Render(run.String()))
		start = i
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.color == b.color && a.handle == b.handle && a.lifted == b.lifted && a.selected == b.selected
}

func styleFor(c cell) lipgloss.Style {
	if c.color == "" {
		return lipgloss.NewStyle()
	}
	style := lipgloss.NewStyle().Background(noteColors[c.color]).Foreground(inkColor)
	if c.handle {
		// The handle row is the grab affordance.
		style = style.Reverse(true)
	}
	if c.lifted {
		// The note under an active drag gets the lifted look.
		style = style.Bold(true)
	}
	if c.selected {
		style = style.Underline(true)
	}
	return style
}

func (m Model) viewEditor(height int) string {
	panel := panelStyle.Render(m.editor.View())
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, panel)
}

func (m Model) viewStatus() string {
	if m.mode == modeConfirmClear {
		return alertStyle.Render("wipe the whole board? this cannot be undone [y/N]")
	}
	if m.mode == modeEdit {
		return statusStyle.Render("editing · esc done · every keystroke is saved")
	}

	state := "idle"
	if m.drag.Active() {
		state = "dragging"
	}
	left := m.status
	right := lipgloss.NewStyle().Bold(true).Render(state)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return statusStyle.Render(left)
	}
	return statusStyle.Render(left) + strings.Repeat(" ", gap) + right
}

// wrapContent chops text into at most maxLines lines of maxWidth runes,
// respecting explicit newlines.
func wrapContent(text string, maxWidth, maxLines int) []string {
	if maxWidth <= 0 || maxLines <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		runes := []rune(para)
		for {
			if len(out) == maxLines {
				return out
			}
			if len(runes) <= maxWidth {
				out = append(out, string(runes))
				break
			}
			out = append(out, string(runes[:maxWidth]))
			runes = runes[maxWidth:]
		}
	}
	return out
}
