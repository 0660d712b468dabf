// Package core contains the board domain model: notes, the collection
// that owns them, the drag state machine and the persistence contract.
package core

// Color is one value from the fixed note palette.
type Color string

// The fixed palette. Recoloring accepts exactly these values.
const (
	ColorYellow Color = "yellow"
	ColorPink   Color = "pink"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
)

// Palette returns the fixed set of note colors in a stable order.
func Palette() []Color {
	return []Color{ColorYellow, ColorPink, ColorBlue, ColorGreen, ColorOrange, ColorPurple}
}

// ValidColor reports whether c is a member of the palette.
func ValidColor(c Color) bool {
	for _, p := range Palette() {
		if c == p {
			return true
		}
	}
	return false
}

// Default note geometry, in canvas units.
const (
	DefaultNoteWidth  = 220.0
	DefaultNoteHeight = 220.0
)

// Note is a single movable, editable, colorable sticky note.
// It is agnostic to storage format (JSON file, YAML file, SQL).
type Note struct {
	ID      string  `json:"id" yaml:"id"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Content string  `json:"content" yaml:"content"`
	Color   Color   `json:"color" yaml:"color"`
	Stack   int     `json:"stackOrder" yaml:"stackOrder"`
	W       float64 `json:"width" yaml:"width"`
	H       float64 `json:"height" yaml:"height"`
}

// EventType represents the type of change on the board.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	EventClear  EventType = "CLEAR"
)

// Event represents a change on the board. Clear events carry no ID.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return string(e.Type) + " " + e.ID
}
