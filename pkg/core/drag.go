package core

import (
	"context"
	"errors"
)

// DragState is the lifecycle state of the drag interaction machine.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

// String implements fmt.Stringer.
func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

// Dragger tracks a single pointer-drag gesture and translates pointer
// movement into note position updates. At most one session is active at a
// time (single-pointer model). It holds only the target's identifier, never
// a copy of the note: all positional writes go through the Board.
type Dragger struct {
	board *Board

	// Session state. A Dragger is driven from a single input loop and is
	// not safe for concurrent use. Anchors are captured at gesture start.
	state    DragState
	target   string
	anchorPX float64
	anchorPY float64
	anchorNX float64
	anchorNY float64
}

// NewDragger creates a Dragger operating on board.
func NewDragger(board *Board) *Dragger {
	return &Dragger{board: board}
}

// Begin starts a drag session for the note with the given id, anchoring the
// pointer at (px, py). Starting a drag always raises the note to the top of
// the stack, even before any movement occurs. Returns ErrDragActive while a
// session is live, ErrNoteNotFound when the target does not exist.
func (d *Dragger) Begin(ctx context.Context, id string, px, py float64) error {
	if d.state == DragDragging {
		return ErrDragActive
	}
	n, ok := d.board.Get(id)
	if !ok {
		return ErrNoteNotFound
	}
	// Raise before committing session state: if the note vanishes between the
	// lookup and the raise, the machine stays idle instead of tracking a gone
	// target.
	if err := d.board.Raise(ctx, id); err != nil {
		return err
	}

	d.state = DragDragging
	d.target = id
	d.anchorPX = px
	d.anchorPY = py
	d.anchorNX = n.X
	d.anchorNY = n.Y
	return nil
}

// Move repositions the target from the anchors: position = anchor note
// position + (pointer - anchor pointer). Absolute, not incremental, so a
// missed intermediate event cannot corrupt the final position. A Move while
// idle is a stale event and a no-op. If the target vanished mid-gesture the
// session resets to idle.
func (d *Dragger) Move(ctx context.Context, px, py float64) error {
	if d.state != DragDragging {
		return nil
	}
	x := d.anchorNX + (px - d.anchorPX)
	y := d.anchorNY + (py - d.anchorPY)

	err := d.board.MoveNote(ctx, d.target, x, y)
	if errors.Is(err, ErrNoteNotFound) {
		d.reset()
		return nil
	}
	return err
}

// End terminates the session (pointer-up). Idempotent. No further position
// changes occur for the gesture; the last applied position stands.
func (d *Dragger) End() {
	d.reset()
}

// Cancel terminates the session (pointer-cancel). Same effect as End: the
// gesture stops, nothing is reverted.
func (d *Dragger) Cancel() {
	d.reset()
}

// Active reports whether a drag session is live.
func (d *Dragger) Active() bool {
	return d.state == DragDragging
}

// Target returns the id of the note being dragged, if any. Views use this
// to apply the "lifted" affordance to the active note only.
func (d *Dragger) Target() (string, bool) {
	if d.state != DragDragging {
		return "", false
	}
	return d.target, true
}

// State returns the current machine state.
func (d *Dragger) State() DragState {
	return d.state
}

func (d *Dragger) reset() {
	d.state = DragIdle
	d.target = ""
	d.anchorPX, d.anchorPY = 0, 0
	d.anchorNX, d.anchorNY = 0, 0
}
