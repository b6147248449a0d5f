package pickit

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// injectQueue holds synthetic occurrences. Surface coordinates are used
// (matching what a screenshot shows) and are mapped to world coordinates by
// the camera, identical to real mouse input. One occurrence is consumed per
// frame so that press and release land in different frames.
type injectQueue struct {
	pending []Occurrence
}

func (q *injectQueue) push(o ...Occurrence) { q.pending = append(q.pending, o...) }

func (q *injectQueue) len() int { return len(q.pending) }

// pop appends the next occurrence to dst, if any.
func (q *injectQueue) pop(dst []Occurrence) []Occurrence {
	if len(q.pending) == 0 {
		return dst
	}
	dst = append(dst, q.pending[0])
	copy(q.pending, q.pending[1:])
	q.pending = q.pending[:len(q.pending)-1]
	return dst
}

// InjectKey queues a key press followed by its release. Consumes two frames.
func (h *Host) InjectKey(name string) error {
	k, ok := KeyByName(name)
	if !ok {
		return fmt.Errorf("pickit: unknown key %q", name)
	}
	h.injected.push(
		Occurrence{Kind: OccKey, Key: k, Down: true},
		Occurrence{Kind: OccKey, Key: k, Down: false},
	)
	return nil
}

// InjectKeyState queues a single key down or up occurrence.
func (h *Host) InjectKeyState(k ebiten.Key, down bool) {
	h.injected.push(Occurrence{Kind: OccKey, Key: k, Down: down})
}

// InjectText queues one typed occurrence per rune of s.
func (h *Host) InjectText(s string) {
	for _, r := range s {
		h.injected.push(Occurrence{Kind: OccTyped, Char: r})
	}
}

// InjectMove queues a cursor move to the given surface coordinates.
func (h *Host) InjectMove(x, y float64) {
	h.injected.push(Occurrence{Kind: OccMouseMoved, X: x, Y: y})
}

// InjectClick queues a move to (x, y) followed by a press and release of
// button. Consumes three frames.
func (h *Host) InjectClick(x, y float64, button MouseButton) {
	h.InjectMove(x, y)
	h.injected.push(
		Occurrence{Kind: OccMouseButton, Button: button, Down: true},
		Occurrence{Kind: OccMouseButton, Button: button, Down: false},
	)
}

// InjectWheel queues a scroll of (dx, dy).
func (h *Host) InjectWheel(dx, dy float64) {
	h.injected.push(Occurrence{Kind: OccMouseWheel, X: dx, Y: dy})
}
