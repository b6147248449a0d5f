package pickit

import (
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// OccurrenceKind identifies a native input occurrence.
type OccurrenceKind uint8

const (
	OccFocused OccurrenceKind = iota
	OccUnfocused
	OccKey
	OccTyped
	OccMouseMoved
	OccMouseEntered
	OccMouseExited
	OccMouseWheel
	OccMouseButton
)

var occurrenceNames = [...]string{
	"focused", "unfocused", "key", "typed", "mouse_moved",
	"mouse_entered", "mouse_exited", "mouse_wheel", "mouse_button",
}

// String returns the discriminant scripts see in event.event.
func (k OccurrenceKind) String() string {
	if int(k) < len(occurrenceNames) {
		return occurrenceNames[k]
	}
	return "unknown"
}

// Occurrence is one native input happening, in surface coordinates.
type Occurrence struct {
	Kind   OccurrenceKind
	Key    ebiten.Key
	Button MouseButton
	Down   bool
	Char   rune
	// X and Y hold the cursor position for OccMouseMoved and the scroll
	// delta for OccMouseWheel.
	X, Y float64
}

// InputSource produces the occurrences that happened since the last poll,
// in the order they happened.
type InputSource interface {
	Poll(dst []Occurrence) []Occurrence
}

// InputSnapshot is the per-frame keyboard, mouse and timing state that API
// calls read.
type InputSnapshot struct {
	keys    map[ebiten.Key]ButtonState
	buttons [mouseButtonCount]ButtonState
	pointer Vec2
	wheel   Vec2
	focused bool
	inside  bool
	period  time.Duration
}

func newInputSnapshot(period time.Duration) *InputSnapshot {
	return &InputSnapshot{
		keys:    make(map[ebiten.Key]ButtonState),
		focused: true,
		period:  period,
	}
}

// settle ages edge states and clears the wheel delta. The host calls it
// once an update tick has observed them, so pressed, released and scroll
// survive frames that run no update.
func (s *InputSnapshot) settle() {
	for k, st := range s.keys {
		if st = st.settle(); st == ButtonIdle {
			delete(s.keys, k)
		} else {
			s.keys[k] = st
		}
	}
	for i := range s.buttons {
		s.buttons[i] = s.buttons[i].settle()
	}
	s.wheel = Vec2{}
}

// apply folds one occurrence into the snapshot.
func (s *InputSnapshot) apply(o Occurrence) {
	switch o.Kind {
	case OccFocused:
		s.focused = true
	case OccUnfocused:
		s.focused = false
	case OccKey:
		s.keys[o.Key] = s.keys[o.Key].apply(o.Down)
	case OccMouseMoved:
		s.pointer = Vec2{o.X, o.Y}
	case OccMouseEntered:
		s.inside = true
	case OccMouseExited:
		s.inside = false
	case OccMouseWheel:
		s.wheel.X += o.X
		s.wheel.Y += o.Y
	case OccMouseButton:
		if o.Button < mouseButtonCount {
			s.buttons[o.Button] = s.buttons[o.Button].apply(o.Down)
		}
	}
}

// Key returns the state of k.
func (s *InputSnapshot) Key(k ebiten.Key) ButtonState { return s.keys[k] }

// Button returns the state of b.
func (s *InputSnapshot) Button(b MouseButton) ButtonState {
	if b >= mouseButtonCount {
		return ButtonIdle
	}
	return s.buttons[b]
}

// Pointer returns the last cursor position in surface coordinates.
func (s *InputSnapshot) Pointer() Vec2 { return s.pointer }

// Wheel returns the scroll delta accumulated since the last update tick.
func (s *InputSnapshot) Wheel() Vec2 { return s.wheel }

// Focused reports whether the window has input focus.
func (s *InputSnapshot) Focused() bool { return s.focused }

// Period returns the update period.
func (s *InputSnapshot) Period() time.Duration { return s.period }

// SetPeriod changes the update period; non-positive values are ignored.
func (s *InputSnapshot) SetPeriod(d time.Duration) {
	if d > 0 {
		s.period = d
	}
}

// --- Key names ---

// keyName is the name scripts see for k: Ebitengine's name, lowercased.
func keyName(k ebiten.Key) string { return strings.ToLower(k.String()) }

var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[keyName(k)] = k
	}
	return m
}()

// KeyByName resolves a key name such as "a", "space" or "arrowleft".
// Matching is case-insensitive.
func KeyByName(name string) (ebiten.Key, bool) {
	k, ok := keysByName[strings.ToLower(name)]
	return k, ok
}

// KeyNames returns every key name scripts may use, sorted.
func KeyNames() []string {
	names := make([]string, 0, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		names = append(names, keyName(k))
	}
	sort.Strings(names)
	return names
}

// --- Native source ---

// ebitenSource polls Ebitengine's input state once per frame and turns the
// differences into occurrences.
type ebitenSource struct {
	keys    []ebiten.Key
	chars   []rune
	focused bool
	inside  bool
	moved   bool
	lastX   int
	lastY   int
	surface func() (w, h int)
}

func newEbitenSource(surface func() (w, h int)) *ebitenSource {
	return &ebitenSource{focused: true, surface: surface}
}

// Poll implements InputSource.
func (s *ebitenSource) Poll(dst []Occurrence) []Occurrence {
	if f := ebiten.IsFocused(); f != s.focused {
		s.focused = f
		if f {
			dst = append(dst, Occurrence{Kind: OccFocused})
		} else {
			dst = append(dst, Occurrence{Kind: OccUnfocused})
		}
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		dst = append(dst, Occurrence{Kind: OccKey, Key: k, Down: true})
	}
	s.chars = ebiten.AppendInputChars(s.chars[:0])
	for _, r := range s.chars {
		dst = append(dst, Occurrence{Kind: OccTyped, Char: r})
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		dst = append(dst, Occurrence{Kind: OccKey, Key: k, Down: false})
	}

	x, y := ebiten.CursorPosition()
	w, h := s.surface()
	inside := x >= 0 && y >= 0 && x < w && y < h
	if inside && !s.inside {
		dst = append(dst, Occurrence{Kind: OccMouseEntered})
	}
	if !s.moved || x != s.lastX || y != s.lastY {
		s.moved = true
		s.lastX, s.lastY = x, y
		dst = append(dst, Occurrence{Kind: OccMouseMoved, X: float64(x), Y: float64(y)})
	}
	if !inside && s.inside {
		dst = append(dst, Occurrence{Kind: OccMouseExited})
	}
	s.inside = inside

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		dst = append(dst, Occurrence{Kind: OccMouseWheel, X: wx, Y: wy})
	}

	for b := MouseButtonLeft; b < mouseButtonCount; b++ {
		eb := b.ebiten()
		if inpututil.IsMouseButtonJustPressed(eb) {
			dst = append(dst, Occurrence{Kind: OccMouseButton, Button: b, Down: true})
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			dst = append(dst, Occurrence{Kind: OccMouseButton, Button: b, Down: false})
		}
	}
	return dst
}
