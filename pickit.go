package pickit

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/exp/constraints"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// Named colors exposed to scripts as qs.WHITE, qs.BLACK and so on.
var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorBlack   = Color{0, 0, 0, 1}
	ColorRed     = Color{1, 0, 0, 1}
	ColorGreen   = Color{0, 1, 0, 1}
	ColorBlue    = Color{0, 0, 1, 1}
	ColorYellow  = Color{1, 1, 0, 1}
	ColorCyan    = Color{0, 1, 1, 1}
	ColorMagenta = Color{1, 0, 1, 1}
	ColorOrange  = Color{1, 0.5, 0, 1}
	ColorPurple  = Color{0.5, 0, 0.5, 1}
	ColorIndigo  = Color{0.29, 0, 0.51, 1}
)

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// colorScale returns the ebiten.ColorScale that tints a white source to c.
func (c Color) colorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := float32(clamp(c.A, 0, 1))
	cs.Scale(float32(clamp(c.R, 0, 1))*a, float32(clamp(c.G, 0, 1))*a, float32(clamp(c.B, 0, 1))*a, a)
	return cs
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// whitePixel is a 1x1 white image used as the source for solid shapes.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// ButtonState is the per-frame state of a key or mouse button.
type ButtonState uint8

const (
	ButtonIdle     ButtonState = iota // up, and was up last frame
	ButtonPressed                     // went down this frame
	ButtonHeld                        // down for more than one frame
	ButtonReleased                    // went up this frame
)

var buttonStateNames = [...]string{"idle", "pressed", "held", "released"}

// String returns the name scripts see for the state.
func (s ButtonState) String() string {
	if int(s) < len(buttonStateNames) {
		return buttonStateNames[s]
	}
	return "unknown"
}

// Down reports whether the button is currently pressed or held.
func (s ButtonState) Down() bool {
	return s == ButtonPressed || s == ButtonHeld
}

// apply returns the state after a native down/up occurrence.
func (s ButtonState) apply(down bool) ButtonState {
	switch {
	case down && s.Down():
		return ButtonHeld
	case down:
		return ButtonPressed
	case s.Down():
		return ButtonReleased
	default:
		return ButtonIdle
	}
}

// settle ages edge states at a frame boundary.
func (s ButtonState) settle() ButtonState {
	switch s {
	case ButtonPressed:
		return ButtonHeld
	case ButtonReleased:
		return ButtonIdle
	}
	return s
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	mouseButtonCount
)

var mouseButtonNames = [...]string{"left", "right", "middle"}

func (b MouseButton) String() string {
	if b < mouseButtonCount {
		return mouseButtonNames[b]
	}
	return "unknown"
}

// mouseButtonByName resolves "left", "right" or "middle". An empty name
// means left.
func mouseButtonByName(name string) (MouseButton, bool) {
	if name == "" {
		return MouseButtonLeft, true
	}
	for i, n := range mouseButtonNames {
		if n == name {
			return MouseButton(i), true
		}
	}
	return 0, false
}

func (b MouseButton) ebiten() ebiten.MouseButton {
	switch b {
	case MouseButtonRight:
		return ebiten.MouseButtonRight
	case MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// ResourceKind names one of the four resource tables.
type ResourceKind uint8

const (
	KindSprite ResourceKind = iota
	KindAnimation
	KindSound
	KindFont
)

var resourceKindNames = [...]string{"sprite", "animation", "sound", "font"}

func (k ResourceKind) String() string {
	if int(k) < len(resourceKindNames) {
		return resourceKindNames[k]
	}
	return "resource"
}
