package pickit

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewTween holds the four tweens that animate a view rectangle.
type viewTween struct {
	tweens [4]*gween.Tween
	done   [4]bool
}

// Camera maps a world-space view rectangle onto the drawing surface. The
// whole view rectangle is stretched to fill the surface.
type Camera struct {
	view    Rect
	surface Vec2

	viewMatrix    Transform
	invViewMatrix Transform
	dirty         bool

	tween *viewTween
}

// newCamera creates a Camera whose view matches a surface of w x h pixels.
func newCamera(w, h float64) *Camera {
	return &Camera{
		view:    Rect{Width: w, Height: h},
		surface: Vec2{w, h},
		dirty:   true,
	}
}

// View returns the current world-space view rectangle.
func (c *Camera) View() Rect { return c.view }

// SetView sets the world rectangle shown on the surface and cancels any
// running tween.
func (c *Camera) SetView(r Rect) error {
	if r.Width == 0 || r.Height == 0 {
		return fmt.Errorf("view rectangle must have a non-zero size, got %gx%g", r.Width, r.Height)
	}
	c.view = r
	c.tween = nil
	c.dirty = true
	return nil
}

// TweenTo animates the view rectangle to r over duration seconds.
func (c *Camera) TweenTo(r Rect, duration float32, fn ease.TweenFunc) error {
	if r.Width == 0 || r.Height == 0 {
		return fmt.Errorf("view rectangle must have a non-zero size, got %gx%g", r.Width, r.Height)
	}
	if duration <= 0 {
		return c.SetView(r)
	}
	c.tween = &viewTween{tweens: [4]*gween.Tween{
		gween.New(float32(c.view.X), float32(r.X), duration, fn),
		gween.New(float32(c.view.Y), float32(r.Y), duration, fn),
		gween.New(float32(c.view.Width), float32(r.Width), duration, fn),
		gween.New(float32(c.view.Height), float32(r.Height), duration, fn),
	}}
	return nil
}

// Tweening reports whether a view tween is running.
func (c *Camera) Tweening() bool { return c.tween != nil }

// update advances the view tween by dt seconds. Called once per update tick.
func (c *Camera) update(dt float32) {
	if c.tween == nil {
		return
	}
	fields := [4]*float64{&c.view.X, &c.view.Y, &c.view.Width, &c.view.Height}
	allDone := true
	for i, tw := range c.tween.tweens {
		if c.tween.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		*fields[i] = float64(val)
		c.tween.done[i] = done
		if !done {
			allDone = false
		}
	}
	if allDone {
		c.tween = nil
	}
	c.dirty = true
}

// resize updates the surface size the view is mapped onto.
func (c *Camera) resize(w, h float64) {
	if c.surface.X == w && c.surface.Y == h {
		return
	}
	c.surface = Vec2{w, h}
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Scale(surfaceW/viewW, surfaceH/viewH) * Translate(-viewX, -viewY)
func (c *Camera) computeViewMatrix() Transform {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	sx := c.surface.X / c.view.Width
	sy := c.surface.Y / c.view.Height
	c.viewMatrix = Transform{sx, 0, 0, sy, -c.view.X * sx, -c.view.Y * sy}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to surface coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts surface coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"out_bounce":   ease.OutBounce,
	"in_out_sine":  ease.InOutSine,
}

// lookupEase resolves an easing name such as "out_quad".
func lookupEase(name string) (ease.TweenFunc, bool) {
	fn, ok := easeFuncs[strings.ToLower(name)]
	return fn, ok
}
