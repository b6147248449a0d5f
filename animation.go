package pickit

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// animClock is the timing half of an Animation: an accumulator that wraps
// at duration and maps elapsed time onto a frame index.
type animClock struct {
	frames   int
	duration float64
	elapsed  float64
	played   bool
}

// advance adds dt seconds and wraps the accumulator so that
// 0 <= elapsed < duration holds afterwards, even when dt exceeds duration.
func (c *animClock) advance(dt float64) {
	if dt < 0 || c.duration <= 0 {
		return
	}
	c.elapsed += dt
	for c.elapsed >= c.duration {
		c.elapsed -= c.duration
	}
	if c.index() == c.frames-1 {
		c.played = true
	}
}

// index returns floor(elapsed/duration*frames) mod frames.
func (c *animClock) index() int {
	if c.frames <= 0 || c.duration <= 0 {
		return 0
	}
	i := int(math.Floor(c.elapsed/c.duration*float64(c.frames))) % c.frames
	if i < 0 {
		i += c.frames
	}
	return i
}

// Animation is a sprite strip cut into equal-width frames and played on a
// looping clock.
type Animation struct {
	strip  *ebiten.Image
	frames []*ebiten.Image
	clock  animClock
}

// NewAnimation slices strip into frameCount frames of equal width. The strip
// width must be an exact multiple of frameCount.
func NewAnimation(strip *ebiten.Image, frameCount int, duration float64) (*Animation, error) {
	if frameCount < 1 {
		return nil, fmt.Errorf("pickit: animation needs at least one frame, got %d", frameCount)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("pickit: animation duration must be positive, got %g", duration)
	}
	b := strip.Bounds()
	if b.Dx()%frameCount != 0 {
		return nil, fmt.Errorf("pickit: strip width %d is not divisible into %d frames", b.Dx(), frameCount)
	}
	fw := b.Dx() / frameCount
	frames := make([]*ebiten.Image, frameCount)
	for i := range frames {
		x0 := b.Min.X + i*fw
		frames[i] = strip.SubImage(image.Rect(x0, b.Min.Y, x0+fw, b.Max.Y)).(*ebiten.Image)
	}
	return &Animation{
		strip:  strip,
		frames: frames,
		clock:  animClock{frames: frameCount, duration: duration},
	}, nil
}

// Advance moves the clock forward by dt seconds.
func (a *Animation) Advance(dt float64) { a.clock.advance(dt) }

// FrameIndex returns the index of the frame to draw, in [0, FrameCount()).
func (a *Animation) FrameIndex() int { return a.clock.index() }

// Frame returns the image of the current frame.
func (a *Animation) Frame() *ebiten.Image { return a.frames[a.clock.index()] }

// FrameCount returns the number of frames in the strip.
func (a *Animation) FrameCount() int { return len(a.frames) }

// FrameSize returns the natural size of one frame.
func (a *Animation) FrameSize() (w, h int) {
	b := a.frames[0].Bounds()
	return b.Dx(), b.Dy()
}

// Duration returns the length of one cycle in seconds.
func (a *Animation) Duration() float64 { return a.clock.duration }

// SetDuration changes the cycle length. The accumulator is kept as is and
// wraps against the new duration on the next Advance.
func (a *Animation) SetDuration(d float64) error {
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("pickit: animation duration must be positive, got %g", d)
	}
	a.clock.duration = d
	return nil
}

// Played reports whether the last frame has been reached since the last
// Reset.
func (a *Animation) Played() bool { return a.clock.played }

// Reset rewinds the clock and clears the played flag.
func (a *Animation) Reset() {
	a.clock.elapsed = 0
	a.clock.played = false
}
