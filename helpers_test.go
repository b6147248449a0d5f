package pickit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- recordingRenderer ---

// drawOp is one call made on a recordingRenderer.
type drawOp struct {
	op        string
	transform Transform
	rect      Rect
	points    []Vec2
	radius    float64
	thickness float64
	color     Color
	text      string
	image     *ebiten.Image
}

// recordingRenderer records draw calls instead of rasterizing them.
type recordingRenderer struct {
	w, h      int
	transform Transform
	ops       []drawOp
}

func newRecordingRenderer(w, h int) *recordingRenderer {
	return &recordingRenderer{w: w, h: h, transform: IdentityTransform}
}

func (r *recordingRenderer) record(op drawOp) {
	op.transform = r.transform
	r.ops = append(r.ops, op)
}

func (r *recordingRenderer) Clear(c Color)            { r.record(drawOp{op: "clear", color: c}) }
func (r *recordingRenderer) SetTransform(t Transform) { r.transform = t }
func (r *recordingRenderer) FillRect(rc Rect, c Color) {
	r.record(drawOp{op: "rect", rect: rc, color: c})
}
func (r *recordingRenderer) FillCircle(center Vec2, radius float64, c Color) {
	r.record(drawOp{op: "circle", points: []Vec2{center}, radius: radius, color: c})
}
func (r *recordingRenderer) FillPolygon(points []Vec2, c Color) {
	r.record(drawOp{op: "polygon", points: append([]Vec2(nil), points...), color: c})
}
func (r *recordingRenderer) StrokePath(points []Vec2, thickness float64, c Color) {
	r.record(drawOp{op: "line", points: append([]Vec2(nil), points...), thickness: thickness, color: c})
}
func (r *recordingRenderer) DrawImage(img *ebiten.Image, dst Rect, tint Color) {
	r.record(drawOp{op: "image", image: img, rect: dst, color: tint})
}
func (r *recordingRenderer) DrawText(f Font, s string, c Color, origin Vec2) {
	r.record(drawOp{op: "text", text: s, color: c, points: []Vec2{origin}})
}
func (r *recordingRenderer) Size() (int, int) { return r.w, r.h }

// find returns the recorded ops named op.
func (r *recordingRenderer) find(op string) []drawOp {
	var out []drawOp
	for _, o := range r.ops {
		if o.op == op {
			out = append(out, o)
		}
	}
	return out
}

func (r *recordingRenderer) reset() { r.ops = r.ops[:0] }

// --- fakeLoader ---

// fakeLoader serves solid images of fixed sizes, silent sounds and the
// default font. Locators starting with "missing" fail.
type fakeLoader struct {
	mu     sync.Mutex
	sizes  map[string][2]int
	calls  map[string]int
	delays map[string]time.Duration
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		sizes:  make(map[string][2]int),
		calls:  make(map[string]int),
		delays: make(map[string]time.Duration),
	}
}

func (l *fakeLoader) withImage(locator string, w, h int) *fakeLoader {
	l.sizes[locator] = [2]int{w, h}
	return l
}

func (l *fakeLoader) hit(ctx context.Context, kind ResourceKind, locator string) error {
	l.mu.Lock()
	l.calls[locator]++
	d := l.delays[locator]
	l.mu.Unlock()
	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if strings.HasPrefix(locator, "missing") {
		return &LoadError{Kind: kind, Locator: locator, Err: fmt.Errorf("no such file")}
	}
	return nil
}

func (l *fakeLoader) LoadImage(ctx context.Context, locator string) (*ebiten.Image, error) {
	if err := l.hit(ctx, KindSprite, locator); err != nil {
		return nil, err
	}
	size, ok := l.sizes[locator]
	if !ok {
		size = [2]int{8, 8}
	}
	return ebiten.NewImage(size[0], size[1]), nil
}

func (l *fakeLoader) LoadSound(ctx context.Context, locator string) (*Sound, error) {
	if err := l.hit(ctx, KindSound, locator); err != nil {
		return nil, err
	}
	return &Sound{pcm: make([]byte, 400), sampleRate: 100}, nil
}

func (l *fakeLoader) LoadFont(ctx context.Context, locator string, size float64) (Font, error) {
	if err := l.hit(ctx, KindFont, locator); err != nil {
		return nil, err
	}
	return defaultFont(size)
}

func (l *fakeLoader) count(locator string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[locator]
}

// --- fakeSource, fakeMixer, manualClock ---

// fakeSource hands out queued occurrences one frame at a time.
type fakeSource struct {
	frames [][]Occurrence
}

func (s *fakeSource) push(occs ...Occurrence) { s.frames = append(s.frames, occs) }

func (s *fakeSource) Poll(dst []Occurrence) []Occurrence {
	if len(s.frames) == 0 {
		return dst
	}
	dst = append(dst, s.frames[0]...)
	s.frames = s.frames[1:]
	return dst
}

type fakeMixer struct {
	played []*Sound
	err    error
}

func (m *fakeMixer) Play(s *Sound) error {
	m.played = append(m.played, s)
	return m.err
}

// manualClock advances only when told to.
type manualClock struct {
	t time.Time
}

func newManualClock() *manualClock {
	return &manualClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) now() time.Time { return c.t }

func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// --- Host helpers ---

// testHost bundles a started host with its fakes.
type testHost struct {
	*Host
	clock    *manualClock
	loader   *fakeLoader
	source   *fakeSource
	mixer    *fakeMixer
	renderer *recordingRenderer
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 200, 100
	cfg.UpdateRate = 10
	return cfg
}

// newTestHost creates a host for src without starting it.
func newTestHost(t *testing.T, src string, loader *fakeLoader) *testHost {
	t.Helper()
	return newTestHostEntry(t, Entry{Source: []byte(src)}, loader)
}

// newTestHostEntry creates a host for entry without starting it.
func newTestHostEntry(t *testing.T, entry Entry, loader *fakeLoader) *testHost {
	t.Helper()
	if loader == nil {
		loader = newFakeLoader()
	}
	th := &testHost{
		clock:    newManualClock(),
		loader:   loader,
		source:   &fakeSource{},
		mixer:    &fakeMixer{},
		renderer: newRecordingRenderer(200, 100),
	}
	h, err := New(testConfig(), entry,
		WithLoader(loader), WithInputSource(th.source), WithMixer(th.mixer), WithClock(th.clock.now))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	th.Host = h
	return th
}

// startTestHost creates and starts a host for src.
func startTestHost(t *testing.T, src string) *testHost {
	t.Helper()
	th := newTestHost(t, src, nil)
	if err := th.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return th
}

// frame runs one Step and Render, advancing the clock by d first.
func (th *testHost) frame(t *testing.T, d time.Duration) {
	t.Helper()
	th.clock.advance(d)
	if err := th.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if err := th.Render(th.renderer); err != nil {
		t.Fatalf("Render: %v", err)
	}
}
