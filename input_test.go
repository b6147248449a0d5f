package pickit

import (
	"sort"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestSnapshotKeyLifecycle(t *testing.T) {
	s := newInputSnapshot(time.Millisecond)

	s.settle()
	s.apply(Occurrence{Kind: OccKey, Key: ebiten.KeyA, Down: true})
	if got := s.Key(ebiten.KeyA); got != ButtonPressed {
		t.Fatalf("frame 1: %v, want pressed", got)
	}

	s.settle()
	if got := s.Key(ebiten.KeyA); got != ButtonHeld {
		t.Fatalf("frame 2: %v, want held", got)
	}

	s.apply(Occurrence{Kind: OccKey, Key: ebiten.KeyA, Down: false})
	if got := s.Key(ebiten.KeyA); got != ButtonReleased {
		t.Fatalf("after release: %v, want released", got)
	}

	s.settle()
	if got := s.Key(ebiten.KeyA); got != ButtonIdle {
		t.Fatalf("frame 3: %v, want idle", got)
	}
	if len(s.keys) != 0 {
		t.Errorf("idle keys should be dropped, have %d", len(s.keys))
	}
}

func TestSnapshotMouse(t *testing.T) {
	s := newInputSnapshot(time.Millisecond)
	s.apply(Occurrence{Kind: OccMouseMoved, X: 10, Y: 20})
	s.apply(Occurrence{Kind: OccMouseWheel, X: 0, Y: 1})
	s.apply(Occurrence{Kind: OccMouseWheel, X: 0, Y: 2})
	s.apply(Occurrence{Kind: OccMouseButton, Button: MouseButtonRight, Down: true})

	if s.Pointer() != (Vec2{10, 20}) {
		t.Errorf("Pointer = %v", s.Pointer())
	}
	if s.Wheel() != (Vec2{0, 3}) {
		t.Errorf("Wheel = %v, want (0, 3)", s.Wheel())
	}
	if s.Button(MouseButtonRight) != ButtonPressed {
		t.Errorf("right = %v", s.Button(MouseButtonRight))
	}

	s.settle()
	if s.Wheel() != (Vec2{}) {
		t.Error("wheel should reset on settle")
	}
	if s.Button(MouseButtonRight) != ButtonHeld {
		t.Errorf("right = %v, want held", s.Button(MouseButtonRight))
	}
	if s.Pointer() != (Vec2{10, 20}) {
		t.Error("pointer should persist across frames")
	}
}

func TestSnapshotFocus(t *testing.T) {
	s := newInputSnapshot(time.Millisecond)
	if !s.Focused() {
		t.Error("snapshot should start focused")
	}
	s.apply(Occurrence{Kind: OccUnfocused})
	if s.Focused() {
		t.Error("expected unfocused")
	}
}

func TestSnapshotSetPeriod(t *testing.T) {
	s := newInputSnapshot(10 * time.Millisecond)
	s.SetPeriod(0)
	s.SetPeriod(-time.Second)
	if s.Period() != 10*time.Millisecond {
		t.Errorf("Period = %v, want 10ms", s.Period())
	}
	s.SetPeriod(5 * time.Millisecond)
	if s.Period() != 5*time.Millisecond {
		t.Errorf("Period = %v, want 5ms", s.Period())
	}
}

func TestKeyByName(t *testing.T) {
	for name, want := range map[string]ebiten.Key{
		"a":         ebiten.KeyA,
		"A":         ebiten.KeyA,
		"Space":     ebiten.KeySpace,
		"arrowleft": ebiten.KeyArrowLeft,
		"escape":    ebiten.KeyEscape,
	} {
		got, ok := KeyByName(name)
		if !ok || got != want {
			t.Errorf("KeyByName(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := KeyByName("nokey"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestKeyNamesSortedLowercase(t *testing.T) {
	names := KeyNames()
	if !sort.StringsAreSorted(names) {
		t.Error("KeyNames not sorted")
	}
	for _, n := range names {
		if _, ok := KeyByName(n); !ok {
			t.Errorf("name %q does not resolve", n)
		}
		if n != keyName(mustKey(t, n)) {
			t.Errorf("name %q is not canonical", n)
		}
	}
}

func mustKey(t *testing.T, name string) ebiten.Key {
	t.Helper()
	k, ok := KeyByName(name)
	if !ok {
		t.Fatalf("unknown key %q", name)
	}
	return k
}

func TestOccurrenceKindNames(t *testing.T) {
	if OccMouseMoved.String() != "mouse_moved" || OccMouseButton.String() != "mouse_button" {
		t.Error("occurrence names mismatch")
	}
	if OccurrenceKind(200).String() != "unknown" {
		t.Error("out-of-range kind should be unknown")
	}
}
