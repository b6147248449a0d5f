package pickit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testSpec() *ResourceSpec {
	s := &ResourceSpec{}
	_ = s.AddSprite(SpriteDecl{Name: "ship", Locator: "ship.png"})
	_ = s.AddAnimation(AnimationDecl{Name: "coin", Locator: "coin.png", Frames: 4, Duration: 1})
	_ = s.AddSound(SoundDecl{Name: "beep", Locator: "beep.wav"})
	_ = s.AddFont(FontDecl{Name: "big", Locator: "big.ttf", Size: 48})
	return s
}

func TestResolveBuildsTable(t *testing.T) {
	loader := newFakeLoader().withImage("ship.png", 16, 8).withImage("coin.png", 40, 10)
	table, err := Resolve(context.Background(), testSpec(), loader, 24)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	img, err := table.Sprite("ship")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("ship = %v", b)
	}
	a, err := table.Animation("coin")
	if err != nil {
		t.Fatal(err)
	}
	if a.FrameCount() != 4 {
		t.Errorf("coin frames = %d", a.FrameCount())
	}
	if _, err := table.Sound("beep"); err != nil {
		t.Error(err)
	}
	if _, err := table.Font("big"); err != nil {
		t.Error(err)
	}
	if _, err := table.Font(DefaultFontName); err != nil {
		t.Errorf("default font missing: %v", err)
	}
	if _, err := table.Font(""); err != nil {
		t.Errorf("empty font name should mean default: %v", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	spec := testSpec()
	loader := newFakeLoader().withImage("coin.png", 40, 10)
	t1, err := Resolve(context.Background(), spec, loader, 24)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := Resolve(context.Background(), spec, loader, 24)
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range []ResourceKind{KindSprite, KindAnimation, KindSound, KindFont} {
		n1, n2 := t1.Names(kind), t2.Names(kind)
		if len(n1) != len(n2) {
			t.Fatalf("%v: %v vs %v", kind, n1, n2)
		}
		for i := range n1 {
			if n1[i] != n2[i] {
				t.Errorf("%v: %v vs %v", kind, n1, n2)
			}
		}
	}
}

func TestResolveLaterDeclarationWins(t *testing.T) {
	loader := newFakeLoader().withImage("a.png", 1, 1).withImage("b.png", 2, 2)
	spec := &ResourceSpec{}
	_ = spec.AddSprite(SpriteDecl{Name: "x", Locator: "a.png"})
	_ = spec.AddSprite(SpriteDecl{Name: "x", Locator: "b.png"})
	// Make the winning load finish first.
	loader.delays["a.png"] = 20 * time.Millisecond

	table, err := Resolve(context.Background(), spec, loader, 24)
	if err != nil {
		t.Fatal(err)
	}
	img, _ := table.Sprite("x")
	if img.Bounds().Dx() != 2 {
		t.Errorf("x width = %d, want 2 (later declaration)", img.Bounds().Dx())
	}
}

func TestResolveFailureIsAllOrNothing(t *testing.T) {
	spec := testSpec()
	_ = spec.AddSprite(SpriteDecl{Name: "ghost", Locator: "missing.png"})
	table, err := Resolve(context.Background(), spec, newFakeLoader().withImage("coin.png", 40, 10), 24)
	if table != nil {
		t.Error("no table expected on failure")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
	if le.Kind != KindSprite || le.Name != "ghost" || le.Locator != "missing.png" {
		t.Errorf("LoadError = %+v", le)
	}
}

func TestResolveRejectsUnevenStrip(t *testing.T) {
	spec := &ResourceSpec{}
	_ = spec.AddAnimation(AnimationDecl{Name: "odd", Locator: "odd.png", Frames: 3, Duration: 1})
	_, err := Resolve(context.Background(), spec, newFakeLoader().withImage("odd.png", 10, 4), 24)
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != KindAnimation || le.Name != "odd" {
		t.Errorf("err = %v, want animation LoadError for odd", err)
	}
}

func TestLookupErrors(t *testing.T) {
	table := newResourceTable()
	var le *LookupError

	_, err := table.Sprite("nope")
	if !errors.As(err, &le) || le.Kind != KindSprite || le.Name != "nope" {
		t.Errorf("Sprite(nope) = %v", err)
	}
	_, err = table.Animation("nope")
	if !errors.As(err, &le) || le.Kind != KindAnimation {
		t.Errorf("Animation(nope) = %v", err)
	}
	_, err = table.Sound("nope")
	if !errors.As(err, &le) || le.Kind != KindSound {
		t.Errorf("Sound(nope) = %v", err)
	}
	_, err = table.Font("nope")
	if !errors.As(err, &le) || le.Kind != KindFont {
		t.Errorf("Font(nope) = %v", err)
	}
	if got := (&LookupError{Kind: KindSprite, Name: "nope"}).Error(); got != `sprite "nope" not found` {
		t.Errorf("message = %q", got)
	}
}

func TestResourceSpecValidation(t *testing.T) {
	s := &ResourceSpec{}
	if err := s.AddAnimation(AnimationDecl{Name: "a", Frames: 0, Duration: 1}); err == nil {
		t.Error("expected error for zero frames")
	}
	if err := s.AddAnimation(AnimationDecl{Name: "a", Frames: 2, Duration: -1}); err == nil {
		t.Error("expected error for negative duration")
	}
	if err := s.AddFont(FontDecl{Name: "f", Size: 0}); err == nil {
		t.Error("expected error for zero font size")
	}
	s.freeze()
	if err := s.AddSprite(SpriteDecl{Name: "late"}); !errors.Is(err, errSpecFrozen) {
		t.Errorf("AddSprite after freeze = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestTextRunCache(t *testing.T) {
	table, err := Resolve(context.Background(), &ResourceSpec{}, newFakeLoader(), 16)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := table.textRun("", "hello")
	if err != nil {
		t.Fatal(err)
	}
	r2, _ := table.textRun(DefaultFontName, "hello")
	if r1 != r2 {
		t.Error("same font and string should hit the cache")
	}
	r3, _ := table.textRun(DefaultFontName, "world")
	if r3 == r1 {
		t.Error("different strings should not share a run")
	}
	if len(table.textCache) != 2 {
		t.Errorf("cache size = %d, want 2", len(table.textCache))
	}
	if _, err := table.textRun("nope", "x"); err == nil {
		t.Error("unknown font should fail")
	}
}

func TestResourceTableAdvance(t *testing.T) {
	table, err := Resolve(context.Background(), testSpec(), newFakeLoader().withImage("coin.png", 40, 10), 24)
	if err != nil {
		t.Fatal(err)
	}
	table.advance(0.5)
	a, _ := table.Animation("coin")
	if a.FrameIndex() != 2 {
		t.Errorf("FrameIndex = %d, want 2", a.FrameIndex())
	}
}
