package pickit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultFontName is the font used by text calls that name no font.
const DefaultFontName = "default"

// SpriteDecl declares an image.
type SpriteDecl struct {
	Name, Locator string
}

// AnimationDecl declares an image strip cut into Frames frames that cycle
// every Duration seconds.
type AnimationDecl struct {
	Name, Locator string
	Frames        int
	Duration      float64
}

// SoundDecl declares a sound clip.
type SoundDecl struct {
	Name, Locator string
}

// FontDecl declares a font pinned to Size pixels.
type FontDecl struct {
	Name, Locator string
	Size          float64
}

// ResourceSpec is the list of resources a script declares while its module
// is evaluated. It is frozen before resolution.
type ResourceSpec struct {
	Sprites    []SpriteDecl
	Animations []AnimationDecl
	Sounds     []SoundDecl
	Fonts      []FontDecl

	frozen bool
}

var errSpecFrozen = errors.New("resources can only be declared while the module is loading")

// AddSprite appends a sprite declaration.
func (s *ResourceSpec) AddSprite(d SpriteDecl) error {
	if s.frozen {
		return errSpecFrozen
	}
	s.Sprites = append(s.Sprites, d)
	return nil
}

// AddAnimation appends an animation declaration.
func (s *ResourceSpec) AddAnimation(d AnimationDecl) error {
	if s.frozen {
		return errSpecFrozen
	}
	if d.Frames < 1 {
		return fmt.Errorf("animation %q needs at least one frame, got %d", d.Name, d.Frames)
	}
	if d.Duration <= 0 {
		return fmt.Errorf("animation %q needs a positive duration, got %g", d.Name, d.Duration)
	}
	s.Animations = append(s.Animations, d)
	return nil
}

// AddSound appends a sound declaration.
func (s *ResourceSpec) AddSound(d SoundDecl) error {
	if s.frozen {
		return errSpecFrozen
	}
	s.Sounds = append(s.Sounds, d)
	return nil
}

// AddFont appends a font declaration.
func (s *ResourceSpec) AddFont(d FontDecl) error {
	if s.frozen {
		return errSpecFrozen
	}
	if d.Size <= 0 {
		return fmt.Errorf("font %q needs a positive size, got %g", d.Name, d.Size)
	}
	s.Fonts = append(s.Fonts, d)
	return nil
}

// Len returns the total number of declarations.
func (s *ResourceSpec) Len() int {
	return len(s.Sprites) + len(s.Animations) + len(s.Sounds) + len(s.Fonts)
}

func (s *ResourceSpec) freeze() { s.frozen = true }

// textKey identifies a cached text run.
type textKey struct {
	font, text string
}

// ResourceTable holds the loaded assets by kind and name.
type ResourceTable struct {
	sprites    map[string]*ebiten.Image
	animations map[string]*Animation
	sounds     map[string]*Sound
	fonts      map[string]Font

	textCache map[textKey]*textRun
}

func newResourceTable() *ResourceTable {
	return &ResourceTable{
		sprites:    make(map[string]*ebiten.Image),
		animations: make(map[string]*Animation),
		sounds:     make(map[string]*Sound),
		fonts:      make(map[string]Font),
		textCache:  make(map[textKey]*textRun),
	}
}

// Sprite returns the image declared under name.
func (t *ResourceTable) Sprite(name string) (*ebiten.Image, error) {
	if img, ok := t.sprites[name]; ok {
		return img, nil
	}
	return nil, &LookupError{Kind: KindSprite, Name: name}
}

// Animation returns the animation declared under name.
func (t *ResourceTable) Animation(name string) (*Animation, error) {
	if a, ok := t.animations[name]; ok {
		return a, nil
	}
	return nil, &LookupError{Kind: KindAnimation, Name: name}
}

// Sound returns the clip declared under name.
func (t *ResourceTable) Sound(name string) (*Sound, error) {
	if s, ok := t.sounds[name]; ok {
		return s, nil
	}
	return nil, &LookupError{Kind: KindSound, Name: name}
}

// Font returns the font declared under name. An empty name means the
// default font.
func (t *ResourceTable) Font(name string) (Font, error) {
	if name == "" {
		name = DefaultFontName
	}
	if f, ok := t.fonts[name]; ok {
		return f, nil
	}
	return nil, &LookupError{Kind: KindFont, Name: name}
}

// textRun returns s rasterized with the named font, from the cache when
// possible. Entries are never evicted.
func (t *ResourceTable) textRun(fontName, s string) (*textRun, error) {
	if fontName == "" {
		fontName = DefaultFontName
	}
	key := textKey{fontName, s}
	if run, ok := t.textCache[key]; ok {
		return run, nil
	}
	f, err := t.Font(fontName)
	if err != nil {
		return nil, err
	}
	run := rasterizeText(f, s)
	t.textCache[key] = run
	return run, nil
}

// advance moves every animation forward by dt seconds.
func (t *ResourceTable) advance(dt float64) {
	for _, a := range t.animations {
		a.Advance(dt)
	}
}

// Names returns the sorted names declared for kind.
func (t *ResourceTable) Names(kind ResourceKind) []string {
	var names []string
	switch kind {
	case KindSprite:
		names = sortedKeys(t.sprites)
	case KindAnimation:
		names = sortedKeys(t.animations)
	case KindSound:
		names = sortedKeys(t.sounds)
	case KindFont:
		names = sortedKeys(t.fonts)
	}
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve loads every declaration in spec concurrently and returns the
// table once all loads have finished. The first failure cancels the rest
// and is returned; no partial table is ever produced. Duplicate names are
// applied in declaration order, so later declarations win.
func Resolve(ctx context.Context, spec *ResourceSpec, loader Loader, defaultFontSize float64) (*ResourceTable, error) {
	var (
		sprites = make([]*ebiten.Image, len(spec.Sprites))
		anims   = make([]*Animation, len(spec.Animations))
		sounds  = make([]*Sound, len(spec.Sounds))
		fonts   = make([]Font, len(spec.Fonts))
	)
	var fallback Font

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		f, err := defaultFont(defaultFontSize)
		if err != nil {
			return &LoadError{Kind: KindFont, Name: DefaultFontName, Locator: "goregular", Err: err}
		}
		fallback = f
		return nil
	})
	for i, d := range spec.Sprites {
		g.Go(func() error {
			img, err := loader.LoadImage(gctx, d.Locator)
			if err != nil {
				return namedLoadError(err, KindSprite, d.Name, d.Locator)
			}
			sprites[i] = img
			return nil
		})
	}
	for i, d := range spec.Animations {
		g.Go(func() error {
			img, err := loader.LoadImage(gctx, d.Locator)
			if err == nil {
				anims[i], err = NewAnimation(img, d.Frames, d.Duration)
			}
			if err != nil {
				return namedLoadError(err, KindAnimation, d.Name, d.Locator)
			}
			return nil
		})
	}
	for i, d := range spec.Sounds {
		g.Go(func() error {
			s, err := loader.LoadSound(gctx, d.Locator)
			if err != nil {
				return namedLoadError(err, KindSound, d.Name, d.Locator)
			}
			sounds[i] = s
			return nil
		})
	}
	for i, d := range spec.Fonts {
		g.Go(func() error {
			f, err := loader.LoadFont(gctx, d.Locator, d.Size)
			if err != nil {
				return namedLoadError(err, KindFont, d.Name, d.Locator)
			}
			fonts[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := newResourceTable()
	t.fonts[DefaultFontName] = fallback
	for i, d := range spec.Sprites {
		t.sprites[d.Name] = sprites[i]
	}
	for i, d := range spec.Animations {
		t.animations[d.Name] = anims[i]
	}
	for i, d := range spec.Sounds {
		t.sounds[d.Name] = sounds[i]
	}
	for i, d := range spec.Fonts {
		t.fonts[d.Name] = fonts[i]
	}
	return t, nil
}

// namedLoadError attaches the declaration's kind and name to a loader error.
func namedLoadError(err error, kind ResourceKind, name, locator string) error {
	var le *LoadError
	if errors.As(err, &le) {
		return &LoadError{Kind: kind, Name: name, Locator: locator, Err: le.Err}
	}
	return &LoadError{Kind: kind, Name: name, Locator: locator, Err: err}
}
