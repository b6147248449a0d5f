package pickit

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Loader turns locators into assets. Implementations must be safe for
// concurrent use; Resolve calls them from many goroutines at once. Failures
// are reported as *LoadError.
type Loader interface {
	LoadImage(ctx context.Context, locator string) (*ebiten.Image, error)
	LoadSound(ctx context.Context, locator string) (*Sound, error)
	LoadFont(ctx context.Context, locator string, size float64) (Font, error)
}

// FileLoader loads assets from a directory on disk.
//
// Images may be PNG, JPEG, GIF, BMP or WebP. Sounds may be WAV, Ogg Vorbis
// or MP3. Fonts may be TTF/OTF, or AngelCode .fnt descriptors whose size is
// fixed by the atlas.
type FileLoader struct {
	Root       string
	SampleRate int
}

// NewFileLoader returns a loader rooted at root.
func NewFileLoader(root string, sampleRate int) *FileLoader {
	return &FileLoader{Root: root, SampleRate: sampleRate}
}

func (l *FileLoader) path(locator string) string {
	p := filepath.FromSlash(locator)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Root, p)
}

func (l *FileLoader) read(ctx context.Context, kind ResourceKind, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path(locator))
	if err != nil {
		return nil, &LoadError{Kind: kind, Locator: locator, Err: err}
	}
	return data, nil
}

// LoadImage reads and decodes an image file.
func (l *FileLoader) LoadImage(ctx context.Context, locator string) (*ebiten.Image, error) {
	data, err := l.read(ctx, KindSprite, locator)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Kind: KindSprite, Locator: locator, Err: err}
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadSound reads and fully decodes a sound file.
func (l *FileLoader) LoadSound(ctx context.Context, locator string) (*Sound, error) {
	data, err := l.read(ctx, KindSound, locator)
	if err != nil {
		return nil, err
	}
	s, err := decodeSound(locator, data, l.SampleRate)
	if err != nil {
		return nil, &LoadError{Kind: KindSound, Locator: locator, Err: err}
	}
	return s, nil
}

// LoadFont loads a font at the given pixel size.
func (l *FileLoader) LoadFont(ctx context.Context, locator string, size float64) (Font, error) {
	if strings.EqualFold(filepath.Ext(locator), ".fnt") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := LoadBitmapFont(l.path(locator))
		if err != nil {
			return nil, &LoadError{Kind: KindFont, Locator: locator, Err: err}
		}
		return f, nil
	}
	data, err := l.read(ctx, KindFont, locator)
	if err != nil {
		return nil, err
	}
	f, err := LoadTTFFont(data, size)
	if err != nil {
		return nil, &LoadError{Kind: KindFont, Locator: locator, Err: err}
	}
	return f, nil
}
