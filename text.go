package pickit

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/fzipp/bmfont"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font measures and draws strings at a fixed pixel size.
type Font interface {
	MeasureString(s string) (width, height float64)
	LineHeight() float64
	// draw renders s with its top-left corner at the origin of geo.
	draw(dst *ebiten.Image, s string, geo ebiten.GeoM, cs ebiten.ColorScale)
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pickit: font size must be positive, got %g", size)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("pickit: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	// Compute line height from metrics
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// defaultFont returns Go Regular at the given size.
func defaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the pixel size the font was loaded at.
func (f *TTFFont) Size() float64 { return f.size }

func (f *TTFFont) draw(dst *ebiten.Image, s string, geo ebiten.GeoM, cs ebiten.ColorScale) {
	op := &text.DrawOptions{}
	op.GeoM = geo
	op.ColorScale = cs
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

// --- BitmapFont ---

// BitmapFont renders text from an AngelCode BMFont (.fnt) descriptor and
// its page images. The pixel size is fixed by the generated atlas.
type BitmapFont struct {
	font   *bmfont.BitmapFont
	lh     float64
	pages  map[int]*ebiten.Image
	glyphs map[rune]*ebiten.Image
}

// LoadBitmapFont loads a .fnt descriptor and the page images it references.
func LoadBitmapFont(path string) (*BitmapFont, error) {
	f, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("pickit: failed to load bitmap font: %w", err)
	}
	return newBitmapFont(f), nil
}

// newBitmapFont uploads the page sheets of f once. Glyphs are sub-images of
// those pages.
func newBitmapFont(f *bmfont.BitmapFont) *BitmapFont {
	pages := make(map[int]*ebiten.Image, len(f.PageSheets))
	for id, sheet := range f.PageSheets {
		pages[id] = ebiten.NewImageFromImage(sheet)
	}
	return &BitmapFont{
		font:   f,
		lh:     float64(f.Descriptor.Common.LineHeight),
		pages:  pages,
		glyphs: make(map[rune]*ebiten.Image),
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *BitmapFont) MeasureString(s string) (width, height float64) {
	r := f.font.MeasureText(s)
	return float64(r.Dx()), float64(r.Dy())
}

// LineHeight returns the vertical distance between baselines.
func (f *BitmapFont) LineHeight() float64 { return f.lh }

func (f *BitmapFont) draw(dst *ebiten.Image, s string, geo ebiten.GeoM, cs ebiten.ColorScale) {
	bounds := f.font.MeasureText(s)
	if bounds.Empty() {
		return
	}
	d := f.font.Descriptor
	origin := image.Pt(-bounds.Min.X, -bounds.Min.Y)
	cursor := origin
	var prev rune
	op := &ebiten.DrawImageOptions{ColorScale: cs}
	for i, r := range s {
		if r == '\n' {
			cursor.X = origin.X
			cursor.Y += d.Common.LineHeight
			continue
		}
		ch, ok := f.char(r)
		if !ok {
			continue
		}
		if img := f.glyph(ch); img != nil {
			op.GeoM.Reset()
			op.GeoM.Translate(float64(cursor.X+ch.XOffset), float64(cursor.Y-d.Common.Base+ch.YOffset))
			op.GeoM.Concat(geo)
			dst.DrawImage(img, op)
		}
		cursor.X += ch.XAdvance
		if i > 0 {
			if k, ok := d.Kerning[bmfont.CharPair{First: prev, Second: r}]; ok {
				cursor.X += k.Amount
			}
		}
		prev = r
	}
}

// char resolves r, falling back to '?' like the measuring code does.
func (f *BitmapFont) char(r rune) (bmfont.Char, bool) {
	if ch, ok := f.font.Descriptor.Chars[r]; ok {
		return ch, true
	}
	ch, ok := f.font.Descriptor.Chars['?']
	return ch, ok
}

// glyph returns the page region holding ch, or nil when it has no pixels.
func (f *BitmapFont) glyph(ch bmfont.Char) *ebiten.Image {
	if img, ok := f.glyphs[ch.ID]; ok {
		return img
	}
	var img *ebiten.Image
	if page, ok := f.pages[ch.Page]; ok && ch.Width > 0 && ch.Height > 0 {
		img = page.SubImage(ch.Bounds()).(*ebiten.Image)
	}
	f.glyphs[ch.ID] = img
	return img
}

// --- Text runs ---

// textRun is a string rasterized in white with a given font, tinted at draw
// time.
type textRun struct {
	image         *ebiten.Image
	width, height float64
}

// rasterizeText renders s into a new image sized to fit it.
func rasterizeText(f Font, s string) *textRun {
	w, h := f.MeasureString(s)
	iw := max(1, int(math.Ceil(w)))
	ih := max(1, int(math.Ceil(h)))
	img := ebiten.NewImage(iw, ih)
	f.draw(img, s, ebiten.GeoM{}, ebiten.ColorScale{})
	return &textRun{image: img, width: w, height: h}
}
