package pickit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer is the immediate-mode drawing surface API calls draw onto.
// Geometry is given in world coordinates and is transformed by the current
// transform and then by the camera.
type Renderer interface {
	Clear(c Color)
	SetTransform(t Transform)
	FillRect(r Rect, c Color)
	FillCircle(center Vec2, radius float64, c Color)
	FillPolygon(points []Vec2, c Color)
	StrokePath(points []Vec2, thickness float64, c Color)
	DrawImage(img *ebiten.Image, dst Rect, tint Color)
	DrawText(f Font, s string, c Color, origin Vec2)
	Size() (w, h int)
}

// Canvas is the Ebitengine Renderer. Solid shapes are drawn as triangles
// sourced from a white pixel and tinted through vertex colors.
type Canvas struct {
	target *ebiten.Image
	camera *Camera
	model  Transform

	verts []ebiten.Vertex
	inds  []uint32
	pts   []Vec2
}

func newCanvas(cam *Camera) *Canvas {
	return &Canvas{camera: cam, model: IdentityTransform}
}

// bind points the canvas at dst and resets the transform.
func (c *Canvas) bind(dst *ebiten.Image) {
	c.target = dst
	c.model = IdentityTransform
	b := dst.Bounds()
	c.camera.resize(float64(b.Dx()), float64(b.Dy()))
}

// Size returns the target size in pixels.
func (c *Canvas) Size() (w, h int) {
	b := c.target.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole target, ignoring transform and camera.
func (c *Canvas) Clear(col Color) {
	c.target.Fill(col.toRGBA())
}

// SetTransform sets the model transform used by subsequent draws.
func (c *Canvas) SetTransform(t Transform) {
	c.model = t
}

func (c *Canvas) matrix() Transform {
	return c.camera.computeViewMatrix().Mul(c.model)
}

// FillRect fills r.
func (c *Canvas) FillRect(r Rect, col Color) {
	c.pts = append(c.pts[:0],
		Vec2{r.X, r.Y},
		Vec2{r.X + r.Width, r.Y},
		Vec2{r.X + r.Width, r.Y + r.Height},
		Vec2{r.X, r.Y + r.Height},
	)
	c.FillPolygon(c.pts, col)
}

// FillCircle fills a circle approximated by a polygon whose segment count
// grows with the radius.
func (c *Canvas) FillCircle(center Vec2, radius float64, col Color) {
	if radius <= 0 {
		return
	}
	c.pts = appendCircle(c.pts[:0], center, radius)
	c.FillPolygon(c.pts, col)
}

// FillPolygon fills a simple polygon. Concave outlines are handled with the
// non-zero fill rule.
func (c *Canvas) FillPolygon(points []Vec2, col Color) {
	if len(points) < 3 {
		return
	}
	c.verts, c.inds = buildPolygonFan(c.verts[:0], c.inds[:0], points, c.matrix(), col)
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero, AntiAlias: true}
	c.target.DrawTriangles32(c.verts, c.inds, whitePixel, op)
}

// StrokePath draws each segment of points as a quad of the given thickness.
func (c *Canvas) StrokePath(points []Vec2, thickness float64, col Color) {
	if len(points) < 2 || thickness <= 0 {
		return
	}
	c.verts, c.inds = appendStroke(c.verts[:0], c.inds[:0], points, thickness, c.matrix(), col)
	c.target.DrawTriangles32(c.verts, c.inds, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// DrawImage stretches img over dst and tints it.
func (c *Canvas) DrawImage(img *ebiten.Image, dst Rect, tint Color) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.GeoM.Concat(c.matrix().geoM())
	op.ColorScale = tint.colorScale()
	op.Filter = ebiten.FilterLinear
	c.target.DrawImage(img, op)
}

// DrawText draws s with its top-left corner at origin.
func (c *Canvas) DrawText(f Font, s string, col Color, origin Vec2) {
	var geo ebiten.GeoM
	geo.Translate(origin.X, origin.Y)
	geo.Concat(c.matrix().geoM())
	f.draw(c.target, s, geo, col.colorScale())
}

// --- Geometry helpers ---

// buildPolygonFan appends a fan triangulation of points, transformed by m,
// to verts and inds. N vertices, 3*(N-2) indices.
func buildPolygonFan(verts []ebiten.Vertex, inds []uint32, points []Vec2, m Transform, col Color) ([]ebiten.Vertex, []uint32) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	base := uint32(len(verts))
	for _, p := range points {
		verts = append(verts, solidVertex(m.Apply(p), col))
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := uint32(0); i < uint32(n-2); i++ {
		inds = append(inds, base, base+i+1, base+i+2)
	}
	return verts, inds
}

// appendStroke appends one quad per segment of points, transformed by m.
// 4 vertices and 6 indices per segment.
func appendStroke(verts []ebiten.Vertex, inds []uint32, points []Vec2, thickness float64, m Transform, col Color) ([]ebiten.Vertex, []uint32) {
	half := thickness / 2
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		px, py := perpendicular(a, b)
		base := uint32(len(verts))
		for _, p := range [4]Vec2{
			{a.X + px*half, a.Y + py*half},
			{b.X + px*half, b.Y + py*half},
			{b.X - px*half, b.Y - py*half},
			{a.X - px*half, a.Y - py*half},
		} {
			verts = append(verts, solidVertex(m.Apply(p), col))
		}
		inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, inds
}

// solidVertex maps to the center of the white pixel and carries the
// straight-alpha color.
func solidVertex(p Vec2, col Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(clamp(col.R, 0, 1)),
		ColorG: float32(clamp(col.G, 0, 1)),
		ColorB: float32(clamp(col.B, 0, 1)),
		ColorA: float32(clamp(col.A, 0, 1)),
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// appendCircle appends the outline of a circle as a polygon.
func appendCircle(dst []Vec2, center Vec2, radius float64) []Vec2 {
	segments := clamp(int(radius/2), 16, 128)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		dst = append(dst, Vec2{center.X + cos*radius, center.Y + sin*radius})
	}
	return dst
}
