package pickit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Transform is a 2D affine matrix stored as [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Transform [6]float64

// IdentityTransform leaves points unchanged.
var IdentityTransform = Transform{1, 0, 0, 1, 0, 0}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Transform {
	return Transform{1, 0, 0, 1, x, y}
}

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Transform {
	return Transform{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a clockwise rotation (Y down) by the given angle in degrees.
func Rotate(degrees float64) Transform {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Transform{cos, sin, -sin, cos, 0, 0}
}

// Mul returns t * o: o is applied first.
func (t Transform) Mul(o Transform) Transform {
	return multiplyAffine(t, o)
}

// Apply transforms a point.
func (t Transform) Apply(p Vec2) Vec2 {
	x, y := transformPoint(t, p.X, p.Y)
	return Vec2{x, y}
}

// Invert returns the inverse, or the identity when t is singular.
func (t Transform) Invert() Transform {
	return invertAffine(t)
}

// About returns t re-centred so that it acts about the point c instead of
// the origin: Translate(c) * t * Translate(-c).
func (t Transform) About(c Vec2) Transform {
	return Translate(c.X, c.Y).Mul(t).Mul(Translate(-c.X, -c.Y))
}

// Rows returns the row-major 3x3 form scripts use.
func (t Transform) Rows() [3][3]float64 {
	return [3][3]float64{
		{t[0], t[2], t[4]},
		{t[1], t[3], t[5]},
		{0, 0, 1},
	}
}

// transformFromRows builds a Transform from a row-major 3x3 matrix. The
// bottom row is ignored.
func transformFromRows(m [3][3]float64) Transform {
	return Transform{m[0][0], m[1][0], m[0][1], m[1][1], m[0][2], m[1][2]}
}

// geoM converts t into an ebiten.GeoM.
func (t Transform) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, t[0])
	g.SetElement(1, 0, t[1])
	g.SetElement(0, 1, t[2])
	g.SetElement(1, 1, t[3])
	g.SetElement(0, 2, t[4])
	g.SetElement(1, 2, t[5])
	return g
}

// multiplyAffine multiplies two 2D affine matrices: result = p * c.
func multiplyAffine(p, c Transform) Transform {
	return Transform{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m Transform) Transform {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m Transform, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// centroid returns the vertex average of points.
func centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Vec2{}
	}
	var c Vec2
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return Vec2{c.X / n, c.Y / n}
}
