package pickit

import (
	"go.starlark.net/starlark"
)

// unpack wraps starlark.UnpackArgs so that arity and type mistakes surface
// as catchable ArgumentErrors.
func unpack(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, pairs ...any) error {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
		return &ArgumentError{Func: b.Name(), Msg: err.Error()}
	}
	return nil
}

// isAbsent reports whether an optional argument was omitted or None.
func isAbsent(v starlark.Value) bool {
	return v == nil || v == starlark.None
}

// sequence returns v as an indexable of exactly n elements, or any length
// when n < 0.
func sequence(fn, what string, v starlark.Value, n int) (starlark.Indexable, error) {
	seq, ok := v.(starlark.Indexable)
	if !ok || v.Type() == "string" {
		return nil, argErrorf(fn, "%s must be a list, got %s", what, v.Type())
	}
	if n >= 0 && seq.Len() != n {
		return nil, argErrorf(fn, "%s must have %d elements, got %d", what, n, seq.Len())
	}
	return seq, nil
}

func toFloat(fn, what string, v starlark.Value) (float64, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, argErrorf(fn, "%s must be a number, got %s", what, v.Type())
	}
	return f, nil
}

func toString(fn, what string, v starlark.Value) (string, error) {
	s, ok := starlark.AsString(v)
	if !ok {
		return "", argErrorf(fn, "%s must be a string, got %s", what, v.Type())
	}
	return s, nil
}

func toFloats(fn, what string, v starlark.Value, n int) ([]float64, error) {
	seq, err := sequence(fn, what, v, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, seq.Len())
	for i := range out {
		if out[i], err = toFloat(fn, what, seq.Index(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// toPoint accepts [x, y].
func toPoint(fn, what string, v starlark.Value) (Vec2, error) {
	f, err := toFloats(fn, what, v, 2)
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{f[0], f[1]}, nil
}

// toPoints accepts a list of points. n < 0 accepts any count of at least
// least points.
func toPoints(fn, what string, v starlark.Value, n, least int) ([]Vec2, error) {
	seq, err := sequence(fn, what, v, n)
	if err != nil {
		return nil, err
	}
	if seq.Len() < least {
		return nil, argErrorf(fn, "%s needs at least %d points, got %d", what, least, seq.Len())
	}
	pts := make([]Vec2, seq.Len())
	for i := range pts {
		if pts[i], err = toPoint(fn, what, seq.Index(i)); err != nil {
			return nil, err
		}
	}
	return pts, nil
}

// toRect accepts [[x, y], [w, h]].
func toRect(fn, what string, v starlark.Value) (Rect, error) {
	seq, err := sequence(fn, what, v, 2)
	if err != nil {
		return Rect{}, err
	}
	pos, err := toPoint(fn, what+" position", seq.Index(0))
	if err != nil {
		return Rect{}, err
	}
	size, err := toPoint(fn, what+" size", seq.Index(1))
	if err != nil {
		return Rect{}, err
	}
	return Rect{pos.X, pos.Y, size.X, size.Y}, nil
}

// toColor accepts [r, g, b, a] with components in [0, 1]. def is returned
// when v is absent.
func toColor(fn string, v starlark.Value, def Color) (Color, error) {
	if isAbsent(v) {
		return def, nil
	}
	f, err := toFloats(fn, "color", v, 4)
	if err != nil {
		return Color{}, err
	}
	return Color{f[0], f[1], f[2], f[3]}, nil
}

// toTransform accepts a row-major 3x3 matrix. Absent means identity.
func toTransform(fn string, v starlark.Value) (Transform, error) {
	if isAbsent(v) {
		return IdentityTransform, nil
	}
	rows, err := sequence(fn, "transform", v, 3)
	if err != nil {
		return Transform{}, err
	}
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		row, err := toFloats(fn, "transform row", rows.Index(i), 3)
		if err != nil {
			return Transform{}, err
		}
		copy(m[i][:], row)
	}
	return transformFromRows(m), nil
}

// transformValue converts t to the nested list form scripts use.
func transformValue(t Transform) *starlark.List {
	rows := t.Rows()
	out := make([]starlark.Value, 3)
	for i, r := range rows {
		out[i] = starlark.NewList([]starlark.Value{
			starlark.Float(r[0]), starlark.Float(r[1]), starlark.Float(r[2]),
		})
	}
	return starlark.NewList(out)
}

func pairValue(x, y float64) *starlark.List {
	return starlark.NewList([]starlark.Value{starlark.Float(x), starlark.Float(y)})
}

func colorValue(c Color) starlark.Tuple {
	return starlark.Tuple{starlark.Float(c.R), starlark.Float(c.G), starlark.Float(c.B), starlark.Float(c.A)}
}

// --- Destination union ---

// dest is where a sprite, animation frame or text run is drawn: either a
// top-left point, using the asset's natural size, or an explicit rectangle.
type dest interface {
	resolve(natural Vec2) Rect
}

type destPoint struct{ p Vec2 }

func (d destPoint) resolve(natural Vec2) Rect {
	return Rect{d.p.X, d.p.Y, natural.X, natural.Y}
}

type destRect struct{ r Rect }

func (d destRect) resolve(Vec2) Rect { return d.r }

// parseDest normalizes the p0= / rect= keyword pair. Exactly one must be
// given.
func parseDest(fn string, p0, rect starlark.Value) (dest, error) {
	switch {
	case isAbsent(p0) && isAbsent(rect):
		return nil, argErrorf(fn, "one of p0 or rect is required")
	case !isAbsent(p0) && !isAbsent(rect):
		return nil, argErrorf(fn, "p0 and rect are mutually exclusive")
	case !isAbsent(p0):
		p, err := toPoint(fn, "p0", p0)
		if err != nil {
			return nil, err
		}
		return destPoint{p}, nil
	default:
		r, err := toRect(fn, "rect", rect)
		if err != nil {
			return nil, err
		}
		return destRect{r}, nil
	}
}

// fitTransform maps the rectangle src onto dst.
func fitTransform(src, dst Rect) Transform {
	sx, sy := 1.0, 1.0
	if src.Width != 0 {
		sx = dst.Width / src.Width
	}
	if src.Height != 0 {
		sy = dst.Height / src.Height
	}
	return Translate(dst.X, dst.Y).Mul(Scale(sx, sy)).Mul(Translate(-src.X, -src.Y))
}
