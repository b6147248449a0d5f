package pickit

import (
	"go.starlark.net/starlark"
)

// drawing returns the bound context and its renderer.
func drawing(thread *starlark.Thread, b *starlark.Builtin) (*FrameContext, Renderer, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, nil, err
	}
	rd, err := fc.renderer(b.Name())
	if err != nil {
		return nil, nil, err
	}
	return fc, rd, nil
}

// shapeArgs holds the keyword arguments shared by the primitive shapes.
type shapeArgs struct {
	color     Color
	transform Transform
}

func parseShapeArgs(fn string, cv, tv starlark.Value) (shapeArgs, error) {
	c, err := toColor(fn, cv, ColorRed)
	if err != nil {
		return shapeArgs{}, err
	}
	t, err := toTransform(fn, tv)
	if err != nil {
		return shapeArgs{}, err
	}
	return shapeArgs{c, t}, nil
}

// qsClear implements qs.clear(color).
func qsClear(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	_, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var cv starlark.Value
	if err := unpack(b, args, kwargs, "color?", &cv); err != nil {
		return nil, err
	}
	c, err := toColor(b.Name(), cv, ColorBlack)
	if err != nil {
		return nil, err
	}
	rd.Clear(c)
	return starlark.None, nil
}

// qsRect implements qs.rect([[x, y], [w, h]], color=, transform=).
func qsRect(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	_, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var rv, cv, tv starlark.Value
	if err := unpack(b, args, kwargs, "rect", &rv, "color?", &cv, "transform?", &tv); err != nil {
		return nil, err
	}
	r, err := toRect(b.Name(), "rect", rv)
	if err != nil {
		return nil, err
	}
	sa, err := parseShapeArgs(b.Name(), cv, tv)
	if err != nil {
		return nil, err
	}
	rd.SetTransform(sa.transform.About(r.Center()))
	rd.FillRect(r, sa.color)
	return starlark.None, nil
}

// qsCirc implements qs.circ(center, radius, color=, transform=).
func qsCirc(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	_, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var pv, cv, tv starlark.Value
	var radius float64
	if err := unpack(b, args, kwargs, "center", &pv, "radius", &radius, "color?", &cv, "transform?", &tv); err != nil {
		return nil, err
	}
	center, err := toPoint(b.Name(), "center", pv)
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, argErrorf(b.Name(), "radius must not be negative, got %g", radius)
	}
	sa, err := parseShapeArgs(b.Name(), cv, tv)
	if err != nil {
		return nil, err
	}
	rd.SetTransform(sa.transform.About(center))
	rd.FillCircle(center, radius, sa.color)
	return starlark.None, nil
}

// qsTriangle implements qs.triangle([p1, p2, p3], color=, transform=).
func qsTriangle(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return fillPoints(thread, b, args, kwargs, 3)
}

// qsPolygon implements qs.polygon([p...], color=, transform=).
func qsPolygon(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return fillPoints(thread, b, args, kwargs, -1)
}

func fillPoints(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, n int) (starlark.Value, error) {
	_, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var pv, cv, tv starlark.Value
	if err := unpack(b, args, kwargs, "points", &pv, "color?", &cv, "transform?", &tv); err != nil {
		return nil, err
	}
	pts, err := toPoints(b.Name(), "points", pv, n, 3)
	if err != nil {
		return nil, err
	}
	sa, err := parseShapeArgs(b.Name(), cv, tv)
	if err != nil {
		return nil, err
	}
	rd.SetTransform(sa.transform.About(centroid(pts)))
	rd.FillPolygon(pts, sa.color)
	return starlark.None, nil
}

// qsLine implements qs.line([p1, p2], thickness=1, color=, transform=).
func qsLine(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	_, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var pv, cv, tv starlark.Value
	thickness := 1.0
	if err := unpack(b, args, kwargs, "points", &pv, "thickness?", &thickness, "color?", &cv, "transform?", &tv); err != nil {
		return nil, err
	}
	pts, err := toPoints(b.Name(), "points", pv, 2, 2)
	if err != nil {
		return nil, err
	}
	if thickness <= 0 {
		return nil, argErrorf(b.Name(), "thickness must be positive, got %g", thickness)
	}
	sa, err := parseShapeArgs(b.Name(), cv, tv)
	if err != nil {
		return nil, err
	}
	rd.SetTransform(sa.transform.About(centroid(pts)))
	rd.StrokePath(pts, thickness, sa.color)
	return starlark.None, nil
}

// qsSprite implements qs.sprite(name, p0=|rect=, transform=).
func qsSprite(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var name string
	var p0, rv, tv starlark.Value
	if err := unpack(b, args, kwargs, "name", &name, "p0?", &p0, "rect?", &rv, "transform?", &tv); err != nil {
		return nil, err
	}
	img, err := fc.Resources.Sprite(name)
	if err != nil {
		return nil, err
	}
	d, err := parseDest(b.Name(), p0, rv)
	if err != nil {
		return nil, err
	}
	t, err := toTransform(b.Name(), tv)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	dst := d.resolve(Vec2{float64(bounds.Dx()), float64(bounds.Dy())})
	rd.SetTransform(t.About(dst.Center()))
	rd.DrawImage(img, dst, ColorWhite)
	return starlark.None, nil
}

// qsAnim implements qs.anim(name, p0=|rect=, transform=). It draws the
// current frame and never advances the clock.
func qsAnim(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var name string
	var p0, rv, tv starlark.Value
	if err := unpack(b, args, kwargs, "name", &name, "p0?", &p0, "rect?", &rv, "transform?", &tv); err != nil {
		return nil, err
	}
	a, err := fc.Resources.Animation(name)
	if err != nil {
		return nil, err
	}
	d, err := parseDest(b.Name(), p0, rv)
	if err != nil {
		return nil, err
	}
	t, err := toTransform(b.Name(), tv)
	if err != nil {
		return nil, err
	}
	w, h := a.FrameSize()
	dst := d.resolve(Vec2{float64(w), float64(h)})
	rd.SetTransform(t.About(dst.Center()))
	rd.DrawImage(a.Frame(), dst, ColorWhite)
	return starlark.None, nil
}

// qsText implements qs.text(s, p0=|rect=, font="default", color=BLACK,
// cache=False, transform=). With cache=True the rasterized run is kept for
// the rest of the run, keyed by font name and string.
func qsText(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, rd, err := drawing(thread, b)
	if err != nil {
		return nil, err
	}
	var (
		s              string
		p0, rv, cv, tv starlark.Value
		fontName       = DefaultFontName
		cache          bool
	)
	if err := unpack(b, args, kwargs,
		"s", &s, "p0?", &p0, "rect?", &rv, "font?", &fontName,
		"color?", &cv, "cache?", &cache, "transform?", &tv); err != nil {
		return nil, err
	}
	f, err := fc.Resources.Font(fontName)
	if err != nil {
		return nil, err
	}
	d, err := parseDest(b.Name(), p0, rv)
	if err != nil {
		return nil, err
	}
	c, err := toColor(b.Name(), cv, ColorBlack)
	if err != nil {
		return nil, err
	}
	t, err := toTransform(b.Name(), tv)
	if err != nil {
		return nil, err
	}

	if cache {
		run, err := fc.Resources.textRun(fontName, s)
		if err != nil {
			return nil, err
		}
		dst := d.resolve(Vec2{run.width, run.height})
		rd.SetTransform(t.About(dst.Center()))
		rd.DrawImage(run.image, dst, c)
		return starlark.None, nil
	}

	w, h := f.MeasureString(s)
	natural := Rect{Width: w, Height: h}
	dst := d.resolve(Vec2{w, h})
	natural.X, natural.Y = dst.X, dst.Y
	rd.SetTransform(t.About(dst.Center()).Mul(fitTransform(natural, dst)))
	rd.DrawText(f, s, c, Vec2{dst.X, dst.Y})
	return starlark.None, nil
}

// qsSound implements qs.sound(name). Playback is fire-and-forget.
func qsSound(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var name string
	if err := unpack(b, args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	snd, err := fc.Resources.Sound(name)
	if err != nil {
		return nil, err
	}
	if fc.Mixer == nil {
		return starlark.None, nil
	}
	if err := fc.Mixer.Play(snd); err != nil {
		logWarn("sound playback failed", "sound", name, "err", err)
	}
	return starlark.None, nil
}

// qsScreenshot implements qs.screenshot(label="").
func qsScreenshot(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var label string
	if err := unpack(b, args, kwargs, "label?", &label); err != nil {
		return nil, err
	}
	if fc.Screenshot != nil {
		fc.Screenshot(label)
	}
	return starlark.None, nil
}
