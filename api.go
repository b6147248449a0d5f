package pickit

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

type builtinFunc = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

// qsBuiltins lists every function of the qs module.
var qsBuiltins = map[string]builtinFunc{
	// declarations
	"declare_sprites":    declareSprites,
	"declare_animations": declareAnimations,
	"declare_sounds":     declareSounds,
	"declare_fonts":      declareFonts,

	// drawing
	"clear":    qsClear,
	"rect":     qsRect,
	"circ":     qsCirc,
	"triangle": qsTriangle,
	"line":     qsLine,
	"polygon":  qsPolygon,
	"sprite":   qsSprite,
	"anim":     qsAnim,
	"text":     qsText,

	// sound
	"sound": qsSound,

	// input, timing and camera
	"mouse_pos":         qsMousePos,
	"mouse_wheel_delta": qsMouseWheelDelta,
	"mouse_buttons":     qsMouseButtons,
	"keyboard":          qsKeyboard,
	"keyboard_bool":     qsKeyboardBool,
	"key":               qsKey,
	"update_rate":       qsUpdateRate,
	"set_update_rate":   qsSetUpdateRate,
	"set_view":          qsSetView,
	"tween_view":        qsTweenView,
	"window_size":       qsWindowSize,
	"measure_text":      qsMeasureText,
	"screenshot":        qsScreenshot,

	// animation control
	"set_anim_duration": qsSetAnimDuration,
	"anim_played":       qsAnimPlayed,
	"reset_anim":        qsResetAnim,

	// helpers
	"attempt":   qsAttempt,
	"translate": qsTranslate,
	"rotate":    qsRotate,
	"scale":     qsScale,
	"matmul":    qsMatmul,
}

var qsColors = map[string]Color{
	"WHITE":   ColorWhite,
	"BLACK":   ColorBlack,
	"RED":     ColorRed,
	"GREEN":   ColorGreen,
	"BLUE":    ColorBlue,
	"YELLOW":  ColorYellow,
	"CYAN":    ColorCyan,
	"MAGENTA": ColorMagenta,
	"ORANGE":  ColorOrange,
	"PURPLE":  ColorPurple,
	"INDIGO":  ColorIndigo,
}

// newQSModule builds the predeclared qs module.
func newQSModule() *starlarkstruct.Module {
	members := make(starlark.StringDict, len(qsBuiltins)+len(qsColors)+1)
	for name, fn := range qsBuiltins {
		members[name] = starlark.NewBuiltin(name, fn)
	}
	for name, c := range qsColors {
		members[name] = colorValue(c)
	}
	members["IDENTITY"] = transformValue(IdentityTransform)
	members["IDENTITY"].Freeze()
	m := &starlarkstruct.Module{Name: "qs", Members: members}
	m.Freeze()
	return m
}

// --- Declarations ---

// declEach calls f for every entry of entries, each of which must be a
// list of n fields.
func declEach(fn string, entries starlark.Value, n int, f func(fields starlark.Indexable) error) error {
	iter := starlark.Iterate(entries)
	if iter == nil {
		return argErrorf(fn, "expected a list of entries, got %s", entries.Type())
	}
	defer iter.Done()
	var item starlark.Value
	for i := 0; iter.Next(&item); i++ {
		fields, err := sequence(fn, fmt.Sprintf("entry %d", i), item, n)
		if err != nil {
			return err
		}
		if err := f(fields); err != nil {
			return err
		}
	}
	return nil
}

// nameAndPath reads the leading [name, path] fields of a declaration.
func nameAndPath(fn string, fields starlark.Indexable) (string, string, error) {
	name, err := toString(fn, "name", fields.Index(0))
	if err != nil {
		return "", "", err
	}
	path, err := toString(fn, "path", fields.Index(1))
	if err != nil {
		return "", "", err
	}
	return name, path, nil
}

func declaration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (*ResourceSpec, starlark.Value, error) {
	var entries starlark.Value
	if err := unpack(b, args, kwargs, "entries", &entries); err != nil {
		return nil, nil, err
	}
	spec, err := boundSpec(thread)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return spec, entries, nil
}

// declareSprites implements qs.declare_sprites([[name, path], ...]).
func declareSprites(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	spec, entries, err := declaration(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.None, declEach(b.Name(), entries, 2, func(fields starlark.Indexable) error {
		name, path, err := nameAndPath(b.Name(), fields)
		if err != nil {
			return err
		}
		return spec.AddSprite(SpriteDecl{Name: name, Locator: path})
	})
}

// declareAnimations implements
// qs.declare_animations([[name, path, frames, duration], ...]).
func declareAnimations(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	spec, entries, err := declaration(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.None, declEach(b.Name(), entries, 4, func(fields starlark.Indexable) error {
		name, path, err := nameAndPath(b.Name(), fields)
		if err != nil {
			return err
		}
		frames, err := starlark.AsInt32(fields.Index(2))
		if err != nil {
			return argErrorf(b.Name(), "frame count of %q: %v", name, err)
		}
		dur, err := toFloat(b.Name(), "duration", fields.Index(3))
		if err != nil {
			return err
		}
		if err := spec.AddAnimation(AnimationDecl{Name: name, Locator: path, Frames: frames, Duration: dur}); err != nil {
			return argErrorf(b.Name(), "%v", err)
		}
		return nil
	})
}

// declareSounds implements qs.declare_sounds([[name, path], ...]).
func declareSounds(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	spec, entries, err := declaration(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.None, declEach(b.Name(), entries, 2, func(fields starlark.Indexable) error {
		name, path, err := nameAndPath(b.Name(), fields)
		if err != nil {
			return err
		}
		return spec.AddSound(SoundDecl{Name: name, Locator: path})
	})
}

// declareFonts implements qs.declare_fonts([[name, path, size], ...]).
func declareFonts(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	spec, entries, err := declaration(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.None, declEach(b.Name(), entries, 3, func(fields starlark.Indexable) error {
		name, path, err := nameAndPath(b.Name(), fields)
		if err != nil {
			return err
		}
		size, err := toFloat(b.Name(), "size", fields.Index(2))
		if err != nil {
			return err
		}
		if err := spec.AddFont(FontDecl{Name: name, Locator: path, Size: size}); err != nil {
			return argErrorf(b.Name(), "%v", err)
		}
		return nil
	})
}

// --- attempt ---

var attemptConstructor = starlark.String("result")

// qsAttempt implements qs.attempt(fn, *args, **kwargs). It calls fn and
// turns a resource lookup or argument error into a result value instead of
// aborting the callback. Other errors propagate.
func qsAttempt(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) < 1 {
		return nil, argErrorf(b.Name(), "missing function argument")
	}
	fn, ok := args[0].(starlark.Callable)
	if !ok {
		return nil, argErrorf(b.Name(), "first argument must be callable, got %s", args[0].Type())
	}
	v, err := starlark.Call(thread, fn, args[1:], kwargs)
	if err == nil {
		return starlarkstruct.FromStringDict(attemptConstructor, starlark.StringDict{
			"ok":    starlark.True,
			"value": v,
		}), nil
	}
	lookup, arg, ok := catchable(err)
	if !ok {
		return nil, err
	}
	d := starlark.StringDict{"ok": starlark.False, "value": starlark.None}
	if lookup != nil {
		d["error"] = starlark.String(lookup.Error())
		d["kind"] = starlark.String(lookup.Kind.String())
		d["name"] = starlark.String(lookup.Name)
	} else {
		d["error"] = starlark.String(arg.Error())
		d["kind"] = starlark.String("argument")
		d["name"] = starlark.String(arg.Func)
	}
	return starlarkstruct.FromStringDict(attemptConstructor, d), nil
}

// --- Geometry helpers ---

func qsTranslate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y float64
	if err := unpack(b, args, kwargs, "x", &x, "y", &y); err != nil {
		return nil, err
	}
	return transformValue(Translate(x, y)), nil
}

func qsRotate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var deg float64
	if err := unpack(b, args, kwargs, "degrees", &deg); err != nil {
		return nil, err
	}
	return transformValue(Rotate(deg)), nil
}

func qsScale(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var sx float64
	var syv starlark.Value
	if err := unpack(b, args, kwargs, "sx", &sx, "sy?", &syv); err != nil {
		return nil, err
	}
	sy := sx
	if !isAbsent(syv) {
		var err error
		if sy, err = toFloat(b.Name(), "sy", syv); err != nil {
			return nil, err
		}
	}
	return transformValue(Scale(sx, sy)), nil
}

func qsMatmul(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var av, bv starlark.Value
	if err := unpack(b, args, kwargs, "a", &av, "b", &bv); err != nil {
		return nil, err
	}
	ta, err := toTransform(b.Name(), av)
	if err != nil {
		return nil, err
	}
	tb, err := toTransform(b.Name(), bv)
	if err != nil {
		return nil, err
	}
	return transformValue(ta.Mul(tb)), nil
}
