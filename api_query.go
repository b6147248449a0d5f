package pickit

import (
	"math"

	"go.starlark.net/starlark"
)

// noArgs checks that a query was called without arguments and returns the
// bound context.
func noArgs(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (*FrameContext, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	if err := unpack(b, args, kwargs); err != nil {
		return nil, err
	}
	return fc, nil
}

// qsMousePos implements qs.mouse_pos() -> [x, y] in world coordinates.
func qsMousePos(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := noArgs(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	p := fc.Input.Pointer()
	x, y := fc.Camera.ScreenToWorld(p.X, p.Y)
	return pairValue(x, y), nil
}

// qsMouseWheelDelta implements qs.mouse_wheel_delta() -> [x, y].
func qsMouseWheelDelta(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := noArgs(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	w := fc.Input.Wheel()
	return pairValue(w.X, w.Y), nil
}

// qsMouseButtons implements qs.mouse_buttons() -> {"left": state, ...}.
func qsMouseButtons(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := noArgs(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	d := starlark.NewDict(int(mouseButtonCount))
	for btn := MouseButtonLeft; btn < mouseButtonCount; btn++ {
		if err := d.SetKey(starlark.String(btn.String()), starlark.String(fc.Input.Button(btn).String())); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// keyboardDict maps every key name to value(state).
func keyboardDict(in *InputSnapshot, value func(ButtonState) starlark.Value) (*starlark.Dict, error) {
	names := KeyNames()
	d := starlark.NewDict(len(names))
	for _, name := range names {
		k, _ := KeyByName(name)
		if err := d.SetKey(starlark.String(name), value(in.Key(k))); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// qsKeyboard implements qs.keyboard() -> {key name: state}.
func qsKeyboard(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := noArgs(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return keyboardDict(fc.Input, func(s ButtonState) starlark.Value { return starlark.String(s.String()) })
}

// qsKeyboardBool implements qs.keyboard_bool() -> {key name: down}.
func qsKeyboardBool(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := noArgs(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return keyboardDict(fc.Input, func(s ButtonState) starlark.Value { return starlark.Bool(s.Down()) })
}

// qsKey implements qs.key(name) -> state.
func qsKey(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var name string
	if err := unpack(b, args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	k, ok := KeyByName(name)
	if !ok {
		return nil, argErrorf(b.Name(), "unknown key %q", name)
	}
	return starlark.String(fc.Input.Key(k).String()), nil
}

// qsUpdateRate implements qs.update_rate() -> period in milliseconds.
func qsUpdateRate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := noArgs(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.Float(durationToMS(fc.Input.Period())), nil
}

// qsSetUpdateRate implements qs.set_update_rate(ms).
func qsSetUpdateRate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var ms float64
	if err := unpack(b, args, kwargs, "ms", &ms); err != nil {
		return nil, err
	}
	d := msToDuration(ms)
	if !(ms > 0) || math.IsInf(ms, 0) || d <= 0 {
		return nil, argErrorf(b.Name(), "update rate must be a finite period of at least 1ns, got %g ms", ms)
	}
	fc.Input.SetPeriod(d)
	return starlark.None, nil
}

// qsSetView implements qs.set_view([[x, y], [w, h]]).
func qsSetView(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var rv starlark.Value
	if err := unpack(b, args, kwargs, "rect", &rv); err != nil {
		return nil, err
	}
	r, err := toRect(b.Name(), "rect", rv)
	if err != nil {
		return nil, err
	}
	if err := fc.Camera.SetView(r); err != nil {
		return nil, argErrorf(b.Name(), "%v", err)
	}
	return starlark.None, nil
}

// qsTweenView implements qs.tween_view(rect, seconds, ease="linear").
func qsTweenView(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var (
		rv       starlark.Value
		seconds  float64
		easeName = "linear"
	)
	if err := unpack(b, args, kwargs, "rect", &rv, "seconds", &seconds, "ease?", &easeName); err != nil {
		return nil, err
	}
	r, err := toRect(b.Name(), "rect", rv)
	if err != nil {
		return nil, err
	}
	fn, ok := lookupEase(easeName)
	if !ok {
		return nil, argErrorf(b.Name(), "unknown ease %q", easeName)
	}
	if err := fc.Camera.TweenTo(r, float32(seconds), fn); err != nil {
		return nil, argErrorf(b.Name(), "%v", err)
	}
	return starlark.None, nil
}

// qsWindowSize implements qs.window_size() -> [w, h].
func qsWindowSize(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := noArgs(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return pairValue(fc.Surface.X, fc.Surface.Y), nil
}

// qsMeasureText implements qs.measure_text(s, font="default") -> [w, h].
func qsMeasureText(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var s string
	fontName := DefaultFontName
	if err := unpack(b, args, kwargs, "s", &s, "font?", &fontName); err != nil {
		return nil, err
	}
	f, err := fc.Resources.Font(fontName)
	if err != nil {
		return nil, err
	}
	w, h := f.MeasureString(s)
	return pairValue(w, h), nil
}

// animByName resolves the name argument of the animation controls.
func animByName(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, extra ...any) (*Animation, error) {
	fc, err := boundFrame(thread)
	if err != nil {
		return nil, err
	}
	var name string
	pairs := append([]any{"name", &name}, extra...)
	if err := unpack(b, args, kwargs, pairs...); err != nil {
		return nil, err
	}
	return fc.Resources.Animation(name)
}

// qsSetAnimDuration implements qs.set_anim_duration(name, seconds).
func qsSetAnimDuration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var seconds float64
	a, err := animByName(thread, b, args, kwargs, "seconds", &seconds)
	if err != nil {
		return nil, err
	}
	if err := a.SetDuration(seconds); err != nil {
		return nil, argErrorf(b.Name(), "%v", err)
	}
	return starlark.None, nil
}

// qsAnimPlayed implements qs.anim_played(name) -> bool.
func qsAnimPlayed(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a, err := animByName(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(a.Played()), nil
}

// qsResetAnim implements qs.reset_anim(name).
func qsResetAnim(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a, err := animByName(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	a.Reset()
	return starlark.None, nil
}
