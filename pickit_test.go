package pickit

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},   // top-left corner (inclusive)
		{110, 70, true},  // bottom-right corner (inclusive)
		{50, 40, true},   // center
		{9, 40, false},   // left of rect
		{111, 40, false}, // right of rect
		{50, 19, false},  // above rect
		{50, 71, false},  // below rect
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectCenter(t *testing.T) {
	c := Rect{X: 10, Y: 20, Width: 100, Height: 50}.Center()
	if c.X != 60 || c.Y != 45 {
		t.Errorf("Center = %v, want (60, 45)", c)
	}
}

func TestButtonStateApply(t *testing.T) {
	tests := []struct {
		from ButtonState
		down bool
		want ButtonState
	}{
		{ButtonIdle, true, ButtonPressed},
		{ButtonIdle, false, ButtonIdle},
		{ButtonPressed, true, ButtonHeld},
		{ButtonPressed, false, ButtonReleased},
		{ButtonHeld, true, ButtonHeld},
		{ButtonHeld, false, ButtonReleased},
		{ButtonReleased, true, ButtonPressed},
		{ButtonReleased, false, ButtonIdle},
	}
	for _, tt := range tests {
		if got := tt.from.apply(tt.down); got != tt.want {
			t.Errorf("%v.apply(%v) = %v, want %v", tt.from, tt.down, got, tt.want)
		}
	}
}

func TestButtonStateSettle(t *testing.T) {
	tests := map[ButtonState]ButtonState{
		ButtonIdle:     ButtonIdle,
		ButtonPressed:  ButtonHeld,
		ButtonHeld:     ButtonHeld,
		ButtonReleased: ButtonIdle,
	}
	for from, want := range tests {
		if got := from.settle(); got != want {
			t.Errorf("%v.settle() = %v, want %v", from, got, want)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if ButtonPressed.String() != "pressed" || ButtonReleased.String() != "released" {
		t.Error("ButtonState names mismatch")
	}
	if ButtonState(99).String() != "unknown" {
		t.Error("out-of-range ButtonState should be unknown")
	}
	if MouseButtonMiddle.String() != "middle" {
		t.Errorf("MouseButtonMiddle = %q", MouseButtonMiddle.String())
	}
	if KindAnimation.String() != "animation" || KindFont.String() != "font" {
		t.Error("ResourceKind names mismatch")
	}
}

func TestMouseButtonByName(t *testing.T) {
	if b, ok := mouseButtonByName(""); !ok || b != MouseButtonLeft {
		t.Errorf("empty name = %v, %v; want left", b, ok)
	}
	if b, ok := mouseButtonByName("right"); !ok || b != MouseButtonRight {
		t.Errorf("right = %v, %v", b, ok)
	}
	if _, ok := mouseButtonByName("fourth"); ok {
		t.Error("unknown button should not resolve")
	}
}

func TestColorToRGBAClamps(t *testing.T) {
	c := Color{R: 2, G: -1, B: 0.5, A: 1}.toRGBA()
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || a != 0xffff {
		t.Errorf("RGBA = %d %d %d %d", r, g, b, a)
	}
	if b < 0x7f00 || b > 0x8100 {
		t.Errorf("blue = %#x, want about half", b)
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 0, 3) != 3 || clamp(-1, 0, 3) != 0 || clamp(2, 0, 3) != 2 {
		t.Error("int clamp")
	}
	if clamp(1.5, 0.0, 1.0) != 1.0 {
		t.Error("float clamp")
	}
}

func TestColorWhite(t *testing.T) {
	if ColorWhite != (Color{1, 1, 1, 1}) {
		t.Errorf("ColorWhite = %v", ColorWhite)
	}
}
