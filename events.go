package pickit

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// eventConstructor is the name printed for event records: event(event = "key", ...).
var eventConstructor = starlark.String("event")

// eventRecord translates an occurrence into the value passed to the script's
// event callback. It must run after snap has applied o, so that key and
// button states reflect the occurrence. Pointer positions are reported in
// world coordinates.
func eventRecord(o Occurrence, snap *InputSnapshot, cam *Camera) *starlarkstruct.Struct {
	d := starlark.StringDict{"event": starlark.String(o.Kind.String())}
	switch o.Kind {
	case OccKey:
		d["key"] = starlark.String(keyName(o.Key))
		d["state"] = starlark.String(snap.Key(o.Key).String())
	case OccTyped:
		d["char"] = starlark.String(string(o.Char))
	case OccMouseMoved:
		wx, wy := cam.ScreenToWorld(o.X, o.Y)
		d["x"] = starlark.Float(wx)
		d["y"] = starlark.Float(wy)
	case OccMouseWheel:
		d["x"] = starlark.Float(o.X)
		d["y"] = starlark.Float(o.Y)
	case OccMouseButton:
		d["button"] = starlark.String(o.Button.String())
		d["down"] = starlark.Bool(o.Down)
		d["state"] = starlark.String(snap.Button(o.Button).String())
	}
	return starlarkstruct.FromStringDict(eventConstructor, d)
}
