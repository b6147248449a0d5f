package pickit

import "go.starlark.net/starlark"

// Thread-local keys. Values live on the host's single *starlark.Thread.
const (
	frameKey = "pickit.frame"
	specKey  = "pickit.spec"
)

// FrameContext is the host state lent to one callback invocation. It is
// reachable from API builtins only while the callback runs.
type FrameContext struct {
	// Callback is the name of the running callback.
	Callback string
	// Renderer is the frame's drawing surface. It is nil outside draw.
	Renderer  Renderer
	Resources *ResourceTable
	Input     *InputSnapshot
	Camera    *Camera
	Mixer     Mixer
	// Surface is the size of the drawing surface in pixels.
	Surface Vec2
	// Screenshot queues a capture of the current frame; may be nil.
	Screenshot func(label string)

	released bool
}

// renderer returns the bound renderer, or an ArgumentError naming the
// callback when drawing is not possible.
func (fc *FrameContext) renderer(fn string) (Renderer, error) {
	if fc.Renderer == nil {
		return nil, argErrorf(fn, "drawing is only possible inside draw, not %s", fc.Callback)
	}
	return fc.Renderer, nil
}

// Scope binds a FrameContext to the evaluator thread for the extent of one
// call. Bindings are not re-entrant.
type Scope struct {
	thread *starlark.Thread
}

func newScope(thread *starlark.Thread) *Scope {
	return &Scope{thread: thread}
}

// With binds fc, runs fn and unbinds fc, even if fn fails or panics. The
// context is released afterwards and never becomes reachable again.
func (s *Scope) With(fc *FrameContext, fn func() error) error {
	if cur, _ := s.thread.Local(frameKey).(*FrameContext); cur != nil {
		return ErrScopeBusy
	}
	if fc == nil || fc.released {
		return ErrNoContext
	}
	s.thread.SetLocal(frameKey, fc)
	defer func() {
		s.thread.SetLocal(frameKey, nil)
		fc.released = true
	}()
	return fn()
}

// declaring binds spec for the extent of module evaluation.
func (s *Scope) declaring(spec *ResourceSpec, fn func() error) error {
	s.thread.SetLocal(specKey, spec)
	defer s.thread.SetLocal(specKey, nil)
	return fn()
}

// boundFrame returns the context bound to thread, or ErrNoContext.
func boundFrame(thread *starlark.Thread) (*FrameContext, error) {
	if thread == nil {
		return nil, ErrNoContext
	}
	fc, _ := thread.Local(frameKey).(*FrameContext)
	if fc == nil || fc.released {
		return nil, ErrNoContext
	}
	return fc, nil
}

// boundSpec returns the declaration spec bound to thread.
func boundSpec(thread *starlark.Thread) (*ResourceSpec, error) {
	if thread == nil {
		return nil, errSpecFrozen
	}
	spec, _ := thread.Local(specKey).(*ResourceSpec)
	if spec == nil || spec.frozen {
		return nil, errSpecFrozen
	}
	return spec, nil
}
