package pickit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.starlark.net/starlark"
)

// Callback names looked up in the script's globals.
const (
	CallbackInit   = "init"
	CallbackOnload = "onload"
	CallbackUpdate = "update"
	CallbackDraw   = "draw"
	CallbackEvent  = "event"
)

var callbackNames = [...]string{CallbackInit, CallbackOnload, CallbackUpdate, CallbackDraw, CallbackEvent}

// runtime is everything produced by evaluating one version of the script.
// Hot reload swaps it as a whole.
type runtime struct {
	thread    *starlark.Thread
	scope     *Scope
	globals   starlark.StringDict
	resources *ResourceTable
	callbacks map[string]starlark.Callable
	state     starlark.Value
	loaded    bool
}

// Option configures a Host.
type Option func(*Host)

// WithLoader replaces the file system loader.
func WithLoader(l Loader) Option { return func(h *Host) { h.loader = l } }

// WithInputSource sets where native input occurrences come from.
func WithInputSource(s InputSource) Option { return func(h *Host) { h.source = s } }

// WithMixer sets the audio sink used by qs.sound.
func WithMixer(m Mixer) Option { return func(h *Host) { h.mixer = m } }

// WithClock replaces time.Now for update pacing.
func WithClock(now func() time.Time) Option { return func(h *Host) { h.now = now } }

// Host runs one script: it evaluates the module, loads the declared
// resources, and then drives the callbacks frame by frame.
type Host struct {
	cfg   Config
	entry Entry

	loader Loader
	source InputSource
	mixer  Mixer
	now    func() time.Time

	rt       *runtime
	input    *InputSnapshot
	camera   *Camera
	pacer    *pacer
	injected injectQueue
	occs     []Occurrence

	runner      *TestRunner
	screenshots []string
	stats       frameStats
	watcher     *watcher
	reload      atomic.Bool
	// ticked is set when the last frame ran an update tick.
	ticked bool

	err error
}

// New creates a host for entry. Nothing is evaluated until Start.
func New(cfg Config, entry Entry, opts ...Option) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Host{
		cfg:    cfg,
		entry:  entry,
		now:    time.Now,
		input:  newInputSnapshot(cfg.period()),
		camera: newCamera(float64(cfg.Width), float64(cfg.Height)),
		pacer:  newPacer(cfg.period()),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.loader == nil {
		root := cfg.AssetRoot
		if root == "" {
			root = entry.dir()
		}
		h.loader = NewFileLoader(root, cfg.SampleRate)
	}
	return h, nil
}

// Start evaluates the script, resolves its resources and calls init. Any
// failure is a *StartupError and leaves the host unusable.
func (h *Host) Start(ctx context.Context) error {
	rt, err := h.boot(ctx, h.entry)
	if err != nil {
		h.err = err
		logError("startup failed", "err", err)
		return err
	}
	h.rt = rt
	h.pacer.start(h.now())
	logInfo("script started", "entry", h.entry.name(),
		"sprites", len(rt.resources.sprites), "animations", len(rt.resources.animations),
		"sounds", len(rt.resources.sounds), "fonts", len(rt.resources.fonts))
	return nil
}

// boot runs the startup phases for entry and returns the new runtime.
func (h *Host) boot(ctx context.Context, entry Entry) (*runtime, error) {
	env := Predeclared()
	prog, err := compileEntry(entry, env)
	if err != nil {
		return nil, &StartupError{Stage: StageCompile, Err: err}
	}

	thread := newThread(entry.name(), entry.dir(), env)
	rt := &runtime{thread: thread, scope: newScope(thread), state: starlark.None}

	spec := &ResourceSpec{}
	err = rt.scope.declaring(spec, func() error {
		var err error
		rt.globals, err = prog.Run(thread, env)
		return err
	})
	if err != nil {
		return nil, &StartupError{Stage: StageEvaluate, Err: scriptError("module", err)}
	}
	spec.freeze()

	rt.callbacks = make(map[string]starlark.Callable, len(callbackNames))
	for _, name := range callbackNames {
		fn, err := lookupCallback(rt.globals, name)
		if err != nil {
			return nil, &StartupError{Stage: StageDiscover, Err: err}
		}
		if fn != nil {
			rt.callbacks[name] = fn
		}
	}

	start := time.Now()
	rt.resources, err = Resolve(ctx, spec, h.loader, h.cfg.DefaultFontSize)
	if err != nil {
		return nil, &StartupError{Stage: StageResources, Err: err}
	}
	logDebug("resources resolved", "declared", spec.Len(), "elapsed", time.Since(start))

	if fn := rt.callbacks[CallbackInit]; fn != nil {
		v, err := h.call(rt, CallbackInit, fn, nil)
		if err != nil {
			return nil, &StartupError{Stage: StageInit, Err: err}
		}
		rt.state = v
	}
	return rt, nil
}

// frame builds the context lent to one callback.
func (h *Host) frame(rt *runtime, callback string, r Renderer) *FrameContext {
	return &FrameContext{
		Callback:   callback,
		Renderer:   r,
		Resources:  rt.resources,
		Input:      h.input,
		Camera:     h.camera,
		Mixer:      h.mixer,
		Surface:    h.camera.surface,
		Screenshot: h.Screenshot,
	}
}

// call invokes fn with a fresh context bound for its duration.
func (h *Host) call(rt *runtime, name string, fn starlark.Callable, r Renderer, args ...starlark.Value) (starlark.Value, error) {
	var out starlark.Value
	start := time.Now()
	err := rt.scope.With(h.frame(rt, name, r), func() error {
		v, err := invoke(rt.thread, name, fn, args...)
		out = v
		return err
	})
	h.stats.record(name, time.Since(start))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fail stops the host with err.
func (h *Host) fail(err error) error {
	h.err = err
	var se *ScriptError
	if errors.As(err, &se) && se.Backtrace != "" {
		logError("script failed", "callback", se.Callback, "err", se.Msg)
		Logger().Print(se.Backtrace)
	} else {
		logError("script failed", "err", err)
	}
	return err
}

// Err returns the error that stopped the host, if any.
func (h *Host) Err() error { return h.err }

// Step runs the non-drawing part of a frame: pending events are dispatched
// in arrival order, onload runs once, and update runs when a full period of
// real time has accumulated. Edge states and the wheel delta are kept until
// an update tick has run. Callback results other than init's are
// discarded; scripts mutate the state value in place.
func (h *Host) Step() error {
	if h.err != nil {
		return h.err
	}
	if h.rt == nil {
		return fmt.Errorf("pickit: host not started")
	}
	if h.reload.CompareAndSwap(true, false) {
		h.reloadNow()
	}
	if h.runner != nil {
		h.runner.step(h)
	}
	rt := h.rt

	if h.ticked {
		h.input.settle()
		h.ticked = false
	}
	h.occs = h.occs[:0]
	if h.source != nil {
		h.occs = h.source.Poll(h.occs)
	}
	h.occs = h.injected.pop(h.occs)
	for _, o := range h.occs {
		h.input.apply(o)
		fn := rt.callbacks[CallbackEvent]
		if fn == nil {
			continue
		}
		rec := eventRecord(o, h.input, h.camera)
		if _, err := h.call(rt, CallbackEvent, fn, nil, rt.state, rec); err != nil {
			return h.fail(err)
		}
		h.stats.events++
	}

	if !rt.loaded {
		rt.loaded = true
		if fn := rt.callbacks[CallbackOnload]; fn != nil {
			if _, err := h.call(rt, CallbackOnload, fn, nil, rt.state); err != nil {
				return h.fail(err)
			}
		}
	}

	h.pacer.setPeriod(h.input.Period())
	if h.pacer.tick(h.now()) {
		dt := h.input.Period().Seconds()
		rt.resources.advance(dt)
		h.camera.update(float32(dt))
		if fn := rt.callbacks[CallbackUpdate]; fn != nil {
			if _, err := h.call(rt, CallbackUpdate, fn, nil, rt.state); err != nil {
				return h.fail(err)
			}
		}
		h.stats.updates++
		h.ticked = true
	}
	return nil
}

// Render clears r and runs draw against it.
func (h *Host) Render(r Renderer) error {
	if h.err != nil {
		return h.err
	}
	if h.rt == nil {
		return fmt.Errorf("pickit: host not started")
	}
	r.SetTransform(IdentityTransform)
	r.Clear(ColorBlack)
	if fn := h.rt.callbacks[CallbackDraw]; fn != nil {
		if _, err := h.call(h.rt, CallbackDraw, fn, r, h.rt.state); err != nil {
			return h.fail(err)
		}
	}
	r.SetTransform(IdentityTransform)
	h.stats.draws++
	return nil
}

// State returns the current script state.
func (h *Host) State() starlark.Value {
	if h.rt == nil {
		return starlark.None
	}
	return h.rt.state
}

// Resources returns the loaded resource table, or nil before Start.
func (h *Host) Resources() *ResourceTable {
	if h.rt == nil {
		return nil
	}
	return h.rt.resources
}

// Callbacks returns the names of the callbacks the script defines, in
// invocation order.
func (h *Host) Callbacks() []string {
	if h.rt == nil {
		return nil
	}
	var names []string
	for _, name := range callbackNames {
		if _, ok := h.rt.callbacks[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Camera returns the view camera.
func (h *Host) Camera() *Camera { return h.camera }

// Input returns the per-frame input snapshot.
func (h *Host) Input() *InputSnapshot { return h.input }

// SetTestRunner attaches a runner that injects input and screenshots.
func (h *Host) SetTestRunner(r *TestRunner) { h.runner = r }

// Done reports whether an attached test runner has finished.
func (h *Host) Done() bool { return h.runner != nil && h.runner.Done() }

// RequestReload schedules a rebuild of the runtime at the next frame. It is
// safe to call from any goroutine.
func (h *Host) RequestReload() { h.reload.Store(true) }

// reloadNow re-reads and boots the entry. On failure the running version is
// kept.
func (h *Host) reloadNow() {
	entry := h.entry
	if entry.Path != "" {
		e, err := EntryFromFile(entry.Path)
		if err != nil {
			logWarn("reload failed, keeping previous version", "err", err)
			return
		}
		entry = e
	}
	rt, err := h.boot(context.Background(), entry)
	if err != nil {
		logWarn("reload failed, keeping previous version", "err", err)
		return
	}
	h.entry = entry
	h.rt = rt
	logInfo("script reloaded", "entry", entry.name())
}

// Close stops the file watcher, if any.
func (h *Host) Close() error {
	if h.watcher != nil {
		err := h.watcher.close()
		h.watcher = nil
		return err
	}
	return nil
}

// scriptDir is the directory watched for changes.
func (h *Host) scriptDir() string {
	if h.entry.Path == "" {
		return ""
	}
	return filepath.Dir(h.entry.Path)
}
