package pickit

import (
	"errors"
	"fmt"
)

// Errors returned when the script API is used outside a callback.
var (
	ErrNoContext = errors.New("pickit: no frame context is bound; qs functions may only be called from inside a callback")
	ErrScopeBusy = errors.New("pickit: a frame context is already bound")
)

// Startup stages reported by StartupError.
const (
	StageRead      = "read"
	StageCompile   = "compile"
	StageEvaluate  = "evaluate"
	StageDiscover  = "discover"
	StageResources = "resources"
	StageInit      = "init"
)

// StartupError reports a failure before the frame loop starts.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("pickit: startup failed during %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// ScriptError reports an uncaught failure inside a script callback.
type ScriptError struct {
	Callback  string // init, onload, update, draw or event
	Msg       string // the script's own error text
	Backtrace string
	Err       error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("pickit: %s callback failed: %s", e.Callback, e.Msg)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// LookupError reports an API call naming a resource that does not exist.
type LookupError struct {
	Kind ResourceKind
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// ArgumentError reports malformed arguments to an API call.
type ArgumentError struct {
	Func string
	Msg  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Func, e.Msg)
}

func argErrorf(fn, format string, args ...any) *ArgumentError {
	return &ArgumentError{Func: fn, Msg: fmt.Sprintf(format, args...)}
}

// LoadError reports a resource that could not be read or decoded.
type LoadError struct {
	Kind    ResourceKind
	Name    string
	Locator string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("load %s %s: %v", e.Kind, e.Locator, e.Err)
	}
	return fmt.Sprintf("load %s %q from %s: %v", e.Kind, e.Name, e.Locator, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// catchable reports whether err is one a script may recover from with
// qs.attempt, and returns it.
func catchable(err error) (lookup *LookupError, arg *ArgumentError, ok bool) {
	if errors.As(err, &lookup) {
		return lookup, nil, true
	}
	if errors.As(err, &arg) {
		return nil, arg, true
	}
	return nil, nil, false
}
