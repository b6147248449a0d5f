package pickit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.starlark.net/lib/json"
	"go.starlark.net/lib/math"
	"go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// BytecodeExt marks files holding compiled programs.
const BytecodeExt = ".starc"

// Entry is the script a Host runs: either source or compiled bytecode.
type Entry struct {
	// Path is the file the entry was read from, if any. It anchors load()
	// and lets the host re-read the entry on reload.
	Path     string
	Source   []byte
	Bytecode []byte
}

// EntryFromFile reads a script or, for files ending in .starc, compiled
// bytecode.
func EntryFromFile(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, &StartupError{Stage: StageRead, Err: err}
	}
	if strings.EqualFold(filepath.Ext(path), BytecodeExt) {
		return Entry{Path: path, Bytecode: data}, nil
	}
	return Entry{Path: path, Source: data}, nil
}

func (e Entry) name() string {
	if e.Path != "" {
		return filepath.Base(e.Path)
	}
	return "main.star"
}

func (e Entry) dir() string {
	if e.Path != "" {
		return filepath.Dir(e.Path)
	}
	return "."
}

// fileOptions enables the Python features scripts commonly rely on.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Program is a compiled module.
type Program struct {
	name string
	prog *starlark.Program
}

// Compile parses and resolves src as a module. Names in predeclared, plus
// the universe, are treated as defined.
func Compile(name string, src []byte, predeclared starlark.StringDict) (*Program, error) {
	_, prog, err := starlark.SourceProgramOptions(fileOptions, name, src, predeclared.Has)
	if err != nil {
		return nil, err
	}
	return &Program{name: name, prog: prog}, nil
}

// DecodeProgram reads bytecode written by Program.Encode.
func DecodeProgram(name string, data []byte) (*Program, error) {
	prog, err := starlark.CompiledProgram(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pickit: decode %s: %w", name, err)
	}
	return &Program{name: name, prog: prog}, nil
}

// Encode returns the program as portable bytecode.
func (p *Program) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.prog.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run executes the module's top level and returns its globals.
func (p *Program) Run(thread *starlark.Thread, predeclared starlark.StringDict) (starlark.StringDict, error) {
	return p.prog.Init(thread, predeclared)
}

// compileEntry turns an entry into a program.
func compileEntry(e Entry, predeclared starlark.StringDict) (*Program, error) {
	if e.Bytecode != nil {
		return DecodeProgram(e.name(), e.Bytecode)
	}
	return Compile(e.name(), e.Source, predeclared)
}

// Predeclared returns the names every module sees: qs, math, time, json and
// struct.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"qs":     newQSModule(),
		"math":   math.Module,
		"time":   time.Module,
		"json":   json.Module,
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
}

// newThread creates the single evaluator thread for a runtime. print() goes
// to the logger and load() resolves against dir.
func newThread(name, dir string, env starlark.StringDict) *starlark.Thread {
	thread := &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, msg string) { logInfo(msg, "script", name) },
	}
	thread.Load = newModuleLoader(dir, env)
	return thread
}

// moduleEntry is a load() cache slot. A nil entry marks a load in progress.
type moduleEntry struct {
	globals starlark.StringDict
	err     error
}

// newModuleLoader returns a thread.Load that executes sibling modules once
// and caches their globals. Cycles are reported as errors.
func newModuleLoader(dir string, env starlark.StringDict) func(*starlark.Thread, string) (starlark.StringDict, error) {
	cache := make(map[string]*moduleEntry)
	var load func(*starlark.Thread, string) (starlark.StringDict, error)
	load = func(parent *starlark.Thread, module string) (starlark.StringDict, error) {
		path := filepath.Join(dir, filepath.FromSlash(module))
		e, ok := cache[path]
		if e == nil {
			if ok {
				return nil, fmt.Errorf("cycle in load graph at %s", module)
			}
			cache[path] = nil
			e = &moduleEntry{}
			e.globals, e.err = execModule(parent, path, module, env, load)
			cache[path] = e
		}
		return e.globals, e.err
	}
	return load
}

func execModule(parent *starlark.Thread, path, module string, env starlark.StringDict, load func(*starlark.Thread, string) (starlark.StringDict, error)) (starlark.StringDict, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := Compile(module, src, env)
	if err != nil {
		return nil, err
	}
	child := &starlark.Thread{Name: "load " + module, Print: parent.Print, Load: load}
	child.SetLocal(specKey, parent.Local(specKey))
	return prog.Run(child, env)
}

// lookupCallback finds a top-level callable by name. A missing name is not
// an error; a non-callable value is.
func lookupCallback(globals starlark.StringDict, name string) (starlark.Callable, error) {
	v, ok := globals[name]
	if !ok || v == starlark.None {
		return nil, nil
	}
	fn, ok := v.(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s must be a function, got %s", name, v.Type())
	}
	return fn, nil
}

// invoke calls fn and converts any evaluator failure, including a Go panic
// inside a builtin, into a *ScriptError naming the callback.
func invoke(thread *starlark.Thread, callback string, fn starlark.Callable, args ...starlark.Value) (v starlark.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, &ScriptError{Callback: callback, Msg: fmt.Sprint(r), Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	v, err = starlark.Call(thread, fn, starlark.Tuple(args), nil)
	if err != nil {
		return nil, scriptError(callback, err)
	}
	return v, nil
}

// scriptError wraps an evaluator error.
func scriptError(callback string, err error) *ScriptError {
	var se *ScriptError
	if errors.As(err, &se) {
		return se
	}
	var ee *starlark.EvalError
	if errors.As(err, &ee) {
		return &ScriptError{Callback: callback, Msg: ee.Msg, Backtrace: ee.Backtrace(), Err: err}
	}
	return &ScriptError{Callback: callback, Msg: err.Error(), Err: err}
}
