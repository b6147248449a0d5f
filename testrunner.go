package pickit

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Text   string  `json:"text,omitempty"`
	Label  string  `json:"label,omitempty"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input and screenshots across frames for
// unattended runs. Attach it with Host.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script. Unknown actions, key names and
// buttons are rejected up front.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "key":
		if _, ok := KeyByName(st.Key); !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
	case "click":
		if _, ok := mouseButtonByName(st.Button); !ok {
			return fmt.Errorf("unknown button %q", st.Button)
		}
	case "type", "move", "wheel", "wait", "screenshot", "quit":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether the script has finished or executed quit.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Host.Step before input
// is drained.
func (r *TestRunner) step(h *Host) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if h.injected.len() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "key":
		_ = h.InjectKey(st.Key)
	case "type":
		h.InjectText(st.Text)
	case "move":
		h.InjectMove(st.X, st.Y)
	case "click":
		btn, _ := mouseButtonByName(st.Button)
		h.InjectClick(st.X, st.Y, btn)
	case "wheel":
		h.InjectWheel(st.X, st.Y)
	case "screenshot":
		h.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		r.done = true
		return
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && h.injected.len() == 0 {
		r.done = true
	}
}
