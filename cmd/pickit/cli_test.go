package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/pickit"
	"github.com/spf13/cobra"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

const checkScript = `
def init():
    return {"n": 0}

def draw(s):
    qs.text(str(s["n"]), p0=[0, 0])
`

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.star")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCLIHelp(t *testing.T) {
	output, err := executeCommand(rootCmd, "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedPhrases := []string{
		"pickit",
		"Starlark",
		"run",
		"check",
		"compile",
		"keys",
		"--config",
		"--log-level",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("help output should contain %q", phrase)
		}
	}
}

func TestCLIRunHelp(t *testing.T) {
	output, err := executeCommand(rootCmd, "run", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedPhrases := []string{
		"--size",
		"--watch",
		"--fps",
		"--test-script",
		"--debug",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("run help output should contain %q", phrase)
		}
	}
}

func TestCLIKeys(t *testing.T) {
	output, err := executeCommand(rootCmd, "keys")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != len(pickit.KeyNames()) {
		t.Errorf("keys printed %d names, want %d", len(lines), len(pickit.KeyNames()))
	}
	for _, want := range []string{"space", "arrowup", "a", "enter"} {
		found := false
		for _, l := range lines {
			if l == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("keys output should list %q", want)
		}
	}
}

func TestCLICheck(t *testing.T) {
	path := writeScript(t, checkScript)
	output, err := executeCommand(rootCmd, "check", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedPhrases := []string{
		path + ": ok",
		"callbacks: init, draw",
		"sprites: 0",
		"fonts: 1 (default)",
	}
	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("check output should contain %q, got:\n%s", phrase, output)
		}
	}
}

func TestCLICheckReportsStartupError(t *testing.T) {
	path := writeScript(t, "def init(:\n")
	_, err := executeCommand(rootCmd, "check", path)
	if err == nil || !strings.Contains(err.Error(), "compile") {
		t.Errorf("err = %v, want compile failure", err)
	}
}

func TestCLICompile(t *testing.T) {
	path := writeScript(t, checkScript)
	output, err := executeCommand(rootCmd, "compile", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := strings.TrimSuffix(path, ".star") + pickit.BytecodeExt
	if !strings.Contains(output, "wrote "+out) {
		t.Errorf("compile output = %q", output)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("bytecode not written: %v", err)
	}

	output, err = executeCommand(rootCmd, "check", out)
	if err != nil {
		t.Fatalf("check on bytecode: %v", err)
	}
	if !strings.Contains(output, "callbacks: init, draw") {
		t.Errorf("check output = %q", output)
	}
}

func TestCLICompileSyntaxError(t *testing.T) {
	path := writeScript(t, "x = (\n")
	if _, err := executeCommand(rootCmd, "compile", path, "-o", filepath.Join(t.TempDir(), "x.starc")); err == nil {
		t.Error("expected syntax error")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"800x600", 800, 600, false},
		{"320X240", 320, 240, false},
		{"800", 0, 0, true},
		{"ax600", 0, 0, true},
		{"0x10", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) err = %v", tt.in, err)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %dx%d", tt.in, w, h)
		}
	}
}
