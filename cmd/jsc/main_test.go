package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/jsc/internal/config"
)

func TestMain(m *testing.M) {
	config.IsTestMode = true
	os.Exit(m.Run())
}

const libTree = `
statements:
  - kind: Function
    exported: true
    name: helper
    returns: u32
    body:
      - {kind: Return, value: 1}
`

// The x in the second source line starts at offset 45.
const brokenMain = `
kind: Program
source: |
  import { helper } from "./lib";
  let y: u32 = x + 1;
statements:
  - kind: Import
    path: ./lib
    names: [helper]
  - kind: Let
    name: y
    type: u32
    init:
      kind: Binary
      op: "+"
      left: {kind: Ident, name: x, span: [45, 46]}
      right: 1
`

const cleanMain = `
statements:
  - kind: Import
    path: ./lib
    names: [helper]
  - kind: Let
    name: y
    type: u32
    init: {kind: Call, callee: helper}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runJSC(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheckClean(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.tree.yaml": cleanMain, "lib.tree.yaml": libTree})
	code, _, stderr := runJSC("check", filepath.Join(dir, "main.tree.yaml"))
	if code != exitOK {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	if stderr != "" {
		t.Errorf("unexpected output:\n%s", stderr)
	}
}

func TestCheckReportsDiagnostics(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.tree.yaml": brokenMain, "lib.tree.yaml": libTree})
	code, _, stderr := runJSC("check", "-color", "never", filepath.Join(dir, "main.tree.yaml"))
	if code != exitDiagnostics {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{
		"error[R001]: Unbound variable `x`",
		"--> main.tree.yaml:2:14",
		"2 | let y: u32 = x + 1;",
		"Checking failed with 1 error(s)",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("output missing %q:\n%s", want, stderr)
		}
	}
}

func TestCheckUsesProjectFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"jsc.yaml":           "entry: src/main.tree.yaml\nmax_diagnostics: 1\nverbose: true\n",
		"src/main.tree.yaml": brokenMain,
		"src/lib.tree.yaml":  libTree,
	})
	code, _, stderr := runJSC("check", "-config", filepath.Join(dir, "jsc.yaml"))
	if code != exitDiagnostics {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr, "jsc: [test] loaded 2 file(s)") {
		t.Errorf("verbose log missing:\n%s", stderr)
	}
	if !strings.Contains(stderr, "error[R001]") {
		t.Errorf("diagnostic missing:\n%s", stderr)
	}
}

func TestCheckEnvironmentalErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.jsc": "let x = 1;", "bad.yaml": "color: sometimes\n"})
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing entry", []string{"check", filepath.Join(dir, "nope.tree.yaml")}, "reading entry"},
		{"bad color flag", []string{"check", "-color", "blue", filepath.Join(dir, "main.jsc")}, "-color must be"},
		{"bad project", []string{"check", "-config", filepath.Join(dir, "bad.yaml")}, "color must be one of"},
		{"too many entries", []string{"check", "a", "b"}, "at most one entry"},
		{"unknown command", []string{"build"}, `unknown command "build"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runJSC(tt.args...)
			if code != exitEnv {
				t.Fatalf("exit code %d, want %d; stderr:\n%s", code, exitEnv, stderr)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr missing %q:\n%s", tt.want, stderr)
			}
		})
	}
}

func TestCheckUnparsableEntry(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.jsc": "let x = 1;"})
	code, _, stderr := runJSC("check", filepath.Join(dir, "main.jsc"))
	if code != exitDiagnostics {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr, "error[L001]") || !strings.Contains(stderr, "no parser for file") {
		t.Errorf("unexpected output:\n%s", stderr)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runJSC("version")
	if code != exitOK || stdout != "jsc "+config.Version+"\n" {
		t.Errorf("version: code %d, output %q", code, stdout)
	}
}
