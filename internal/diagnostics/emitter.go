package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/jsc/internal/token"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when the emitter writes ANSI colour codes.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
)

// SupportsColor reports whether w is a colour-capable terminal.
func SupportsColor(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Emitter renders diagnostics with a window of source lines and a caret
// under the offending span.
type Emitter struct {
	w            io.Writer
	color        bool
	contextLines int
	baseDir      string
	limit        int
	sources      map[string][]byte
}

func NewEmitter(w io.Writer, mode ColorMode, contextLines int) *Emitter {
	color := mode == ColorAlways || (mode == ColorAuto && SupportsColor(w))
	if contextLines < 0 {
		contextLines = 0
	}
	return &Emitter{w: w, color: color, contextLines: contextLines, sources: make(map[string][]byte)}
}

// AddSource registers the text of path for rendering.
func (e *Emitter) AddSource(path string, src []byte) {
	if len(src) > 0 {
		e.sources[path] = src
	}
}

// SetLimit caps how many diagnostics EmitAll prints. Zero prints all.
func (e *Emitter) SetLimit(n int) {
	e.limit = max(n, 0)
}

// SetBaseDir makes printed paths relative to dir.
func (e *Emitter) SetBaseDir(dir string) {
	e.baseDir = dir
}

func (e *Emitter) paint(code, s string) string {
	if !e.color {
		return s
	}
	return code + s + ansiReset
}

func (e *Emitter) displayPath(path string) string {
	if e.baseDir == "" || path == "" {
		return path
	}
	if rel, err := filepath.Rel(e.baseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// Emit writes one diagnostic.
func (e *Emitter) Emit(d *DiagnosticError) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s%s\n", e.paint(ansiBold+ansiRed, fmt.Sprintf("error[%s]", d.Code)), e.paint(ansiBold, ": "+d.Message))

	src, ok := e.sources[d.File]
	if !ok {
		fmt.Fprintf(&buf, "  %s %s:%s\n", e.paint(ansiBlue, "-->"), e.displayPath(d.File), d.Span)
	} else {
		e.renderWindow(&buf, d, src)
	}
	if d.Hint != "" {
		fmt.Fprintf(&buf, "  %s %s\n", e.paint(ansiCyan, "= hint:"), d.Hint)
	}
	_, _ = e.w.Write(buf.Bytes())
}

// EmitAll writes every diagnostic in the bag followed by a summary line.
func (e *Emitter) EmitAll(bag *Bag) {
	all := bag.All()
	shown := all
	if e.limit > 0 && len(all) > e.limit {
		shown = all[:e.limit]
	}
	for _, d := range shown {
		e.Emit(d)
		fmt.Fprintln(e.w)
	}
	if hidden := len(all) - len(shown); hidden > 0 {
		fmt.Fprintf(e.w, "... %d more not shown\n", hidden)
	}
	if len(all) > 0 {
		fmt.Fprintf(e.w, "%s\n", e.paint(ansiBold+ansiRed, fmt.Sprintf("Checking failed with %d error(s)", len(all))))
	}
}

func (e *Emitter) renderWindow(buf *bytes.Buffer, d *DiagnosticError, src []byte) {
	lines := splitLines(src)
	line, col := Locate(src, d.Span.Start)
	fmt.Fprintf(buf, "  %s %s:%d:%d\n", e.paint(ansiBlue, "-->"), e.displayPath(d.File), line, col)

	first := max(1, line-e.contextLines)
	last := min(len(lines), line+e.contextLines)
	width := len(fmt.Sprintf("%d", last))
	gutter := strings.Repeat(" ", width)

	fmt.Fprintf(buf, "%s %s\n", gutter, e.paint(ansiBlue, "|"))
	for n := first; n <= last; n++ {
		fmt.Fprintf(buf, "%s %s %s\n", e.paint(ansiBlue, fmt.Sprintf("%*d", width, n)), e.paint(ansiBlue, "|"), lines[n-1])
		if n == line {
			length := caretLength(lines[n-1], col, d.Span)
			marker := strings.Repeat(" ", col-1) + strings.Repeat("^", length)
			fmt.Fprintf(buf, "%s %s %s\n", gutter, e.paint(ansiBlue, "|"), e.paint(ansiBold+ansiRed, marker))
		}
	}
}

func caretLength(lineText string, col int, span token.Span) int {
	n := span.Stop - span.Start
	if rest := len(lineText) - (col - 1); n > rest {
		n = rest
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Locate converts a byte offset to a 1-based line and column.
func Locate(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	line = 1 + bytes.Count(src[:offset], []byte{'\n'})
	lineStart := bytes.LastIndexByte(src[:offset], '\n') + 1
	return line, offset - lineStart + 1
}

func splitLines(src []byte) []string {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	return strings.Split(text, "\n")
}
