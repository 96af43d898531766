package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
)

const (
	mainPath = "/p/main.tree.yaml"
	modPath  = "/p/mod.tree.yaml"
	libPath  = "/p/lib.tree.yaml"
)

// fixture collects hand-built programs sharing one arena.
type fixture struct {
	b     *ast.Builder
	files map[string]*ast.Program
	order []string
}

func newFixture() *fixture {
	return &fixture{b: ast.NewBuilder(nil), files: make(map[string]*ast.Program)}
}

func (f *fixture) file(path, qualified string, stmts ...ast.Statement) *ast.Program {
	prog := f.b.Program(path, qualified, stmts...)
	f.files[path] = prog
	f.order = append(f.order, path)
	return prog
}

type result struct {
	diags    *diagnostics.Bag
	resolver *Resolver
	bindings *symbols.Bindings
	checker  *Checker
}

func (f *fixture) analyze() *result {
	diags := diagnostics.NewBag()
	r := NewResolver(f.files, diags)
	bindings := r.ResolveAll(f.order)
	c := NewChecker(f.files, bindings, diags)
	c.CheckAll(f.order)
	return &result{diags: diags, resolver: r, bindings: bindings, checker: c}
}

// analyzeMain runs both passes over a single file.
func analyzeMain(stmts func(b *ast.Builder) []ast.Statement) (*fixture, *result) {
	f := newFixture()
	f.file(mainPath, "main", stmts(f.b)...)
	return f, f.analyze()
}

func codes(diags *diagnostics.Bag) []diagnostics.ErrorCode {
	var out []diagnostics.ErrorCode
	for _, d := range diags.All() {
		out = append(out, d.Code)
	}
	return out
}

func expectNoErrors(t *testing.T, diags *diagnostics.Bag) {
	t.Helper()
	for _, d := range diags.All() {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

// expectCodes requires exactly the given codes, in diagnostic order.
func expectCodes(t *testing.T, diags *diagnostics.Bag, want ...diagnostics.ErrorCode) {
	t.Helper()
	got := codes(diags)
	if len(got) != len(want) {
		t.Fatalf("got codes %v, want %v\n%s", got, want, dump(diags))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got codes %v, want %v\n%s", got, want, dump(diags))
		}
	}
}

func countCode(diags *diagnostics.Bag, code diagnostics.ErrorCode) int {
	n := 0
	for _, d := range diags.All() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func dump(diags *diagnostics.Bag) string {
	var sb strings.Builder
	for _, d := range diags.All() {
		sb.WriteString(d.Error())
		if d.Hint != "" {
			sb.WriteString(" (hint: " + d.Hint + ")")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
