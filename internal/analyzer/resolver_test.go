package analyzer

import (
	"testing"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/token"
)

func TestResolveNamedImports(t *testing.T) {
	f := newFixture()
	b := f.b
	helperUse := b.Ident("helper")
	ptType := b.Named("Pt")
	f.file(mainPath, "main",
		b.Import("./lib", "helper", "Point as Pt"),
		b.Let("p", ptType, b.Construct(b.Ident("Pt"), b.FieldInit("x", b.Num("1")))),
		b.Let("h", b.Named("u32"), b.Call(helperUse)),
	)
	f.file(libPath, "lib",
		ast.Export(b.Func("helper", nil, b.Named("u32"), b.Return(b.Num("7")))),
		ast.Export(b.Struct("Point", b.Field("x", b.Named("u32")))),
	)
	res := f.analyze()

	expectNoErrors(t, res.diags)
	fn, ok := res.bindings.Values[helperUse.NodeID()].(*symbols.FuncDecl)
	if !ok || fn.QualifiedName() != "lib.helper" {
		t.Errorf("helper bound to %#v", res.bindings.Values[helperUse.NodeID()])
	}
	st, ok := res.bindings.Types[ptType.Name.NodeID()].(*symbols.StructDecl)
	if !ok || st.QualifiedName() != "lib.Point" {
		t.Errorf("Pt bound to %#v", res.bindings.Types[ptType.Name.NodeID()])
	}
}

func TestResolveImportErrors(t *testing.T) {
	f := newFixture()
	b := f.b
	f.file(mainPath, "main",
		b.Import("./lib", "secret", "absent"),
		// Poisoned names are not reported again.
		b.Expr(b.Call(b.Ident("secret"))),
		b.Expr(b.Ident("absent")),
	)
	f.file(libPath, "lib",
		b.Let("secret", b.Named("u32"), b.Num("1")),
		ast.Export(b.Let("shared", b.Named("u32"), b.Num("2"))),
	)
	res := f.analyze()

	expectCodes(t, res.diags, diagnostics.ErrR006, diagnostics.ErrR007)
	missing := res.diags.All()[1]
	if missing.Hint != "available members: shared" {
		t.Errorf("hint = %q", missing.Hint)
	}
}

func TestResolveCyclicImports(t *testing.T) {
	f := newFixture()
	b := f.b
	bUse := b.Ident("bv")
	aPath, bPath := "/p/a.tree.yaml", "/p/b.tree.yaml"
	f.file(aPath, "a",
		b.Import("./b", "bv"),
		ast.Export(b.Let("av", b.Named("u32"), b.Num("1"))),
		b.Let("sum", b.Named("u32"), b.Binary(token.PLUS, bUse, b.Num("1"))),
	)
	f.file(bPath, "b",
		b.Import("./a", "av"),
		ast.Export(b.Let("bv", b.Named("u32"), b.Ident("av"))),
	)
	res := f.analyze()

	expectNoErrors(t, res.diags)
	if _, ok := res.bindings.Values[bUse.NodeID()].(*symbols.VarDecl); !ok {
		t.Errorf("bv is not bound across the cycle")
	}
	for _, path := range []string{aPath, bPath} {
		if fs := res.bindings.Scopes[path]; fs == nil || !fs.Complete {
			t.Errorf("file scope of %s is not complete", path)
		}
	}
}

func TestResolveQualifiedTypes(t *testing.T) {
	var widget *ast.QualifiedTypeName
	_, res := namespaceFixture(func(b *ast.Builder) []ast.Statement {
		widget = b.Qualified("m.Widget")
		return []ast.Statement{
			b.Let("w", widget, nil),
			b.Let("n", b.Named("u32"), b.Num("1")),
			b.Let("a", b.Qualified("m.Hidden"), nil),
			b.Let("c", b.Qualified("m.Gone"), nil),
			b.Let("d", b.Qualified("n.T"), nil),
			b.Let("e", b.Qualified("m.Widget.Inner"), nil),
			b.Let("g", b.Qualified("nowhere.T"), nil),
		}
	})

	expectCodes(t, res.diags,
		diagnostics.ErrR006, diagnostics.ErrR007, diagnostics.ErrR003, diagnostics.ErrR004, diagnostics.ErrR001)
	if _, ok := res.bindings.Types[widget.NodeID()].(*symbols.StructDecl); !ok {
		t.Errorf("m.Widget is not bound to the struct")
	}
	if _, ok := res.bindings.Values[widget.Head.NodeID()].(*symbols.ModuleDecl); !ok {
		t.Errorf("m is not bound to the module")
	}
}

func TestResolveUnboundType(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		return []ast.Statement{b.Let("x", b.Ptr(b.Named("Missing")), nil)}
	})
	expectCodes(t, res.diags, diagnostics.ErrR002)
}

func TestResolveDuplicateBindings(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		return []ast.Statement{
			b.Let("a", b.Named("u32"), b.Num("1")),
			b.Let("a", b.Named("u32"), b.Num("2")),
			// Function locals share the parameters' scope.
			b.Func("k", []*ast.Param{b.Param("p", b.Named("u32"))}, b.Named("void"),
				b.Let("p", b.Named("u32"), b.Num("3")),
				// A nested block may shadow.
				b.Block(b.Let("p", b.Named("u32"), b.Num("4"))),
			),
		}
	})
	expectCodes(t, res.diags, diagnostics.ErrR008, diagnostics.ErrR008)
}

func TestResolveDuplicateKeepsFirst(t *testing.T) {
	var first *ast.VariableDeclaration
	var use *ast.Identifier
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		first = b.Let("a", b.Named("u32"), b.Num("1"))
		use = b.Ident("a")
		return []ast.Statement{first, b.Let("a", b.Named("boolean"), b.Bool(true)), b.Expr(use)}
	})
	expectCodes(t, res.diags, diagnostics.ErrR008)
	d, ok := res.bindings.Values[use.NodeID()].(*symbols.VarDecl)
	if !ok || d.Stmt != first {
		t.Errorf("use of a is not bound to the first declaration")
	}
}

func TestResolveStatementPlacement(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		return []ast.Statement{
			b.Return(nil),
			b.Func("f", nil, b.Named("void"), b.Import("./lib", "x")),
		}
	})
	expectCodes(t, res.diags, diagnostics.ErrR009, diagnostics.ErrR010)
}

func TestResolveReturnsToEnclosingFunction(t *testing.T) {
	var inner, outer *ast.ReturnStatement
	var fn *ast.FunctionDeclaration
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		inner = b.Return(b.Num("1"))
		outer = b.Return(b.Num("2"))
		fn = b.Func("f", nil, b.Named("u32"),
			b.If(b.Bool(true), b.Block(inner), nil),
			outer,
		)
		return []ast.Statement{fn}
	})
	expectNoErrors(t, res.diags)
	for _, ret := range []*ast.ReturnStatement{inner, outer} {
		if res.bindings.Returns[ret.NodeID()] != fn {
			t.Errorf("return %d is not matched to f", ret.NodeID())
		}
	}
}

func TestResolveScopeBalance(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		i := func() ast.Expression { return b.Ident("i") }
		return []ast.Statement{
			b.Func("loop", []*ast.Param{b.Param("n", b.Named("u32"))}, b.Named("void"),
				b.For(
					b.Let("i", b.Named("u32"), b.Num("0")),
					b.Binary(token.LT, i(), b.Ident("n")),
					b.Assign("i", b.Binary(token.PLUS, i(), b.Num("1"))),
					b.Block(
						b.If(b.Binary(token.STRICT_EQ, i(), b.Num("3")), b.Block(b.Continue()), b.Block(b.Break())),
					),
				),
				b.While(b.Bool(false), b.Block(b.Block())),
			),
		}
	})

	expectNoErrors(t, res.diags)
	pushes, pops := res.resolver.stack.Counts()
	// file, function, for, for body, then, else, while body, nested block
	if pushes != 8 || pops != pushes {
		t.Errorf("pushes = %d, pops = %d", pushes, pops)
	}
	if depth := res.resolver.stack.Depth(); depth != 1 {
		t.Errorf("stack depth after resolution = %d", depth)
	}
}

func TestResolveDeterministic(t *testing.T) {
	build := func() (*fixture, *result) {
		return namespaceFixture(func(b *ast.Builder) []ast.Statement {
			return []ast.Statement{
				b.Expr(b.Ident("nope")),
				b.Let("w", b.Qualified("m.Gone"), nil),
				b.Let("x", b.Named("boolean"), b.Num("1")),
				b.Expr(b.Call(b.Member(b.Ident("m"), "private_helper"))),
			}
		})
	}
	_, first := build()
	_, second := build()

	a, b := first.diags.All(), second.diags.All()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Error() != b[i].Error() || a[i].Hint != b[i].Hint {
			t.Errorf("diagnostic %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	if len(first.bindings.Values) != len(second.bindings.Values) {
		t.Errorf("binding counts differ")
	}
	for id, decl := range first.bindings.Values {
		other, ok := second.bindings.Values[id]
		if !ok || other.DeclName() != decl.DeclName() {
			t.Errorf("binding of node %d differs", id)
		}
	}
	if len(first.checker.ExprTypes) != len(second.checker.ExprTypes) {
		t.Errorf("expression type counts differ")
	}
	for id, ty := range first.checker.ExprTypes {
		if other := second.checker.ExprTypes[id]; other == nil || other.String() != ty.String() {
			t.Errorf("type of node %d differs: %v vs %v", id, ty, other)
		}
	}
}
