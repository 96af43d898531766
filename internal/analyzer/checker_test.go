package analyzer

import (
	"testing"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/token"
	"github.com/funvibe/jsc/internal/typesystem"
)

func pointStruct(b *ast.Builder) *ast.StructDeclaration {
	return b.Struct("P", b.Field("x", b.Named("u32")), b.Field("y", b.Named("u32")))
}

func u32(b *ast.Builder) ast.TypeAnnotation { return b.Named("u32") }

func TestCheckerDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		stmts func(b *ast.Builder) []ast.Statement
		want  []diagnostics.ErrorCode
	}{
		{
			name: "mismatch",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Let("s", b.Ptr(b.Named("u8")), b.Bool(true))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC001},
		},
		{
			name: "parameter without type",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Func("g", []*ast.Param{b.Param("a", nil)}, b.Named("void"))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC002},
		},
		{
			name: "function without return type",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Func("h", nil, nil)}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC003},
		},
		{
			name: "loose equality",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Let("e", b.Named("boolean"), b.Binary(token.EQ, b.Num("1"), b.Num("1")))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC004},
		},
		{
			name: "arithmetic on strings",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Let("s", nil, b.Binary(token.PLUS, b.Str("a"), b.Str("b")))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC005},
		},
		{
			name: "negated boolean",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Expr(b.Unary(token.MINUS, b.Bool(true)))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC005},
		},
		{
			name: "number for a pointer",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Let("p", b.Ptr(b.Named("u8")), b.Num("1"))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC006},
		},
		{
			name: "destructuring declaration",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.LetPattern(b.ObjectPat("a", "b"), nil, nil)}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC007},
		},
		{
			name: "destructuring parameter",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Func("d", []*ast.Param{b.ParamPattern(b.ArrayPat("a"), u32(b))}, b.Named("void"))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC007},
		},
		{
			name: "call of a number",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("n", u32(b), b.Num("1")),
					b.Expr(b.Call(b.Ident("n"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC008},
		},
		{
			name: "assignment to const",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Const("k", u32(b), b.Num("1")),
					b.Expr(b.Assign("k", b.Num("2"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC010},
		},
		{
			name: "break outside loop",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Break(), b.Continue()}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC011, diagnostics.ErrC011},
		},
		{
			name: "loop does not reach into nested function",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.While(b.Bool(true), b.Block(
						b.Func("inner", nil, b.Named("void"), b.Break()),
					)),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC011},
		},
		{
			name: "literal out of range",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("small", b.Named("u8"), b.Num("300")),
					b.Let("whole", u32(b), b.Num("1.5")),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC012, diagnostics.ErrC012},
		},
		{
			name: "literal arithmetic against non-numeric types",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("flag", b.Named("boolean"), b.Binary(token.PLUS, b.Num("1"), b.Num("2"))),
					b.Let("ptr", b.Ptr(b.Named("u8")), b.Unary(token.MINUS, b.Num("5"))),
					b.Let("nested", b.Named("boolean"), b.Unary(token.MINUS, b.Binary(token.ASTERISK, b.Num("2"), b.Num("3")))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC006, diagnostics.ErrC006, diagnostics.ErrC006},
		},
		{
			name: "negative literal for unsigned type",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("a", b.Named("u8"), b.Unary(token.MINUS, b.Num("1"))),
					b.Let("b", b.Named("i8"), b.Unary(token.MINUS, b.Num("129"))),
					b.Let("c", b.Named("u8"), b.Binary(token.ASTERISK, b.Num("2"), b.Unary(token.MINUS, b.Num("1")))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC012, diagnostics.ErrC012, diagnostics.ErrC012},
		},
		{
			name: "argument count",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Func("one", []*ast.Param{b.Param("a", u32(b))}, b.Named("void")),
					b.Expr(b.Call(b.Ident("one"))),
					b.Expr(b.Call(b.Ident("one"), b.Num("1"), b.Num("2"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC013, diagnostics.ErrC013},
		},
		{
			name: "variadic extern accepts extra arguments",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.ExternFunc("printf", []*ast.Param{b.Param("fmt", b.Ptr(b.Named("u8")))}, b.Named("i32"), true),
					b.Expr(b.Call(b.Ident("printf"), b.Str("%d %d"), b.Num("1"), b.Num("2"))),
					b.Expr(b.Call(b.Ident("printf"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC013},
		},
		{
			name: "type argument count",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Expr(b.Call(b.TypeApp(b.Ident("sizeof"), u32(b), b.Named("u8"))))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC014},
		},
		{
			name: "type application of non-generic",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("n", u32(b), b.Num("1")),
					b.Expr(b.TypeApp(b.Ident("n"), u32(b))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC015},
		},
		{
			name: "unknown property",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					pointStruct(b),
					b.Let("p", b.Named("P"), b.Construct(b.Ident("P"), b.FieldInit("x", b.Num("1")), b.FieldInit("y", b.Num("2")))),
					b.Expr(b.Member(b.Ident("p"), "z")),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC016},
		},
		{
			name: "property of a number",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("n", u32(b), b.Num("1")),
					b.Expr(b.Member(b.Ident("n"), "len")),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC016},
		},
		{
			name: "assignment to a pattern",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("a", u32(b), b.Num("1")),
					b.Expr(b.AssignPattern(b.ArrayPat("a"), b.Num("2"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC018},
		},
		{
			name: "assignment to a function",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Func("fn", nil, b.Named("void")),
					b.Expr(b.Assign("fn", b.Num("2"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC018},
		},
		{
			name: "missing struct field",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					pointStruct(b),
					b.Expr(b.Construct(b.Ident("P"), b.FieldInit("x", b.Num("1")))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC019},
		},
		{
			name: "unknown struct field",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					pointStruct(b),
					b.Expr(b.Construct(b.Ident("P"),
						b.FieldInit("x", b.Num("1")), b.FieldInit("y", b.Num("2")), b.FieldInit("z", b.Num("3")))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC020},
		},
		{
			name: "repeated struct field",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					pointStruct(b),
					b.Expr(b.Construct(b.Ident("P"),
						b.FieldInit("x", b.Num("1")), b.FieldInit("x", b.Num("2")), b.FieldInit("y", b.Num("3")))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC021},
		},
		{
			name: "union with two variants set",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Union("U", b.Field("a", u32(b)), b.Field("b", b.Named("f64"))),
					b.Let("u", b.Named("U"), b.Construct(b.Ident("U"), b.FieldInit("a", b.Num("1")), b.FieldInit("b", b.Num("2.0")))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC022},
		},
		{
			name: "array literal length",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Let("arr", b.ArrayOf(u32(b), "3"), b.Array(b.Num("1"), b.Num("2")))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC023},
		},
		{
			name: "index of a number",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("n", u32(b), b.Num("1")),
					b.Expr(b.Index(b.Ident("n"), b.Num("0"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC024},
		},
		{
			name: "index by a boolean",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("arr", b.ArrayOf(u32(b), "2"), b.Array(b.Num("1"), b.Num("2"))),
					b.Expr(b.Index(b.Ident("arr"), b.Bool(true))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC001},
		},
		{
			name: "invalid array size",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Let("arr", b.ArrayOf(u32(b), "many"), nil)}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC025},
		},
		{
			name: "construct a number",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("n", u32(b), b.Num("1")),
					b.Expr(b.Construct(b.Ident("n"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC026},
		},
		{
			name: "dereference a number",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{
					b.Let("n", u32(b), b.Num("1")),
					b.Expr(b.Unary(token.ASTERISK, b.Ident("n"))),
				}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC027},
		},
		{
			name: "address of a literal",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Expr(b.Unary(token.AMP, b.Num("1")))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC028},
		},
		{
			name: "duplicate field",
			stmts: func(b *ast.Builder) []ast.Statement {
				return []ast.Statement{b.Struct("D", b.Field("a", u32(b)), b.Field("a", b.Named("u8")))}
			},
			want: []diagnostics.ErrorCode{diagnostics.ErrC030},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := analyzeMain(tt.stmts)
			expectCodes(t, res.diags, tt.want...)
		})
	}
}

func TestCheckerAcceptsWellTypedProgram(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		return []ast.Statement{
			b.Struct("Node", b.Field("next", b.MutPtr(b.Named("Node"))), b.Field("value", u32(b))),
			b.Alias("Bytes", b.ArrayOf(b.Named("u8"), "4")),
			b.ExternType("FILE"),
			b.ExternFunc("fopen", []*ast.Param{b.Param("path", b.Ptr(b.Named("u8")))}, b.MutPtr(b.Named("FILE")), false),
			b.Func("sum", []*ast.Param{b.Param("n", b.Ptr(b.Named("Node")))}, u32(b),
				b.Let("total", u32(b), b.Num("0")),
				b.Let("buf", b.Named("Bytes"), b.Array(b.Num("1"), b.Num("2"), b.Num("3"), b.Num("4"))),
				b.Let("first", b.Named("u8"), b.Index(b.Ident("buf"), b.Num("0"))),
				b.Let("f", b.MutPtr(b.Named("FILE")), b.Call(b.Ident("fopen"), b.Str("/tmp/x"))),
				b.Let("size", b.Named("usize"), b.Call(b.TypeApp(b.Ident("sizeof"), b.Named("Node")))),
				b.Let("neg", b.Named("i64"), b.Unary(token.MINUS, b.Num("5"))),
				b.Let("ratio", b.Named("f64"), b.Binary(token.ASTERISK, b.Num("2"), b.Num("0.5"))),
				b.Let("ok", b.Named("boolean"), b.Binary(token.AND,
					b.Unary(token.BANG, b.Bool(false)),
					b.Binary(token.GTE, b.Member(b.Ident("n"), "value"), b.Num("1")))),
				b.Let("here", b.Ptr(u32(b)), b.Unary(token.AMP, b.Ident("total"))),
				b.While(b.Ident("ok"), b.Block(
					b.Expr(b.Assign("total", b.Binary(token.PLUS, b.Ident("total"), b.Unary(token.ASTERISK, b.Ident("here"))))),
					b.Break(),
				)),
				b.Return(b.Ident("total")),
			),
		}
	})
	expectNoErrors(t, res.diags)
}

func TestCheckerInfersUnannotatedVariables(t *testing.T) {
	var arr, str, flag *ast.VariableDeclaration
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		arr = b.Let("a", nil, b.Array(b.Num("1"), b.Ident("x"), b.Num("3")))
		str = b.Let("s", nil, b.Str("hi"))
		flag = b.Let("f", nil, b.Binary(token.STRICT_EQ, b.Ident("x"), b.Num("2")))
		return []ast.Statement{b.Let("x", b.Named("i16"), b.Num("7")), arr, str, flag}
	})
	expectNoErrors(t, res.diags)

	tests := []struct {
		decl *ast.VariableDeclaration
		want typesystem.Type
	}{
		{arr, typesystem.TArray{Elem: typesystem.I16, Size: 3}},
		{str, typesystem.TPtr{Elem: typesystem.U8}},
		{flag, typesystem.Boolean},
	}
	for _, tt := range tests {
		got := res.checker.VarDecls[tt.decl.NodeID()]
		if len(got) != 1 || !typesystem.Equal(got[0].Type, tt.want) {
			t.Errorf("%s: got %+v, want %s", tt.decl.Declarators[0].Pattern.(*ast.IdentifierPattern).Name.Value, got, tt.want)
		}
	}
}

func TestCheckerLooseEqualityHint(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		return []ast.Statement{b.Expr(b.Binary(token.NOT_EQ, b.Bool(true), b.Bool(false)))}
	})
	expectCodes(t, res.diags, diagnostics.ErrC004)
	if hint := res.diags.All()[0].Hint; hint != "use `!==` instead" {
		t.Errorf("hint = %q", hint)
	}
}

func TestCheckerUnknownFieldHint(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		return []ast.Statement{
			pointStruct(b),
			b.Let("p", b.Ptr(b.Named("P")), nil),
			b.Expr(b.Member(b.Ident("p"), "w")),
		}
	})
	expectCodes(t, res.diags, diagnostics.ErrC016)
	if hint := res.diags.All()[0].Hint; hint != "available fields: x, y" {
		t.Errorf("hint = %q", hint)
	}
}

func TestCheckerAliasCycle(t *testing.T) {
	var use *ast.TypeName
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		use = b.Named("A")
		return []ast.Statement{
			b.Alias("A", b.Named("B")),
			b.Alias("B", b.Named("A")),
			b.Let("v", use, b.Num("1")),
			b.Let("w", b.Named("B"), b.Bool(true)),
		}
	})
	expectCodes(t, res.diags, diagnostics.ErrC017)
	if ty, _ := res.checker.TypeOf(use.NodeID()); !typesystem.IsError(ty) {
		t.Errorf("use of a cyclic alias has type %v, want error", ty)
	}
}

func TestCheckerReportsSignatureOnce(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		stmts := []ast.Statement{
			b.Func("g", []*ast.Param{b.Param("a", nil)}, nil),
			b.Let("bad", u32(b), b.Bool(true)),
		}
		for i := 0; i < 3; i++ {
			stmts = append(stmts,
				b.Expr(b.Call(b.Ident("g"), b.Num("1"))),
				b.Expr(b.Binary(token.PLUS, b.Ident("bad"), b.Num("1"))),
			)
		}
		return stmts
	})
	if n := countCode(res.diags, diagnostics.ErrC002); n != 1 {
		t.Errorf("C002 reported %d times", n)
	}
	if n := countCode(res.diags, diagnostics.ErrC003); n != 1 {
		t.Errorf("C003 reported %d times", n)
	}
	if n := countCode(res.diags, diagnostics.ErrC001); n != 1 {
		t.Errorf("C001 reported %d times\n%s", n, dump(res.diags))
	}
	if res.diags.Len() != 3 {
		t.Errorf("unexpected diagnostics:\n%s", dump(res.diags))
	}
}

func TestCheckerPoisonContainment(t *testing.T) {
	var good *ast.CallExpression
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		good = b.Call(b.Ident("add"), b.Ident("missing"), b.Num("1"))
		return []ast.Statement{
			b.Func("add", []*ast.Param{b.Param("a", u32(b)), b.Param("b", u32(b))}, u32(b),
				b.Return(b.Binary(token.PLUS, b.Ident("a"), b.Ident("b")))),
			b.Let("r", u32(b), good),
			b.Let("s", u32(b), b.Binary(token.ASTERISK, b.Ident("r"), b.Num("2"))),
			b.Let("t", u32(b), b.Binary(token.PLUS, b.Ident("missing"), b.Ident("r"))),
		}
	})
	// One unbound variable per use, nothing else.
	expectCodes(t, res.diags, diagnostics.ErrR001, diagnostics.ErrR001)
	if ty, _ := res.checker.TypeOf(good.NodeID()); !typesystem.Equal(ty, typesystem.U32) {
		t.Errorf("call with a poisoned argument has type %v, want u32", ty)
	}
}

func TestCheckerDiagnosticsInDeclaringFile(t *testing.T) {
	f := newFixture()
	b := f.b
	f.file(mainPath, "main",
		b.ImportNamespace("./mod", "m"),
		b.Expr(b.Call(b.Member(b.Ident("m"), "bad"), b.Num("1"))),
		b.Let("v", nil, b.Ident("m")),
	)
	f.file(modPath, "mod",
		ast.Export(b.Func("bad", []*ast.Param{b.Param("a", nil)}, b.Named("void"))),
	)
	res := f.analyze()

	all := res.diags.All()
	if len(all) != 2 {
		t.Fatalf("got:\n%s", dump(res.diags))
	}
	if all[0].File != mainPath || all[0].Code != diagnostics.ErrC029 {
		t.Errorf("first diagnostic = %v", all[0])
	}
	if all[1].File != modPath || all[1].Code != diagnostics.ErrC002 {
		t.Errorf("second diagnostic = %v", all[1])
	}
}

func TestCheckerQualifiedComposite(t *testing.T) {
	var construct *ast.ConstructExpression
	_, res := namespaceFixture(func(b *ast.Builder) []ast.Statement {
		construct = b.Construct(b.Member(b.Ident("m"), "Widget"), b.FieldInit("id", b.Num("9")))
		return []ast.Statement{b.Let("w", b.Qualified("m.Widget"), construct)}
	})
	expectNoErrors(t, res.diags)
	ty, _ := res.checker.TypeOf(construct.NodeID())
	st, ok := ty.(typesystem.TStruct)
	if !ok || st.QualifiedName != "mod.Widget" {
		t.Errorf("construct has type %v, want mod.Widget", ty)
	}
}

func TestCheckerReturnTypes(t *testing.T) {
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		return []ast.Statement{
			b.Func("v", nil, b.Named("void"), b.Return(nil)),
			b.Func("w", nil, u32(b), b.Return(nil)),
			b.Func("x", nil, u32(b), b.Return(b.Bool(true))),
		}
	})
	expectCodes(t, res.diags, diagnostics.ErrC001, diagnostics.ErrC001)
}

func TestCheckerRecordsAssignmentTarget(t *testing.T) {
	var assign *ast.AssignExpression
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		assign = b.Assign("n", b.Num("4"))
		return []ast.Statement{b.Let("n", b.Named("i8"), nil), b.Expr(assign)}
	})
	expectNoErrors(t, res.diags)
	name := assign.Left.(*ast.IdentifierPattern).Name
	if ty, _ := res.checker.TypeOf(name.NodeID()); !typesystem.Equal(ty, typesystem.I8) {
		t.Errorf("assignment target has type %v", ty)
	}
	if _, ok := res.bindings.Values[name.NodeID()].(*symbols.VarDecl); !ok {
		t.Errorf("assignment target is not bound")
	}
}

func TestCheckerLiteralArithmetic(t *testing.T) {
	var sum *ast.BinaryExpression
	var flag, low *ast.VariableDeclaration
	_, res := analyzeMain(func(b *ast.Builder) []ast.Statement {
		sum = b.Binary(token.PLUS, b.Num("1"), b.Num("2"))
		flag = b.Let("flag", b.Named("boolean"), sum)
		low = b.Let("low", b.Named("i8"), b.Unary(token.MINUS, b.Num("128")))
		return []ast.Statement{
			flag,
			low,
			b.Let("wide", b.Named("i64"), b.Unary(token.MINUS, b.Num("9223372036854775808"))),
			b.Let("zero", b.Named("u8"), b.Unary(token.MINUS, b.Num("0"))),
			b.Let("half", b.Named("f32"), b.Unary(token.MINUS, b.Num("0.5"))),
			b.Let("under", b.Named("i8"), b.Unary(token.MINUS, b.Num("129"))),
		}
	})

	expectCodes(t, res.diags, diagnostics.ErrC006, diagnostics.ErrC012)
	all := res.diags.All()
	if all[0].Message != "Expected a boolean" {
		t.Errorf("message = %q", all[0].Message)
	}
	if all[1].Message != "Number literal -129 does not fit in i8" {
		t.Errorf("message = %q", all[1].Message)
	}
	if ty, _ := res.checker.TypeOf(sum.NodeID()); !typesystem.IsError(ty) {
		t.Errorf("1 + 2 against boolean has type %v, want error", ty)
	}
	if vars := res.checker.VarDecls[flag.NodeID()]; len(vars) != 1 || !typesystem.Equal(vars[0].Type, typesystem.Boolean) {
		t.Errorf("flag declared as %+v", vars)
	}
	if vars := res.checker.VarDecls[low.NodeID()]; len(vars) != 1 || !typesystem.Equal(vars[0].Type, typesystem.I8) {
		t.Errorf("low declared as %+v", vars)
	}
}
