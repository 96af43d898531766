package ast

import (
	"strings"

	"github.com/funvibe/jsc/internal/token"
)

// Builder constructs arena-registered nodes with synthetic, strictly
// increasing spans, for trees written by hand in tests and fixtures.
type Builder struct {
	Arena *Arena
	pos   int
}

func NewBuilder(arena *Arena) *Builder {
	if arena == nil {
		arena = NewArena()
	}
	return &Builder{Arena: arena}
}

func (b *Builder) span(width int) token.Span {
	if width < 1 {
		width = 1
	}
	start := b.pos
	b.pos += width + 1
	return token.Span{Start: start, Stop: start + width}
}

func add[T Node](b *Builder, n T, width int) T {
	n = New(b.Arena, n)
	if n.GetSpan().IsZero() {
		if m, ok := any(n).(interface{ SetSpan(token.Span) }); ok {
			m.SetSpan(b.span(width))
		}
	}
	return n
}

func (b *Builder) Program(path, qualified string, stmts ...Statement) *Program {
	return add(b, &Program{Path: path, QualifiedName: qualified, Statements: stmts}, 1)
}

// Expressions

func (b *Builder) Ident(name string) *Identifier {
	return add(b, &Identifier{Value: name}, len(name))
}

func (b *Builder) Num(raw string) *NumberLiteral {
	return add(b, &NumberLiteral{Raw: raw}, len(raw))
}

func (b *Builder) Str(value string) *StringLiteral {
	return add(b, &StringLiteral{Value: value}, len(value)+2)
}

func (b *Builder) Bool(value bool) *BooleanLiteral {
	return add(b, &BooleanLiteral{Value: value}, 4)
}

func (b *Builder) Binary(op token.Operator, left, right Expression) *BinaryExpression {
	return add(b, &BinaryExpression{Operator: op, Left: left, Right: right}, len(op))
}

func (b *Builder) Unary(op token.Operator, operand Expression) *UnaryExpression {
	return add(b, &UnaryExpression{Operator: op, Operand: operand}, len(op))
}

// Assign builds `name = value`.
func (b *Builder) Assign(name string, value Expression) *AssignExpression {
	return b.AssignPattern(b.IdentPat(name), value)
}

func (b *Builder) AssignPattern(left Pattern, value Expression) *AssignExpression {
	return add(b, &AssignExpression{Left: left, Value: value}, 1)
}

func (b *Builder) Call(callee Expression, args ...Expression) *CallExpression {
	return add(b, &CallExpression{Callee: callee, Arguments: args}, 2)
}

func (b *Builder) TypeApp(expr Expression, typeArgs ...TypeAnnotation) *TypeApplicationExpression {
	return add(b, &TypeApplicationExpression{Expression: expr, TypeArgs: typeArgs}, 2)
}

func (b *Builder) Member(object Expression, property string) *MemberExpression {
	return add(b, &MemberExpression{Object: object, Property: b.Ident(property)}, 1)
}

func (b *Builder) Index(object, index Expression) *IndexExpression {
	return add(b, &IndexExpression{Object: object, Index: index}, 2)
}

func (b *Builder) FieldInit(name string, value Expression) *FieldInit {
	return add(b, &FieldInit{Name: b.Ident(name), Value: value}, len(name))
}

func (b *Builder) Construct(callee Expression, fields ...*FieldInit) *ConstructExpression {
	return add(b, &ConstructExpression{Callee: callee, Fields: fields}, 2)
}

func (b *Builder) Array(elems ...Expression) *ArrayLiteral {
	return add(b, &ArrayLiteral{Elements: elems}, 2)
}

// Types

func (b *Builder) Named(name string) *TypeName {
	return add(b, &TypeName{Name: b.Ident(name)}, len(name))
}

// Qualified builds Module.Member from "m.Member" or explicit segments.
func (b *Builder) Qualified(path string) *QualifiedTypeName {
	parts := strings.Split(path, ".")
	q := &QualifiedTypeName{Head: b.Ident(parts[0])}
	for _, p := range parts[1:] {
		q.Members = append(q.Members, b.Ident(p))
	}
	return add(b, q, len(path))
}

func (b *Builder) Ptr(elem TypeAnnotation) *PointerType {
	return add(b, &PointerType{Elem: elem}, 1)
}

func (b *Builder) MutPtr(elem TypeAnnotation) *PointerType {
	return add(b, &PointerType{Elem: elem, Mutable: true}, 4)
}

func (b *Builder) ArrayOf(elem TypeAnnotation, size string) *ArrayType {
	return add(b, &ArrayType{Elem: elem, Size: size}, len(size)+2)
}

func (b *Builder) FuncType(ret TypeAnnotation, params ...TypeAnnotation) *FunctionType {
	return add(b, &FunctionType{Params: params, Return: ret}, 2)
}

// Patterns

func (b *Builder) IdentPat(name string) *IdentifierPattern {
	return add(b, &IdentifierPattern{Name: b.Ident(name)}, len(name))
}

func (b *Builder) ObjectPat(names ...string) *ObjectPattern {
	p := &ObjectPattern{}
	for _, n := range names {
		p.Properties = append(p.Properties, add(b, &PropertyPattern{Key: b.Ident(n), Value: b.IdentPat(n)}, len(n)))
	}
	return add(b, p, 2)
}

func (b *Builder) ArrayPat(names ...string) *ArrayPattern {
	p := &ArrayPattern{}
	for _, n := range names {
		p.Elements = append(p.Elements, b.IdentPat(n))
	}
	return add(b, p, 2)
}

// Declarations and statements

func (b *Builder) Param(name string, typ TypeAnnotation) *Param {
	return b.ParamPattern(b.IdentPat(name), typ)
}

func (b *Builder) ParamPattern(pattern Pattern, typ TypeAnnotation) *Param {
	return add(b, &Param{Pattern: pattern, Type: typ}, 1)
}

func (b *Builder) Func(name string, params []*Param, ret TypeAnnotation, body ...Statement) *FunctionDeclaration {
	fn := &FunctionDeclaration{Name: b.Ident(name), Params: params, ReturnType: ret}
	fn.Body = b.Block(body...)
	return add(b, fn, len(name))
}

func (b *Builder) Let(name string, typ TypeAnnotation, init Expression) *VariableDeclaration {
	return b.LetPattern(b.IdentPat(name), typ, init)
}

func (b *Builder) Const(name string, typ TypeAnnotation, init Expression) *VariableDeclaration {
	decl := b.Let(name, typ, init)
	decl.Kind = VarConst
	return decl
}

func (b *Builder) LetPattern(pattern Pattern, typ TypeAnnotation, init Expression) *VariableDeclaration {
	d := add(b, &VarDeclarator{Pattern: pattern, Type: typ, Init: init}, 1)
	return add(b, &VariableDeclaration{Kind: VarLet, Declarators: []*VarDeclarator{d}}, 3)
}

func (b *Builder) Field(name string, typ TypeAnnotation) *Field {
	return add(b, &Field{Name: b.Ident(name), Type: typ}, len(name))
}

func (b *Builder) Struct(name string, fields ...*Field) *StructDeclaration {
	return add(b, &StructDeclaration{Name: b.Ident(name), Fields: fields}, len(name))
}

func (b *Builder) Union(name string, variants ...*Field) *UnionDeclaration {
	return add(b, &UnionDeclaration{Name: b.Ident(name), Variants: variants}, len(name))
}

func (b *Builder) Alias(name string, typ TypeAnnotation) *TypeAliasDeclaration {
	return add(b, &TypeAliasDeclaration{Name: b.Ident(name), Type: typ}, len(name))
}

func (b *Builder) ExternFunc(name string, params []*Param, ret TypeAnnotation, variadic bool) *ExternFunction {
	return add(b, &ExternFunction{Name: b.Ident(name), Params: params, ReturnType: ret, Variadic: variadic}, len(name))
}

func (b *Builder) ExternType(name string) *ExternType {
	return add(b, &ExternType{Name: b.Ident(name)}, len(name))
}

func (b *Builder) Block(stmts ...Statement) *BlockStatement {
	return add(b, &BlockStatement{Statements: stmts}, 2)
}

func (b *Builder) Expr(e Expression) *ExpressionStatement {
	return add(b, &ExpressionStatement{Expression: e}, 1)
}

func (b *Builder) Return(value Expression) *ReturnStatement {
	return add(b, &ReturnStatement{Value: value}, 6)
}

func (b *Builder) If(cond Expression, cons, alt Statement) *IfStatement {
	return add(b, &IfStatement{Condition: cond, Consequence: cons, Alternative: alt}, 2)
}

func (b *Builder) While(cond Expression, body Statement) *WhileStatement {
	return add(b, &WhileStatement{Condition: cond, Body: body}, 5)
}

func (b *Builder) For(init Statement, cond, update Expression, body Statement) *ForStatement {
	return add(b, &ForStatement{Init: init, Condition: cond, Update: update, Body: body}, 3)
}

func (b *Builder) Break() *BreakStatement {
	return add(b, &BreakStatement{}, 5)
}

func (b *Builder) Continue() *ContinueStatement {
	return add(b, &ContinueStatement{}, 8)
}

// Import builds a named import. Each name is "a" or "a as b".
func (b *Builder) Import(path string, names ...string) *ImportStatement {
	imp := &ImportStatement{Path: b.Str(path)}
	for _, n := range names {
		spec := &ImportSpecifier{}
		if orig, alias, ok := strings.Cut(n, " as "); ok {
			spec.Name = b.Ident(strings.TrimSpace(orig))
			spec.Alias = b.Ident(strings.TrimSpace(alias))
		} else {
			spec.Name = b.Ident(n)
		}
		imp.Names = append(imp.Names, add(b, spec, len(n)))
	}
	return add(b, imp, 6)
}

// ImportNamespace builds `import * as ns from path`.
func (b *Builder) ImportNamespace(path, ns string) *ImportStatement {
	return add(b, &ImportStatement{Path: b.Str(path), Namespace: b.Ident(ns)}, 6)
}

// Export marks a declaration statement as exported and returns it.
func Export[T Statement](stmt T) T {
	switch s := any(stmt).(type) {
	case *FunctionDeclaration:
		s.Exported = true
	case *VariableDeclaration:
		s.Exported = true
	case *StructDeclaration:
		s.Exported = true
	case *UnionDeclaration:
		s.Exported = true
	case *TypeAliasDeclaration:
		s.Exported = true
	case *ExternFunction:
		s.Exported = true
	case *ExternType:
		s.Exported = true
	}
	return stmt
}
