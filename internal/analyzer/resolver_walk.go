package analyzer

import (
	"strings"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
)

func (r *Resolver) resolveStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.ImportStatement:
		r.addError(r.file, s, diagnostics.ErrR010)

	case *ast.FunctionDeclaration:
		r.resolveFunction(s)

	case *ast.VariableDeclaration:
		for _, d := range s.Declarators {
			r.resolveType(d.Type)
			r.resolveExpression(d.Init)
		}

	case *ast.StructDeclaration:
		for _, f := range s.Fields {
			r.resolveType(f.Type)
		}
	case *ast.UnionDeclaration:
		for _, f := range s.Variants {
			r.resolveType(f.Type)
		}
	case *ast.TypeAliasDeclaration:
		r.resolveType(s.Type)
	case *ast.ExternFunction:
		for _, p := range s.Params {
			r.resolveType(p.Type)
		}
		r.resolveType(s.ReturnType)
	case *ast.ExternType:

	case *ast.BlockStatement:
		r.withScope(r.blockTable(s.Statements), func() {
			r.resolveStatements(s.Statements)
		})

	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)

	case *ast.ReturnStatement:
		if r.function == nil {
			r.addError(r.file, s, diagnostics.ErrR009)
		} else {
			r.bindings.Returns[s.NodeID()] = r.function
		}
		r.resolveExpression(s.Value)

	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Consequence)
		r.resolveStatement(s.Alternative)

	case *ast.WhileStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)

	case *ast.ForStatement:
		var init []ast.Statement
		if s.Init != nil {
			init = []ast.Statement{s.Init}
		}
		r.withScope(r.blockTable(init), func() {
			r.resolveStatement(s.Init)
			r.resolveExpression(s.Condition)
			r.resolveExpression(s.Update)
			r.resolveStatement(s.Body)
		})

	case *ast.BreakStatement, *ast.ContinueStatement:

	default:
		panic(unhandledNode("resolver", stmt))
	}
}

// resolveFunction pushes one scope holding the parameters and the body's
// top-level declarations. The body block does not get a scope of its own.
func (r *Resolver) resolveFunction(fn *ast.FunctionDeclaration) {
	prev := r.function
	r.function = fn
	r.withScope(r.functionTable(fn), func() {
		for _, p := range fn.Params {
			r.resolveType(p.Type)
		}
		r.resolveType(fn.ReturnType)
		if fn.Body != nil {
			r.resolveStatements(fn.Body.Statements)
		}
	})
	r.function = prev
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case nil:
	case *ast.Identifier:
		r.lookupValue(e)
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral:

	case *ast.BinaryExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.UnaryExpression:
		r.resolveExpression(e.Operand)

	case *ast.AssignExpression:
		for _, name := range ast.BindingNames(e.Left) {
			r.lookupValue(name)
		}
		r.resolveExpression(e.Value)

	case *ast.CallExpression:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.TypeApplicationExpression:
		r.resolveExpression(e.Expression)
		for _, t := range e.TypeArgs {
			r.resolveType(t)
		}

	case *ast.MemberExpression:
		// Properties are looked up by the checker, on the object's type.
		r.resolveExpression(e.Object)
	case *ast.IndexExpression:
		r.resolveExpression(e.Object)
		r.resolveExpression(e.Index)

	case *ast.ConstructExpression:
		r.resolveExpression(e.Callee)
		for _, f := range e.Fields {
			r.resolveExpression(f.Value)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			r.resolveExpression(el)
		}

	default:
		panic(unhandledNode("resolver", expr))
	}
}

func (r *Resolver) resolveType(t ast.TypeAnnotation) {
	switch a := t.(type) {
	case nil:
	case *ast.TypeName:
		r.lookupType(a.Name)
	case *ast.QualifiedTypeName:
		r.resolveQualified(a)
	case *ast.PointerType:
		r.resolveType(a.Elem)
	case *ast.ArrayType:
		r.resolveType(a.Elem)
	case *ast.FunctionType:
		for _, p := range a.Params {
			r.resolveType(p)
		}
		r.resolveType(a.Return)
	default:
		panic(unhandledNode("resolver", t))
	}
}

// resolveQualified binds Module.Member: the head must name a namespace
// import and exactly one member must follow.
func (r *Resolver) resolveQualified(q *ast.QualifiedTypeName) {
	head := q.Head
	decl, ok := r.stack.LookupValue(head.Value)
	if !ok {
		if !r.scope.Poisoned[head.Value] {
			r.addError(r.file, head, diagnostics.ErrR001, head.Value)
		}
		return
	}
	r.bindings.Values[head.NodeID()] = decl

	module, ok := decl.(*symbols.ModuleDecl)
	if !ok {
		r.addError(r.file, head, diagnostics.ErrR003, head.Value)
		return
	}
	if len(q.Members) != 1 {
		r.addError(r.file, q, diagnostics.ErrR004, head.Value)
		return
	}

	member := q.Members[0]
	typ, vis := module.LookupType(member.Value)
	switch vis {
	case symbols.Exported:
		r.bindings.Types[q.NodeID()] = typ
	case symbols.Private:
		r.addError(r.file, member, diagnostics.ErrR006, member.Value, module.RawPath)
	default:
		err := r.addError(r.file, member, diagnostics.ErrR007, module.RawPath, member.Value)
		if names := module.ExportedNames(); len(names) > 0 {
			err.WithHint("available members: %s", strings.Join(names, ", "))
		}
	}
}
