package analyzer

import (
	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/typesystem"
)

func (c *Checker) checkStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.ImportStatement:

	case *ast.FunctionDeclaration:
		c.checkFunction(s)
	case *ast.VariableDeclaration:
		c.checkVarDecl(s)
	case *ast.StructDeclaration:
		c.structComposite(&symbols.StructDecl{Node: s, Module: c.moduleOf(s)})
	case *ast.UnionDeclaration:
		c.unionComposite(&symbols.UnionDecl{Node: s, Module: c.moduleOf(s)})
	case *ast.TypeAliasDeclaration:
		c.aliasType(s)
	case *ast.ExternFunction:
		c.externSignature(s)
	case *ast.ExternType:

	case *ast.BlockStatement:
		c.checkStatements(s.Statements)
	case *ast.ExpressionStatement:
		c.infer(s.Expression)

	case *ast.ReturnStatement:
		fn, ok := c.bindings.Returns[s.NodeID()]
		if !ok {
			// Outside a function; reported by the resolver.
			c.infer(s.Value)
			return
		}
		ret := c.signature(fn).Return
		if s.Value == nil {
			c.expectAssignable(s, typesystem.Void, ret)
			return
		}
		c.check(s.Value, ret)

	case *ast.IfStatement:
		c.check(s.Condition, typesystem.Boolean)
		c.checkStatement(s.Consequence)
		c.checkStatement(s.Alternative)

	case *ast.WhileStatement:
		c.check(s.Condition, typesystem.Boolean)
		c.checkLoopBody(s.Body)

	case *ast.ForStatement:
		c.checkStatement(s.Init)
		c.check(s.Condition, typesystem.Boolean)
		c.infer(s.Update)
		c.checkLoopBody(s.Body)

	case *ast.BreakStatement:
		if c.loops == 0 {
			c.addError(s, diagnostics.ErrC011, "break")
		}
	case *ast.ContinueStatement:
		if c.loops == 0 {
			c.addError(s, diagnostics.ErrC011, "continue")
		}

	default:
		panic(unhandledNode("checker", stmt))
	}
}

func (c *Checker) checkLoopBody(body ast.Statement) {
	c.loops++
	c.checkStatement(body)
	c.loops--
}

// checkFunction checks a function's signature and, once, its body. Loops
// of an enclosing function do not extend into a nested one.
func (c *Checker) checkFunction(fn *ast.FunctionDeclaration) {
	c.signature(fn)
	if c.bodies[fn.NodeID()] || fn.Body == nil {
		return
	}
	c.bodies[fn.NodeID()] = true

	loops := c.loops
	c.loops = 0
	c.checkStatements(fn.Body.Statements)
	c.loops = loops
}
