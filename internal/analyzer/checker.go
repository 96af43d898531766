package analyzer

import (
	"fmt"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/token"
	"github.com/funvibe/jsc/internal/typesystem"
)

// Checker is the bidirectional type checker. It runs after the resolver and
// reads its bindings. Every node-keyed computation is memoized; the memo
// entry is installed before the computation starts so recursive references
// see a placeholder instead of looping.
type Checker struct {
	programs map[string]*ast.Program
	bindings *symbols.Bindings
	diags    *diagnostics.Bag

	// owner maps every node to the file it was parsed from, so that a
	// declaration checked on behalf of another file reports in its own.
	owner map[ast.NodeID]string

	// Results.
	ExprTypes       map[ast.NodeID]typesystem.Type
	AnnotationTypes map[ast.NodeID]typesystem.Type
	VarDecls        map[ast.NodeID][]symbols.DeclaredVar

	signatures map[ast.NodeID]typesystem.TFunc
	varTypes   map[ast.NodeID]typesystem.Type // keyed by the bound identifier
	varDone    map[ast.NodeID]bool
	aliases    map[ast.NodeID]typesystem.Type
	aliasBusy  map[ast.NodeID]bool
	composites map[ast.NodeID]*typesystem.Composite
	bodies     map[ast.NodeID]bool

	loops int
}

func NewChecker(programs map[string]*ast.Program, bindings *symbols.Bindings, diags *diagnostics.Bag) *Checker {
	c := &Checker{
		programs:        programs,
		bindings:        bindings,
		diags:           diags,
		owner:           make(map[ast.NodeID]string),
		ExprTypes:       make(map[ast.NodeID]typesystem.Type),
		AnnotationTypes: make(map[ast.NodeID]typesystem.Type),
		VarDecls:        make(map[ast.NodeID][]symbols.DeclaredVar),
		signatures:      make(map[ast.NodeID]typesystem.TFunc),
		varTypes:        make(map[ast.NodeID]typesystem.Type),
		varDone:         make(map[ast.NodeID]bool),
		aliases:         make(map[ast.NodeID]typesystem.Type),
		aliasBusy:       make(map[ast.NodeID]bool),
		composites:      make(map[ast.NodeID]*typesystem.Composite),
		bodies:          make(map[ast.NodeID]bool),
	}
	for path, prog := range programs {
		ast.Inspect(prog, func(n ast.Node) bool {
			c.owner[n.NodeID()] = path
			return true
		})
	}
	return c
}

// CheckAll checks every file in order.
func (c *Checker) CheckAll(order []string) {
	for _, path := range order {
		c.CheckFile(path)
	}
}

// CheckFile checks the top-level statements of one program.
func (c *Checker) CheckFile(path string) {
	prog, ok := c.programs[path]
	if !ok {
		return
	}
	for _, stmt := range prog.Statements {
		c.checkStatement(stmt)
	}
}

// TypeOf returns the recorded type of an expression or annotation.
func (c *Checker) TypeOf(id ast.NodeID) (typesystem.Type, bool) {
	if t, ok := c.ExprTypes[id]; ok {
		return t, true
	}
	t, ok := c.AnnotationTypes[id]
	return t, ok
}

func (c *Checker) addError(node ast.Node, code diagnostics.ErrorCode, args ...any) *diagnostics.DiagnosticError {
	var span token.Span
	file := ""
	if !ast.IsNil(node) {
		span = node.GetSpan()
		file = c.owner[node.NodeID()]
	}
	err := diagnostics.NewError(code, file, span, args...)
	c.diags.Add(err)
	return err
}

// moduleOf returns the qualified name of the file node was parsed from.
func (c *Checker) moduleOf(node ast.Node) string {
	if prog, ok := c.programs[c.owner[node.NodeID()]]; ok {
		return prog.QualifiedName
	}
	return ""
}

// expectAssignable reports a mismatch unless source fits target.
func (c *Checker) expectAssignable(node ast.Node, source, target typesystem.Type) {
	if !typesystem.IsAssignable(source, target) {
		c.addError(node, diagnostics.ErrC001, target, source)
	}
}

func unhandledNode(pass string, n ast.Node) error {
	return fmt.Errorf("%s: unhandled node %T", pass, n)
}
