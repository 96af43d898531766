package analyzer

import (
	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/token"
)

// Resolver binds every identifier use to its declaration. It runs once per
// loaded file; file-scope tables are built on demand and cached so that an
// import of a file that is still being built reuses its partial table.
type Resolver struct {
	programs map[string]*ast.Program
	bindings *symbols.Bindings
	diags    *diagnostics.Bag

	stack    *symbols.ScopeStack
	scope    *symbols.FileScope // file currently being walked
	file     string
	function *ast.FunctionDeclaration
}

// NewResolver prepares a resolver over the loaded programs, keyed by
// absolute path.
func NewResolver(programs map[string]*ast.Program, diags *diagnostics.Bag) *Resolver {
	return &Resolver{
		programs: programs,
		bindings: symbols.NewBindings(),
		diags:    diags,
		stack:    symbols.NewScopeStack(),
	}
}

// Bindings returns the resolution result accumulated so far.
func (r *Resolver) Bindings() *symbols.Bindings {
	return r.bindings
}

// ResolveAll resolves every file in order and returns the bindings.
func (r *Resolver) ResolveAll(order []string) *symbols.Bindings {
	for _, path := range order {
		r.ResolveFile(path)
	}
	r.stack.AssertBalanced()
	return r.bindings
}

// ResolveFile walks one program. The scope stack is back at the global
// frame when it returns.
func (r *Resolver) ResolveFile(path string) {
	prog, ok := r.programs[path]
	if !ok {
		return
	}
	fs := r.fileScope(path)

	prevScope, prevFile, prevFn := r.scope, r.file, r.function
	r.scope, r.file, r.function = fs, path, nil

	r.stack.Push(fs.Table)
	for _, stmt := range prog.Statements {
		// Imports were bound while the file scope was built.
		if _, ok := stmt.(*ast.ImportStatement); ok {
			continue
		}
		r.resolveStatement(stmt)
	}
	r.stack.Pop(fs.Table)

	r.scope, r.file, r.function = prevScope, prevFile, prevFn
}

func (r *Resolver) addError(file string, node ast.Node, code diagnostics.ErrorCode, args ...any) *diagnostics.DiagnosticError {
	var span token.Span
	if !ast.IsNil(node) {
		span = node.GetSpan()
	}
	err := diagnostics.NewError(code, file, span, args...)
	r.diags.Add(err)
	return err
}

// lookupValue records ident's binding or reports it unbound.
func (r *Resolver) lookupValue(ident *ast.Identifier) {
	if ident == nil {
		return
	}
	if decl, ok := r.stack.LookupValue(ident.Value); ok {
		r.bindings.Values[ident.NodeID()] = decl
		return
	}
	if r.scope != nil && r.scope.Poisoned[ident.Value] {
		return
	}
	r.addError(r.file, ident, diagnostics.ErrR001, ident.Value)
}

func (r *Resolver) lookupType(ident *ast.Identifier) {
	if ident == nil {
		return
	}
	if decl, ok := r.stack.LookupType(ident.Value); ok {
		r.bindings.Types[ident.NodeID()] = decl
		return
	}
	if r.scope != nil && r.scope.Poisoned[ident.Value] {
		return
	}
	r.addError(r.file, ident, diagnostics.ErrR002, ident.Value)
}

// withScope runs fn with table pushed, popping it afterwards.
func (r *Resolver) withScope(table *symbols.SymbolTable, fn func()) {
	r.stack.Push(table)
	fn()
	r.stack.Pop(table)
}
