package analyzer

import (
	"strings"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/utils"
)

// fileScope returns the file-level scope of path, building it on first
// use. The entry is cached before imports are bound, so an import cycle
// that reaches path again sees the file's own declarations.
func (r *Resolver) fileScope(path string) *symbols.FileScope {
	if fs, ok := r.bindings.Scopes[path]; ok {
		return fs
	}
	prog := r.programs[path]
	fs := symbols.NewFileScope(path, prog.QualifiedName)
	r.bindings.Scopes[path] = fs

	// Phase 1: the file's own declarations, by visibility.
	r.declareStatements(path, fs.Table, prog.Statements, fs)
	// Phase 2: imports.
	for _, stmt := range prog.Statements {
		if imp, ok := stmt.(*ast.ImportStatement); ok {
			r.bindImport(path, fs, imp)
		}
	}
	fs.Complete = true
	return fs
}

// declareStatements registers the declarations of one statement list.
// fs is non-nil only at file level, where visibility is honoured.
func (r *Resolver) declareStatements(file string, table *symbols.SymbolTable, stmts []ast.Statement, fs *symbols.FileScope) {
	module := ""
	if prog, ok := r.programs[file]; ok {
		module = prog.QualifiedName
	}
	for _, stmt := range stmts {
		var visible *symbols.SymbolTable
		if fs != nil {
			visible = fs.Privates
			if ast.IsExported(stmt) {
				visible = fs.Exports
			}
		}
		addValue := func(name *ast.Identifier, decl symbols.ValueDecl) {
			r.declareValue(file, table, name, decl)
			if visible != nil {
				visible.AddValue(name.Value, decl)
			}
		}
		addType := func(name *ast.Identifier, decl symbols.TypeDecl) {
			r.declareType(file, table, name, decl)
			if visible != nil {
				visible.AddType(name.Value, decl)
			}
		}

		switch s := stmt.(type) {
		case *ast.FunctionDeclaration:
			addValue(s.Name, &symbols.FuncDecl{Node: s, Module: module})
		case *ast.VariableDeclaration:
			for _, d := range s.Declarators {
				for _, name := range ast.BindingNames(d.Pattern) {
					addValue(name, &symbols.VarDecl{Stmt: s, Declarator: d, Name: name})
				}
			}
		case *ast.StructDeclaration:
			decl := &symbols.StructDecl{Node: s, Module: module}
			addValue(s.Name, decl)
			addType(s.Name, decl)
		case *ast.UnionDeclaration:
			decl := &symbols.UnionDecl{Node: s, Module: module}
			addValue(s.Name, decl)
			addType(s.Name, decl)
		case *ast.TypeAliasDeclaration:
			addType(s.Name, &symbols.TypeAliasDecl{Node: s, Module: module})
		case *ast.ExternFunction:
			addValue(s.Name, &symbols.ExternFuncDecl{Node: s})
		case *ast.ExternType:
			addType(s.Name, &symbols.ExternTypeDecl{Node: s})
		}
	}
}

func (r *Resolver) declareValue(file string, table *symbols.SymbolTable, name *ast.Identifier, decl symbols.ValueDecl) {
	if !table.AddValue(name.Value, decl) {
		r.addError(file, name, diagnostics.ErrR008, name.Value)
	}
}

func (r *Resolver) declareType(file string, table *symbols.SymbolTable, name *ast.Identifier, decl symbols.TypeDecl) {
	if !table.AddType(name.Value, decl) {
		r.addError(file, name, diagnostics.ErrR008, name.Value)
	}
}

// targetPath finds the loaded file an import refers to.
func (r *Resolver) targetPath(importer, raw string) (string, bool) {
	for _, candidate := range utils.ImportCandidates(importer, raw) {
		if _, ok := r.programs[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// bindImport binds the names of one import statement into fs.Table.
func (r *Resolver) bindImport(file string, fs *symbols.FileScope, imp *ast.ImportStatement) {
	if imp.Path == nil {
		return
	}
	raw := imp.Path.Value
	target, ok := r.targetPath(file, raw)
	if !ok {
		r.addError(file, imp.Path, diagnostics.ErrR005, raw)
		r.poisonImport(fs, imp)
		return
	}
	ts := r.fileScope(target)

	if imp.Namespace != nil {
		decl := &symbols.ModuleDecl{
			Name:          imp.Namespace,
			RawPath:       raw,
			Path:          target,
			QualifiedName: ts.QualifiedName,
			Exports:       ts.Exports,
			Privates:      ts.Privates,
		}
		r.declareValue(file, fs.Table, imp.Namespace, decl)
		return
	}

	for _, spec := range imp.Names {
		name, local := spec.Name.Value, spec.LocalName()
		value, vis := ts.LookupValue(name)
		typ, tvis := ts.LookupType(name)

		switch {
		case vis == symbols.Exported || tvis == symbols.Exported:
			if vis == symbols.Exported {
				r.declareValue(file, fs.Table, local, value)
				r.bindings.Values[spec.Name.NodeID()] = value
			}
			if tvis == symbols.Exported {
				r.declareType(file, fs.Table, local, typ)
				r.bindings.Types[spec.Name.NodeID()] = typ
			}
		case vis == symbols.Private || tvis == symbols.Private:
			r.addError(file, spec.Name, diagnostics.ErrR006, name, raw)
			fs.Poisoned[local.Value] = true
		default:
			err := r.addError(file, spec.Name, diagnostics.ErrR007, raw, name)
			if names := ts.Exports.Names(); len(names) > 0 {
				err.WithHint("available members: %s", strings.Join(names, ", "))
			}
			fs.Poisoned[local.Value] = true
		}
	}
}

func (r *Resolver) poisonImport(fs *symbols.FileScope, imp *ast.ImportStatement) {
	if imp.Namespace != nil {
		fs.Poisoned[imp.Namespace.Value] = true
	}
	for _, spec := range imp.Names {
		fs.Poisoned[spec.LocalName().Value] = true
	}
}

// functionTable binds a function's parameters, by position, and the
// top-level declarations of its body in a single scope.
func (r *Resolver) functionTable(fn *ast.FunctionDeclaration) *symbols.SymbolTable {
	table := symbols.NewSymbolTable(symbols.ScopeFunction)
	for i, p := range fn.Params {
		for _, name := range ast.BindingNames(p.Pattern) {
			r.declareValue(r.file, table, name, &symbols.ParamDecl{Func: fn, Index: i, Name: name})
		}
	}
	if fn.Body != nil {
		r.declareStatements(r.file, table, fn.Body.Statements, nil)
	}
	return table
}

func (r *Resolver) blockTable(stmts []ast.Statement) *symbols.SymbolTable {
	table := symbols.NewSymbolTable(symbols.ScopeBlock)
	r.declareStatements(r.file, table, stmts, nil)
	return table
}
