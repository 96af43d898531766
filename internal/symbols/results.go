package symbols

import (
	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/typesystem"
)

// Bindings is the resolver's output. Every map is keyed by the NodeID of
// the use site and is only ever appended to.
type Bindings struct {
	// Values maps identifier uses to the value declaration they name.
	Values map[ast.NodeID]ValueDecl
	// Types maps type identifiers and qualified type names to their declaration.
	Types map[ast.NodeID]TypeDecl
	// Returns maps return statements to their enclosing function.
	Returns map[ast.NodeID]*ast.FunctionDeclaration
	// Scopes holds the file-scope tables by absolute path.
	Scopes map[string]*FileScope
}

func NewBindings() *Bindings {
	return &Bindings{
		Values:  make(map[ast.NodeID]ValueDecl),
		Types:   make(map[ast.NodeID]TypeDecl),
		Returns: make(map[ast.NodeID]*ast.FunctionDeclaration),
		Scopes:  make(map[string]*FileScope),
	}
}

// FileScope is the file-level scope of one module. Table holds everything
// visible at file level (declarations and imports); Exports and Privates
// hold only the file's own declarations, split by visibility.
type FileScope struct {
	Path          string
	QualifiedName string
	Table         *SymbolTable
	Exports       *SymbolTable
	Privates      *SymbolTable
	// Poisoned names come from imports that failed; uses of them are not
	// reported again.
	Poisoned map[string]bool
	// Complete is set once imports have been bound.
	Complete bool
}

func NewFileScope(path, qualifiedName string) *FileScope {
	return &FileScope{
		Path:          path,
		QualifiedName: qualifiedName,
		Table:         NewSymbolTable(ScopeFile),
		Exports:       NewSymbolTable(ScopeFile),
		Privates:      NewSymbolTable(ScopeFile),
		Poisoned:      make(map[string]bool),
	}
}

// LookupValue finds one of the file's own value declarations.
func (fs *FileScope) LookupValue(name string) (ValueDecl, Visibility) {
	return lookupValue(fs.Exports, fs.Privates, name)
}

// LookupType finds one of the file's own type declarations.
func (fs *FileScope) LookupType(name string) (TypeDecl, Visibility) {
	return lookupType(fs.Exports, fs.Privates, name)
}

// DeclaredVar is one name introduced by a variable declaration together
// with its checked type.
type DeclaredVar struct {
	Name *ast.Identifier
	Type typesystem.Type
	Init ast.Expression
}
