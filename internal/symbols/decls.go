package symbols

import (
	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/typesystem"
)

// Decl is one binding site. Decls are created once, while a scope's table
// is built, and are shared read-only by every identifier resolving to them.
type Decl interface {
	// DeclName is the bound name.
	DeclName() string
	// DeclNode is the node naming the binding, used for spans. Nil for builtins.
	DeclNode() ast.Node
}

// ValueDecl lives in the value namespace.
type ValueDecl interface {
	Decl
	valueDecl()
}

// TypeDecl lives in the type namespace.
type TypeDecl interface {
	Decl
	typeDecl()
}

// Qualify joins a module's qualified name and a member name.
func Qualify(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}

// VarDecl is one name bound by a variable declaration. A declarator with a
// destructuring pattern produces one VarDecl per bound name.
type VarDecl struct {
	Stmt       *ast.VariableDeclaration
	Declarator *ast.VarDeclarator
	Name       *ast.Identifier
}

func (d *VarDecl) DeclName() string   { return d.Name.Value }
func (d *VarDecl) DeclNode() ast.Node { return d.Name }
func (d *VarDecl) IsConst() bool      { return d.Stmt != nil && d.Stmt.Kind == ast.VarConst }

type FuncDecl struct {
	Node   *ast.FunctionDeclaration
	Module string
}

func (d *FuncDecl) DeclName() string      { return d.Node.Name.Value }
func (d *FuncDecl) DeclNode() ast.Node    { return d.Node.Name }
func (d *FuncDecl) QualifiedName() string { return Qualify(d.Module, d.Node.Name.Value) }

// ParamDecl is one name bound by the Index-th parameter of Func.
type ParamDecl struct {
	Func  *ast.FunctionDeclaration
	Index int
	Name  *ast.Identifier
}

func (d *ParamDecl) DeclName() string   { return d.Name.Value }
func (d *ParamDecl) DeclNode() ast.Node { return d.Name }

// Param returns the declaring parameter node.
func (d *ParamDecl) Param() *ast.Param {
	if d.Index < 0 || d.Index >= len(d.Func.Params) {
		return nil
	}
	return d.Func.Params[d.Index]
}

// ModuleDecl is bound by `import * as ns`. Exports and Privates are the
// target file's tables; they may still be filling in while an import cycle
// is being resolved, so they are consulted lazily.
type ModuleDecl struct {
	Name          *ast.Identifier
	RawPath       string // as written in the import
	Path          string // absolute
	QualifiedName string
	Exports       *SymbolTable
	Privates      *SymbolTable
}

func (d *ModuleDecl) DeclName() string   { return d.Name.Value }
func (d *ModuleDecl) DeclNode() ast.Node { return d.Name }

// Visibility is the outcome of a module member lookup.
type Visibility int

const (
	Missing Visibility = iota
	Exported
	Private
)

// LookupValue finds a value member and reports its visibility.
func (d *ModuleDecl) LookupValue(name string) (ValueDecl, Visibility) {
	return lookupValue(d.Exports, d.Privates, name)
}

// LookupType finds a type member and reports its visibility.
func (d *ModuleDecl) LookupType(name string) (TypeDecl, Visibility) {
	return lookupType(d.Exports, d.Privates, name)
}

func lookupValue(exports, privates *SymbolTable, name string) (ValueDecl, Visibility) {
	if v, ok := exports.GetValue(name); ok {
		return v, Exported
	}
	if v, ok := privates.GetValue(name); ok {
		return v, Private
	}
	return nil, Missing
}

func lookupType(exports, privates *SymbolTable, name string) (TypeDecl, Visibility) {
	if t, ok := exports.GetType(name); ok {
		return t, Exported
	}
	if t, ok := privates.GetType(name); ok {
		return t, Private
	}
	return nil, Missing
}

// ExportedNames lists every exported member of either namespace, sorted.
func (d *ModuleDecl) ExportedNames() []string {
	return d.Exports.Names()
}

// BuiltinDecl is a compiler-provided value such as cast.
type BuiltinDecl struct {
	Name string
	Type typesystem.Type
}

func (d *BuiltinDecl) DeclName() string   { return d.Name }
func (d *BuiltinDecl) DeclNode() ast.Node { return nil }

// BuiltinTypeDecl is a compiler-provided type such as u32.
type BuiltinTypeDecl struct {
	Name string
	Type typesystem.Type
}

func (d *BuiltinTypeDecl) DeclName() string   { return d.Name }
func (d *BuiltinTypeDecl) DeclNode() ast.Node { return nil }

type TypeAliasDecl struct {
	Node   *ast.TypeAliasDeclaration
	Module string
}

func (d *TypeAliasDecl) DeclName() string   { return d.Node.Name.Value }
func (d *TypeAliasDecl) DeclNode() ast.Node { return d.Node.Name }

// StructDecl is bound in both namespaces: the name is a constructor value
// and an instance type.
type StructDecl struct {
	Node   *ast.StructDeclaration
	Module string
}

func (d *StructDecl) DeclName() string      { return d.Node.Name.Value }
func (d *StructDecl) DeclNode() ast.Node    { return d.Node.Name }
func (d *StructDecl) QualifiedName() string { return Qualify(d.Module, d.Node.Name.Value) }

type UnionDecl struct {
	Node   *ast.UnionDeclaration
	Module string
}

func (d *UnionDecl) DeclName() string      { return d.Node.Name.Value }
func (d *UnionDecl) DeclNode() ast.Node    { return d.Node.Name }
func (d *UnionDecl) QualifiedName() string { return Qualify(d.Module, d.Node.Name.Value) }

type ExternFuncDecl struct {
	Node *ast.ExternFunction
}

func (d *ExternFuncDecl) DeclName() string   { return d.Node.Name.Value }
func (d *ExternFuncDecl) DeclNode() ast.Node { return d.Node.Name }

// ExternTypeDecl names a C type. Extern names are not mangled.
type ExternTypeDecl struct {
	Node *ast.ExternType
}

func (d *ExternTypeDecl) DeclName() string   { return d.Node.Name.Value }
func (d *ExternTypeDecl) DeclNode() ast.Node { return d.Node.Name }

func (d *VarDecl) valueDecl()        {}
func (d *FuncDecl) valueDecl()       {}
func (d *ParamDecl) valueDecl()      {}
func (d *ModuleDecl) valueDecl()     {}
func (d *BuiltinDecl) valueDecl()    {}
func (d *StructDecl) valueDecl()     {}
func (d *UnionDecl) valueDecl()      {}
func (d *ExternFuncDecl) valueDecl() {}

func (d *BuiltinTypeDecl) typeDecl() {}
func (d *TypeAliasDecl) typeDecl()   {}
func (d *StructDecl) typeDecl()      {}
func (d *UnionDecl) typeDecl()       {}
func (d *ExternTypeDecl) typeDecl()  {}
