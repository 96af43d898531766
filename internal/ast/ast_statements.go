package ast

// ImportSpecifier is one name of `import { name as alias } from "path"`.
type ImportSpecifier struct {
	Meta
	Name  *Identifier
	Alias *Identifier // nil when not renamed
}

// LocalName is the name the specifier binds in the importing file.
func (s *ImportSpecifier) LocalName() *Identifier {
	if s.Alias != nil {
		return s.Alias
	}
	return s.Name
}

// ImportStatement is either a named import or a namespace import.
//
//	import { a, b as c } from "./lib"
//	import * as lib from "./lib"
type ImportStatement struct {
	Meta
	Path      *StringLiteral
	Names     []*ImportSpecifier
	Namespace *Identifier // set for `import * as ns`
}

// Param is one function parameter. Pattern may destructure.
type Param struct {
	Meta
	Pattern Pattern
	Type    TypeAnnotation // nil when unannotated
}

// FunctionDeclaration: function name(params): Ret { body }
type FunctionDeclaration struct {
	Meta
	Exported   bool
	Name       *Identifier
	Params     []*Param
	ReturnType TypeAnnotation // nil when unannotated
	Body       *BlockStatement
}

// VarKind distinguishes let from const.
type VarKind int

const (
	VarLet VarKind = iota
	VarConst
)

func (k VarKind) String() string {
	if k == VarConst {
		return "const"
	}
	return "let"
}

// VarDeclarator is one `pattern: Type = init` clause of a declaration.
type VarDeclarator struct {
	Meta
	Pattern Pattern
	Type    TypeAnnotation // optional
	Init    Expression     // optional
}

// VariableDeclaration: let a = 1, { b } = c;
type VariableDeclaration struct {
	Meta
	Exported    bool
	Kind        VarKind
	Declarators []*VarDeclarator
}

// Field is a named, typed member of a struct or union declaration.
type Field struct {
	Meta
	Name *Identifier
	Type TypeAnnotation
}

// StructDeclaration: struct Point { x: i32; y: i32 }
type StructDeclaration struct {
	Meta
	Exported bool
	Name     *Identifier
	Fields   []*Field
}

// UnionDeclaration: union Value { i: i64; f: f64 }
type UnionDeclaration struct {
	Meta
	Exported bool
	Name     *Identifier
	Variants []*Field
}

// TypeAliasDeclaration: type Name = Type
type TypeAliasDeclaration struct {
	Meta
	Exported bool
	Name     *Identifier
	Type     TypeAnnotation
}

// ExternFunction declares a C function: extern function puts(s: *u8): i32
type ExternFunction struct {
	Meta
	Exported   bool
	Name       *Identifier
	Params     []*Param
	ReturnType TypeAnnotation
	Variadic   bool
}

// ExternType declares an opaque C type: extern type FILE
type ExternType struct {
	Meta
	Exported bool
	Name     *Identifier
}

type BlockStatement struct {
	Meta
	Statements []Statement
}

type ExpressionStatement struct {
	Meta
	Expression Expression
}

type ReturnStatement struct {
	Meta
	Value Expression // nil for a bare return
}

type IfStatement struct {
	Meta
	Condition   Expression
	Consequence Statement
	Alternative Statement // optional
}

type WhileStatement struct {
	Meta
	Condition Expression
	Body      Statement
}

// ForStatement: for (init; condition; update) body
type ForStatement struct {
	Meta
	Init      Statement  // optional; usually a VariableDeclaration
	Condition Expression // optional
	Update    Expression // optional
	Body      Statement
}

type BreakStatement struct{ Meta }

type ContinueStatement struct{ Meta }

func (s *ImportStatement) statementNode()      {}
func (s *FunctionDeclaration) statementNode()  {}
func (s *VariableDeclaration) statementNode()  {}
func (s *StructDeclaration) statementNode()    {}
func (s *UnionDeclaration) statementNode()     {}
func (s *TypeAliasDeclaration) statementNode() {}
func (s *ExternFunction) statementNode()       {}
func (s *ExternType) statementNode()           {}
func (s *BlockStatement) statementNode()       {}
func (s *ExpressionStatement) statementNode()  {}
func (s *ReturnStatement) statementNode()      {}
func (s *IfStatement) statementNode()          {}
func (s *WhileStatement) statementNode()       {}
func (s *ForStatement) statementNode()         {}
func (s *BreakStatement) statementNode()       {}
func (s *ContinueStatement) statementNode()    {}

// IsExported reports the declared visibility of a top-level statement.
// Statements without visibility are private.
func IsExported(stmt Statement) bool {
	switch s := stmt.(type) {
	case *FunctionDeclaration:
		return s.Exported
	case *VariableDeclaration:
		return s.Exported
	case *StructDeclaration:
		return s.Exported
	case *UnionDeclaration:
		return s.Exported
	case *TypeAliasDeclaration:
		return s.Exported
	case *ExternFunction:
		return s.Exported
	case *ExternType:
		return s.Exported
	}
	return false
}
