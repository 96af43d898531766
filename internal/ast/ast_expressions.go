package ast

import "github.com/funvibe/jsc/internal/token"

// Identifier is a name in source. Identifiers are never mutated after
// parsing; the analyzer uses their NodeID as a lookup key.
type Identifier struct {
	Meta
	Value string
}

// NumberLiteral keeps the raw lexeme; its representation is decided by
// the type it is checked against.
type NumberLiteral struct {
	Meta
	Raw string
}

type StringLiteral struct {
	Meta
	Value string
}

type BooleanLiteral struct {
	Meta
	Value bool
}

type BinaryExpression struct {
	Meta
	Operator token.Operator
	Left     Expression
	Right    Expression
}

// UnaryExpression covers -x, !x, &x and *x.
type UnaryExpression struct {
	Meta
	Operator token.Operator
	Operand  Expression
}

// AssignExpression: pattern = value
type AssignExpression struct {
	Meta
	Left  Pattern
	Value Expression
}

type CallExpression struct {
	Meta
	Callee    Expression
	Arguments []Expression
}

// TypeApplicationExpression is an explicit generic instantiation: cast<u32>
type TypeApplicationExpression struct {
	Meta
	Expression Expression
	TypeArgs   []TypeAnnotation
}

// MemberExpression: object.property
type MemberExpression struct {
	Meta
	Object   Expression
	Property *Identifier
}

// IndexExpression: object[index]
type IndexExpression struct {
	Meta
	Object Expression
	Index  Expression
}

// FieldInit is one `name: value` entry of a ConstructExpression.
type FieldInit struct {
	Meta
	Name  *Identifier
	Value Expression
}

// ConstructExpression builds a struct or union value: Point { x: 1, y: 2 }
type ConstructExpression struct {
	Meta
	Callee Expression // Identifier or MemberExpression naming the struct/union
	Fields []*FieldInit
}

type ArrayLiteral struct {
	Meta
	Elements []Expression
}

func (e *Identifier) expressionNode()                {}
func (e *NumberLiteral) expressionNode()             {}
func (e *StringLiteral) expressionNode()             {}
func (e *BooleanLiteral) expressionNode()            {}
func (e *BinaryExpression) expressionNode()          {}
func (e *UnaryExpression) expressionNode()           {}
func (e *AssignExpression) expressionNode()          {}
func (e *CallExpression) expressionNode()            {}
func (e *TypeApplicationExpression) expressionNode() {}
func (e *MemberExpression) expressionNode()          {}
func (e *IndexExpression) expressionNode()           {}
func (e *ConstructExpression) expressionNode()       {}
func (e *ArrayLiteral) expressionNode()              {}
