package ast

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/funvibe/jsc/internal/token"
)

// NodeID is the arena index of a syntax node. Zero means "no node".
// Every memo table in the analyzer is keyed by NodeID rather than by
// pointer identity.
type NodeID uint32

const NoNodeID NodeID = 0

// IsValid reports whether the ID refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// Node is the base interface for all AST nodes.
type Node interface {
	NodeID() NodeID
	GetSpan() token.Span
	setID(NodeID)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a binding target: a plain name or a destructuring form.
type Pattern interface {
	Node
	patternNode()
}

// TypeAnnotation is a type written in source.
type TypeAnnotation interface {
	Node
	typeNode()
}

// Meta carries the arena ID and source span shared by every node.
type Meta struct {
	ID   NodeID
	Span token.Span
}

func (m *Meta) NodeID() NodeID          { return m.ID }
func (m *Meta) GetSpan() token.Span     { return m.Span }
func (m *Meta) setID(id NodeID)         { m.ID = id }
func (m *Meta) SetSpan(span token.Span) { m.Span = span }

// Arena hands out NodeIDs for one compilation. IDs are unique across every
// file loaded into the same arena.
type Arena struct {
	nodes []Node
}

func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 0, 256)}
}

func (a *Arena) alloc(n Node) NodeID {
	next, err := safecast.Convert[uint32](len(a.nodes) + 1)
	if err != nil {
		panic(fmt.Errorf("ast: node index overflow: %w", err))
	}
	a.nodes = append(a.nodes, n)
	return NodeID(next)
}

// Node returns the node allocated under id, or nil.
func (a *Arena) Node(id NodeID) Node {
	if !id.IsValid() || int(id) > len(a.nodes) {
		return nil
	}
	return a.nodes[id-1]
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// New registers n in the arena and returns it with its ID set.
// A node that already has an ID is returned unchanged.
func New[T Node](a *Arena, n T) T {
	if n.NodeID().IsValid() {
		return n
	}
	n.setID(a.alloc(n))
	return n
}

// Program is the root node of one source file.
type Program struct {
	Meta
	Path          string // absolute source path
	QualifiedName string // dotted name relative to the entry file, e.g. "lib.math"
	Source        []byte // original text, used only for diagnostics rendering
	Statements    []Statement
}
