// Package treeio decodes the YAML syntax-tree dumps written by the external
// parser. Every node is a mapping with a `kind` key and an optional
// `span: [start, stop]`; unknown keys are rejected. A few shorthands keep
// hand-written fixtures short:
//
//   - a type may be a plain string: `u32`, `*u8`, `*mut Node`, `m.Point`
//   - an expression may be a plain scalar: integers and floats are number
//     literals, true/false are booleans, anything else is an identifier
//   - a pattern may be a plain string naming a single binding
package treeio

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/token"
)

// Decode builds a program from a YAML tree dump. Nodes are allocated in
// arena. The returned program has Path set to path; the caller assigns
// the qualified name.
func Decode(path string, data []byte, arena *ast.Arena) (*ast.Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d := &decoder{path: path, arena: arena}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return place(d, nil, &ast.Program{Path: path}), nil
	}
	prog := d.program(doc.Content[0])
	if d.err != nil {
		return nil, d.err
	}
	return prog, nil
}

// decoder keeps the first error and turns later calls into no-ops, so the
// walk does not need to check errors at every level.
type decoder struct {
	path  string
	arena *ast.Arena
	err   error
}

func (d *decoder) failf(n *yaml.Node, format string, args ...any) {
	if d.err != nil {
		return
	}
	line, col := 0, 0
	if n != nil {
		line, col = n.Line, n.Column
	}
	d.err = fmt.Errorf("%s:%d:%d: %s", d.path, line, col, fmt.Sprintf(format, args...))
}

// object is a decoded mapping node.
type object struct {
	node   *yaml.Node
	kind   string
	fields map[string]*yaml.Node
}

// object reads a mapping node.
func (d *decoder) object(n *yaml.Node) *object {
	if n.Kind != yaml.MappingNode {
		d.failf(n, "expected a mapping, got %s", describe(n))
		return nil
	}
	o := &object{node: n, fields: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if _, dup := o.fields[key.Value]; dup {
			d.failf(key, "duplicate field %q", key.Value)
		}
		o.fields[key.Value] = value
	}
	if k, ok := o.fields["kind"]; ok {
		o.kind = k.Value
	}
	return o
}

// allow rejects keys of o other than allowed. kind and span are always
// allowed.
func (d *decoder) allow(o *object, allowed ...string) {
	if o == nil {
		return
	}
	for i := 0; i < len(o.node.Content); i += 2 {
		key := o.node.Content[i]
		if key.Value == "kind" || key.Value == "span" {
			continue
		}
		if !slices.Contains(allowed, key.Value) {
			label := o.kind
			if label == "" {
				label = "node"
			}
			d.failf(key, "unknown field %q in %s", key.Value, label)
		}
	}
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.AliasNode:
		return "an alias"
	}
	return "nothing"
}

func (o *object) has(name string) bool {
	if o == nil {
		return false
	}
	n, ok := o.fields[name]
	return ok && !isNull(n)
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func (d *decoder) field(o *object, name string) *yaml.Node {
	if !o.has(name) {
		return nil
	}
	return o.fields[name]
}

// str reads a required string field.
func (d *decoder) str(o *object, name string) string {
	if o == nil {
		return ""
	}
	n := d.field(o, name)
	if n == nil {
		d.failf(o.node, "%s is missing %q", o.kind, name)
		return ""
	}
	if n.Kind != yaml.ScalarNode {
		d.failf(n, "%q must be a scalar, got %s", name, describe(n))
		return ""
	}
	return n.Value
}

func (d *decoder) optStr(o *object, name string) string {
	if !o.has(name) {
		return ""
	}
	return d.str(o, name)
}

func (d *decoder) flag(o *object, name string) bool {
	n := d.field(o, name)
	if n == nil {
		return false
	}
	var v bool
	if err := n.Decode(&v); err != nil {
		d.failf(n, "%q must be a boolean", name)
	}
	return v
}

func (d *decoder) seq(o *object, name string) []*yaml.Node {
	n := d.field(o, name)
	if n == nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.failf(n, "%q must be a sequence, got %s", name, describe(n))
		return nil
	}
	return n.Content
}

func (d *decoder) span(o *object) token.Span {
	n := d.field(o, "span")
	if n == nil {
		return token.Span{}
	}
	var pair []int
	if err := n.Decode(&pair); err != nil || len(pair) != 2 || pair[0] < 0 || pair[1] < pair[0] {
		d.failf(n, "span must be [start, stop] with 0 <= start <= stop")
		return token.Span{}
	}
	return token.Span{Start: pair[0], Stop: pair[1]}
}

// place registers n in the arena with the object's span.
func place[T ast.Node](d *decoder, o *object, n T) T {
	n = ast.New(d.arena, n)
	if o != nil {
		if m, ok := any(n).(interface{ SetSpan(token.Span) }); ok {
			m.SetSpan(d.span(o))
		}
	}
	return n
}

// ident reads a required identifier field. Names written as plain strings
// take the span of the node they belong to.
func (d *decoder) ident(o *object, name string) *ast.Identifier {
	return place(d, o, &ast.Identifier{Value: d.str(o, name)})
}

func (d *decoder) optIdent(o *object, name string) *ast.Identifier {
	if !o.has(name) {
		return nil
	}
	return d.ident(o, name)
}

func (d *decoder) program(n *yaml.Node) *ast.Program {
	o := d.object(n)
	d.allow(o, "path", "source", "statements")
	if o == nil {
		return nil
	}
	if o.kind != "" && o.kind != "Program" {
		d.failf(n, "top-level node must be a Program, got %s", o.kind)
		return nil
	}
	prog := &ast.Program{Path: d.path}
	if src := d.optStr(o, "source"); src != "" {
		prog.Source = []byte(src)
	}
	prog.Statements = d.statements(d.seq(o, "statements"))
	return place(d, o, prog)
}

// splitQualified splits "m.T" into head and members.
func splitQualified(s string) (string, []string) {
	parts := strings.Split(s, ".")
	return parts[0], parts[1:]
}
