package treeio

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsc/internal/ast"
)

func (d *decoder) typeAnnotation(n *yaml.Node) ast.TypeAnnotation {
	if n.Kind == yaml.ScalarNode {
		return d.typeString(n, strings.TrimSpace(n.Value))
	}
	o := d.object(n)
	if o == nil {
		return nil
	}
	switch o.kind {
	case "Name":
		d.allow(o, "name")
		return place(d, o, &ast.TypeName{Name: d.ident(o, "name")})

	case "Qualified":
		d.allow(o, "head", "members")
		q := &ast.QualifiedTypeName{Head: d.ident(o, "head")}
		for _, m := range d.seq(o, "members") {
			q.Members = append(q.Members, place(d, o, &ast.Identifier{Value: m.Value}))
		}
		return place(d, o, q)

	case "Pointer":
		d.allow(o, "mutable", "elem")
		return place(d, o, &ast.PointerType{Mutable: d.flag(o, "mutable"), Elem: d.requiredType(o, "elem")})

	case "Array":
		d.allow(o, "elem", "size")
		return place(d, o, &ast.ArrayType{Elem: d.requiredType(o, "elem"), Size: d.str(o, "size")})

	case "Function":
		d.allow(o, "params", "returns", "variadic")
		fn := &ast.FunctionType{Variadic: d.flag(o, "variadic")}
		for _, p := range d.seq(o, "params") {
			if t := d.typeAnnotation(p); t != nil {
				fn.Params = append(fn.Params, t)
			}
		}
		if r := d.field(o, "returns"); r != nil {
			fn.Return = d.typeAnnotation(r)
		}
		return place(d, o, fn)

	case "":
		d.failf(n, "type is missing \"kind\"")
	default:
		d.failf(n, "unknown type kind %q", o.kind)
	}
	return nil
}

func (d *decoder) requiredType(o *object, name string) ast.TypeAnnotation {
	n := d.field(o, name)
	if n == nil {
		if o != nil {
			d.failf(o.node, "%s is missing %q", o.kind, name)
		}
		return nil
	}
	return d.typeAnnotation(n)
}

// typeString reads the string shorthand: `u32`, `*u8`, `*mut T`, `u8[4]`, `m.T`.
func (d *decoder) typeString(n *yaml.Node, s string) ast.TypeAnnotation {
	switch {
	case s == "":
		d.failf(n, "empty type")
		return nil
	case strings.HasPrefix(s, "*mut "):
		return place(d, nil, &ast.PointerType{Mutable: true, Elem: d.typeString(n, strings.TrimSpace(s[len("*mut "):]))})
	case strings.HasPrefix(s, "*"):
		return place(d, nil, &ast.PointerType{Elem: d.typeString(n, strings.TrimSpace(s[1:]))})
	case strings.HasSuffix(s, "]") && strings.Contains(s, "["):
		open := strings.LastIndex(s, "[")
		elem := d.typeString(n, strings.TrimSpace(s[:open]))
		return place(d, nil, &ast.ArrayType{Elem: elem, Size: strings.TrimSpace(s[open+1 : len(s)-1])})
	case strings.Contains(s, "."):
		head, members := splitQualified(s)
		q := &ast.QualifiedTypeName{Head: place(d, nil, &ast.Identifier{Value: head})}
		for _, m := range members {
			q.Members = append(q.Members, place(d, nil, &ast.Identifier{Value: m}))
		}
		return place(d, nil, q)
	}
	return place(d, nil, &ast.TypeName{Name: place(d, nil, &ast.Identifier{Value: s})})
}
