package treeio

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/token"
)

var binaryOperators = map[string]token.Operator{
	"+": token.PLUS, "-": token.MINUS, "*": token.ASTERISK, "/": token.SLASH, "%": token.PERCENT,
	"<": token.LT, "<=": token.LTE, ">": token.GT, ">=": token.GTE,
	"==": token.EQ, "!=": token.NOT_EQ, "===": token.STRICT_EQ, "!==": token.STRICT_NEQ,
	"&&": token.AND, "||": token.OR,
}

var unaryOperators = map[string]token.Operator{
	"-": token.MINUS, "!": token.BANG, "&": token.AMP, "*": token.ASTERISK,
}

func (d *decoder) optExpr(o *object, name string) ast.Expression {
	n := d.field(o, name)
	if n == nil {
		return nil
	}
	return d.expression(n)
}

func (d *decoder) requiredExpr(o *object, name string) ast.Expression {
	if !o.has(name) {
		if o != nil {
			d.failf(o.node, "%s is missing %q", o.kind, name)
		}
		return nil
	}
	return d.expression(o.fields[name])
}

func (d *decoder) expressions(nodes []*yaml.Node) []ast.Expression {
	out := make([]ast.Expression, 0, len(nodes))
	for _, n := range nodes {
		if e := d.expression(n); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// scalarExpr reads the plain-scalar shorthand.
func (d *decoder) scalarExpr(n *yaml.Node) ast.Expression {
	switch n.Tag {
	case "!!int", "!!float":
		return place(d, nil, &ast.NumberLiteral{Raw: n.Value})
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			d.failf(n, "invalid boolean %q", n.Value)
		}
		return place(d, nil, &ast.BooleanLiteral{Value: v})
	case "!!str":
		return place(d, nil, &ast.Identifier{Value: n.Value})
	}
	d.failf(n, "cannot use %s as an expression", describe(n))
	return nil
}

func (d *decoder) expression(n *yaml.Node) ast.Expression {
	if n.Kind == yaml.ScalarNode {
		return d.scalarExpr(n)
	}
	o := d.object(n)
	if o == nil {
		return nil
	}
	switch o.kind {
	case "Ident":
		d.allow(o, "name")
		return d.ident(o, "name")

	case "Number":
		d.allow(o, "raw")
		return place(d, o, &ast.NumberLiteral{Raw: d.str(o, "raw")})

	case "String":
		d.allow(o, "value")
		return place(d, o, &ast.StringLiteral{Value: d.optStr(o, "value")})

	case "Bool":
		d.allow(o, "value")
		return place(d, o, &ast.BooleanLiteral{Value: d.flag(o, "value")})

	case "Binary":
		d.allow(o, "op", "left", "right")
		op, ok := binaryOperators[d.str(o, "op")]
		if !ok {
			d.failf(n, "unknown binary operator %q", d.str(o, "op"))
		}
		return place(d, o, &ast.BinaryExpression{
			Operator: op,
			Left:     d.requiredExpr(o, "left"),
			Right:    d.requiredExpr(o, "right"),
		})

	case "Unary":
		d.allow(o, "op", "operand")
		op, ok := unaryOperators[d.str(o, "op")]
		if !ok {
			d.failf(n, "unknown unary operator %q", d.str(o, "op"))
		}
		return place(d, o, &ast.UnaryExpression{Operator: op, Operand: d.requiredExpr(o, "operand")})

	case "Assign":
		d.allow(o, "target", "value")
		var target ast.Pattern
		if t := d.field(o, "target"); t != nil {
			target = d.pattern(t)
		} else {
			d.failf(n, "Assign is missing \"target\"")
		}
		return place(d, o, &ast.AssignExpression{Left: target, Value: d.requiredExpr(o, "value")})

	case "Call":
		d.allow(o, "callee", "args")
		return place(d, o, &ast.CallExpression{
			Callee:    d.requiredExpr(o, "callee"),
			Arguments: d.expressions(d.seq(o, "args")),
		})

	case "TypeApp":
		d.allow(o, "expr", "types")
		app := &ast.TypeApplicationExpression{Expression: d.requiredExpr(o, "expr")}
		for _, t := range d.seq(o, "types") {
			if ta := d.typeAnnotation(t); ta != nil {
				app.TypeArgs = append(app.TypeArgs, ta)
			}
		}
		return place(d, o, app)

	case "Member":
		d.allow(o, "object", "property")
		return place(d, o, &ast.MemberExpression{
			Object:   d.requiredExpr(o, "object"),
			Property: d.ident(o, "property"),
		})

	case "Index":
		d.allow(o, "object", "index")
		return place(d, o, &ast.IndexExpression{
			Object: d.requiredExpr(o, "object"),
			Index:  d.requiredExpr(o, "index"),
		})

	case "Construct":
		d.allow(o, "callee", "fields")
		c := &ast.ConstructExpression{Callee: d.requiredExpr(o, "callee")}
		for _, fn := range d.seq(o, "fields") {
			fo := d.object(fn)
			d.allow(fo, "name", "value")
			if fo == nil {
				continue
			}
			c.Fields = append(c.Fields, place(d, fo, &ast.FieldInit{
				Name:  d.ident(fo, "name"),
				Value: d.requiredExpr(fo, "value"),
			}))
		}
		return place(d, o, c)

	case "Array":
		d.allow(o, "elements")
		return place(d, o, &ast.ArrayLiteral{Elements: d.expressions(d.seq(o, "elements"))})

	case "":
		d.failf(n, "expression is missing \"kind\"")
	default:
		d.failf(n, "unknown expression kind %q", o.kind)
	}
	return nil
}

func (d *decoder) pattern(n *yaml.Node) ast.Pattern {
	if n.Kind == yaml.ScalarNode {
		if n.Tag != "!!str" {
			d.failf(n, "pattern must be a name, got %s", describe(n))
			return nil
		}
		return place(d, nil, &ast.IdentifierPattern{Name: place(d, nil, &ast.Identifier{Value: n.Value})})
	}
	o := d.object(n)
	if o == nil {
		return nil
	}
	switch o.kind {
	case "Ident", "IdentPattern":
		d.allow(o, "name")
		return place(d, o, &ast.IdentifierPattern{Name: d.ident(o, "name")})

	case "ObjectPattern":
		d.allow(o, "properties")
		pat := &ast.ObjectPattern{}
		for _, pn := range d.seq(o, "properties") {
			pat.Properties = append(pat.Properties, d.property(pn))
		}
		return place(d, o, pat)

	case "ArrayPattern":
		d.allow(o, "elements")
		pat := &ast.ArrayPattern{}
		for _, en := range d.seq(o, "elements") {
			if isNull(en) {
				pat.Elements = append(pat.Elements, nil)
				continue
			}
			pat.Elements = append(pat.Elements, d.pattern(en))
		}
		return place(d, o, pat)

	case "":
		d.failf(n, "pattern is missing \"kind\"")
	default:
		d.failf(n, "unknown pattern kind %q", o.kind)
	}
	return nil
}

// property reads `a` (shorthand for a: a) or {key: a, value: pattern}.
func (d *decoder) property(n *yaml.Node) *ast.PropertyPattern {
	if n.Kind == yaml.ScalarNode {
		key := place(d, nil, &ast.Identifier{Value: n.Value})
		value := place(d, nil, &ast.IdentifierPattern{Name: place(d, nil, &ast.Identifier{Value: n.Value})})
		return place(d, nil, &ast.PropertyPattern{Key: key, Value: value})
	}
	o := d.object(n)
	d.allow(o, "key", "value")
	if o == nil {
		return nil
	}
	prop := &ast.PropertyPattern{Key: d.ident(o, "key")}
	if v := d.field(o, "value"); v != nil {
		prop.Value = d.pattern(v)
	} else {
		prop.Value = place(d, o, &ast.IdentifierPattern{Name: d.ident(o, "key")})
	}
	return place(d, o, prop)
}
