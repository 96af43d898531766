package treeio

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsc/internal/ast"
)

func (d *decoder) statements(nodes []*yaml.Node) []ast.Statement {
	out := make([]ast.Statement, 0, len(nodes))
	for _, n := range nodes {
		if stmt := d.statement(n); stmt != nil {
			out = append(out, stmt)
		}
	}
	return out
}

func (d *decoder) optStatement(o *object, name string) ast.Statement {
	n := d.field(o, name)
	if n == nil {
		return nil
	}
	return d.statement(n)
}

func (d *decoder) statement(n *yaml.Node) ast.Statement {
	o := d.object(n)
	if o == nil {
		return nil
	}
	switch o.kind {
	case "Import":
		d.allow(o, "path", "names", "namespace")
		return d.importStatement(o)

	case "Function":
		d.allow(o, "exported", "name", "params", "returns", "body")
		fn := &ast.FunctionDeclaration{
			Exported: d.flag(o, "exported"),
			Name:     d.ident(o, "name"),
			Params:   d.params(d.seq(o, "params")),
		}
		if t := d.field(o, "returns"); t != nil {
			fn.ReturnType = d.typeAnnotation(t)
		}
		fn.Body = place(d, o, &ast.BlockStatement{Statements: d.statements(d.seq(o, "body"))})
		return place(d, o, fn)

	case "Let", "Const":
		d.allow(o, "exported", "declarators", "name", "pattern", "type", "init")
		decl := &ast.VariableDeclaration{Exported: d.flag(o, "exported"), Kind: ast.VarLet}
		if o.kind == "Const" {
			decl.Kind = ast.VarConst
		}
		if o.has("declarators") {
			for _, dn := range d.seq(o, "declarators") {
				do := d.object(dn)
				d.allow(do, "name", "pattern", "type", "init")
				if do != nil {
					decl.Declarators = append(decl.Declarators, d.declarator(do))
				}
			}
		} else {
			decl.Declarators = []*ast.VarDeclarator{d.declarator(o)}
		}
		return place(d, o, decl)

	case "Struct":
		d.allow(o, "exported", "name", "fields")
		return place(d, o, &ast.StructDeclaration{
			Exported: d.flag(o, "exported"),
			Name:     d.ident(o, "name"),
			Fields:   d.fields(d.seq(o, "fields")),
		})

	case "Union":
		d.allow(o, "exported", "name", "variants")
		return place(d, o, &ast.UnionDeclaration{
			Exported: d.flag(o, "exported"),
			Name:     d.ident(o, "name"),
			Variants: d.fields(d.seq(o, "variants")),
		})

	case "TypeAlias":
		d.allow(o, "exported", "name", "type")
		alias := &ast.TypeAliasDeclaration{Exported: d.flag(o, "exported"), Name: d.ident(o, "name")}
		if t := d.field(o, "type"); t != nil {
			alias.Type = d.typeAnnotation(t)
		} else {
			d.failf(n, "TypeAlias is missing \"type\"")
		}
		return place(d, o, alias)

	case "ExternFunction":
		d.allow(o, "exported", "name", "params", "returns", "variadic")
		fn := &ast.ExternFunction{
			Exported: d.flag(o, "exported"),
			Name:     d.ident(o, "name"),
			Params:   d.params(d.seq(o, "params")),
			Variadic: d.flag(o, "variadic"),
		}
		if t := d.field(o, "returns"); t != nil {
			fn.ReturnType = d.typeAnnotation(t)
		}
		return place(d, o, fn)

	case "ExternType":
		d.allow(o, "exported", "name")
		return place(d, o, &ast.ExternType{Exported: d.flag(o, "exported"), Name: d.ident(o, "name")})

	case "Block":
		d.allow(o, "body")
		return place(d, o, &ast.BlockStatement{Statements: d.statements(d.seq(o, "body"))})

	case "Expr":
		d.allow(o, "expr")
		return place(d, o, &ast.ExpressionStatement{Expression: d.requiredExpr(o, "expr")})

	case "Return":
		d.allow(o, "value")
		return place(d, o, &ast.ReturnStatement{Value: d.optExpr(o, "value")})

	case "If":
		d.allow(o, "cond", "then", "else")
		return place(d, o, &ast.IfStatement{
			Condition:   d.requiredExpr(o, "cond"),
			Consequence: d.optStatement(o, "then"),
			Alternative: d.optStatement(o, "else"),
		})

	case "While":
		d.allow(o, "cond", "body")
		return place(d, o, &ast.WhileStatement{
			Condition: d.requiredExpr(o, "cond"),
			Body:      d.optStatement(o, "body"),
		})

	case "For":
		d.allow(o, "init", "cond", "update", "body")
		return place(d, o, &ast.ForStatement{
			Init:      d.optStatement(o, "init"),
			Condition: d.optExpr(o, "cond"),
			Update:    d.optExpr(o, "update"),
			Body:      d.optStatement(o, "body"),
		})

	case "Break":
		d.allow(o)
		return place(d, o, &ast.BreakStatement{})
	case "Continue":
		d.allow(o)
		return place(d, o, &ast.ContinueStatement{})

	case "":
		d.failf(n, "statement is missing \"kind\"")
	default:
		d.failf(n, "unknown statement kind %q", o.kind)
	}
	return nil
}

// importStatement reads `names: [a, "b as c"]` or `namespace: ns`.
func (d *decoder) importStatement(o *object) *ast.ImportStatement {
	imp := &ast.ImportStatement{Path: place(d, o, &ast.StringLiteral{Value: d.str(o, "path")})}
	if o.has("namespace") {
		imp.Namespace = d.ident(o, "namespace")
	}
	for _, n := range d.seq(o, "names") {
		if n.Kind != yaml.ScalarNode {
			d.failf(n, "import names must be strings, got %s", describe(n))
			continue
		}
		spec := &ast.ImportSpecifier{}
		if orig, alias, ok := strings.Cut(n.Value, " as "); ok {
			spec.Name = place(d, o, &ast.Identifier{Value: strings.TrimSpace(orig)})
			spec.Alias = place(d, o, &ast.Identifier{Value: strings.TrimSpace(alias)})
		} else {
			spec.Name = place(d, o, &ast.Identifier{Value: n.Value})
		}
		imp.Names = append(imp.Names, place(d, o, spec))
	}
	if imp.Namespace != nil && len(imp.Names) > 0 {
		d.failf(o.node, "an import has either names or a namespace, not both")
	}
	return place(d, o, imp)
}

func (d *decoder) declarator(o *object) *ast.VarDeclarator {
	decl := &ast.VarDeclarator{Pattern: d.bindingPattern(o)}
	if t := d.field(o, "type"); t != nil {
		decl.Type = d.typeAnnotation(t)
	}
	decl.Init = d.optExpr(o, "init")
	return place(d, o, decl)
}

// bindingPattern reads `name: x` or `pattern: ...`.
func (d *decoder) bindingPattern(o *object) ast.Pattern {
	if p := d.field(o, "pattern"); p != nil {
		return d.pattern(p)
	}
	name := d.ident(o, "name")
	return place(d, o, &ast.IdentifierPattern{Name: name})
}

func (d *decoder) params(nodes []*yaml.Node) []*ast.Param {
	out := make([]*ast.Param, 0, len(nodes))
	for _, n := range nodes {
		o := d.object(n)
		d.allow(o, "name", "pattern", "type")
		if o == nil {
			continue
		}
		p := &ast.Param{Pattern: d.bindingPattern(o)}
		if t := d.field(o, "type"); t != nil {
			p.Type = d.typeAnnotation(t)
		}
		out = append(out, place(d, o, p))
	}
	return out
}

func (d *decoder) fields(nodes []*yaml.Node) []*ast.Field {
	out := make([]*ast.Field, 0, len(nodes))
	for _, n := range nodes {
		o := d.object(n)
		d.allow(o, "name", "type")
		if o == nil {
			continue
		}
		f := &ast.Field{Name: d.ident(o, "name")}
		if t := d.field(o, "type"); t != nil {
			f.Type = d.typeAnnotation(t)
		} else {
			d.failf(n, "field %q is missing \"type\"", f.Name.Value)
		}
		out = append(out, place(d, o, f))
	}
	return out
}
