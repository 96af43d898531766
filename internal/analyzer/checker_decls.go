package analyzer

import (
	"fmt"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/typesystem"
)

// annotationType converts a written type. Unresolved names were reported by
// the resolver and become Error here without a second diagnostic.
func (c *Checker) annotationType(t ast.TypeAnnotation) typesystem.Type {
	if ast.IsNil(t) {
		return typesystem.Unknown
	}
	if cached, ok := c.AnnotationTypes[t.NodeID()]; ok {
		return cached
	}
	// Placeholder for annotations reached again through an alias cycle.
	c.AnnotationTypes[t.NodeID()] = typesystem.Unknown

	var result typesystem.Type
	switch a := t.(type) {
	case *ast.TypeName:
		decl, ok := c.bindings.Types[a.Name.NodeID()]
		if !ok {
			result = typesystem.Errorf("unbound type %s", a.Name.Value)
			break
		}
		result = c.typeDeclType(decl)

	case *ast.QualifiedTypeName:
		decl, ok := c.bindings.Types[a.NodeID()]
		if !ok {
			result = typesystem.Errorf("unbound qualified type %s", a.Head.Value)
			break
		}
		result = c.typeDeclType(decl)

	case *ast.PointerType:
		elem := c.annotationType(a.Elem)
		if a.Mutable {
			result = typesystem.TMutPtr{Elem: elem}
		} else {
			result = typesystem.TPtr{Elem: elem}
		}

	case *ast.ArrayType:
		elem := c.annotationType(a.Elem)
		size, err := typesystem.ArraySize(a.Size)
		if err != nil {
			c.addError(a, diagnostics.ErrC025, a.Size)
			result = typesystem.Errorf("%v", err)
			break
		}
		result = typesystem.TArray{Elem: elem, Size: size}

	case *ast.FunctionType:
		fn := typesystem.TFunc{Variadic: a.Variadic, Return: typesystem.Void}
		for _, p := range a.Params {
			fn.Params = append(fn.Params, c.annotationType(p))
		}
		if a.Return != nil {
			fn.Return = c.annotationType(a.Return)
		}
		result = fn

	default:
		panic(unhandledNode("checker", t))
	}
	c.AnnotationTypes[t.NodeID()] = result
	return result
}

func (c *Checker) typeDeclType(decl symbols.TypeDecl) typesystem.Type {
	switch d := decl.(type) {
	case *symbols.BuiltinTypeDecl:
		return d.Type
	case *symbols.TypeAliasDecl:
		return c.aliasType(d.Node)
	case *symbols.StructDecl:
		return typesystem.TStruct{Composite: c.structComposite(d)}
	case *symbols.UnionDecl:
		return typesystem.TUnion{Composite: c.unionComposite(d)}
	case *symbols.ExternTypeDecl:
		return typesystem.TOpaque{QualifiedName: d.Node.Name.Value}
	}
	panic(unhandledNode("checker", decl.DeclNode()))
}

// valueDeclType is the type an identifier bound to decl has at use.
func (c *Checker) valueDeclType(use ast.Node, decl symbols.ValueDecl) typesystem.Type {
	switch d := decl.(type) {
	case *symbols.VarDecl:
		return c.varType(d)
	case *symbols.ParamDecl:
		return c.paramType(d)
	case *symbols.FuncDecl:
		return c.signature(d.Node)
	case *symbols.ExternFuncDecl:
		return c.externSignature(d.Node)
	case *symbols.BuiltinDecl:
		return d.Type
	case *symbols.StructDecl:
		return typesystem.TStructCtor{Composite: c.structComposite(d)}
	case *symbols.UnionDecl:
		return typesystem.TUnionCtor{Composite: c.unionComposite(d)}
	case *symbols.ModuleDecl:
		c.addError(use, diagnostics.ErrC029, d.Name.Value)
		return typesystem.Errorf("module %s used as a value", d.Name.Value)
	}
	panic(unhandledNode("checker", decl.DeclNode()))
}

// aliasType resolves a type alias. A cycle is reported once, on the alias
// where it was detected, and every alias on the cycle becomes Error.
func (c *Checker) aliasType(node *ast.TypeAliasDeclaration) typesystem.Type {
	id := node.NodeID()
	if t, ok := c.aliases[id]; ok {
		return t
	}
	if c.aliasBusy[id] {
		c.addError(node.Name, diagnostics.ErrC017, node.Name.Value)
		t := typesystem.Errorf("cyclic alias %s", node.Name.Value)
		c.aliases[id] = t
		return t
	}
	c.aliasBusy[id] = true
	t := c.annotationType(node.Type)
	delete(c.aliasBusy, id)
	if prev, ok := c.aliases[id]; ok {
		// The cycle came back around to this alias.
		return prev
	}
	c.aliases[id] = t
	return t
}

func (c *Checker) structComposite(d *symbols.StructDecl) *typesystem.Composite {
	return c.composite(d.Node, d.QualifiedName(), d.Node.Fields)
}

func (c *Checker) unionComposite(d *symbols.UnionDecl) *typesystem.Composite {
	return c.composite(d.Node, d.QualifiedName(), d.Node.Variants)
}

// composite builds the shared payload of a struct or union. The empty
// Composite is memoized before its fields are converted, so a field of
// type *Self sees the same value.
func (c *Checker) composite(node ast.Node, qualified string, fields []*ast.Field) *typesystem.Composite {
	if comp, ok := c.composites[node.NodeID()]; ok {
		return comp
	}
	comp := typesystem.NewComposite(qualified)
	c.composites[node.NodeID()] = comp
	for _, f := range fields {
		t := c.annotationType(f.Type)
		if !comp.AddField(f.Name.Value, t) {
			c.addError(f.Name, diagnostics.ErrC030, f.Name.Value)
		}
	}
	return comp
}

// signature is the memoized type of a function declaration. Missing
// annotations are reported here and nowhere else.
func (c *Checker) signature(fn *ast.FunctionDeclaration) typesystem.TFunc {
	id := fn.NodeID()
	if sig, ok := c.signatures[id]; ok {
		return sig
	}
	placeholder := typesystem.TFunc{Params: make([]typesystem.Type, len(fn.Params)), Return: typesystem.Unknown}
	for i := range placeholder.Params {
		placeholder.Params[i] = typesystem.Unknown
	}
	c.signatures[id] = placeholder

	sig := typesystem.TFunc{Params: c.paramTypes(fn.Params)}
	if fn.ReturnType == nil {
		c.addError(fn.Name, diagnostics.ErrC003, fn.Name.Value)
		sig.Return = typesystem.Unknown
	} else {
		sig.Return = c.annotationType(fn.ReturnType)
	}
	c.signatures[id] = sig
	return sig
}

func (c *Checker) externSignature(fn *ast.ExternFunction) typesystem.TFunc {
	id := fn.NodeID()
	if sig, ok := c.signatures[id]; ok {
		return sig
	}
	sig := typesystem.TFunc{Params: c.paramTypes(fn.Params), Return: typesystem.Void, Variadic: fn.Variadic}
	if fn.ReturnType != nil {
		sig.Return = c.annotationType(fn.ReturnType)
	}
	c.signatures[id] = sig
	return sig
}

func (c *Checker) paramTypes(params []*ast.Param) []typesystem.Type {
	out := make([]typesystem.Type, len(params))
	for i, p := range params {
		var annotated typesystem.Type
		if p.Type != nil {
			annotated = c.annotationType(p.Type)
		}
		ident, simple := p.Pattern.(*ast.IdentifierPattern)
		switch {
		case !simple:
			c.addError(p.Pattern, diagnostics.ErrC007)
			out[i] = typesystem.Errorf("destructured parameter")
		case annotated == nil:
			c.addError(ident.Name, diagnostics.ErrC002, ident.Name.Value)
			out[i] = typesystem.Errorf("parameter %s has no type", ident.Name.Value)
		default:
			out[i] = annotated
		}
	}
	return out
}

func (c *Checker) paramType(d *symbols.ParamDecl) typesystem.Type {
	sig := c.signature(d.Func)
	if d.Index < 0 || d.Index >= len(sig.Params) {
		panic(fmt.Errorf("checker: parameter %d of %s out of range", d.Index, d.Func.Name.Value))
	}
	return sig.Params[d.Index]
}

func (c *Checker) varType(d *symbols.VarDecl) typesystem.Type {
	c.checkVarDecl(d.Stmt)
	t, ok := c.varTypes[d.Name.NodeID()]
	if !ok {
		panic(fmt.Errorf("checker: no type recorded for variable %s", d.Name.Value))
	}
	return t
}

// checkVarDecl types every name of a declaration statement once. Names get
// an unknown placeholder first so an initializer mentioning its own
// variable terminates.
func (c *Checker) checkVarDecl(stmt *ast.VariableDeclaration) {
	id := stmt.NodeID()
	if c.varDone[id] {
		return
	}
	c.varDone[id] = true
	for _, d := range stmt.Declarators {
		for _, name := range ast.BindingNames(d.Pattern) {
			c.varTypes[name.NodeID()] = typesystem.Unknown
		}
	}

	var declared []symbols.DeclaredVar
	for _, d := range stmt.Declarators {
		var annotated typesystem.Type
		if d.Type != nil {
			annotated = c.annotationType(d.Type)
		}

		ident, simple := d.Pattern.(*ast.IdentifierPattern)
		if !simple {
			c.addError(d.Pattern, diagnostics.ErrC007)
			if d.Init != nil {
				c.infer(d.Init)
			}
			for _, name := range ast.BindingNames(d.Pattern) {
				t := typesystem.Errorf("destructured %s", name.Value)
				c.varTypes[name.NodeID()] = t
				declared = append(declared, symbols.DeclaredVar{Name: name, Type: t, Init: d.Init})
			}
			continue
		}

		var t typesystem.Type
		switch {
		case annotated != nil:
			t = annotated
			if d.Init != nil {
				c.check(d.Init, t)
			}
		case d.Init != nil:
			t = c.infer(d.Init)
		default:
			t = typesystem.Unknown
		}
		c.varTypes[ident.Name.NodeID()] = t
		declared = append(declared, symbols.DeclaredVar{Name: ident.Name, Type: t, Init: d.Init})
	}
	c.VarDecls[id] = declared
}
