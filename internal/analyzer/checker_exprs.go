package analyzer

import (
	"fmt"
	"strings"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/token"
	"github.com/funvibe/jsc/internal/typesystem"
)

// stringType is the type of a string literal: a pointer to its first byte.
var stringType = typesystem.TPtr{Elem: typesystem.U8}

// infer computes the type of expr with no expectation.
func (c *Checker) infer(expr ast.Expression) typesystem.Type {
	if ast.IsNil(expr) {
		return typesystem.Unknown
	}
	if t, ok := c.ExprTypes[expr.NodeID()]; ok {
		return t
	}
	t := c.inferExpr(expr, nil)
	c.ExprTypes[expr.NodeID()] = t
	return t
}

// check validates expr against expected. Forms without a checking rule of
// their own are inferred and tested for assignability.
func (c *Checker) check(expr ast.Expression, expected typesystem.Type) {
	if ast.IsNil(expr) {
		return
	}
	if _, ok := c.ExprTypes[expr.NodeID()]; ok {
		return
	}

	var t typesystem.Type
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		t = c.checkNumber(e, expected)

	case *ast.ArrayLiteral:
		arr, ok := expected.(typesystem.TArray)
		if !ok {
			t = c.inferExpr(e, expected)
			c.expectAssignable(e, t, expected)
			break
		}
		if uint64(len(e.Elements)) != arr.Size {
			c.addError(e, diagnostics.ErrC023, len(e.Elements), arr.Size)
		}
		for _, el := range e.Elements {
			c.check(el, arr.Elem)
		}
		t = typesystem.TArray{Elem: arr.Elem, Size: uint64(len(e.Elements))}

	default:
		t = c.inferExpr(expr, expected)
		c.expectAssignable(expr, t, expected)
	}
	c.ExprTypes[expr.NodeID()] = t
}

// checkNumber gives a literal the expected type when the lexeme can take it.
func (c *Checker) checkNumber(e *ast.NumberLiteral, expected typesystem.Type) typesystem.Type {
	return c.checkNumeral(e, e.Raw, expected)
}

// checkNumeral validates raw, reporting against node. Negated literals pass
// the sign in raw so the range check sees the real value.
func (c *Checker) checkNumeral(node ast.Node, raw string, expected typesystem.Type) typesystem.Type {
	switch {
	case typesystem.IsError(expected), typesystem.IsUnknown(expected):
		return expected
	case typesystem.ConvertibleFromNumeral(expected):
		if err := typesystem.CheckNumeral(raw, expected); err != nil {
			c.addError(node, diagnostics.ErrC012, err.Error())
		}
		return expected
	case typesystem.IsBoolean(expected):
		c.addError(node, diagnostics.ErrC006, "a boolean")
	default:
		c.addError(node, diagnostics.ErrC006, fmt.Sprintf("a value of type %s, got a number", expected))
	}
	return typesystem.Errorf("number literal where %s was expected", expected)
}

// inferExpr computes the type of expr. hint is the expectation flowing in
// from check, or nil; only literal-driven operators consult it.
func (c *Checker) inferExpr(expr ast.Expression, hint typesystem.Type) typesystem.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		decl, ok := c.bindings.Values[e.NodeID()]
		if !ok {
			return typesystem.Errorf("unbound %s", e.Value)
		}
		return c.valueDeclType(e, decl)

	case *ast.NumberLiteral:
		// Deferred until an expectation is known.
		return typesystem.Unknown
	case *ast.StringLiteral:
		return stringType
	case *ast.BooleanLiteral:
		return typesystem.Boolean

	case *ast.BinaryExpression:
		return c.inferBinary(e, hint)
	case *ast.UnaryExpression:
		return c.inferUnary(e, hint)
	case *ast.AssignExpression:
		return c.inferAssign(e)
	case *ast.CallExpression:
		return c.inferCall(e)
	case *ast.TypeApplicationExpression:
		return c.inferTypeApplication(e)
	case *ast.MemberExpression:
		return c.inferMember(e)
	case *ast.IndexExpression:
		return c.inferIndex(e)
	case *ast.ConstructExpression:
		return c.inferConstruct(e)
	case *ast.ArrayLiteral:
		return c.inferArray(e)
	}
	panic(unhandledNode("checker", expr))
}

func isNumberLiteral(e ast.Expression) bool {
	_, ok := e.(*ast.NumberLiteral)
	return ok
}

// isLiteralArithmetic reports whether e is built only from number literals,
// negation and arithmetic. Such an expression takes its type from context.
func isLiteralArithmetic(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.NumberLiteral:
		return true
	case *ast.UnaryExpression:
		return e.Operator == token.MINUS && isLiteralArithmetic(e.Operand)
	case *ast.BinaryExpression:
		return e.Operator.IsArithmetic() && isLiteralArithmetic(e.Left) && isLiteralArithmetic(e.Right)
	}
	return false
}

func (c *Checker) inferBinary(e *ast.BinaryExpression, hint typesystem.Type) typesystem.Type {
	op := e.Operator
	switch {
	case op.IsLooseEquality():
		c.infer(e.Left)
		c.infer(e.Right)
		c.addError(e, diagnostics.ErrC004, op).WithHint("use `%s` instead", op.StrictForm())
		return typesystem.Errorf("loose equality")

	case op.IsStrictEquality():
		left := c.infer(e.Left)
		c.check(e.Right, left)
		return typesystem.Boolean

	case op.IsLogical():
		c.check(e.Left, typesystem.Boolean)
		c.check(e.Right, typesystem.Boolean)
		return typesystem.Boolean

	case op.IsArithmetic(), op.IsComparison():
		var operandHint typesystem.Type
		if op.IsArithmetic() {
			operandHint = hint
		}
		t := c.numericOperands(e, operandHint)
		switch {
		case typesystem.IsError(t):
			return t
		case op.IsComparison():
			return typesystem.Boolean
		}
		return t
	}
	panic(fmt.Errorf("checker: unhandled binary operator %q", op))
}

// numericOperands types the operands of an arithmetic or ordering operator.
// The operand that is not literal arithmetic drives; the other is checked
// against it. When both are literal the hint drives, so a non-numeric
// expectation is reported on the first literal.
func (c *Checker) numericOperands(e *ast.BinaryExpression, hint typesystem.Type) typesystem.Type {
	first, second := e.Left, e.Right
	if isLiteralArithmetic(first) && !isLiteralArithmetic(second) {
		first, second = second, first
	}

	var t typesystem.Type
	if isLiteralArithmetic(first) && hint != nil {
		c.check(first, hint)
		t = c.ExprTypes[first.NodeID()]
	} else {
		t = c.infer(first)
	}

	switch {
	case typesystem.IsError(t):
		c.infer(second)
		return t
	case typesystem.IsUnknown(t):
		c.infer(second)
		return t
	case !typesystem.IsNumeric(t):
		c.infer(second)
		c.addError(e, diagnostics.ErrC005, e.Operator, t)
		return typesystem.Errorf("operator %s on %s", e.Operator, t)
	}
	c.check(second, t)
	return t
}

func (c *Checker) inferUnary(e *ast.UnaryExpression, hint typesystem.Type) typesystem.Type {
	switch e.Operator {
	case token.BANG:
		c.check(e.Operand, typesystem.Boolean)
		return typesystem.Boolean

	case token.MINUS:
		var t typesystem.Type
		switch {
		case hint == nil || !isLiteralArithmetic(e.Operand):
			t = c.infer(e.Operand)
		case isNumberLiteral(e.Operand):
			lit := e.Operand.(*ast.NumberLiteral)
			t = c.checkNumeral(e, "-"+lit.Raw, hint)
			c.ExprTypes[lit.NodeID()] = t
		default:
			c.check(e.Operand, hint)
			t = c.ExprTypes[e.Operand.NodeID()]
		}
		switch {
		case typesystem.IsError(t), typesystem.IsUnknown(t):
			return t
		case !typesystem.IsNumeric(t):
			c.addError(e, diagnostics.ErrC005, e.Operator, t)
			return typesystem.Errorf("negation of %s", t)
		}
		return t

	case token.AMP:
		t := c.infer(e.Operand)
		if !c.isPlace(e.Operand) {
			c.addError(e, diagnostics.ErrC028)
			return typesystem.Errorf("address of non-place")
		}
		if typesystem.IsError(t) {
			return t
		}
		return typesystem.TPtr{Elem: t}

	case token.ASTERISK:
		t := c.infer(e.Operand)
		switch p := t.(type) {
		case typesystem.TPtr:
			return p.Elem
		case typesystem.TMutPtr:
			return p.Elem
		case typesystem.TError, typesystem.TUnknown:
			return t
		}
		c.addError(e, diagnostics.ErrC027, t)
		return typesystem.Errorf("dereference of %s", t)
	}
	panic(fmt.Errorf("checker: unhandled unary operator %q", e.Operator))
}

// isPlace reports whether expr denotes storage whose address can be taken.
func (c *Checker) isPlace(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		switch c.bindings.Values[e.NodeID()].(type) {
		case *symbols.VarDecl, *symbols.ParamDecl:
			return true
		case nil:
			// Unbound; already reported.
			return true
		}
		return false
	case *ast.MemberExpression:
		return c.isPlace(e.Object) || c.isPointer(e.Object)
	case *ast.IndexExpression:
		return true
	case *ast.UnaryExpression:
		return e.Operator == token.ASTERISK
	}
	return false
}

func (c *Checker) isPointer(expr ast.Expression) bool {
	switch c.infer(expr).(type) {
	case typesystem.TPtr, typesystem.TMutPtr:
		return true
	}
	return false
}

func (c *Checker) inferAssign(e *ast.AssignExpression) typesystem.Type {
	ident, ok := e.Left.(*ast.IdentifierPattern)
	if !ok {
		c.addError(e.Left, diagnostics.ErrC018)
		c.infer(e.Value)
		return typesystem.Errorf("unsupported assignment target")
	}
	name := ident.Name
	decl, bound := c.bindings.Values[name.NodeID()]
	if !bound {
		c.infer(e.Value)
		return typesystem.Errorf("assignment to unbound %s", name.Value)
	}

	var target typesystem.Type
	switch d := decl.(type) {
	case *symbols.VarDecl:
		if d.IsConst() {
			c.addError(name, diagnostics.ErrC010, name.Value)
		}
		target = c.varType(d)
	case *symbols.ParamDecl:
		target = c.paramType(d)
	default:
		c.addError(e.Left, diagnostics.ErrC018)
		c.infer(e.Value)
		return typesystem.Errorf("assignment to %s", name.Value)
	}
	c.ExprTypes[name.NodeID()] = target
	c.check(e.Value, target)
	return target
}

func (c *Checker) inferCall(e *ast.CallExpression) typesystem.Type {
	callee := c.infer(e.Callee)
	inferArgs := func() {
		for _, arg := range e.Arguments {
			c.infer(arg)
		}
	}

	switch fn := callee.(type) {
	case typesystem.TError, typesystem.TUnknown:
		inferArgs()
		return callee

	case typesystem.TForall:
		inferArgs()
		c.addError(e.Callee, diagnostics.ErrC009, fn)
		return typesystem.Errorf("generic call without type arguments")

	case typesystem.TFunc:
		want, got := len(fn.Params), len(e.Arguments)
		if got < want || (got > want && !fn.Variadic) {
			c.addError(e, diagnostics.ErrC013, want, got)
		}
		for i, arg := range e.Arguments {
			if i < want {
				c.check(arg, fn.Params[i])
			} else {
				c.infer(arg)
			}
		}
		return fn.Return
	}

	inferArgs()
	c.addError(e.Callee, diagnostics.ErrC008, callee)
	return typesystem.Errorf("call of %s", callee)
}

// inferTypeApplication instantiates a generic value. A wrong number of type
// arguments is reported, and the pairs that are present are still applied.
func (c *Checker) inferTypeApplication(e *ast.TypeApplicationExpression) typesystem.Type {
	t := c.infer(e.Expression)
	args := make([]typesystem.Type, len(e.TypeArgs))
	for i, a := range e.TypeArgs {
		args[i] = c.annotationType(a)
	}

	switch f := t.(type) {
	case typesystem.TError, typesystem.TUnknown:
		return t
	case typesystem.TForall:
		if len(args) != len(f.Params) {
			c.addError(e, diagnostics.ErrC014, len(f.Params), len(args))
		}
		return typesystem.Instantiate(f, args)
	}
	c.addError(e, diagnostics.ErrC015, t)
	return typesystem.Errorf("type application of %s", t)
}

func (c *Checker) inferMember(e *ast.MemberExpression) typesystem.Type {
	if ident, ok := e.Object.(*ast.Identifier); ok {
		if module, ok := c.bindings.Values[ident.NodeID()].(*symbols.ModuleDecl); ok {
			return c.moduleMember(module, e.Property)
		}
	}

	obj := c.infer(e.Object)
	switch p := obj.(type) {
	case typesystem.TPtr:
		obj = p.Elem
	case typesystem.TMutPtr:
		obj = p.Elem
	}
	switch obj.(type) {
	case typesystem.TError, typesystem.TUnknown:
		return obj
	case typesystem.TStruct, typesystem.TUnion:
		comp, _ := typesystem.CompositeOf(obj)
		if t, ok := comp.Field(e.Property.Value); ok {
			return t
		}
		err := c.addError(e.Property, diagnostics.ErrC016, obj, e.Property.Value)
		if len(comp.Names) > 0 {
			err.WithHint("available fields: %s", strings.Join(comp.Names, ", "))
		}
		return typesystem.Errorf("no property %s", e.Property.Value)
	}
	c.addError(e.Property, diagnostics.ErrC016, obj, e.Property.Value)
	return typesystem.Errorf("no property %s", e.Property.Value)
}

// moduleMember looks a property up among a namespace import's members. The
// member is recorded as a binding of the property identifier.
func (c *Checker) moduleMember(module *symbols.ModuleDecl, prop *ast.Identifier) typesystem.Type {
	decl, vis := module.LookupValue(prop.Value)
	switch vis {
	case symbols.Exported:
		c.bindings.Values[prop.NodeID()] = decl
		return c.valueDeclType(prop, decl)
	case symbols.Private:
		c.addError(prop, diagnostics.ErrR006, prop.Value, module.RawPath)
	default:
		err := c.addError(prop, diagnostics.ErrR007, module.RawPath, prop.Value)
		if names := module.ExportedNames(); len(names) > 0 {
			err.WithHint("available members: %s", strings.Join(names, ", "))
		}
	}
	return typesystem.Errorf("member %s of %s", prop.Value, module.RawPath)
}

func (c *Checker) inferIndex(e *ast.IndexExpression) typesystem.Type {
	obj := c.infer(e.Object)
	idx := c.infer(e.Index)
	if !typesystem.IsIntegral(idx) && !typesystem.IsError(idx) && !typesystem.IsUnknown(idx) {
		c.addError(e.Index, diagnostics.ErrC001, "an integer", idx)
	}
	switch o := obj.(type) {
	case typesystem.TArray:
		return o.Elem
	case typesystem.TPtr:
		return o.Elem
	case typesystem.TMutPtr:
		return o.Elem
	case typesystem.TError, typesystem.TUnknown:
		return obj
	}
	c.addError(e.Object, diagnostics.ErrC024, obj)
	return typesystem.Errorf("index of %s", obj)
}

// inferConstruct checks a struct or union literal. Structs need every field
// exactly once; unions exactly one variant.
func (c *Checker) inferConstruct(e *ast.ConstructExpression) typesystem.Type {
	callee := c.infer(e.Callee)
	comp, ok := typesystem.CompositeOf(callee)
	instance := typesystem.Instance(callee)
	if !ok || instance == nil {
		for _, f := range e.Fields {
			c.infer(f.Value)
		}
		if typesystem.IsError(callee) {
			return callee
		}
		c.addError(e.Callee, diagnostics.ErrC026, callee)
		return typesystem.Errorf("construct %s", callee)
	}

	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		name := f.Name.Value
		if seen[name] {
			c.addError(f.Name, diagnostics.ErrC021, name)
			c.infer(f.Value)
			continue
		}
		seen[name] = true
		ft, ok := comp.Field(name)
		if !ok {
			c.addError(f.Name, diagnostics.ErrC020, name, comp.QualifiedName)
			c.infer(f.Value)
			continue
		}
		c.check(f.Value, ft)
	}

	switch instance.(type) {
	case typesystem.TStruct:
		for _, name := range comp.Names {
			if !seen[name] {
				c.addError(e, diagnostics.ErrC019, name, comp.QualifiedName)
			}
		}
	case typesystem.TUnion:
		if len(e.Fields) != 1 {
			c.addError(e, diagnostics.ErrC022, comp.QualifiedName)
		}
	}
	return instance
}

// inferArray takes the element type from the first element that is not a
// bare literal; the other elements are checked against it.
func (c *Checker) inferArray(e *ast.ArrayLiteral) typesystem.Type {
	var elem typesystem.Type = typesystem.Unknown
	driver := -1
	for i, el := range e.Elements {
		if !isNumberLiteral(el) {
			elem = c.infer(el)
			driver = i
			break
		}
	}
	for i, el := range e.Elements {
		if i != driver {
			c.check(el, elem)
		}
	}
	return typesystem.TArray{Elem: elem, Size: uint64(len(e.Elements))}
}
