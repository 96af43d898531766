package ast

import "reflect"

// Inspect walks the tree rooted at node in pre-order, calling fn for every
// node. If fn returns false the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if IsNil(node) || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, fn)
		}
	case *ImportStatement:
		if n.Path != nil {
			Inspect(n.Path, fn)
		}
		for _, spec := range n.Names {
			Inspect(spec, fn)
		}
		if n.Namespace != nil {
			Inspect(n.Namespace, fn)
		}
	case *ImportSpecifier:
		Inspect(n.Name, fn)
		if n.Alias != nil {
			Inspect(n.Alias, fn)
		}
	case *FunctionDeclaration:
		Inspect(n.Name, fn)
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		Inspect(n.ReturnType, fn)
		if n.Body != nil {
			Inspect(n.Body, fn)
		}
	case *Param:
		Inspect(n.Pattern, fn)
		Inspect(n.Type, fn)
	case *VariableDeclaration:
		for _, d := range n.Declarators {
			Inspect(d, fn)
		}
	case *VarDeclarator:
		Inspect(n.Pattern, fn)
		Inspect(n.Type, fn)
		Inspect(n.Init, fn)
	case *StructDeclaration:
		Inspect(n.Name, fn)
		for _, f := range n.Fields {
			Inspect(f, fn)
		}
	case *UnionDeclaration:
		Inspect(n.Name, fn)
		for _, f := range n.Variants {
			Inspect(f, fn)
		}
	case *Field:
		Inspect(n.Name, fn)
		Inspect(n.Type, fn)
	case *TypeAliasDeclaration:
		Inspect(n.Name, fn)
		Inspect(n.Type, fn)
	case *ExternFunction:
		Inspect(n.Name, fn)
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		Inspect(n.ReturnType, fn)
	case *ExternType:
		Inspect(n.Name, fn)
	case *BlockStatement:
		for _, s := range n.Statements {
			Inspect(s, fn)
		}
	case *ExpressionStatement:
		Inspect(n.Expression, fn)
	case *ReturnStatement:
		Inspect(n.Value, fn)
	case *IfStatement:
		Inspect(n.Condition, fn)
		Inspect(n.Consequence, fn)
		Inspect(n.Alternative, fn)
	case *WhileStatement:
		Inspect(n.Condition, fn)
		Inspect(n.Body, fn)
	case *ForStatement:
		Inspect(n.Init, fn)
		Inspect(n.Condition, fn)
		Inspect(n.Update, fn)
		Inspect(n.Body, fn)
	case *BinaryExpression:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *UnaryExpression:
		Inspect(n.Operand, fn)
	case *AssignExpression:
		Inspect(n.Left, fn)
		Inspect(n.Value, fn)
	case *CallExpression:
		Inspect(n.Callee, fn)
		for _, a := range n.Arguments {
			Inspect(a, fn)
		}
	case *TypeApplicationExpression:
		Inspect(n.Expression, fn)
		for _, t := range n.TypeArgs {
			Inspect(t, fn)
		}
	case *MemberExpression:
		Inspect(n.Object, fn)
		Inspect(n.Property, fn)
	case *IndexExpression:
		Inspect(n.Object, fn)
		Inspect(n.Index, fn)
	case *ConstructExpression:
		Inspect(n.Callee, fn)
		for _, f := range n.Fields {
			Inspect(f, fn)
		}
	case *FieldInit:
		Inspect(n.Name, fn)
		Inspect(n.Value, fn)
	case *ArrayLiteral:
		for _, e := range n.Elements {
			Inspect(e, fn)
		}
	case *IdentifierPattern:
		Inspect(n.Name, fn)
	case *ObjectPattern:
		for _, p := range n.Properties {
			Inspect(p, fn)
		}
	case *PropertyPattern:
		Inspect(n.Key, fn)
		Inspect(n.Value, fn)
	case *ArrayPattern:
		for _, el := range n.Elements {
			Inspect(el, fn)
		}
	case *TypeName:
		Inspect(n.Name, fn)
	case *QualifiedTypeName:
		Inspect(n.Head, fn)
		for _, m := range n.Members {
			Inspect(m, fn)
		}
	case *PointerType:
		Inspect(n.Elem, fn)
	case *ArrayType:
		Inspect(n.Elem, fn)
	case *FunctionType:
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		Inspect(n.Return, fn)
	}
}

// IsNil catches typed nil pointers stored in a Node interface, e.g. an
// absent *Identifier alias.
func IsNil(node Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
