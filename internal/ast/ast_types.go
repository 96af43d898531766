package ast

// IdentifierPattern binds a single name.
type IdentifierPattern struct {
	Meta
	Name *Identifier
}

// PropertyPattern is `key: value` inside an object pattern; `{ a }` has
// Value set to an IdentifierPattern for a.
type PropertyPattern struct {
	Meta
	Key   *Identifier
	Value Pattern
}

// ObjectPattern: { a, b: c }
type ObjectPattern struct {
	Meta
	Properties []*PropertyPattern
}

// ArrayPattern: [a, b]. Holes are nil.
type ArrayPattern struct {
	Meta
	Elements []Pattern
}

func (p *IdentifierPattern) patternNode() {}
func (p *ObjectPattern) patternNode()     {}
func (p *ArrayPattern) patternNode()      {}

// BindingNames flattens a pattern to the identifiers it binds, in source order.
func BindingNames(p Pattern) []*Identifier {
	var out []*Identifier
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch pat := p.(type) {
		case *IdentifierPattern:
			out = append(out, pat.Name)
		case *ObjectPattern:
			for _, prop := range pat.Properties {
				walk(prop.Value)
			}
		case *ArrayPattern:
			for _, el := range pat.Elements {
				if el != nil {
					walk(el)
				}
			}
		}
	}
	if p != nil {
		walk(p)
	}
	return out
}

// TypeName is a type identifier: u32, Point
type TypeName struct {
	Meta
	Name *Identifier
}

// QualifiedTypeName is Module.Member. Members holds every segment after the
// head; only a single member is valid.
type QualifiedTypeName struct {
	Meta
	Head    *Identifier
	Members []*Identifier
}

// PointerType: *T or *mut T
type PointerType struct {
	Meta
	Mutable bool
	Elem    TypeAnnotation
}

// ArrayType: T[N]. Size is the raw lexeme.
type ArrayType struct {
	Meta
	Elem TypeAnnotation
	Size string
}

// FunctionType: (a: T, b: U) => R
type FunctionType struct {
	Meta
	Params   []TypeAnnotation
	Return   TypeAnnotation
	Variadic bool
}

func (t *TypeName) typeNode()          {}
func (t *QualifiedTypeName) typeNode() {}
func (t *PointerType) typeNode()       {}
func (t *ArrayType) typeNode()         {}
func (t *FunctionType) typeNode()      {}
