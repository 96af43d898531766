package typesystem

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Type is the interface for all types in our system.
// Types are immutable values; compare them with Equal, not ==.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TParam
}

// TPrim is a scalar: fixed-width integers, floats, boolean and void.
type TPrim struct {
	Name string
}

var (
	U8      = TPrim{Name: "u8"}
	U16     = TPrim{Name: "u16"}
	U32     = TPrim{Name: "u32"}
	U64     = TPrim{Name: "u64"}
	Usize   = TPrim{Name: "usize"}
	I8      = TPrim{Name: "i8"}
	I16     = TPrim{Name: "i16"}
	I32     = TPrim{Name: "i32"}
	I64     = TPrim{Name: "i64"}
	Isize   = TPrim{Name: "isize"}
	F32     = TPrim{Name: "f32"}
	F64     = TPrim{Name: "f64"}
	Boolean = TPrim{Name: "boolean"}
	Void    = TPrim{Name: "void"}
)

// Primitives lists every scalar in declaration order.
var Primitives = []TPrim{U8, U16, U32, U64, Usize, I8, I16, I32, I64, Isize, F32, F64, Boolean, Void}

func (t TPrim) String() string              { return t.Name }
func (t TPrim) Apply(Subst) Type            { return t }
func (t TPrim) FreeTypeVariables() []TParam { return nil }

// TUnknown is the top type: assignable to and from anything.
type TUnknown struct{}

var Unknown = TUnknown{}

func (t TUnknown) String() string              { return "unknown" }
func (t TUnknown) Apply(Subst) Type            { return t }
func (t TUnknown) FreeTypeVariables() []TParam { return nil }

// TPtr is a read-only pointer: *T
type TPtr struct {
	Elem Type
}

func (t TPtr) String() string { return "*" + t.Elem.String() }

func (t TPtr) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TPtr) FreeTypeVariables() []TParam { return t.Elem.FreeTypeVariables() }

// TMutPtr is a writable pointer: *mut T
type TMutPtr struct {
	Elem Type
}

func (t TMutPtr) String() string { return "*mut " + t.Elem.String() }

func (t TMutPtr) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TMutPtr) FreeTypeVariables() []TParam { return t.Elem.FreeTypeVariables() }

// TArray is a fixed-size array: T[N]
type TArray struct {
	Elem Type
	Size uint64
}

func (t TArray) String() string { return fmt.Sprintf("%s[%d]", t.Elem, t.Size) }

func (t TArray) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TArray) FreeTypeVariables() []TParam { return t.Elem.FreeTypeVariables() }

// TFunc is an unboxed function type.
type TFunc struct {
	Params   []Type
	Return   Type
	Variadic bool
}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	if t.Variadic {
		params = append(params, "...")
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), t.Return)
}

func (t TFunc) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TFunc) FreeTypeVariables() []TParam {
	var vars []TParam
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	vars = append(vars, t.Return.FreeTypeVariables()...)
	return uniqueParams(vars)
}

// TForall quantifies Body over the named type parameters: <T>(unknown) => T
type TForall struct {
	Params []string
	Body   Type
}

func (t TForall) String() string {
	return fmt.Sprintf("<%s>%s", strings.Join(t.Params, ", "), t.Body)
}

func (t TForall) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TForall) FreeTypeVariables() []TParam {
	var free []TParam
	for _, v := range t.Body.FreeTypeVariables() {
		if !slices.Contains(t.Params, v.Name) {
			free = append(free, v)
		}
	}
	return free
}

// TParam refers to a type parameter bound by an enclosing TForall.
type TParam struct {
	Name string
}

func (t TParam) String() string { return t.Name }

func (t TParam) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TParam) FreeTypeVariables() []TParam { return []TParam{t} }

// Composite is the nominal payload shared by a struct or union's
// constructor and instance types. Fields is filled after the Composite is
// created so that self-referencing declarations (struct Node { next: *Node })
// resolve to the same value instead of recursing.
type Composite struct {
	QualifiedName string
	Names         []string // declaration order
	Fields        map[string]Type
}

func NewComposite(qualifiedName string) *Composite {
	return &Composite{QualifiedName: qualifiedName, Fields: make(map[string]Type)}
}

// AddField appends a field. A repeated name keeps the first type.
func (c *Composite) AddField(name string, t Type) bool {
	if _, exists := c.Fields[name]; exists {
		return false
	}
	c.Names = append(c.Names, name)
	c.Fields[name] = t
	return true
}

func (c *Composite) Field(name string) (Type, bool) {
	t, ok := c.Fields[name]
	return t, ok
}

// TStructCtor is the type of a struct's name used as a value, i.e. the
// callee of a construction expression.
type TStructCtor struct{ *Composite }

// TStruct is the type of a constructed struct value.
type TStruct struct{ *Composite }

type TUnionCtor struct{ *Composite }

type TUnion struct{ *Composite }

func (t TStructCtor) String() string { return "struct " + t.QualifiedName }
func (t TStruct) String() string     { return t.QualifiedName }
func (t TUnionCtor) String() string  { return "union " + t.QualifiedName }
func (t TUnion) String() string      { return t.QualifiedName }

func (t TStructCtor) Apply(Subst) Type { return t }
func (t TStruct) Apply(Subst) Type     { return t }
func (t TUnionCtor) Apply(Subst) Type  { return t }
func (t TUnion) Apply(Subst) Type      { return t }

func (t TStructCtor) FreeTypeVariables() []TParam { return nil }
func (t TStruct) FreeTypeVariables() []TParam     { return nil }
func (t TUnionCtor) FreeTypeVariables() []TParam  { return nil }
func (t TUnion) FreeTypeVariables() []TParam      { return nil }

// Instance returns the value type a constructor builds, or nil.
func Instance(t Type) Type {
	switch c := t.(type) {
	case TStructCtor:
		return TStruct(c)
	case TUnionCtor:
		return TUnion(c)
	}
	return nil
}

// CompositeOf returns the payload of a struct or union type (either form).
func CompositeOf(t Type) (*Composite, bool) {
	switch c := t.(type) {
	case TStructCtor:
		return c.Composite, true
	case TStruct:
		return c.Composite, true
	case TUnionCtor:
		return c.Composite, true
	case TUnion:
		return c.Composite, true
	}
	return nil, false
}

// TOpaque is an extern type known only by name.
type TOpaque struct {
	QualifiedName string
}

func (t TOpaque) String() string              { return t.QualifiedName }
func (t TOpaque) Apply(Subst) Type            { return t }
func (t TOpaque) FreeTypeVariables() []TParam { return nil }

// TError is the poison type. It is produced once a diagnostic has been
// reported and is compatible with every other type.
type TError struct {
	Message string
}

func (t TError) String() string              { return "<error>" }
func (t TError) Apply(Subst) Type            { return t }
func (t TError) FreeTypeVariables() []TParam { return nil }

func Errorf(format string, args ...any) TError {
	return TError{Message: fmt.Sprintf(format, args...)}
}

func IsError(t Type) bool {
	_, ok := t.(TError)
	return ok
}

func IsUnknown(t Type) bool {
	_, ok := t.(TUnknown)
	return ok
}

func uniqueParams(vars []TParam) []TParam {
	seen := make(map[string]bool, len(vars))
	out := make([]TParam, 0, len(vars))
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			out = append(out, v)
		}
	}
	return out
}
