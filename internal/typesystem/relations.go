package typesystem

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Equal reports structural equality. Struct, union and opaque types compare
// by qualified name; constructor and instance forms are distinct.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case TPrim:
		y, ok := b.(TPrim)
		return ok && x.Name == y.Name
	case TUnknown:
		_, ok := b.(TUnknown)
		return ok
	case TPtr:
		y, ok := b.(TPtr)
		return ok && Equal(x.Elem, y.Elem)
	case TMutPtr:
		y, ok := b.(TMutPtr)
		return ok && Equal(x.Elem, y.Elem)
	case TArray:
		y, ok := b.(TArray)
		return ok && x.Size == y.Size && Equal(x.Elem, y.Elem)
	case TFunc:
		y, ok := b.(TFunc)
		if !ok || x.Variadic != y.Variadic || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !Equal(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return Equal(x.Return, y.Return)
	case TForall:
		y, ok := b.(TForall)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		// Alpha-equivalence: rename y's parameters to x's.
		renamed := make(Subst, len(y.Params))
		for i, p := range y.Params {
			renamed[p] = TParam{Name: x.Params[i]}
		}
		return Equal(x.Body, Apply(renamed, y.Body))
	case TParam:
		y, ok := b.(TParam)
		return ok && x.Name == y.Name
	case TStructCtor:
		y, ok := b.(TStructCtor)
		return ok && x.QualifiedName == y.QualifiedName
	case TStruct:
		y, ok := b.(TStruct)
		return ok && x.QualifiedName == y.QualifiedName
	case TUnionCtor:
		y, ok := b.(TUnionCtor)
		return ok && x.QualifiedName == y.QualifiedName
	case TUnion:
		y, ok := b.(TUnion)
		return ok && x.QualifiedName == y.QualifiedName
	case TOpaque:
		y, ok := b.(TOpaque)
		return ok && x.QualifiedName == y.QualifiedName
	case TError:
		_, ok := b.(TError)
		return ok
	}
	panic(fmt.Sprintf("typesystem: unhandled type %T", a))
}

// IsAssignable reports whether a value of type source may be stored where
// target is expected. Error on either side is always accepted so a single
// failure is reported once. Unknown is the top type at the outermost level
// only; everything else must be structurally Equal, so *u8 is not a *i8.
func IsAssignable(source, target Type) bool {
	if IsError(source) || IsError(target) {
		return true
	}
	if IsUnknown(source) || IsUnknown(target) {
		return true
	}
	return Equal(source, target)
}

var integralNames = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true, "usize": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "isize": true,
}

func IsIntegral(t Type) bool {
	p, ok := t.(TPrim)
	return ok && integralNames[p.Name]
}

func IsSigned(t Type) bool {
	p, ok := t.(TPrim)
	return ok && integralNames[p.Name] && strings.HasPrefix(p.Name, "i")
}

func IsFloating(t Type) bool {
	p, ok := t.(TPrim)
	return ok && (p.Name == "f32" || p.Name == "f64")
}

func IsNumeric(t Type) bool {
	return IsIntegral(t) || IsFloating(t)
}

func IsBoolean(t Type) bool {
	p, ok := t.(TPrim)
	return ok && p.Name == "boolean"
}

// ConvertibleFromNumeral reports whether a numeric literal can take type t.
func ConvertibleFromNumeral(t Type) bool {
	return IsNumeric(t)
}

// NumeralError explains why a literal cannot take a numeric type.
type NumeralError struct {
	Raw    string
	Target Type
	Reason string
}

func (e *NumeralError) Error() string {
	return fmt.Sprintf("literal %s %s %s", e.Raw, e.Reason, e.Target)
}

// CheckNumeral validates a literal's lexeme against a numeric target.
// Integral targets need an integer that fits the width; floating targets
// need anything strconv can read as a float. A leading '-' marks a negated
// literal, which unsigned targets only accept for zero.
func CheckNumeral(raw string, target Type) error {
	switch {
	case IsIntegral(target) && strings.HasPrefix(raw, "-"):
		v, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return numeralParseError(raw, target, err)
		}
		if err := fitsNegative(v, target.(TPrim)); err != nil {
			return &NumeralError{Raw: raw, Target: target, Reason: "does not fit in"}
		}
		return nil
	case IsIntegral(target):
		v, err := strconv.ParseUint(raw, 0, 64)
		if err != nil {
			return numeralParseError(raw, target, err)
		}
		if err := fitsIntegral(v, target.(TPrim)); err != nil {
			return &NumeralError{Raw: raw, Target: target, Reason: "does not fit in"}
		}
		return nil
	case IsFloating(target):
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return &NumeralError{Raw: raw, Target: target, Reason: "is not a valid number for"}
		}
		return nil
	}
	return &NumeralError{Raw: raw, Target: target, Reason: "cannot be used as"}
}

func numeralParseError(raw string, target Type, err error) error {
	if isRangeErr(err) {
		return &NumeralError{Raw: raw, Target: target, Reason: "does not fit in"}
	}
	if _, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
		return &NumeralError{Raw: raw, Target: target, Reason: "is not an integer, expected"}
	}
	return &NumeralError{Raw: raw, Target: target, Reason: "is not a valid number for"}
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// fitsNegative checks a value parsed with its sign. -0 fits anywhere.
func fitsNegative(v int64, p TPrim) error {
	if v == 0 {
		return nil
	}
	var err error
	switch p.Name {
	case "i8":
		_, err = safecast.Convert[int8](v)
	case "i16":
		_, err = safecast.Convert[int16](v)
	case "i32":
		_, err = safecast.Convert[int32](v)
	case "i64":
	case "isize":
		_, err = safecast.Convert[int](v)
	default:
		err = fmt.Errorf("%d does not fit unsigned %s", v, p.Name)
	}
	return err
}

func fitsIntegral(v uint64, p TPrim) error {
	var err error
	switch p.Name {
	case "u8":
		_, err = safecast.Convert[uint8](v)
	case "u16":
		_, err = safecast.Convert[uint16](v)
	case "u32":
		_, err = safecast.Convert[uint32](v)
	case "u64":
		_, err = safecast.Convert[uint64](v)
	case "usize":
		_, err = safecast.Convert[uint](v)
	case "i8":
		_, err = safecast.Convert[int8](v)
	case "i16":
		_, err = safecast.Convert[int16](v)
	case "i32":
		_, err = safecast.Convert[int32](v)
	case "i64":
		_, err = safecast.Convert[int64](v)
	case "isize":
		_, err = safecast.Convert[int](v)
	default:
		err = fmt.Errorf("%s is not integral", p.Name)
	}
	return err
}

// ArraySize converts an array annotation's size lexeme.
func ArraySize(raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid array size %q: %w", raw, err)
	}
	return v, nil
}
