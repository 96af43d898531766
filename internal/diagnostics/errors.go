package diagnostics

import (
	"fmt"

	"github.com/funvibe/jsc/internal/token"
)

type ErrorCode string

// Loader errors
const (
	ErrL001 ErrorCode = "L001" // syntax tree could not be decoded
)

// Resolver errors
const (
	ErrR001 ErrorCode = "R001" // unbound variable
	ErrR002 ErrorCode = "R002" // unbound type
	ErrR003 ErrorCode = "R003" // qualified head is not a module
	ErrR004 ErrorCode = "R004" // qualified name with more than one member
	ErrR005 ErrorCode = "R005" // import target could not be loaded
	ErrR006 ErrorCode = "R006" // member exists but is private
	ErrR007 ErrorCode = "R007" // member does not exist
	ErrR008 ErrorCode = "R008" // duplicate binding in one scope
	ErrR009 ErrorCode = "R009" // return outside function
	ErrR010 ErrorCode = "R010" // import below file scope
)

// Checker errors
const (
	ErrC001 ErrorCode = "C001" // type mismatch
	ErrC002 ErrorCode = "C002" // parameter without annotation
	ErrC003 ErrorCode = "C003" // function without return type
	ErrC004 ErrorCode = "C004" // loose equality
	ErrC005 ErrorCode = "C005" // operator operand kind
	ErrC006 ErrorCode = "C006" // literal against non-numeric expectation
	ErrC007 ErrorCode = "C007" // destructuring unsupported
	ErrC008 ErrorCode = "C008" // call of non-function
	ErrC009 ErrorCode = "C009" // generic call without type application
	ErrC010 ErrorCode = "C010" // assignment to const
	ErrC011 ErrorCode = "C011" // break/continue outside loop
	ErrC012 ErrorCode = "C012" // literal out of range / not integral
	ErrC013 ErrorCode = "C013" // argument count
	ErrC014 ErrorCode = "C014" // type argument count
	ErrC015 ErrorCode = "C015" // type application of non-generic
	ErrC016 ErrorCode = "C016" // unknown property
	ErrC017 ErrorCode = "C017" // cyclic type alias
	ErrC018 ErrorCode = "C018" // unsupported assignment target
	ErrC019 ErrorCode = "C019" // struct field missing
	ErrC020 ErrorCode = "C020" // unknown field in literal
	ErrC021 ErrorCode = "C021" // field initialised twice
	ErrC022 ErrorCode = "C022" // union literal variant count
	ErrC023 ErrorCode = "C023" // array literal length
	ErrC024 ErrorCode = "C024" // not indexable
	ErrC025 ErrorCode = "C025" // invalid array size
	ErrC026 ErrorCode = "C026" // not constructible
	ErrC027 ErrorCode = "C027" // not dereferenceable
	ErrC028 ErrorCode = "C028" // address of non-place
	ErrC029 ErrorCode = "C029" // module used as a value
	ErrC030 ErrorCode = "C030" // duplicate field declaration
)

var messages = map[ErrorCode]string{
	ErrL001: "Cannot read syntax tree: %s",

	ErrR001: "Unbound variable `%s`",
	ErrR002: "Unbound type `%s`",
	ErrR003: "`%s` is not a module",
	ErrR004: "Expected a single member after `%s`",
	ErrR005: "Failed to import module \"%s\"",
	ErrR006: "`%s` is not exported by module \"%s\"",
	ErrR007: "Module \"%s\" has no member `%s`",
	ErrR008: "`%s` is already declared in this scope",
	ErrR009: "`return` outside of a function",
	ErrR010: "Imports are only allowed at file scope",

	ErrC001: "Type mismatch: expected %s, got %s",
	ErrC002: "Parameter `%s` needs a type annotation",
	ErrC003: "Function `%s` needs a return type",
	ErrC004: "Loose equality `%s` is not supported",
	ErrC005: "Operator `%s` cannot be applied to %s",
	ErrC006: "Expected %s",
	ErrC007: "Destructuring is not supported here",
	ErrC008: "Cannot call a value of type %s",
	ErrC009: "Generic function of type %s needs explicit type arguments",
	ErrC010: "Cannot assign to constant `%s`",
	ErrC011: "`%s` outside of a loop",
	ErrC012: "Number %s",
	ErrC013: "Wrong number of arguments: expected %d, got %d",
	ErrC014: "Wrong number of type arguments: expected %d, got %d",
	ErrC015: "Type arguments given to non-generic value of type %s",
	ErrC016: "Type %s has no property `%s`",
	ErrC017: "Type alias `%s` refers to itself",
	ErrC018: "Only a plain variable can be assigned to",
	ErrC019: "Missing field `%s` in %s",
	ErrC020: "Unknown field `%s` in %s",
	ErrC021: "Field `%s` is initialised more than once",
	ErrC022: "A value of union %s must set exactly one variant",
	ErrC023: "Array literal has %d elements, expected %d",
	ErrC024: "Cannot index a value of type %s",
	ErrC025: "Invalid array size `%s`",
	ErrC026: "Cannot construct a value from %s",
	ErrC027: "Cannot dereference a value of type %s",
	ErrC028: "Cannot take the address of this expression",
	ErrC029: "Module `%s` cannot be used as a value",
	ErrC030: "Field `%s` is declared more than once",
}

// DiagnosticError is one user-facing problem in one file.
type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Span    token.Span
	Message string
	Hint    string
}

// NewError formats the message registered for code with args.
func NewError(code ErrorCode, file string, span token.Span, args ...any) *DiagnosticError {
	format, ok := messages[code]
	if !ok {
		panic(fmt.Sprintf("diagnostics: unknown error code %s", code))
	}
	return &DiagnosticError{
		Code:    code,
		File:    file,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithHint attaches a suggestion and returns e.
func (e *DiagnosticError) WithHint(format string, args ...any) *DiagnosticError {
	e.Hint = fmt.Sprintf(format, args...)
	return e
}

func (e *DiagnosticError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: error[%s]: %s", e.Span, e.Code, e.Message)
	}
	return fmt.Sprintf("%s:%s: error[%s]: %s", e.File, e.Span, e.Code, e.Message)
}

// Key identifies a diagnostic for de-duplication.
func (e *DiagnosticError) Key() string {
	return fmt.Sprintf("%s:%d:%d:%s:%s", e.File, e.Span.Start, e.Span.Stop, e.Code, e.Message)
}
