package token

import "fmt"

// Span is a half-open range of byte offsets into a source file.
type Span struct {
	Start int
	Stop  int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.Stop)
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.Stop == 0
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if s.IsZero() {
		return other
	}
	if other.IsZero() {
		return s
	}
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.Stop > out.Stop {
		out.Stop = other.Stop
	}
	return out
}

// Operator is the lexeme of a unary, binary or assignment operator.
type Operator string

const (
	PLUS     Operator = "+"
	MINUS    Operator = "-"
	ASTERISK Operator = "*"
	SLASH    Operator = "/"
	PERCENT  Operator = "%"

	LT  Operator = "<"
	LTE Operator = "<="
	GT  Operator = ">"
	GTE Operator = ">="

	EQ         Operator = "=="
	NOT_EQ     Operator = "!="
	STRICT_EQ  Operator = "==="
	STRICT_NEQ Operator = "!=="

	AND  Operator = "&&"
	OR   Operator = "||"
	BANG Operator = "!"
	AMP  Operator = "&"

	ASSIGN Operator = "="
)

// IsArithmetic reports whether op is one of + - * / %.
func (op Operator) IsArithmetic() bool {
	switch op {
	case PLUS, MINUS, ASTERISK, SLASH, PERCENT:
		return true
	}
	return false
}

// IsComparison reports whether op is an ordering comparison.
func (op Operator) IsComparison() bool {
	switch op {
	case LT, LTE, GT, GTE:
		return true
	}
	return false
}

// IsLooseEquality reports whether op is == or !=.
func (op Operator) IsLooseEquality() bool {
	return op == EQ || op == NOT_EQ
}

// IsStrictEquality reports whether op is === or !==.
func (op Operator) IsStrictEquality() bool {
	return op == STRICT_EQ || op == STRICT_NEQ
}

// IsLogical reports whether op is && or ||.
func (op Operator) IsLogical() bool {
	return op == AND || op == OR
}

// StrictForm maps a loose equality operator to its strict counterpart.
func (op Operator) StrictForm() Operator {
	switch op {
	case EQ:
		return STRICT_EQ
	case NOT_EQ:
		return STRICT_NEQ
	}
	return op
}
