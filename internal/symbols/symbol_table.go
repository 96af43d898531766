package symbols

import (
	"golang.org/x/exp/slices"
)

type ScopeType int

const (
	ScopeGlobal   ScopeType = iota // Built-in types and values
	ScopeFile                      // Top level of one source file
	ScopeFunction                  // Parameters and body locals
	ScopeBlock                     // Block or for-statement
)

func (s ScopeType) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeFile:
		return "file"
	case ScopeFunction:
		return "function"
	default:
		return "block"
	}
}

// Namespace selects the value or type half of a table.
type Namespace int

const (
	ValueNamespace Namespace = iota
	TypeNamespace
)

// Duplicate records a second (or later) binding of a name in one scope.
type Duplicate struct {
	Name      string
	Namespace Namespace
	Decl      Decl
	First     Decl
}

// SymbolTable holds the bindings of a single scope. It never looks outward;
// the ScopeStack does that.
type SymbolTable struct {
	Type   ScopeType
	values map[string]ValueDecl
	types  map[string]TypeDecl

	dupValues map[string][]ValueDecl
	dupTypes  map[string][]TypeDecl
	dups      []Duplicate
}

func NewSymbolTable(scopeType ScopeType) *SymbolTable {
	return &SymbolTable{
		Type:      scopeType,
		values:    make(map[string]ValueDecl),
		types:     make(map[string]TypeDecl),
		dupValues: make(map[string][]ValueDecl),
		dupTypes:  make(map[string][]TypeDecl),
	}
}

// AddValue binds name in the value namespace. If name is already bound the
// existing binding wins and decl goes to the duplicates side-table; the
// return value reports whether decl became the binding.
func (s *SymbolTable) AddValue(name string, decl ValueDecl) bool {
	if first, exists := s.values[name]; exists {
		if first == decl {
			return false
		}
		s.dupValues[name] = append(s.dupValues[name], decl)
		s.dups = append(s.dups, Duplicate{Name: name, Namespace: ValueNamespace, Decl: decl, First: first})
		return false
	}
	s.values[name] = decl
	return true
}

// AddType binds name in the type namespace, first writer wins.
func (s *SymbolTable) AddType(name string, decl TypeDecl) bool {
	if first, exists := s.types[name]; exists {
		if first == decl {
			return false
		}
		s.dupTypes[name] = append(s.dupTypes[name], decl)
		s.dups = append(s.dups, Duplicate{Name: name, Namespace: TypeNamespace, Decl: decl, First: first})
		return false
	}
	s.types[name] = decl
	return true
}

func (s *SymbolTable) GetValue(name string) (ValueDecl, bool) {
	d, ok := s.values[name]
	return d, ok
}

func (s *SymbolTable) GetType(name string) (TypeDecl, bool) {
	d, ok := s.types[name]
	return d, ok
}

// DuplicateValues returns the shadowed bindings recorded for name.
func (s *SymbolTable) DuplicateValues(name string) []ValueDecl {
	return s.dupValues[name]
}

func (s *SymbolTable) DuplicateTypes(name string) []TypeDecl {
	return s.dupTypes[name]
}

// Duplicates returns every duplicate binding in insertion order.
func (s *SymbolTable) Duplicates() []Duplicate {
	return s.dups
}

// Names returns every bound name of both namespaces, sorted and unique.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.values)+len(s.types))
	for n := range s.values {
		names = append(names, n)
	}
	for n := range s.types {
		if _, ok := s.values[n]; !ok {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names
}

// Len is the number of bindings across both namespaces.
func (s *SymbolTable) Len() int {
	return len(s.values) + len(s.types)
}
