package symbols

import "fmt"

// ScopeStack is the ordered list of open scopes, global at the bottom.
// Lookups scan from the innermost scope outward.
type ScopeStack struct {
	frames []*SymbolTable
	pushes int
	pops   int
}

// NewScopeStack returns a stack holding only the global table.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []*SymbolTable{Global()}}
}

func (s *ScopeStack) Push(table *SymbolTable) {
	s.frames = append(s.frames, table)
	s.pushes++
}

// Pop removes the innermost scope, which must be expected. A mismatch is a
// resolver bug and panics.
func (s *ScopeStack) Pop(expected *SymbolTable) {
	if len(s.frames) <= 1 {
		panic("symbols: pop of the global scope")
	}
	top := s.frames[len(s.frames)-1]
	if top != expected {
		panic(fmt.Errorf("symbols: unbalanced scope stack: popped %s scope, expected %s scope", top.Type, expected.Type))
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	s.pops++
}

// Top returns the innermost scope.
func (s *ScopeStack) Top() *SymbolTable {
	return s.frames[len(s.frames)-1]
}

func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

func (s *ScopeStack) LookupValue(name string) (ValueDecl, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if d, ok := s.frames[i].GetValue(name); ok {
			return d, true
		}
	}
	return nil, false
}

func (s *ScopeStack) LookupType(name string) (TypeDecl, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if d, ok := s.frames[i].GetType(name); ok {
			return d, true
		}
	}
	return nil, false
}

// Counts returns how many pushes and pops the stack has seen.
func (s *ScopeStack) Counts() (pushes, pops int) {
	return s.pushes, s.pops
}

// AssertBalanced panics unless every push has been popped.
func (s *ScopeStack) AssertBalanced() {
	if s.pushes != s.pops || len(s.frames) != 1 {
		panic(fmt.Errorf("symbols: unbalanced scope stack: %d pushes, %d pops, depth %d", s.pushes, s.pops, len(s.frames)))
	}
}
