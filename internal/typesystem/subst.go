package typesystem

// Subst maps type parameter names to types.
type Subst map[string]Type

// Apply applies s to t.
func Apply(s Subst, t Type) Type {
	if t == nil || len(s) == 0 {
		return t
	}
	return t.Apply(s)
}

// ApplyWithCycleCheck applies substitution with cycle detection.
// This is the main entry point for substitution application.
func ApplyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}

	switch typ := t.(type) {
	case TParam:
		if visited[typ.Name] {
			return typ
		}
		replacement, ok := s[typ.Name]
		if !ok {
			return typ
		}
		if p, ok := replacement.(TParam); ok && p.Name == typ.Name {
			return typ
		}
		// Re-apply so chains like {T -> U, U -> u32} instantiate fully.
		newVisited := copyVisited(visited)
		newVisited[typ.Name] = true
		return ApplyWithCycleCheck(replacement, s, newVisited)

	case TPtr:
		return TPtr{Elem: ApplyWithCycleCheck(typ.Elem, s, visited)}

	case TMutPtr:
		return TMutPtr{Elem: ApplyWithCycleCheck(typ.Elem, s, visited)}

	case TArray:
		return TArray{Elem: ApplyWithCycleCheck(typ.Elem, s, visited), Size: typ.Size}

	case TFunc:
		newParams := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			newParams[i] = ApplyWithCycleCheck(p, s, visited)
		}
		return TFunc{
			Params:   newParams,
			Return:   ApplyWithCycleCheck(typ.Return, s, visited),
			Variadic: typ.Variadic,
		}

	case TForall:
		// Bound parameters shadow the outer substitution.
		inner := s.Without(typ.Params...)
		return TForall{
			Params: typ.Params,
			Body:   ApplyWithCycleCheck(typ.Body, inner, visited),
		}

	default:
		// Scalars, nominal types, opaque and error types hold no parameters.
		return t
	}
}

func copyVisited(m map[string]bool) map[string]bool {
	newMap := make(map[string]bool, len(m)+1)
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

// Without returns a copy of s with the given names removed.
func (s Subst) Without(names ...string) Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

// SelfSubst maps each of f's parameters to a reference to itself. It is the
// substitution in effect while checking inside f's body.
func SelfSubst(f TForall) Subst {
	s := make(Subst, len(f.Params))
	for _, p := range f.Params {
		s[p] = TParam{Name: p}
	}
	return s
}

// ZipSubst pairs declared parameters with explicit type arguments. Extra
// entries on either side are ignored; arity is the caller's concern.
func ZipSubst(params []string, args []Type) Subst {
	n := min(len(params), len(args))
	s := make(Subst, n)
	for i := 0; i < n; i++ {
		s[params[i]] = args[i]
	}
	return s
}

// Instantiate applies explicit type arguments to f's body.
func Instantiate(f TForall, args []Type) Type {
	return Apply(ZipSubst(f.Params, args), f.Body)
}
