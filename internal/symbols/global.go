package symbols

import (
	"sync"

	"github.com/funvibe/jsc/internal/config"
	"github.com/funvibe/jsc/internal/typesystem"
)

// Singleton global table containing all built-in symbols
var (
	globalTable *SymbolTable
	globalOnce  sync.Once
)

// Global returns the table at the base of every scope stack. It is built on
// first use and never modified afterwards.
func Global() *SymbolTable {
	globalOnce.Do(func() {
		globalTable = NewSymbolTable(ScopeGlobal)
		initBuiltins(globalTable)
	})
	return globalTable
}

func initBuiltins(st *SymbolTable) {
	for _, p := range typesystem.Primitives {
		st.AddType(p.Name, &BuiltinTypeDecl{Name: p.Name, Type: p})
	}
	st.AddType(config.UnknownTypeName, &BuiltinTypeDecl{Name: config.UnknownTypeName, Type: typesystem.Unknown})

	t := typesystem.TParam{Name: config.BuiltinTypeParam}

	// cast<T>(value: unknown): T
	st.AddValue(config.CastFuncName, &BuiltinDecl{
		Name: config.CastFuncName,
		Type: typesystem.TForall{
			Params: []string{t.Name},
			Body:   typesystem.TFunc{Params: []typesystem.Type{typesystem.Unknown}, Return: t},
		},
	})

	// sizeof<T>(): usize
	st.AddValue(config.SizeofFuncName, &BuiltinDecl{
		Name: config.SizeofFuncName,
		Type: typesystem.TForall{
			Params: []string{t.Name},
			Body:   typesystem.TFunc{Return: typesystem.Usize},
		},
	})
}
