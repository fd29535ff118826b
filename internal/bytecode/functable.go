package bytecode

import (
	"fmt"

	"fortio.org/safecast"

	"nust/internal/ast"
	"nust/internal/types"
)

// FuncInfo — метаданные одной функции в скомпилированной программе.
// EntryPoint и NumLocals заполняются по-настоящему только после
// компиляции тела (двухпроходная схема).
type FuncInfo struct {
	EntryPoint uint32
	NumParams  uint32
	NumLocals  uint32 // включая параметры
	ReturnType *types.Type
	ParamTypes []*types.Type
	Name       string // для диагностики
}

// FunctionTable maps functions to their metadata, indexed both by
// declaration order and by name.
type FunctionTable struct {
	funcs  []FuncInfo
	byName map[string]uint32
}

// NewFunctionTable creates an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{byName: make(map[string]uint32)}
}

// Add registers a function with a (possibly placeholder) entry point and
// returns its index. Parameter and return types are deep-cloned: таблица
// не делит типовое состояние с деревом.
func (t *FunctionTable) Add(fn *ast.FunctionDecl, entryPoint uint32) uint32 {
	numParams, err := safecast.Conv[uint32](len(fn.Params))
	if err != nil {
		panic(fmt.Errorf("parameter count overflow: %w", err))
	}

	info := FuncInfo{
		EntryPoint: entryPoint,
		NumParams:  numParams,
		ReturnType: fn.ReturnType.Clone(),
		ParamTypes: make([]*types.Type, 0, len(fn.Params)),
		Name:       fn.Name,
	}
	for i := range fn.Params {
		info.ParamTypes = append(info.ParamTypes, fn.Params[i].Type.Clone())
	}

	index, err := safecast.Conv[uint32](len(t.funcs))
	if err != nil {
		panic(fmt.Errorf("function table overflow: %w", err))
	}
	t.funcs = append(t.funcs, info)
	t.byName[fn.Name] = index
	return index
}

// Get returns a pointer to the entry at index for reading and patching,
// or nil when the index is out of range.
func (t *FunctionTable) Get(index uint32) *FuncInfo {
	if int(index) >= len(t.funcs) {
		return nil
	}
	return &t.funcs[index]
}

// IndexOf looks a function up by name.
func (t *FunctionTable) IndexOf(name string) (uint32, bool) {
	index, ok := t.byName[name]
	return index, ok
}

// Len returns the number of registered functions.
func (t *FunctionTable) Len() int {
	return len(t.funcs)
}

// Funcs returns the entries in declaration order. Callers must not
// modify the returned slice.
func (t *FunctionTable) Funcs() []FuncInfo {
	return t.funcs
}
