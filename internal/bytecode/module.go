package bytecode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"nust/internal/types"
)

// SchemaVersion — увеличивать при изменении формата Module.
const SchemaVersion uint16 = 1

// ErrSchemaVersion indicates a module written by an incompatible build.
var ErrSchemaVersion = errors.New("unsupported module schema version")

// TypeRepr is the serialized form of a type: kind plus an optional nested
// base for references. Spans are not persisted.
type TypeRepr struct {
	Kind uint8     `msgpack:"kind"`
	Base *TypeRepr `msgpack:"base,omitempty"`
}

// NewTypeRepr converts a checker type to its serialized form.
func NewTypeRepr(t *types.Type) *TypeRepr {
	if t == nil {
		return nil
	}
	return &TypeRepr{Kind: uint8(t.Kind), Base: NewTypeRepr(t.Base)}
}

// Type converts back to a checker type with zero spans.
func (r *TypeRepr) Type() *types.Type {
	if r == nil {
		return nil
	}
	return &types.Type{Kind: types.Kind(r.Kind), Base: r.Base.Type()}
}

// ModuleFunc is one function-table entry in the serialized module.
// Порядок записей — порядок объявления: это часть контракта формата.
type ModuleFunc struct {
	Name       string      `msgpack:"name"`
	EntryPoint uint32      `msgpack:"entry_point"`
	NumParams  uint32      `msgpack:"num_params"`
	NumLocals  uint32      `msgpack:"num_locals"`
	ReturnType *TypeRepr   `msgpack:"return_type"`
	ParamTypes []*TypeRepr `msgpack:"param_types"`
}

// Module is the complete compiled artifact: instruction vector, string
// constant pool and the function table.
type Module struct {
	Schema       uint16        `msgpack:"schema"`
	Instructions []Instruction `msgpack:"instructions"`
	Strings      []string      `msgpack:"strings"`
	Functions    []ModuleFunc  `msgpack:"functions"`
}

// NewModule assembles a module from compiler output.
func NewModule(instrs []Instruction, strs []string, table *FunctionTable) *Module {
	m := &Module{
		Schema:       SchemaVersion,
		Instructions: instrs,
		Strings:      strs,
	}
	for _, fn := range table.Funcs() {
		mf := ModuleFunc{
			Name:       fn.Name,
			EntryPoint: fn.EntryPoint,
			NumParams:  fn.NumParams,
			NumLocals:  fn.NumLocals,
			ReturnType: NewTypeRepr(fn.ReturnType),
		}
		for _, pt := range fn.ParamTypes {
			mf.ParamTypes = append(mf.ParamTypes, NewTypeRepr(pt))
		}
		m.Functions = append(m.Functions, mf)
	}
	return m
}

// Encode serializes the module.
func (m *Module) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(m)
}

// Decode reads a module and validates its schema version.
func Decode(r io.Reader) (*Module, error) {
	var m Module
	if err := msgpack.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	if m.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, m.Schema)
	}
	return &m, nil
}

// WriteFile пишет модуль атомарно: во временный файл рядом с целевым,
// затем rename.
func (m *Module) WriteFile(path string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := m.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadFile reads and decodes a module from disk.
func ReadFile(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
