package bytecode

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"nust/internal/source"
	"nust/internal/types"
)

func moduleFixture(t *testing.T) *Module {
	t.Helper()
	table := NewFunctionTable()
	idx := table.Add(declFixture("main"), 0)
	info := table.Get(idx)
	info.EntryPoint = 0
	info.NumLocals = 1
	table.Add(declFixture("greet", "who"), 4)

	return NewModule(
		[]Instruction{
			InstrOp(PushI32, 42),
			InstrOp(Store, 0),
			Instr(Ret),
		},
		[]string{"hello"},
		table,
	)
}

func TestModuleRoundtrip(t *testing.T) {
	m := moduleFixture(t)

	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Schema != SchemaVersion {
		t.Errorf("schema = %d, want %d", got.Schema, SchemaVersion)
	}
	if !reflect.DeepEqual(got.Instructions, m.Instructions) {
		t.Errorf("instructions differ:\n got %v\nwant %v", got.Instructions, m.Instructions)
	}
	if !reflect.DeepEqual(got.Strings, m.Strings) {
		t.Errorf("strings differ: %v", got.Strings)
	}
	if len(got.Functions) != 2 {
		t.Fatalf("functions = %d, want 2", len(got.Functions))
	}
	greet := got.Functions[1]
	if greet.Name != "greet" || greet.EntryPoint != 4 || greet.NumParams != 1 {
		t.Errorf("greet entry = %+v", greet)
	}
	if rt := greet.ReturnType.Type(); rt == nil || rt.Kind != types.KindI32 {
		t.Errorf("return type = %v", rt)
	}
}

func TestDecodeRejectsForeignSchema(t *testing.T) {
	m := moduleFixture(t)
	m.Schema = SchemaVersion + 1

	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrSchemaVersion) {
		t.Errorf("err = %v, want ErrSchemaVersion", err)
	}
}

func TestModuleFile(t *testing.T) {
	m := moduleFixture(t)
	path := filepath.Join(t.TempDir(), "out.no")

	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got.Instructions, m.Instructions) {
		t.Errorf("instructions differ after disk roundtrip")
	}

	// Временных файлов рядом остаться не должно.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestTypeReprNested(t *testing.T) {
	src := types.NewRef(true, types.New(types.KindI32, source.Span{}), source.Span{})
	repr := NewTypeRepr(src)
	back := repr.Type()
	if !back.Equal(src) {
		t.Errorf("roundtrip = %s, want %s", back, src)
	}
	if NewTypeRepr(nil) != nil {
		t.Error("NewTypeRepr(nil) != nil")
	}
}

func TestDisassemble(t *testing.T) {
	var buf bytes.Buffer
	err := Disassemble(&buf, []Instruction{
		InstrOp(PushI32, 42),
		InstrOp(Store, 0),
		Instr(Ret),
	})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	want := "PUSH_I32 42\nSTORE 0\nRET\n"
	if buf.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", buf.String(), want)
	}
}
