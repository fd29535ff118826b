// Package vmval defines the runtime value representation a stack-machine
// interpreter of the compiled instructions would operate on. Компилятор
// его не использует: это заготовка под исполнитель.
package vmval

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindInt is a 32-bit integer value.
	KindInt Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindString is a string value.
	KindString
	// KindRef is a reference to another value.
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindRef:
		return "ref"
	}
	return "invalid"
}

// Value — одно значение на стеке или в слоте локала. Нулевое значение —
// целое 0.
type Value struct {
	kind Kind
	i    int32
	b    bool
	s    string
	ref  *Value
}

// Int makes an integer value.
func Int(v int32) Value {
	return Value{kind: KindInt, i: v}
}

// Bool makes a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// String makes a string value.
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// Ref makes a reference to another value.
func Ref(v *Value) Value {
	return Value{kind: KindRef, ref: v}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsInt reports whether the value holds an integer.
func (v Value) IsInt() bool { return v.kind == KindInt }

// IsBool reports whether the value holds a boolean.
func (v Value) IsBool() bool { return v.kind == KindBool }

// IsString reports whether the value holds a string.
func (v Value) IsString() bool { return v.kind == KindString }

// IsRef reports whether the value holds a reference.
func (v Value) IsRef() bool { return v.kind == KindRef }

// AsInt returns the integer payload when the value holds one.
func (v Value) AsInt() (int32, bool) {
	return v.i, v.kind == KindInt
}

// AsBool returns the boolean payload when the value holds one.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string payload when the value holds one.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsRef returns the referenced value when the value holds a reference.
func (v Value) AsRef() (*Value, bool) {
	return v.ref, v.kind == KindRef
}
