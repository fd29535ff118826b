package vmval

import "testing"

func TestZeroValueIsIntZero(t *testing.T) {
	var v Value
	if !v.IsInt() {
		t.Fatalf("zero value kind = %v, want int", v.Kind())
	}
	if got, ok := v.AsInt(); !ok || got != 0 {
		t.Errorf("AsInt() = %d, %v", got, ok)
	}
}

func TestValueVariants(t *testing.T) {
	target := Int(7)
	cases := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"int", Int(-5), KindInt},
		{"bool", Bool(true), KindBool},
		{"string", String("hi"), KindString},
		{"ref", Ref(&target), KindRef},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.v.Kind() != tc.kind {
				t.Errorf("Kind() = %v, want %v", tc.v.Kind(), tc.kind)
			}
			if got := tc.v.Kind().String(); got != tc.name {
				t.Errorf("Kind().String() = %q, want %q", got, tc.name)
			}
		})
	}

	if got, ok := Int(-5).AsInt(); !ok || got != -5 {
		t.Errorf("AsInt() = %d, %v", got, ok)
	}
	if got, ok := Bool(true).AsBool(); !ok || !got {
		t.Errorf("AsBool() = %v, %v", got, ok)
	}
	if got, ok := String("hi").AsString(); !ok || got != "hi" {
		t.Errorf("AsString() = %q, %v", got, ok)
	}
	ref := Ref(&target)
	if got, ok := ref.AsRef(); !ok || got != &target {
		t.Errorf("AsRef() = %p, %v", got, ok)
	}
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	if _, ok := Bool(true).AsInt(); ok {
		t.Error("AsInt on bool reported ok")
	}
	if _, ok := Int(1).AsString(); ok {
		t.Error("AsString on int reported ok")
	}
	if _, ok := String("x").AsRef(); ok {
		t.Error("AsRef on string reported ok")
	}
}

func TestRefSharesTarget(t *testing.T) {
	target := Int(1)
	ref := Ref(&target)

	target = Int(2)
	through, ok := ref.AsRef()
	if !ok {
		t.Fatal("not a ref")
	}
	if got, _ := through.AsInt(); got != 2 {
		t.Errorf("read through ref = %d, want 2", got)
	}
}
