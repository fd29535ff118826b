package types

import (
	"testing"

	"nust/internal/source"
)

func TestCloneIsDeep(t *testing.T) {
	base := New(KindI32, source.Mk(0, 3))
	ref := NewRef(true, base, source.Mk(0, 8))

	clone := ref.Clone()
	if !clone.Equal(ref) {
		t.Fatalf("clone %s not equal to original %s", clone, ref)
	}
	if clone.Base == ref.Base {
		t.Fatal("clone shares base type with original")
	}

	clone.Base.Kind = KindBool
	if ref.Base.Kind != KindI32 {
		t.Error("mutating clone leaked into original")
	}
}

func TestEqualStructural(t *testing.T) {
	sp := source.Mk(0, 0)
	tests := []struct {
		name string
		a, b *Type
		want bool
	}{
		{"same scalar", New(KindI32, sp), New(KindI32, source.Mk(5, 9)), true},
		{"different scalar", New(KindI32, sp), New(KindBool, sp), false},
		{"ref of same base", NewRef(false, New(KindStr, sp), sp), NewRef(false, New(KindStr, sp), sp), true},
		{"ref vs mut ref", NewRef(false, New(KindI32, sp), sp), NewRef(true, New(KindI32, sp), sp), false},
		{"ref of different base", NewRef(true, New(KindI32, sp), sp), NewRef(true, New(KindBool, sp), sp), false},
		{"nested refs", NewRef(true, NewRef(true, New(KindI32, sp), sp), sp), NewRef(true, NewRef(true, New(KindI32, sp), sp), sp), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s): got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	sp := source.Mk(0, 0)
	cases := map[string]*Type{
		"i32":           New(KindI32, sp),
		"bool":          New(KindBool, sp),
		"str":           New(KindStr, sp),
		"&i32":          NewRef(false, New(KindI32, sp), sp),
		"&mut str":      NewRef(true, New(KindStr, sp), sp),
		"&mut &mut i32": NewRef(true, NewRef(true, New(KindI32, sp), sp), sp),
	}
	for want, typ := range cases {
		if got := typ.String(); got != want {
			t.Errorf("String: got %q, want %q", got, want)
		}
	}
}
