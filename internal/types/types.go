// Package types describes the nust type system: three scalar kinds plus
// immutable and mutable references with a nested base type.
package types

import (
	"nust/internal/source"
)

// Kind represents the category of a type.
type Kind uint8

const (
	// KindInvalid represents an erroneous type.
	KindInvalid Kind = iota
	// KindI32 is the 32-bit signed integer type.
	KindI32 // i32
	// KindBool is the boolean type.
	KindBool // bool
	// KindStr is the string type.
	KindStr // str
	// KindRef is an immutable reference &T.
	KindRef // &T
	// KindMutRef is a mutable reference &mut T.
	KindMutRef // &mut T
)

func (k Kind) String() string {
	switch k {
	case KindI32:
		return "i32"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindRef:
		return "&"
	case KindMutRef:
		return "&mut"
	}
	return "invalid"
}

// Type is a structural type value. Base is set только для Ref/MutRef.
// Инвариант: у ссылочного типа Base != nil.
type Type struct {
	Kind Kind
	Base *Type
	Span source.Span
}

// New builds a scalar type.
func New(kind Kind, span source.Span) *Type {
	return &Type{Kind: kind, Span: span}
}

// NewRef builds a reference type around base.
func NewRef(mut bool, base *Type, span source.Span) *Type {
	kind := KindRef
	if mut {
		kind = KindMutRef
	}
	return &Type{Kind: kind, Base: base, Span: span}
}

// Clone deep-copies the type. Types are cloned whenever they propagate
// across independent AST nodes: declaration sites and use sites never share
// mutable type state.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	return &Type{Kind: t.Kind, Base: t.Base.Clone(), Span: t.Span}
}

// Equal reports structural equality, ignoring spans.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	if t.Base == nil && other.Base == nil {
		return true
	}
	return t.Base.Equal(other.Base)
}

// IsRef reports whether the type is a reference of either mutability.
func (t *Type) IsRef() bool {
	return t != nil && (t.Kind == KindRef || t.Kind == KindMutRef)
}

// IsMutRef reports whether the type is a mutable reference.
func (t *Type) IsMutRef() bool {
	return t != nil && t.Kind == KindMutRef
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindRef:
		return "&" + t.Base.String()
	case KindMutRef:
		return "&mut " + t.Base.String()
	default:
		return t.Kind.String()
	}
}
