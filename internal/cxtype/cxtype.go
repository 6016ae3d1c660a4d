// Package cxtype implements the canonical Type hierarchy and
// FullySpecifiedType qualifier wrapper from spec section 3 ("Types").
//
// Grounded on original_source/src/libs/3rdparty/cplusplus/Control.h's
// type-construction methods (voidType, integerType, floatType,
// pointerType, referenceType, arrayType, pointerToMemberType, namedType)
// and the CPlusPlusForwardDeclarations.h type-class list.
package cxtype

import "github.com/roberto-raggi/cplusplus-go/internal/cxname"

// Type is implemented by every canonical type variant. As with Name,
// identity is the only equality that matters (spec section 3's invariant:
// "two canonical types built from structurally equal specifier lists are
// pointer-equal"); internal/control is what actually enforces this by
// canonicalizing before handing out a *Type.
type Type interface {
	isType()
	String() string
}

type Void struct{}

func (*Void) isType()        {}
func (*Void) String() string { return "void" }

type IntegerKind uint8

const (
	IntChar IntegerKind = iota
	IntChar16
	IntChar32
	IntWideChar
	IntBool
	IntShort
	IntInt
	IntLong
	IntLongLong
)

type Integer struct {
	Kind IntegerKind
}

func (*Integer) isType() {}
func (i *Integer) String() string {
	switch i.Kind {
	case IntChar:
		return "char"
	case IntChar16:
		return "char16_t"
	case IntChar32:
		return "char32_t"
	case IntWideChar:
		return "wchar_t"
	case IntBool:
		return "bool"
	case IntShort:
		return "short"
	case IntInt:
		return "int"
	case IntLong:
		return "long"
	case IntLongLong:
		return "long long"
	default:
		panic("cxtype: unknown integer kind")
	}
}

type FloatKind uint8

const (
	FloatFloat FloatKind = iota
	FloatDouble
	FloatLongDouble
)

type Float struct {
	Kind FloatKind
}

func (*Float) isType() {}
func (f *Float) String() string {
	switch f.Kind {
	case FloatFloat:
		return "float"
	case FloatDouble:
		return "double"
	case FloatLongDouble:
		return "long double"
	default:
		panic("cxtype: unknown float kind")
	}
}

type Pointer struct {
	ElementType FullySpecifiedType
}

func (*Pointer) isType()        {}
func (p *Pointer) String() string { return p.ElementType.String() + "*" }

type Reference struct {
	ElementType FullySpecifiedType
	IsRValue    bool
}

func (*Reference) isType() {}
func (r *Reference) String() string {
	if r.IsRValue {
		return r.ElementType.String() + "&&"
	}
	return r.ElementType.String() + "&"
}

// Array carries an optional constant size; HasSize distinguishes `T[]`
// from `T[4]` since 0 is a legitimate array size in tolerant parsing of
// `T[0]` (a common zero-length-array GNU extension).
type Array struct {
	ElementType FullySpecifiedType
	Size        int
	HasSize     bool
}

func (*Array) isType() {}
func (a *Array) String() string {
	if !a.HasSize {
		return a.ElementType.String() + "[]"
	}
	return a.ElementType.String() + "[N]"
}

// PointerToMember is `T Scope::*`.
type PointerToMember struct {
	MemberName  cxname.Name
	ElementType FullySpecifiedType
}

func (*PointerToMember) isType() {}
func (p *PointerToMember) String() string {
	return p.ElementType.String() + " " + p.MemberName.String() + "::*"
}

// Named is a reference to a user-declared type by name (a class, enum,
// typedef, or template parameter) -- resolution to the declaring Symbol
// happens in the binder, not here; spec section 1 explicitly excludes
// semantic type checking from this core.
type Named struct {
	Name cxname.Name
}

func (*Named) isType()        {}
func (n *Named) String() string { return n.Name.String() }

// Undefined marks a type slot the binder could not build -- e.g. a
// declarator whose specifier list was diagnosed as invalid. Downstream
// queries get a typed placeholder instead of a nil Type, matching spec
// section 4.4's "the symbol is still emitted ... so downstream queries
// return a partial result" tolerance policy.
type Undefined struct{}

func (*Undefined) isType()        {}
func (*Undefined) String() string { return "<undefined>" }

// Function is not part of spec section 3's enumerated Type list by name,
// but spec section 4.2 ("If the top-level is a FunctionType: emit a
// Function symbol...") requires one to exist as the type layered over a
// function declarator before a Function symbol is synthesized from it.
type Function struct {
	ReturnType FullySpecifiedType
	Parameters []FullySpecifiedType
	Variadic   bool
}

func (*Function) isType() {}
func (f *Function) String() string { return f.ReturnType.String() + "(...)" }

// Qualifiers is the bitset FullySpecifiedType wraps around a bare Type
// (spec section 3: const/volatile/auto/.../deprecated/unavailable, "plus a
// validity flag"). Setting a bit that is already set is not an error --
// spec section 3: "Qualifier operations are idempotent; setting a
// qualifier twice is diagnosed but not fatal" -- the diagnosis itself is
// the binder's job (it has the token to point at); this bitset just
// tracks final state.
type Qualifiers uint32

const (
	QualConst Qualifiers = 1 << iota
	QualVolatile
	QualAuto
	QualRegister
	QualStatic
	QualExtern
	QualMutable
	QualTypedef
	QualInline
	QualVirtual
	QualExplicit
	QualFriend
	QualSigned
	QualUnsigned
	QualFinal
	QualOverride
	QualDeprecated
	QualUnavailable
)

func (q Qualifiers) Has(flag Qualifiers) bool { return q&flag != 0 }

// FullySpecifiedType is a Type plus its qualifier bits and a validity flag.
// Two FullySpecifiedType values with the same underlying Type pointer are
// interchangeable for identity purposes -- qualifiers are "not part of the
// interning key" per spec section 4.1, they are attached at use sites.
type FullySpecifiedType struct {
	Type       Type
	Qualifiers Qualifiers
	Valid      bool
}

func (t FullySpecifiedType) String() string {
	if t.Type == nil {
		return "<invalid>"
	}
	prefix := ""
	if t.Qualifiers.Has(QualConst) {
		prefix += "const "
	}
	if t.Qualifiers.Has(QualVolatile) {
		prefix += "volatile "
	}
	return prefix + t.Type.String()
}

func (t FullySpecifiedType) IsValid() bool { return t.Valid && t.Type != nil }
