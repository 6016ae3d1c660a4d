// Package cxname implements the canonical Name hierarchy from spec section
// 3 ("Names"). Every constructor here is meant to be called only through
// internal/control's Control, which is what actually guarantees "two
// structurally equal names share identity" -- this package defines the
// shapes, internal/control owns the canonicalization maps.
//
// Grounded on original_source/src/shared/cplusplus/CPlusPlusForwardDeclarations.h
// (the name class list) and Control.h's name-construction methods.
package cxname

import "github.com/roberto-raggi/cplusplus-go/internal/literal"

// Name is implemented by every canonical name variant. It carries no
// methods beyond identity -- two Names are equal iff they are the same
// pointer, by construction (spec section 3's invariant).
type Name interface {
	isName()
	String() string
}

// Simple wraps an interned Identifier used as a name (the common case:
// "x", "Foo", "operator_unused_placeholder" is never valid here -- that's
// OperatorNameId below).
type Simple struct {
	Id *literal.Identifier
}

func (*Simple) isName()          {}
func (s *Simple) String() string { return s.Id.Chars() }

// TemplateNameId is `Foo<Args...>`, optionally an explicit specialization.
type TemplateNameId struct {
	Id              *literal.Identifier
	Args            []TemplateArgument
	IsSpecialization bool
}

// TemplateArgument is either a type argument or a non-type (expression)
// argument; FullySpecifiedType is opaque here to avoid an import cycle with
// cxtype, so the type-argument case is represented as an opaque pointer
// that internal/cxtype knows how to interpret. Non-type arguments carry
// their literal spelling, matching the tolerant, non-evaluating stance of
// this front end (spec section 1: "not a compiler").
type TemplateArgument struct {
	Type       any // *cxtype.FullySpecifiedType, or nil for a non-type argument
	Expression string
}

func (*TemplateNameId) isName() {}
func (t *TemplateNameId) String() string {
	s := t.Id.Chars() + "<"
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		if a.Type != nil {
			s += "type-arg"
		} else {
			s += a.Expression
		}
	}
	return s + ">"
}

// DestructorNameId is `~Foo`.
type DestructorNameId struct {
	Base Name
}

func (*DestructorNameId) isName()          {}
func (d *DestructorNameId) String() string { return "~" + d.Base.String() }

// OperatorNameId is `operator+`, `operator new[]`, etc.
type OperatorKind uint8

const (
	OpNew OperatorKind = iota
	OpDelete
	OpNewArray
	OpDeleteArray
	OpPlus
	OpMinus
	OpStar
	OpSlash
	OpPercent
	OpCaret
	OpAmp
	OpBar
	OpTilde
	OpExclaim
	OpAssign
	OpLess
	OpGreater
	OpPlusAssign
	OpMinusAssign
	OpStarAssign
	OpSlashAssign
	OpPercentAssign
	OpCaretAssign
	OpAmpAssign
	OpBarAssign
	OpShiftLeft
	OpShiftRight
	OpShiftRightAssign
	OpShiftLeftAssign
	OpEqual
	OpNotEqual
	OpLessEqual
	OpGreaterEqual
	OpAndAnd
	OpOrOr
	OpPlusPlus
	OpMinusMinus
	OpComma
	OpArrowStar
	OpArrow
	OpFunctionCall
	OpArrayIndex
)

type OperatorNameId struct {
	Kind OperatorKind
}

func (*OperatorNameId) isName()          {}
func (o *OperatorNameId) String() string { return "operator@" }

// ConversionNameId is `operator T` for a conversion-function declarator.
// Type is opaque (any) for the same reason as TemplateArgument.Type.
type ConversionNameId struct {
	Type any // *cxtype.FullySpecifiedType
}

func (*ConversionNameId) isName()          {}
func (c *ConversionNameId) String() string { return "operator T" }

// QualifiedNameId is `Base::Name`.
type QualifiedNameId struct {
	Base Name
	Name Name
}

func (*QualifiedNameId) isName() {}
func (q *QualifiedNameId) String() string {
	base := ""
	if q.Base != nil {
		base = q.Base.String() + "::"
	}
	return base + q.Name.String()
}

// SelectorNameId is an Objective-C selector, e.g. `initWithFrame:` or the
// combined `doFoo:bar:` for a multi-keyword message.
type SelectorNameId struct {
	Names    []Name
	HasArgs  bool
}

func (*SelectorNameId) isName() {}
func (s *SelectorNameId) String() string {
	out := ""
	for _, n := range s.Names {
		out += n.String()
		if s.HasArgs {
			out += ":"
		}
	}
	return out
}

// AnonymousNameId names an unnamed class/enum/union by a stable counter
// derived from its introducing token index (spec section 4.4: "anonymous
// name-id created from a stable token-index counter").
type AnonymousNameId struct {
	ClassTokenIndex int
}

func (*AnonymousNameId) isName()          {}
func (a *AnonymousNameId) String() string { return "<anonymous>" }
