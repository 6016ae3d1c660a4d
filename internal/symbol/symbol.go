// Package symbol implements the Symbol hierarchy and Scope from spec
// section 3 ("Symbols" / "Scopes"). Unlike Name and Type, Symbols are NOT
// interned -- spec section 3: "Symbols are uniquely created; no two
// declarations share a Symbol even if structurally identical" -- so this
// package needs no pool, only plain constructors. internal/control still
// owns construction so every Symbol it mints is recorded in that Control's
// symbol list (see Control.HasSymbol); a Symbol itself carries no
// reference to its Control.
//
// Grounded on original_source/tests/manual/cppmodelmanager/binder.h (the
// symbol variants a real Bind pass produces) and
// CPlusPlusForwardDeclarations.h's symbol-class list.
package symbol

import (
	"github.com/roberto-raggi/cplusplus-go/internal/cxname"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtype"
)

// Symbol is implemented by every symbol-table entry variant.
type Symbol interface {
	isSymbol()
	Name() cxname.Name
	SourceTokenIndex() int
	Scope() *Scope
	setScope(*Scope)
}

type base struct {
	name        cxname.Name
	tokenIndex  int
	enclosing   *Scope
}

func (b *base) Name() cxname.Name     { return b.name }
func (b *base) SourceTokenIndex() int { return b.tokenIndex }
func (b *base) Scope() *Scope         { return b.enclosing }
func (b *base) setScope(s *Scope)     { b.enclosing = s }

// SetName and SetSourceTokenIndex let internal/binder finish filling in a
// Symbol that internal/control minted empty (spec section 4.1: "Control
// constructs a blank Symbol; the binder is what gives it a name, a source
// position, and a type").
func (b *base) SetName(n cxname.Name)          { b.name = n }
func (b *base) SetSourceTokenIndex(i int)      { b.tokenIndex = i }

// Declaration is a plain variable, data member, or typedef declaration.
type Declaration struct {
	base
	Type      cxtype.FullySpecifiedType
	IsTypedef bool
}

func (*Declaration) isSymbol() {}

// EnumeratorDeclaration is one `Name = Value` entry inside an Enum.
type EnumeratorDeclaration struct {
	base
	HasConstantValue bool
	ConstantValue    string // unevaluated spelling; internal/binder leaves it empty
}

func (*EnumeratorDeclaration) isSymbol() {}

// Argument is a function parameter.
type Argument struct {
	base
	Type       cxtype.FullySpecifiedType
	HasDefault bool
}

func (*Argument) isSymbol() {}

// TypenameArgument is a template type parameter (`template <typename T>`).
type TypenameArgument struct {
	base
	IsClassKey    bool // `class T` vs `typename T`, spelling only
	IsVariadic    bool
	HasDefaultType bool
	DefaultType   cxtype.FullySpecifiedType
}

func (*TypenameArgument) isSymbol() {}

// Function is a function or member-function declaration or definition.
type Function struct {
	base
	Type          cxtype.FullySpecifiedType
	FunctionScope *Scope // parameters + locals, nil until a body is bound
	IsDefinition  bool
	IsVirtual     bool
	IsPureVirtual bool
	IsStatic      bool
	IsOverride    bool
	IsFinal       bool
}

func (*Function) isSymbol() {}

// Namespace is a (possibly anonymous) namespace.
type Namespace struct {
	base
	Members     *Scope
	IsInline    bool
	IsAnonymous bool
}

func (*Namespace) isSymbol() {}

// NamespaceAlias is `namespace Foo = Bar::Baz;`.
type NamespaceAlias struct {
	base
	Target cxname.Name
}

func (*NamespaceAlias) isSymbol() {}

// Template wraps a generic declaration with its parameter list.
type Template struct {
	base
	Parameters *Scope
	Declared   Symbol
}

func (*Template) isSymbol() {}

// AccessSpecifier mirrors spec section 4.4's visibility model.
type AccessSpecifier uint8

const (
	AccessPublic AccessSpecifier = iota
	AccessProtected
	AccessPrivate
)

// BaseClass is one entry in a class's base-class list.
type BaseClass struct {
	base
	Access      AccessSpecifier
	IsVirtual   bool
}

func (*BaseClass) isSymbol() {}

type ClassKey uint8

const (
	ClassKeyClass ClassKey = iota
	ClassKeyStruct
	ClassKeyUnion
)

// Class is a class/struct/union declaration.
type Class struct {
	base
	Key        ClassKey
	Bases      []*BaseClass
	Members    *Scope
	IsTemplate bool
}

func (*Class) isSymbol() {}

// Enum is an enum (or `enum class`) declaration.
type Enum struct {
	base
	Members    *Scope // EnumeratorDeclaration entries
	IsScoped   bool   // `enum class` / `enum struct`
}

func (*Enum) isSymbol() {}

// Block is an anonymous compound-statement scope.
type Block struct {
	base
	Members *Scope
}

func (*Block) isSymbol() {}

// UsingNamespaceDirective is `using namespace Foo;`.
type UsingNamespaceDirective struct {
	base
	Target cxname.Name
}

func (*UsingNamespaceDirective) isSymbol() {}

// UsingDeclaration is `using Foo::bar;`.
type UsingDeclaration struct {
	base
}

func (*UsingDeclaration) isSymbol() {}

// ForwardClassDeclaration is `class Foo;` with no definition.
type ForwardClassDeclaration struct {
	base
	Key ClassKey
}

func (*ForwardClassDeclaration) isSymbol() {}

// QtPropertyDeclaration is a `Q_PROPERTY(...)` entry, emitted only when
// config.LexerFlags.QtMocRunEnabled (SPEC_FULL.md C.2).
type QtPropertyDeclaration struct {
	base
	Type cxtype.FullySpecifiedType
}

func (*QtPropertyDeclaration) isSymbol() {}

// QtEnum is a `Q_ENUMS(Foo)` / `Q_FLAGS(Foo)` registration.
type QtEnum struct {
	base
	IsFlags bool
}

func (*QtEnum) isSymbol() {}

// ObjCClass is an Objective-C @interface/@implementation.
type ObjCClass struct {
	base
	IsInterface bool
	IsCategory  bool
	CategoryName cxname.Name
	Super       cxname.Name
	Members     *Scope
}

func (*ObjCClass) isSymbol() {}

// ObjCProtocol is an Objective-C @protocol.
type ObjCProtocol struct {
	base
	Members *Scope
}

func (*ObjCProtocol) isSymbol() {}

// ObjCMethod is an Objective-C method declaration (`-`/`+` prefixed).
type ObjCMethod struct {
	base
	Type       cxtype.FullySpecifiedType
	IsClassMethod bool
	Arguments  *Scope
}

func (*ObjCMethod) isSymbol() {}

// ObjCPropertyDeclaration is an Objective-C `@property` declaration.
type ObjCPropertyDeclaration struct {
	base
	Type cxtype.FullySpecifiedType
}

func (*ObjCPropertyDeclaration) isSymbol() {}

// Scope is an ordered, append-only collection of Symbols sharing one
// lexical or class/namespace scope (spec section 3: "Scopes are ordered:
// lookup must be able to return all declarations of a name, not just the
// first or last"). A Scope also keeps a by-name index holding every
// declaration of each name in order, which both Lookup and LookupAll read;
// neither scans the member list.
type Scope struct {
	owner    Symbol
	parent   *Scope
	members  []Symbol
	byName   map[string][]Symbol
}

func NewScope(owner Symbol, parent *Scope) *Scope {
	return &Scope{owner: owner, parent: parent, byName: make(map[string][]Symbol)}
}

func (s *Scope) Owner() Symbol  { return s.owner }
func (s *Scope) Parent() *Scope { return s.parent }

// Add appends sym to the scope's member list. Adding a member never fails
// and never replaces an existing entry of the same name: the scope stores
// both, and internal/binder does not report the redeclaration.
func (s *Scope) Add(sym Symbol) {
	sym.setScope(s)
	s.members = append(s.members, sym)
	key := sym.Name().String()
	s.byName[key] = append(s.byName[key], sym)
}

func (s *Scope) Members() []Symbol {
	out := make([]Symbol, len(s.members))
	copy(out, s.members)
	return out
}

// Lookup returns the first symbol of the given name in this scope.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	if syms, ok := s.byName[name]; ok && len(syms) > 0 {
		return syms[0], true
	}
	return nil, false
}

// LookupAll returns every symbol of the given name declared directly in
// this scope (no parent-scope walk -- that's the binder's job, since it
// alone knows about using-directives and base-class lookup order).
func (s *Scope) LookupAll(name string) []Symbol {
	syms := s.byName[name]
	out := make([]Symbol, len(syms))
	copy(out, syms)
	return out
}

func (s *Scope) Len() int { return len(s.members) }
