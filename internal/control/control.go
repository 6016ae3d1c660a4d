// Package control implements Control, the per-translation-unit factory
// from spec section 4.1 ("Literal Interning and Control") that owns every
// interning pool and hands out canonical Names, Types, and newly-created
// Symbols. Nothing outside this package is allowed to construct a
// cxname.Name or cxtype.Type directly -- that is what makes the "pointer
// equality is structural equality" invariant hold.
//
// Grounded on original_source/src/libs/3rdparty/cplusplus/Control.h's full
// factory method list (intern, templateNameId, destructorNameId,
// operatorNameId, conversionNameId, qualifiedNameId, selectorNameId,
// voidType/integerType/floatType/pointerType/referenceType/arrayType/
// pointerToMemberType/namedType, newDeclaration..newObjCPropertyDeclaration,
// findIdentifier/identifier, hasSymbol/addSymbol) and LiteralTable.h for the
// pool shape (reused as-is from internal/literal).
package control

import (
	"sync"

	"github.com/roberto-raggi/cplusplus-go/internal/cxname"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtype"
	"github.com/roberto-raggi/cplusplus-go/internal/literal"
	"github.com/roberto-raggi/cplusplus-go/internal/logger"
	"github.com/roberto-raggi/cplusplus-go/internal/symbol"
)

// Control is the single interning/factory authority for one translation
// unit. Every pool, map and the symbol list are guarded by mu, so one
// Control may be used from several goroutines; distinct Control values for
// distinct translation units share no state.
type Control struct {
	mu sync.Mutex

	identifiers *pool[literal.Identifier]
	strings     *pool[literal.StringLiteral]
	numerics    *pool[literal.NumericLiteral]

	simpleNames   map[*literal.Identifier]*cxname.Simple
	templateNames map[string]*cxname.TemplateNameId
	destructorNames map[cxname.Name]*cxname.DestructorNameId
	operatorNames map[cxname.OperatorKind]*cxname.OperatorNameId
	conversionNames map[any]*cxname.ConversionNameId
	qualifiedNames map[qualifiedKey]*cxname.QualifiedNameId
	selectorNames map[string]*cxname.SelectorNameId

	voidType    *cxtype.Void
	undefinedType *cxtype.Undefined
	integerTypes [9]*cxtype.Integer // indexed by cxtype.IntegerKind
	floatTypes  [3]*cxtype.Float    // indexed by cxtype.FloatKind
	pointerTypes map[pointerKey]*cxtype.Pointer
	referenceTypes map[referenceKey]*cxtype.Reference
	arrayTypes  map[arrayKey]*cxtype.Array
	namedTypes  map[cxname.Name]*cxtype.Named

	diagnostics logger.Client

	allSymbols []symbol.Symbol
}

// pool mirrors internal/literal's unexported pool[T] shape; Control can't
// reach across the package boundary to literal's unexported type, so it
// keeps its own thin copy built directly on the same map-backed strategy.
// See internal/literal's package doc for why this is the right amount of
// machinery for Go (no hand-rolled bucket array needed).
type pool[T any] struct {
	byChars map[string]*T
}

func newPool[T any]() *pool[T] { return &pool[T]{byChars: make(map[string]*T)} }

type qualifiedKey struct {
	base cxname.Name
	name cxname.Name
}

type pointerKey struct {
	elem  cxtype.Type
	quals cxtype.Qualifiers
}

type referenceKey struct {
	elem    cxtype.Type
	quals   cxtype.Qualifiers
	rvalue  bool
}

type arrayKey struct {
	elem    cxtype.Type
	quals   cxtype.Qualifiers
	size    int
	hasSize bool
}

// New creates a Control for one translation unit. diagnostics may be nil,
// in which case diagnostics are silently discarded (logger.DiscardClient).
func New(diagnostics logger.Client) *Control {
	if diagnostics == nil {
		diagnostics = logger.DiscardClient{}
	}
	return &Control{
		identifiers:     newPool[literal.Identifier](),
		strings:         newPool[literal.StringLiteral](),
		numerics:        newPool[literal.NumericLiteral](),
		templateNames:   make(map[string]*cxname.TemplateNameId),
		destructorNames: make(map[cxname.Name]*cxname.DestructorNameId),
		operatorNames:   make(map[cxname.OperatorKind]*cxname.OperatorNameId),
		conversionNames: make(map[any]*cxname.ConversionNameId),
		qualifiedNames:  make(map[qualifiedKey]*cxname.QualifiedNameId),
		selectorNames:   make(map[string]*cxname.SelectorNameId),
		voidType:        &cxtype.Void{},
		undefinedType:   &cxtype.Undefined{},
		pointerTypes:    make(map[pointerKey]*cxtype.Pointer),
		referenceTypes:  make(map[referenceKey]*cxtype.Reference),
		arrayTypes:      make(map[arrayKey]*cxtype.Array),
		namedTypes:      make(map[cxname.Name]*cxtype.Named),
		diagnostics:     diagnostics,
	}
}

// Diagnostics returns the diagnostic sink this Control reports through.
func (c *Control) Diagnostics() logger.Client { return c.diagnostics }

// --- Literal interning -----------------------------------------------------

func (c *Control) Identifier(chars string) *literal.Identifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.identifiers.byChars[chars]; ok {
		return v
	}
	v := &literal.Identifier{}
	*v = literal.Identifier{Literal: newLiteral(literal.KindIdentifier, chars)}
	c.identifiers.byChars[chars] = v
	return v
}

func (c *Control) FindIdentifier(chars string) (*literal.Identifier, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.identifiers.byChars[chars]
	return v, ok
}

func (c *Control) StringLiteral(chars string) *literal.StringLiteral {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.strings.byChars[chars]; ok {
		return v
	}
	v := &literal.StringLiteral{Literal: newLiteral(literal.KindStringLiteral, chars)}
	c.strings.byChars[chars] = v
	return v
}

func (c *Control) NumericLiteral(chars string) *literal.NumericLiteral {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.numerics.byChars[chars]; ok {
		return v
	}
	v := &literal.NumericLiteral{Literal: newLiteral(literal.KindNumericLiteral, chars)}
	c.numerics.byChars[chars] = v
	return v
}

func newLiteral(kind literal.Kind, chars string) literal.Literal {
	return literal.NewLiteral(kind, chars)
}

// --- Name construction ------------------------------------------------------

func (c *Control) SimpleName(id *literal.Identifier) *cxname.Simple {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.simpleNames[id]; ok {
		return v
	}
	if c.simpleNames == nil {
		c.simpleNames = make(map[*literal.Identifier]*cxname.Simple)
	}
	v := &cxname.Simple{Id: id}
	c.simpleNames[id] = v
	return v
}

func (c *Control) TemplateNameId(id *literal.Identifier, args []cxname.TemplateArgument, isSpecialization bool) *cxname.TemplateNameId {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := id.Chars() + templateArgsKey(args)
	if v, ok := c.templateNames[key]; ok {
		return v
	}
	v := &cxname.TemplateNameId{Id: id, Args: args, IsSpecialization: isSpecialization}
	c.templateNames[key] = v
	return v
}

func templateArgsKey(args []cxname.TemplateArgument) string {
	out := ""
	for _, a := range args {
		if a.Type != nil {
			out += "T"
		} else {
			out += "E:" + a.Expression
		}
		out += ";"
	}
	return out
}

func (c *Control) DestructorNameId(base cxname.Name) *cxname.DestructorNameId {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.destructorNames[base]; ok {
		return v
	}
	v := &cxname.DestructorNameId{Base: base}
	c.destructorNames[base] = v
	return v
}

func (c *Control) OperatorNameId(kind cxname.OperatorKind) *cxname.OperatorNameId {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.operatorNames[kind]; ok {
		return v
	}
	v := &cxname.OperatorNameId{Kind: kind}
	c.operatorNames[kind] = v
	return v
}

func (c *Control) ConversionNameId(typeKey any) *cxname.ConversionNameId {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.conversionNames[typeKey]; ok {
		return v
	}
	v := &cxname.ConversionNameId{Type: typeKey}
	c.conversionNames[typeKey] = v
	return v
}

func (c *Control) QualifiedNameId(base, name cxname.Name) *cxname.QualifiedNameId {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := qualifiedKey{base: base, name: name}
	if v, ok := c.qualifiedNames[key]; ok {
		return v
	}
	v := &cxname.QualifiedNameId{Base: base, Name: name}
	c.qualifiedNames[key] = v
	return v
}

func (c *Control) SelectorNameId(names []cxname.Name, hasArgs bool) *cxname.SelectorNameId {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := selectorKey(names, hasArgs)
	if v, ok := c.selectorNames[key]; ok {
		return v
	}
	v := &cxname.SelectorNameId{Names: names, HasArgs: hasArgs}
	c.selectorNames[key] = v
	return v
}

func selectorKey(names []cxname.Name, hasArgs bool) string {
	out := ""
	for _, n := range names {
		out += n.String() + ":"
	}
	if hasArgs {
		out += "#"
	}
	return out
}

func (c *Control) AnonymousNameId(classTokenIndex int) *cxname.AnonymousNameId {
	return &cxname.AnonymousNameId{ClassTokenIndex: classTokenIndex}
}

// --- Type construction -------------------------------------------------------

func (c *Control) VoidType() *cxtype.Void { return c.voidType }

func (c *Control) UndefinedType() *cxtype.Undefined { return c.undefinedType }

func (c *Control) IntegerType(kind cxtype.IntegerKind) *cxtype.Integer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.integerTypes[kind] == nil {
		c.integerTypes[kind] = &cxtype.Integer{Kind: kind}
	}
	return c.integerTypes[kind]
}

func (c *Control) FloatType(kind cxtype.FloatKind) *cxtype.Float {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.floatTypes[kind] == nil {
		c.floatTypes[kind] = &cxtype.Float{Kind: kind}
	}
	return c.floatTypes[kind]
}

func (c *Control) PointerType(elem cxtype.FullySpecifiedType) *cxtype.Pointer {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := pointerKey{elem: elem.Type, quals: elem.Qualifiers}
	if v, ok := c.pointerTypes[key]; ok {
		return v
	}
	v := &cxtype.Pointer{ElementType: elem}
	c.pointerTypes[key] = v
	return v
}

func (c *Control) ReferenceType(elem cxtype.FullySpecifiedType, isRValue bool) *cxtype.Reference {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := referenceKey{elem: elem.Type, quals: elem.Qualifiers, rvalue: isRValue}
	if v, ok := c.referenceTypes[key]; ok {
		return v
	}
	v := &cxtype.Reference{ElementType: elem, IsRValue: isRValue}
	c.referenceTypes[key] = v
	return v
}

func (c *Control) ArrayType(elem cxtype.FullySpecifiedType, size int, hasSize bool) *cxtype.Array {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := arrayKey{elem: elem.Type, quals: elem.Qualifiers, size: size, hasSize: hasSize}
	if v, ok := c.arrayTypes[key]; ok {
		return v
	}
	v := &cxtype.Array{ElementType: elem, Size: size, HasSize: hasSize}
	c.arrayTypes[key] = v
	return v
}

func (c *Control) PointerToMemberType(memberName cxname.Name, elem cxtype.FullySpecifiedType) *cxtype.PointerToMember {
	return &cxtype.PointerToMember{MemberName: memberName, ElementType: elem}
}

func (c *Control) NamedType(name cxname.Name) *cxtype.Named {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.namedTypes[name]; ok {
		return v
	}
	v := &cxtype.Named{Name: name}
	c.namedTypes[name] = v
	return v
}

func (c *Control) FunctionType(ret cxtype.FullySpecifiedType, params []cxtype.FullySpecifiedType, variadic bool) *cxtype.Function {
	return &cxtype.Function{ReturnType: ret, Parameters: params, Variadic: variadic}
}

// --- Symbol construction ------------------------------------------------------
//
// Unlike names and types, symbols are never canonicalized (spec section 3:
// "no two declarations share a Symbol even if structurally identical"), so
// these are thin, allocate-always constructors that also record every
// symbol this Control has minted, for HasSymbol and SymbolCount below.

func (c *Control) track(s symbol.Symbol) symbol.Symbol {
	c.mu.Lock()
	c.allSymbols = append(c.allSymbols, s)
	c.mu.Unlock()
	return s
}

func (c *Control) NewDeclaration() *symbol.Declaration {
	return c.track(&symbol.Declaration{}).(*symbol.Declaration)
}

func (c *Control) NewEnumeratorDeclaration() *symbol.EnumeratorDeclaration {
	return c.track(&symbol.EnumeratorDeclaration{}).(*symbol.EnumeratorDeclaration)
}

func (c *Control) NewArgument() *symbol.Argument {
	return c.track(&symbol.Argument{}).(*symbol.Argument)
}

func (c *Control) NewTypenameArgument() *symbol.TypenameArgument {
	return c.track(&symbol.TypenameArgument{}).(*symbol.TypenameArgument)
}

func (c *Control) NewFunction() *symbol.Function {
	return c.track(&symbol.Function{}).(*symbol.Function)
}

func (c *Control) NewNamespace() *symbol.Namespace {
	return c.track(&symbol.Namespace{}).(*symbol.Namespace)
}

func (c *Control) NewNamespaceAlias() *symbol.NamespaceAlias {
	return c.track(&symbol.NamespaceAlias{}).(*symbol.NamespaceAlias)
}

func (c *Control) NewTemplate() *symbol.Template {
	return c.track(&symbol.Template{}).(*symbol.Template)
}

func (c *Control) NewBaseClass() *symbol.BaseClass {
	return c.track(&symbol.BaseClass{}).(*symbol.BaseClass)
}

func (c *Control) NewClass() *symbol.Class {
	return c.track(&symbol.Class{}).(*symbol.Class)
}

func (c *Control) NewEnum() *symbol.Enum {
	return c.track(&symbol.Enum{}).(*symbol.Enum)
}

func (c *Control) NewBlock() *symbol.Block {
	return c.track(&symbol.Block{}).(*symbol.Block)
}

func (c *Control) NewUsingNamespaceDirective() *symbol.UsingNamespaceDirective {
	return c.track(&symbol.UsingNamespaceDirective{}).(*symbol.UsingNamespaceDirective)
}

func (c *Control) NewUsingDeclaration() *symbol.UsingDeclaration {
	return c.track(&symbol.UsingDeclaration{}).(*symbol.UsingDeclaration)
}

func (c *Control) NewForwardClassDeclaration() *symbol.ForwardClassDeclaration {
	return c.track(&symbol.ForwardClassDeclaration{}).(*symbol.ForwardClassDeclaration)
}

func (c *Control) NewQtPropertyDeclaration() *symbol.QtPropertyDeclaration {
	return c.track(&symbol.QtPropertyDeclaration{}).(*symbol.QtPropertyDeclaration)
}

func (c *Control) NewQtEnum() *symbol.QtEnum {
	return c.track(&symbol.QtEnum{}).(*symbol.QtEnum)
}

func (c *Control) NewObjCClass() *symbol.ObjCClass {
	return c.track(&symbol.ObjCClass{}).(*symbol.ObjCClass)
}

func (c *Control) NewObjCProtocol() *symbol.ObjCProtocol {
	return c.track(&symbol.ObjCProtocol{}).(*symbol.ObjCProtocol)
}

func (c *Control) NewObjCMethod() *symbol.ObjCMethod {
	return c.track(&symbol.ObjCMethod{}).(*symbol.ObjCMethod)
}

func (c *Control) NewObjCPropertyDeclaration() *symbol.ObjCPropertyDeclaration {
	return c.track(&symbol.ObjCPropertyDeclaration{}).(*symbol.ObjCPropertyDeclaration)
}

// HasSymbol reports whether s was minted by this Control -- a linear scan,
// acceptable because spec section 4.1 only requires this for assertions and
// tests, never on a hot binding path.
func (c *Control) HasSymbol(s symbol.Symbol) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, have := range c.allSymbols {
		if have == s {
			return true
		}
	}
	return false
}

func (c *Control) SymbolCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.allSymbols)
}
