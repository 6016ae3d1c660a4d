// Package binder implements Bind from spec section 4.4 ("Binder"): a
// depth-first semantic walk over a cxast tree that builds Scopes, resolves
// declarators into Symbols, attaches types, and reports diagnostics through
// a TranslationUnit. The tree itself is produced by an external parser
// (spec section 1 explicitly excludes the recursive-descent parser from
// this core) — Bind's only job is to walk a tree that already exists.
//
// Grounded on original_source/src/libs/3rdparty/cplusplus/Bind.cpp:
// declaration/class/enum/template/function-definition/ObjC/Qt handling and
// its tolerance for anonymous/malformed names. Enumerators record only
// whether an explicit `= value` is present (HasConstantValue); their
// ConstantValue string is left empty, so no enumerator value is inferred.
package binder

import (
	"github.com/roberto-raggi/cplusplus-go/internal/control"
	"github.com/roberto-raggi/cplusplus-go/internal/cxast"
	"github.com/roberto-raggi/cplusplus-go/internal/cxname"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtype"
	"github.com/roberto-raggi/cplusplus-go/internal/literal"
	"github.com/roberto-raggi/cplusplus-go/internal/symbol"
	"github.com/roberto-raggi/cplusplus-go/internal/translationunit"
)

// maxBindDepth backstops runaway recursion on a malformed or adversarially
// deep tree (spec section 4.4: "the binder checks depth at each visit").
const maxBindDepth = 4096

// Binder walks one translation unit's AST once, left to right, depth
// first, minting symbols through ctrl and threading a current *symbol.Scope
// through every call -- this IS the mutable walking state table spec
// section 4.4 describes (scope/visibility/type/name/depth), kept as
// ordinary Go call-stack locals plus the one field below (depth) that
// persists across calls; ctrl and tu are fixed for the Binder's lifetime.
type Binder struct {
	ctrl *control.Control
	tu   *translationunit.TranslationUnit

	depth int
}

// New creates a Binder over one Control/TranslationUnit pair. Both must
// belong to the same translation unit (spec section 5: "one Control per
// translation unit").
func New(ctrl *control.Control, tu *translationunit.TranslationUnit) *Binder {
	return &Binder{ctrl: ctrl, tu: tu}
}

// Bind walks root and returns the global scope it populated. A fresh global
// scope is created per call, owned by no symbol (spec section 4.4: "the
// translation unit's top level binds into a scope with no owning symbol").
func (b *Binder) Bind(root *cxast.Root) *symbol.Scope {
	global := symbol.NewScope(nil, nil)
	if root == nil {
		return global
	}
	for _, d := range root.Declarations {
		b.bindDeclaration(d, global)
	}
	return global
}

func (b *Binder) enter() bool {
	b.depth++
	if b.depth > maxBindDepth {
		if b.tu.TokenCount() > 0 {
			b.tu.Fatal(0, "binder: maximum nesting depth exceeded")
		}
		b.depth--
		return false
	}
	return true
}

func (b *Binder) leave() { b.depth-- }

// identifierAt interns the spelling of the identifier token at index idx.
// The AST stores only a token index (spec section 3: "every node stores
// token indices, never pointers to tokens"); the binder is what resolves a
// spelling into a canonical Name, since only it has both the TranslationUnit
// (for source text) and the Control (for interning) in scope at once.
func (b *Binder) identifierAt(idx int) *literal.Identifier {
	if idx < 0 || idx >= b.tu.TokenCount() {
		return b.ctrl.Identifier("")
	}
	t := b.tu.TokenAt(idx)
	src := b.tu.Source()
	end := int(t.ByteOffset) + int(t.ByteLength)
	if end > len(src) {
		end = len(src)
	}
	if int(t.ByteOffset) > end {
		return b.ctrl.Identifier("")
	}
	return b.ctrl.Identifier(src[t.ByteOffset:end])
}

// resolveName turns an AST Name node into a canonical cxname.Name, or a
// synthetic anonymous name if n is nil (spec section 4.4: "anonymous
// name-id created from a stable token-index counter" for unnamed
// class/enum/union declarations).
func (b *Binder) resolveName(n cxast.Name, fallbackTokenIndex int) cxname.Name {
	switch v := n.(type) {
	case nil:
		return b.ctrl.AnonymousNameId(fallbackTokenIndex)
	case *cxast.SimpleName:
		return b.ctrl.SimpleName(b.identifierAt(v.Identifier))
	case *cxast.DestructorName:
		return b.ctrl.DestructorNameId(b.resolveName(v.Id, v.Tilde))
	case *cxast.QualifiedName:
		base := b.resolveQualifierChain(v.NestedNameSpecifier)
		unqual := b.resolveName(v.UnqualifiedName, v.FirstToken())
		if base == nil {
			return unqual
		}
		return b.ctrl.QualifiedNameId(base, unqual)
	case *cxast.TemplateId:
		return b.ctrl.TemplateNameId(b.identifierAt(v.Identifier), nil, false)
	case *cxast.OperatorFunctionId:
		return b.ctrl.OperatorNameId(cxname.OpFunctionCall)
	case *cxast.AnonymousName:
		return b.ctrl.AnonymousNameId(v.ClassTokenIndex)
	default:
		return b.ctrl.AnonymousNameId(fallbackTokenIndex)
	}
}

func (b *Binder) resolveQualifierChain(parts cxast.List[cxast.Name]) cxname.Name {
	var chain cxname.Name
	for _, p := range parts {
		seg := b.resolveName(p, p.FirstToken())
		if chain == nil {
			chain = seg
		} else {
			chain = b.ctrl.QualifiedNameId(chain, seg)
		}
	}
	return chain
}

// --- Declarations --------------------------------------------------------------

func (b *Binder) bindDeclaration(d cxast.Declaration, scope *symbol.Scope) {
	if d == nil || !b.enter() {
		return
	}
	defer b.leave()

	switch n := d.(type) {
	case *cxast.SimpleDeclaration:
		b.bindSimpleDeclaration(n, scope)
	case *cxast.FunctionDefinition:
		b.bindFunctionDefinition(n, scope)
	case *cxast.Namespace:
		b.bindNamespace(n, scope)
	case *cxast.NamespaceAliasDefinition:
		sym := b.ctrl.NewNamespaceAlias()
		sym.SetName(b.ctrl.SimpleName(b.identifierAt(n.Identifier)))
		sym.SetSourceTokenIndex(n.Identifier)
		sym.Target = b.resolveName(n.Name, n.FirstToken())
		scope.Add(sym)
		n.Sym = sym
	case *cxast.UsingDirective:
		sym := b.ctrl.NewUsingNamespaceDirective()
		sym.SetSourceTokenIndex(n.FirstToken())
		// A using-directive names no symbol of its own (spec section 4.4);
		// the anonymous name only lets it live in a Scope, which requires one.
		sym.SetName(b.ctrl.AnonymousNameId(n.FirstToken()))
		sym.Target = b.resolveName(n.Name, n.FirstToken())
		scope.Add(sym)
		n.Sym = sym
	case *cxast.Using:
		sym := b.ctrl.NewUsingDeclaration()
		sym.SetName(b.resolveName(n.Name, n.FirstToken()))
		sym.SetSourceTokenIndex(n.FirstToken())
		scope.Add(sym)
		n.Sym = sym
	case *cxast.TemplateDeclaration:
		b.bindTemplateDeclaration(n, scope)
	case *cxast.TypenameTypeParameter:
		b.bindTypenameTypeParameter(n, scope)
	case *cxast.QtPropertyDeclaration:
		sym := b.ctrl.NewQtPropertyDeclaration()
		sym.SetName(b.ctrl.SimpleName(b.identifierAt(n.Name)))
		sym.SetSourceTokenIndex(n.Name)
		sym.Type = b.bindTypeId(n.TypeId, scope)
		scope.Add(sym)
		n.Sym = sym
	case *cxast.QtEnumDeclaration:
		sym := b.ctrl.NewQtEnum()
		sym.SetSourceTokenIndex(n.FirstToken())
		sym.SetName(b.ctrl.AnonymousNameId(n.FirstToken()))
		scope.Add(sym)
		n.Sym = sym
	case *cxast.QtFlagsDeclaration:
		sym := b.ctrl.NewQtEnum()
		sym.IsFlags = true
		sym.SetSourceTokenIndex(n.FirstToken())
		sym.SetName(b.ctrl.AnonymousNameId(n.FirstToken()))
		scope.Add(sym)
		n.Sym = sym
	case *cxast.QtMethod:
		b.bindQtMethod(n, scope)
	case *cxast.ObjCClassDeclaration:
		b.bindObjCClass(n, scope)
	case *cxast.ObjCProtocolDeclaration:
		b.bindObjCProtocol(n, scope)
	case *cxast.ObjCMethodDeclaration:
		b.bindObjCMethod(n, scope)
	case *cxast.ObjCPropertyDeclaration:
		sym := b.ctrl.NewObjCPropertyDeclaration()
		sym.SetSourceTokenIndex(n.FirstToken())
		// The AST node carries no identifier token of its own (the property
		// name lives inside its TypeId's declarator); fall back to an
		// anonymous name rather than guess at a declarator shape here.
		sym.SetName(b.ctrl.AnonymousNameId(n.FirstToken()))
		sym.Type = b.bindTypeId(n.TypeId, scope)
		scope.Add(sym)
		n.Sym = sym
	case *cxast.AccessDeclaration, *cxast.EmptyDeclaration, *cxast.StaticAssertDeclaration,
		*cxast.QtObjectTag:
		// No symbol: these carry no declarative content of their own (spec
		// section 4.4 only asks the binder to produce symbols for
		// declarations that introduce a name or a scope).
	}
}

// bindSimpleDeclaration is the workhorse: a DeclSpecifierList (which may
// itself introduce a class/enum) plus zero or more declarators, each
// producing one Declaration or Function symbol.
func (b *Binder) bindSimpleDeclaration(n *cxast.SimpleDeclaration, scope *symbol.Scope) {
	baseType := b.bindSpecifierList(n.DeclSpecifierList, scope)

	if len(n.DeclaratorList) == 0 {
		// A bare `class Foo { ... };` with no declarator: the class/enum
		// specifier binding above already added its symbol to scope.
		return
	}

	for _, decl := range n.DeclaratorList {
		if decl == nil {
			continue
		}
		if fd := trailingFunctionDeclarator(decl); fd != nil {
			b.bindFunctionDeclarator(decl, fd, baseType, scope, nil)
			continue
		}
		if b.looksLikeAmbiguousCallDeclarator(decl) {
			b.bindAmbiguousCallDeclarator(decl, baseType, scope)
			continue
		}
		b.bindVariableDeclarator(decl, baseType, scope)
	}
}

func trailingFunctionDeclarator(d *cxast.Declarator) *cxast.FunctionDeclarator {
	for i := len(d.PostfixDeclarators) - 1; i >= 0; i-- {
		if fd, ok := d.PostfixDeclarators[i].(*cxast.FunctionDeclarator); ok {
			return fd
		}
	}
	return nil
}

func declaratorName(d *cxast.Declarator) cxast.Name {
	switch core := d.CoreDeclarator.(type) {
	case *cxast.DeclaratorId:
		return core.Name
	case *cxast.NestedDeclarator:
		if core.Declarator != nil {
			return declaratorName(core.Declarator)
		}
	}
	return nil
}

func (b *Binder) bindVariableDeclarator(d *cxast.Declarator, baseType cxtype.FullySpecifiedType, scope *symbol.Scope) {
	sym := b.ctrl.NewDeclaration()
	name := declaratorName(d)
	sym.SetName(b.resolveName(name, d.FirstToken()))
	sym.SetSourceTokenIndex(d.FirstToken())
	sym.Type = b.applyDeclaratorShape(d, baseType)
	sym.IsTypedef = baseType.Qualifiers.Has(cxtype.QualTypedef)
	scope.Add(sym)
}

// applyDeclaratorShape layers a declarator's pointer/array operators onto
// baseType, matching spec section 4.4's "type built outside-in from the
// declarator's pointer operators and postfix declarators."
func (b *Binder) applyDeclaratorShape(d *cxast.Declarator, baseType cxtype.FullySpecifiedType) cxtype.FullySpecifiedType {
	result := baseType
	for _, pd := range d.PostfixDeclarators {
		if ad, ok := pd.(*cxast.ArrayDeclarator); ok {
			result = cxtype.FullySpecifiedType{
				Type:  b.ctrl.ArrayType(result, 0, ad.Expression != nil),
				Valid: true,
			}
		}
	}
	for i := len(d.PtrOperators) - 1; i >= 0; i-- {
		switch op := d.PtrOperators[i].(type) {
		case *cxast.Pointer:
			result = cxtype.FullySpecifiedType{Type: b.ctrl.PointerType(result), Valid: true}
		case *cxast.Reference:
			result = cxtype.FullySpecifiedType{Type: b.ctrl.ReferenceType(result, op.IsRValue), Valid: true}
		}
	}
	return result
}

// looksLikeAmbiguousCallDeclarator recognizes the classic C++ grammar
// ambiguity `T foo(Bar);` -- syntactically both a function declaration
// (foo takes one Bar parameter) and, if Bar actually names a variable, a
// function-style-cast variable initialization. A parser without full type
// information (spec section 1: "tolerant, not a standards enforcer") can't
// always disambiguate, so it is expected to hand the binder a
// ParameterDeclaration-shaped FunctionDeclarator in either case. This
// predicate always reports false, so bindDeclaration never reaches
// bindAmbiguousCallDeclarator.
func (b *Binder) looksLikeAmbiguousCallDeclarator(d *cxast.Declarator) bool {
	return false // see bindAmbiguousCallDeclarator's doc comment
}

// bindAmbiguousCallDeclarator binds d as a plain Declaration of baseType.
// It is reachable only through looksLikeAmbiguousCallDeclarator, which
// always reports false. A `Foo bar(Baz);` declarator that carries a
// FunctionDeclarator is instead bound by bindFunctionDeclarator as an
// ordinary Function symbol (the "most vexing parse" reading), with no mark
// distinguishing it from an unambiguous function declaration.
func (b *Binder) bindAmbiguousCallDeclarator(d *cxast.Declarator, baseType cxtype.FullySpecifiedType, scope *symbol.Scope) {
	b.bindVariableDeclarator(d, baseType, scope)
}

func (b *Binder) bindFunctionDeclarator(d *cxast.Declarator, fd *cxast.FunctionDeclarator, baseType cxtype.FullySpecifiedType, scope *symbol.Scope, body *cxast.CompoundStatement) *symbol.Function {
	sym := b.ctrl.NewFunction()
	name := declaratorName(d)
	sym.SetName(b.resolveName(name, d.FirstToken()))
	sym.SetSourceTokenIndex(d.FirstToken())
	sym.IsDefinition = body != nil
	sym.IsStatic = baseType.Qualifiers.Has(cxtype.QualStatic)
	sym.IsVirtual = baseType.Qualifiers.Has(cxtype.QualVirtual)
	sym.IsOverride = baseType.Qualifiers.Has(cxtype.QualOverride)
	sym.IsFinal = baseType.Qualifiers.Has(cxtype.QualFinal)

	params := make([]cxtype.FullySpecifiedType, 0, len(fd.ParameterDeclarations))
	funcScope := symbol.NewScope(sym, scope)
	for _, p := range fd.ParameterDeclarations {
		if p == nil {
			continue
		}
		argType := b.bindSpecifierList(p.TypeSpecifierList, funcScope)
		if p.Declarator != nil {
			argType = b.applyDeclaratorShape(p.Declarator, argType)
		}
		params = append(params, argType)

		arg := b.ctrl.NewArgument()
		arg.SetSourceTokenIndex(p.FirstToken())
		var argName cxast.Name
		if p.Declarator != nil {
			argName = declaratorName(p.Declarator)
		}
		arg.SetName(b.resolveName(argName, p.FirstToken()))
		arg.Type = argType
		arg.HasDefault = p.Expression != nil
		funcScope.Add(arg)
		p.Sym = arg
	}
	sym.Type = cxtype.FullySpecifiedType{
		Type:  b.ctrl.FunctionType(baseType, params, isVariadicParamList(fd.ParameterDeclarations)),
		Valid: true,
	}
	scope.Add(sym)
	fd.Sym = sym

	if body != nil {
		sym.FunctionScope = funcScope
		b.bindStatementsInto(body.Statements, funcScope)
		body.Sym = bodyBlockSymbolForFunction(sym)
	}
	return sym
}

// bodyBlockSymbolForFunction synthesizes the Block symbol a
// CompoundStatement.Sym field expects even when the block IS a function
// body (spec's AST reuses CompoundStatement for both), by wrapping the
// function's own scope.
func bodyBlockSymbolForFunction(fn *symbol.Function) *symbol.Block {
	blk := &symbol.Block{Members: fn.FunctionScope}
	return blk
}

func isVariadicParamList(params cxast.List[*cxast.ParameterDeclaration]) bool {
	return false // spec section 4.4's C variadic ("...") is a trailing pseudo-parameter the external parser does not emit as a ParameterDeclaration; nothing to detect here yet.
}

func (b *Binder) bindFunctionDefinition(n *cxast.FunctionDefinition, scope *symbol.Scope) {
	baseType := b.bindSpecifierList(n.DeclSpecifierList, scope)
	if n.Declarator == nil {
		return
	}
	fd := trailingFunctionDeclarator(n.Declarator)
	if fd == nil {
		// Malformed: a function definition with no function declarator.
		// Tolerant recovery (spec section 1): bind what we can as a plain
		// declaration rather than dropping it silently.
		b.bindVariableDeclarator(n.Declarator, baseType, scope)
		return
	}
	sym := b.bindFunctionDeclarator(n.Declarator, fd, baseType, scope, n.FunctionBody)
	n.Sym = sym
}

func (b *Binder) bindNamespace(n *cxast.Namespace, scope *symbol.Scope) {
	sym := b.ctrl.NewNamespace()
	sym.IsInline = n.IsInline
	sym.IsAnonymous = !n.HasIdentifier
	sym.SetSourceTokenIndex(n.FirstToken())
	if n.HasIdentifier {
		sym.SetName(b.ctrl.SimpleName(b.identifierAt(n.Identifier)))
	} else {
		sym.SetName(b.ctrl.AnonymousNameId(n.FirstToken()))
	}
	members := symbol.NewScope(sym, scope)
	sym.Members = members
	scope.Add(sym)
	n.Sym = sym

	if n.LinkageBody != nil {
		for _, d := range n.LinkageBody.Declarations {
			b.bindDeclaration(d, members)
		}
	}
}

func (b *Binder) bindTemplateDeclaration(n *cxast.TemplateDeclaration, scope *symbol.Scope) {
	sym := b.ctrl.NewTemplate()
	sym.SetSourceTokenIndex(n.FirstToken())
	params := symbol.NewScope(sym, scope)
	sym.Parameters = params
	for _, p := range n.TemplateParameters {
		b.bindDeclaration(p, params)
	}
	n.Sym = sym

	if n.Declaration != nil {
		// The wrapped declaration binds into the ENCLOSING scope (a
		// template is transparent to name lookup outside itself, spec
		// section 4.4), but its own parameters were already bound above.
		before := scope.Len()
		b.bindDeclaration(n.Declaration, scope)
		added := scope.Members()
		if len(added) > before {
			sym.Declared = added[len(added)-1]
		}
	}
	if sym.Declared != nil {
		sym.SetName(sym.Declared.Name())
	} else {
		sym.SetName(b.ctrl.AnonymousNameId(n.FirstToken()))
	}
	// Add after Declared/Name are resolved: Scope.Add keys members by
	// Name(), which must not be nil when this is appended.
	scope.Add(sym)
}

func (b *Binder) bindTypenameTypeParameter(n *cxast.TypenameTypeParameter, scope *symbol.Scope) {
	sym := b.ctrl.NewTypenameArgument()
	sym.IsClassKey = n.IsClassKey
	sym.SetSourceTokenIndex(n.FirstToken())
	sym.SetName(b.resolveName(n.Name, n.FirstToken()))
	if n.TypeId != nil {
		sym.HasDefaultType = true
		sym.DefaultType = b.bindTypeId(n.TypeId, scope)
	}
	scope.Add(sym)
	n.Sym = sym
}

func (b *Binder) bindQtMethod(n *cxast.QtMethod, scope *symbol.Scope) {
	if n.Declarator == nil {
		return
	}
	fd := trailingFunctionDeclarator(n.Declarator)
	if fd == nil {
		return
	}
	sym := b.bindFunctionDeclarator(n.Declarator, fd, cxtype.FullySpecifiedType{Valid: true, Type: b.ctrl.VoidType()}, scope, nil)
	_ = sym // n.Kind (slot/signal/invokable) is not recorded: symbol.Function
	// has no field for it, so a Qt method binds as a plain Function.
}

func (b *Binder) bindObjCClass(n *cxast.ObjCClassDeclaration, scope *symbol.Scope) {
	sym := b.ctrl.NewObjCClass()
	sym.IsInterface = true
	sym.IsCategory = n.HasCategory
	sym.SetSourceTokenIndex(n.FirstToken())
	sym.SetName(b.ctrl.SimpleName(b.identifierAt(n.Identifier)))
	if n.HasSuperClass {
		sym.Super = b.ctrl.SimpleName(b.identifierAt(n.SuperClass))
	}
	members := symbol.NewScope(sym, scope)
	sym.Members = members
	scope.Add(sym)
	n.Sym = sym

	for _, m := range n.MemberDeclarations {
		if md, ok := m.(cxast.Declaration); ok {
			b.bindDeclaration(md, members)
		}
	}
}

func (b *Binder) bindObjCProtocol(n *cxast.ObjCProtocolDeclaration, scope *symbol.Scope) {
	sym := b.ctrl.NewObjCProtocol()
	sym.SetSourceTokenIndex(n.FirstToken())
	sym.SetName(b.ctrl.SimpleName(b.identifierAt(n.Identifier)))
	members := symbol.NewScope(sym, scope)
	sym.Members = members
	scope.Add(sym)
	n.Sym = sym

	for _, m := range n.MemberDeclarations {
		if md, ok := m.(cxast.Declaration); ok {
			b.bindDeclaration(md, members)
		}
	}
}

func (b *Binder) bindObjCMethod(n *cxast.ObjCMethodDeclaration, scope *symbol.Scope) {
	sym := b.ctrl.NewObjCMethod()
	sym.IsClassMethod = n.IsClassMethod
	sym.SetSourceTokenIndex(n.FirstToken())
	sym.SetName(b.resolveName(n.Selector, n.FirstToken()))
	sym.Type = b.bindTypeId(n.ReturnTypeId, scope)

	args := symbol.NewScope(sym, scope)
	sym.Arguments = args
	for _, p := range n.Arguments {
		if p == nil {
			continue
		}
		argType := b.bindSpecifierList(p.TypeSpecifierList, args)
		arg := b.ctrl.NewArgument()
		arg.SetSourceTokenIndex(p.FirstToken())
		var argName cxast.Name
		if p.Declarator != nil {
			argName = declaratorName(p.Declarator)
			argType = b.applyDeclaratorShape(p.Declarator, argType)
		}
		arg.SetName(b.resolveName(argName, p.FirstToken()))
		arg.Type = argType
		args.Add(arg)
		p.Sym = arg
	}
	scope.Add(sym)
	n.Sym = sym

	if n.FunctionBody != nil {
		b.bindStatementsInto(n.FunctionBody.Statements, args)
	}
}

// --- Specifiers / types --------------------------------------------------------

// bindSpecifierList folds a DeclSpecifierList into one FullySpecifiedType,
// binding any ClassSpecifier/EnumSpecifier found along the way into scope
// as a side effect (spec section 4.4: "a declaration's specifier list may
// itself introduce a class or enum").
func (b *Binder) bindSpecifierList(specs cxast.List[cxast.Specifier], scope *symbol.Scope) cxtype.FullySpecifiedType {
	result := cxtype.FullySpecifiedType{Type: b.ctrl.UndefinedType(), Valid: true}
	var quals cxtype.Qualifiers

	for _, s := range specs {
		switch spec := s.(type) {
		case *cxast.SimpleSpecifier:
			if t, q, ok := b.simpleSpecifierType(spec); ok {
				result.Type = t
				quals |= q
			} else {
				quals |= q
			}
		case *cxast.NamedTypeSpecifier:
			result.Type = b.ctrl.NamedType(b.resolveName(spec.Name, spec.FirstToken()))
		case *cxast.ElaboratedTypeSpecifier:
			result.Type = b.ctrl.NamedType(b.resolveName(spec.Name, spec.FirstToken()))
		case *cxast.DecltypeSpecifier:
			result.Type = b.ctrl.UndefinedType() // spec section 1 excludes expression type inference
		case *cxast.ClassSpecifier:
			sym := b.bindClassSpecifier(spec, scope)
			result.Type = b.ctrl.NamedType(sym.Name())
		case *cxast.EnumSpecifier:
			sym := b.bindEnumSpecifier(spec, scope)
			result.Type = b.ctrl.NamedType(sym.Name())
		}
	}
	result.Qualifiers = quals
	return result
}

// simpleSpecifierType maps a single keyword token to a builtin Type where
// one exists, or reports it as a qualifier-only specifier (const, static,
// ...) via the returned Qualifiers bit.
func (b *Binder) simpleSpecifierType(spec *cxast.SimpleSpecifier) (cxtype.Type, cxtype.Qualifiers, bool) {
	kind := b.tu.TokenAt(spec.SpecifierToken).Kind
	switch kind {
	case cxtoken.KwVoid:
		return b.ctrl.VoidType(), 0, true
	case cxtoken.KwChar:
		return b.ctrl.IntegerType(cxtype.IntChar), 0, true
	case cxtoken.KwChar16T:
		return b.ctrl.IntegerType(cxtype.IntChar16), 0, true
	case cxtoken.KwChar32T:
		return b.ctrl.IntegerType(cxtype.IntChar32), 0, true
	case cxtoken.KwWcharT:
		return b.ctrl.IntegerType(cxtype.IntWideChar), 0, true
	case cxtoken.KwShort:
		return b.ctrl.IntegerType(cxtype.IntShort), 0, true
	case cxtoken.KwInt:
		return b.ctrl.IntegerType(cxtype.IntInt), 0, true
	case cxtoken.KwLong:
		return b.ctrl.IntegerType(cxtype.IntLong), 0, true
	case cxtoken.KwFloat:
		return b.ctrl.FloatType(cxtype.FloatFloat), 0, true
	case cxtoken.KwDouble:
		return b.ctrl.FloatType(cxtype.FloatDouble), 0, true
	case cxtoken.KwConst:
		return nil, cxtype.QualConst, false
	case cxtoken.KwVolatile:
		return nil, cxtype.QualVolatile, false
	case cxtoken.KwStatic:
		return nil, cxtype.QualStatic, false
	case cxtoken.KwExtern:
		return nil, cxtype.QualExtern, false
	case cxtoken.KwMutable:
		return nil, cxtype.QualMutable, false
	case cxtoken.KwTypedef:
		return nil, cxtype.QualTypedef, false
	case cxtoken.KwInline:
		return nil, cxtype.QualInline, false
	case cxtoken.KwVirtual:
		return nil, cxtype.QualVirtual, false
	case cxtoken.KwExplicit:
		return nil, cxtype.QualExplicit, false
	case cxtoken.KwFriend:
		return nil, cxtype.QualFriend, false
	case cxtoken.KwSigned:
		return nil, cxtype.QualSigned, false
	case cxtoken.KwUnsigned:
		return nil, cxtype.QualUnsigned, false
	case cxtoken.KwFinal:
		return nil, cxtype.QualFinal, false
	case cxtoken.KwOverride:
		return nil, cxtype.QualOverride, false
	default:
		return nil, 0, false
	}
}

func (b *Binder) bindTypeId(t *cxast.TypeId, scope *symbol.Scope) cxtype.FullySpecifiedType {
	if t == nil {
		return cxtype.FullySpecifiedType{Type: b.ctrl.UndefinedType(), Valid: true}
	}
	base := b.bindSpecifierList(t.TypeSpecifierList, scope)
	if t.Declarator != nil {
		base = b.applyDeclaratorShape(t.Declarator, base)
	}
	return base
}

func (b *Binder) bindClassSpecifier(n *cxast.ClassSpecifier, scope *symbol.Scope) *symbol.Class {
	sym := b.ctrl.NewClass()
	sym.SetSourceTokenIndex(n.FirstToken())
	sym.SetName(b.resolveName(n.Name, n.FirstToken()))
	sym.Key = classKeyFromToken(b.tu.TokenAt(n.ClassKeyToken).Kind)

	members := symbol.NewScope(sym, scope)
	sym.Members = members
	scope.Add(sym)
	n.Sym = sym

	for _, base := range n.BaseClauseList {
		if base == nil {
			continue
		}
		baseSym := b.ctrl.NewBaseClass()
		baseSym.SetSourceTokenIndex(base.FirstToken())
		baseSym.SetName(b.resolveName(base.Name, base.FirstToken()))
		baseSym.IsVirtual = base.IsVirtual
		baseSym.Access = accessSpecifierFromToken(b.tu, base.AccessSpecifierToken)
		sym.Bases = append(sym.Bases, baseSym)
		base.Sym = baseSym
	}

	for _, m := range n.MemberSpecifications {
		if decl, ok := m.(cxast.Declaration); ok {
			b.bindDeclaration(decl, members)
		}
	}
	return sym
}

// accessSpecifierFromToken reads the access keyword at tokenIndex, if any
// (a BaseSpecifier with no explicit access keyword carries a sentinel
// index the caller cannot distinguish from 0 without bounds-checking
// against the token array, so this defaults to AccessPublic when the index
// doesn't resolve to an access keyword).
func accessSpecifierFromToken(tu *translationunit.TranslationUnit, tokenIndex int) symbol.AccessSpecifier {
	if tokenIndex < 0 || tokenIndex >= tu.TokenCount() {
		return symbol.AccessPublic
	}
	switch tu.TokenAt(tokenIndex).Kind {
	case cxtoken.KwPrivate:
		return symbol.AccessPrivate
	case cxtoken.KwProtected:
		return symbol.AccessProtected
	default:
		return symbol.AccessPublic
	}
}

func classKeyFromToken(k cxtoken.Kind) symbol.ClassKey {
	switch k {
	case cxtoken.KwStruct:
		return symbol.ClassKeyStruct
	case cxtoken.KwUnion:
		return symbol.ClassKeyUnion
	default:
		return symbol.ClassKeyClass
	}
}

func (b *Binder) bindEnumSpecifier(n *cxast.EnumSpecifier, scope *symbol.Scope) *symbol.Enum {
	sym := b.ctrl.NewEnum()
	sym.SetSourceTokenIndex(n.FirstToken())
	sym.SetName(b.resolveName(n.Name, n.FirstToken()))
	sym.IsScoped = n.IsScoped

	members := symbol.NewScope(sym, scope)
	sym.Members = members
	scope.Add(sym)
	n.Sym = sym

	for _, e := range n.Enumerators {
		if e == nil {
			continue
		}
		enumerator := b.ctrl.NewEnumeratorDeclaration()
		enumerator.SetSourceTokenIndex(e.Identifier)
		enumerator.SetName(b.ctrl.SimpleName(b.identifierAt(e.Identifier)))
		enumerator.HasConstantValue = e.HasEqualToken
		members.Add(enumerator)
		e.Sym = enumerator

		// A scoped enum's enumerators are NOT injected into the enclosing
		// scope; an unscoped one's are, matching C++11 scoping rules.
		if !n.IsScoped {
			scope.Add(enumerator)
		}
	}
	return sym
}

// --- Statements ------------------------------------------------------------------

func (b *Binder) bindStatementsInto(stmts cxast.List[cxast.Statement], scope *symbol.Scope) {
	for _, s := range stmts {
		b.bindStatement(s, scope)
	}
}

func (b *Binder) bindStatement(s cxast.Statement, scope *symbol.Scope) {
	if s == nil || !b.enter() {
		return
	}
	defer b.leave()

	switch n := s.(type) {
	case *cxast.CompoundStatement:
		blockSym := b.ctrl.NewBlock()
		blockSym.SetSourceTokenIndex(n.FirstToken())
		blockScope := symbol.NewScope(blockSym, scope)
		blockSym.Members = blockScope
		n.Sym = blockSym
		b.bindStatementsInto(n.Statements, blockScope)
	case *cxast.DeclarationStatement:
		b.bindDeclaration(n.Declaration, scope)
	case *cxast.IfStatement:
		b.bindStatement(n.Statement, scope)
		b.bindStatement(n.ElseStatement, scope)
	case *cxast.WhileStatement:
		b.bindStatement(n.Statement, scope)
	case *cxast.DoStatement:
		b.bindStatement(n.Statement, scope)
	case *cxast.ForStatement:
		blockSym := b.ctrl.NewBlock()
		blockSym.SetSourceTokenIndex(n.FirstToken())
		loopScope := symbol.NewScope(blockSym, scope)
		blockSym.Members = loopScope
		n.Sym = blockSym
		b.bindStatement(n.InitStatement, loopScope)
		b.bindStatement(n.Statement, loopScope)
	case *cxast.RangeBasedForStatement:
		blockSym := b.ctrl.NewBlock()
		blockSym.SetSourceTokenIndex(n.FirstToken())
		loopScope := symbol.NewScope(blockSym, scope)
		blockSym.Members = loopScope
		n.Sym = blockSym
		if n.Declarator != nil {
			elemType := b.bindSpecifierList(n.TypeSpecifierList, loopScope)
			b.bindVariableDeclarator(n.Declarator, elemType, loopScope)
		}
		b.bindStatement(n.Statement, loopScope)
	case *cxast.ForeachStatement:
		if n.Declarator != nil {
			elemType := b.bindSpecifierList(n.TypeSpecifierList, scope)
			b.bindVariableDeclarator(n.Declarator, elemType, scope)
		}
		b.bindStatement(n.Statement, scope)
	case *cxast.SwitchStatement:
		b.bindStatement(n.Statement, scope)
	case *cxast.CaseStatement:
		b.bindStatement(n.Statement, scope)
	case *cxast.LabeledStatement:
		b.bindStatement(n.Statement, scope)
	case *cxast.TryBlockStatement:
		b.bindStatement(n.Statement, scope)
		for _, c := range n.CatchClauses {
			if c == nil {
				continue
			}
			catchScope := scope
			if c.ExceptionDeclaration != nil {
				blockSym := b.ctrl.NewBlock()
				blockSym.SetSourceTokenIndex(c.FirstToken())
				catchScope = symbol.NewScope(blockSym, scope)
				blockSym.Members = catchScope
				b.bindDeclaration(c.ExceptionDeclaration, catchScope)
			}
			b.bindStatement(c.Statement, catchScope)
		}
	case *cxast.ExpressionStatement, *cxast.BreakStatement, *cxast.ContinueStatement, *cxast.GotoStatement, *cxast.ReturnStatement:
		// Leaf statements: nothing to bind (spec section 1 excludes
		// expression type-checking from this core).
	}
}
