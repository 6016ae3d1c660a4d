package binder

import (
	"testing"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/control"
	"github.com/roberto-raggi/cplusplus-go/internal/cxast"
	"github.com/roberto-raggi/cplusplus-go/internal/cxlexer"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtype"
	"github.com/roberto-raggi/cplusplus-go/internal/symbol"
	"github.com/roberto-raggi/cplusplus-go/internal/translationunit"
)

// lex tokenizes src with the real lexer and appends every token to a fresh
// TranslationUnit, mirroring how the preprocessor feeds one (see
// internal/preprocessor/preprocessor_test.go's run helper). Tests below
// build their own small cxast trees over the resulting token indices, since
// no parser exists in this module to produce one (spec section 1 excludes
// the recursive-descent parser from this core).
func lex(t *testing.T, src string) *translationunit.TranslationUnit {
	t.Helper()
	tu := translationunit.New("test.cpp", src, nil)
	l := cxlexer.New(src, config.DefaultLexerFlags())
	for {
		tok := l.Next()
		tu.AppendToken(tok)
		if tok.Kind == cxtoken.EOF {
			return tu
		}
	}
}

func simpleName(tokenIndex int) *cxast.SimpleName {
	return &cxast.SimpleName{Identifier: tokenIndex}
}

func TestBindVariableDeclaration(t *testing.T) {
	tu := lex(t, "int x;")
	ctrl := control.New(nil)
	root := &cxast.Root{Declarations: cxast.List[cxast.Declaration]{
		&cxast.SimpleDeclaration{
			DeclSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 0}},
			DeclaratorList: cxast.List[*cxast.Declarator]{
				{CoreDeclarator: &cxast.DeclaratorId{Name: simpleName(1)}},
			},
		},
	}}

	scope := New(ctrl, tu).Bind(root)

	sym, ok := scope.Lookup("x")
	if !ok {
		t.Fatalf("expected x to be bound in the global scope")
	}
	decl, ok := sym.(*symbol.Declaration)
	if !ok {
		t.Fatalf("expected x to bind to a *symbol.Declaration, got %T", sym)
	}
	if decl.Type.String() != "int" {
		t.Fatalf("expected x's type to be int, got %q", decl.Type.String())
	}
}

func TestBindFunctionDefinitionWithParameterAndLocal(t *testing.T) {
	src := "int add(int a) { int b; }"
	tu := lex(t, src)
	ctrl := control.New(nil)

	// token layout: int(0) add(1) ((2) int(3) a(4) )(5) {(6) int(7) b(8) ;(9) }(10) EOF(11)
	paramDeclarator := &cxast.Declarator{CoreDeclarator: &cxast.DeclaratorId{Name: simpleName(4)}}
	fd := &cxast.FunctionDeclarator{
		ParameterDeclarations: cxast.List[*cxast.ParameterDeclaration]{
			{
				TypeSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 3}},
				Declarator:        paramDeclarator,
			},
		},
	}
	declarator := &cxast.Declarator{
		CoreDeclarator:     &cxast.DeclaratorId{Name: simpleName(1)},
		PostfixDeclarators: cxast.List[cxast.PostfixDeclarator]{fd},
	}
	body := &cxast.CompoundStatement{Statements: cxast.List[cxast.Statement]{
		&cxast.DeclarationStatement{Declaration: &cxast.SimpleDeclaration{
			DeclSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 7}},
			DeclaratorList: cxast.List[*cxast.Declarator]{
				{CoreDeclarator: &cxast.DeclaratorId{Name: simpleName(8)}},
			},
		}},
	}}
	root := &cxast.Root{Declarations: cxast.List[cxast.Declaration]{
		&cxast.FunctionDefinition{
			DeclSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 0}},
			Declarator:        declarator,
			FunctionBody:      body,
		},
	}}

	scope := New(ctrl, tu).Bind(root)

	sym, ok := scope.Lookup("add")
	if !ok {
		t.Fatalf("expected add to be bound in the global scope")
	}
	fn, ok := sym.(*symbol.Function)
	if !ok {
		t.Fatalf("expected add to bind to a *symbol.Function, got %T", sym)
	}
	if fn.FunctionScope == nil {
		t.Fatalf("expected a defined function to have a FunctionScope")
	}
	if _, ok := fn.FunctionScope.Lookup("a"); !ok {
		t.Fatalf("expected parameter a to be bound in the function scope")
	}
	if _, ok := fn.FunctionScope.Lookup("b"); !ok {
		t.Fatalf("expected local b to be bound into the function body scope")
	}
}

func TestBindNamespaceWithNestedDeclaration(t *testing.T) {
	src := "namespace ns { int x; }"
	tu := lex(t, src)
	ctrl := control.New(nil)

	// token layout: namespace(0) ns(1) {(2) int(3) x(4) ;(5) }(6) EOF(7)
	root := &cxast.Root{Declarations: cxast.List[cxast.Declaration]{
		&cxast.Namespace{
			Identifier:    1,
			HasIdentifier: true,
			LinkageBody: &cxast.LinkageBody{Declarations: cxast.List[cxast.Declaration]{
				&cxast.SimpleDeclaration{
					DeclSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 3}},
					DeclaratorList: cxast.List[*cxast.Declarator]{
						{CoreDeclarator: &cxast.DeclaratorId{Name: simpleName(4)}},
					},
				},
			}},
		},
	}}

	scope := New(ctrl, tu).Bind(root)

	sym, ok := scope.Lookup("ns")
	if !ok {
		t.Fatalf("expected ns to be bound in the global scope")
	}
	ns, ok := sym.(*symbol.Namespace)
	if !ok {
		t.Fatalf("expected ns to bind to a *symbol.Namespace, got %T", sym)
	}
	if _, ok := ns.Members.Lookup("x"); !ok {
		t.Fatalf("expected x to be bound inside namespace ns")
	}
}

func TestBindClassWithBaseAndMember(t *testing.T) {
	src := "class Derived : public Base { int field; };"
	tu := lex(t, src)
	ctrl := control.New(nil)

	// token layout: class(0) Derived(1) :(2) public(3) Base(4) {(5) int(6) field(7) ;(8) }(9) ;(10) EOF(11)
	spec := &cxast.ClassSpecifier{
		ClassKeyToken: 0,
		Name:          simpleName(1),
		BaseClauseList: cxast.List[*cxast.BaseSpecifier]{
			{AccessSpecifierToken: 3, Name: simpleName(4)},
		},
		MemberSpecifications: cxast.List[cxast.Node]{
			&cxast.SimpleDeclaration{
				DeclSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 6}},
				DeclaratorList: cxast.List[*cxast.Declarator]{
					{CoreDeclarator: &cxast.DeclaratorId{Name: simpleName(7)}},
				},
			},
		},
	}
	root := &cxast.Root{Declarations: cxast.List[cxast.Declaration]{
		&cxast.SimpleDeclaration{DeclSpecifierList: cxast.List[cxast.Specifier]{spec}},
	}}

	scope := New(ctrl, tu).Bind(root)

	sym, ok := scope.Lookup("Derived")
	if !ok {
		t.Fatalf("expected Derived to be bound in the global scope")
	}
	cls, ok := sym.(*symbol.Class)
	if !ok {
		t.Fatalf("expected Derived to bind to a *symbol.Class, got %T", sym)
	}
	if len(cls.Bases) != 1 {
		t.Fatalf("expected one base class, got %d", len(cls.Bases))
	}
	if cls.Bases[0].Access != symbol.AccessPublic {
		t.Fatalf("expected the base class's access to be public, got %v", cls.Bases[0].Access)
	}
	if _, ok := cls.Members.Lookup("field"); !ok {
		t.Fatalf("expected field to be bound inside Derived")
	}
}

func TestBindUnscopedEnumInjectsEnumeratorsIntoEnclosingScope(t *testing.T) {
	src := "enum Color { Red, Green };"
	tu := lex(t, src)
	ctrl := control.New(nil)

	// token layout: enum(0) Color(1) {(2) Red(3) ,(4) Green(5) }(6) ;(7) EOF(8)
	spec := &cxast.EnumSpecifier{
		Name: simpleName(1),
		Enumerators: cxast.List[*cxast.Enumerator]{
			{Identifier: 3},
			{Identifier: 5},
		},
	}
	root := &cxast.Root{Declarations: cxast.List[cxast.Declaration]{
		&cxast.SimpleDeclaration{DeclSpecifierList: cxast.List[cxast.Specifier]{spec}},
	}}

	scope := New(ctrl, tu).Bind(root)

	enumSym, ok := scope.Lookup("Color")
	if !ok {
		t.Fatalf("expected Color to be bound in the global scope")
	}
	en, ok := enumSym.(*symbol.Enum)
	if !ok {
		t.Fatalf("expected Color to bind to a *symbol.Enum, got %T", enumSym)
	}
	if _, ok := en.Members.Lookup("Red"); !ok {
		t.Fatalf("expected Red to be bound inside the enum's own scope")
	}
	if _, ok := scope.Lookup("Red"); !ok {
		t.Fatalf("expected an unscoped enum's enumerators to also inject into the enclosing scope")
	}
}

func TestBindTemplateDeclarationIsTransparentToEnclosingScope(t *testing.T) {
	src := "template <typename T> int value;"
	tu := lex(t, src)
	ctrl := control.New(nil)

	// token layout: template(0) <(1) typename(2) T(3) >(4) int(5) value(6) ;(7) EOF(8)
	root := &cxast.Root{Declarations: cxast.List[cxast.Declaration]{
		&cxast.TemplateDeclaration{
			TemplateParameters: cxast.List[cxast.Declaration]{
				&cxast.TypenameTypeParameter{Name: simpleName(3)},
			},
			Declaration: &cxast.SimpleDeclaration{
				DeclSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 5}},
				DeclaratorList: cxast.List[*cxast.Declarator]{
					{CoreDeclarator: &cxast.DeclaratorId{Name: simpleName(6)}},
				},
			},
		},
	}}

	scope := New(ctrl, tu).Bind(root)

	// A template is transparent to lookup outside itself: the wrapped
	// declaration's name resolves directly in the enclosing scope.
	sym, ok := scope.Lookup("value")
	if !ok {
		t.Fatalf("expected value to be bound in the global scope despite the template wrapper")
	}
	if _, ok := sym.(*symbol.Declaration); !ok {
		t.Fatalf("expected value to bind to a *symbol.Declaration, got %T", sym)
	}
}

func TestBindDepthGuardDoesNotPanicOnDeeplyNestedStatements(t *testing.T) {
	tu := lex(t, "void f() { }")
	ctrl := control.New(nil)

	var stmt cxast.Statement = &cxast.CompoundStatement{}
	for i := 0; i < maxBindDepth+10; i++ {
		stmt = &cxast.CompoundStatement{Statements: cxast.List[cxast.Statement]{stmt}}
	}
	body := stmt.(*cxast.CompoundStatement)

	root := &cxast.Root{Declarations: cxast.List[cxast.Declaration]{
		&cxast.FunctionDefinition{
			DeclSpecifierList: cxast.List[cxast.Specifier]{&cxast.SimpleSpecifier{SpecifierToken: 0}},
			Declarator: &cxast.Declarator{
				CoreDeclarator:     &cxast.DeclaratorId{Name: simpleName(1)},
				PostfixDeclarators: cxast.List[cxast.PostfixDeclarator]{&cxast.FunctionDeclarator{}},
			},
			FunctionBody: body,
		},
	}}

	// Must not panic even though the nesting exceeds maxBindDepth.
	New(ctrl, tu).Bind(root)
}
