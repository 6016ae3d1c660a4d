package symbol

import (
	"testing"

	"github.com/roberto-raggi/cplusplus-go/internal/cxname"
	"github.com/roberto-raggi/cplusplus-go/internal/literal"
)

func nameOf(s string) cxname.Name {
	return &cxname.Simple{Id: &literal.Identifier{Literal: literal.Literal{}}}
}

func TestScopeAddAndLookup(t *testing.T) {
	ns := &Namespace{}
	scope := NewScope(ns, nil)

	decl := &Declaration{}
	decl.name = nameOf("x")
	decl.tokenIndex = 3
	scope.Add(decl)

	if scope.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", scope.Len())
	}
	got, ok := scope.Lookup("")
	if !ok || got != decl {
		t.Fatalf("expected Lookup to find the declaration just added")
	}
	if decl.Scope() != scope {
		t.Fatalf("expected Add to stamp the symbol's enclosing scope")
	}
}

func TestScopeLookupAllReturnsEveryRedeclaration(t *testing.T) {
	scope := NewScope(nil, nil)
	a := &Declaration{}
	b := &Declaration{}
	a.name = nameOf("x")
	b.name = nameOf("x")
	scope.Add(a)
	scope.Add(b)

	all := scope.LookupAll("")
	if len(all) != 2 {
		t.Fatalf("expected both redeclarations to survive Add, got %d", len(all))
	}
}

func TestScopeLookupMissReportsFalse(t *testing.T) {
	scope := NewScope(nil, nil)
	if _, ok := scope.Lookup("missing"); ok {
		t.Fatalf("expected Lookup to report a miss on an empty scope")
	}
}

func TestScopeParentLinkage(t *testing.T) {
	parent := NewScope(nil, nil)
	child := NewScope(nil, parent)
	if child.Parent() != parent {
		t.Fatalf("expected child.Parent() to return the scope passed to NewScope")
	}
}
