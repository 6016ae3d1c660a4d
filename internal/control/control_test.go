package control

import (
	"testing"

	"github.com/roberto-raggi/cplusplus-go/internal/cxtype"
)

func TestIdentifierInterningIsPointerStable(t *testing.T) {
	c := New(nil)
	a := c.Identifier("foo")
	b := c.Identifier("foo")
	if a != b {
		t.Fatalf("expected repeated interning of %q to return the same pointer", "foo")
	}
	if _, ok := c.FindIdentifier("bar"); ok {
		t.Fatalf("expected FindIdentifier to report a miss for an un-interned spelling")
	}
	if _, ok := c.FindIdentifier("foo"); !ok {
		t.Fatalf("expected FindIdentifier to find a previously interned spelling")
	}
}

func TestIntegerTypeIsCanonicalPerKind(t *testing.T) {
	c := New(nil)
	a := c.IntegerType(cxtype.IntInt)
	b := c.IntegerType(cxtype.IntInt)
	if a != b {
		t.Fatalf("expected IntegerType(IntInt) to be canonical")
	}
	if c.IntegerType(cxtype.IntLong) == a {
		t.Fatalf("expected distinct integer kinds to produce distinct types")
	}
}

func TestPointerTypeCanonicalizesOnElementAndQualifiers(t *testing.T) {
	c := New(nil)
	intType := cxtype.FullySpecifiedType{Type: c.IntegerType(cxtype.IntInt), Valid: true}
	constInt := cxtype.FullySpecifiedType{Type: c.IntegerType(cxtype.IntInt), Qualifiers: cxtype.QualConst, Valid: true}

	p1 := c.PointerType(intType)
	p2 := c.PointerType(intType)
	p3 := c.PointerType(constInt)

	if p1 != p2 {
		t.Fatalf("expected two pointers to the same element+qualifiers to be canonical")
	}
	if p1 == p3 {
		t.Fatalf("expected `int*` and `const int*` to be distinct pointer types")
	}
}

func TestNewSymbolsAreTrackedAndNeverCanonicalized(t *testing.T) {
	c := New(nil)
	d1 := c.NewDeclaration()
	d2 := c.NewDeclaration()
	if d1 == d2 {
		t.Fatalf("expected each NewDeclaration() call to allocate a distinct Symbol")
	}
	if !c.HasSymbol(d1) || !c.HasSymbol(d2) {
		t.Fatalf("expected both declarations to be tracked by their Control")
	}
	if c.SymbolCount() != 2 {
		t.Fatalf("expected SymbolCount() == 2, got %d", c.SymbolCount())
	}
}

func TestDiscardClientUsedWhenNoDiagnosticsGiven(t *testing.T) {
	c := New(nil)
	if c.Diagnostics() == nil {
		t.Fatalf("expected a non-nil default diagnostics client")
	}
}
