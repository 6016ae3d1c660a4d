package literal

import "testing"

func TestPoolInsertIsIdempotent(t *testing.T) {
	p := newPool[Identifier]()
	a := p.insert("foo", func(s string) *Identifier {
		return &Identifier{Literal{kind: KindIdentifier, chars: s, hash: fnv1a64(s)}}
	})
	b := p.insert("foo", func(s string) *Identifier {
		t.Fatalf("make_ must not be called again for an already-interned spelling")
		return nil
	})
	if a != b {
		t.Fatalf("expected the same *Identifier pointer for repeated inserts of %q", "foo")
	}
	if a.Chars() != "foo" || a.Kind() != KindIdentifier {
		t.Fatalf("unexpected identifier contents: %+v", a)
	}
}

func TestPoolFindMissing(t *testing.T) {
	p := newPool[StringLiteral]()
	if _, ok := p.find("missing"); ok {
		t.Fatalf("expected find to report a miss on an empty pool")
	}
}

func TestPoolDistinctSpellingsGetDistinctPointers(t *testing.T) {
	p := newPool[NumericLiteral]()
	make_ := func(s string) *NumericLiteral {
		return &NumericLiteral{Literal{kind: KindNumericLiteral, chars: s, hash: fnv1a64(s)}}
	}
	a := p.insert("1", make_)
	b := p.insert("2", make_)
	if a == b {
		t.Fatalf("expected distinct spellings to intern to distinct pointers")
	}
	if len(p.all()) != 2 {
		t.Fatalf("expected pool.all() to report both entries, got %d", len(p.all()))
	}
}

func TestFnv1a64IsDeterministic(t *testing.T) {
	if fnv1a64("abc") != fnv1a64("abc") {
		t.Fatalf("expected fnv1a64 to be a pure function of its input")
	}
	if fnv1a64("abc") == fnv1a64("abd") {
		t.Fatalf("expected distinct inputs to (almost always) hash differently")
	}
}

func TestInternalErrorMessage(t *testing.T) {
	err := internalErrorf("bad handle %d", 7)
	if err.Error() != "bad handle 7" {
		t.Fatalf("unexpected InternalError message: %q", err.Error())
	}
}
