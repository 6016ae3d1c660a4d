package translationunit

import (
	"testing"

	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
	"github.com/roberto-raggi/cplusplus-go/internal/logger"
)

func appendPunct(tu *TranslationUnit, kind cxtoken.Kind, byteOffset int) int {
	return tu.AppendToken(cxtoken.Token{Kind: kind, ByteOffset: uint32(byteOffset), ByteLength: 1})
}

func TestGetPositionFindsLineAndColumn(t *testing.T) {
	src := "int x;\nint y;\n"
	tu := New("test.cpp", src, nil)
	idx := appendPunct(tu, cxtoken.KwInt, 7) // start of line 2
	pos := tu.GetPosition(idx)
	if pos.Line != 2 || pos.Column != 0 {
		t.Fatalf("expected line 2 column 0, got line %d column %d", pos.Line, pos.Column)
	}
}

func TestGetPositionHonorsActivePPLine(t *testing.T) {
	tu := New("test.cpp", "int x;\n", nil)
	tu.PushPreprocessorLine("header.h", 100)
	idx := appendPunct(tu, cxtoken.KwInt, 0)
	pos := tu.GetPosition(idx)
	if pos.FileName != "header.h" || pos.Line != 100 {
		t.Fatalf("expected #line override to take effect, got %+v", pos)
	}
}

func TestComputeBraceMatchesFindsNestedPairs(t *testing.T) {
	tu := New("test.cpp", "{()}", nil)
	lb := appendPunct(tu, cxtoken.LBrace, 0)
	lp := appendPunct(tu, cxtoken.LParen, 1)
	rp := appendPunct(tu, cxtoken.RParen, 2)
	rb := appendPunct(tu, cxtoken.RBrace, 3)
	tu.ComputeBraceMatches()

	if got, ok := tu.MatchingBrace(lb); !ok || got != rb {
		t.Fatalf("expected { to match } at %d, got %d (ok=%v)", rb, got, ok)
	}
	if got, ok := tu.MatchingBrace(lp); !ok || got != rp {
		t.Fatalf("expected ( to match ) at %d, got %d (ok=%v)", rp, got, ok)
	}
}

func TestSplitGreaterGreaterProducesTwoGreaterTokens(t *testing.T) {
	tu := New("test.cpp", "Foo<Bar<Baz>>", nil)
	idx := appendPunct(tu, cxtoken.GreaterGreater, 11)
	if !tu.SplitGreaterGreater(idx) {
		t.Fatalf("expected SplitGreaterGreater to succeed on a >> token")
	}
	if tu.TokenCount() != 2 {
		t.Fatalf("expected the single >> token to become exactly 2 tokens, got %d", tu.TokenCount())
	}
	if tu.TokenAt(0).Kind != cxtoken.Greater || tu.TokenAt(1).Kind != cxtoken.Greater {
		t.Fatalf("expected both halves to be Greater tokens")
	}
}

func TestSplitGreaterGreaterRejectsNonMatchingToken(t *testing.T) {
	tu := New("test.cpp", "x", nil)
	idx := appendPunct(tu, cxtoken.Identifier, 0)
	if tu.SplitGreaterGreater(idx) {
		t.Fatalf("expected SplitGreaterGreater to reject a non->> token")
	}
}

func TestBlockErrorsSuppressesReporting(t *testing.T) {
	client := logger.NewDeferClient()
	tu := New("test.cpp", "x", client)
	idx := appendPunct(tu, cxtoken.Identifier, 0)
	prev := tu.BlockErrors(true)
	if prev {
		t.Fatalf("expected initial blockErrors to be false")
	}
	tu.Error(idx, "should not be delivered")
	if len(client.Diagnostics()) != 0 {
		t.Fatalf("expected BlockErrors(true) to suppress the diagnostic")
	}
}
