package cxlexer

import (
	"testing"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
)

func scanAll(t *testing.T, src string, flags config.LexerFlags) []cxtoken.Token {
	t.Helper()
	l := New(src, flags)
	var toks []cxtoken.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == cxtoken.EOF {
			return toks
		}
	}
}

func kinds(toks []cxtoken.Token) []cxtoken.Kind {
	out := make([]cxtoken.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScansKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "int x = 0;", config.DefaultLexerFlags())
	ks := kinds(toks)
	want := []cxtoken.Kind{cxtoken.KwInt, cxtoken.Identifier, cxtoken.Equal, cxtoken.NumericLiteral, cxtoken.Semicolon, cxtoken.EOF}
	if len(ks) != len(want) {
		t.Fatalf("got %v, want %v", ks, want)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, ks[i], want[i])
		}
	}
}

func TestMaximalMunchShiftOperators(t *testing.T) {
	toks := scanAll(t, "a >>= b", config.DefaultLexerFlags())
	if toks[1].Kind != cxtoken.GreaterGreaterEqual {
		t.Fatalf("expected >>= to scan as one token, got %v", toks[1].Kind)
	}
}

func TestQtKeywordsRequireDialectFlag(t *testing.T) {
	off := scanAll(t, "signals", config.DefaultLexerFlags())
	if off[0].Kind != cxtoken.Identifier {
		t.Fatalf("expected 'signals' to be a plain identifier without QtMocRunEnabled, got %v", off[0].Kind)
	}

	flags := config.DefaultLexerFlags()
	flags.QtMocRunEnabled = true
	on := scanAll(t, "signals", flags)
	if on[0].Kind != cxtoken.KwSignals {
		t.Fatalf("expected 'signals' to classify as KwSignals with QtMocRunEnabled, got %v", on[0].Kind)
	}
}

func TestCxx11KeywordsRequireDialectFlag(t *testing.T) {
	flags := config.LexerFlags{ScanKeywords: true}
	toks := scanAll(t, "nullptr", flags)
	if toks[0].Kind != cxtoken.Identifier {
		t.Fatalf("expected 'nullptr' to be a plain identifier without Cxx0xEnabled, got %v", toks[0].Kind)
	}
}

func TestStringLiteralPrefixes(t *testing.T) {
	toks := scanAll(t, `u8"hi" L"hi" u"hi" U"hi"`, config.DefaultLexerFlags())
	want := []cxtoken.Kind{cxtoken.Utf8StringLiteral, cxtoken.WideStringLiteral, cxtoken.Utf16StringLiteral, cxtoken.Utf32StringLiteral}
	for i, w := range want {
		if toks[i].Kind != w {
			t.Fatalf("literal %d: got %v want %v", i, toks[i].Kind, w)
		}
	}
}

func TestRawStringLiteralIsDelimiterBalanced(t *testing.T) {
	toks := scanAll(t, `R"(a)b)"`, config.DefaultLexerFlags())
	if toks[0].Kind != cxtoken.RawStringLiteral {
		t.Fatalf("expected a raw string literal, got %v", toks[0].Kind)
	}
	if int(toks[0].ByteLength) != len(`R"(a)b)"`) {
		t.Fatalf("expected the raw string to consume through its matching )\" , got length %d", toks[0].ByteLength)
	}
}

func TestLineContinuationSplicing(t *testing.T) {
	toks := scanAll(t, "int x\\\n= 1;", config.DefaultLexerFlags())
	ks := kinds(toks)
	want := []cxtoken.Kind{cxtoken.KwInt, cxtoken.Identifier, cxtoken.Equal, cxtoken.NumericLiteral, cxtoken.Semicolon, cxtoken.EOF}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("token %d: got %v want %v (spliced line continuation should not break scanning)", i, ks[i], want[i])
		}
	}
}

func TestLineCommentIsSkippedByDefault(t *testing.T) {
	toks := scanAll(t, "int x; // comment\nint y;", config.DefaultLexerFlags())
	for _, tok := range toks {
		if tok.Kind == cxtoken.CppComment {
			t.Fatalf("expected comments to be skipped when ScanCommentTokens is false")
		}
	}
}
