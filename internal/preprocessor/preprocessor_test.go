package preprocessor

import (
	"context"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
	"github.com/roberto-raggi/cplusplus-go/internal/translationunit"
)

func run(t *testing.T, src string, p *Preprocessor) *translationunit.TranslationUnit {
	t.Helper()
	tu := translationunit.New("test.cpp", src, nil)
	p.Process(tu, "test.cpp", src)
	return tu
}

func kindsOf(tu *translationunit.TranslationUnit) []cxtoken.Kind {
	out := make([]cxtoken.Kind, tu.TokenCount())
	for i := range out {
		out[i] = tu.TokenAt(i).Kind
	}
	return out
}

func newTestPreprocessor() *Preprocessor {
	return New(config.DefaultPreprocessorOptions(), config.DefaultLexerFlags(), nil, nil)
}

func TestObjectLikeMacroExpansion(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#define FOO 42\nint x = FOO;\n", p)
	ks := kindsOf(tu)
	want := []cxtoken.Kind{cxtoken.KwInt, cxtoken.Identifier, cxtoken.Equal, cxtoken.NumericLiteral, cxtoken.Semicolon}
	if len(ks) != len(want) {
		t.Fatalf("got %v, want %v", ks, want)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, ks[i], want[i])
		}
	}
}

func TestFunctionLikeMacroExpansion(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#define ADD(a, b) a + b\nint x = ADD(1, 2);\n", p)
	ks := kindsOf(tu)
	want := []cxtoken.Kind{
		cxtoken.KwInt, cxtoken.Identifier, cxtoken.Equal,
		cxtoken.NumericLiteral, cxtoken.Plus, cxtoken.NumericLiteral, cxtoken.Semicolon,
	}
	if len(ks) != len(want) {
		t.Fatalf("got %v, want %v", ks, want)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, ks[i], want[i])
		}
	}
}

func TestIfdefSkipsInactiveBranch(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#ifdef NOPE\nint bad;\n#else\nint good;\n#endif\n", p)
	ks := kindsOf(tu)
	if len(ks) != 3 || ks[0] != cxtoken.KwInt || ks[1] != cxtoken.Identifier || ks[2] != cxtoken.Semicolon {
		t.Fatalf("expected only the #else branch to survive, got %v", ks)
	}
}

func TestIfExpressionArithmetic(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#if (1 + 1) == 2\nint yes;\n#endif\n", p)
	ks := kindsOf(tu)
	if len(ks) != 3 || ks[1] != cxtoken.Identifier {
		t.Fatalf("expected the #if branch to be taken, got %v", ks)
	}
}

func TestDefinedOperator(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#define FOO\n#if defined(FOO)\nint yes;\n#endif\n", p)
	ks := kindsOf(tu)
	if len(ks) != 3 {
		t.Fatalf("expected defined(FOO) to be true, got %v", ks)
	}
}

func TestUndef(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#define FOO 1\n#undef FOO\nint FOO;\n", p)
	ks := kindsOf(tu)
	if len(ks) != 3 || ks[1] != cxtoken.Identifier {
		t.Fatalf("expected FOO to revert to a plain identifier after #undef, got %v", ks)
	}
}

func TestIncludeCallback(t *testing.T) {
	sourceNeeded := func(fileName string, kind IncludeKind, fromFile string) (string, string, bool) {
		if fileName == "header.h" {
			return "int fromHeader;\n", "header.h", true
		}
		return "", "", false
	}
	p := New(config.DefaultPreprocessorOptions(), config.DefaultLexerFlags(), nil, sourceNeeded)
	tu := run(t, "#include \"header.h\"\nint main;\n", p)
	ks := kindsOf(tu)
	want := []cxtoken.Kind{cxtoken.KwInt, cxtoken.Identifier, cxtoken.Semicolon, cxtoken.KwInt, cxtoken.Identifier, cxtoken.Semicolon}
	if len(ks) != len(want) {
		t.Fatalf("got %v, want %v", ks, want)
	}
}

func TestPragmaOnceSkipsSecondInclude(t *testing.T) {
	calls := 0
	sourceNeeded := func(fileName string, kind IncludeKind, fromFile string) (string, string, bool) {
		calls++
		return "#pragma once\nint fromHeader;\n", "header.h", true
	}
	p := New(config.DefaultPreprocessorOptions(), config.DefaultLexerFlags(), nil, sourceNeeded)
	tu := run(t, "#include \"header.h\"\n#include \"header.h\"\nint main;\n", p)
	ks := kindsOf(tu)
	want := []cxtoken.Kind{cxtoken.KwInt, cxtoken.Identifier, cxtoken.Semicolon, cxtoken.KwInt, cxtoken.Identifier, cxtoken.Semicolon}
	if len(ks) != len(want) {
		t.Fatalf("expected the header's contents to appear only once, got %v", ks)
	}
}

func TestStringizeOperator(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#define STR(x) #x\nchar *s = STR(hello);\n", p)
	last := tu.TokenAt(tu.TokenCount() - 2)
	if last.Kind != cxtoken.StringLiteral {
		t.Fatalf("expected # to produce a string literal, got %v", last.Kind)
	}
}

func TestTokenPasteOperator(t *testing.T) {
	p := newTestPreprocessor()
	tu := run(t, "#define CAT(a, b) a ## b\nint CAT(fo, o);\n", p)
	ks := kindsOf(tu)
	if len(ks) != 3 || ks[1] != cxtoken.Identifier {
		t.Fatalf("expected fo ## o to paste into a single identifier, got %v", ks)
	}
}

// assertRespells fails t with a unified diff (github.com/pmezard/go-difflib)
// when respelling src's preprocessed token stream does not produce want,
// matching spec section 8's "re-spelling a token stream... reproduces the
// preprocessed source" contract.
func assertRespells(t *testing.T, src, want string) {
	t.Helper()
	p := newTestPreprocessor()
	tu := run(t, src, p)
	got := tu.Respell()
	if got == want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		t.Fatalf("respelling mismatch, and diffing it failed: %v", err)
	}
	t.Fatalf("respelling mismatch:\n%s", diff)
}

func TestRespellReproducesMacroExpandedTokenStream(t *testing.T) {
	assertRespells(t, "#define ADD(a,b) a+b\nADD(1,2);\n", "1+2;")
}

func TestRespellReproducesUnexpandedTokenStream(t *testing.T) {
	assertRespells(t, "int x = 1;\n", "int x = 1;")
}

func TestChainedMacroExpansionTracksDepth(t *testing.T) {
	p := newTestPreprocessor()
	tu := translationunit.New("test.cpp", "", nil)
	src := "#define A 1\n#define B A\n#define C B\nint x = C;\n"
	p.ProcessContext(context.Background(), tu, "test.cpp", src)
	if p.maxDepthSeen < 2 {
		t.Fatalf("expected C -> B -> A to recurse at least 2 levels deep, got %d", p.maxDepthSeen)
	}
}
