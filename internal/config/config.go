// Package config holds the dialect feature flags and preprocessor options
// from spec section 6 ("Configuration"), passed by value into each pipeline
// stage rather than threaded through global state.
//
// Grounded on the teacher's internal/config (a plain options struct handed
// to each bundler stage); rebuilt from scratch for this domain since the
// teacher's file bundled hundreds of JS/CSS-bundler options with no analog
// here.
package config

// LexerFlags gates the dialect-specific keyword/token recognition spec
// section 4.3 describes. Every flag defaults to false, so a zero-value
// LexerFlags also has ScanKeywords off and classifies no keywords at all;
// DefaultLexerFlags is the usual starting point.
type LexerFlags struct {
	// QtMocRunEnabled recognizes Q_OBJECT, signals, slots, Q_SIGNAL, Q_SLOT,
	// Q_INVOKABLE, Q_PROPERTY, Q_ENUMS, Q_FLAGS, Q_D, Q_Q, emit, foreach as
	// keywords instead of plain identifiers.
	QtMocRunEnabled bool

	// Cxx0xEnabled recognizes the C++11 keyword set (alignas, alignof,
	// decltype, nullptr, static_assert, constexpr, noexcept, char16_t,
	// char32_t, thread_local) plus override and final, which are then lexed
	// as keywords wherever they appear. `auto` is a keyword either way.
	Cxx0xEnabled bool

	// ObjCEnabled recognizes the Objective-C @-keyword family and message
	// expression syntax.
	ObjCEnabled bool

	// ScanCommentTokens, when true, emits Comment/CppComment/DoxyComment/
	// CppDoxyComment tokens into the main stream; when false the lexer
	// discards comments.
	ScanCommentTokens bool

	// ScanKeywords, when false, classifies every identifier-shaped token as
	// Identifier regardless of spelling -- used by tools that only need raw
	// tokenization (spec section 6: "a caller that only wants raw tokens can
	// disable keyword classification entirely").
	ScanKeywords bool

	// ScanAngleStringLiteralTokens is not read by internal/cxlexer, which
	// never produces AngleStringLiteral tokens; the preprocessor takes
	// `#include <...>` targets from the directive text itself.
	ScanAngleStringLiteralTokens bool
}

// DefaultLexerFlags matches a typical project build: C++11 enabled, Qt MOC
// and Objective-C off, keywords scanned normally.
func DefaultLexerFlags() LexerFlags {
	return LexerFlags{
		Cxx0xEnabled: true,
		ScanKeywords: true,
	}
}

// PreprocessorOptions configures one Preprocessor instance (spec section
// 4.2).
type PreprocessorOptions struct {
	// PredefinedMacros are registered before the first #include is
	// processed, as if by a command-line `-D NAME=VALUE`.
	PredefinedMacros map[string]string

	// IncludeSearchRoots are searched, in order, for `#include "..."` and
	// `#include <...>` targets not resolved relative to the including file.
	// Entries may be doublestar glob patterns (SPEC_FULL.md B); the caller
	// wiring source_needed is responsible for expanding them.
	IncludeSearchRoots []string

	// MaxConditionalNestingDepth caps #if/#ifdef/#ifndef nesting, matching
	// original_source's rpp engine's MAX_LEVEL=512 (spec section 4.2's
	// "iflevel stack has a bounded depth; exceeding it is a diagnostic, not
	// a crash").
	MaxConditionalNestingDepth int

	// MaxMacroExpansionDepth caps recursive macro expansion/rescan (spec
	// section 4.2's "hiding set prevents direct self-recursion, but mutually
	// recursive macros still need a depth cap as a backstop").
	MaxMacroExpansionDepth int
}

const (
	DefaultMaxConditionalNestingDepth = 512
	DefaultMaxMacroExpansionDepth     = 2048
)

// DefaultPreprocessorOptions returns conservative defaults matching
// original_source's rpp engine constants.
func DefaultPreprocessorOptions() PreprocessorOptions {
	return PreprocessorOptions{
		PredefinedMacros:           make(map[string]string),
		MaxConditionalNestingDepth: DefaultMaxConditionalNestingDepth,
		MaxMacroExpansionDepth:     DefaultMaxMacroExpansionDepth,
	}
}
