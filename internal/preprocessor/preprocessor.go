// Package preprocessor implements the streaming preprocessor from spec
// section 4.2: macro expansion, conditional compilation, and file
// inclusion via a source_needed callback, driven token-by-token off an
// internal/cxlexer.Lexer and appending results to an
// internal/translationunit.TranslationUnit.
//
// Grounded on original_source/tests/manual/cppmodelmanager/rpp/pp-engine.h
// (directive dispatch, MAX_LEVEL iflevel cap, expression-grammar precedence
// ladder), pp-macro-expander.{h,cpp} (argument prescan + rescan-hide sets),
// pp-scanner.{h,cpp} (balanced-paren actual-argument scanning), and
// preprocessor.h (the sourceNeeded callback boundary).
package preprocessor

import (
	"context"
	"strconv"
	"strings"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/cxlexer"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
	"github.com/roberto-raggi/cplusplus-go/internal/logger"
	"github.com/roberto-raggi/cplusplus-go/internal/telemetry"
	"github.com/roberto-raggi/cplusplus-go/internal/translationunit"
)

// IncludeKind distinguishes `#include "..."` from `#include <...>` (spec
// section 4.2: "the two forms differ only in where the host looks first").
type IncludeKind uint8

const (
	IncludeQuoted IncludeKind = iota
	IncludeAngled
)

// SourceNeededFunc is the include callback (spec section 4.2,
// "source_needed(fileName, kind, fromFile) -> (contents, resolvedName, ok)").
// The preprocessor never touches a filesystem itself; resolving `fileName`
// against IncludeSearchRoots and reading the file is entirely the
// callback's job -- this mirrors original_source's preprocessor.h boundary
// exactly. The preprocessor skips a resolved file it has already seen
// `#pragma once` in.
type SourceNeededFunc func(fileName string, kind IncludeKind, fromFile string) (contents, resolvedName string, ok bool)

type macroKind uint8

const (
	macroObjectLike macroKind = iota
	macroFunctionLike
)

type macro struct {
	name       string
	kind       macroKind
	parameters []string
	variadic   bool
	body       []rawToken
	definedAt  string
}

// rawToken is a token moving through macro expansion: spelling, trivia
// flags, and enough position information that emit can hand
// TranslationUnit a real ByteOffset/Flags instead of the zero value --
// stringize (`#param`) also needs spaceBefore to reproduce the argument's
// original spacing.
//
// byteOffset is a position in SOME source buffer, not necessarily the one
// a diagnostic would want: a token scanned directly off a source line
// carries that line's real file offset, but a token substituted from a
// macro body carries the body's definition-site offset (spec section
// 4.2's "a macro body token keeps the spelling and position it had at the
// point of definition"). expanded/invocationOffset exist precisely to let
// GetPosition recover the invocation site for diagnostics without
// disturbing byteOffset, which Respell still needs to slice the right
// text out of Source().
type rawToken struct {
	kind          cxtoken.Kind
	text          string
	spaceBefore   bool
	newlineBefore bool
	generated     bool // synthesized by stringize/paste/variadic-join; spells nothing from any single source span

	byteOffset uint32

	expanded         bool // came from substituting a macro body
	invocationOffset uint32
}

// Preprocessor drives one file's macro expansion and conditional
// compilation, writing expanded tokens into a TranslationUnit.
type Preprocessor struct {
	opts        config.PreprocessorOptions
	lexerFlags  config.LexerFlags
	diagnostics logger.Client
	sourceNeeded SourceNeededFunc

	macros map[string]*macro
	hideSets map[string]map[string]bool // unused; hiding is passed through expandTokens' hiding parameter

	ifStack []ifFrame
	seenHeaderGuard map[string]bool // resolved file name -> true once #pragma once is seen in it

	maxDepthSeen int // deepest expandTokens recursion observed since the last Process call
}

type ifFrame struct {
	taking       bool // is the CURRENT branch active
	everTaken    bool // has any branch in this if/elif chain been taken yet
	parentActive bool // was the enclosing context active when we entered this frame
}

func New(opts config.PreprocessorOptions, lexerFlags config.LexerFlags, diagnostics logger.Client, sourceNeeded SourceNeededFunc) *Preprocessor {
	if diagnostics == nil {
		diagnostics = logger.DiscardClient{}
	}
	p := &Preprocessor{
		opts:            opts,
		lexerFlags:      lexerFlags,
		diagnostics:     diagnostics,
		sourceNeeded:    sourceNeeded,
		macros:          make(map[string]*macro),
		seenHeaderGuard: make(map[string]bool),
	}
	for name, value := range opts.PredefinedMacros {
		p.macros[name] = &macro{name: name, kind: macroObjectLike, body: tokenizeMacroBody(value, 0)}
	}
	return p
}

// tokenizeMacroBody lexes a macro's replacement text into rawTokens,
// remapping each one's byteOffset through baseOffset so the result points
// at the definition site in the real source (0 for a `-D NAME=VALUE`
// predefined macro, which has no source location at all).
func tokenizeMacroBody(text string, baseOffset int) []rawToken {
	l := cxlexer.New(text, config.LexerFlags{ScanKeywords: false})
	var out []rawToken
	prevEnd := 0
	for {
		t := l.Next()
		if t.Kind == cxtoken.EOF {
			return out
		}
		spelling := text[t.ByteOffset : t.ByteOffset+t.ByteLength]
		out = append(out, rawToken{
			kind:        t.Kind,
			text:        spelling,
			spaceBefore: int(t.ByteOffset) > prevEnd,
			byteOffset:  uint32(baseOffset) + t.ByteOffset,
		})
		prevEnd = int(t.ByteOffset + t.ByteLength)
	}
}

func (p *Preprocessor) active() bool {
	if len(p.ifStack) == 0 {
		return true
	}
	return p.ifStack[len(p.ifStack)-1].taking
}

func (p *Preprocessor) parentActive() bool {
	for i := len(p.ifStack) - 1; i >= 0; i-- {
		if !p.ifStack[i].parentActive {
			return false
		}
	}
	return true
}

// Process runs the whole preprocessor+lexer pipeline over src, appending
// every surviving token to tu. fileName is used for diagnostics and
// #include resolution; it need not match tu.FileName() during a nested
// #include (tu always represents the OUTERMOST translation unit; nested
// files contribute tokens but not a new TranslationUnit, per spec section
// 4: "there is exactly one TranslationUnit per compilation, regardless of
// how many files #include pulls in").
func (p *Preprocessor) Process(tu *translationunit.TranslationUnit, fileName, src string) {
	p.ProcessContext(context.Background(), tu, fileName, src)
}

// ProcessContext is Process with an explicit context, used to attribute the
// macro-expansion-depth metric below to the caller's trace (internal/pipeline
// calls this one; Process is the context-free convenience wrapper tests use).
func (p *Preprocessor) ProcessContext(ctx context.Context, tu *translationunit.TranslationUnit, fileName, src string) {
	p.maxDepthSeen = 0
	p.processFile(tu, fileName, src, 0)
	if len(p.ifStack) > 0 {
		tu.Fatal(tu.TokenCount()-1, "unterminated #if block: missing #endif")
	}
	if p.maxDepthSeen > 0 {
		telemetry.RecordMacroExpansionDepth(ctx, p.maxDepthSeen)
	}
}

func (p *Preprocessor) processFile(tu *translationunit.TranslationUnit, fileName, src string, includeDepth int) {
	lines := splitLinesKeepingOffsets(src)
	for _, ln := range lines {
		trimmed := strings.TrimLeft(ln.text, " \t")
		trimOffset := ln.start + (len(ln.text) - len(trimmed))
		if strings.HasPrefix(trimmed, "#") {
			p.handleDirective(tu, fileName, trimmed[1:], trimOffset+1, includeDepth)
			continue
		}
		if !p.active() {
			continue
		}
		p.scanAndExpandLine(tu, fileName, ln.text, ln.start)
	}
}

// sourceLine is one line of a file being preprocessed, carrying its own
// byte offset so tokens scanned out of text can be remapped back to a
// position in the file src came from.
type sourceLine struct {
	text  string
	start int
}

func splitLinesKeepingOffsets(src string) []sourceLine {
	var out []sourceLine
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			out = append(out, sourceLine{text: src[start:i], start: start})
			start = i + 1
		}
	}
	if start < len(src) {
		out = append(out, sourceLine{text: src[start:], start: start})
	}
	return out
}

// handleDirective dispatches one `#...` directive line. restOffset is the
// absolute byte offset (in the file currently being processed) of rest[0]
// before the leading-whitespace trim below, used only by the "define"
// branch to recover a real source position for the macro body's tokens.
func (p *Preprocessor) handleDirective(tu *translationunit.TranslationUnit, fileName, rest string, restOffset, includeDepth int) {
	trimmed := strings.TrimLeft(rest, " \t")
	restOffset += len(rest) - len(trimmed)
	rest = trimmed
	directive, arg := splitDirectiveWord(rest)
	argOffset := restOffset + len(directive)

	switch directive {
	case "ifdef":
		p.pushIf(p.active() && p.isDefined(strings.TrimSpace(arg)))
	case "ifndef":
		p.pushIf(p.active() && !p.isDefined(strings.TrimSpace(arg)))
	case "if":
		p.pushIf(p.active() && p.evalCondition(tu, arg))
	case "elif":
		p.handleElif(tu, arg)
	case "else":
		p.handleElse(tu)
	case "endif":
		p.handleEndif(tu)
	case "define":
		if p.active() {
			p.handleDefine(arg, argOffset)
		}
	case "undef":
		if p.active() {
			delete(p.macros, strings.TrimSpace(arg))
		}
	case "include":
		if p.active() {
			p.handleInclude(tu, fileName, arg, includeDepth)
		}
	case "pragma":
		if p.active() && strings.TrimSpace(arg) == "once" {
			p.seenHeaderGuard[fileName] = true
		}
	case "error":
		if p.active() {
			tu.Error(tu.TokenCount(), "#error "+strings.TrimSpace(arg))
		}
	case "warning":
		if p.active() {
			tu.Warning(tu.TokenCount(), "#warning "+strings.TrimSpace(arg))
		}
	case "line":
		if p.active() {
			p.handleLine(tu, arg)
		}
	default:
		// Unknown directives (e.g. vendor pragmas) are tolerated silently,
		// matching spec section 1's "tolerant, not a standards enforcer."
	}
}

func splitDirectiveWord(s string) (word, rest string) {
	i := 0
	for i < len(s) && (isAlnum(s[i]) || s[i] == '_') {
		i++
	}
	return s[:i], s[i:]
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *Preprocessor) pushIf(taking bool) {
	parent := p.parentActive()
	if len(p.ifStack) >= p.maxDepth() {
		return
	}
	p.ifStack = append(p.ifStack, ifFrame{taking: taking && parent, everTaken: taking && parent, parentActive: parent})
}

func (p *Preprocessor) maxDepth() int {
	if p.opts.MaxConditionalNestingDepth > 0 {
		return p.opts.MaxConditionalNestingDepth
	}
	return config.DefaultMaxConditionalNestingDepth
}

func (p *Preprocessor) handleElif(tu *translationunit.TranslationUnit, arg string) {
	if len(p.ifStack) == 0 {
		tu.Error(tu.TokenCount(), "#elif without #if")
		return
	}
	top := &p.ifStack[len(p.ifStack)-1]
	if top.everTaken || !top.parentActive {
		top.taking = false
		return
	}
	taking := p.evalCondition(tu, arg)
	top.taking = taking
	top.everTaken = taking
}

func (p *Preprocessor) handleElse(tu *translationunit.TranslationUnit) {
	if len(p.ifStack) == 0 {
		tu.Error(tu.TokenCount(), "#else without #if")
		return
	}
	top := &p.ifStack[len(p.ifStack)-1]
	top.taking = top.parentActive && !top.everTaken
	top.everTaken = true
}

func (p *Preprocessor) handleEndif(tu *translationunit.TranslationUnit) {
	if len(p.ifStack) == 0 {
		tu.Error(tu.TokenCount(), "#endif without #if")
		return
	}
	p.ifStack = p.ifStack[:len(p.ifStack)-1]
}

func (p *Preprocessor) isDefined(name string) bool {
	_, ok := p.macros[name]
	return ok
}

// handleDefine parses one `#define` body. argOffset is the absolute byte
// offset of arg[0] in the file being processed, threaded through every
// trim/split below by plain length arithmetic so m.body's tokens end up
// with a real definition-site byteOffset instead of one relative to the
// directive text.
func (p *Preprocessor) handleDefine(arg string, argOffset int) {
	trimmedArg := strings.TrimLeft(arg, " \t")
	argOffset += len(arg) - len(trimmedArg)
	arg = trimmedArg

	name, rest := splitDirectiveWord(arg)
	if name == "" {
		return
	}
	restOffset := argOffset + len(name)

	m := &macro{name: name, kind: macroObjectLike}
	if strings.HasPrefix(rest, "(") {
		m.kind = macroFunctionLike
		close := strings.IndexByte(rest, ')')
		if close < 0 {
			return
		}
		paramList := rest[1:close]
		rest = rest[close+1:]
		restOffset += close + 1
		for _, param := range strings.Split(paramList, ",") {
			param = strings.TrimSpace(param)
			if param == "..." {
				m.variadic = true
				continue
			}
			if param != "" {
				m.parameters = append(m.parameters, param)
			}
		}
	}
	trimmedRest := strings.TrimLeft(rest, " \t")
	restOffset += len(rest) - len(trimmedRest)
	m.body = tokenizeMacroBody(strings.TrimRight(trimmedRest, " \t"), restOffset)
	p.macros[name] = m
}

func (p *Preprocessor) handleInclude(tu *translationunit.TranslationUnit, fromFile, arg string, includeDepth int) {
	arg = strings.TrimSpace(arg)
	if arg == "" || p.sourceNeeded == nil {
		return
	}
	var kind IncludeKind
	var target string
	switch {
	case strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) && len(arg) >= 2:
		kind = IncludeQuoted
		target = arg[1 : len(arg)-1]
	case strings.HasPrefix(arg, "<") && strings.HasSuffix(arg, ">") && len(arg) >= 2:
		kind = IncludeAngled
		target = arg[1 : len(arg)-1]
	default:
		// Might be a macro expanding to a <...> or "..." spelling; spec
		// section 4.2 allows this but it is rare enough that handling it
		// exactly like GCC/Clang (full macro-expand then re-lex) is out of
		// scope for this core -- unresolved, we just skip the directive.
		return
	}

	if includeDepth >= p.maxDepth() {
		tu.Fatal(tu.TokenCount(), "#include nesting too deep")
		return
	}

	contents, resolved, ok := p.sourceNeeded(target, kind, fromFile)
	if !ok {
		tu.Error(tu.TokenCount(), "cannot find include file: "+target)
		return
	}
	if p.seenHeaderGuard[resolved] {
		return
	}
	tu.PushPreprocessorLine(resolved, 1)
	p.processFile(tu, resolved, contents, includeDepth+1)
	tu.PushPreprocessorLine(fromFile, 0)
}

func (p *Preprocessor) handleLine(tu *translationunit.TranslationUnit, arg string) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}
	fileName := tu.FileName()
	if len(fields) >= 2 {
		fileName = strings.Trim(fields[1], `"`)
	}
	tu.PushPreprocessorLine(fileName, n)
}

// scanAndExpandLine lexes one non-directive source line and appends its
// (possibly macro-expanded) tokens to tu. lineStart is text's byte offset
// in the file currently being processed, used to remap the per-line
// Lexer's line-relative ByteOffset back to a file-relative one.
func (p *Preprocessor) scanAndExpandLine(tu *translationunit.TranslationUnit, fileName, text string, lineStart int) {
	l := cxlexer.New(text, p.lexerFlags)
	var pending []rawToken
	for {
		t := l.Next()
		if t.Kind == cxtoken.EOF {
			break
		}
		spelling := text[t.ByteOffset : t.ByteOffset+t.ByteLength]
		pending = append(pending, rawToken{
			kind:        t.Kind,
			text:        spelling,
			spaceBefore: t.Flags.Has(cxtoken.FlagWhitespace),
			byteOffset:  uint32(lineStart) + t.ByteOffset,
		})
	}
	if len(pending) > 0 {
		pending[0].newlineBefore = true
	}

	expanded := p.expandTokens(pending, map[string]bool{}, 0)
	p.emitExpansion(tu, expanded)
}

// emitExpansion appends expanded to tu, bracketing each contiguous run of
// tokens substituted from the same macro invocation with an
// ExpansionMarker (spec section 4.2: "diagnostics inside an expanded
// macro body point back at the invocation, not the definition") before
// appending the run itself.
func (p *Preprocessor) emitExpansion(tu *translationunit.TranslationUnit, expanded []rawToken) {
	for i := 0; i < len(expanded); {
		if !expanded[i].expanded {
			p.emit(tu, expanded[i])
			i++
			continue
		}
		invocationOffset := expanded[i].invocationOffset
		j := i + 1
		for j < len(expanded) && expanded[j].expanded && expanded[j].invocationOffset == invocationOffset {
			j++
		}
		tu.PushExpansionMarker(invocationOffset, j-i)
		for ; i < j; i++ {
			p.emit(tu, expanded[i])
		}
	}
}

// emit appends rt to tu. Macro-body tokens are tokenized with keyword
// classification off (see tokenizeMacroBody), so a substituted keyword
// spelling is reclassified here against the keyword table, with the same
// dialect gating the Lexer applies (see dialectAllowsEmitted).
func (p *Preprocessor) emit(tu *translationunit.TranslationUnit, rt rawToken) {
	kind := rt.kind
	if kind == cxtoken.Identifier {
		if k, ok := cxtoken.LookupKeyword(rt.text); ok && p.dialectAllowsEmitted(k) {
			kind = k
		}
	}

	var flags cxtoken.Flags
	if rt.spaceBefore {
		flags |= cxtoken.FlagWhitespace
	}
	if rt.newlineBefore && tu.TokenCount() > 0 {
		flags |= cxtoken.FlagNewline
	}
	if rt.generated {
		flags |= cxtoken.FlagGenerated
	}
	if rt.expanded {
		flags |= cxtoken.FlagExpanded
	}

	// CharOffset/CharLength mirror the byte values: cxlexer itself never
	// populates them either (see its byteToRuneLen, built for exactly this
	// translation but never wired to a Token field), so there is no more
	// precise UTF-16 position to source them from here.
	tu.AppendToken(cxtoken.Token{
		Kind:       kind,
		Flags:      flags,
		ByteOffset: rt.byteOffset,
		CharOffset: rt.byteOffset,
		ByteLength: uint32(len(rt.text)),
		CharLength: uint32(len(rt.text)),
	})
}

// dialectAllowsEmitted mirrors cxlexer's dialectAllows gating for tokens
// reconstructed after macro substitution, so a macro body using `signals`
// still only becomes a keyword under QtMocRunEnabled.
func (p *Preprocessor) dialectAllowsEmitted(k cxtoken.Kind) bool {
	switch k {
	case cxtoken.KwQObject, cxtoken.KwSignals, cxtoken.KwSlots, cxtoken.KwQSignal, cxtoken.KwQSlot,
		cxtoken.KwQInvokable, cxtoken.KwQPrivateSlot, cxtoken.KwQD, cxtoken.KwQQ, cxtoken.KwEmit,
		cxtoken.KwForeach, cxtoken.KwQProperty, cxtoken.KwQEnums, cxtoken.KwQFlags, cxtoken.KwQInterfaces:
		return p.lexerFlags.QtMocRunEnabled
	case cxtoken.KwAlignas, cxtoken.KwAlignof, cxtoken.KwAuto0x, cxtoken.KwChar16T, cxtoken.KwChar32T,
		cxtoken.KwConstexpr, cxtoken.KwDecltype, cxtoken.KwNoexcept, cxtoken.KwNullptr,
		cxtoken.KwStaticAssert, cxtoken.KwThreadLocal, cxtoken.KwOverride, cxtoken.KwFinal:
		return p.lexerFlags.Cxx0xEnabled
	default:
		return true
	}
}

// expandTokens performs one rescan pass: object-like and function-like
// macro invocations are replaced, `hiding` names are never re-expanded
// within their own expansion (preventing direct self-recursion per spec
// section 4.2), and depth is capped as a backstop against mutual
// recursion.
func (p *Preprocessor) expandTokens(tokens []rawToken, hiding map[string]bool, depth int) []rawToken {
	if depth > p.maxMacroDepth() {
		return tokens
	}
	if depth > p.maxDepthSeen {
		p.maxDepthSeen = depth
	}
	var out []rawToken
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.kind != cxtoken.Identifier || hiding[t.text] {
			out = append(out, t)
			continue
		}
		m, ok := p.macros[t.text]
		if !ok {
			out = append(out, t)
			continue
		}
		switch m.kind {
		case macroObjectLike:
			nested := map[string]bool{t.text: true}
			for k := range hiding {
				nested[k] = true
			}
			result := markExpanded(p.expandTokens(m.body, nested, depth+1), t.byteOffset)
			out = append(out, inheritLeadingTrivia(result, t)...)
		case macroFunctionLike:
			if i+1 >= len(tokens) || tokens[i+1].text != "(" {
				out = append(out, t) // not an invocation; just an identifier
				continue
			}
			args, consumed := scanActualArguments(tokens, i+1)
			i += consumed
			replaced := p.expandFunctionLikeInvocation(m, args)
			nested := map[string]bool{t.text: true}
			for k := range hiding {
				nested[k] = true
			}
			result := markExpanded(p.expandTokens(replaced, nested, depth+1), t.byteOffset)
			out = append(out, inheritLeadingTrivia(result, t)...)
		}
	}
	return out
}

// inheritLeadingTrivia copies the macro invocation token's own leading
// whitespace/newline flags onto the first token of its replacement, since
// the invocation token itself never reaches emit: without this, the
// spacing that preceded the invocation in the real source would vanish
// from the token stream entirely.
func inheritLeadingTrivia(result []rawToken, invocation rawToken) []rawToken {
	if len(result) == 0 {
		return result
	}
	result[0].spaceBefore = invocation.spaceBefore
	result[0].newlineBefore = invocation.newlineBefore
	return result
}

// markExpanded tags every token in toks as having come from substituting a
// macro body, attributing it to invocationOffset -- the OUTERMOST
// invocation's offset is kept on a token already marked expanded (a macro
// body that itself invokes another macro), since that is the position a
// diagnostic reader actually wants. The outer invocation's markExpanded
// runs after the inner one's, so overwriting keeps the outermost offset.
func markExpanded(toks []rawToken, invocationOffset uint32) []rawToken {
	out := make([]rawToken, len(toks))
	for i, t := range toks {
		t.expanded = true
		t.invocationOffset = invocationOffset
		out[i] = t
	}
	return out
}

func (p *Preprocessor) maxMacroDepth() int {
	if p.opts.MaxMacroExpansionDepth > 0 {
		return p.opts.MaxMacroExpansionDepth
	}
	return config.DefaultMaxMacroExpansionDepth
}

// scanActualArguments scans a balanced-parenthesis actual argument list
// starting at tokens[openParenIndex] (the `(` itself), splitting on
// top-level commas. Returns the arguments and the number of tokens
// consumed (including both parens).
func scanActualArguments(tokens []rawToken, openParenIndex int) (args [][]rawToken, consumed int) {
	depth := 0
	var current []rawToken
	i := openParenIndex
	for ; i < len(tokens); i++ {
		t := tokens[i]
		switch t.text {
		case "(":
			depth++
			if depth == 1 {
				continue
			}
		case ")":
			depth--
			if depth == 0 {
				if len(current) > 0 || len(args) > 0 {
					args = append(args, current)
				}
				return args, i - openParenIndex + 1
			}
		case ",":
			if depth == 1 {
				args = append(args, current)
				current = nil
				continue
			}
		}
		current = append(current, t)
	}
	return args, len(tokens) - openParenIndex
}

// expandFunctionLikeInvocation substitutes actual arguments into m.body,
// handling `#param` stringize and `a ## b` token paste. Arguments are
// macro-expanded before substitution except where used as a `#`/`##`
// operand, per spec section 4.2.
func (p *Preprocessor) expandFunctionLikeInvocation(m *macro, args [][]rawToken) []rawToken {
	paramIndex := make(map[string]int, len(m.parameters))
	for i, name := range m.parameters {
		paramIndex[name] = i
	}
	argFor := func(i int) []rawToken {
		if i < len(args) {
			return args[i]
		}
		return nil
	}
	expandedArg := func(i int) []rawToken {
		return p.expandTokens(argFor(i), map[string]bool{}, 0)
	}

	var out []rawToken
	for bi := 0; bi < len(m.body); bi++ {
		bt := m.body[bi]

		if bt.text == "#" && bi+1 < len(m.body) {
			if idx, ok := paramIndex[m.body[bi+1].text]; ok {
				stringOffset := bt.byteOffset
				if a := argFor(idx); len(a) > 0 {
					stringOffset = a[0].byteOffset
				}
				out = append(out, rawToken{kind: cxtoken.StringLiteral, text: stringize(argFor(idx)), spaceBefore: bt.spaceBefore, generated: true, byteOffset: stringOffset})
				bi++
				continue
			}
		}

		if m.variadic && bt.text == "__VA_ARGS__" {
			out = append(out, joinVariadic(args, len(m.parameters))...)
			continue
		}

		idx, isParam := paramIndex[bt.text]
		if !isParam {
			out = append(out, bt)
			continue
		}

		pastePrev := len(out) > 0 && bi > 0 && m.body[bi-1].text == "##"
		pasteNext := bi+1 < len(m.body) && m.body[bi+1].text == "##"

		if pastePrev || pasteNext {
			out = append(out, argFor(idx)...)
		} else {
			out = append(out, expandedArg(idx)...)
		}
	}
	return pasteTokens(out)
}

func stringize(toks []rawToken) string {
	var b strings.Builder
	b.WriteByte('"')
	for i, t := range toks {
		if i > 0 && t.spaceBefore {
			b.WriteByte(' ')
		}
		if t.kind == cxtoken.StringLiteral {
			b.WriteString(strings.ReplaceAll(t.text, `"`, `\"`))
		} else {
			b.WriteString(t.text)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func joinVariadic(args [][]rawToken, fixedParamCount int) []rawToken {
	var out []rawToken
	for i := fixedParamCount; i < len(args); i++ {
		if i > fixedParamCount {
			offset := uint32(0)
			if len(args[i]) > 0 {
				offset = args[i][0].byteOffset
			} else if i > 0 && len(args[i-1]) > 0 {
				prev := args[i-1]
				offset = prev[len(prev)-1].byteOffset
			}
			out = append(out, rawToken{kind: cxtoken.Comma, text: ",", generated: true, byteOffset: offset})
		}
		out = append(out, args[i]...)
	}
	return out
}

// pasteTokens collapses every `a ## b` pair left in toks into a single
// re-lexed token, per spec section 4.2's "## concatenates its two operand
// spellings and re-lexes the result as one token."
func pasteTokens(toks []rawToken) []rawToken {
	var out []rawToken
	for i := 0; i < len(toks); i++ {
		if toks[i].text == "##" && len(out) > 0 && i+1 < len(toks) {
			left := out[len(out)-1]
			right := toks[i+1]
			pasted := left.text + right.text
			merged := rawToken{kind: classifyPasted(pasted), text: pasted, spaceBefore: left.spaceBefore, generated: true, byteOffset: left.byteOffset}
			if left.expanded {
				merged.expanded = true
				merged.invocationOffset = left.invocationOffset
			} else if right.expanded {
				merged.expanded = true
				merged.invocationOffset = right.invocationOffset
			}
			out[len(out)-1] = merged
			i++
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

func classifyPasted(text string) cxtoken.Kind {
	if len(text) == 0 {
		return cxtoken.ErrorToken
	}
	if isDigitByte(text[0]) {
		return cxtoken.NumericLiteral
	}
	return cxtoken.Identifier
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// --- #if / #elif expression evaluation ----------------------------------------
//
// Grounded on pp-engine.h's eval_primary..eval_expression precedence
// ladder. Identifiers not bound to an integer macro evaluate to 0 (spec
// section 4.2: "an undefined identifier in a constant-expression is not an
// error; it is 0, matching every real preprocessor's behavior").

type exprParser struct {
	p      *Preprocessor
	tokens []rawToken
	pos    int
}

func (p *Preprocessor) evalCondition(tu *translationunit.TranslationUnit, arg string) bool {
	tokens := preprocessConditionTokens(p, tokenizeMacroBody(arg, 0))
	ep := &exprParser{p: p, tokens: tokens}
	v := ep.parseLogicalOr()
	return v != 0
}

// preprocessConditionTokens rewrites `defined X` / `defined(X)` into a 0/1
// literal before general macro expansion runs, matching the standard's
// "defined is evaluated before macro replacement within #if" rule.
func preprocessConditionTokens(p *Preprocessor, tokens []rawToken) []rawToken {
	var out []rawToken
	for i := 0; i < len(tokens); i++ {
		if tokens[i].text != "defined" {
			out = append(out, tokens[i])
			continue
		}
		i++
		if i >= len(tokens) {
			break
		}
		name := tokens[i].text
		if name == "(" && i+1 < len(tokens) {
			name = tokens[i+1].text
			i += 2 // skip name and the closing paren the caller expects next
		}
		value := "0"
		if p.isDefined(name) {
			value = "1"
		}
		out = append(out, rawToken{kind: cxtoken.NumericLiteral, text: value})
	}
	return p.expandTokens(out, map[string]bool{}, 0)
}

func (e *exprParser) peek() rawToken {
	if e.pos >= len(e.tokens) {
		return rawToken{kind: cxtoken.EOF}
	}
	return e.tokens[e.pos]
}

func (e *exprParser) advance() rawToken {
	t := e.peek()
	e.pos++
	return t
}

func (e *exprParser) parsePrimary() int64 {
	t := e.advance()
	switch {
	case t.kind == cxtoken.NumericLiteral:
		return parseIntLiteral(t.text)
	case t.text == "(":
		v := e.parseLogicalOr()
		if e.peek().text == ")" {
			e.advance()
		}
		return v
	case t.text == "!":
		if e.parseUnary() == 0 {
			return 1
		}
		return 0
	case t.text == "-":
		return -e.parseUnary()
	case t.text == "~":
		return ^e.parseUnary()
	case t.kind == cxtoken.Identifier:
		return 0
	default:
		return 0
	}
}

func parseIntLiteral(text string) int64 {
	text = strings.TrimRight(text, "uUlL")
	if n, err := strconv.ParseInt(text, 0, 64); err == nil {
		return n
	}
	return 0
}

func (e *exprParser) parseUnary() int64 { return e.parsePrimary() }

func (e *exprParser) parseBinary(next func() int64, ops map[string]func(a, b int64) int64) int64 {
	v := next()
	for {
		op, ok := ops[e.peek().text]
		if !ok {
			return v
		}
		e.advance()
		v = op(v, next())
	}
}

func (e *exprParser) parseMultiplicative() int64 {
	return e.parseBinary(e.parseUnary, map[string]func(a, b int64) int64{
		"*": func(a, b int64) int64 { return a * b },
		"/": func(a, b int64) int64 {
			if b == 0 {
				return 0
			}
			return a / b
		},
		"%": func(a, b int64) int64 {
			if b == 0 {
				return 0
			}
			return a % b
		},
	})
}

func (e *exprParser) parseAdditive() int64 {
	return e.parseBinary(e.parseMultiplicative, map[string]func(a, b int64) int64{
		"+": func(a, b int64) int64 { return a + b },
		"-": func(a, b int64) int64 { return a - b },
	})
}

func (e *exprParser) parseShift() int64 {
	return e.parseBinary(e.parseAdditive, map[string]func(a, b int64) int64{
		"<<": func(a, b int64) int64 { return a << uint(b) },
		">>": func(a, b int64) int64 { return a >> uint(b) },
	})
}

func (e *exprParser) parseRelational() int64 {
	return e.parseBinary(e.parseShift, map[string]func(a, b int64) int64{
		"<":  func(a, b int64) int64 { return boolToInt(a < b) },
		">":  func(a, b int64) int64 { return boolToInt(a > b) },
		"<=": func(a, b int64) int64 { return boolToInt(a <= b) },
		">=": func(a, b int64) int64 { return boolToInt(a >= b) },
	})
}

func (e *exprParser) parseEquality() int64 {
	return e.parseBinary(e.parseRelational, map[string]func(a, b int64) int64{
		"==": func(a, b int64) int64 { return boolToInt(a == b) },
		"!=": func(a, b int64) int64 { return boolToInt(a != b) },
	})
}

func (e *exprParser) parseBitAnd() int64 {
	return e.parseBinary(e.parseEquality, map[string]func(a, b int64) int64{"&": func(a, b int64) int64 { return a & b }})
}
func (e *exprParser) parseBitXor() int64 {
	return e.parseBinary(e.parseBitAnd, map[string]func(a, b int64) int64{"^": func(a, b int64) int64 { return a ^ b }})
}
func (e *exprParser) parseBitOr() int64 {
	return e.parseBinary(e.parseBitXor, map[string]func(a, b int64) int64{"|": func(a, b int64) int64 { return a | b }})
}

func (e *exprParser) parseLogicalAnd() int64 {
	v := e.parseBitOr()
	for e.peek().text == "&&" {
		e.advance()
		r := e.parseBitOr()
		v = boolToInt(v != 0 && r != 0)
	}
	return v
}

func (e *exprParser) parseLogicalOr() int64 {
	v := e.parseLogicalAnd()
	for e.peek().text == "||" {
		e.advance()
		r := e.parseLogicalAnd()
		v = boolToInt(v != 0 || r != 0)
	}
	return v
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
