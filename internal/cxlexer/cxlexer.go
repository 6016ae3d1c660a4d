// Package cxlexer implements the hand-written scanner from spec section 4
// ("Lexer"): character-by-character dispatch producing cxtoken.Token
// values, dialect-gated keyword classification, literal-prefix handling,
// and line-continuation splicing.
//
// Grounded on the teacher's internal/js_lexer.Lexer.step/Lexer.Next
// char-dispatch core loop (a switch over the current byte, each case
// consuming as much as that token needs before returning to the caller)
// and on original_source/.../Lexer.cpp for C++-specific cases: literal
// prefixes (L/u/u8/U/R), raw string delimiters, and `\`-newline splicing.
package cxlexer

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
)

// Lexer scans one source buffer into a sequence of cxtoken.Token values.
// It holds no reference to a TranslationUnit; the caller (Preprocessor or
// a direct raw-token consumer) is responsible for appending tokens to one.
type Lexer struct {
	src   string
	flags config.LexerFlags

	pos       int // byte offset of the next unconsumed byte
	charPos   int // UTF-16 code-unit offset of the next unconsumed byte
	sawNewlineBeforeNextToken bool
}

func New(src string, flags config.LexerFlags) *Lexer {
	return &Lexer{src: src, flags: flags}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// advance consumes one byte, splicing over a `\`-newline line continuation
// first if one is present at the current position (spec section 4:
// "backslash-newline splicing happens before any other classification, so a
// continued identifier or operator scans as if the source had no line
// break at all").
func (l *Lexer) advance() byte {
	l.spliceLineContinuations()
	b := l.src[l.pos]
	l.pos++
	if b&0xC0 != 0x80 {
		l.charPos++ // UTF-8 continuation bytes add no code unit of their own
	}
	if b >= 0xF0 {
		l.charPos++ // four-byte UTF-8 sequences are two UTF-16 code units
	}
	return b
}

func (l *Lexer) spliceLineContinuations() {
	for l.pos+1 < len(l.src) && l.src[l.pos] == '\\' {
		nl := l.pos + 1
		if l.src[nl] == '\n' {
			l.pos += 2
			l.charPos += 2
			continue
		}
		if l.src[nl] == '\r' && nl+1 < len(l.src) && l.src[nl+1] == '\n' {
			l.pos += 3
			l.charPos += 3
			continue
		}
		break
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}
func isIdentContinue(b byte) bool { return isIdentStart(b) || isDigit(b) }

// Next scans and returns the next token. Callers keep calling Next until
// they receive one with Kind == cxtoken.EOF.
func (l *Lexer) Next() cxtoken.Token {
	var flags cxtoken.Flags
	for {
		l.spliceLineContinuations()
		if l.eof() {
			return l.finish(cxtoken.EOF, l.pos, 0, flags)
		}
		b := l.peek()
		switch b {
		case ' ', '\t', '\v', '\f':
			l.advance()
			flags |= cxtoken.FlagWhitespace
			continue
		case '\r':
			l.advance()
			continue
		case '\n':
			l.advance()
			flags |= cxtoken.FlagNewline
			continue
		}
		return l.scanToken(flags)
	}
}

func (l *Lexer) finish(kind cxtoken.Kind, startByte, length int, flags cxtoken.Flags) cxtoken.Token {
	return cxtoken.Token{
		Kind:       kind,
		Flags:      flags,
		ByteOffset: uint32(startByte),
		ByteLength: uint32(length),
	}
}

func (l *Lexer) scanToken(flags cxtoken.Flags) cxtoken.Token {
	start := l.pos
	b := l.peek()

	switch {
	case isDigit(b):
		return l.scanNumericLiteral(start, flags)
	case b == '.' && isDigit(l.peekAt(1)):
		return l.scanNumericLiteral(start, flags)
	case isIdentStart(b):
		return l.scanIdentifierOrPrefixedLiteral(start, flags)
	case b == '"':
		l.advance()
		return l.scanStringLiteralBody(start, cxtoken.StringLiteral, flags)
	case b == '\'':
		l.advance()
		return l.scanCharLiteralBody(start, cxtoken.CharLiteral, flags)
	case b == '/' && l.peekAt(1) == '/':
		return l.scanLineComment(start, flags)
	case b == '/' && l.peekAt(1) == '*':
		return l.scanBlockComment(start, flags)
	default:
		return l.scanOperator(start, flags)
	}
}

// scanIdentifierOrPrefixedLiteral handles both plain identifiers/keywords
// and the L/u/u8/U/R string-and-char literal prefix combinations (spec
// section 4: "string and char literal prefixes are only literals when
// immediately followed by a quote; otherwise the letters are an ordinary
// identifier").
func (l *Lexer) scanIdentifierOrPrefixedLiteral(start int, flags cxtoken.Flags) cxtoken.Token {
	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}
	spelling := l.src[start:l.pos]

	if !l.eof() && (l.peek() == '"' || l.peek() == '\'') {
		if kind, ok := literalPrefixKind(spelling, l.peek() == '\''); ok {
			quote := l.peek()
			l.advance()
			if quote == '"' {
				return l.scanStringLiteralBody(start, kind, flags)
			}
			return l.scanCharLiteralBody(start, kind, flags)
		}
	}

	return l.classifyIdentifier(start, spelling, flags)
}

// literalPrefixKind maps a literal-introducing letter sequence to its token
// kind. `R` additionally requires raw-string handling, dispatched by the
// caller once it knows the opening quote was consumed.
func literalPrefixKind(spelling string, isChar bool) (cxtoken.Kind, bool) {
	if isChar {
		switch spelling {
		case "L":
			return cxtoken.WideCharLiteral, true
		case "u":
			return cxtoken.Utf16CharLiteral, true
		case "U":
			return cxtoken.Utf32CharLiteral, true
		}
		return 0, false
	}
	switch spelling {
	case "L":
		return cxtoken.WideStringLiteral, true
	case "u":
		return cxtoken.Utf16StringLiteral, true
	case "u8":
		return cxtoken.Utf8StringLiteral, true
	case "U":
		return cxtoken.Utf32StringLiteral, true
	case "R":
		return cxtoken.RawStringLiteral, true
	case "LR":
		return cxtoken.RawWideStringLiteral, true
	case "uR", "Ru":
		return cxtoken.RawUtf16StringLiteral, true
	case "u8R", "Ru8":
		return cxtoken.RawUtf8StringLiteral, true
	case "UR", "RU":
		return cxtoken.RawUtf32StringLiteral, true
	}
	return 0, false
}

func (l *Lexer) classifyIdentifier(start int, spelling string, flags cxtoken.Flags) cxtoken.Token {
	if l.flags.ScanKeywords {
		if kind, ok := cxtoken.LookupKeyword(spelling); ok && l.dialectAllows(kind) {
			return l.finishSpan(kind, start, flags)
		}
	}
	return l.finishSpan(cxtoken.Identifier, start, flags)
}

// dialectAllows masks dialect-gated keywords back to plain identifiers
// when the relevant LexerFlags bit is off (spec section 4.3).
func (l *Lexer) dialectAllows(kind cxtoken.Kind) bool {
	switch kind {
	case cxtoken.KwQObject, cxtoken.KwSignals, cxtoken.KwSlots, cxtoken.KwQSignal,
		cxtoken.KwQSlot, cxtoken.KwQInvokable, cxtoken.KwQPrivateSlot, cxtoken.KwQD,
		cxtoken.KwQQ, cxtoken.KwEmit, cxtoken.KwForeach, cxtoken.KwQProperty,
		cxtoken.KwQEnums, cxtoken.KwQFlags, cxtoken.KwQInterfaces:
		return l.flags.QtMocRunEnabled
	case cxtoken.KwAlignas, cxtoken.KwAlignof, cxtoken.KwChar16T, cxtoken.KwChar32T,
		cxtoken.KwConstexpr, cxtoken.KwDecltype, cxtoken.KwNoexcept, cxtoken.KwNullptr,
		cxtoken.KwStaticAssert, cxtoken.KwThreadLocal, cxtoken.KwOverride, cxtoken.KwFinal:
		return l.flags.Cxx0xEnabled
	default:
		return true
	}
}

func (l *Lexer) finishSpan(kind cxtoken.Kind, start int, flags cxtoken.Flags) cxtoken.Token {
	return cxtoken.Token{
		Kind:       kind,
		Flags:      flags,
		ByteOffset: uint32(start),
		ByteLength: uint32(l.pos - start),
	}
}

func (l *Lexer) scanNumericLiteral(start int, flags cxtoken.Flags) cxtoken.Token {
	for !l.eof() {
		b := l.peek()
		switch {
		case isDigit(b) || b == '.' || b == '\'':
			l.advance()
		case (b == 'e' || b == 'E' || b == 'p' || b == 'P') &&
			(l.peekAt(1) == '+' || l.peekAt(1) == '-'):
			l.advance()
			l.advance()
		case isIdentContinue(b):
			l.advance() // suffix letters: u, l, ll, f, x (hex), etc.
		default:
			return l.finishSpan(cxtoken.NumericLiteral, start, flags)
		}
	}
	return l.finishSpan(cxtoken.NumericLiteral, start, flags)
}

func (l *Lexer) scanStringLiteralBody(start int, kind cxtoken.Kind, flags cxtoken.Flags) cxtoken.Token {
	if kind >= cxtoken.RawStringLiteral && kind <= cxtoken.RawUtf32StringLiteral {
		return l.scanRawStringLiteralBody(start, kind, flags)
	}
	for !l.eof() {
		b := l.peek()
		if b == '"' {
			l.advance()
			break
		}
		if b == '\\' && l.pos+1 < len(l.src) {
			l.advance()
			l.advance()
			continue
		}
		if b == '\n' {
			break // unterminated string literal; caller's TranslationUnit reports it
		}
		l.advance()
	}
	return l.finishSpan(kind, start, flags)
}

// scanRawStringLiteralBody scans `R"delim(...)delim"`, per spec section
// 4's "raw string literals are delimiter-balanced, not escape-balanced."
func (l *Lexer) scanRawStringLiteralBody(start int, kind cxtoken.Kind, flags cxtoken.Flags) cxtoken.Token {
	delimStart := l.pos
	for !l.eof() && l.peek() != '(' && l.peek() != '"' {
		l.advance()
	}
	delimiter := l.src[delimStart:l.pos]
	if !l.eof() && l.peek() == '(' {
		l.advance()
	}
	closer := ")" + delimiter + "\""
	for !l.eof() {
		if l.peek() == ')' && l.pos+len(closer) <= len(l.src) && l.src[l.pos:l.pos+len(closer)] == closer {
			for range closer {
				l.advance()
			}
			break
		}
		l.advance()
	}
	return l.finishSpan(kind, start, flags)
}

func (l *Lexer) scanCharLiteralBody(start int, kind cxtoken.Kind, flags cxtoken.Flags) cxtoken.Token {
	for !l.eof() {
		b := l.peek()
		if b == '\'' {
			l.advance()
			break
		}
		if b == '\\' && l.pos+1 < len(l.src) {
			l.advance()
			l.advance()
			continue
		}
		if b == '\n' {
			break
		}
		l.advance()
	}
	return l.finishSpan(kind, start, flags)
}

func (l *Lexer) scanLineComment(start int, flags cxtoken.Flags) cxtoken.Token {
	isDoxy := l.peekAt(2) == '/' || l.peekAt(2) == '!'
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
	kind := cxtoken.CppComment
	if isDoxy {
		kind = cxtoken.CppDoxyComment
	}
	if l.flags.ScanCommentTokens {
		return l.finishSpan(kind, start, flags)
	}
	return l.Next() // fold into the next real token, as trivia
}

func (l *Lexer) scanBlockComment(start int, flags cxtoken.Flags) cxtoken.Token {
	isDoxy := l.peekAt(2) == '*' || l.peekAt(2) == '!'
	l.advance()
	l.advance()
	for !l.eof() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	kind := cxtoken.Comment
	if isDoxy {
		kind = cxtoken.DoxyComment
	}
	if l.flags.ScanCommentTokens {
		return l.finishSpan(kind, start, flags)
	}
	return l.Next()
}

// scanOperator is the punctuator dispatch ladder, longest-match-first
// (spec section 4: "operators are scanned maximal-munch"). Grounded
// directly on the T_* punctuator list captured from
// original_source/.../Lexer.cpp.
func (l *Lexer) scanOperator(start int, flags cxtoken.Flags) cxtoken.Token {
	b := l.advance()
	switch b {
	case '@':
		if l.flags.ObjCEnabled && !l.eof() && l.peek() == '"' {
			l.advance()
			return l.scanStringLiteralBody(start, cxtoken.AtStringLiteral, flags)
		}
		if l.flags.ObjCEnabled {
			return l.scanObjCAtKeyword(start, flags)
		}
		return l.finishSpan(cxtoken.At, start, flags)
	case '{':
		return l.finishSpan(cxtoken.LBrace, start, flags)
	case '}':
		return l.finishSpan(cxtoken.RBrace, start, flags)
	case '(':
		return l.finishSpan(cxtoken.LParen, start, flags)
	case ')':
		return l.finishSpan(cxtoken.RParen, start, flags)
	case '[':
		return l.finishSpan(cxtoken.LBracket, start, flags)
	case ']':
		return l.finishSpan(cxtoken.RBracket, start, flags)
	case ';':
		return l.finishSpan(cxtoken.Semicolon, start, flags)
	case ',':
		return l.finishSpan(cxtoken.Comma, start, flags)
	case '~':
		return l.two(start, '=', cxtoken.TildeEqual, cxtoken.Tilde, flags)
	case '?':
		return l.finishSpan(cxtoken.Question, start, flags)
	case ':':
		return l.two(start, ':', cxtoken.ColonColon, cxtoken.Colon, flags)
	case '.':
		if !l.eof() && l.peek() == '.' && l.peekAt(1) == '.' {
			l.advance()
			l.advance()
			return l.finishSpan(cxtoken.DotDotDot, start, flags)
		}
		return l.two(start, '*', cxtoken.DotStar, cxtoken.Dot, flags)
	case '+':
		if !l.eof() && l.peek() == '+' {
			l.advance()
			return l.finishSpan(cxtoken.PlusPlus, start, flags)
		}
		return l.two(start, '=', cxtoken.PlusEqual, cxtoken.Plus, flags)
	case '-':
		if !l.eof() && l.peek() == '-' {
			l.advance()
			return l.finishSpan(cxtoken.MinusMinus, start, flags)
		}
		if !l.eof() && l.peek() == '>' {
			l.advance()
			return l.two(start, '*', cxtoken.ArrowStar, cxtoken.Arrow, flags)
		}
		return l.two(start, '=', cxtoken.MinusEqual, cxtoken.Minus, flags)
	case '*':
		return l.two(start, '=', cxtoken.StarEqual, cxtoken.Star, flags)
	case '/':
		return l.two(start, '=', cxtoken.SlashEqual, cxtoken.Slash, flags)
	case '%':
		return l.two(start, '=', cxtoken.PercentEqual, cxtoken.Percent, flags)
	case '^':
		return l.two(start, '=', cxtoken.CaretEqual, cxtoken.Caret, flags)
	case '&':
		if !l.eof() && l.peek() == '&' {
			l.advance()
			return l.finishSpan(cxtoken.AmperAmper, start, flags)
		}
		return l.two(start, '=', cxtoken.AmperEqual, cxtoken.Amper, flags)
	case '|':
		if !l.eof() && l.peek() == '|' {
			l.advance()
			return l.finishSpan(cxtoken.PipePipe, start, flags)
		}
		return l.two(start, '=', cxtoken.PipeEqual, cxtoken.Pipe, flags)
	case '!':
		return l.two(start, '=', cxtoken.ExclaimEqual, cxtoken.Exclaim, flags)
	case '=':
		return l.two(start, '=', cxtoken.EqualEqual, cxtoken.Equal, flags)
	case '<':
		if !l.eof() && l.peek() == '<' {
			l.advance()
			return l.two(start, '=', cxtoken.LessLessEqual, cxtoken.LessLess, flags)
		}
		return l.two(start, '=', cxtoken.LessEqual, cxtoken.Less, flags)
	case '>':
		if !l.eof() && l.peek() == '>' {
			l.advance()
			return l.two(start, '=', cxtoken.GreaterGreaterEqual, cxtoken.GreaterGreater, flags)
		}
		return l.two(start, '=', cxtoken.GreaterEqual, cxtoken.Greater, flags)
	case '#':
		return l.two(start, '#', cxtoken.PoundPound, cxtoken.Pound, flags)
	default:
		return l.finishSpan(cxtoken.ErrorToken, start, flags)
	}
}

// two consumes a trailing `=` (or whatever matchByte is) if present and
// returns withMatch, else withoutMatch -- the common two-lookahead shape
// repeated throughout scanOperator.
func (l *Lexer) two(start int, matchByte byte, withMatch, withoutMatch cxtoken.Kind, flags cxtoken.Flags) cxtoken.Token {
	if !l.eof() && l.peek() == matchByte {
		l.advance()
		return l.finishSpan(withMatch, start, flags)
	}
	return l.finishSpan(withoutMatch, start, flags)
}

func (l *Lexer) scanObjCAtKeyword(start int, flags cxtoken.Flags) cxtoken.Token {
	identStart := l.pos
	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}
	spelling := "@" + l.src[identStart:l.pos]
	if kind, ok := cxtoken.LookupKeyword(spelling); ok {
		return l.finishSpan(kind, start, flags)
	}
	return l.finishSpan(cxtoken.At, start, flags)
}

// byteToRuneLen reports how many UTF-16 code units the UTF-8 rune starting
// at s[0] decodes to -- used nowhere in the hot path above (which counts
// leading bytes directly) but exposed for callers that need to translate
// an arbitrary byte offset to a char offset, e.g. when reporting positions
// to an LSP-style host that indexes by UTF-16 code unit.
func byteToRuneLen(s string) int {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return 0
	}
	return len(utf16.Encode([]rune{r}))
}
