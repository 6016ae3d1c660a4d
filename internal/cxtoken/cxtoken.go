// Package cxtoken defines the token vocabulary from spec section 3
// ("Tokens"): kinds, flags, and the Token struct itself. Grounded on the
// T_* enum in original_source/src/libs/3rdparty/cplusplus/Lexer.cpp for
// punctuators/operators/literal categories, extended with the full C++
// keyword set (plus C++11, Qt MOC, and Objective-C dialect keywords named
// in spec section 4.3), and on the teacher's internal/js_lexer.T enum for
// the one-constant-per-line idiom.
package cxtoken

import "github.com/roberto-raggi/cplusplus-go/internal/literal"

type Kind uint16

const (
	EOF Kind = iota
	ErrorToken

	// Comments are only emitted into the main stream when
	// config.ScanCommentTokens is set (spec section 6); otherwise the lexer
	// discards them.
	Comment
	CppComment
	DoxyComment
	CppDoxyComment

	Identifier // payload: *literal.Identifier

	// Literal categories (payload kind depends on Kind, see Token.Payload).
	CharLiteral
	WideCharLiteral
	Utf16CharLiteral
	Utf32CharLiteral
	NumericLiteral
	StringLiteral
	WideStringLiteral
	Utf8StringLiteral
	Utf16StringLiteral
	Utf32StringLiteral
	RawStringLiteral
	RawWideStringLiteral
	RawUtf8StringLiteral
	RawUtf16StringLiteral
	RawUtf32StringLiteral
	AngleStringLiteral // `<...>` inside #include; cxlexer never produces it
	AtStringLiteral    // Objective-C @"..."

	// Punctuators / operators
	Amper
	AmperAmper
	AmperEqual
	Arrow
	ArrowStar
	Caret
	CaretEqual
	Colon
	ColonColon
	Comma
	Dot
	DotDotDot
	DotStar
	Equal
	EqualEqual
	Exclaim
	ExclaimEqual
	Greater
	GreaterEqual
	GreaterGreater
	GreaterGreaterEqual
	LBrace
	LBracket
	Less
	LessEqual
	LessLess
	LessLessEqual
	LParen
	Minus
	MinusEqual
	MinusMinus
	Percent
	PercentEqual
	Pipe
	PipeEqual
	PipePipe
	Plus
	PlusEqual
	PlusPlus
	Pound
	PoundPound
	Question
	RBrace
	RBracket
	RParen
	Semicolon
	Slash
	SlashEqual
	Star
	StarEqual
	Tilde
	TildeEqual
	At // Objective-C '@' itself, when not starting @"..."

	keywordsBegin
	// Standard C89/C99/C++98 keywords
	KwAsm
	KwAuto
	KwBreak
	KwCase
	KwCatch
	KwChar
	KwClass
	KwConst
	KwConstCast
	KwContinue
	KwDefault
	KwDelete
	KwDo
	KwDouble
	KwDynamicCast
	KwElse
	KwEnum
	KwExplicit
	KwExport
	KwExtern
	KwFalse
	KwFloat
	KwFor
	KwFriend
	KwGoto
	KwIf
	KwInline
	KwInt
	KwLong
	KwMutable
	KwNamespace
	KwNew
	KwOperator
	KwPrivate
	KwProtected
	KwPublic
	KwRegister
	KwReinterpretCast
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStaticCast
	KwStruct
	KwSwitch
	KwTemplate
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypedef
	KwTypeid
	KwTypename
	KwUnion
	KwUnsigned
	KwUsing
	KwVirtual
	KwVoid
	KwVolatile
	KwWcharT
	KwWhile

	// GNU extensions recognized unconditionally (tolerant front end)
	KwTypeof
	KwAsmGnu // __asm__
	KwAttribute

	// C++11 keywords, gated by config.LexerFlags.Cxx0xEnabled
	KwAlignas
	KwAlignof
	KwAuto0x // `auto` as a type-deduction placeholder is the same keyword,
	// but the lexer needs a marker for diagnosing `auto` misuse pre-C++11.
	KwChar16T
	KwChar32T
	KwConstexpr
	KwDecltype
	KwNoexcept
	KwNullptr
	KwStaticAssert
	KwThreadLocal
	KwOverride // lexed as a keyword wherever it appears when Cxx0xEnabled
	KwFinal    // lexed as a keyword wherever it appears when Cxx0xEnabled

	// Qt MOC keywords, gated by config.LexerFlags.QtMocRunEnabled
	KwQObject
	KwSignals
	KwSlots
	KwQSignal
	KwQSlot
	KwQInvokable
	KwQPrivateSlot
	KwQD
	KwQQ
	KwEmit
	KwForeach
	KwQProperty
	KwQEnums
	KwQFlags
	KwQInterfaces

	// Objective-C keywords, gated by config.LexerFlags.ObjCEnabled
	KwAtInterface
	KwAtImplementation
	KwAtEnd
	KwAtProtocol
	KwAtEncode
	KwAtProperty
	KwAtSynthesize
	KwAtDynamic
	KwAtClass
	KwAtSelector
	KwAtThrow
	KwAtTry
	KwAtCatch
	KwAtFinally
	KwAtSynchronized
	KwAtAutoreleasepool
	KwAtOptional
	KwAtRequired
	KwAtPackage
	KwAtPublic
	KwAtPrivate
	KwAtProtected
	KwAtCompatibilityAlias
	keywordsEnd
)

// tokenSpelling mirrors the teacher's tokenToString companion table (spec
// comment in internal/js_lexer: "If you add a new token, remember to add
// it to tokenToString too"). A literal table of every entry that has a
// fixed spelling (identifiers/literals do not); the init below derives
// keywordsBySpelling from it.
var tokenSpelling = map[Kind]string{
	Amper: "&", AmperAmper: "&&", AmperEqual: "&=", Arrow: "->", ArrowStar: "->*",
	Caret: "^", CaretEqual: "^=", Colon: ":", ColonColon: "::", Comma: ",",
	Dot: ".", DotDotDot: "...", DotStar: ".*", Equal: "=", EqualEqual: "==",
	Exclaim: "!", ExclaimEqual: "!=", Greater: ">", GreaterEqual: ">=",
	GreaterGreater: ">>", GreaterGreaterEqual: ">>=", LBrace: "{", LBracket: "[",
	Less: "<", LessEqual: "<=", LessLess: "<<", LessLessEqual: "<<=", LParen: "(",
	Minus: "-", MinusEqual: "-=", MinusMinus: "--", Percent: "%", PercentEqual: "%=",
	Pipe: "|", PipeEqual: "|=", PipePipe: "||", Plus: "+", PlusEqual: "+=",
	PlusPlus: "++", Pound: "#", PoundPound: "##", Question: "?", RBrace: "}",
	RBracket: "]", RParen: ")", Semicolon: ";", Slash: "/", SlashEqual: "/=",
	Star: "*", StarEqual: "*=", Tilde: "~", TildeEqual: "~=", At: "@",
	KwAsm: "asm", KwAuto: "auto", KwBreak: "break", KwCase: "case", KwCatch: "catch",
	KwChar: "char", KwClass: "class", KwConst: "const", KwConstCast: "const_cast",
	KwContinue: "continue", KwDefault: "default", KwDelete: "delete", KwDo: "do",
	KwDouble: "double", KwDynamicCast: "dynamic_cast", KwElse: "else", KwEnum: "enum",
	KwExplicit: "explicit", KwExport: "export", KwExtern: "extern", KwFalse: "false",
	KwFloat: "float", KwFor: "for", KwFriend: "friend", KwGoto: "goto", KwIf: "if",
	KwInline: "inline", KwInt: "int", KwLong: "long", KwMutable: "mutable",
	KwNamespace: "namespace", KwNew: "new", KwOperator: "operator", KwPrivate: "private",
	KwProtected: "protected", KwPublic: "public", KwRegister: "register",
	KwReinterpretCast: "reinterpret_cast", KwReturn: "return", KwShort: "short",
	KwSigned: "signed", KwSizeof: "sizeof", KwStatic: "static", KwStaticCast: "static_cast",
	KwStruct: "struct", KwSwitch: "switch", KwTemplate: "template", KwThis: "this",
	KwThrow: "throw", KwTrue: "true", KwTry: "try", KwTypedef: "typedef",
	KwTypeid: "typeid", KwTypename: "typename", KwUnion: "union", KwUnsigned: "unsigned",
	KwUsing: "using", KwVirtual: "virtual", KwVoid: "void", KwVolatile: "volatile",
	KwWcharT: "wchar_t", KwWhile: "while", KwTypeof: "typeof", KwAsmGnu: "__asm__",
	KwAttribute: "__attribute__",
	KwAlignas: "alignas", KwAlignof: "alignof", KwChar16T: "char16_t", KwChar32T: "char32_t",
	KwConstexpr: "constexpr", KwDecltype: "decltype", KwNoexcept: "noexcept",
	KwNullptr: "nullptr", KwStaticAssert: "static_assert", KwThreadLocal: "thread_local",
	KwOverride: "override", KwFinal: "final",
	KwQObject: "Q_OBJECT", KwSignals: "signals", KwSlots: "slots", KwQSignal: "Q_SIGNAL",
	KwQSlot: "Q_SLOT", KwQInvokable: "Q_INVOKABLE", KwQPrivateSlot: "Q_PRIVATE_SLOT",
	KwQD: "Q_D", KwQQ: "Q_Q", KwEmit: "emit", KwForeach: "foreach",
	KwQProperty: "Q_PROPERTY", KwQEnums: "Q_ENUMS", KwQFlags: "Q_FLAGS",
	KwQInterfaces: "Q_INTERFACES",
	KwAtInterface: "@interface", KwAtImplementation: "@implementation", KwAtEnd: "@end",
	KwAtProtocol: "@protocol", KwAtEncode: "@encode", KwAtProperty: "@property",
	KwAtSynthesize: "@synthesize", KwAtDynamic: "@dynamic", KwAtClass: "@class",
	KwAtSelector: "@selector", KwAtThrow: "@throw", KwAtTry: "@try", KwAtCatch: "@catch",
	KwAtFinally: "@finally", KwAtSynchronized: "@synchronized",
	KwAtAutoreleasepool: "@autoreleasepool", KwAtOptional: "@optional",
	KwAtRequired: "@required", KwAtPackage: "@package", KwAtPublic: "@public",
	KwAtPrivate: "@private", KwAtProtected: "@protected",
	KwAtCompatibilityAlias: "@compatibility_alias",
}

// keywordsBySpelling is built once from tokenSpelling's keyword range, used
// by the lexer's keyword classifier.
var keywordsBySpelling map[string]Kind

func init() {
	keywordsBySpelling = make(map[string]Kind, keywordsEnd-keywordsBegin)
	for k := keywordsBegin + 1; k < keywordsEnd; k++ {
		if s, ok := tokenSpelling[k]; ok {
			keywordsBySpelling[s] = k
		}
	}
}

// LookupKeyword returns the Kind for an identifier spelling if (and only
// if) it names a keyword, independent of dialect gating -- the lexer is
// responsible for masking dialect-specific entries back to Identifier when
// the relevant feature flag is off (spec section 4.3).
func LookupKeyword(spelling string) (Kind, bool) {
	k, ok := keywordsBySpelling[spelling]
	return k, ok
}

func (k Kind) String() string {
	if s, ok := tokenSpelling[k]; ok {
		return s
	}
	switch k {
	case EOF:
		return "<eof>"
	case ErrorToken:
		return "<error>"
	case Identifier:
		return "<identifier>"
	case NumericLiteral:
		return "<number>"
	case StringLiteral:
		return "<string>"
	default:
		return "<token>"
	}
}

func (k Kind) IsKeyword() bool { return k > keywordsBegin && k < keywordsEnd }

// Flags is the per-token trivia/provenance bitset from spec section 3 and
// section 6 ("Token flags visible to downstream").
type Flags uint8

const (
	FlagNewline Flags = 1 << iota
	FlagWhitespace
	FlagJoined
	FlagExpanded
	FlagGenerated
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Payload is the discriminated union from spec section 3: selected by
// Kind, never more than one field populated.
type Payload struct {
	Ident          *literal.Identifier
	Str            *literal.StringLiteral
	Num            *literal.NumericLiteral
	CloseBraceIdx  int
	HasCloseBrace  bool
}

// Token is one entry in a TranslationUnit's flat token array (spec section
// 3: "Token array is owned by TranslationUnit; indexed access is the
// canonical way to refer to source spans in the AST").
type Token struct {
	Kind       Kind
	Flags      Flags
	ByteOffset uint32
	CharOffset uint32 // UTF-16 code-unit offset
	ByteLength uint32
	CharLength uint32
	Payload    Payload
}

func (t *Token) IsEOF() bool { return t.Kind == EOF }
