// Package token defines the lexical token vocabulary the declaration
// processor consumes from its tokenizer collaborator (spec §6).
package token

// Location identifies a point in a source file.
type Location struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based
}

// Kind classifies a single token.
type Kind uint16

const (
	Error Kind = iota
	EOF

	Ident
	IntLit
	FloatLit
	StringLit
	CharLit

	// Keywords
	KwAuto
	KwBreak
	KwCase
	KwChar
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtern
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwInline
	KwInt
	KwLong
	KwRegister
	KwRestrict
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStruct
	KwSwitch
	KwTypedef
	KwUnion
	KwUnsigned
	KwVoid
	KwVolatile
	KwWhile
	KwBool      // _Bool
	KwComplex   // _Complex
	KwAtomic    // _Atomic
	KwAlignas   // _Alignas
	KwAlignof   // _Alignof
	KwNoreturn  // _Noreturn
	KwStaticAssert // _Static_assert
	KwThreadLocal  // _Thread_local
	KwGeneric      // _Generic

	// Punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Colon
	Comma
	Dot
	Arrow
	Ellipsis
	Assign
	Mul
	Amp
	Plus
	Minus
	Not
	Tilde
	Div
	Mod
	LtLt
	GtGt
	Lt
	Gt
	LtEq
	GtEq
	EqEq
	NotEq
	Pipe
	Caret
	AmpAmp
	PipePipe
	Question
	MulEq
	DivEq
	ModEq
	PlusEq
	MinusEq
	LtLtEq
	GtGtEq
	AmpEq
	CaretEq
	PipeEq
	PlusPlus
	MinusMinus
)

var names = map[Kind]string{
	Error:     "error",
	EOF:       "EOF",
	Ident:     "identifier",
	IntLit:    "integer constant",
	FloatLit:  "floating constant",
	StringLit: "string literal",
	CharLit:   "character constant",

	KwAuto: "auto", KwBreak: "break", KwCase: "case", KwChar: "char",
	KwConst: "const", KwContinue: "continue", KwDefault: "default",
	KwDo: "do", KwDouble: "double", KwElse: "else", KwEnum: "enum",
	KwExtern: "extern", KwFloat: "float", KwFor: "for", KwGoto: "goto",
	KwIf: "if", KwInline: "inline", KwInt: "int", KwLong: "long",
	KwRegister: "register", KwRestrict: "restrict", KwReturn: "return",
	KwShort: "short", KwSigned: "signed", KwSizeof: "sizeof",
	KwStatic: "static", KwStruct: "struct", KwSwitch: "switch",
	KwTypedef: "typedef", KwUnion: "union", KwUnsigned: "unsigned",
	KwVoid: "void", KwVolatile: "volatile", KwWhile: "while",
	KwBool: "_Bool", KwComplex: "_Complex", KwAtomic: "_Atomic",
	KwAlignas: "_Alignas", KwAlignof: "_Alignof", KwNoreturn: "_Noreturn",
	KwStaticAssert: "_Static_assert", KwThreadLocal: "_Thread_local",
	KwGeneric: "_Generic",

	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Semicolon: ";", Colon: ":",
	Comma: ",", Dot: ".", Arrow: "->", Ellipsis: "...",
	Assign: "=", Mul: "*", Amp: "&", Plus: "+", Minus: "-",
	Not: "!", Tilde: "~", Div: "/", Mod: "%",
	LtLt: "<<", GtGt: ">>", Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	EqEq: "==", NotEq: "!=", Pipe: "|", Caret: "^",
	AmpAmp: "&&", PipePipe: "||", Question: "?",
	MulEq: "*=", DivEq: "/=", ModEq: "%=", PlusEq: "+=", MinusEq: "-=",
	LtLtEq: "<<=", GtGtEq: ">>=", AmpEq: "&=", CaretEq: "^=", PipeEq: "|=",
	PlusPlus: "++", MinusMinus: "--",
}

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Keywords maps keyword spellings to their token kind.
var Keywords = map[string]Kind{
	"auto": KwAuto, "break": KwBreak, "case": KwCase, "char": KwChar,
	"const": KwConst, "continue": KwContinue, "default": KwDefault,
	"do": KwDo, "double": KwDouble, "else": KwElse, "enum": KwEnum,
	"extern": KwExtern, "float": KwFloat, "for": KwFor, "goto": KwGoto,
	"if": KwIf, "inline": KwInline, "int": KwInt, "long": KwLong,
	"register": KwRegister, "restrict": KwRestrict, "return": KwReturn,
	"short": KwShort, "signed": KwSigned, "sizeof": KwSizeof,
	"static": KwStatic, "struct": KwStruct, "switch": KwSwitch,
	"typedef": KwTypedef, "union": KwUnion, "unsigned": KwUnsigned,
	"void": KwVoid, "volatile": KwVolatile, "while": KwWhile,
	"_Bool": KwBool, "_Complex": KwComplex, "_Atomic": KwAtomic,
	"_Alignas": KwAlignas, "_Alignof": KwAlignof, "_Noreturn": KwNoreturn,
	"_Static_assert": KwStaticAssert, "_Thread_local": KwThreadLocal,
	"_Generic": KwGeneric,
}

// Token is a single lexical token.
type Token struct {
	Kind  Kind
	Lit   string // literal text: identifier spelling, numeric/string text
	Loc   Location
}
