// Package lex implements the DFA-driven scanner (C2) and keyword
// post-classification (C3) of spec.md.
package lex

import (
	"fmt"

	"github.com/anishon/cfront/internal/span"
)

// A Kind classifies a Token. TypeName is never produced here — it is
// produced only by the token stream (package tokstream, C4) by
// reclassifying an Ident against the live scope, per spec.md's data
// model: "TypeName is produced only by C4, never by C2."
//
// Question, Colon, Arrow, and Ellipsis are not named in spec.md §3's
// illustrative kind set, but the grammar this repository covers
// (declarators, struct/union/enum, statements, expressions) needs the
// ternary operator, pointer-to-member access, and variadic parameter
// lists, so they are added here as the same kind of punctuation as Dot
// and Assign already are.
type Kind int

const (
	Invalid Kind = iota
	Ident
	TypeName
	Keyword
	IntLit
	FloatLit
	CharLit
	StringLit
	BinOp
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semi
	Dot
	Ellipsis // "..."
	Arrow    // "->"
	Assign
	Question
	Colon
	Eof
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Ident:
		return "identifier"
	case TypeName:
		return "type-name"
	case Keyword:
		return "keyword"
	case IntLit:
		return "integer-constant"
	case FloatLit:
		return "floating-constant"
	case CharLit:
		return "character-constant"
	case StringLit:
		return "string-literal"
	case BinOp:
		return "operator"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Comma:
		return "','"
	case Semi:
		return "';'"
	case Dot:
		return "'.'"
	case Ellipsis:
		return "'...'"
	case Arrow:
		return "'->'"
	case Assign:
		return "'='"
	case Question:
		return "'?'"
	case Colon:
		return "':'"
	case Eof:
		return "end of file"
	default:
		return "kind(?)"
	}
}

// A Keyword is a reserved word of C89/C99.
type Keyword int

const (
	KwAuto Keyword = iota
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
	KwImaginary // _Imaginary
)

// An Op names an operator lexeme carried by a BinOp token. The parser
// decides arity and grammar role (e.g. '*' is a multiply operator in an
// expression but a pointer declarator chunk right after a type), the same
// way the token stream later decides Ident vs TypeName: one token shape,
// context-sensitive interpretation downstream.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAndAnd
	OpOrOr
	OpAnd // bitwise &, also address-of
	OpOr  // bitwise |
	OpXor
	OpShl
	OpShr
	OpNot    // unary !
	OpBitNot // unary ~
	OpInc
	OpDec
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpShlAssign
	OpShrAssign
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAndAnd:
		return "&&"
	case OpOrOr:
		return "||"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpNot:
		return "!"
	case OpBitNot:
		return "~"
	case OpInc:
		return "++"
	case OpDec:
		return "--"
	case OpAddAssign:
		return "+="
	case OpSubAssign:
		return "-="
	case OpMulAssign:
		return "*="
	case OpDivAssign:
		return "/="
	case OpModAssign:
		return "%="
	case OpAndAssign:
		return "&="
	case OpOrAssign:
		return "|="
	case OpXorAssign:
		return "^="
	case OpShlAssign:
		return "<<="
	case OpShrAssign:
		return ">>="
	default:
		return "op(?)"
	}
}

// IsAssign reports whether o is a compound-assignment operator.
func (o Op) IsAssign() bool {
	return o >= OpAddAssign && o <= OpShrAssign
}

// A Token is one lexical item: its span, its Kind, and enough payload to
// reconstruct the lexeme without re-slicing the content buffer.
type Token struct {
	Span    span.Span
	Kind    Kind
	Text    string  // raw lexeme; always set for Ident/Keyword/*Lit/BinOp
	Keyword Keyword // valid iff Kind == Keyword
	Op      Op      // valid iff Kind == BinOp
}

func (t Token) String() string {
	if t.Kind == Eof {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
