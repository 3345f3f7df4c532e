package lex

// keywords is the static reserved-word map consulted by C3 to
// post-classify an accepted identifier lexeme. Grounded on
// rcc/src/lex/keyword.rs (a phf::Map in the original); Go has no
// compile-time perfect-hash map in the standard library, so a plain
// package-level map is the idiomatic equivalent — this is the one place
// in the lexer where the teacher's own style (see lang/operators.go's
// sorted slice) is set aside in favor of what the original actually
// specifies: O(1) string lookup, not a sorted table.
var keywords = map[string]Keyword{
	"auto":       KwAuto,
	"break":      KwBreak,
	"case":       KwCase,
	"char":       KwChar,
	"const":      KwConst,
	"continue":   KwContinue,
	"default":    KwDefault,
	"do":         KwDo,
	"double":     KwDouble,
	"else":       KwElse,
	"enum":       KwEnum,
	"extern":     KwExtern,
	"float":      KwFloat,
	"for":        KwFor,
	"goto":       KwGoto,
	"if":         KwIf,
	"inline":     KwInline,
	"int":        KwInt,
	"long":       KwLong,
	"register":   KwRegister,
	"restrict":   KwRestrict,
	"return":     KwReturn,
	"short":      KwShort,
	"signed":     KwSigned,
	"sizeof":     KwSizeof,
	"static":     KwStatic,
	"struct":     KwStruct,
	"switch":     KwSwitch,
	"typedef":    KwTypedef,
	"union":      KwUnion,
	"unsigned":   KwUnsigned,
	"void":       KwVoid,
	"volatile":   KwVolatile,
	"while":      KwWhile,
	"_Bool":      KwBool,
	"_Complex":   KwComplex,
	"_Imaginary": KwImaginary,
}

// classifyKeyword looks up text in the reserved-word map. It is applied to
// every lexeme accepted as an identifier by the scanner, never to any
// other lexeme kind (spec.md §4.2).
func classifyKeyword(text string) (Keyword, bool) {
	kw, ok := keywords[text]
	return kw, ok
}

func (k Keyword) String() string {
	for text, kw := range keywords {
		if kw == k {
			return text
		}
	}
	return "keyword(?)"
}
