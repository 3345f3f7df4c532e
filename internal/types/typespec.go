package types

// A TypeSpecState is a node of the finite state machine Sema (C7) uses to
// accumulate the type-specifier keywords of a declaration specifier list
// — `long`, `long long`, `unsigned short int`, and so on — detecting
// illegal combinations like `long float` or `void int` as they occur
// rather than after the fact.
//
// Grounded directly on the original compiler's
// TypeSpecState::combine (rcc's parser/semantic/common.rs): the state
// set and the combine table below are a one-to-one transcription of that
// match, the signedness keywords aside (this repository threads
// signed/unsigned through DeclSpec as an independent flag rather than as
// TypeSpecState variants, since `signed`/`unsigned` compose with every
// integer state instead of following the same exclusive-choice rule as
// `long`/`short`/`double`).
type TypeSpecState int

const (
	SpecInit TypeSpecState = iota
	SpecVoid
	SpecChar
	SpecShort
	SpecInt
	SpecLong
	SpecLongLong
	SpecFloat
	SpecDouble
	SpecLongDouble
	SpecRecord // struct or union specifier already consumed
	SpecEnum
	SpecTypeName // a typedef name already consumed
)

func (s TypeSpecState) String() string {
	switch s {
	case SpecInit:
		return "init"
	case SpecVoid:
		return "void"
	case SpecChar:
		return "char"
	case SpecShort:
		return "short"
	case SpecInt:
		return "int"
	case SpecLong:
		return "long"
	case SpecLongLong:
		return "long long"
	case SpecFloat:
		return "float"
	case SpecDouble:
		return "double"
	case SpecLongDouble:
		return "long double"
	case SpecRecord:
		return "struct/union"
	case SpecEnum:
		return "enum"
	case SpecTypeName:
		return "typedef name"
	default:
		return "spec(?)"
	}
}

// Combine folds a newly-seen type-specifier keyword (given as the
// TypeSpecState it alone would produce) into the running state. It
// reports false for an illegal combination, in which case Sema reports
// an illegal-type-specifier-combination diagnostic and keeps the
// previous state.
func (s TypeSpecState) Combine(next TypeSpecState) (TypeSpecState, bool) {
	switch {
	case s == SpecInit:
		return next, true
	case s == SpecVoid:
		return s, false
	case s == SpecChar && next == SpecInt:
		return SpecChar, true
	case s == SpecShort && next == SpecInt:
		return SpecShort, true
	case s == SpecInt && next == SpecChar:
		return SpecChar, true
	case s == SpecInt && next == SpecShort:
		return SpecShort, true
	case s == SpecInt && next == SpecLong:
		return SpecInt, true
	case s == SpecInt && next == SpecLongLong:
		return SpecLongLong, true
	case s == SpecLong && next == SpecInt:
		return SpecLong, true
	case s == SpecLong && next == SpecLong:
		return SpecLongLong, true
	case s == SpecLong && next == SpecDouble:
		return SpecLongDouble, true
	case s == SpecLongLong && next == SpecInt:
		return SpecLongLong, true
	case s == SpecFloat:
		return s, false
	case s == SpecDouble && next == SpecLong:
		return SpecLongDouble, true
	case s == SpecLongDouble:
		return s, false
	case s == SpecRecord:
		return s, false
	case s == SpecEnum:
		return s, false
	case s == SpecTypeName:
		return s, false
	default:
		return s, false
	}
}

// Resolve turns a finished TypeSpecState plus the signed/unsigned flags
// accumulated alongside it into a concrete TypeKind. It is never called
// for SpecRecord/SpecEnum/SpecTypeName — those states carry their
// concrete type from elsewhere (the finalized record/enum, or the
// resolved typedef) and Sema builds the TypeKind directly without
// consulting this table.
func (s TypeSpecState) Resolve(signed, unsigned bool) TypeKind {
	isSigned := !unsigned // default to signed unless unsigned was given
	switch s {
	case SpecVoid:
		return Void{}
	case SpecChar:
		// Plain `char` signedness is implementation-defined; this
		// repository treats it as signed unless `unsigned` appears,
		// matching the target's LP64 data model (spec.md §4.8).
		return Integer{Signed: isSigned, Size: Char}
	case SpecShort:
		return Integer{Signed: isSigned, Size: Short}
	case SpecInt, SpecInit:
		// bare `signed`/`unsigned` with no other specifier means int.
		return Integer{Signed: isSigned, Size: Int}
	case SpecLong:
		return Integer{Signed: isSigned, Size: Long}
	case SpecLongLong:
		return Integer{Signed: isSigned, Size: LongLong}
	case SpecFloat:
		return Floating{Size: Float}
	case SpecDouble:
		return Floating{Size: Double}
	case SpecLongDouble:
		return Floating{Size: LongDouble}
	default:
		return Unknown{}
	}
}
