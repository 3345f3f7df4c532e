package types

// LP64 size/alignment model (spec.md §4.8's default data model). Making
// this configurable per target is flagged by spec.md §9 as a reasonable
// extension but is left unspecified there, so this repository hard-codes
// it the same way the original does.
const (
	SizeofChar      uint64 = 1
	SizeofShort     uint64 = 2
	SizeofInt       uint64 = 4
	SizeofLong      uint64 = 8
	SizeofLongLong  uint64 = 8
	SizeofFloat     uint64 = 4
	SizeofDouble    uint64 = 8
	SizeofLongDbl   uint64 = 16
	SizeofPointer   uint64 = 8
	SizeofEnum      uint64 = 4 // spec.md §9: enum underlying width follows `int`, not the source's 8
)

// DefaultSize and DefaultAlign are the layout fallback used for Unknown
// and unresolved *Ref types — the type could not be computed (a semantic
// error already reported elsewhere), but callers that unconditionally
// need a size/alignment to keep laying out an enclosing record must not
// panic.
const (
	DefaultSize  uint64 = 1
	DefaultAlign uint64 = 1
)

// A Resolver looks up the complete Type behind a TypeKey, and the
// complete Type behind a tag name for StructRef/UnionRef/EnumRef. Package
// types cannot import package ctx itself (ctx stores types.Type values,
// so the dependency must run the other way), so SizeOf/AlignOf take a
// Resolver rather than a *ctx.Context. Package sema's Sema implements it,
// resolving a tag through the scope manager.
type Resolver interface {
	ResolveKey(TypeKey) Type
	ResolveTag(name string) (Type, bool)
}

// SizeOf computes sizeof(t) per spec.md §4.8.
func SizeOf(t Type, r Resolver) uint64 {
	switch k := t.Kind.(type) {
	case Void:
		return 0
	case Integer:
		switch k.Size {
		case Char:
			return SizeofChar
		case Short:
			return SizeofShort
		case Int:
			return SizeofInt
		case Long:
			return SizeofLong
		case LongLong:
			return SizeofLongLong
		}
		return DefaultSize
	case Floating:
		switch k.Size {
		case Float:
			return SizeofFloat
		case Double:
			return SizeofDouble
		case LongDouble:
			return SizeofLongDbl
		}
		return DefaultSize
	case Pointer:
		return SizeofPointer
	case Array:
		switch k.SizeKind {
		case SizeFixed:
			elem := r.ResolveKey(k.Elem)
			return k.Fixed * SizeOf(elem, r)
		default:
			// Incomplete and variable-length arrays have no compile-time
			// size; callers must not lay out a field of this type (a
			// flexible array member is sized 0, handled by LayoutFields,
			// not here).
			return 0
		}
	case Function:
		return DefaultSize // functions have no sizeof; DefaultSize stands in
	case Struct:
		return k.Size
	case Union:
		max := uint64(0)
		for _, f := range k.Fields {
			if sz := SizeOf(r.ResolveKey(f.Ty), r); sz > max {
				max = sz
			}
		}
		return max
	case Enum:
		return SizeofEnum
	case StructRef:
		if rt, ok := r.ResolveTag(k.Name); ok {
			return SizeOf(rt, r)
		}
		return DefaultSize
	case UnionRef:
		if rt, ok := r.ResolveTag(k.Name); ok {
			return SizeOf(rt, r)
		}
		return DefaultSize
	case EnumRef:
		return SizeofEnum
	default:
		return DefaultSize
	}
}

// AlignOf computes alignof(t) per spec.md §4.8.
func AlignOf(t Type, r Resolver) uint64 {
	switch k := t.Kind.(type) {
	case Void:
		return DefaultAlign
	case Integer, Floating, Pointer:
		return SizeOf(t, r)
	case Array:
		return AlignOf(r.ResolveKey(k.Elem), r)
	case Function:
		return DefaultAlign
	case Struct:
		max := uint64(DefaultAlign)
		for _, f := range k.Fields {
			if a := AlignOf(r.ResolveKey(f.Ty), r); a > max {
				max = a
			}
		}
		return max
	case Union:
		max := uint64(DefaultAlign)
		for _, f := range k.Fields {
			if a := AlignOf(r.ResolveKey(f.Ty), r); a > max {
				max = a
			}
		}
		return max
	case Enum:
		return SizeofEnum
	case StructRef:
		if rt, ok := r.ResolveTag(k.Name); ok {
			return AlignOf(rt, r)
		}
		return DefaultAlign
	case UnionRef:
		if rt, ok := r.ResolveTag(k.Name); ok {
			return AlignOf(rt, r)
		}
		return DefaultAlign
	case EnumRef:
		return SizeofEnum
	default:
		return DefaultAlign
	}
}

// LayoutFields computes byte offsets for a struct's fields in
// declaration order, padding each field to its own alignment and the
// whole record to its own alignment, per spec.md §4.8. Flexible array
// members (an Array field with SizeKind == SizeUnknown in final member
// position) contribute 0 to size but their element alignment still
// participates in the record's alignment.
func LayoutFields(fields []RecordField, r Resolver) (laidOut []RecordField, size uint64) {
	laidOut = make([]RecordField, len(fields))
	var offset uint64
	var structAlign uint64 = DefaultAlign

	for i, f := range fields {
		ft := r.ResolveKey(f.Ty)
		align := AlignOf(ft, r)
		if align > structAlign {
			structAlign = align
		}
		offset = padTo(offset, align)
		laidOut[i] = f
		laidOut[i].Offset = offset

		if arr, ok := ft.Kind.(Array); ok && arr.SizeKind == SizeUnknown && i == len(fields)-1 {
			continue // flexible array member: contributes no size
		}
		offset += SizeOf(ft, r)
	}

	size = padTo(offset, structAlign)
	return laidOut, size
}

func padTo(offset, align uint64) uint64 {
	if align == 0 {
		return offset
	}
	if rem := offset % align; rem != 0 {
		return offset + (align - rem)
	}
	return offset
}
