package sema

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/types"
)

// These Diagnostic.Kind values classify a semantic error, mirroring
// spec.md §7's taxonomy so the driver can branch on it without parsing
// Diagnostic.Message.
const (
	errUndefined            = "sema/undefined"
	errRedefined            = "sema/redefined"
	errConflict             = "sema/conflict"
	errRedefinedLabel       = "sema/redefined-label"
	errUndefinedLabel       = "sema/undefined-label"
	errRestrictNonPointer   = "sema/restrict-on-non-pointer"
	errIllegalTypeSpec      = "sema/illegal-type-specifier"
	errStorageClassInvalid  = "sema/invalid-storage-class"
)

// CombineTypeSpec folds one more type-specifier keyword into the
// DeclSpec being built, one call per keyword the parser consumes in a
// declaration's specifier list. On an illegal combination (`long
// float`), it reports errIllegalTypeSpec and leaves the running state
// unchanged, so a malformed specifier list does not cascade into bogus
// downstream errors.
func (s *Sema) CombineTypeSpec(spec *ast.DeclSpec, next types.TypeSpecState, sp span.Span) {
	combined, ok := spec.Spec.Combine(next)
	if !ok {
		s.Diags.Errorf(sp, errIllegalTypeSpec, "cannot combine %s with %s", spec.Spec, next)
		return
	}
	spec.Spec = combined
}

// baseType resolves a finished DeclSpec to a TypeKey, step 1 of
// declarator lowering (spec.md §4.6): seed the base type from the
// accumulated TypeSpecState, or from the already-resolved
// typedef/record/enum reference the parser recorded directly on the
// DeclSpec while parsing its type-specifier(s).
func (s *Sema) baseType(spec ast.DeclSpec) types.TypeKey {
	switch spec.Spec {
	case types.SpecTypeName:
		declKey, ok := s.Scope.LookupChainIdent(spec.TypeName.Sym)
		if !ok {
			s.Diags.Errorf(spec.TypeName.Span, errUndefined, "undeclared type name %q", s.Interner.Name(spec.TypeName.Sym))
			return s.Ctx.InternType(types.Type{Kind: types.Unknown{}})
		}
		return s.Ctx.Decl(declKey).Ty

	case types.SpecRecord:
		return spec.RecordType

	case types.SpecEnum:
		if spec.RecordType != types.InvalidType {
			return spec.RecordType
		}
		return s.Ctx.InternType(types.Type{Qual: spec.Qual, Kind: types.EnumRef{Name: spec.EnumTagName}})

	default:
		qual := spec.Qual
		if qual.Restrict {
			s.Diags.Errorf(spec.Span, errRestrictNonPointer, "restrict requires a pointer type")
			qual.Restrict = false
		}
		kind := spec.Spec.Resolve(spec.Signed, spec.Unsigned)
		return s.Ctx.InternType(types.Type{Qual: qual, Kind: kind})
	}
}

// LowerDeclarator builds the canonical Type for one parsed Declarator,
// walking its chunks from innermost to outermost (spec.md §4.6 step 2)
// and rejecting restrict on a non-pointer target (step 3). Chunks are
// recorded by the parser in the same inside-out order they are applied
// here: the first chunk in d.Chunks wraps the base type directly, and
// each subsequent chunk wraps the previous result.
func (s *Sema) LowerDeclarator(d ast.Declarator) types.TypeKey {
	cur := s.baseType(d.Spec)

	for _, chunk := range d.Chunks {
		switch chunk.Kind {
		case ast.ChunkParen:
			// Grouping only; does not affect the type (spec.md §4.6).

		case ast.ChunkPointer:
			cur = s.ctxInternQualified(chunk.Qual, types.Pointer{Elem: cur})

		case ast.ChunkArray:
			if chunk.Qual.Restrict {
				s.Diags.Errorf(chunk.Span, errRestrictNonPointer, "restrict requires a pointer type")
				chunk.Qual.Restrict = false
			}
			arr := types.Array{Elem: cur, SizeKind: chunk.ArraySize.Kind, Fixed: chunk.ArraySize.Fixed, VLAExpr: int32(chunk.ArraySize.VLA)}
			cur = s.Ctx.InternType(types.Type{Kind: arr})

		case ast.ChunkFunction:
			params := make([]types.TypeKey, len(chunk.Params))
			for i, p := range chunk.Params {
				params[i] = s.LowerDeclarator(ast.Declarator{Spec: p.Spec, Chunks: p.Chunks, Span: p.Span})
			}
			fn := types.Function{Ret: cur, Params: params, Variadic: chunk.Variadic}
			cur = s.Ctx.InternType(types.Type{Kind: fn})
		}
	}

	return cur
}

// ctxInternQualified interns kind with qual, and, if qual.Restrict is set
// on anything but a Pointer, rejects it per spec.md §4.6 step 3 and
// interns the unqualified form instead. Pointer is the only TypeKind
// LowerDeclarator ever calls this with, so the check is defensive, not
// load-bearing — but spec.md §8 states the invariant as a property of
// every Type value in the system, not just ones built one particular
// way, so it is enforced at the single choke point that constructs
// qualified pointers.
func (s *Sema) ctxInternQualified(qual types.Qualifier, kind types.TypeKind) types.TypeKey {
	if _, isPointer := kind.(types.Pointer); !isPointer && qual.Restrict {
		qual.Restrict = false
	}
	return s.Ctx.InternType(types.Type{Qual: qual, Kind: kind})
}

// FinalizeRecord computes field offsets and total size for a struct or
// union body just closed by `}` (spec.md §4.6's "record finalization"),
// interns the resulting Type, and returns its key. isUnion selects Union
// layout (offset 0, size = max field size) over Struct layout (fields
// laid out in order with padding). name is nil for an anonymous
// struct/union.
func (s *Sema) FinalizeRecord(name *ident.Ident, fields []types.RecordField, isUnion bool) types.TypeKey {
	laidOut, size := types.LayoutFields(fields, s)
	if isUnion {
		for i := range laidOut {
			laidOut[i].Offset = 0
		}
		return s.Ctx.InternType(types.Type{Kind: types.Union{Name: name, Fields: laidOut}})
	}
	return s.Ctx.InternType(types.Type{Kind: types.Struct{Name: name, Fields: laidOut, Size: size}})
}
