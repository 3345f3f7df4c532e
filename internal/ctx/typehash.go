package ctx

import (
	"fmt"

	"github.com/anishon/cfront/internal/types"
)

// typeHashKey is a comparable value usable as a Go map key, standing in
// for one non-record Type's full structural shape. Function holds a
// slice and can't be a map key directly, so every variant's fields are
// rendered to the shape string alongside the Qualifier.
type typeHashKey struct {
	qual  types.Qualifier
	shape string
}

// hashType renders t to a typeHashKey. StructRef/UnionRef/EnumRef are
// keyed by tag name. It returns ok == false for Enum, Unknown, and every
// kind not listed (Struct/Union included), which are never deduplicated.
func hashType(t types.Type) (typeHashKey, bool) {
	switch k := t.Kind.(type) {
	case types.Void:
		return typeHashKey{t.Qual, "void"}, true
	case types.Integer:
		return typeHashKey{t.Qual, fmt.Sprintf("int:%v:%v", k.Signed, k.Size)}, true
	case types.Floating:
		return typeHashKey{t.Qual, fmt.Sprintf("float:%v", k.Size)}, true
	case types.Pointer:
		return typeHashKey{t.Qual, fmt.Sprintf("ptr:%d", k.Elem)}, true
	case types.Array:
		return typeHashKey{t.Qual, fmt.Sprintf("arr:%d:%d:%d:%d", k.Elem, k.SizeKind, k.Fixed, k.VLAExpr)}, true
	case types.Function:
		return typeHashKey{t.Qual, fmt.Sprintf("fn:%d:%v:%v", k.Ret, k.Params, k.Variadic)}, true
	case types.Enum:
		return typeHashKey{}, false // Enum carries a slice of EnumField and is finalized once per tag; treat like records
	case types.StructRef:
		return typeHashKey{t.Qual, "struct-ref:" + k.Name}, true
	case types.UnionRef:
		return typeHashKey{t.Qual, "union-ref:" + k.Name}, true
	case types.EnumRef:
		return typeHashKey{t.Qual, "enum-ref:" + k.Name}, true
	case types.Unknown:
		return typeHashKey{}, false // never dedup Unknown; each arises from an independent error
	default:
		return typeHashKey{}, false
	}
}
