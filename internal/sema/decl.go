package sema

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/scope"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/types"
)

// ValidateStorageClass checks a storage-class specifier against the
// scope it would apply in (spec.md §4.6: "validate storage class for the
// current scope (e.g., register not at file scope)"). It reports and
// returns false on an invalid combination; the caller should then treat
// the declaration as StorageNone and continue.
func (s *Sema) ValidateStorageClass(storage ast.StorageClass, sp span.Span) bool {
	kind := s.Scope.Current().Kind
	switch storage {
	case ast.StorageRegister, ast.StorageAuto:
		if kind == scope.Global {
			s.Diags.Errorf(sp, errStorageClassInvalid, "%s is not allowed at file scope", storage)
			return false
		}
	case ast.StorageExtern, ast.StorageStatic:
		// Valid at any scope: block-scope extern/static are both legal C,
		// the former referring to a file-scope definition, the latter
		// giving the local object static storage duration.
	}
	return true
}

// InsertDecl validates storage, builds the Decl, inserts it into the
// ordinary-identifier namespace of the current scope, and interns it
// (spec.md §4.6's "declaration insertion"). A name collision in the same
// scope is either tolerated as a compatible extern redeclaration (same
// DeclKind and Ty, either side marked extern), reported as Redefined
// (same DeclKind and Ty, neither extern), or reported as Conflict (the
// DeclKind or Ty differs); InsertDecl always returns a usable DeclKey either way, substituting the
// new declaration on conflict so analysis can continue (spec.md §7).
func (s *Sema) InsertDecl(name ident.Ident, storage ast.StorageClass, kind ast.DeclKind, ty types.TypeKey, sp span.Span) ast.DeclKey {
	s.ValidateStorageClass(storage, sp)

	d := ast.Decl{Storage: storage, Kind: kind, Name: &name, Ty: ty, Span: sp}
	key := s.Ctx.NewDecl(d)

	if prevKey, ok := s.Scope.LookupLocalIdent(name.Sym); ok {
		prev := s.Ctx.Decl(prevKey)
		if compatibleRedecl(prev, d) {
			s.Scope.ReplaceIdent(name.Sym, key)
			return key
		}
		if prev.Kind == d.Kind && prev.Ty == d.Ty {
			s.Diags.Errorf(sp, errRedefined, "redefinition of %q", s.Interner.Name(name.Sym))
		} else {
			s.Diags.Errorf(sp, errConflict, "conflicting declaration of %q", s.Interner.Name(name.Sym))
		}
		s.Scope.ReplaceIdent(name.Sym, key)
		return key
	}

	if err := s.Scope.InsertIdent(name.Sym, key); err != nil {
		s.Diags.Errorf(sp, errRedefined, "redefinition of %q", s.Interner.Name(name.Sym))
	}
	return key
}

// compatibleRedecl reports whether redeclaring prev as next is the
// ordinary C "extern merging" case rather than a real conflict: same
// kind, same type, and at least one of the two carries extern linkage.
func compatibleRedecl(prev, next ast.Decl) bool {
	if prev.Kind != next.Kind || prev.Ty != next.Ty {
		return false
	}
	return prev.Storage == ast.StorageExtern || next.Storage == ast.StorageExtern
}

// DeclareTag inserts name into the tag namespace of the current scope as
// a forward reference (e.g. `struct node;`, or the opening of `struct
// node { ... }` before its fields are known), so self-referential member
// types can resolve the tag immediately via a *Ref type. FinalizeTag
// later overwrites this placeholder Decl with the complete type.
func (s *Sema) DeclareTag(name ident.Ident, kind ast.DeclKind, sp span.Span) ast.DeclKey {
	d := ast.Decl{Kind: kind, Name: &name, Ty: types.InvalidType, Span: sp}
	key := s.Ctx.NewDecl(d)
	if prevKey, ok := s.Scope.LookupLocalTag(name.Sym); ok {
		return prevKey // already forward-declared in this scope; reuse it
	}
	if err := s.Scope.InsertTag(name.Sym, key); err != nil {
		s.Diags.Errorf(sp, errRedefined, "redefinition of tag %q", s.Interner.Name(name.Sym))
	}
	return key
}

// FinalizeTag patches the placeholder Decl DeclareTag returned with its
// now-complete type.
func (s *Sema) FinalizeTag(key ast.DeclKey, ty types.TypeKey) {
	d := s.Ctx.Decl(key)
	d.Ty = ty
	s.Ctx.SetDecl(key, d)
}

// FinalizeEnum interns an Enum type from its accumulated enumerators and
// inserts each enumerator as an ordinary identifier in the enclosing
// scope — spec.md §4.4: "enum specifiers collect enumerators into the
// enclosing scope as ordinary identifiers and the tag into the tag
// namespace".
func (s *Sema) FinalizeEnum(name *ident.Ident, enumerators []types.EnumField) types.TypeKey {
	ty := s.Ctx.InternType(types.Type{Kind: types.Enum{Name: name, Enumerators: enumerators}})
	for _, e := range enumerators {
		d := ast.Decl{Kind: ast.DeclEnumerator, Name: &e.Name, Ty: s.Ctx.InternType(types.Type{Kind: types.Integer{Signed: true, Size: types.Int}}), EnumValue: e.Value, Span: e.Name.Span}
		key := s.Ctx.NewDecl(d)
		if err := s.Scope.InsertIdent(e.Name.Sym, key); err != nil {
			s.Diags.Errorf(e.Name.Span, errRedefined, "redefinition of %q", s.Interner.Name(e.Name.Sym))
		}
	}
	return ty
}
