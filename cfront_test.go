package cfront_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/types"

	"github.com/anishon/cfront"
)

func ExampleCompile() {
	r := cfront.Compile([]byte("int add(int a, int b) { return a + b; }"))
	fmt.Println("decls:", len(r.Unit.Decls), "hadError:", r.HadError)
	// Output:
	// decls: 1 hadError: false
}

func TestCompile_TypedefLexerHack(t *testing.T) {
	// `foo` only becomes a TYPE_NAME once its typedef has been declared;
	// the declaration of `foo bar;` must see it as a type, not an Ident.
	src := `
		typedef int foo;
		foo bar;
	`
	r := cfront.Compile([]byte(src))
	require.False(t, r.HadError, "%+v", r.Diagnostics)
	require.Len(t, r.Unit.Decls, 2)
}

func TestCompile_DeclaratorComposition(t *testing.T) {
	// int (*fp[10])(char): fp is an array of 10 pointers to a function
	// taking char and returning int.
	src := `int (*fp[10])(char);`
	r := cfront.Compile([]byte(src))
	require.False(t, r.HadError, "%+v", r.Diagnostics)
	require.Len(t, r.Unit.Decls, 1)

	group, ok := r.Unit.Decls[0].Kind.(ast.DeclGroup)
	require.True(t, ok)
	require.Len(t, group.Decls, 1)

	decl := r.Ctx.Decl(group.Decls[0])
	ty := r.Ctx.Type(decl.Ty)
	arr, ok := ty.Kind.(types.Array)
	require.True(t, ok, "expected array, got %T", ty.Kind)
	assert.Equal(t, types.SizeFixed, arr.SizeKind)
	assert.Equal(t, uint64(10), arr.Fixed)

	elemTy := r.Ctx.Type(arr.Elem)
	ptr, ok := elemTy.Kind.(types.Pointer)
	require.True(t, ok, "expected pointer, got %T", elemTy.Kind)

	fnTy := r.Ctx.Type(ptr.Elem)
	fn, ok := fnTy.Kind.(types.Function)
	require.True(t, ok, "expected function, got %T", fnTy.Kind)
	assert.Len(t, fn.Params, 1)
}

func TestCompile_RedefinitionDiagnostic(t *testing.T) {
	src := `
		int x;
		int x;
	`
	r := cfront.Compile([]byte(src))
	require.True(t, r.HadError)

	var found bool
	for _, d := range r.Diagnostics {
		if d.Kind == "sema/redefined" {
			found = true
		}
	}
	assert.True(t, found, "expected a sema/redefined diagnostic, got %+v", r.Diagnostics)
}

func TestCompile_NestedScopeShadowing(t *testing.T) {
	src := `
		int f(void) {
			int x;
			{
				int x;
			}
			return x;
		}
	`
	r := cfront.Compile([]byte(src))
	assert.False(t, r.HadError, "%+v", r.Diagnostics)
}

func TestCompile_StructRecursionThroughPointer(t *testing.T) {
	src := `
		struct node {
			int value;
			struct node *next;
		};
	`
	r := cfront.Compile([]byte(src))
	require.False(t, r.HadError, "%+v", r.Diagnostics)
}

func TestCompile_ArrayToPointerDecay(t *testing.T) {
	src := `
		void f(void) {
			int a[10];
			int *p;
			p = a;
		}
	`
	r := cfront.Compile([]byte(src))
	assert.False(t, r.HadError, "%+v", r.Diagnostics)
}

func TestCompile_SequentialAndParallelAgree(t *testing.T) {
	src := `
		typedef struct point { int x, y; } point;
		point origin;
		int scale(point *p, int factor) {
			return p->x * factor;
		}
	`
	seq := cfront.CompileSequential([]byte(src))
	par := cfront.Compile([]byte(src))

	require.False(t, seq.HadError, "%+v", seq.Diagnostics)
	require.False(t, par.HadError, "%+v", par.Diagnostics)
	assert.Equal(t, len(seq.Unit.Decls), len(par.Unit.Decls))
}

func TestCompile_GotoToUndeclaredLabel(t *testing.T) {
	src := `
		void f(void) {
			goto nowhere;
		}
	`
	r := cfront.Compile([]byte(src))
	require.True(t, r.HadError)

	var found bool
	for _, d := range r.Diagnostics {
		if d.Kind == "sema/undefined-label" {
			found = true
		}
	}
	assert.True(t, found, "expected a sema/undefined-label diagnostic, got %+v", r.Diagnostics)
}

func TestSizeOf_Scalars(t *testing.T) {
	r := cfront.Compile([]byte(`int x; char c; long l;`))
	require.False(t, r.HadError, "%+v", r.Diagnostics)

	group := r.Unit.Decls[0].Kind.(ast.DeclGroup)
	decl := r.Ctx.Decl(group.Decls[0])
	assert.Equal(t, uint64(4), cfront.SizeOf(&r, decl.Ty))
}
