package cparse

import (
	"testing"

	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/stretchr/testify/require"
)

func TestTentativeDefinitionEmittedAtFlush(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "int x;")
	mustNotDiagnose(t, diag)
	require.Len(t, rec.Data, 1)
	require.Equal(t, "x", rec.Data[0].Decl.Name)
}

func TestDefinedObjectEmittedImmediatelyNotTentative(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "int x = 5;")
	mustNotDiagnose(t, diag)
	require.Len(t, rec.Data, 1)
	require.Equal(t, uint64(5), rec.Data[0].Init.Scalar)
}

func TestExternDeclarationAloneIsNotTentative(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "extern int x;")
	mustNotDiagnose(t, diag)
	require.Empty(t, rec.Data)
}

func TestMultipleTentativeDeclarationsCollapseToOneEmission(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "int x; int x;")
	mustNotDiagnose(t, diag)
	require.Len(t, rec.Data, 1)
}

func TestTentativeThenDefinedEmitsOnlyTheDefinition(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "int x; int x = 3;")
	mustNotDiagnose(t, diag)
	require.Len(t, rec.Data, 1)
	require.Equal(t, uint64(3), rec.Data[0].Init.Scalar)
}

func TestStaticFileScopeHasInternalLinkage(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "static int x;")
	mustNotDiagnose(t, diag)
	d, _ := p.FileScope.LookupDecl("x", false)
	require.Equal(t, cscope.LinkageInternal, d.Linkage)
}

func TestPlainFileScopeHasExternalLinkage(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "int x;")
	mustNotDiagnose(t, diag)
	d, _ := p.FileScope.LookupDecl("x", false)
	require.Equal(t, cscope.LinkageExternal, d.Linkage)
}

func TestConflictingLinkageRedeclarationIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "static int x; int x;")
	require.NotNil(t, diag)
	require.Equal(t, "6.2.2", diag.ClauseRef)
}

func TestMultipleDefinitionsIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "int x = 1; int x = 2;")
	require.NotNil(t, diag)
}

func TestTypedefInstallsTypedefName(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "typedef unsigned long size_t; size_t n;")
	mustNotDiagnose(t, diag)
	require.True(t, p.FileScope.IsTypedefName("size_t"))
	require.Equal(t, "unsigned long", declType(t, p, "n").String())
}

func TestFunctionDefinitionEmitsFunction(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "int main(void) { return 0; }")
	mustNotDiagnose(t, diag)
	require.Len(t, rec.Funcs, 1)
	require.Equal(t, "main", rec.Funcs[0].Func.Name)
	require.True(t, rec.Funcs[0].IsExternal)
}

func TestStaticFunctionDefinitionIsNotExternal(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "static int helper(void) { return 0; }")
	mustNotDiagnose(t, diag)
	require.Len(t, rec.Funcs, 1)
	require.False(t, rec.Funcs[0].IsExternal)
}

func TestFunctionDeclarationWithoutBodyDoesNotEmit(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "int helper(void);")
	mustNotDiagnose(t, diag)
	require.Empty(t, rec.Funcs)
	d, _ := p.FileScope.LookupDecl("helper", false)
	require.NotNil(t, d)
	require.False(t, d.Defined)
}

func TestFileScopeAutoStorageIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "auto int x;")
	require.NotNil(t, diag)
}

func TestStaticAssertPassesSilently(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, `_Static_assert(1, "always true");`)
	mustNotDiagnose(t, diag)
}

func TestStaticAssertFailureIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, `_Static_assert(0, "never true");`)
	require.NotNil(t, diag)
}

func TestTypedefRedeclarationWithSameTypeIsAccepted(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "typedef int T; typedef int T;")
	mustNotDiagnose(t, diag)
}

func TestTypedefRedeclarationWithDifferentTypeIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "typedef int T; typedef char T;")
	require.NotNil(t, diag)
}

func TestTypedefRedeclaredAsObjectIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "typedef int T; int T;")
	require.NotNil(t, diag)
}

func TestIncompatibleObjectRedeclarationIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "int f; char f;")
	require.NotNil(t, diag)
}

func TestCompatibleArrayRedeclarationKeepsKnownLength(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "int a[10]; extern int a[];")
	mustNotDiagnose(t, diag)
	arr, ok := declType(t, p, "a").(*ctype.Array)
	require.True(t, ok)
	require.False(t, arr.Incomplete)
	require.Equal(t, int64(10), arr.Length)
}

func TestBlockScopeRedeclarationWithNoLinkageIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "void f(void) { int x; int x; }")
	require.NotNil(t, diag)
}

func TestStaticThenExternInheritsInternalLinkage(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "static int x; extern int x;")
	mustNotDiagnose(t, diag)
	d, _ := p.FileScope.LookupDecl("x", false)
	require.Equal(t, cscope.LinkageInternal, d.Linkage)
}

func TestFunctionRedeclarationComposesPrototype(t *testing.T) {
	p, rec := newTestProcessor(t)
	diag := translate(p, "typedef int T; T f(T); int f(int x) { return x; }")
	mustNotDiagnose(t, diag)
	require.Len(t, rec.Funcs, 1)
	fn, ok := declType(t, p, "f").(*ctype.Function)
	require.True(t, ok)
	require.True(t, fn.IsPrototype)
	require.Equal(t, "int", fn.Return.String())
	require.Len(t, fn.Params, 1)
	require.Equal(t, "int", fn.Params[0].Type.String())
}

func TestIncompatibleFunctionRedeclarationIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "int f(int x); int f(char x) { return x; }")
	require.NotNil(t, diag)
}

func TestArrayCompletedFromInitializerLength(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "int a[] = {1, 2, 3};")
	mustNotDiagnose(t, diag)
	arr, ok := declType(t, p, "a").(*ctype.Array)
	require.True(t, ok)
	require.False(t, arr.Incomplete)
	require.Equal(t, int64(3), arr.Length)
}
