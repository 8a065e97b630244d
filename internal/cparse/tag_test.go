package cparse

import (
	"testing"

	"github.com/cfront/cdecl/internal/ctype"
	"github.com/stretchr/testify/require"
)

func TestStructLayoutOffsetsAndPadding(t *testing.T) {
	// struct { char c; int i; }: c at 0, padding to 4, i at 4, size 8.
	p, _ := newTestProcessor(t)
	diag := translate(p, "struct s { char c; int i; } v;")
	mustNotDiagnose(t, diag)
	st, ok := declType(t, p, "v").(*ctype.Struct)
	require.True(t, ok)
	require.Equal(t, int64(0), st.Members[0].Offset)
	require.Equal(t, int64(4), st.Members[1].Offset)
	require.Equal(t, int64(8), st.ByteSize)
	require.Equal(t, int64(4), st.ByteAlign)
}

func TestUnionMembersShareOffsetZero(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "union u { char c; int i; } v;")
	mustNotDiagnose(t, diag)
	st, ok := declType(t, p, "v").(*ctype.Struct)
	require.True(t, ok)
	require.True(t, st.IsUnion)
	for _, m := range st.Members {
		require.Equal(t, int64(0), m.Offset)
	}
	require.Equal(t, int64(4), st.ByteSize)
}

func TestStructSizeRoundsUpToAlignment(t *testing.T) {
	// struct { int i; char c; }: i at 0 (size 4), c at 4 (size 1) -> raw
	// size 5, rounded up to the struct's own 4-byte alignment -> 8.
	p, _ := newTestProcessor(t)
	diag := translate(p, "struct s { int i; char c; } v;")
	mustNotDiagnose(t, diag)
	st := declType(t, p, "v").(*ctype.Struct)
	require.Equal(t, int64(8), st.ByteSize)
}

func TestAnonymousStructMember(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "struct s { struct { int x; }; int y; } v;")
	mustNotDiagnose(t, diag)
	st := declType(t, p, "v").(*ctype.Struct)
	require.Len(t, st.Members, 2)
	require.Equal(t, "", st.Members[0].Name)
	require.Equal(t, "y", st.Members[1].Name)
}

func TestForwardTagReferenceThenDefinition(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "struct s; struct s *p; struct s { int x; };")
	mustNotDiagnose(t, diag)
	tag, _ := p.FileScope.LookupTag("s", false)
	st, ok := tag.(*ctype.Struct)
	require.True(t, ok)
	require.False(t, st.Incomplete)
	require.Len(t, st.Members, 1)
}

func TestRedefiningACompleteTagIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "struct s { int x; }; struct s { int y; };")
	require.NotNil(t, diag)
}

func TestTagDeclaredAsDifferentKindIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "struct s { int x; }; union s *p;")
	require.NotNil(t, diag)
}

func TestEnumConstantsGetSuccessiveValues(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "enum color { red, green, blue = 5, violet };")
	mustNotDiagnose(t, diag)
	for name, want := range map[string]uint64{"red": 0, "green": 1, "blue": 5, "violet": 6} {
		d, _ := p.FileScope.LookupDecl(name, false)
		require.NotNil(t, d, name)
		require.Equal(t, want, d.Value, name)
	}
}

func TestIncompleteArrayMemberIsAnError(t *testing.T) {
	p, _ := newTestProcessor(t)
	diag := translate(p, "struct s { int a[]; int x; };")
	require.NotNil(t, diag)
}
