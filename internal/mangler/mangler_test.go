package mangler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousNamesAreUniquePerPrefix(t *testing.T) {
	m := New()
	first := m.Anonymous("struct")
	second := m.Anonymous("struct")
	require.NotEqual(t, first, second)
	assert.Equal(t, "struct.0", first)
	assert.Equal(t, "struct.1", second)
}

func TestAnonymousCountersAreIndependentAcrossPrefixes(t *testing.T) {
	m := New()
	s := m.Anonymous("struct")
	u := m.Anonymous("union")
	assert.Equal(t, "struct.0", s)
	assert.Equal(t, "union.0", u)
}

func TestStaticLocalQualifiesByFunction(t *testing.T) {
	m := New()
	a := m.StaticLocal("f", "count")
	b := m.StaticLocal("g", "count")
	assert.NotEqual(t, a, b, "statics named \"count\" in different functions must not collide")
}

func TestStringLiteralNamesAreSequential(t *testing.T) {
	m := New()
	names := make(map[string]bool)
	for i := 0; i < 5; i++ {
		name := m.StringLiteral()
		require.False(t, names[name], "duplicate name %q", name)
		names[name] = true
	}
}
