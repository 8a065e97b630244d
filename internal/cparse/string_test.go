package cparse

import (
	"testing"

	"github.com/cfront/cdecl/internal/cscope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringDeclDeduplicatesIdenticalText(t *testing.T) {
	p, rec := newTestProcessor(t)
	a := p.StringDecl("hello")
	b := p.StringDecl("hello")
	assert.Same(t, a, b)
	require.Len(t, rec.Data, 1, "a repeated literal must not re-emit its storage")
}

func TestStringDeclDistinctTextGetsDistinctStorage(t *testing.T) {
	p, rec := newTestProcessor(t)
	a := p.StringDecl("hello")
	b := p.StringDecl("world")
	assert.NotEqual(t, a.Name, b.Name)
	require.Len(t, rec.Data, 2)
}

func TestStringDeclIncludesTrailingNul(t *testing.T) {
	p, _ := newTestProcessor(t)
	d := p.StringDecl("hi")
	require.Equal(t, int64(3), d.Type.Size())
}

func TestStringDeclHasInternalLinkageAndIsDefined(t *testing.T) {
	p, _ := newTestProcessor(t)
	d := p.StringDecl("x")
	require.True(t, d.Defined)
	require.Equal(t, cscope.LinkageInternal, d.Linkage)
	require.NotEmpty(t, d.Name)
}
