package cparse

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/expr"
)

// stringKey identifies a string literal's storage object by its exact
// byte content, so two occurrences of the same text -- even across
// separate calls -- share one definition, per §4.7/§6's string-decl
// operation. The key is exactly the bytes the caller passes: the lexer's
// StringLit tokens carry the raw source spelling (quotes and escapes
// included), so no decoding or adjacent-literal folding happens here.
type stringKey string

// StringDecl returns the declaration for data's storage, creating and
// emitting it on the first occurrence of this exact text and reusing the
// existing declaration on every later one. Mirrors decl.c's stringdecl,
// whose hash table serves the identical purpose with a different data
// structure.
func (p *Processor) StringDecl(data string) *cscope.Declaration {
	key := stringKey(data)
	if d, ok := p.strings[key]; ok {
		return d
	}

	length := int64(len(data)) + 1 // include the trailing NUL, per 6.4.5/5
	arr, err := p.Builder.MakeArray(p.Builder.TChar, length)
	if err != nil {
		// A string literal long enough to overflow array arithmetic is not a
		// realistic input; treat it the same as any other array overflow.
		panic(err)
	}

	name := p.Mangler.StringLiteral()
	d := &cscope.Declaration{
		Name:    name,
		Kind:    cscope.KindObject,
		Type:    arr,
		Linkage: cscope.LinkageInternal,
		Defined: true,
	}
	p.strings[key] = d

	elems := make([]*expr.Initializer, length)
	for i := 0; i < len(data); i++ {
		elems[i] = &expr.Initializer{Type: p.Builder.TChar, Scalar: uint64(data[i])}
	}
	elems[len(data)] = &expr.Initializer{Type: p.Builder.TChar, Scalar: 0}
	init := &expr.Initializer{Type: arr, Elems: elems}

	p.Backend.EmitData(d, init)
	return d
}
