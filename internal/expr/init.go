package expr

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/token"
)

// Initializer is the structured tree ParseInit produces: either a single
// scalar expression's constant value, or a braced list of sub-initializers
// for an aggregate (array/struct/union). It is deliberately flat rather
// than a full AST, since the declaration processor only needs the
// resulting shape (to mark empty-array lengths complete) and the final
// constant payload to hand the back-end.
type Initializer struct {
	Type     ctype.Type
	Scalar   uint64     // valid when Elems == nil
	Elems    []*Initializer
}

// ParseInit consumes a brace-enclosed or scalar initializer for a value of
// type t, implementing just enough of 6.7.9 to support the end-to-end
// scenarios §8 names: scalar initializers, braced aggregate initializers,
// and length inference for an array declared with an empty bound ("int
// a[] = {1,2,3};").
func (p *Parser) ParseInit(cur *lexer.Cursor, scope *cscope.Scope, t ctype.Type) *Initializer {
	if cur.Tok().Kind == token.LBrace {
		cur.Advance()
		var elems []*Initializer
		elemType := elementType(t)
		for cur.Tok().Kind != token.RBrace {
			elems = append(elems, p.ParseInit(cur, scope, elemType))
			if cur.Tok().Kind != token.Comma {
				break
			}
			cur.Advance()
		}
		p.expect(cur, token.RBrace, "to close brace initializer")
		return &Initializer{Type: t, Elems: elems}
	}
	v := p.IntConstExpr(cur, scope)
	return &Initializer{Type: t, Scalar: v}
}

// elementType returns the type each brace-initializer element should be
// parsed against: an array's element type, or (for scalars and structs
// this minimal evaluator does not destructure per-member) t itself.
func elementType(t ctype.Type) ctype.Type {
	inner, _ := ctype.Unqualify(t)
	if arr, ok := inner.(*ctype.Array); ok {
		return arr.Base
	}
	return t
}

// InferredLength returns the number of top-level elements of a brace
// initializer, for completing an array declared with an empty bound.
func (init *Initializer) InferredLength() int64 {
	return int64(len(init.Elems))
}
