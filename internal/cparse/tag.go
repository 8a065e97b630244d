package cparse

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/token"
)

// tagKind distinguishes which of the three tag namespaces (struct, union,
// enum) a tagSpec call is parsing; struct and union share ctype.Struct
// (IsUnion tells them apart), enum gets its own ctype.Enum.
type tagKind int

const (
	tagStruct tagKind = iota
	tagUnion
	tagEnum
)

func tagKindOf(t ctype.Type) (tagKind, bool) {
	switch v := t.(type) {
	case *ctype.Struct:
		if v.IsUnion {
			return tagUnion, true
		}
		return tagStruct, true
	case *ctype.Enum:
		return tagEnum, true
	default:
		return 0, false
	}
}

func isIncompleteTag(t ctype.Type) bool {
	switch v := t.(type) {
	case *ctype.Struct:
		return v.Incomplete
	case *ctype.Enum:
		return v.Incomplete
	default:
		return false
	}
}

// tagSpec parses a struct-or-union-specifier or enum-specifier: the
// keyword, an optional tag, and an optional body. A tag with no body is a
// forward reference or a plain use of a previously declared tag; 6.7.2.3
// governs where a new tag it introduces is visible -- file scope always
// installs a new incomplete tag immediately, but a tag used (without a
// body) inside a block scope that doesn't already have it searches
// enclosing scopes first, so "struct foo *p;" inside a function refers
// to an outer struct foo if one exists rather than shadowing it.
func (p *Processor) tagSpec(cur *lexer.Cursor, scope *cscope.Scope) ctype.Type {
	var kind tagKind
	switch cur.Tok().Kind {
	case token.KwStruct:
		kind = tagStruct
	case token.KwUnion:
		kind = tagUnion
	case token.KwEnum:
		kind = tagEnum
	}
	cur.Advance()

	var tag string
	var existing ctype.Type
	switch {
	case cur.Tok().Kind == token.Ident:
		tag = cur.Tok().Lit
		cur.Advance()
		existing, _ = scope.LookupTag(tag, false)
		if existing == nil && !scope.IsFileScope() && cur.Tok().Kind != token.LBrace {
			existing, _ = scope.LookupTag(tag, true)
		}
	case cur.Tok().Kind != token.LBrace:
		raiseAt(cur, diagnostic.CodeUnexpectedToken, "6.7.2.3", "expected a tag or '{' after struct/union/enum")
	}

	t := existing
	if t != nil {
		if k, ok := tagKindOf(t); !ok || k != kind {
			raiseAt(cur, diagnostic.CodeDuplicateTag, "6.7.2.3", "%q was declared as a different kind of tag", tag)
		}
	} else {
		t = p.makeTag(kind, tag)
		if tag != "" {
			scope.InstallTag(tag, t)
		}
	}

	if cur.Tok().Kind != token.LBrace {
		return t
	}
	if !isIncompleteTag(t) {
		raiseAt(cur, diagnostic.CodeDuplicateTag, "6.7.2.3", "redefinition of %q", tag)
	}
	cur.Advance()

	switch kind {
	case tagStruct, tagUnion:
		p.structBody(cur, scope, t.(*ctype.Struct))
	case tagEnum:
		p.enumBody(cur, scope, t.(*ctype.Enum))
	}
	return t
}

func (p *Processor) makeTag(kind tagKind, tag string) ctype.Type {
	switch kind {
	case tagUnion:
		return p.Builder.MakeUnion(tag)
	case tagEnum:
		return p.Builder.MakeEnum(tag)
	default:
		return p.Builder.MakeStruct(tag)
	}
}

// structBody parses a brace-enclosed member-declaration-list and finishes
// the layout by rounding the overall size up to the structure's
// alignment, per 6.7.2.1/17 ("the size ... is an integer multiple of
// ... alignment").
func (p *Processor) structBody(cur *lexer.Cursor, scope *cscope.Scope, t *ctype.Struct) {
	for cur.Tok().Kind != token.RBrace {
		p.structDeclaration(cur, scope, t)
	}
	cur.Advance()
	if t.ByteAlign > 0 {
		t.ByteSize = alignUp(t.ByteSize, t.ByteAlign)
	}
	t.Incomplete = false
}

// structDeclaration parses one member-declaration: shared specifiers
// followed by one or more member-declarators, or (with no declarator at
// all) an anonymous struct/union member, the sole case 6.7.2.1/13 allows
// a member-declaration to introduce no name of its own -- it must be an
// untagged struct or union, and its own members splice into the
// enclosing type's namespace at member-reference time (not handled here;
// ctype.Struct.MemberByName does not search anonymous members either).
func (p *Processor) structDeclaration(cur *lexer.Cursor, scope *cscope.Scope, t *ctype.Struct) {
	var align int64
	base := p.declSpecs(cur, scope, nil, nil, &align)
	if base == nil {
		raiseAt(cur, diagnostic.CodeMissingTypeSpecifier, "6.7.2.1", "a type specifier is required in a member declaration")
	}

	if cur.Tok().Kind == token.Semicolon {
		inner, _ := ctype.Unqualify(base)
		st, ok := inner.(*ctype.Struct)
		if !ok || st.Tag != "" {
			raiseAt(cur, diagnostic.CodeInvalidAnonymousMember, "6.7.2.1", "a member declaration must declare at least one member")
		}
		cur.Advance()
		p.addMember(t, base, "", align)
		return
	}

	for {
		chain, name := p.declaratorChain(cur, scope, false)
		mt := chain(base)
		if arr, ok := mt.(*ctype.Array); ok && arr.Incomplete {
			raiseAt(cur, diagnostic.CodeIncompleteMemberType, "6.7.2.1", "member %q has incomplete array type", name)
		}
		p.addMember(t, mt, name, align)
		if cur.Tok().Kind != token.Comma {
			break
		}
		cur.Advance()
	}
	p.expect(cur, token.Semicolon, "after member declarator")
}

// addMember appends one member to t, rounding the current running offset
// up to the member's alignment (or the declaration's explicit _Alignas,
// if stricter) and growing t's own size/alignment to match, per
// 6.7.2.1/15's informative layout algorithm. A union's members all share
// offset 0, and its size is the widest member's rather than a sum.
func (p *Processor) addMember(t *ctype.Struct, mt ctype.Type, name string, align int64) {
	a := mt.Align()
	if align > a {
		a = align
	}
	m := ctype.Member{Name: name, Type: mt}
	if t.IsUnion {
		m.Offset = 0
		if mt.Size() > t.ByteSize {
			t.ByteSize = mt.Size()
		}
	} else {
		t.ByteSize = alignUp(t.ByteSize, a)
		m.Offset = t.ByteSize
		t.ByteSize += mt.Size()
	}
	if a > t.ByteAlign {
		t.ByteAlign = a
	}
	t.Members = append(t.Members, m)
}

// alignUp rounds n up to the next multiple of a (a assumed a power of
// two, as every C alignment is).
func alignUp(n, a int64) int64 {
	if a <= 1 {
		return n
	}
	return (n + a - 1) &^ (a - 1)
}

// enumBody parses a brace-enclosed enumerator-list, installing each
// enumeration constant into scope with successive values starting at 0
// (or continuing from an explicit "= expr" per 6.7.2.2/3).
func (p *Processor) enumBody(cur *lexer.Cursor, scope *cscope.Scope, t *ctype.Enum) {
	var next uint64
	for cur.Tok().Kind == token.Ident {
		name := cur.Tok().Lit
		cur.Advance()
		if cur.Tok().Kind == token.Assign {
			cur.Advance()
			next = p.Expr.IntConstExpr(cur, scope)
		}
		scope.InstallDecl(name, &cscope.Declaration{
			Name:  name,
			Kind:  cscope.KindEnumConstant,
			Type:  p.Builder.TInt,
			Value: next,
		})
		next++
		if cur.Tok().Kind != token.Comma {
			break
		}
		cur.Advance()
		if cur.Tok().Kind == token.RBrace {
			break
		}
	}
	p.expect(cur, token.RBrace, "to close enum specifier")
	t.Incomplete = false
}
