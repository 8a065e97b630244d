package cparse

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/token"
)

// typeChain is a function that, given the declaration's base type (the
// type declSpecs produced), threads a declarator's pointer/array/function
// operators around it to produce the declared object's actual type. This
// is the declarator's "unfinished type" as a composed function rather
// than decl.c's intrusive list of partial-type nodes threaded during
// unwinding -- the two approaches build the same types, but a chain of
// closures composes naturally with Go's recursion for the
// parenthesized-declarator case, where decl.c instead relies on sharing
// one mutable list across recursive calls.
type typeChain func(base ctype.Type) ctype.Type

func identityChain(t ctype.Type) ctype.Type { return t }

// declaratorChain parses one declarator (concrete, with an identifier, or
// abstract if allowAbstract) and returns its type chain and name (empty
// for an abstract declarator). The precedence this implements -- postfix
// [] and () bind tighter to the identifier than a prefix '*', and
// parentheses invert that -- is 6.7.6's direct-declarator/pointer
// grammar; see the worked examples in declarator_test.go for why prefixes apply
// to the incoming base before suffixes, while a parenthesized inner
// declarator applies outermost of all.
func (p *Processor) declaratorChain(cur *lexer.Cursor, scope *cscope.Scope, allowAbstract bool) (typeChain, string) {
	prefix := typeChain(identityChain)
	for cur.Tok().Kind == token.Mul {
		cur.Advance()
		tq := p.parseQualifierList(cur)
		prev := prefix
		prefix = func(t ctype.Type) ctype.Type {
			return p.Builder.MakeQualified(p.Builder.MakePointer(prev(t)), tq)
		}
	}

	var name string
	core := typeChain(identityChain)
	var suffixes []typeChain

	switch cur.Tok().Kind {
	case token.LParen:
		cur.Advance()
		if allowAbstract && p.lparenStartsFunctionSuffix(cur, scope) {
			suffixes = append(suffixes, p.parseFunctionSuffixBody(cur, scope))
		} else {
			innerCore, innerName := p.declaratorChain(cur, scope, allowAbstract)
			p.expect(cur, token.RParen, "after parenthesized declarator")
			core = innerCore
			name = innerName
		}
	case token.Ident:
		name = cur.Tok().Lit
		cur.Advance()
	default:
		if !allowAbstract {
			raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.6", "expected an identifier or '(' in declarator")
		}
	}

suffixLoop:
	for {
		switch cur.Tok().Kind {
		case token.LParen:
			cur.Advance()
			suffixes = append(suffixes, p.parseFunctionSuffixBody(cur, scope))
		case token.LBracket:
			suffixes = append(suffixes, p.parseArraySuffix(cur, scope)...)
		default:
			break suffixLoop
		}
	}

	chain := func(base ctype.Type) ctype.Type {
		t := prefix(base)
		for i := len(suffixes) - 1; i >= 0; i-- {
			t = suffixes[i](t)
		}
		return core(t)
	}
	return chain, name
}

// lparenStartsFunctionSuffix resolves the grammar's one genuine
// ambiguity: a '(' immediately following an (possibly absent) identifier
// can open either a grouping around a nested declarator or a function
// declarator's parameter list. cur is positioned just after the '(';
// per decl.c, it's a function suffix unless what follows can only start
// a nested declarator (a '*' or a plain, non-typedef identifier).
func (p *Processor) lparenStartsFunctionSuffix(cur *lexer.Cursor, scope *cscope.Scope) bool {
	if cur.Tok().Kind == token.Mul {
		return false
	}
	if cur.Tok().Kind == token.Ident && !scope.IsTypedefName(cur.Tok().Lit) {
		return false
	}
	return true
}

// isVoidType reports whether t (after stripping qualifiers) is void,
// used to recognize "(void)" as an explicit empty parameter list.
func isVoidType(t ctype.Type) bool {
	inner, _ := ctype.Unqualify(t)
	_, ok := inner.(*ctype.Void)
	return ok
}

// parseFunctionSuffixBody parses a function declarator's parameter list,
// assuming '(' has already been consumed, and returns the typeChain that
// attaches the eventual return type. It distinguishes three forms per
// 6.7.6.3: an identifier list (the K&R form, each parameter's type left
// nil until a following paramdecl fills it in), a prototype (a
// comma-separated parameter-type-list, optionally ending in ", ..."), and
// an empty "()" carrying no parameter information at all. Named
// identifierListOrProto rather than left as an implicit fallthrough
// between the two identifier-starting cases, since they diverge only on
// whether the leading identifier names a typedef.
func (p *Processor) parseFunctionSuffixBody(cur *lexer.Cursor, scope *cscope.Scope) typeChain {
	fn := &ctype.Function{}
	p.identifierListOrProto(cur, scope, fn)
	p.expect(cur, token.RParen, "to close function declarator")
	return func(ret ctype.Type) ctype.Type {
		switch ret.(type) {
		case *ctype.Function:
			raiseAt(cur, diagnostic.CodeFunctionReturnsFunc, "6.7.6.3", "function cannot return a function type")
		case *ctype.Array:
			raiseAt(cur, diagnostic.CodeFunctionReturnsArray, "6.7.6.3", "function cannot return an array type")
		}
		fn.Return = ret
		return fn
	}
}

func (p *Processor) identifierListOrProto(cur *lexer.Cursor, scope *cscope.Scope, fn *ctype.Function) {
	switch {
	case cur.Tok().Kind == token.RParen:
		// No parameter information at all: an old-style "f()" declarator.
		return
	case cur.Tok().Kind == token.Ident && !scope.IsTypedefName(cur.Tok().Lit):
		for {
			fn.Params = append(fn.Params, ctype.Param{Name: cur.Tok().Lit})
			cur.Advance()
			if cur.Tok().Kind != token.Comma {
				return
			}
			cur.Advance()
		}
	default:
		fn.IsPrototype = true
		for {
			fn.Params = append(fn.Params, p.parseParameter(cur, scope))
			if cur.Tok().Kind != token.Comma {
				break
			}
			cur.Advance()
			if cur.Tok().Kind == token.Ellipsis {
				cur.Advance()
				fn.IsVararg = true
				break
			}
		}
		if len(fn.Params) == 1 && isVoidType(fn.Params[0].Type) {
			fn.Params = nil
		}
	}
}

// parseParameter parses a single parameter-declaration: declaration
// specifiers (only register is a legal storage class here) followed by a
// declarator that may be abstract, then array/function-to-pointer decay
// per 6.7.6.3/7-8.
func (p *Processor) parseParameter(cur *lexer.Cursor, scope *cscope.Scope) ctype.Param {
	var sc storageClass
	base := p.declSpecs(cur, scope, &sc, nil, nil)
	if base == nil {
		raiseAt(cur, diagnostic.CodeMissingTypeSpecifier, "6.7.6.3", "a type specifier is required in a parameter declaration")
	}
	if sc != scNone && sc != scRegister {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.6.3", "invalid storage-class specifier in parameter declaration")
	}
	chain, name := p.declaratorChain(cur, scope, true)
	return ctype.Param{Name: name, Type: p.Builder.Adjust(chain(base))}
}

// paramDecl parses a K&R parameter declaration following an
// identifier-list function declarator, binding each declared name's type
// onto the matching Param by name, per 6.7.6.3's "function with K&R
// identifier list" production -- only legal between an identifier-list
// declarator and the function's body.
func (p *Processor) paramDecl(cur *lexer.Cursor, scope *cscope.Scope, fn *ctype.Function) {
	var sc storageClass
	base := p.declSpecs(cur, scope, &sc, nil, nil)
	if base == nil {
		raiseAt(cur, diagnostic.CodeMissingTypeSpecifier, "6.7.6.3", "a type specifier is required in a parameter declaration")
	}
	if sc != scNone && sc != scRegister {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.6.3", "invalid storage-class specifier in parameter declaration")
	}
	for {
		chain, name := p.declaratorChain(cur, scope, false)
		t := p.Builder.Adjust(chain(base))
		bound := false
		for i := range fn.Params {
			if fn.Params[i].Name == name {
				if fn.Params[i].Type != nil {
					raiseAt(cur, diagnostic.CodeRedeclaration, "6.7.6.3", "redefinition of parameter %q", name)
				}
				fn.Params[i].Type = t
				bound = true
				break
			}
		}
		if !bound {
			raiseAt(cur, diagnostic.CodeUndeclaredIdentifier, "6.7.6.3", "declared parameter %q is not in the identifier list", name)
		}
		if cur.Tok().Kind != token.Comma {
			break
		}
		cur.Advance()
	}
	p.expect(cur, token.Semicolon, "after parameter declaration")
}

// parseArraySuffix parses one "[...]" array declarator suffix, returning
// its node(s) in the order they must fold: the qualifier wrapper (if the
// array carries qualifiers inside the brackets, legal only in a
// parameter's outermost array per 6.7.6.3/7) is appended before the
// array node itself, so that the array type is built first and then
// qualified as a whole -- matching how 6.7.6.2 says such qualifiers
// apply to the pointer the array decays to, not to its element type.
func (p *Processor) parseArraySuffix(cur *lexer.Cursor, scope *cscope.Scope) []typeChain {
	cur.Advance() // consume '['
	var tq ctype.Qualifier
	for {
		if cur.Tok().Kind == token.KwStatic {
			cur.Advance()
			continue
		}
		if p.typeQualTok(cur, &tq) {
			continue
		}
		break
	}
	if cur.Tok().Kind == token.Mul {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.6.2", "variable-length arrays are not supported")
	}

	var length int64
	if cur.Tok().Kind == token.RBracket {
		cur.Advance()
	} else {
		length = int64(p.Expr.IntConstExpr(cur, scope))
		p.expect(cur, token.RBracket, "to close array declarator")
	}

	var out []typeChain
	if tq != 0 {
		q := tq
		out = append(out, func(t ctype.Type) ctype.Type { return p.Builder.MakeQualified(t, q) })
	}
	out = append(out, func(t ctype.Type) ctype.Type {
		arr, err := p.Builder.MakeArray(t, length)
		if err != nil {
			raiseAt(cur, diagnostic.CodeArraySizeOverflow, "6.7.6.2", "%s", err)
		}
		return arr
	})
	return out
}
