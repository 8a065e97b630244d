package cparse

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/expr"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/token"
)

// Decl parses one declaration (or one function definition) starting at
// the current token, installing whatever names it introduces into scope
// and, for objects and functions that reach their point of definition,
// handing the result to the back-end. It implements expr's and stmt's
// DeclParser/TypeNamer dependency on the declaration processor, and is
// §4.6/§4.7's entry point. Returns false, without consuming any tokens,
// if the current token cannot start a declaration at all -- callers
// (stmt.Parser.block chief among them) use that to fall back to parsing
// a statement instead.
func (p *Processor) Decl(cur *lexer.Cursor, scope *cscope.Scope, inFunction bool) bool {
	if cur.Tok().Kind == token.KwStaticAssert {
		p.staticAssert(cur, scope)
		return true
	}

	var sc storageClass
	var fs funcSpec
	var align int64
	base := p.declSpecs(cur, scope, &sc, &fs, &align)
	if base == nil {
		return false
	}

	if !inFunction && (sc == scAuto || sc == scRegister) {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.1", "file-scope declaration cannot be 'auto' or 'register'")
	}

	if cur.Tok().Kind == token.Semicolon {
		// A bare "struct foo;" (or similarly for union/enum): the tag
		// declaration/definition already happened inside declSpecs/tagSpec;
		// there is nothing further to declare.
		cur.Advance()
		return true
	}

	for {
		chain, name := p.declaratorChain(cur, scope, false)
		if name == "" {
			raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.6", "a declaration's declarator requires an identifier")
		}
		t := chain(base)

		switch {
		case sc == scTypedef:
			p.declTypedef(cur, scope, name, t)
		default:
			if fnType, ok := t.(*ctype.Function); ok {
				if p.declFunction(cur, scope, inFunction, name, fnType, sc, fs) {
					return true
				}
			} else {
				p.declObject(cur, scope, inFunction, name, t, sc, align)
			}
		}

		if cur.Tok().Kind != token.Comma {
			break
		}
		cur.Advance()
	}
	p.expect(cur, token.Semicolon, "after declaration")
	return true
}

// staticAssert parses and immediately evaluates a _Static_assert
// declaration, per 6.7.10: its condition is a constant expression
// evaluated right away (there is no later phase where it could matter),
// and a false result is itself the translation error.
func (p *Processor) staticAssert(cur *lexer.Cursor, scope *cscope.Scope) {
	cur.Advance()
	p.expect(cur, token.LParen, "after '_Static_assert'")
	v := p.Expr.IntConstExpr(cur, scope)
	p.expect(cur, token.Comma, "after static assertion condition")
	if cur.Tok().Kind != token.StringLit {
		raiseAt(cur, diagnostic.CodeUnexpectedToken, "6.7.10", "expected a string literal message")
	}
	msg := cur.Tok().Lit
	cur.Advance()
	p.expect(cur, token.RParen, "to close '_Static_assert'")
	p.expect(cur, token.Semicolon, "after static assertion")
	if v == 0 {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.10", "static assertion failed: %s", msg)
	}
}

// declTypedef installs a typedef name, per 6.7.8: a redeclaration in the
// same scope must name a prior typedef (not some other kind of symbol)
// whose type is the same as the new one, per decl.c's typedef handling.
func (p *Processor) declTypedef(cur *lexer.Cursor, scope *cscope.Scope, name string, t ctype.Type) {
	if existing, declScope := scope.LookupDecl(name, false); existing != nil && declScope == scope {
		if existing.Kind != cscope.KindTypedef {
			raiseAt(cur, diagnostic.CodeRedeclaration, "6.7", "%q redeclared as a different kind of symbol", name)
		}
		if !ctype.Same(existing.Type, t) {
			raiseAt(cur, diagnostic.CodeIncompatibleRedeclaration, "6.7.8", "typedef redeclaration of %q does not match its previous type", name)
		}
	}
	scope.InstallDecl(name, &cscope.Declaration{Name: name, Kind: cscope.KindTypedef, Type: t})
}

// objectLinkage computes an object declaration's linkage from its storage
// class and scope, per 6.2.2/2-6. At file scope, 'extern' inherits the
// linkage of a visible prior declaration (external if there is none),
// while no storage class always means external, so a plain redeclaration
// of a 'static' object is reported by declObject as conflicting linkage. The
// one case the standard leaves implementation-defined in practice -- an
// 'extern' block-scope redeclaration of a name whose only prior
// declaration (in an enclosing block) has no linkage -- is treated as an
// error here rather than silently resolved either way, since a reader has
// no way to guess which the two conflicting declarations meant without a
// diagnostic telling them the shadowing is ambiguous.
func (p *Processor) objectLinkage(cur *lexer.Cursor, scope *cscope.Scope, name string, sc storageClass, inFunction bool) cscope.Linkage {
	switch {
	case sc == scStatic:
		if !inFunction {
			return cscope.LinkageInternal
		}
		return cscope.LinkageNone
	case sc == scExtern:
		d, _ := scope.LookupDecl(name, true)
		if d != nil && inFunction && d.Linkage == cscope.LinkageNone {
			raiseAt(cur, diagnostic.CodeConflictingLinkage, "6.2.2",
				"%q was previously declared with no linkage; an 'extern' redeclaration is ambiguous", name)
		}
		if d != nil && d.Linkage != cscope.LinkageNone {
			return d.Linkage
		}
		return cscope.LinkageExternal
	case !inFunction:
		return cscope.LinkageExternal
	default:
		return cscope.LinkageNone
	}
}

// declObject finishes one object declarator: computing its linkage,
// parsing an optional initializer, completing an incomplete array type
// from a braced initializer's length (6.7.9/22), checking compatibility
// against any existing declaration of the same name in this scope, and
// -- for file-scope objects -- handing it to the back-end immediately (if
// defined) or to the tentative-definitions list (if not), per §4.6's
// storage/linkage table.
func (p *Processor) declObject(cur *lexer.Cursor, scope *cscope.Scope, inFunction bool, name string, t ctype.Type, sc storageClass, align int64) {
	linkage := p.objectLinkage(cur, scope, name, sc, inFunction)

	if inFunction && sc == scExtern && cur.Tok().Kind == token.Assign {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.9", "a block-scope 'extern' declaration may not have an initializer")
	}

	var init *expr.Initializer
	if cur.Tok().Kind == token.Assign {
		cur.Advance()
		init = p.Expr.ParseInit(cur, scope, t)
		if arr, ok := t.(*ctype.Array); ok && arr.Incomplete {
			arr.Length = init.InferredLength()
			arr.Incomplete = false
		}
	}
	defined := init != nil

	if existing, declScope := scope.LookupDecl(name, false); existing != nil && declScope == scope {
		if existing.Kind != cscope.KindObject {
			raiseAt(cur, diagnostic.CodeRedeclaration, "6.7", "%q redeclared as a different kind of symbol", name)
		}
		if existing.Linkage == cscope.LinkageNone && linkage == cscope.LinkageNone {
			raiseAt(cur, diagnostic.CodeNoLinkageRedeclared, "6.2.2", "%q redeclared in the same scope", name)
		}
		if existing.Linkage != cscope.LinkageNone && linkage != cscope.LinkageNone && existing.Linkage != linkage {
			raiseAt(cur, diagnostic.CodeConflictingLinkage, "6.2.2", "%q redeclared with conflicting linkage", name)
		}
		if !ctype.Compatible(existing.Type, t) {
			raiseAt(cur, diagnostic.CodeIncompatibleRedeclaration, "6.2.7", "%q redeclared with an incompatible type", name)
		}
		t = ctype.Composite(existing.Type, t)
		if existing.Defined && defined {
			raiseAt(cur, diagnostic.CodeMultipleDefinitions, "6.9", "redefinition of %q", name)
		}
		if !defined {
			// A redeclaration without an initializer updates the existing
			// entry in place, keeping its defined/tentative state and its
			// position on the tentative-definitions list.
			existing.Type = t
			if align > existing.Align {
				existing.Align = align
			}
			if !inFunction && sc != scExtern && !existing.Defined && !existing.Tentative {
				p.appendTentative(existing)
			}
			return
		}
		if existing.Tentative {
			p.removeTentative(existing)
		}
	}

	d := &cscope.Declaration{Name: name, Kind: cscope.KindObject, Type: t, Linkage: linkage, Align: align, Defined: defined}
	scope.InstallDecl(name, d)

	switch {
	case !inFunction:
		switch {
		case d.Defined:
			p.Backend.EmitData(d, init)
		case sc != scExtern:
			p.appendTentative(d)
		}
	case sc == scStatic:
		p.Backend.EmitData(d, init)
	default:
		// Automatic storage duration: the back-end models a stack frame, if
		// at all, from the enclosing function's own scope -- nothing to
		// emit per declarator. An initializer, if any, was already consumed
		// by ParseInit above and is not recorded anywhere.
	}
}

// functionLinkage computes a function declaration's linkage. Functions
// can never have no linkage (6.2.2/5), so the no-storage-class and
// 'extern' cases collapse: both mean "inherit a visible prior linkage, or
// external if there is none."
func (p *Processor) functionLinkage(scope *cscope.Scope, name string, sc storageClass, inFunction bool) cscope.Linkage {
	if sc == scStatic {
		return cscope.LinkageInternal
	}
	recurse := inFunction
	if d, _ := scope.LookupDecl(name, recurse); d != nil && d.Linkage != cscope.LinkageNone {
		return d.Linkage
	}
	return cscope.LinkageExternal
}

// declFunction finishes one function declarator: binding K&R parameter
// declarations (if any) ahead of a definition's body, installing the
// function's declaration, and -- if a '{' follows -- parsing the body and
// emitting the definition. Returns true if it consumed a full function
// definition (the caller's comma/semicolon loop does not apply), false if
// this was just a declaration.
func (p *Processor) declFunction(cur *lexer.Cursor, scope *cscope.Scope, inFunction bool, name string, fnType *ctype.Function, sc storageClass, fs funcSpec) bool {
	fnType.IsNoreturn = fs&fsNoreturn != 0

	if inFunction && sc != scNone && sc != scExtern {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.1", "a block-scope function declaration may only be 'extern'")
	}

	linkage := p.functionLinkage(scope, name, sc, inFunction)

	if !fnType.IsPrototype {
		for cur.Tok().Kind != token.LBrace && cur.Tok().Kind != token.Semicolon && cur.Tok().Kind != token.Comma {
			p.paramDecl(cur, scope, fnType)
		}
		for i := range fnType.Params {
			if fnType.Params[i].Type == nil {
				// K&R parameters with no explicit declaration default to int.
				fnType.Params[i].Type = p.Builder.TInt
			}
		}
		if len(fnType.Params) > 0 && cur.Tok().Kind != token.LBrace {
			raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.6.3", "a function declarator with an identifier list must be followed by a function body")
		}
	}

	if existing, declScope := scope.LookupDecl(name, false); existing != nil && declScope == scope {
		if existing.Kind != cscope.KindFunction {
			raiseAt(cur, diagnostic.CodeRedeclaration, "6.7", "%q redeclared as a different kind of symbol", name)
		}
		if existing.Linkage != cscope.LinkageNone && linkage != cscope.LinkageNone && existing.Linkage != linkage {
			raiseAt(cur, diagnostic.CodeConflictingLinkage, "6.2.2", "%q redeclared with conflicting linkage", name)
		}
		if !ctype.Compatible(existing.Type, fnType) {
			raiseAt(cur, diagnostic.CodeIncompatibleRedeclaration, "6.2.7", "%q redeclared with an incompatible type", name)
		}
		fnType = ctype.Composite(existing.Type, fnType).(*ctype.Function)
	}

	d := &cscope.Declaration{Name: name, Kind: cscope.KindFunction, Type: fnType, Linkage: linkage}

	if cur.Tok().Kind != token.LBrace {
		scope.InstallDecl(name, d)
		return false
	}

	if inFunction {
		raiseAt(cur, diagnostic.CodeInvalidDeclarator, "6.7.6.3", "a function definition is not allowed here")
	}
	d.Defined = true
	scope.InstallDecl(name, d)

	fnScope := cscope.Push(scope)
	for _, param := range fnType.Params {
		if param.Name == "" {
			continue
		}
		fnScope.InstallDecl(param.Name, &cscope.Declaration{Name: param.Name, Kind: cscope.KindObject, Type: param.Type})
	}

	backendFn := p.Backend.MakeFunc(name, fnType, fnScope)
	p.Stmt.Func(cur, fnScope)
	p.Backend.EmitFunction(backendFn, linkage == cscope.LinkageExternal)
	return true
}
