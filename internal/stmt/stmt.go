// Package stmt is a minimal, real implementation of the declaration
// processor's "Statement parser" collaborator (spec §6): consuming a
// function body so that the declaration driver can finish classifying and
// emitting the enclosing function. It does not build a statement AST —
// nothing in §4 inspects one — it only needs to correctly consume the
// brace-balanced body, recursing into nested declarations so that
// block-scope objects are still installed into the function's scope
// (exercising cscope and cparse the way a real statement parser would,
// even though control-flow statements themselves are skipped structurally).
package stmt

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/token"
)

// DeclParser is the subset of cparse.Processor a function body needs: the
// ability to recognize and consume one block-scope declaration. Declared
// here (not imported from cparse) for the same reason expr.TypeNamer is:
// it lets cparse depend on stmt without stmt depending back on cparse.
type DeclParser interface {
	Decl(cur *lexer.Cursor, scope *cscope.Scope, inFunction bool) bool
}

// Parser consumes function bodies.
type Parser struct {
	Decls DeclParser
}

// New creates a Parser. Decls must be set (cparse.New does this) before
// Func is called.
func New() *Parser {
	return &Parser{}
}

// Func parses the compound statement beginning at the current '{' token,
// installing any block-scope declarations it contains into scope and
// otherwise skipping statement syntax structurally (by brace/paren
// balance), since no §4 operation needs a statement's parsed form.
func (p *Parser) Func(cur *lexer.Cursor, scope *cscope.Scope) {
	p.expect(cur, token.LBrace, "to open function body")
	p.block(cur, scope)
}

func (p *Parser) block(cur *lexer.Cursor, scope *cscope.Scope) {
	for cur.Tok().Kind != token.RBrace {
		if cur.Tok().Kind == token.EOF {
			tok := cur.Tok()
			diagnostic.Raise(diagnostic.Position{Line: tok.Loc.Line, Column: tok.Loc.Column, Offset: tok.Loc.Offset},
				diagnostic.CodeUnexpectedToken, "", "unexpected end of file in function body")
		}
		if p.Decls != nil && p.Decls.Decl(cur, scope, true) {
			continue
		}
		p.skipStatement(cur, scope)
	}
	cur.Advance() // consume '}'
}

// skipStatement consumes one statement's worth of tokens, recursing for
// nested compound statements (so their block-scope declarations still
// install into a nested cscope.Scope) and otherwise running to the next
// top-level ';' or balanced '{'...'}'.
func (p *Parser) skipStatement(cur *lexer.Cursor, scope *cscope.Scope) {
	if cur.Tok().Kind == token.LBrace {
		cur.Advance()
		p.block(cur, cscope.Push(scope))
		return
	}
	depth := 0
	for {
		switch cur.Tok().Kind {
		case token.EOF:
			tok := cur.Tok()
			diagnostic.Raise(diagnostic.Position{Line: tok.Loc.Line, Column: tok.Loc.Column, Offset: tok.Loc.Offset},
				diagnostic.CodeUnexpectedToken, "", "unexpected end of file in statement")
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				cur.Advance()
				return
			}
		}
		cur.Advance()
	}
}

func (p *Parser) expect(cur *lexer.Cursor, kind token.Kind, context string) {
	if cur.Tok().Kind != kind {
		tok := cur.Tok()
		diagnostic.Raise(diagnostic.Position{Line: tok.Loc.Line, Column: tok.Loc.Column, Offset: tok.Loc.Offset},
			diagnostic.CodeUnexpectedToken, "", "expected %s %s, got %s", kind, context, tok.Kind)
	}
	cur.Advance()
}
