package lexer

import "github.com/cfront/cdecl/internal/token"

// Cursor is the "global current token tok, plus next()" the declaration
// processor and its collaborators (expr, stmt) all read from, per §6's
// external tokenizer interface. It is the one mutable piece of state all
// three packages share, so that a cast expression's type name (parsed by
// expr, but resolved through cparse) and a declarator (parsed by cparse)
// always agree on which token is current.
type Cursor struct {
	lex *Lexer
	cur token.Token
}

// NewCursor creates a Cursor positioned at the first token of lex.
func NewCursor(lex *Lexer) *Cursor {
	c := &Cursor{lex: lex}
	c.cur = lex.Next()
	return c
}

// Tok returns the current token without consuming it.
func (c *Cursor) Tok() token.Token { return c.cur }

// Advance consumes the current token and returns the new current token.
func (c *Cursor) Advance() token.Token {
	c.cur = c.lex.Next()
	return c.cur
}
