// Package cparse implements the declaration processor's core: specifier
// parsing (§4.3), declarator parsing (§4.4), tag/member parsing (§4.5), and
// the top-level declaration driver (§4.6-4.7). Everything else in this
// repository is either a data model the driver builds on (ctype, cscope,
// target, repr) or a minimal external collaborator it calls into (expr,
// stmt, backend).
package cparse

import (
	"github.com/cfront/cdecl/internal/backend"
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/expr"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/mangler"
	"github.com/cfront/cdecl/internal/stmt"
	"github.com/cfront/cdecl/internal/target"
	"github.com/cfront/cdecl/internal/token"
)

// Processor is the declaration driver: it owns the type builder, the file
// scope, the back-end, the mangler, the string-literal table, and the
// tentative-definitions list, and drives expr/stmt through the TypeNamer/
// DeclParser interfaces those packages declare. One Processor serves one
// translation unit, matching §5's "translation-unit context" design note.
type Processor struct {
	Builder   *ctype.Builder
	Target    *target.Target
	Backend   backend.Backend
	Mangler   *mangler.Mangler
	Expr      *expr.Parser
	Stmt      *stmt.Parser
	FileScope *cscope.Scope

	tentativeHead *cscope.Declaration
	tentativeTail *cscope.Declaration
	strings       map[stringKey]*cscope.Declaration
}

// New creates a Processor wired to operate over one target and back-end.
// It constructs the Expr/Stmt collaborators and wires their TypeNamer/
// DeclParser interfaces back to itself, closing the loop described in
// expr.TypeNamer's and stmt.DeclParser's doc comments without either
// package importing cparse.
func New(tg *target.Target, be backend.Backend) *Processor {
	b := ctype.NewBuilder(tg)
	p := &Processor{
		Builder:   b,
		Target:    tg,
		Backend:   be,
		Mangler:   mangler.New(),
		FileScope: cscope.NewScope(nil),
		strings:   make(map[stringKey]*cscope.Declaration),
	}
	p.Expr = expr.New(b)
	p.Expr.TypeNamer = p
	p.Stmt = stmt.New()
	p.Stmt.Decls = p
	return p
}

// TypeName implements expr.TypeNamer: it parses a type name (specifiers
// plus an abstract declarator) for a cast or sizeof(T) operand. Returns
// (nil, false) if the current token cannot start a type name, so callers
// can fall back to parsing a parenthesized expression instead.
func (p *Processor) TypeName(cur *lexer.Cursor, scope *cscope.Scope) (ctype.Type, bool) {
	base := p.declSpecs(cur, scope, nil, nil, nil)
	if base == nil {
		return nil, false
	}
	chain, _ := p.declaratorChain(cur, scope, true)
	return chain(base), true
}

// expect consumes the current token if it matches kind, otherwise raises a
// fatal diagnostic naming what was expected and where.
func (p *Processor) expect(cur *lexer.Cursor, kind token.Kind, context string) {
	if cur.Tok().Kind != kind {
		raiseAt(cur, diagnostic.CodeUnexpectedToken, "", "expected %s %s, got %s", kind, context, cur.Tok().Kind)
	}
	cur.Advance()
}

// raiseAt is a convenience wrapper around diagnostic.Raise that extracts
// the position from the cursor's current token.
func raiseAt(cur *lexer.Cursor, code diagnostic.DiagnosticCode, clauseRef, format string, args ...interface{}) {
	tok := cur.Tok()
	diagnostic.Raise(diagnostic.Position{Line: tok.Loc.Line, Column: tok.Loc.Column, Offset: tok.Loc.Offset}, code, clauseRef, format, args...)
}

// appendTentative enqueues d onto the tentative-definitions list, in
// insertion order, per §4.6/§8 invariant 5 (a name appears at most once).
func (p *Processor) appendTentative(d *cscope.Declaration) {
	d.Tentative = true
	d.Next = nil
	if p.tentativeTail == nil {
		p.tentativeHead = d
		p.tentativeTail = d
		return
	}
	p.tentativeTail.Next = d
	p.tentativeTail = d
}

// removeTentative unlinks d from the tentative-definitions list in O(n)
// (a plain Go slice-free singly linked list, per the "any equivalent
// structure" latitude §9's design notes grant over the original's
// O(1) intrusive list).
func (p *Processor) removeTentative(d *cscope.Declaration) {
	d.Tentative = false
	var prev *cscope.Declaration
	for cur := p.tentativeHead; cur != nil; cur = cur.Next {
		if cur == d {
			if prev == nil {
				p.tentativeHead = cur.Next
			} else {
				prev.Next = cur.Next
			}
			if p.tentativeTail == cur {
				p.tentativeTail = prev
			}
			cur.Next = nil
			return
		}
		prev = cur
	}
}

// EmitTentativeDefinitions walks the tentative list in insertion order and
// emits each as a zero-initialized definition, per §4.6 step 5. Call once
// after the translation unit is fully parsed.
func (p *Processor) EmitTentativeDefinitions() {
	for d := p.tentativeHead; d != nil; d = d.Next {
		p.Backend.EmitData(d, nil)
	}
	p.tentativeHead = nil
	p.tentativeTail = nil
}
