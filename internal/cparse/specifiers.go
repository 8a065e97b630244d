package cparse

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/token"
)

// storageClass is the bitset of storage-class specifiers accumulated by
// declSpecs, one bit per keyword (mirrors decl.c's enum storageclass).
type storageClass uint8

const (
	scNone storageClass = 0
)

const (
	scTypedef storageClass = 1 << iota
	scExtern
	scStatic
	scAuto
	scRegister
	scThreadLocal
)

// funcSpec is the bitset of function specifiers (inline, _Noreturn).
type funcSpec uint8

const (
	fsInline funcSpec = 1 << iota
	fsNoreturn
)

// typeSpec is the bitset of primitive type-specifier keywords accumulated
// before being resolved to a concrete basic type by the cross-product
// switch at the bottom of declSpecs.
type typeSpec uint16

const (
	tsChar typeSpec = 1 << iota
	tsInt
	tsFloat
	tsDouble
	tsShort
	tsLong
	tsLong2
	tsSigned
	tsUnsigned
)

const tsLongLong = tsLong | tsLong2

// storageClassTok consumes a storage-class keyword at the current token, if
// any, enforcing the mutual-exclusion rule 6.7.1/2 allows ("no more than
// one storage-class specifier", with the sole exception that
// _Thread_local may combine with static or extern). sc == nil means
// storage classes are not permitted at all in this declSpecs call (struct
// members, type names); any storage-class keyword there is an
// error rather than simply ignored.
func (p *Processor) storageClassTok(cur *lexer.Cursor, sc *storageClass) bool {
	var next storageClass
	switch cur.Tok().Kind {
	case token.KwTypedef:
		next = scTypedef
	case token.KwExtern:
		next = scExtern
	case token.KwStatic:
		next = scStatic
	case token.KwThreadLocal:
		next = scThreadLocal
	case token.KwAuto:
		next = scAuto
	case token.KwRegister:
		next = scRegister
	default:
		return false
	}
	if sc == nil {
		raiseAt(cur, diagnostic.CodeDuplicateStorageClass, "6.7.1", "a storage-class specifier is not allowed here")
	}
	var allowed storageClass
	switch *sc {
	case scNone:
		allowed = scTypedef | scExtern | scStatic | scAuto | scRegister | scThreadLocal
	case scThreadLocal:
		allowed = scStatic | scExtern
	case scStatic, scExtern:
		allowed = scThreadLocal
	default:
		allowed = scNone
	}
	if next&^allowed != 0 {
		raiseAt(cur, diagnostic.CodeDuplicateStorageClass, "6.7.1", "declaration specifies more than one storage class")
	}
	*sc |= next
	cur.Advance()
	return true
}

// typeQualTok consumes a type-qualifier keyword, if any. Qualifiers are
// always legal to accumulate regardless of declaration context, so there
// is no sink/nil-check analogous to storageClassTok's.
func (p *Processor) typeQualTok(cur *lexer.Cursor, tq *ctype.Qualifier) bool {
	switch cur.Tok().Kind {
	case token.KwConst:
		*tq |= ctype.Const
	case token.KwVolatile:
		*tq |= ctype.Volatile
	case token.KwRestrict:
		*tq |= ctype.Restrict
	case token.KwAtomic:
		raiseAt(cur, diagnostic.CodeConflictingQualifiers, "6.7.3", "_Atomic is not supported")
	default:
		return false
	}
	cur.Advance()
	return true
}

// parseQualifierList accumulates zero or more type-qualifier keywords.
func (p *Processor) parseQualifierList(cur *lexer.Cursor) ctype.Qualifier {
	var tq ctype.Qualifier
	for p.typeQualTok(cur, &tq) {
	}
	return tq
}

// funcSpecTok consumes a function-specifier keyword, if any. fs == nil
// means function specifiers are not permitted in this declSpecs call
// (everywhere except a top-level declaration's own specifiers).
func (p *Processor) funcSpecTok(cur *lexer.Cursor, fs *funcSpec) bool {
	var next funcSpec
	switch cur.Tok().Kind {
	case token.KwInline:
		next = fsInline
	case token.KwNoreturn:
		next = fsNoreturn
	default:
		return false
	}
	if fs == nil {
		raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.4", "a function specifier is not allowed here")
	}
	*fs |= next
	cur.Advance()
	return true
}

// declSpecs parses a declaration-specifiers sequence: storage-class
// specifiers, type specifiers, type qualifiers, function specifiers, and
// alignment specifiers, in any order, per 6.7. sc, fs, and align may each
// be nil to forbid that category of specifier in the caller's context
// (struct members allow only alignment specifiers; parameters allow only
// register; type names allow none; only a top-level declaration's own
// declSpecs call passes all three). Returns nil, with sc/fs/align left at
// their zero values, if the current token cannot start a declaration at
// all -- the caller's signal to treat this as "no declaration here"
// rather than an error.
func (p *Processor) declSpecs(cur *lexer.Cursor, scope *cscope.Scope, sc *storageClass, fs *funcSpec, align *int64) ctype.Type {
	if sc != nil {
		*sc = scNone
	}
	if fs != nil {
		*fs = 0
	}
	if align != nil {
		*align = 0
	}

	var t ctype.Type
	var ts typeSpec
	var tq ctype.Qualifier
	ntypes := 0

loop:
	for {
		switch {
		case p.typeQualTok(cur, &tq):
			continue
		case p.storageClassTok(cur, sc):
			continue
		case p.funcSpecTok(cur, fs):
			continue
		}

		switch cur.Tok().Kind {
		case token.KwVoid:
			t = p.Builder.Void
			ntypes++
			cur.Advance()
		case token.KwBool:
			t = p.Builder.TBool
			ntypes++
			cur.Advance()
		case token.KwChar:
			ts |= tsChar
			ntypes++
			cur.Advance()
		case token.KwInt:
			ts |= tsInt
			ntypes++
			cur.Advance()
		case token.KwFloat:
			ts |= tsFloat
			ntypes++
			cur.Advance()
		case token.KwDouble:
			ts |= tsDouble
			ntypes++
			cur.Advance()
		case token.KwShort:
			if ts&tsShort != 0 {
				raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "duplicate 'short'")
			}
			ts |= tsShort
			cur.Advance()
		case token.KwLong:
			if ts&tsLong2 != 0 {
				raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "'long long long' is invalid")
			}
			if ts&tsLong != 0 {
				ts |= tsLong2
			}
			ts |= tsLong
			cur.Advance()
		case token.KwSigned:
			if ts&tsSigned != 0 {
				raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "duplicate 'signed'")
			}
			ts |= tsSigned
			cur.Advance()
		case token.KwUnsigned:
			if ts&tsUnsigned != 0 {
				raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "duplicate 'unsigned'")
			}
			ts |= tsUnsigned
			cur.Advance()
		case token.KwComplex:
			raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "_Complex is not supported")
		case token.KwAtomic:
			raiseAt(cur, diagnostic.CodeConflictingQualifiers, "6.7.2", "_Atomic is not supported")
		case token.KwStruct, token.KwUnion, token.KwEnum:
			if t != nil || ts != 0 {
				break loop
			}
			t = p.tagSpec(cur, scope)
			ntypes++
		case token.Ident:
			if t != nil || ts != 0 {
				break loop
			}
			d, _ := scope.LookupDecl(cur.Tok().Lit, true)
			if d == nil || d.Kind != cscope.KindTypedef {
				break loop
			}
			t = d.Type
			ntypes++
			cur.Advance()
		case token.KwAlignas:
			if align == nil {
				raiseAt(cur, diagnostic.CodeInvalidAlignas, "6.7.5", "an alignment specifier is not allowed here")
			}
			cur.Advance()
			p.expect(cur, token.LParen, "after '_Alignas'")
			p.parseAlignasOperand(cur, scope, align)
			p.expect(cur, token.RParen, "to close '_Alignas'")
		default:
			break loop
		}

		if ntypes > 1 {
			raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "two or more data types in declaration specifiers")
		}
	}

	if ts != 0 {
		if t != nil {
			raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "two or more data types in declaration specifiers")
		}
		t = p.resolveTypeSpec(cur, ts)
	}

	if t == nil && (tq != 0 || (sc != nil && *sc != scNone) || (fs != nil && *fs != 0)) {
		raiseAt(cur, diagnostic.CodeMissingTypeSpecifier, "6.7.2", "a type specifier is required")
	}

	return p.Builder.MakeQualified(t, tq)
}

// resolveTypeSpec maps the accumulated primitive-type bitset to its
// canonical basic type, mirroring decl.c's declspecs cross-product switch
// over every legal combination of char/int/float/double/short/long/
// signed/unsigned.
func (p *Processor) resolveTypeSpec(cur *lexer.Cursor, ts typeSpec) ctype.Type {
	b := p.Builder
	switch ts {
	case tsChar:
		return b.TChar
	case tsSigned | tsChar:
		return b.TSChar
	case tsUnsigned | tsChar:
		return b.TUChar
	case tsShort, tsShort | tsInt, tsSigned | tsShort, tsSigned | tsShort | tsInt:
		return b.TShort
	case tsUnsigned | tsShort, tsUnsigned | tsShort | tsInt:
		return b.TUShort
	case tsInt, tsSigned, tsSigned | tsInt:
		return b.TInt
	case tsUnsigned, tsUnsigned | tsInt:
		return b.TUInt
	case tsLong, tsLong | tsInt, tsSigned | tsLong, tsSigned | tsLong | tsInt:
		return b.TLong
	case tsUnsigned | tsLong, tsUnsigned | tsLong | tsInt:
		return b.TULong
	case tsLongLong, tsLongLong | tsInt, tsSigned | tsLongLong, tsSigned | tsLongLong | tsInt:
		return b.TLLong
	case tsUnsigned | tsLongLong, tsUnsigned | tsLongLong | tsInt:
		return b.TULLong
	case tsFloat:
		return b.TFloat
	case tsDouble:
		return b.TDouble
	case tsLong | tsDouble:
		return b.TLongDouble
	default:
		raiseAt(cur, diagnostic.CodeInvalidTypeSpecifierCombo, "6.7.2", "invalid combination of type specifiers")
		return nil
	}
}

// parseAlignasOperand parses _Alignas's operand, which is either a type
// name (whose alignment is used) or a constant expression (whose value,
// required to be a nonzero power of two no greater than 16, is used
// directly) -- the two alternatives 6.7.5/2 allows.
func (p *Processor) parseAlignasOperand(cur *lexer.Cursor, scope *cscope.Scope, align *int64) {
	if t, ok := p.TypeName(cur, scope); ok {
		*align = t.Align()
		return
	}
	i := p.Expr.IntConstExpr(cur, scope)
	if i == 0 || i&(i-1) != 0 || i > 16 {
		raiseAt(cur, diagnostic.CodeInvalidAlignas, "6.7.5", "invalid alignment %d: must be a power of two no greater than 16", i)
	}
	*align = int64(i)
}
