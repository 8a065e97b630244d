package ctype

import (
	"fmt"
	"math"

	"github.com/cfront/cdecl/internal/target"
)

// Builder constructs and de-duplicates canonical types against one target
// descriptor. It owns the basic-type singletons (so `int` constructed at
// different call sites compares equal by identity, not just by value) the
// way targ.c's typeint/typechar/etc. package-level pointers do.
type Builder struct {
	tg *target.Target

	// Singletons. Populated by NewBuilder; never mutated afterward except
	// Char's Signed field, which targ.c sets once during target.Init and
	// we set once here instead, since Builder already knows the target.
	Void       *Void
	TChar      *Basic
	TSChar     *Basic
	TUChar     *Basic
	TShort     *Basic
	TUShort    *Basic
	TInt       *Basic
	TUInt      *Basic
	TLong      *Basic
	TULong     *Basic
	TLLong     *Basic
	TULLong    *Basic
	TBool      *Basic
	TFloat     *Basic
	TDouble    *Basic
	TLongDouble *Basic
}

// NewBuilder creates a Builder whose basic-type sizes/alignments are
// resolved against tg.
func NewBuilder(tg *target.Target) *Builder {
	b := &Builder{tg: tg}
	b.Void = &Void{}
	b.TChar = &Basic{Kind: Char, ByteSize: 1, ByteAlign: 1, Signed: tg.SignedChar}
	b.TSChar = &Basic{Kind: SChar, ByteSize: 1, ByteAlign: 1}
	b.TUChar = &Basic{Kind: UChar, ByteSize: 1, ByteAlign: 1}
	b.TShort = &Basic{Kind: Short, ByteSize: 2, ByteAlign: 2}
	b.TUShort = &Basic{Kind: UShort, ByteSize: 2, ByteAlign: 2}
	b.TInt = &Basic{Kind: Int, ByteSize: 4, ByteAlign: 4}
	b.TUInt = &Basic{Kind: UInt, ByteSize: 4, ByteAlign: 4}
	b.TLong = &Basic{Kind: Long, ByteSize: int64(tg.LongSize), ByteAlign: int64(tg.LongAlign)}
	b.TULong = &Basic{Kind: ULong, ByteSize: int64(tg.LongSize), ByteAlign: int64(tg.LongAlign)}
	b.TLLong = &Basic{Kind: LLong, ByteSize: 8, ByteAlign: 8}
	b.TULLong = &Basic{Kind: ULLong, ByteSize: 8, ByteAlign: 8}
	b.TBool = &Basic{Kind: Bool, ByteSize: 1, ByteAlign: 1}
	b.TFloat = &Basic{Kind: Float, ByteSize: 4, ByteAlign: 4}
	b.TDouble = &Basic{Kind: Double, ByteSize: 8, ByteAlign: 8}
	b.TLongDouble = &Basic{Kind: LongDouble, ByteSize: 16, ByteAlign: 16}
	return b
}

// MakePointer builds a pointer-to-base type, sized and aligned per the
// target's pointer width (§4.2).
func (b *Builder) MakePointer(base Type) *Pointer {
	return &Pointer{
		Base:      base,
		ByteSize:  int64(b.tg.PointerSize),
		ByteAlign: int64(b.tg.PointerAlign),
	}
}

// MakeArray builds an array of base with the given length. length==0
// denotes an incomplete array, matching §4.2 exactly. Per the decision
// recorded for the original's "XXX" overflow comment (§14 of the repo's
// expanded spec), an overflowing size returns an error rather than
// silently wrapping.
func (b *Builder) MakeArray(base Type, length int64) (*Array, error) {
	if length == 0 {
		return &Array{Base: base, Incomplete: true}, nil
	}
	sz := base.Size()
	if sz != 0 && length > math.MaxInt64/sz {
		return nil, fmt.Errorf("array size overflows: %d elements of size %d", length, sz)
	}
	return &Array{Base: base, Length: length}, nil
}

// MakeFunction builds a function type returning ret. Params/IsPrototype/
// IsVararg/IsNoreturn are filled in by the caller (the declarator parser
// builds the type incrementally); MakeFunction only establishes the
// "never sized by itself" invariant of §4.2.
func (b *Builder) MakeFunction(ret Type) *Function {
	return &Function{Return: ret}
}

// MakeStruct starts a new incomplete struct tag, size=0, align=0.
func (b *Builder) MakeStruct(tag string) *Struct {
	return &Struct{Tag: tag, IsUnion: false, Incomplete: true}
}

// MakeUnion starts a new incomplete union tag, size=0, align=0.
func (b *Builder) MakeUnion(tag string) *Struct {
	return &Struct{Tag: tag, IsUnion: true, Incomplete: true}
}

// MakeEnum starts a new incomplete enum tag.
func (b *Builder) MakeEnum(tag string) *Enum {
	return &Enum{Tag: tag, Incomplete: true}
}

// MakeQualified wraps base with quals. An empty quals returns base
// unchanged; qualifying an already-Qualified type merges the bitsets
// rather than nesting wrappers, per §4.2.
func (b *Builder) MakeQualified(base Type, quals Qualifier) Type {
	if quals == 0 {
		return base
	}
	if q, ok := base.(*Qualified); ok {
		return &Qualified{Base: q.Base, Quals: q.Quals | quals}
	}
	return &Qualified{Base: base, Quals: quals}
}

// Unqualify peels at most one Qualified wrapper, returning the inner type
// and the quals that were present (zero if t was not qualified).
func Unqualify(t Type) (Type, Qualifier) {
	if q, ok := t.(*Qualified); ok {
		return q.Base, q.Quals
	}
	return t, 0
}

// Adjust performs array-to-pointer and function-to-pointer decay,
// preserving outer qualifiers, for use on function parameter types (§4.2,
// §4.4).
func (b *Builder) Adjust(t Type) Type {
	inner, quals := Unqualify(t)
	switch v := inner.(type) {
	case *Array:
		return b.MakeQualified(b.MakePointer(v.Base), quals)
	case *Function:
		return b.MakeQualified(b.MakePointer(v), quals)
	default:
		return t
	}
}
