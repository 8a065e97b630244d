// Package ctype implements the declaration processor's canonical type
// representation and the builder operations that construct it (the "Type
// builder" component). Types form a sum over void, basic, pointer, array,
// function, struct/union, and qualified wrappers — modeled as a Go
// interface with one concrete struct per variant, the way the teacher
// represents its own value-type lattice, rather than as one flat struct
// with a kind tag and a grab-bag of optional fields.
package ctype

import (
	"fmt"
	"strings"
)

// Type is the common interface satisfied by every type variant. isType is
// unexported so the sum is closed to this package.
type Type interface {
	String() string
	// Size returns the type's size in bytes. Incomplete types (forward
	// tags, unsized arrays) return 0.
	Size() int64
	// Align returns the type's alignment in bytes.
	Align() int64
	isType()
}

// BasicKind enumerates the primitive arithmetic/bool kinds the specifier
// parser's cross-product table can produce.
type BasicKind uint8

const (
	Char BasicKind = iota
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LLong
	ULLong
	Bool
	Float
	Double
	LongDouble
)

var basicNames = map[BasicKind]string{
	Char: "char", SChar: "signed char", UChar: "unsigned char",
	Short: "short", UShort: "unsigned short",
	Int: "int", UInt: "unsigned int",
	Long: "long", ULong: "unsigned long",
	LLong: "long long", ULLong: "unsigned long long",
	Bool: "_Bool", Float: "float", Double: "double", LongDouble: "long double",
}

func (k BasicKind) String() string { return basicNames[k] }

// IsSigned reports whether k is a signed integer kind. Bool and the
// floating kinds answer false; callers that need "is arithmetic" or
// "is floating" should check those separately.
func (k BasicKind) IsSigned() bool {
	switch k {
	case SChar, Short, Int, Long, LLong:
		return true
	default:
		return false
	}
}

// IsFloating reports whether k is float, double, or long double.
func (k BasicKind) IsFloating() bool {
	switch k {
	case Float, Double, LongDouble:
		return true
	default:
		return false
	}
}

// Void is the singleton incomplete void type.
type Void struct{}

func (Void) isType()        {}
func (Void) String() string { return "void" }
func (Void) Size() int64    { return 0 }
func (Void) Align() int64   { return 0 }

// Basic is a primitive arithmetic or bool type. Size/Align are resolved at
// construction time against a target.Target (char/short/int are
// target-invariant in practice, but long/long long and pointer-sized
// alignment are not, per targ.c), so Basic stores them rather than
// recomputing from Kind on every call.
type Basic struct {
	Kind       BasicKind
	ByteSize   int64
	ByteAlign  int64
	// Signed overrides Kind.IsSigned() for the one kind whose signedness
	// is a target property rather than a spelling: plain `char`.
	Signed bool
}

func (Basic) isType()          {}
func (b Basic) String() string { return b.Kind.String() }
func (b Basic) Size() int64    { return b.ByteSize }
func (b Basic) Align() int64   { return b.ByteAlign }

// IsSigned reports the effective signedness, honoring the per-target
// signedness of plain char.
func (b Basic) IsSigned() bool {
	if b.Kind == Char {
		return b.Signed
	}
	return b.Kind.IsSigned()
}

// Pointer is an object or function pointer.
type Pointer struct {
	Base      Type
	ByteSize  int64
	ByteAlign int64
}

func (Pointer) isType()          {}
func (p Pointer) String() string { return fmt.Sprintf("pointer to %s", p.Base.String()) }
func (p Pointer) Size() int64    { return p.ByteSize }
func (p Pointer) Align() int64   { return p.ByteAlign }

// Array is an array of Base, with Length elements. Length==0 and
// Incomplete==true denotes an array of unknown length ("T[]").
type Array struct {
	Base       Type
	Length     int64
	Incomplete bool
}

func (Array) isType() {}
func (a Array) String() string {
	if a.Incomplete {
		return fmt.Sprintf("array of unknown bound of %s", a.Base.String())
	}
	return fmt.Sprintf("array[%d] of %s", a.Length, a.Base.String())
}

func (a Array) Size() int64 {
	if a.Incomplete {
		return 0
	}
	return a.Base.Size() * a.Length
}
func (a Array) Align() int64 { return a.Base.Align() }

// Param is one entry in a function type's parameter list.
type Param struct {
	Name string // empty for abstract/unnamed parameters
	Type Type
}

// Function is a function type. It is never itself sized; Size/Align exist
// only so Function satisfies Type, and both return 0 (functions have no
// object representation).
type Function struct {
	Return      Type
	Params      []Param
	IsPrototype bool
	IsVararg    bool
	IsNoreturn  bool
}

func (Function) isType() {}
func (f Function) String() string {
	var parts []string
	for _, p := range f.Params {
		parts = append(parts, p.Type.String())
	}
	if f.IsVararg {
		parts = append(parts, "...")
	}
	return fmt.Sprintf("function(%s) returning %s", strings.Join(parts, ", "), f.Return.String())
}
func (Function) Size() int64  { return 0 }
func (Function) Align() int64 { return 0 }

// Member is one field of a struct/union type.
type Member struct {
	Name   string // empty for an anonymous struct/union member
	Type   Type
	Offset int64
}

// Struct represents both struct and union types; IsUnion distinguishes
// them since their layout and compatibility rules differ only in that one
// respect (§4.2, §4.5) and sharing the struct keeps Composite/Compatible
// from duplicating the same recursive-identity logic twice.
type Struct struct {
	Tag        string // empty for an untagged struct/union
	IsUnion    bool
	Members    []Member
	Incomplete bool
	ByteSize   int64
	ByteAlign  int64
}

func (Struct) isType() {}
func (s Struct) String() string {
	kw := "struct"
	if s.IsUnion {
		kw = "union"
	}
	if s.Tag != "" {
		return fmt.Sprintf("%s %s", kw, s.Tag)
	}
	return fmt.Sprintf("%s <anonymous>", kw)
}
func (s Struct) Size() int64  { return s.ByteSize }
func (s Struct) Align() int64 { return s.ByteAlign }

// MemberByName returns the named member, or nil if absent. It does not
// recurse into anonymous members; callers needing that search it
// themselves.
func (s *Struct) MemberByName(name string) *Member {
	for i := range s.Members {
		if s.Members[i].Name == name {
			return &s.Members[i]
		}
	}
	return nil
}

// Enum is the type of an enum tag. Per §4.5 its representation is always
// int; Enum exists as a distinct variant (rather than reusing Basic{Int})
// so that struct/union/enum compatibility can remain identity-based per
// tag, per §4.2.
type Enum struct {
	Tag        string
	Incomplete bool
}

func (Enum) isType()        {}
func (e Enum) String() string {
	if e.Tag != "" {
		return fmt.Sprintf("enum %s", e.Tag)
	}
	return "enum <anonymous>"
}
func (Enum) Size() int64    { return 4 }
func (Enum) Align() int64   { return 4 }

// Qualifier is a bit in the qualifier bitset {const, volatile, restrict}.
type Qualifier uint8

const (
	Const Qualifier = 1 << iota
	Volatile
	Restrict
)

func (q Qualifier) Has(bit Qualifier) bool { return q&bit != 0 }

func (q Qualifier) String() string {
	var parts []string
	if q.Has(Const) {
		parts = append(parts, "const")
	}
	if q.Has(Volatile) {
		parts = append(parts, "volatile")
	}
	if q.Has(Restrict) {
		parts = append(parts, "restrict")
	}
	return strings.Join(parts, " ")
}

// Qualified wraps Base with a non-empty qualifier set. Builder.MakeQualified
// guarantees Quals is never zero and Base is never itself a Qualified
// (qualifying an already-qualified type merges quals per §4.2), so this
// variant's invariant is: at most one Qualified wrapper ever appears on a
// chain.
type Qualified struct {
	Base  Type
	Quals Qualifier
}

func (Qualified) isType() {}
func (q Qualified) String() string {
	return fmt.Sprintf("%s %s", q.Quals.String(), q.Base.String())
}
func (q Qualified) Size() int64  { return q.Base.Size() }
func (q Qualified) Align() int64 { return q.Base.Align() }
