// Package repr computes the back-end representation handle ("repr") that
// every ctype.Type carries per §3's data model, without baking a specific
// code generator's notion of representation into the ctype package itself.
// decl.c keeps repr as a field directly on struct type; we keep ctype.Type
// free of back-end concerns and compute Repr on demand from a type (whose
// sizes ctype.Builder already resolved for the target), the way a separate
// lowering pass would.
package repr

import (
	"fmt"

	"github.com/cfront/cdecl/internal/ctype"
)

// Class classifies how a type is passed/returned/stored at the
// representation level: as an integer register value, a floating
// register value, by address (aggregates), or as no value at all (void,
// function designators before decay).
type Class uint8

const (
	ClassVoid Class = iota
	ClassInteger
	ClassFloat
	ClassPointer
	ClassAggregate
)

func (c Class) String() string {
	switch c {
	case ClassVoid:
		return "void"
	case ClassInteger:
		return "integer"
	case ClassFloat:
		return "float"
	case ClassPointer:
		return "pointer"
	case ClassAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// Repr is the back-end representation handle attached (conceptually) to a
// ctype.Type: its class, size, and alignment, all target-resolved.
type Repr struct {
	Class Class
	Size  int64
	Align int64
}

func (r Repr) String() string {
	return fmt.Sprintf("%s(size=%d,align=%d)", r.Class, r.Size, r.Align)
}

// Of computes the Repr for t. It mirrors Size()/Align() already present on
// ctype.Type but additionally classifies the type, which ctype
// deliberately does not do (classification is a back-end concern, not a
// type-system one).
func Of(t ctype.Type) Repr {
	inner, _ := ctype.Unqualify(t)
	switch v := inner.(type) {
	case *ctype.Void:
		return Repr{Class: ClassVoid}
	case *ctype.Basic:
		if v.Kind.IsFloating() {
			return Repr{Class: ClassFloat, Size: v.Size(), Align: v.Align()}
		}
		return Repr{Class: ClassInteger, Size: v.Size(), Align: v.Align()}
	case *ctype.Pointer:
		return Repr{Class: ClassPointer, Size: v.Size(), Align: v.Align()}
	case *ctype.Enum:
		return Repr{Class: ClassInteger, Size: v.Size(), Align: v.Align()}
	case *ctype.Array, *ctype.Struct:
		return Repr{Class: ClassAggregate, Size: inner.Size(), Align: inner.Align()}
	case *ctype.Function:
		return Repr{Class: ClassVoid}
	default:
		return Repr{Class: ClassVoid}
	}
}
