// Package invariants implements post-hoc checkers for §8's testable
// properties: they walk a completed translation's scope and emitted
// output looking for violations, rather than preventing them during
// parsing -- the same walk-and-report shape as the teacher's
// internal/validator, re-themed from WGSL uniformity/type rules to this
// repository's structural layout and emission-bookkeeping invariants.
package invariants

import (
	"fmt"

	"github.com/cfront/cdecl/internal/backend"
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
)

// Violation is one broken invariant, naming the declaration or type it
// was found on and what was expected.
type Violation struct {
	Subject string
	Message string
}

func (v Violation) String() string { return fmt.Sprintf("%s: %s", v.Subject, v.Message) }

// Result collects every violation a check pass found. Valid is true iff
// Violations is empty, mirroring the teacher's Result{Valid, Diagnostics}
// shape.
type Result struct {
	Valid      bool
	Violations []Violation
}

func newResult(v []Violation) Result {
	return Result{Valid: len(v) == 0, Violations: v}
}

// CheckScope walks every declaration installed directly in scope (not its
// parents) and checks every struct/union type it finds for §8's layout
// properties: a complete aggregate's size is a multiple of its alignment,
// every member's offset is within bounds and itself aligned to the
// member's own alignment, and a union's members all share offset zero.
func CheckScope(scope *cscope.Scope) Result {
	var violations []Violation
	seen := make(map[*ctype.Struct]bool)
	for name, d := range scope.Decls() {
		checkType(name, d.Type, seen, &violations)
	}
	return newResult(violations)
}

func checkType(subject string, t ctype.Type, seen map[*ctype.Struct]bool, out *[]Violation) {
	switch v := t.(type) {
	case *ctype.Struct:
		checkStruct(subject, v, seen, out)
	case *ctype.Pointer:
		// The seen set stops self-referential structs (a member pointing
		// back at its own struct) from recursing forever.
		checkType(subject, v.Base, seen, out)
	case *ctype.Array:
		checkType(subject, v.Base, seen, out)
	case *ctype.Qualified:
		checkType(subject, v.Base, seen, out)
	case *ctype.Function:
		checkType(subject, v.Return, seen, out)
		for _, param := range v.Params {
			if param.Type != nil {
				checkType(subject+" parameter "+param.Name, param.Type, seen, out)
			}
		}
	}
}

func checkStruct(subject string, st *ctype.Struct, seen map[*ctype.Struct]bool, out *[]Violation) {
	if st.Incomplete || seen[st] {
		return
	}
	seen[st] = true

	if st.ByteAlign > 0 && st.ByteSize%st.ByteAlign != 0 {
		*out = append(*out, Violation{subject, fmt.Sprintf(
			"size %d is not a multiple of alignment %d", st.ByteSize, st.ByteAlign)})
	}

	for _, m := range st.Members {
		if st.IsUnion {
			if m.Offset != 0 {
				*out = append(*out, Violation{subject, fmt.Sprintf(
					"union member %q has nonzero offset %d", m.Name, m.Offset)})
			}
		} else {
			if m.Offset%m.Type.Align() != 0 {
				*out = append(*out, Violation{subject, fmt.Sprintf(
					"member %q at offset %d is not aligned to %d", m.Name, m.Offset, m.Type.Align())})
			}
			if m.Offset+m.Type.Size() > st.ByteSize {
				*out = append(*out, Violation{subject, fmt.Sprintf(
					"member %q extends past the struct's size %d", m.Name, st.ByteSize)})
			}
		}
		checkType(subject+"."+m.Name, m.Type, seen, out)
	}
}

// CheckEmissions verifies the back-end recorder's bookkeeping invariants:
// every emitted name appears at most once (the tentative-definitions
// list and the immediate-emission path in cparse.Processor.declObject
// must never both fire for the same declaration), and no function name
// was handed to EmitFunction more than once.
func CheckEmissions(rec *backend.Recorder) Result {
	var violations []Violation
	seenData := make(map[string]int)
	for _, e := range rec.Data {
		seenData[e.Decl.Name]++
	}
	for name, n := range seenData {
		if n > 1 {
			violations = append(violations, Violation{name, fmt.Sprintf(
				"emitted as data %d times, want at most once", n)})
		}
	}

	seenFuncs := make(map[string]int)
	for _, e := range rec.Funcs {
		seenFuncs[e.Func.Name]++
	}
	for name, n := range seenFuncs {
		if n > 1 {
			violations = append(violations, Violation{name, fmt.Sprintf(
				"emitted as a function definition %d times, want at most once", n)})
		}
	}

	return newResult(violations)
}
