// Package target describes the ABI-visible facts the declaration processor
// needs in order to size and align types: pointer width, whether plain
// char is signed, and the representation of long/unsigned long. It is the
// "Target descriptor" collaborator the declaration processor consumes
// rather than computes, modeled directly on targ.c's alltargs table.
package target

import "fmt"

// Target is an immutable descriptor for one ABI. Once Init selects one, it
// is process-wide and never mutated, matching the concurrency model's
// "configuration is set once before any translation begins" rule.
type Target struct {
	Name string

	// PointerSize is the size in bytes of an object pointer, and (per
	// targ.c) also of a general-purpose register (regsize).
	PointerSize int
	// PointerAlign is the alignment in bytes of an object pointer.
	PointerAlign int

	// SignedChar reports whether plain `char` is a signed type on this
	// target (x86_64-sysv: yes; aarch64/riscv: no).
	SignedChar bool

	// LongSize/LongAlign give the size and alignment of `long` and
	// `unsigned long`; targ.c switches these between the 4-byte (ILP32,
	// riscv32) and 8-byte (LP64, everything else here) representations
	// based on PointerSize.
	LongSize  int
	LongAlign int

	// WCharSigned reports whether wchar_t is represented by a signed
	// underlying integer type (int) rather than an unsigned one (unsigned
	// int). x86_64-sysv and riscv use signed int; aarch64 uses unsigned.
	WCharSigned bool
}

// all mirrors targ.c's alltargs table.
var all = []Target{
	{
		Name:         "x86_64-sysv",
		PointerSize:  8,
		PointerAlign: 8,
		SignedChar:   true,
		LongSize:     8,
		LongAlign:    8,
		WCharSigned:  true,
	},
	{
		Name:         "aarch64",
		PointerSize:  8,
		PointerAlign: 8,
		SignedChar:   false,
		LongSize:     8,
		LongAlign:    8,
		WCharSigned:  false,
	},
	{
		Name:         "riscv64",
		PointerSize:  8,
		PointerAlign: 8,
		SignedChar:   false,
		LongSize:     8,
		LongAlign:    8,
		WCharSigned:  true,
	},
	{
		Name:         "riscv32",
		PointerSize:  4,
		PointerAlign: 4,
		SignedChar:   false,
		LongSize:     4,
		LongAlign:    4,
		WCharSigned:  true,
	},
}

// Default is the target selected when no name is given, matching targ.c's
// "!name -> alltargs[0]" fallback.
const Default = "x86_64-sysv"

// All returns the known target descriptors, in the order targ.c declares
// them.
func All() []Target {
	out := make([]Target, len(all))
	copy(out, all)
	return out
}

// Lookup finds a target by name. An empty name resolves to Default.
func Lookup(name string) (Target, error) {
	if name == "" {
		name = Default
	}
	for _, t := range all {
		if t.Name == name {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("unknown target %q", name)
}

// Init selects the target a translation will use. It is the only
// configuration step the declaration processor requires (§5, §6); callers
// should call it once before constructing a cparse.Processor.
func Init(name string) (*Target, error) {
	t, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
