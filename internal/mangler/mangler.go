// Package mangler assigns back-end symbol names to the entities the
// declaration processor creates that have no source-level spelling:
// anonymous struct/union/enum tags, string-literal storage, and
// block-scope statics whose C name collides across distinct invocations of
// the same function. It is grounded on the teacher's internal/renamer
// counter-based slot assignment (MinifyRenamer.AssignNames' "next free
// numeric suffix" idea), simplified here to a monotonic per-prefix counter
// since the declaration processor only ever needs uniqueness, not
// frequency-optimized short names.
package mangler

import (
	"fmt"
	"sync/atomic"
)

// Mangler hands out unique back-end symbol names. It is safe for use from
// a single translation (per §5, the declaration processor itself is
// single-threaded). It is not safe for concurrent use: each counter is
// incremented atomically, but the counters map itself is unsynchronized.
type Mangler struct {
	counters map[string]*uint64
}

// New creates an empty Mangler.
func New() *Mangler {
	return &Mangler{counters: make(map[string]*uint64)}
}

// Anonymous returns a fresh, never-before-issued name with the given
// prefix, e.g. Anonymous("struct") -> "struct.0", "struct.1", ...
func (m *Mangler) Anonymous(prefix string) string {
	counter, ok := m.counters[prefix]
	if !ok {
		counter = new(uint64)
		m.counters[prefix] = counter
	}
	n := atomic.AddUint64(counter, 1) - 1
	return fmt.Sprintf("%s.%d", prefix, n)
}

// StaticLocal returns a unique back-end name for a block-scope static
// object, qualified by its enclosing function so that two functions'
// same-named statics never collide in the single flat symbol namespace the
// back-end exposes.
func (m *Mangler) StaticLocal(function, name string) string {
	return m.Anonymous(fmt.Sprintf("%s.%s", function, name))
}

// StringLiteral returns a unique back-end name for a deduplicated string
// literal's storage object (§4.7).
func (m *Mangler) StringLiteral() string {
	return m.Anonymous(".str")
}
