// Package printer renders a ctype.Type or a cscope.Declaration back into
// C declaration surface syntax, for cmd/cdecl's `translate` output and
// for test fixtures that want to assert on readable text
// rather than on the type tree's Go shape directly.
package printer

import (
	"fmt"
	"strings"

	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
)

// Printer accumulates rendered text into a strings.Builder, the way the
// teacher's own printer does, though there is no minified/pretty mode
// distinction here -- a declaration processor's output is diagnostic
// text, not a re-emitted source artifact, so there is only one rendering.
type Printer struct {
	buf strings.Builder
}

// New creates an empty Printer.
func New() *Printer {
	return &Printer{}
}

func (p *Printer) print(s string) { p.buf.WriteString(s) }

// Type renders t's canonical "declare right, go left" English form
// (ctype.Type's own String() already does this; Type exists as the
// printer's entry point so callers needing declarator-syntax output in
// the future have a seam).
func (p *Printer) Type(t ctype.Type) string {
	return t.String()
}

// Declaration renders one declaration the way `cdecl translate` lists
// the file scope's declarations: its kind, linkage and state, its type,
// and -- for a struct/union -- its member layout.
func (p *Printer) Declaration(d *cscope.Declaration) string {
	p.buf.Reset()
	p.printDecl(d)
	return p.buf.String()
}

func (p *Printer) printDecl(d *cscope.Declaration) {
	p.print(kindWord(d.Kind))
	p.print(" ")
	p.print(d.Name)
	p.print(": ")
	p.print(d.Type.String())
	p.print(" (")
	p.print(linkageWord(d.Linkage))
	if d.Defined {
		p.print(", defined")
	} else if d.Tentative {
		p.print(", tentative")
	}
	if d.Align > 0 {
		p.print(fmt.Sprintf(", aligned %d", d.Align))
	}
	p.print(")")

	if st, ok := unqualify(d.Type).(*ctype.Struct); ok && !st.Incomplete {
		p.printMembers(st)
	}
}

func (p *Printer) printMembers(st *ctype.Struct) {
	p.print(" {\n")
	for _, m := range st.Members {
		name := m.Name
		if name == "" {
			name = "<anonymous>"
		}
		p.print(fmt.Sprintf("    %-16s %-24s offset %d\n", name, m.Type.String(), m.Offset))
	}
	p.print("}")
}

func unqualify(t ctype.Type) ctype.Type {
	inner, _ := ctype.Unqualify(t)
	return inner
}

func kindWord(k cscope.DeclKind) string {
	switch k {
	case cscope.KindFunction:
		return "function"
	case cscope.KindTypedef:
		return "typedef"
	case cscope.KindEnumConstant:
		return "enum constant"
	default:
		return "object"
	}
}

func linkageWord(l cscope.Linkage) string {
	switch l {
	case cscope.LinkageExternal:
		return "external linkage"
	case cscope.LinkageInternal:
		return "internal linkage"
	default:
		return "no linkage"
	}
}
