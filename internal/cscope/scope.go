// Package cscope implements the declaration processor's scope table (§4.1):
// nested name->declaration and name->tag maps with parent pointers. It is
// adapted from the teacher's internal/ast.Scope (itself a parent-pointer
// map of ScopeMember entries), generalized from one member map to the two
// independent namespaces C keeps (ordinary identifiers vs. struct/union/
// enum tags) since the two never collide by name.
package cscope

import "github.com/cfront/cdecl/internal/ctype"

// Linkage is the relation between identifiers declared in possibly
// different scopes or translation units (§3, GLOSSARY).
type Linkage uint8

const (
	LinkageNone Linkage = iota
	LinkageInternal
	LinkageExternal
)

func (l Linkage) String() string {
	switch l {
	case LinkageNone:
		return "none"
	case LinkageInternal:
		return "internal"
	case LinkageExternal:
		return "external"
	default:
		return "unknown"
	}
}

// DeclKind classifies what a Declaration names.
type DeclKind uint8

const (
	KindObject DeclKind = iota
	KindFunction
	KindTypedef
	KindEnumConstant
)

// Declaration is §3's Declaration record: kind, type, linkage, alignment,
// an opaque back-end value handle, and the definition/tentative state the
// driver (§4.6) maintains. Next threads the declaration onto the
// owning Processor's tentative-definitions list; it is nil otherwise.
type Declaration struct {
	Name      string
	Kind      DeclKind
	Type      ctype.Type
	Linkage   Linkage
	Align     int64
	Value     interface{} // opaque back-end symbol handle
	Defined   bool
	Tentative bool

	Next *Declaration // tentative-definitions list link; nil unless enqueued
}

// Scope is a nested pair of name tables: decls (ordinary identifiers,
// typedefs, enum constants) and tags (struct/union/enum tags), each
// shadowing the parent scope's table of the same name.
type Scope struct {
	Parent *Scope
	decls  map[string]*Declaration
	tags   map[string]ctype.Type
}

// NewScope creates a scope whose lookups fall back to parent when parent
// is non-nil. Pass nil to create the file (translation-unit) scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent: parent,
		decls:  make(map[string]*Declaration),
		tags:   make(map[string]ctype.Type),
	}
}

// Push creates and returns a new child scope of parent, e.g. when entering
// a block or a function's parameter/body scope.
func Push(parent *Scope) *Scope {
	return NewScope(parent)
}

// Pop returns s's parent. It performs no mutation: scopes are never
// destroyed, only abandoned, matching the arena-lifetime ownership model
// of §5.
func Pop(s *Scope) *Scope {
	return s.Parent
}

// IsFileScope reports whether s is the distinguished root scope that
// persists for the whole translation unit.
func (s *Scope) IsFileScope() bool {
	return s.Parent == nil
}

// LookupDecl looks up name in s's decls table. If recurse is true and name
// is absent, the lookup continues up the parent chain.
func (s *Scope) LookupDecl(name string, recurse bool) (*Declaration, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if d, ok := sc.decls[name]; ok {
			return d, sc
		}
		if !recurse {
			return nil, nil
		}
	}
	return nil, nil
}

// LookupTag looks up a tag name in s's tags table, optionally recursing to
// parent scopes.
func (s *Scope) LookupTag(name string, recurse bool) (ctype.Type, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if t, ok := sc.tags[name]; ok {
			return t, sc
		}
		if !recurse {
			return nil, nil
		}
	}
	return nil, nil
}

// InstallDecl installs or overwrites name in s's own decls table
// (installation never touches parent scopes). A redeclaration in the same
// scope updates the entry in place per §4.6: callers that need to mutate
// an existing Declaration should fetch it via LookupDecl(s, name, false)
// and mutate the returned pointer, then re-install if replacing it
// entirely.
func (s *Scope) InstallDecl(name string, d *Declaration) {
	s.decls[name] = d
}

// InstallTag installs or overwrites a tag name in s's own tags table.
func (s *Scope) InstallTag(name string, t ctype.Type) {
	s.tags[name] = t
}

// Decls exposes s's own declaration table (not its ancestors') for
// read-only iteration, e.g. by internal/invariants's post-hoc checkers.
// Callers must not mutate the returned map.
func (s *Scope) Decls() map[string]*Declaration {
	return s.decls
}

// IsTypedefName reports whether name resolves (recursively) to a typedef
// declaration visible from s. This is the single well-named predicate §9
// calls for: the declarator parser's only point of contact with the scope
// table, used to disambiguate a parenthesized declarator from a function
// parameter list (§4.4) and to terminate specifier parsing (§4.3).
func (s *Scope) IsTypedefName(name string) bool {
	d, _ := s.LookupDecl(name, true)
	return d != nil && d.Kind == KindTypedef
}
