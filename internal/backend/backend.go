// Package backend is a minimal, real implementation of the declaration
// processor's "Back-end code emitter" collaborator (spec §6): it records,
// in memory, every global symbol, data definition, and function the
// declaration driver emits, so that a translation's observable output can
// be inspected (by cmd/cdecl's printer, or by tests) without a real code
// generator.
package backend

import (
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/expr"
	"github.com/cfront/cdecl/internal/repr"
)

// Symbol is the opaque back-end value handle a Declaration's Value field
// holds once it has been emitted or forward-declared.
type Symbol struct {
	Name    string
	Private bool
}

// Function is the back-end's record of one function definition.
type Function struct {
	Name  string
	Type  ctype.Type
	Scope *cscope.Scope
}

// DataEmission records one call to EmitData.
type DataEmission struct {
	Decl *cscope.Declaration
	Init *expr.Initializer
}

// FuncEmission records one call to EmitFunction.
type FuncEmission struct {
	Func       *Function
	IsExternal bool
}

// Backend is the interface cparse.Processor drives. Defined here rather
// than in cparse, next to its in-memory implementation *Recorder, so that
// a test double can substitute a different Backend.
type Backend interface {
	MakeGlobal(name string, isPrivate bool) *Symbol
	MakeIntConst(r repr.Repr, value uint64) *Symbol
	EmitData(decl *cscope.Declaration, init *expr.Initializer)
	EmitFunction(fn *Function, isExternal bool)
	MakeFunc(name string, t ctype.Type, scope *cscope.Scope) *Function
}

// Recorder is the in-memory Backend implementation.
type Recorder struct {
	Globals []*Symbol
	Data    []DataEmission
	Funcs   []FuncEmission
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// MakeGlobal creates and records a global symbol handle.
func (r *Recorder) MakeGlobal(name string, isPrivate bool) *Symbol {
	s := &Symbol{Name: name, Private: isPrivate}
	r.Globals = append(r.Globals, s)
	return s
}

// MakeIntConst creates a symbol for an integer constant value. The
// recorder does not deduplicate constants; a real back-end's constant
// pool would, but nothing in §4 depends on that behavior.
func (r *Recorder) MakeIntConst(rp repr.Repr, value uint64) *Symbol {
	return &Symbol{Name: "", Private: true}
}

// EmitData records a (possibly uninitialized) data definition.
func (r *Recorder) EmitData(decl *cscope.Declaration, init *expr.Initializer) {
	r.Data = append(r.Data, DataEmission{Decl: decl, Init: init})
}

// EmitFunction records a function definition.
func (r *Recorder) EmitFunction(fn *Function, isExternal bool) {
	r.Funcs = append(r.Funcs, FuncEmission{Func: fn, IsExternal: isExternal})
}

// MakeFunc creates a Function record for a just-defined function.
func (r *Recorder) MakeFunc(name string, t ctype.Type, scope *cscope.Scope) *Function {
	return &Function{Name: name, Type: t, Scope: scope}
}
