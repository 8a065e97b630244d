// Package frontend wires the lexer, the expression/statement/back-end
// collaborators, and the declaration processor into one callable
// translation step. Nothing here has any logic of its own beyond
// construction order and the single recover boundary §7 requires; it is
// the Go equivalent of `cc`'s `main.c` driving `targinit`/`decl` in a
// loop, grounded the way `internal/parser.New`/`Parse` separates
// "construct" from "run" in the teacher.
package frontend

import (
	"github.com/cfront/cdecl/internal/backend"
	"github.com/cfront/cdecl/internal/cparse"
	"github.com/cfront/cdecl/internal/cscope"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/target"
	"github.com/cfront/cdecl/internal/token"
)

// Result is everything a caller (cmd/cdecl, or a test) needs after a
// successful translation: the file scope every top-level name was
// installed into, and the in-memory back-end's record of what got
// emitted.
type Result struct {
	Target    *target.Target
	FileScope *cscope.Scope
	Recorder  *backend.Recorder
}

// Translate lexes and processes source as one C11 translation unit
// against the named target (empty selects target.Default), running the
// full declaration-processor pipeline: repeatedly call cparse.Decl until
// EOF, then flush tentative definitions, per §4.6's driver contract.
//
// Returns the *diagnostic.Diagnostic that aborted translation, if any,
// as the error -- the single point where diagnostic.Fatal's panic is
// recovered, per §7.
func Translate(source, targetName string) (result *Result, err error) {
	tg, tgErr := target.Init(targetName)
	if tgErr != nil {
		return nil, tgErr
	}

	rec := backend.NewRecorder()
	p := cparse.New(tg, rec)

	var diag *diagnostic.Diagnostic
	func() {
		defer diagnostic.Recover(&diag)
		cur := lexer.NewCursor(lexer.New(source))
		for cur.Tok().Kind != token.EOF {
			if !p.Decl(cur, p.FileScope, false) {
				diagnostic.Raise(positionOf(cur), diagnostic.CodeUnexpectedToken, "",
					"expected a declaration, got %s", cur.Tok().Kind)
			}
		}
		p.EmitTentativeDefinitions()
	}()
	if diag != nil {
		return nil, diag
	}

	return &Result{Target: tg, FileScope: p.FileScope, Recorder: rec}, nil
}

// TypeNameAt parses a single standalone type name starting at byte offset
// at within source, exposing §6's typename(scope) operation directly for
// tooling that wants one type's canonical form without running a whole
// translation (cmd/cdecl's `typename` subcommand).
func TypeNameAt(source, targetName string, at int) (string, error) {
	tg, tgErr := target.Init(targetName)
	if tgErr != nil {
		return "", tgErr
	}
	rec := backend.NewRecorder()
	p := cparse.New(tg, rec)

	var result string
	var diag *diagnostic.Diagnostic
	func() {
		defer diagnostic.Recover(&diag)
		lx := lexer.New(source[at:])
		cur := lexer.NewCursor(lx)
		t, ok := p.TypeName(cur, p.FileScope)
		if !ok {
			diagnostic.Raise(positionOf(cur), diagnostic.CodeUnexpectedToken, "",
				"expected a type name at offset %d", at)
		}
		result = t.String()
	}()
	if diag != nil {
		return "", diag
	}
	return result, nil
}

func positionOf(cur *lexer.Cursor) diagnostic.Position {
	tok := cur.Tok()
	return diagnostic.Position{Line: tok.Loc.Line, Column: tok.Loc.Column, Offset: tok.Loc.Offset}
}
