package cparse

import (
	"testing"

	"github.com/cfront/cdecl/internal/backend"
	"github.com/cfront/cdecl/internal/diagnostic"
	"github.com/cfront/cdecl/internal/lexer"
	"github.com/cfront/cdecl/internal/target"
	"github.com/cfront/cdecl/internal/token"
)

// newTestProcessor builds a Processor over the x86_64-sysv target and an
// in-memory recorder, the configuration every scenario in this package
// tests against unless it says otherwise.
func newTestProcessor(t *testing.T) (*Processor, *backend.Recorder) {
	t.Helper()
	tg, err := target.Init(target.Default)
	if err != nil {
		t.Fatalf("target.Init: %v", err)
	}
	rec := backend.NewRecorder()
	return New(tg, rec), rec
}

// translate drives every top-level declaration in source through p,
// installing into p.FileScope, then flushes tentative definitions.
// Returns the diagnostic, if any, that aborted translation.
func translate(p *Processor, source string) (diag *diagnostic.Diagnostic) {
	defer diagnostic.Recover(&diag)
	cur := lexer.NewCursor(lexer.New(source))
	for cur.Tok().Kind != token.EOF {
		if !p.Decl(cur, p.FileScope, false) {
			diagnostic.Raise(diagnostic.Position{}, diagnostic.CodeUnexpectedToken, "", "unexpected token %s", cur.Tok().Kind)
		}
	}
	p.EmitTentativeDefinitions()
	return nil
}

// mustNotDiagnose fails the test with the diagnostic's message if
// translation raised one.
func mustNotDiagnose(t *testing.T, diag *diagnostic.Diagnostic) {
	t.Helper()
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %s", diag.Error())
	}
}

// cursorOn returns a cursor positioned at the first token of source, for
// tests that parse one standalone construct (a type name, a declarator)
// rather than a whole translation unit.
func cursorOn(t *testing.T, source string) *lexer.Cursor {
	t.Helper()
	return lexer.NewCursor(lexer.New(source))
}
