// Package diagnostic provides error reporting for the declaration processor.
//
// Per the error handling design, translation terminates at the first error:
// there is no error recovery or synchronization. Fatal implements this as a
// typed panic carrying a *Diagnostic, mirroring the bail-out-via-panic idiom
// go/parser uses internally. Only the outermost translation entry point may
// recover a Fatal; nothing inside the declaration processor itself should.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/cfront/cdecl/internal/sourcemap"
)

// Severity represents the severity level of a diagnostic.
type Severity uint8

const (
	// Error aborts translation immediately (see package doc).
	Error Severity = iota
	// Warning is informational and never aborts translation.
	Warning
	// Note supplies additional context for another diagnostic.
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Position represents a position in source code.
type Position struct {
	Offset int // Byte offset (0-based)
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// Range represents a range in source code.
type Range struct {
	Start Position
	End   Position
}

// RelatedInfo provides additional location information for a diagnostic.
type RelatedInfo struct {
	Range   Range
	Message string
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	Code     DiagnosticCode
	Message  string
	Range    Range
	Related  []RelatedInfo
	// ClauseRef names the C11 clause the diagnostic enforces, e.g. "6.7.2/2".
	ClauseRef string
}

// Error satisfies the error interface so a Diagnostic can be returned
// directly by any function that fails.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Message)
}

// Fatal is the payload of the panic used to unwind out of the declaration
// processor at the first error, per the "terminate at first error" contract.
// It carries the Diagnostic that caused the abort.
type Fatal struct {
	Diag *Diagnostic
}

func (f *Fatal) Error() string { return f.Diag.Error() }

// Raise panics with a Fatal wrapping a freshly built error Diagnostic at pos.
// Callers inside the declaration processor use this instead of returning an
// error, so that the single recover in the translation entry point is the
// only place translation can stop.
func Raise(pos Position, code DiagnosticCode, clauseRef, format string, args ...interface{}) {
	panic(&Fatal{Diag: &Diagnostic{
		Severity:  Error,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Range:     Range{Start: pos, End: pos},
		ClauseRef: clauseRef,
	}})
}

// Recover should be deferred exactly once, at the outermost entry point.
// If the recovered value is a *Fatal, *diagOut is set to its diagnostic;
// any other panic value is re-panicked.
func Recover(diagOut **Diagnostic) {
	if r := recover(); r != nil {
		if f, ok := r.(*Fatal); ok {
			*diagOut = f.Diag
			return
		}
		panic(r)
	}
}

// DiagnosticList collects diagnostics during translation. Only warnings and
// notes ever accumulate here in normal operation, since errors abort via
// Fatal; it remains useful for tooling that wants to gather non-fatal
// findings.
type DiagnosticList struct {
	diagnostics []Diagnostic
	lineIndex   *sourcemap.LineIndex
	source      string
	hasErrors   bool
}

// NewDiagnosticList creates a new diagnostic list for the given source.
func NewDiagnosticList(source string) *DiagnosticList {
	return &DiagnosticList{
		diagnostics: make([]Diagnostic, 0),
		lineIndex:   sourcemap.NewLineIndex(source),
		source:      source,
	}
}

// Add adds a diagnostic to the list.
func (dl *DiagnosticList) Add(d Diagnostic) {
	dl.diagnostics = append(dl.diagnostics, d)
	if d.Severity == Error {
		dl.hasErrors = true
	}
}

// AddWarning adds a warning diagnostic at the given byte offset.
func (dl *DiagnosticList) AddWarning(offset int, code DiagnosticCode, message string) {
	dl.Add(Diagnostic{
		Severity: Warning,
		Code:     code,
		Message:  message,
		Range:    dl.MakeRange(offset, offset+1),
	})
}

// AddNote adds a note diagnostic at the given byte offset.
func (dl *DiagnosticList) AddNote(offset int, message string) {
	dl.Add(Diagnostic{
		Severity: Note,
		Message:  message,
		Range:    dl.MakeRange(offset, offset+1),
	})
}

// MakePosition converts a byte offset to a Position.
func (dl *DiagnosticList) MakePosition(offset int) Position {
	line, col := dl.lineIndex.ByteOffsetToLineColumn(offset)
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: col + 1,
	}
}

// MakeRange converts byte offsets to a Range.
func (dl *DiagnosticList) MakeRange(start, end int) Range {
	return Range{
		Start: dl.MakePosition(start),
		End:   dl.MakePosition(end),
	}
}

// HasErrors returns true if there are any error-level diagnostics.
func (dl *DiagnosticList) HasErrors() bool {
	return dl.hasErrors
}

// Diagnostics returns all collected diagnostics.
func (dl *DiagnosticList) Diagnostics() []Diagnostic {
	return dl.diagnostics
}

// Warnings returns only warning-level diagnostics.
func (dl *DiagnosticList) Warnings() []Diagnostic {
	var warnings []Diagnostic
	for _, d := range dl.diagnostics {
		if d.Severity == Warning {
			warnings = append(warnings, d)
		}
	}
	return warnings
}

// Count returns the total number of diagnostics.
func (dl *DiagnosticList) Count() int {
	return len(dl.diagnostics)
}

// Format formats all diagnostics as a human-readable string.
func (dl *DiagnosticList) Format() string {
	if len(dl.diagnostics) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, d := range dl.diagnostics {
		sb.WriteString(dl.FormatDiagnostic(&d))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatDiagnostic formats a single diagnostic with source context.
func (dl *DiagnosticList) FormatDiagnostic(d *Diagnostic) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d:%d: %s: %s\n",
		d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Message))

	if d.ClauseRef != "" {
		sb.WriteString(fmt.Sprintf("  [C11 %s]\n", d.ClauseRef))
	}

	sourceLine := dl.getSourceLine(d.Range.Start.Line)
	if sourceLine != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", sourceLine))
		caret := strings.Repeat(" ", d.Range.Start.Column-1+4) + "^"
		if d.Range.End.Line == d.Range.Start.Line && d.Range.End.Column > d.Range.Start.Column {
			caret += strings.Repeat("~", d.Range.End.Column-d.Range.Start.Column-1)
		}
		sb.WriteString(caret)
		sb.WriteByte('\n')
	}

	for _, rel := range d.Related {
		sb.WriteString(fmt.Sprintf("  %d:%d: note: %s\n",
			rel.Range.Start.Line, rel.Range.Start.Column, rel.Message))
	}

	return sb.String()
}

func (dl *DiagnosticList) getSourceLine(line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(dl.source, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// Clear removes all diagnostics.
func (dl *DiagnosticList) Clear() {
	dl.diagnostics = dl.diagnostics[:0]
	dl.hasErrors = false
}

// DiagnosticCode identifies the kind of rule a diagnostic enforces.
type DiagnosticCode string

const (
	// Lexical/syntax errors (E00xx)
	CodeUnexpectedToken    DiagnosticCode = "E0001"
	CodeUnterminatedString DiagnosticCode = "E0002"
	CodeInvalidNumber      DiagnosticCode = "E0003"

	// Scope / linkage errors (E01xx) — §4.1, §4.6
	CodeUndeclaredIdentifier DiagnosticCode = "E0100"
	CodeRedeclaration         DiagnosticCode = "E0101"
	CodeConflictingLinkage    DiagnosticCode = "E0102"
	CodeNoLinkageRedeclared   DiagnosticCode = "E0103"
	CodeDuplicateTag          DiagnosticCode = "E0104"
	CodeDuplicateMember       DiagnosticCode = "E0105"

	// Specifier errors (E02xx) — §4.3
	CodeInvalidTypeSpecifierCombo DiagnosticCode = "E0200"
	CodeMissingTypeSpecifier      DiagnosticCode = "E0201"
	CodeDuplicateStorageClass     DiagnosticCode = "E0202"
	CodeInvalidAlignas            DiagnosticCode = "E0203"
	CodeConflictingQualifiers     DiagnosticCode = "E0204"

	// Declarator errors (E03xx) — §4.4
	CodeInvalidDeclarator    DiagnosticCode = "E0300"
	CodeArraySizeOverflow    DiagnosticCode = "E0301"
	CodeIncompleteArrayType  DiagnosticCode = "E0302"
	CodeFunctionReturnsArray DiagnosticCode = "E0303"
	CodeFunctionReturnsFunc  DiagnosticCode = "E0304"

	// Tag/member errors (E04xx) — §4.5
	CodeIncompleteMemberType DiagnosticCode = "E0400"
	CodeInvalidAnonymousMember DiagnosticCode = "E0401"

	// Type compatibility errors (E05xx) — §3, §8
	CodeIncompatibleRedeclaration DiagnosticCode = "E0500"
	CodeIncompatibleComposite     DiagnosticCode = "E0501"

	// Driver / tentative-definition errors (E06xx) — §4.6
	CodeTentativeNeverCompleted DiagnosticCode = "E0600"
	CodeMultipleDefinitions     DiagnosticCode = "E0601"
)

// DiagnosticFilter controls which diagnostics are reported, independent of
// severity. Mirrors DiagnosticList's role as a sink for non-fatal findings.
type DiagnosticFilter struct {
	Rules map[string]Severity
}

// NewDiagnosticFilter creates a new filter with default settings.
func NewDiagnosticFilter() *DiagnosticFilter {
	return &DiagnosticFilter{Rules: make(map[string]Severity)}
}

// SetRule sets the severity for a diagnostic rule.
func (f *DiagnosticFilter) SetRule(rule string, severity Severity) {
	f.Rules[rule] = severity
}

// DisableRule disables a diagnostic rule.
func (f *DiagnosticFilter) DisableRule(rule string) {
	f.Rules[rule] = Severity(255)
}

// IsDisabled returns true if the rule is disabled.
func (f *DiagnosticFilter) IsDisabled(rule string) bool {
	if sev, ok := f.Rules[rule]; ok {
		return sev == Severity(255)
	}
	return false
}

// GetSeverity returns the severity for a rule, or the default if not set.
func (f *DiagnosticFilter) GetSeverity(rule string, defaultSev Severity) Severity {
	if sev, ok := f.Rules[rule]; ok {
		if sev == Severity(255) {
			return defaultSev
		}
		return sev
	}
	return defaultSev
}
