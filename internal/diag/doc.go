// Package diag defines the diagnostic model shared by the lexer, the parser
// and every renderer.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string form (LEX1001,
//     SYN2001, ...). Code.Class maps it to lexical error, unexpected token
//     or unexpected end of input.
//   - Message: short human text.
//   - Primary: the source.Span the finding points at.
//   - Expected / Found: for syntax errors, the alternatives the grammar
//     accepted at that point and a description of the token actually seen.
//   - Notes and Fixes: optional secondary spans and suggested edits.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. ReportBuilder collects optional parts
// (expected set, notes, fixes) and emits once; reporters that implement
// DiagnosticReporter receive the full record. BagReporter stores into a Bag,
// which caps the count and sorts deterministically.
//
// Package diag performs no formatting beyond the golden one-line form;
// rendering lives in internal/diagfmt.
package diag
