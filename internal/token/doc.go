// Package token defines lexical token kinds and trivia for lw sources.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Whitespace and comments never appear in the token stream; they are
//     kept as Leading trivia of the following token.
//   - Keywords are case-sensitive.
package token
