// Package token defines lexical token kinds and trivia for the sus compiler.
// Invariants:
//   - Token.Text is the exact source text of Token.Span, except for synthesized
//     tokens produced by parser recovery (Synthetic == true, empty span).
//   - Docstrings (@> ... <@) and comments are leading Trivia and never appear
//     in the main token stream.
//   - Keywords are reserved only where the grammar can use them; the parser
//     treats a keyword as Ident wherever only an identifier fits.
//   - Built-in type names (Int, Str, List, ...) are plain TypeIdent tokens.
package token
