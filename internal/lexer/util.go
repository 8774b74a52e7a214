package lexer

// Identifiers are ASCII; anything else is reported as an invalid character.

func isLower(b byte) bool { return 'a' <= b && b <= 'z' }
func isUpper(b byte) bool { return 'A' <= b && b <= 'Z' }
func isDec(b byte) bool   { return '0' <= b && b <= '9' }

func isIdentStartByte(b byte) bool { return b == '_' || isLower(b) || isUpper(b) }

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

// isBlank matches the whitespace that does not end a line.
func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isSpace(b byte) bool { return isBlank(b) || b == '\n' }
