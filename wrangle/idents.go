package main

import (
	"strings"
	"unicode"
)

func makeIdentUnderscores(inp string) string {
	var b strings.Builder
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// isIdent reports whether a mnemonic can be used as-is as an enum member
// name in the generated source.
func isIdent(inp string) bool {
	if inp == "" {
		return false
	}
	for i, r := range inp {
		switch {
		case r == '_', r < unicode.MaxASCII && unicode.IsLetter(r):
		case r < unicode.MaxASCII && unicode.IsDigit(r):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
