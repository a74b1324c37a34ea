package internal

import (
	"strings"
	"unicode"
)

// Version is the lexikort release, overridden at build time with -ldflags
var Version = "0.3.0"

// SanitizeFilename creates a safe file or directory name from a string.
// Letters of any script, digits, spaces and -_.() are kept; everything
// else becomes an underscore.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if isFilenameSafe(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	result := b.String()
	if result == "" || result == "." || result == ".." {
		return "_"
	}
	return result
}

// isFilenameSafe checks if a rune may appear in a file name unchanged
func isFilenameSafe(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', '-', '_', '.', '(', ')':
		return true
	}
	return false
}
