package internal

import (
	"strings"
	"unicode"
)

// SanitizeFilename creates a safe filename from a string. Deck separators
// ("::") and any other non letter, non digit runes become underscores.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ExportFilename returns the default export file name for a deck
func ExportFilename(deckName, ext string) string {
	name := strings.Trim(SanitizeFilename(deckName), "_")
	if name == "" {
		name = "lingoanki"
	}
	return name + ext
}

// isAlphaNumeric checks if a rune is a letter or digit in any script
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
