// Package validation provides input sanitization for the goUserDirectory service.
package validation

import (
	"strings"
	"unicode"

	"github.com/chybatronik/goUserDirectory/internal/types"
	"golang.org/x/text/unicode/norm"
)

// Characters stripped from search input. The query itself is parameter
// bound, so this is defense in depth for anything that later renders the
// term back into markup, not a security boundary for the store.
const markupRunes = "<>\"'&`"

// Blocked Unicode categories for search input
var blockedCategories = []*unicode.RangeTable{
	unicode.Cc, // Control characters
	unicode.Cf, // Format characters (zero-width, etc.)
	unicode.Cs, // Surrogate characters
	unicode.Co, // Private use characters
}

// SanitizeSearchTerm normalizes a raw search query: NFC normalization,
// whitespace trim, truncation to the maximum term length, and removal of
// markup and control characters. An empty result means the input carried
// nothing searchable and the caller should reject the request.
func SanitizeSearchTerm(raw string) string {
	term := norm.NFC.String(raw)
	term = strings.TrimSpace(term)

	if len(term) > types.MaxSearchTermLength {
		term = truncateAtRuneBoundary(term, types.MaxSearchTermLength)
	}

	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		if strings.ContainsRune(markupRunes, r) {
			continue
		}
		if isBlockedRune(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

// isBlockedRune reports whether the rune falls in a blocked Unicode category.
func isBlockedRune(r rune) bool {
	for _, table := range blockedCategories {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}

// truncateAtRuneBoundary cuts s to at most max bytes without splitting a
// multi-byte rune.
func truncateAtRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
