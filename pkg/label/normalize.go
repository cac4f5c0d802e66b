package label

import (
	"regexp"
	"strings"
)

var (
	trailingPunct = regexp.MustCompile(`[:.\s]+$`)
	nonWordChars  = regexp.MustCompile(`[^\w\s-]`)
)

// NormalizeKey canonicalizes a field name or detected key for fuzzy matching:
// lower-case, trailing colon/period/whitespace runs stripped, all characters
// other than word characters, whitespace and hyphens removed, surrounding
// whitespace trimmed. Field names and extracted keys go through the same
// normalization so both sides of a suggestion match use the same form.
func NormalizeKey(text string) string {
	if text == "" {
		return ""
	}
	clean := strings.ToLower(text)
	clean = trailingPunct.ReplaceAllString(clean, "")
	clean = nonWordChars.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}
