package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SanitizeSnippet strips HTML markup from a provider-supplied snippet and
// collapses it into a single line of plain text. Providers are inconsistent
// about embedding markup in the content field, so everything goes through here
// before it is persisted.
func SanitizeSnippet(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "<>") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}

	s = strings.NewReplacer("\n", " ", "\t", " ", "\r", " ", "\f", " ").Replace(s)
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}

	return TruncateRunes(CleanToValidUTF8(strings.TrimSpace(s)), maxRunes)
}
