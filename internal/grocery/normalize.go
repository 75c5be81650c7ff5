package grocery

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeText collapses stylized Unicode (mathematical bold, accents,
// fullwidth forms) to its plain ASCII-equivalent text and trims whitespace.
// Copy-pasted item names otherwise sort apart from their visually identical
// plain-text twins.
func normalizeText(s string) string {
	out, _, err := transform.String(foldTransformer, strings.TrimSpace(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return out
}
