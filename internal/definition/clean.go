package definition

import (
	"strings"
	"unicode"
)

// Clean returns the readable form of an entry: its text without the usage
// label and the example sentence, ending with a period. Either part may be
// missing.
func Clean(entry Entry) string {
	if entry.node == nil {
		return NormalizeText("")
	}
	return NormalizeText(text(entry.node, entry.annotation(), entry.example()))
}

// NormalizeText fixes up the punctuation of a definition whose example was
// removed. Text already ending with a period is returned as is, minus any
// trailing whitespace. Otherwise everything from the first colon on is
// dropped, since it introduced the example, and a period is appended unless
// the remaining text already ends with one.
func NormalizeText(text string) string {
	if trimmed := strings.TrimRightFunc(text, unicode.IsSpace); strings.HasSuffix(trimmed, ".") {
		return trimmed
	}

	if before, _, found := strings.Cut(text, ":"); found {
		text = before
	}

	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, ".") {
		return text
	}
	return text + "."
}
