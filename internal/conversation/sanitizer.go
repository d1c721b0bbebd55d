package conversation

import (
	"regexp"
	"strings"
)

// ansiEscape matches single-character Fe escapes and CSI sequences (cursor, colour, erase).
var ansiEscape = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// Sanitize strips terminal escape sequences and invisible characters from
// inbound text so keyword and phrase matching sees what a human would read.
// Tab, newline and carriage return survive.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = ansiEscape.ReplaceAllString(text, "")
	return strings.Map(func(r rune) rune {
		if isInvisible(r) {
			return -1
		}
		return r
	}, text)
}

func isInvisible(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r <= 0x1F, r == 0x7F, r >= 0x80 && r <= 0x9F:
		return true
	}
	switch r {
	case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF', '\u180E',
		'\u200E', '\u200F', '\u202A', '\u202B', '\u202C', '\u202D', '\u202E',
		'\u2066', '\u2067', '\u2068', '\u2069':
		return true
	}
	return r >= 0xE0001 && r <= 0xE007F
}
