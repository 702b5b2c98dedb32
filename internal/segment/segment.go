// Package segment splits long input into paragraphs so each one can go
// through the humanize pipeline as a separate request.
package segment

import (
	"regexp"
	"strings"
	"unicode"
)

var blankLine = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// Paragraphs splits text at blank lines and drops blank paragraphs. When
// maxRunes > 0, any paragraph longer than maxRunes code points is split
// further, preferring (in order):
//  1. Sentence-ending punctuation (. ! ?) followed by whitespace
//  2. Whitespace (word boundary)
//  3. Hard cut at maxRunes
//
// Returned pieces are trimmed.
func Paragraphs(text string, maxRunes int) []string {
	var out []string
	for _, p := range blankLine.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, split(p, maxRunes)...)
	}
	return out
}

// Join reassembles processed paragraphs with a blank line between them.
func Join(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

func split(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		return []string{text}
	}

	var pieces []string
	remaining := []rune(text)
	for len(remaining) > maxRunes {
		at := findSplit(remaining, maxRunes)
		if piece := strings.TrimSpace(string(remaining[:at])); piece != "" {
			pieces = append(pieces, piece)
		}
		remaining = []rune(strings.TrimSpace(string(remaining[at:])))
	}
	if len(remaining) > 0 {
		pieces = append(pieces, string(remaining))
	}
	return pieces
}

// findSplit returns the rune index at which to cut, searching backwards from
// maxRunes for the best boundary. len(runes) must exceed maxRunes.
func findSplit(runes []rune, maxRunes int) int {
	for i := maxRunes; i > 0; i-- {
		r := runes[i-1]
		if (r == '.' || r == '!' || r == '?') && unicode.IsSpace(runes[i]) {
			return i
		}
	}

	for i := maxRunes; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}

	return maxRunes
}
