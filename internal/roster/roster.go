package roster

import (
	"regexp"
	"strings"
)

var separator = regexp.MustCompile(`\r?\n|,`)

// Parse splits free text into names. Newlines (LF or CRLF) and commas
// separate entries; surrounding whitespace is trimmed and blank entries
// are dropped. Order and duplicates are preserved.
func Parse(text string) []string {
	var names []string
	for _, piece := range separator.Split(text, -1) {
		if name := strings.TrimSpace(piece); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Clean trims every entry of an already split list and drops blanks.
func Clean(entries []string) []string {
	var names []string
	for _, e := range entries {
		if name := strings.TrimSpace(e); name != "" {
			names = append(names, name)
		}
	}
	return names
}
