// Package sections handles documents too large to hand back whole: it
// builds tables of contents and previews, cuts single sections out of
// HTML or Markdown, and persists the full text for later reading.
package sections

import (
	"errors"
	"strings"
)

// ErrSectionNotFound is returned when no element or heading matches.
var ErrSectionNotFound = errors.New("section not found")

// MaxTOCHeadings caps the table of contents in a summary.
const MaxTOCHeadings = 50

// TableOfContents returns up to max heading lines of markdown, trimmed but
// otherwise verbatim, in source order.
func TableOfContents(markdown string, max int) []string {
	var headings []string
	for _, line := range strings.Split(markdown, "\n") {
		if len(headings) >= max {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			headings = append(headings, trimmed)
		}
	}
	return headings
}
