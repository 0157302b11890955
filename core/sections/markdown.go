package sections

import (
	"fmt"
	"regexp"
	"strings"
)

var headingLine = regexp.MustCompile(`^(#+)\s+(.+)$`)

// FromMarkdown returns the section whose heading contains heading
// (case-insensitive): the heading line and everything after it up to, but
// excluding, the next heading of the same or a shallower level.
func FromMarkdown(markdown, heading string) (string, error) {
	search := strings.ToLower(strings.TrimSpace(heading))

	var out []string
	inSection := false
	level := 0

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if !strings.HasPrefix(trimmed, "#") {
			if inSection {
				out = append(out, line)
			}
			continue
		}

		m := headingLine.FindStringSubmatch(trimmed)
		if m == nil {
			// Hashes without text are content, not a heading.
			if inSection {
				out = append(out, line)
			}
			continue
		}

		lineLevel := len(m[1])
		if !inSection {
			if strings.Contains(strings.ToLower(strings.TrimSpace(m[2])), search) {
				inSection = true
				level = lineLevel
				out = append(out, line)
			}
			continue
		}

		if lineLevel <= level {
			break
		}
		out = append(out, line)
	}

	if !inSection {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, heading)
	}
	return strings.Join(out, "\n"), nil
}
