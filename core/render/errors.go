package render

import (
	"errors"

	"github.com/gaurav-prasanna/html2md/core"
)

// Error renders err as the text returned to the caller in place of a
// conversion. The prefix tells the caller which stage failed.
func Error(err error) string {
	if errors.Is(err, core.ErrUsage) {
		return "Error: " + err.Error()
	}

	kind, ok := core.KindOf(err)
	if !ok {
		return "Unexpected error: " + err.Error()
	}
	switch kind {
	case core.KindFetch:
		return "Error fetching URL: " + err.Error()
	case core.KindParse:
		return "Error parsing/converting content: " + err.Error()
	default:
		return "Conversion error: " + err.Error()
	}
}
