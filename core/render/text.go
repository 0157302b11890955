// Package render formats pipeline responses and errors for callers: the
// text an agent reads from the tool, and JSON for scripts.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gaurav-prasanna/html2md/core"
)

// tocShown is how many table of contents entries the text summary lists.
const tocShown = 20

var numbers = message.NewPrinter(language.English)

// Text renders resp as the Markdown message returned by the tool.
func Text(resp *core.Response) string {
	if resp.Kind == core.KindSummary && resp.Summary != nil {
		return summaryText(resp.Summary)
	}
	return fullText(resp)
}

func fullText(resp *core.Response) string {
	r := resp.Result

	var sb strings.Builder
	sb.WriteString("# Conversion Successful\n\n")
	fmt.Fprintf(&sb, "**URL:** %s\n", r.URL)
	fmt.Fprintf(&sb, "**Original Size:** %s\n", humanBytes(r.RawSize))
	fmt.Fprintf(&sb, "**Markdown Size:** %s\n", humanBytes(r.MarkdownSize))
	fmt.Fprintf(&sb, "**Estimated Tokens:** %s\n", numbers.Sprintf("%d", resp.EstimatedTokens))
	fmt.Fprintf(&sb, "**Compression:** %.1f%%", r.CompressionPercent())
	if resp.Section != "" {
		fmt.Fprintf(&sb, "\n**Section extracted:** %s", resp.Section)
	}
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(r.Markdown)
	sb.WriteString("\n")
	return sb.String()
}

func summaryText(s *core.Summary) string {
	st := s.Statistics

	toc := s.TableOfContents
	shown := toc
	if len(shown) > tocShown {
		shown = shown[:tocShown]
	}
	tocText := strings.Join(shown, "\n")
	if len(toc) > tocShown {
		tocText += fmt.Sprintf("\n... and %d more headings", len(toc)-tocShown)
	}

	var sb strings.Builder
	sb.WriteString("# Document Too Large - Summary Returned\n\n")
	fmt.Fprintf(&sb, "**URL:** %s\n", s.URL)
	fmt.Fprintf(&sb, "**Full content saved to:** `%s`\n\n", s.SavedTo)

	sb.WriteString("## Statistics\n")
	numbers.Fprintf(&sb, "- **Original HTML:** %s (%d bytes)\n", st.OriginalHuman, st.OriginalBytes)
	numbers.Fprintf(&sb, "- **Cleaned HTML:** %s (%d bytes)\n", st.CleanedHuman, st.CleanedBytes)
	numbers.Fprintf(&sb, "- **Markdown:** %s (%d bytes)\n", st.MarkdownHuman, st.MarkdownBytes)
	numbers.Fprintf(&sb, "- **Estimated tokens:** %d\n", st.EstimatedTokens)
	fmt.Fprintf(&sb, "- **Compression:** %s (%s)\n\n", st.CompressionPercent, st.CompressionRatio)

	sb.WriteString("## Table of Contents\n")
	sb.WriteString(tocText)
	sb.WriteString("\n\n## Preview (first 500 words)\n")
	sb.WriteString(s.Preview)
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(s.Help)
	sb.WriteString("\n")
	return sb.String()
}

// humanBytes formats n with one decimal and a binary unit.
func humanBytes(n int) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
