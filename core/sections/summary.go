package sections

import (
	"fmt"
	"unicode/utf8"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/chunk"
)

const (
	// PreviewWords is the number of words kept in a summary preview.
	PreviewWords = 500

	previewTruncated = "\n\n[... preview truncated ...]"

	summaryHelp = "This document is too large to return directly. " +
		"The full content has been saved to a file. " +
		"You can:\n" +
		"1. Read the file using standard tools\n" +
		"2. Use 'section_id' or 'section_heading' parameter to extract specific sections\n" +
		"3. Review the table_of_contents to find sections of interest"
)

// Saver persists the full text of a summarized document.
type Saver interface {
	SaveTemp(content string) (string, error)
}

// EstimateTokens approximates the token count of text as one token per four
// characters.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// FormatSize renders a byte count with two decimals and a binary unit.
func FormatSize(n int) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f TB", size)
}

// Preview returns the first max whitespace-separated words of text joined by
// single spaces, with a truncation marker when words were dropped.
func Preview(text string, max int) string {
	preview, truncated := chunk.New(max).First(text)
	if truncated {
		preview += previewTruncated
	}
	return preview
}

// GenerateSummary saves result.Markdown through saver and describes it:
// sizes, token estimate, a table of contents and a preview.
func GenerateSummary(result core.Result, saver Saver) (*core.Summary, error) {
	markdown := result.Markdown
	path, err := saver.SaveTemp(markdown)
	if err != nil {
		return nil, core.ConversionError(err, "saving full content")
	}

	toc := TableOfContents(markdown, MaxTOCHeadings)
	if toc == nil {
		toc = []string{}
	}

	return &core.Summary{
		Type:    "summary",
		URL:     result.URL,
		SavedTo: path,
		Statistics: core.Statistics{
			OriginalBytes:      result.RawSize,
			OriginalHuman:      FormatSize(result.RawSize),
			CleanedBytes:       result.CleanedSize,
			CleanedHuman:       FormatSize(result.CleanedSize),
			MarkdownBytes:      result.MarkdownSize,
			MarkdownHuman:      FormatSize(result.MarkdownSize),
			EstimatedTokens:    EstimateTokens(markdown),
			CompressionRatio:   fmt.Sprintf("%.2fx", result.CompressionRatio()),
			CompressionPercent: fmt.Sprintf("%.1f%%", result.CompressionPercent()),
		},
		Preview:         Preview(markdown, PreviewWords),
		TableOfContents: toc,
		Help:            summaryHelp,
	}, nil
}
