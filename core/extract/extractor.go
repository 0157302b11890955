// Package extract implements the Extractor interface.
// Extract isolates the main content region of a cleaned HTML page by:
//  1. Finding the best content container (<main>, <article>, [role=main] or <body>)
//  2. Dropping images and tables, or unwrapping links, per the request toggles
//  3. Serializing the region as Markdown with html-to-markdown
//
// Convert skips step 1 and serializes an already cut fragment whole.
package extract

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core"
)

// contentSelectors are tried in order; the first one holding text wins.
var contentSelectors = []string{"main", "article", "[role=main]", "body"}

// MarkdownExtractor converts the main content of a page into Markdown.
type MarkdownExtractor struct {
	log *zap.Logger
}

// New creates a MarkdownExtractor.
func New(log *zap.Logger) *MarkdownExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &MarkdownExtractor{log: log}
}

// Extract returns the Markdown for the main content of html. An empty
// result is a parse error distinct from a failed conversion.
func (e *MarkdownExtractor) Extract(html string, toggles core.Toggles) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", core.ParseError(err, "error parsing HTML")
	}
	return e.render(mainContent(doc), toggles)
}

// Convert returns the Markdown for all of fragment. No content region is
// selected, so a section cut from a page converts whole.
func (e *MarkdownExtractor) Convert(fragment string, toggles core.Toggles) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", core.ParseError(err, "error parsing HTML")
	}
	content := doc.Find("body")
	if content.Length() == 0 {
		content = doc.Selection
	}
	return e.render(content, toggles)
}

func (e *MarkdownExtractor) render(content *goquery.Selection, toggles core.Toggles) (string, error) {
	applyToggles(content, toggles)

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return "", core.ParseError(err, "error serializing content")
	}

	markdown, err := newConverter(toggles.Tables).ConvertString(fragment)
	if err != nil {
		return "", core.ParseError(err, "error converting HTML to Markdown")
	}

	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", core.ParseError(nil, "no content extracted: result is empty")
	}

	e.log.Info("converted to Markdown", zap.Int("bytes", len(markdown)))
	return markdown, nil
}

// mainContent finds the best content container in priority order.
func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		found := doc.Find(sel).First()
		if found.Length() > 0 && strings.TrimSpace(found.Text()) != "" {
			return found
		}
	}
	return doc.Selection
}

// applyToggles removes the content kinds the caller opted out of.
func applyToggles(content *goquery.Selection, toggles core.Toggles) {
	if !toggles.Images {
		content.Find("img, picture").Remove()
	}
	if !toggles.Tables {
		content.Find("table").Remove()
	}
	if !toggles.Links {
		content.Find("a").Each(func(_ int, s *goquery.Selection) {
			s.ReplaceWithSelection(s.Contents())
		})
	}
}

func newConverter(tables bool) *converter.Converter {
	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if tables {
		plugins = append(plugins, table.NewTablePlugin())
	}
	return converter.NewConverter(converter.WithPlugins(plugins...))
}
