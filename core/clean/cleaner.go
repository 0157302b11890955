// Package clean implements the Cleaner interface.
// It removes non-content subtrees (scripts, styles and page chrome such as
// nav, header, footer and aside) and leaves every other element in place,
// including tables and images.
package clean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core"
)

// NoiseTags are the element kinds removed together with their subtrees.
var NoiseTags = []string{"script", "style", "nav", "footer", "header", "aside"}

// HTMLCleaner strips noise elements from a full HTML document.
type HTMLCleaner struct {
	log *zap.Logger
}

// New creates an HTMLCleaner.
func New(log *zap.Logger) *HTMLCleaner {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTMLCleaner{log: log}
}

// Clean parses html, drops every NoiseTags element and serializes what is left.
func (c *HTMLCleaner) Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", core.ParseError(err, "error parsing HTML")
	}

	doc.Find(strings.Join(NoiseTags, ", ")).Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return "", core.ParseError(err, "error serializing cleaned HTML")
	}

	c.log.Info("HTML cleaned", zap.Int("before_bytes", len(html)), zap.Int("after_bytes", len(cleaned)))
	return cleaned, nil
}
