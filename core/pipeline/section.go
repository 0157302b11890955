package pipeline

import (
	"errors"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/sections"
)

// errNeedHTML means the section can only be found in the cleaned HTML,
// which a cached document does not carry.
var errNeedHTML = errors.New("section needs cleaned HTML")

// section returns the Markdown for the requested section of doc. A heading
// is looked up in the Markdown first and in the cleaned HTML second; an id
// only exists in the HTML.
func (c *Converter) section(doc document, req core.Request) (string, error) {
	if req.SectionHeading != "" {
		md, err := sections.FromMarkdown(doc.result.Markdown, req.SectionHeading)
		if err == nil {
			return md, nil
		}
		if !errors.Is(err, sections.ErrSectionNotFound) {
			return "", err
		}
	}

	if doc.cleaned == "" {
		if doc.cached {
			return "", errNeedHTML
		}
		return "", core.ConversionError(sections.ErrSectionNotFound, "no HTML to search for section %q", req.Section())
	}

	fragment, err := sections.FromHTML(doc.cleaned, req.SectionID, req.SectionHeading)
	if err != nil {
		if errors.Is(err, sections.ErrSectionNotFound) {
			return "", core.ConversionError(err, "")
		}
		return "", err
	}
	return c.extractor.Convert(fragment, req.Toggles)
}
