package sections

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/html2md/core"
)

// FromHTML cuts one section out of an HTML document. Exactly one of id and
// heading must be set.
//
// By id, the element whose id (or, failing that, name) equals id is used,
// with any leading "#" dropped. By heading, h1 through h6 are searched
// level by level for the first heading containing the text,
// case-insensitively.
//
// A heading match yields the heading plus its following siblings up to the
// next heading of the same or a shallower level. Any other match yields its
// nearest enclosing section, article or div.
func FromHTML(html, id, heading string) (string, error) {
	if (id == "") == (heading == "") {
		return "", core.Usagef("must provide exactly one of: section_id or section_heading")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", core.ParseError(err, "error parsing HTML")
	}

	var target *goquery.Selection
	if id != "" {
		target = findByAttr(doc, strings.TrimLeft(id, "#"))
	} else {
		target = findHeading(doc, heading)
	}
	if target == nil {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, id+heading)
	}

	var parts []*goquery.Selection
	if level := headingLevel(target); level > 0 {
		parts = append(parts, target)
		target.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if l := headingLevel(s); l > 0 && l <= level {
				return false
			}
			parts = append(parts, s)
			return true
		})
	} else if parent := target.ParentsFiltered("section, article, div").First(); parent.Length() > 0 {
		parts = append(parts, parent)
	} else {
		parts = append(parts, target)
	}

	var sb strings.Builder
	for _, part := range parts {
		h, err := goquery.OuterHtml(part)
		if err != nil {
			return "", core.ParseError(err, "error serializing section")
		}
		sb.WriteString(h)
	}
	return sb.String(), nil
}

func findByAttr(doc *goquery.Document, value string) *goquery.Selection {
	for _, attr := range []string{"id", "name"} {
		match := doc.Find("[" + attr + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr(attr)
			return v == value
		}).First()
		if match.Length() > 0 {
			return match
		}
	}
	return nil
}

func findHeading(doc *goquery.Document, heading string) *goquery.Selection {
	search := strings.ToLower(strings.TrimSpace(heading))
	for level := 1; level <= 6; level++ {
		var found *goquery.Selection
		doc.Find(fmt.Sprintf("h%d", level)).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(strings.TrimSpace(s.Text())), search) {
				found = s
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// headingLevel returns 1-6 for h1-h6 and 0 for anything else.
func headingLevel(s *goquery.Selection) int {
	name := goquery.NodeName(s)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
