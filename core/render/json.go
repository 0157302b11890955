package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/html2md/core"
)

// Document is the JSON form of a response. Structure describes the returned
// Markdown and is omitted for summaries.
type Document struct {
	*core.Response
	Structure *Structure `json:"structure,omitempty"`
}

// Structure counts the Markdown elements of a converted page.
type Structure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// Heading is one Markdown heading.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is one inline Markdown link.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// JSON renders resp as indented JSON.
func JSON(resp *core.Response) ([]byte, error) {
	doc := Document{Response: resp}
	if resp.Kind == core.KindFull {
		doc.Structure = structureOf(resp.Result.Markdown)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

func structureOf(md string) *Structure {
	return &Structure{
		Headings:   extractHeadings(md),
		Links:      extractLinks(md),
		CodeBlocks: countCodeBlocks(md),
		Tables:     countTables(md),
		Lists:      countLists(md),
	}
}

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func extractHeadings(md string) []Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

// linkRegex matches [text](url) but not images.
var linkRegex = regexp.MustCompile(`(?:^|[^!])\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)

func extractLinks(md string) []Link {
	matches := linkRegex.FindAllStringSubmatch(md, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, Link{Text: m[1], Href: m[2]})
	}
	return links
}

func countCodeBlocks(md string) int {
	return strings.Count(md, "```") / 2
}

// tableRowRegex matches table separator rows such as |---|:--:|.
var tableRowRegex = regexp.MustCompile(`(?m)^\|[-:| ]+\|$`)

func countTables(md string) int {
	return len(tableRowRegex.FindAllString(md, -1))
}

var listItemRegex = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]`)

func countLists(md string) int {
	return len(listItemRegex.FindAllString(md, -1))
}
