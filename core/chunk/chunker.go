// Package chunk cuts Markdown text down to a leading run of words. Words
// are whitespace-separated runs; chunks join them with single spaces.
package chunk

import "strings"

// Chunker splits text into chunks of at most Size words.
type Chunker struct {
	Size int
}

// New creates a Chunker with the given chunk size.
// Defaults to 500 if size <= 0.
func New(size int) *Chunker {
	if size <= 0 {
		size = 500
	}
	return &Chunker{Size: size}
}

// First returns the first chunk of text and whether any words were left
// out of it.
func (c *Chunker) First(text string) (string, bool) {
	words := strings.Fields(text)
	if len(words) <= c.Size {
		return strings.Join(words, " "), false
	}
	return strings.Join(words[:c.Size], " "), true
}
