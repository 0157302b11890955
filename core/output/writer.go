// Package output handles the files html2md leaves behind: full Markdown
// saved for oversized documents (html2md_*.md in the temp directory) and
// CLI outputs named after the source URL (e.g., example_com_docs.md).
// Nothing written here is ever deleted by html2md.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	tempPrefix = "html2md_"
	tempSuffix = ".md"
)

// Writer writes output files under Dir.
type Writer struct {
	Dir string
}

// New creates a Writer targeting dir. If dir is empty, the system temp
// directory is used.
func New(dir string) (*Writer, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{Dir: dir}, nil
}

// SaveTemp writes content to a uniquely named html2md_*.md file and returns
// its absolute path.
func (w *Writer) SaveTemp(content string) (string, error) {
	f, err := os.CreateTemp(w.Dir, tempPrefix+"*"+tempSuffix)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", fmt.Errorf("writing temp file %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp file %s: %w", f.Name(), err)
	}

	path, err := filepath.Abs(f.Name())
	if err != nil {
		return f.Name(), nil
	}
	return path, nil
}

// WriteForURL writes data to a file named after rawURL.
// Example: https://example.com/docs/intro → <Dir>/example_com_docs_intro.md
func (w *Writer) WriteForURL(rawURL string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.Dir, filenameFromURL(rawURL)+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// filenameFromURL converts a URL into a flat filename.
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
