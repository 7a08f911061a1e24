package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bramble-partners/screener/internal/deck"
)

// Parser converts raw document bytes into a Deck.
type Parser interface {
	Parse(r io.Reader, filename string) (*deck.Deck, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// finishDeck drops empty pages and renumbers the rest.
func finishDeck(d *deck.Deck, pages []string) {
	for _, page := range pages {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		d.Pages = append(d.Pages, deck.Page{
			Number: len(d.Pages) + 1,
			Text:   page,
		})
	}
}
