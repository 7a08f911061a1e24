package deck

import (
	"fmt"
	"strings"
)

// Deck is the text content of a parsed pitch deck.
type Deck struct {
	Title string // Document title (from metadata or filename)
	Pages []Page // Page-ordered content
}

// Page is one page (or page-like block) of deck text.
type Page struct {
	Number int // 1-based source page (0 if the format has no pages)
	Text   string
}

// Text renders the deck as prompt-ready text with page provenance markers,
// so analysts can cite claims as "per deck, page N".
func (d *Deck) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		t := strings.TrimSpace(p.Text)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		if p.Number > 0 {
			fmt.Fprintf(&sb, "[Page %d]\n", p.Number)
		}
		sb.WriteString(t)
	}
	return sb.String()
}

// Empty reports whether the deck has no extractable text.
func (d *Deck) Empty() bool {
	for _, p := range d.Pages {
		if strings.TrimSpace(p.Text) != "" {
			return false
		}
	}
	return true
}
