package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/bramble-partners/screener/internal/deck"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown decks using goldmark. Thematic breaks
// (---) separate slides, the common convention for markdown slide decks.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*deck.Deck, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	d := &deck.Deck{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown"),
	}

	var pages []string
	var current strings.Builder

	writeBlock := func(t string) {
		if t == "" {
			return
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(t)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.ThematicBreak:
			pages = append(pages, current.String())
			current.Reset()
		case *ast.Heading:
			writeBlock(string(node.Text(src)))
		default:
			writeBlock(extractText(n, src))
		}
	}
	pages = append(pages, current.String())

	finishDeck(d, pages)
	return d, nil
}

// extractText gets the text content of a goldmark AST node. A block node
// that carries source lines (paragraph, code block) is emitted from those
// lines alone; walking its inline children too would emit the same text
// twice. Container blocks (lists) have no lines and are walked instead.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
