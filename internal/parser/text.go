package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/bramble-partners/screener/internal/deck"
)

// TextParser handles plain text files. The whole file becomes a single
// page; blank-line runs are collapsed between paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*deck.Deck, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	d := &deck.Deck{
		Title: strings.TrimSuffix(filename, ".txt"),
	}
	finishDeck(d, []string{strings.Join(paragraphs, "\n\n")})
	return d, nil
}
