package parser

import (
	"strings"
	"testing"
)

func TestTextParser_ParagraphJoining(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	d, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", d.Title)
	}
	if len(d.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(d.Pages))
	}

	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if d.Pages[0].Text != want {
		t.Errorf("expected page text %q, got %q", want, d.Pages[0].Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	d, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", d.Title)
	}
	if !d.Empty() {
		t.Errorf("expected empty deck, got %d pages", len(d.Pages))
	}
}

func TestTextParser_SingleLine(t *testing.T) {
	p := &TextParser{}
	d, err := p.Parse(strings.NewReader("Hello world"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(d.Pages))
	}
	if d.Pages[0].Text != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", d.Pages[0].Text)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Runs of blank lines collapse to a single paragraph break.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	d, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(d.Pages))
	}
	if d.Pages[0].Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected page text %q", d.Pages[0].Text)
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace count as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	d, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Pages[0].Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected page text %q", d.Pages[0].Text)
	}
}

func TestDeckText_PageMarkers(t *testing.T) {
	p := &TextParser{}
	d, err := p.Parse(strings.NewReader("Some content"), "deck.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := d.Text()
	if !strings.Contains(text, "[Page 1]") {
		t.Errorf("expected page marker in %q", text)
	}
	if !strings.Contains(text, "Some content") {
		t.Errorf("expected content in %q", text)
	}
}
