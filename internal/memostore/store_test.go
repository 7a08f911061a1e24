package memostore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	date := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		company string
		want    string
	}{
		{"spaces become underscores", "Acme Robotics", "MEMO_Acme_Robotics_2026-08-26.html"},
		{"unsafe chars stripped", "Acme/Robotics: EU", "MEMO_AcmeRobotics_EU_2026-08-26.html"},
		{"dots and dashes kept", "acme.io-labs", "MEMO_acme.io-labs_2026-08-26.html"},
		{"empty falls back", "", "MEMO_Unknown_Company_2026-08-26.html"},
		{"only unsafe falls back", "###", "MEMO_Unknown_Company_2026-08-26.html"},
		{"surrounding whitespace trimmed", "  Acme  ", "MEMO_Acme_2026-08-26.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.company, date); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.company, got, tt.want)
			}
		})
	}
}

func TestStore_SaveLoadDelete(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	name, err := s.Save("MEMO_Acme_2026-08-26.html", "<html>memo</html>")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "<html>memo</html>" {
		t.Errorf("Load = %q", got)
	}

	pdfName, err := s.SavePDF(name, []byte("%PDF-1.7"))
	if err != nil {
		t.Fatalf("SavePDF: %v", err)
	}
	if pdfName != "MEMO_Acme_2026-08-26.pdf" {
		t.Errorf("pdf name = %q", pdfName)
	}

	if err := s.Delete(name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(name); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist after delete, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), pdfName)); !errors.Is(err, fs.ErrNotExist) {
		t.Error("pdf sibling should be deleted with the memo")
	}
}

func TestStore_List(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Save("MEMO_Old_2026-01-01.html", "old"); err != nil {
		t.Fatal(err)
	}
	old := filepath.Join(s.Dir(), "MEMO_Old_2026-01-01.html")
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save("MEMO_New_2026-08-26.html", "new"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SavePDF("MEMO_New_2026-08-26.html", []byte("pdf")); err != nil {
		t.Fatal(err)
	}
	// A stray non-HTML file must not appear in the listing.
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "MEMO_New_2026-08-26.html" {
		t.Errorf("newest first: got %q", entries[0].Name)
	}
	if !entries[0].HasPDF {
		t.Error("new memo should report its pdf sibling")
	}
	if entries[1].HasPDF {
		t.Error("old memo has no pdf sibling")
	}
}

func TestStore_NameSanitized(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	name, err := s.Save("../escape.html", "x")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "escape.html" {
		t.Errorf("expected path components stripped, got %q", name)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "escape.html")); err != nil {
		t.Errorf("memo should land inside the store dir: %v", err)
	}

	if _, err := s.Save("   ", "x"); err == nil {
		t.Error("expected error for blank name")
	}
}
