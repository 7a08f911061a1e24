// Package memostore persists finished screening memos as flat HTML files,
// with an optional PDF sibling per memo.
package memostore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Entry describes a stored memo file.
type Entry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	HasPDF   bool      `json:"has_pdf"`
}

// Store writes memos into a single directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create memo dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName builds the canonical memo filename for a company on a date:
// MEMO_<Company>_<YYYY-MM-DD>.html with unsafe characters collapsed.
func FileName(companyName string, when time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(companyName), " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" {
		name = "Unknown_Company"
	}
	return fmt.Sprintf("MEMO_%s_%s.html", name, when.Format("2006-01-02"))
}

// Save writes the memo HTML and returns the stored filename.
func (s *Store) Save(name, html string) (string, error) {
	name = sanitizeName(name)
	if name == "" {
		return "", fmt.Errorf("empty memo name")
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write memo: %w", err)
	}
	return name, nil
}

// SavePDF writes the PDF sibling for a memo (same name, .pdf extension).
func (s *Store) SavePDF(name string, pdf []byte) (string, error) {
	name = sanitizeName(name)
	if name == "" {
		return "", fmt.Errorf("empty memo name")
	}
	pdfName := strings.TrimSuffix(name, ".html") + ".pdf"
	path := filepath.Join(s.dir, pdfName)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return pdfName, nil
}

// List returns stored memos, newest first.
func (s *Store) List() ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read memo dir: %w", err)
	}

	var entries []Entry
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".html") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		pdfName := strings.TrimSuffix(de.Name(), ".html") + ".pdf"
		_, pdfErr := os.Stat(filepath.Join(s.dir, pdfName))
		entries = append(entries, Entry{
			Name:     de.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
			HasPDF:   pdfErr == nil,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Modified.After(entries[j].Modified)
	})
	return entries, nil
}

// Load reads a stored memo by name.
func (s *Store) Load(name string) (string, error) {
	name = sanitizeName(name)
	if name == "" {
		return "", fmt.Errorf("empty memo name")
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Delete removes a memo and its PDF sibling if present.
func (s *Store) Delete(name string) error {
	name = sanitizeName(name)
	if name == "" {
		return fmt.Errorf("empty memo name")
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return err
	}
	pdfName := strings.TrimSuffix(name, ".html") + ".pdf"
	os.Remove(filepath.Join(s.dir, pdfName))
	return nil
}

// sanitizeName strips any path components so names cannot escape the
// memo directory.
func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
