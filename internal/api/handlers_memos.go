package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/bramble-partners/screener/internal/memostore"
	"github.com/go-chi/chi/v5"
)

// handleListMemos lists stored memos, newest first.
func (s *Server) handleListMemos(w http.ResponseWriter, r *http.Request) {
	entries, err := s.orchestrator.MemoStore().List()
	if err != nil {
		jsonError(w, "failed to list memos: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []memostore.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"memos": entries})
}

// handleGetMemo serves a stored memo as HTML.
func (s *Server) handleGetMemo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}

	html, err := s.orchestrator.MemoStore().Load(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "memo not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load memo: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// handleDeleteMemo removes a memo and its PDF sibling.
func (s *Server) handleDeleteMemo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}

	if err := s.orchestrator.MemoStore().Delete(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "memo not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete memo: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"deleted": name})
}
