package web

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/doc4437/pantri/internal/domain"
	"github.com/doc4437/pantri/internal/pantry"
	"github.com/doc4437/pantri/internal/share"
)

type shareResponse struct {
	Text       string `json:"text"`
	SMSLink    string `json:"smsLink"`
	SMSCapable bool   `json:"smsCapable"`
	ItemCount  int    `json:"itemCount"`
}

// handleShare composes the share text over the currently selected items.
// The hand-off (clipboard, messaging app) happens client-side; the client
// reports completion via POST /share/done.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	opts := share.Options{}
	q := r.URL.Query()
	if q.Has("title") {
		title := q.Get("title")
		opts.Title = &title
	}
	opts.IncludeArchived = parseBool(q.Get("includeArchived"))

	items := s.store.SelectedItems()
	text := share.Compose(items, opts)

	s.writeJSON(w, http.StatusOK, shareResponse{
		Text:       text,
		SMSLink:    share.SMSLink(text),
		SMSCapable: s.smsCapable,
		ItemCount:  len(items),
	})
}

func (s *Server) handleShareDone(w http.ResponseWriter, r *http.Request) {
	cleared := s.store.MarkShared()
	s.writeJSON(w, http.StatusOK, map[string]bool{"selectionCleared": cleared})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.ExportJSON()
	if err != nil {
		s.writeError(w, err)
		return
	}

	filename := fmt.Sprintf("pantri-export-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write export", "error", err)
	}
}

// handleImport merges an uploaded snapshot. HTTP has no interactive
// callback, so the client declares one resolution policy up front via the
// resolve query parameter; it is applied to every name collision.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	resolution, err := parseResolution(r.URL.Query().Get("resolve"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		s.writeError(w, &domain.ParseError{Cause: err})
		return
	}

	conflicts := 0
	err = s.store.ImportJSON(data, func(pantry.Conflict) (pantry.Resolution, error) {
		conflicts++
		return resolution, nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int{
		"conflicts": conflicts,
		"items":     len(s.store.State().Items),
	})
}

func parseResolution(raw string) (pantry.Resolution, error) {
	switch raw {
	case "", "keep-existing":
		return pantry.KeepExisting, nil
	case "replace":
		return pantry.Replace, nil
	case "keep-both":
		return pantry.KeepBoth, nil
	default:
		return 0, &domain.ValidationError{Field: "resolve", Reason: "must be replace, keep-both or keep-existing"}
	}
}
