package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/doc4437/pantri/internal/domain"
	"github.com/doc4437/pantri/internal/pantry"
	"github.com/doc4437/pantri/internal/view"
)

// itemDraft is the request shape for creating and editing items. Empty
// optional strings mean "absent"; a missing par clears the par level.
type itemDraft struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Unit     string   `json:"unit"`
	Notes    string   `json:"notes"`
	OnHand   float64  `json:"onHand"`
	Par      *float64 `json:"par"`
}

func (d itemDraft) toDraft() pantry.Draft {
	return pantry.Draft{
		Name:     d.Name,
		Category: d.Category,
		Unit:     d.Unit,
		Notes:    d.Notes,
		OnHand:   d.OnHand,
		Par:      d.Par,
	}
}

type listResponse struct {
	Items       []domain.Item `json:"items"`
	Categories  []string      `json:"categories"`
	SelectedIDs []string      `json:"selectedIds"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filters := view.DefaultFilters()
	q := r.URL.Query()
	filters.Search = q.Get("search")
	if category := q.Get("category"); category != "" {
		filters.Category = category
	}
	if sortBy := q.Get("sort"); sortBy != "" {
		sortOrder, err := parseSort(sortBy)
		if err != nil {
			s.writeError(w, err)
			return
		}
		filters.Sort = sortOrder
	}

	state := s.store.State()
	projection := view.Project(state.Items, state.Preferences, filters)

	s.writeJSON(w, http.StatusOK, listResponse{
		Items:       projection.Visible,
		Categories:  projection.Categories,
		SelectedIDs: state.SelectedIDs,
	})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var draft itemDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, &domain.ParseError{Cause: err})
		return
	}

	item, err := s.store.AddItem(draft.toDraft())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	var draft itemDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, &domain.ParseError{Cause: err})
		return
	}

	itemID := r.PathValue("id")
	if err := s.store.EditItem(itemID, draft.toDraft()); err != nil {
		s.writeError(w, err)
		return
	}

	item, _ := s.store.State().FindItem(itemID)
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteItem(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdjustItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta float64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, &domain.ParseError{Cause: err})
		return
	}

	itemID := r.PathValue("id")
	if err := s.store.AdjustQuantity(itemID, body.Delta); err != nil {
		s.writeError(w, err)
		return
	}

	item, _ := s.store.State().FindItem(itemID)
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleArchiveItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if err := s.store.ToggleArchived(itemID); err != nil {
		s.writeError(w, err)
		return
	}

	item, _ := s.store.State().FindItem(itemID)
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleToggleSelect(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if _, ok := s.store.State().FindItem(itemID); !ok {
		s.writeError(w, domain.ErrNotFound)
		return
	}

	s.store.ToggleSelection(itemID)
	s.writeJSON(w, http.StatusOK, map[string][]string{"selectedIds": s.store.State().SelectedIDs})
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, &domain.ParseError{Cause: err})
		return
	}

	s.store.SetSelection(body.IDs)
	s.writeJSON(w, http.StatusOK, map[string][]string{"selectedIds": s.store.State().SelectedIDs})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.store.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, &domain.ParseError{Cause: err})
		return
	}

	key := pantry.PrefKey(r.PathValue("key"))
	if err := s.store.SetPreference(key, body.Value); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.store.State().Preferences)
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

func parseSort(raw string) (view.Sort, error) {
	switch sortOrder := view.Sort(raw); sortOrder {
	case view.SortUpdated, view.SortAZ, view.SortCategory:
		return sortOrder, nil
	default:
		return "", &domain.ValidationError{Field: "sort", Reason: "must be updated, az or category"}
	}
}
