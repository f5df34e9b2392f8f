// Package pantry owns the canonical application state and its transitions.
//
// Transitions are pure: each takes the current state value and returns a
// new one, leaving the input untouched. The coordinating Store applies them
// under a single lock and schedules debounced persistence.
package pantry

import (
	"math"
	"strings"

	"github.com/doc4437/pantri/internal/domain"
)

// Draft is the user-supplied shape of a new or fully edited item. String
// fields are trimmed; empty optional fields become absent.
type Draft struct {
	Name     string
	Category string
	Unit     string
	Notes    string
	OnHand   float64
	Par      *float64
}

// PrefKey names one preference field.
type PrefKey string

const (
	PrefAutoresetAfterShare PrefKey = "autoresetAfterShare"
	PrefShowArchived        PrefKey = "showArchived"
)

// Fields is a partial item update. Nil fields are left untouched; for the
// optional string fields an explicit empty string clears the value. Par
// cannot be cleared through Fields; use EditItem with a full Draft.
type Fields struct {
	Name     *string
	Category *string
	Unit     *string
	Notes    *string
	OnHand   *float64
	Par      *float64
	Archived *bool
}

func (d Draft) toItem(itemID string, now int64) domain.Item {
	return domain.Item{
		ID:        itemID,
		Name:      strings.TrimSpace(d.Name),
		Category:  optional(d.Category),
		Unit:      optional(d.Unit),
		Notes:     optional(d.Notes),
		OnHand:    domain.Number(d.OnHand),
		Par:       d.Par,
		Archived:  false,
		UpdatedAt: now,
	}
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateDraft(d Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if d.OnHand < 0 || math.IsNaN(d.OnHand) || math.IsInf(d.OnHand, 0) {
		return &domain.ValidationError{Field: "onHand", Reason: "must be a finite number, zero or more"}
	}
	return nil
}

// AddItem validates the draft and prepends the new item so default views
// list the newest addition first.
func AddItem(s domain.State, d Draft, newID func() string, now int64) (domain.State, domain.Item, error) {
	if err := validateDraft(d); err != nil {
		return s, domain.Item{}, err
	}

	item := d.toItem(newID(), now)
	items := make([]domain.Item, 0, len(s.Items)+1)
	items = append(items, item)
	items = append(items, s.Items...)
	s.Items = items
	return s, item, nil
}

// EditItem replaces every user-editable field from the draft, keeping the
// id and archived flag. A nil draft Par clears the par level. Returns
// found=false without touching the state when the id is absent.
func EditItem(s domain.State, itemID string, d Draft, now int64) (domain.State, bool, error) {
	if err := validateDraft(d); err != nil {
		return s, false, err
	}

	s, found := patchItem(s, itemID, func(it *domain.Item) {
		archived := it.Archived
		*it = d.toItem(it.ID, now)
		it.Archived = archived
	})
	return s, found, nil
}

// UpdateItem merges the given fields into the item. A missing id is a
// silent no-op at this level (found=false); the Store surfaces ErrNotFound.
// A Name that trims to empty keeps the old name, since an item must always
// have one. Any successful update refreshes UpdatedAt.
func UpdateItem(s domain.State, itemID string, f Fields, now int64) (domain.State, bool) {
	return patchItem(s, itemID, func(it *domain.Item) {
		if f.Name != nil {
			if trimmed := strings.TrimSpace(*f.Name); trimmed != "" {
				it.Name = trimmed
			}
		}
		if f.Category != nil {
			it.Category = optional(*f.Category)
		}
		if f.Unit != nil {
			it.Unit = optional(*f.Unit)
		}
		if f.Notes != nil {
			it.Notes = optional(*f.Notes)
		}
		if f.OnHand != nil {
			it.OnHand = domain.Number(*f.OnHand)
		}
		if f.Par != nil {
			it.Par = domain.Number(*f.Par)
		}
		if f.Archived != nil {
			it.Archived = *f.Archived
		}
		it.UpdatedAt = now
	})
}

// AdjustQuantity applies max(0, onHand+delta); the quantity never goes
// negative no matter how large a negative delta arrives.
func AdjustQuantity(s domain.State, itemID string, delta float64, now int64) (domain.State, bool) {
	item, ok := s.FindItem(itemID)
	if !ok {
		return s, false
	}
	next := item.OnHandOrZero() + delta
	if next < 0 {
		next = 0
	}
	return UpdateItem(s, itemID, Fields{OnHand: &next}, now)
}

// DeleteItem removes the item and its selection entry in one transition so
// no dangling selected id is ever observable.
func DeleteItem(s domain.State, itemID string) (domain.State, bool) {
	found := false
	items := make([]domain.Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return s, false
	}
	s.Items = items
	s.SelectedIDs = removeID(s.SelectedIDs, itemID)
	return s, true
}

// ToggleArchived flips the archived flag, refreshing UpdatedAt.
func ToggleArchived(s domain.State, itemID string, now int64) (domain.State, bool) {
	item, ok := s.FindItem(itemID)
	if !ok {
		return s, false
	}
	archived := !item.Archived
	return UpdateItem(s, itemID, Fields{Archived: &archived}, now)
}

// ToggleSelection adds the id to the end of the selection, or removes it if
// already present. Selection order drives share composition.
func ToggleSelection(s domain.State, itemID string) domain.State {
	if s.Selected(itemID) {
		s.SelectedIDs = removeID(s.SelectedIDs, itemID)
		return s
	}
	selected := make([]string, 0, len(s.SelectedIDs)+1)
	selected = append(selected, s.SelectedIDs...)
	selected = append(selected, itemID)
	s.SelectedIDs = selected
	return s
}

// SetSelection replaces the selection wholesale. "All visible" is whatever
// id list the caller derived from the view pipeline.
func SetSelection(s domain.State, ids []string) domain.State {
	selected := make([]string, len(ids))
	copy(selected, ids)
	s.SelectedIDs = selected
	return s
}

// ClearSelection empties the selection.
func ClearSelection(s domain.State) domain.State {
	s.SelectedIDs = []string{}
	return s
}

// SetPreference replaces one named preference, leaving the rest untouched.
func SetPreference(s domain.State, key PrefKey, value bool) (domain.State, error) {
	switch key {
	case PrefAutoresetAfterShare:
		s.Preferences.AutoresetAfterShare = value
	case PrefShowArchived:
		s.Preferences.ShowArchived = value
	default:
		return s, &domain.ValidationError{Field: "preference", Reason: "unknown key " + string(key)}
	}
	return s, nil
}

func patchItem(s domain.State, itemID string, apply func(*domain.Item)) (domain.State, bool) {
	for idx, it := range s.Items {
		if it.ID != itemID {
			continue
		}
		items := make([]domain.Item, len(s.Items))
		copy(items, s.Items)
		apply(&items[idx])
		s.Items = items
		return s, true
	}
	return s, false
}

func removeID(ids []string, itemID string) []string {
	out := make([]string, 0, len(ids))
	for _, sel := range ids {
		if sel != itemID {
			out = append(out, sel)
		}
	}
	return out
}
