package domain

// UncategorizedLabel is substituted anywhere an item has no category.
const UncategorizedLabel = "Uncategorized"

// Item is one tracked pantry good. Optional fields are pointers so that
// "absent" and "zero" stay distinguishable across the persisted JSON.
type Item struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  *string  `json:"category,omitempty"`
	Unit      *string  `json:"unit,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
	OnHand    *float64 `json:"onHand,omitempty"`
	Par       *float64 `json:"par,omitempty"`
	Archived  bool     `json:"archived,omitempty"`
	UpdatedAt int64    `json:"updatedAt"` // epoch milliseconds
}

// EffectiveCategory returns the category, or UncategorizedLabel when absent
// or empty.
func (i Item) EffectiveCategory() string {
	if i.Category != nil && *i.Category != "" {
		return *i.Category
	}
	return UncategorizedLabel
}

// OnHandOrZero returns the on-hand quantity, defaulting to 0 when absent.
func (i Item) OnHandOrZero() float64 {
	if i.OnHand != nil {
		return *i.OnHand
	}
	return 0
}

// Shortage returns how far the item is below its par level. ok is false when
// either par or onHand is absent, or the item is at or above par.
func (i Item) Shortage() (need float64, ok bool) {
	if i.Par == nil || i.OnHand == nil {
		return 0, false
	}
	need = *i.Par - *i.OnHand
	if need <= 0 {
		return 0, false
	}
	return need, true
}

// Preferences is process-wide configuration persisted alongside the items.
type Preferences struct {
	AutoresetAfterShare bool `json:"autoresetAfterShare"`
	ShowArchived        bool `json:"showArchived"`
}

// State is the full application state: items newest-first, the ordered
// selection, and preferences. Transitions treat it as an immutable value.
type State struct {
	Items       []Item      `json:"items"`
	SelectedIDs []string    `json:"selectedIds"`
	Preferences Preferences `json:"preferences"`
}

// Selected reports whether id is in the selection.
func (s State) Selected(id string) bool {
	for _, sel := range s.SelectedIDs {
		if sel == id {
			return true
		}
	}
	return false
}

// FindItem returns the item with the given id, or ok=false.
func (s State) FindItem(id string) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// String returns a pointer to s. Convenience for building optional fields.
func String(s string) *string { return &s }

// Number returns a pointer to f. Convenience for building optional fields.
func Number(f float64) *float64 { return &f }
