package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/doc4437/pantri/internal/domain"
	"github.com/doc4437/pantri/internal/id"
)

// Gateway is the subset of the persistence layer the Store requires.
type Gateway interface {
	Load(ctx context.Context) domain.State
	Save(ctx context.Context, state domain.State) error
	Clear(ctx context.Context) error
}

// Store coordinates the in-memory state. Mutations run one at a time under
// its lock and schedule a debounced save: rapid bursts coalesce into one
// write after the quiet window. A pending save that has not fired when the
// process exits is lost; call Flush first when durability matters.
type Store struct {
	gateway  Gateway
	logger   *slog.Logger
	debounce time.Duration
	newID    func() string
	now      func() time.Time

	mu     sync.Mutex
	state  domain.State
	timer  *time.Timer
	closed bool
}

// NewStore hydrates the state from the gateway and returns a ready store.
func NewStore(ctx context.Context, gateway Gateway, logger *slog.Logger, debounce time.Duration) *Store {
	return &Store{
		gateway:  gateway,
		logger:   logger,
		debounce: debounce,
		newID:    id.New,
		now:      time.Now,
		state:    gateway.Load(ctx),
	}
}

// State returns the current state value. Callers must treat the contained
// slices as read-only; transitions never mutate them in place.
func (s *Store) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddItem creates a new item from the draft and prepends it.
func (s *Store) AddItem(d Draft) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, item, err := AddItem(s.state, d, s.newID, s.nowMillis())
	if err != nil {
		return domain.Item{}, err
	}
	s.commit(next)
	return item, nil
}

// QuickAdd creates an item from a bare name with zero on hand and no
// category.
func (s *Store) QuickAdd(name string) (domain.Item, error) {
	return s.AddItem(Draft{Name: name})
}

// EditItem replaces all user-editable fields of the item from the draft.
func (s *Store) EditItem(itemID string, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found, err := EditItem(s.state, itemID, d, s.nowMillis())
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	s.commit(next)
	return nil
}

// UpdateItem merges the given fields into the item.
func (s *Store) UpdateItem(itemID string, f Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := UpdateItem(s.state, itemID, f, s.nowMillis())
	if !found {
		return domain.ErrNotFound
	}
	s.commit(next)
	return nil
}

// AdjustQuantity shifts the on-hand quantity by delta, clamped at zero.
func (s *Store) AdjustQuantity(itemID string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := AdjustQuantity(s.state, itemID, delta, s.nowMillis())
	if !found {
		return domain.ErrNotFound
	}
	s.commit(next)
	return nil
}

// DeleteItem removes the item and drops it from the selection.
func (s *Store) DeleteItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := DeleteItem(s.state, itemID)
	if !found {
		return domain.ErrNotFound
	}
	s.commit(next)
	return nil
}

// ToggleArchived flips the item's archived flag.
func (s *Store) ToggleArchived(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := ToggleArchived(s.state, itemID, s.nowMillis())
	if !found {
		return domain.ErrNotFound
	}
	s.commit(next)
	return nil
}

// ToggleSelection adds or removes the id from the selection.
func (s *Store) ToggleSelection(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ToggleSelection(s.state, itemID))
}

// SetSelection replaces the selection with the given ids.
func (s *Store) SetSelection(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(SetSelection(s.state, ids))
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ClearSelection(s.state))
}

// SetPreference replaces one named preference.
func (s *Store) SetPreference(key PrefKey, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := SetPreference(s.state, key, value)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// SelectedItems returns the selected items in selection order. Ids that no
// longer resolve to an item are skipped.
func (s *Store) SelectedItems() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.Item, 0, len(s.state.SelectedIDs))
	for _, selectedID := range s.state.SelectedIDs {
		if item, ok := s.state.FindItem(selectedID); ok {
			items = append(items, item)
		}
	}
	return items
}

// MarkShared records a completed share hand-off: the selection is cleared
// when the autoreset preference is on. Returns whether it was cleared.
func (s *Store) MarkShared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Preferences.AutoresetAfterShare {
		return false
	}
	s.commit(ClearSelection(s.state))
	return true
}

// ImportMerge merges incoming items, consulting resolve once per name
// collision. The store lock is held for the whole merge, so the resolver
// may block on user input but no other mutation can interleave with the
// scan. A resolver error aborts the merge with the state untouched.
func (s *Store) ImportMerge(incoming []domain.Item, resolve ConflictResolver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := MergeItems(s.state.Items, incoming, resolve, s.newID, s.nowMillis())
	if err != nil {
		return err
	}
	next := s.state
	next.Items = merged
	s.commit(next)
	return nil
}

// importPayload is the minimum shape an import blob must parse into.
type importPayload struct {
	Items []domain.Item `json:"items"`
}

// ImportJSON decodes an exported blob and merges its items. Malformed
// payloads, including ones missing the items array, surface as a
// ParseError; the state is untouched. An empty items array is a valid
// no-op import.
func (s *Store) ImportJSON(data []byte, resolve ConflictResolver) error {
	var payload importPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return &domain.ParseError{Cause: err}
	}
	if payload.Items == nil {
		return &domain.ParseError{Cause: errors.New("missing items array")}
	}
	return s.ImportMerge(payload.Items, resolve)
}

// ExportJSON serializes the full current state, pretty-printed, for
// external collaborators to save as a file.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.MarshalIndent(s.state, "", "  ")
}

// Flush cancels any pending debounced save and writes the current state
// synchronously.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	state := s.state
	s.mu.Unlock()

	return s.gateway.Save(ctx, state)
}

// Close flushes and stops scheduling further saves.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush(ctx)
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// commit installs the new state and resets the save timer. Callers hold mu.
func (s *Store) commit(next domain.State) {
	s.state = next
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.savePending)
}

func (s *Store) savePending() {
	s.mu.Lock()
	state := s.state
	s.timer = nil
	s.mu.Unlock()

	if err := s.gateway.Save(context.Background(), state); err != nil {
		s.logger.Error("background save failed, changes not saved", "error", err)
	}
}
