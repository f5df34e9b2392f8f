package pantry

import (
	"strings"

	"github.com/doc4437/pantri/internal/domain"
)

// Resolution is the caller's decision for one import name collision.
type Resolution int

const (
	// KeepExisting discards the incoming item.
	KeepExisting Resolution = iota
	// Replace drops the existing item and keeps the incoming one under a
	// fresh id.
	Replace
	// KeepBoth keeps the existing item and inserts the incoming one right
	// after it, renamed with an "(imported)" suffix and a fresh id.
	KeepBoth
)

// Conflict describes one name collision between the current collection and
// an import payload. Names match on their trimmed, lower-cased form.
type Conflict struct {
	Existing domain.Item
	Incoming domain.Item
}

// ConflictResolver is invoked once per colliding name. It may block
// arbitrarily long (e.g. on user interaction); returning an error aborts
// the merge with the state untouched.
type ConflictResolver func(Conflict) (Resolution, error)

// MergeItems merges an imported item list into the existing collection.
// Existing items keep their original order; unmatched incoming items are
// appended at the end with fresh ids and updatedAt=now. When the incoming
// list carries duplicate normalized names, the last occurrence wins and
// keeps the position of the first, mirroring a keyed lookup built in input
// order.
func MergeItems(existing, incoming []domain.Item, resolve ConflictResolver, newID func() string, now int64) ([]domain.Item, error) {
	remaining := make(map[string]domain.Item, len(incoming))
	order := make([]string, 0, len(incoming))
	for _, in := range incoming {
		key := normalizeName(in.Name)
		if _, seen := remaining[key]; !seen {
			order = append(order, key)
		}
		remaining[key] = in
	}

	merged := make([]domain.Item, 0, len(existing)+len(incoming))
	for _, ex := range existing {
		key := normalizeName(ex.Name)
		in, collides := remaining[key]
		if !collides {
			merged = append(merged, ex)
			continue
		}

		res, err := resolve(Conflict{Existing: ex, Incoming: in})
		if err != nil {
			return nil, err
		}
		switch res {
		case Replace:
			in.ID = newID()
			in.UpdatedAt = now
			merged = append(merged, in)
		case KeepBoth:
			merged = append(merged, ex)
			in.ID = newID()
			in.Name += " (imported)"
			merged = append(merged, in)
		default:
			merged = append(merged, ex)
		}
		delete(remaining, key)
	}

	for _, key := range order {
		in, ok := remaining[key]
		if !ok {
			continue
		}
		in.ID = newID()
		in.UpdatedAt = now
		merged = append(merged, in)
	}

	return merged, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
