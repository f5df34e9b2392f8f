// Package view derives the filtered, sorted projection of the item
// collection for display. It is pure: no state, no side effects, and the
// same inputs always produce the same output.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/doc4437/pantri/internal/domain"
)

// Sort selects one of the three supported total orders.
type Sort string

const (
	// SortUpdated orders by updatedAt descending, most recently touched
	// first. This is the default.
	SortUpdated Sort = "updated"
	// SortAZ orders by name, case-insensitive ascending.
	SortAZ Sort = "az"
	// SortCategory orders by effective category ascending; ties keep their
	// relative order.
	SortCategory Sort = "category"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Filters carries the current filter and sort criteria.
type Filters struct {
	Search   string
	Category string // CategoryAll or an exact effective category
	Sort     Sort
}

// DefaultFilters returns the criteria a fresh session starts with.
func DefaultFilters() Filters {
	return Filters{Search: "", Category: CategoryAll, Sort: SortUpdated}
}

// Projection is the derived view handed to display shells.
type Projection struct {
	Visible    []domain.Item
	Categories []string
}

// Project filters and sorts items per the criteria and enumerates the
// distinct categories across the whole collection. Inputs are never
// mutated; re-invoking with identical inputs yields a structurally equal
// result.
func Project(items []domain.Item, prefs domain.Preferences, f Filters) Projection {
	visible := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.Archived && !prefs.ShowArchived {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && item.EffectiveCategory() != f.Category {
			continue
		}
		if !matchesSearch(item, f.Search) {
			continue
		}
		visible = append(visible, item)
	}

	sortItems(visible, f.Sort)

	return Projection{
		Visible:    visible,
		Categories: enumerateCategories(items),
	}
}

func matchesSearch(item domain.Item, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	return item.Notes != nil && strings.Contains(strings.ToLower(*item.Notes), needle)
}

func sortItems(items []domain.Item, order Sort) {
	switch order {
	case SortAZ:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortCategory:
		c := collate.New(language.Und)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].EffectiveCategory(), items[j].EffectiveCategory()) < 0
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].UpdatedAt > items[j].UpdatedAt
		})
	}
}

// enumerateCategories collects the distinct non-empty categories across all
// items, archived or not, sorted lexicographically with a locale-aware
// case-sensitive collation.
func enumerateCategories(items []domain.Item) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, item := range items {
		if item.Category == nil || *item.Category == "" {
			continue
		}
		if _, dup := seen[*item.Category]; dup {
			continue
		}
		seen[*item.Category] = struct{}{}
		categories = append(categories, *item.Category)
	}

	c := collate.New(language.Und)
	c.SortStrings(categories)
	return categories
}
