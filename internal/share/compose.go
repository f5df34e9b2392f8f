// Package share builds the plain-text message handed to clipboard or SMS
// collaborators. Everything here is pure; the hand-off itself happens
// outside the core.
package share

import (
	"strconv"
	"strings"

	"github.com/doc4437/pantri/internal/domain"
)

// DefaultTitle heads the share message unless overridden.
const DefaultTitle = "Pantri list:"

// Options adjusts composition. A nil Title means DefaultTitle; an explicit
// empty string drops the title line entirely.
type Options struct {
	Title           *string
	IncludeArchived bool
}

// Compose serializes the items, in input order, into an SMS-safe message.
// Archived items are skipped unless IncludeArchived. Each line carries the
// name, the unit in parentheses when present, and an em-dash tail with the
// par shortage and the notes when they apply. Lines are joined with single
// newlines and there is no trailing newline.
func Compose(items []domain.Item, opts Options) string {
	title := DefaultTitle
	if opts.Title != nil {
		title = *opts.Title
	}

	lines := make([]string, 0, len(items)+1)
	if strings.TrimSpace(title) != "" {
		lines = append(lines, strings.TrimSpace(title))
	}

	for _, item := range items {
		if item.Archived && !opts.IncludeArchived {
			continue
		}
		lines = append(lines, composeLine(item))
	}

	return strings.Join(lines, "\n")
}

func composeLine(item domain.Item) string {
	parts := []string{"• " + item.Name}
	if item.Unit != nil && *item.Unit != "" {
		parts[0] += " (" + *item.Unit + ")"
	}
	if need, short := item.Shortage(); short {
		parts = append(parts, "need "+formatQuantity(need))
	}
	if item.Notes != nil && *item.Notes != "" {
		parts = append(parts, *item.Notes)
	}
	return strings.Join(parts, " — ")
}

func formatQuantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
