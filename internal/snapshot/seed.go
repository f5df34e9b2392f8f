package snapshot

import (
	"time"

	"github.com/doc4437/pantri/internal/domain"
	"github.com/doc4437/pantri/internal/id"
)

// Seed returns the built-in starter state used when no snapshot exists.
// Every call mints fresh ids and timestamps.
func Seed() domain.State {
	now := time.Now().UnixMilli()
	return domain.State{
		Items: []domain.Item{
			{
				ID:        id.New(),
				Name:      "eggs",
				Category:  domain.String("Dairy"),
				Unit:      domain.String("dozen"),
				OnHand:    domain.Number(1),
				Par:       domain.Number(2),
				UpdatedAt: now,
			},
			{
				ID:        id.New(),
				Name:      "milk",
				Category:  domain.String("Dairy"),
				Unit:      domain.String("gallon"),
				OnHand:    domain.Number(0),
				Par:       domain.Number(1),
				UpdatedAt: now,
			},
			{
				ID:        id.New(),
				Name:      "coffee",
				Category:  domain.String("Dry Goods"),
				Unit:      domain.String("beans, 12 oz"),
				OnHand:    domain.Number(1),
				Par:       domain.Number(1),
				UpdatedAt: now,
			},
			{
				ID:        id.New(),
				Name:      "chicken thighs",
				Category:  domain.String("Meat"),
				Unit:      domain.String("3–4 lb"),
				OnHand:    domain.Number(0),
				UpdatedAt: now,
			},
			{
				ID:        id.New(),
				Name:      "cumin",
				Category:  domain.String("Spices"),
				Notes:     domain.String("ground"),
				OnHand:    domain.Number(1),
				UpdatedAt: now,
			},
		},
		SelectedIDs: []string{},
		Preferences: domain.Preferences{
			AutoresetAfterShare: true,
			ShowArchived:        false,
		},
	}
}
