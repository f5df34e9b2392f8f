package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doc4437/pantri/internal/domain"
	"github.com/doc4437/pantri/internal/pantry"
	"github.com/doc4437/pantri/internal/view"
)

func newListCommand() *cobra.Command {
	var (
		search   string
		category string
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			filters := view.DefaultFilters()
			filters.Search = search
			if category != "" {
				filters.Category = category
			}
			if sortBy != "" {
				filters.Sort = view.Sort(sortBy)
			}

			state := a.store.State()
			projection := view.Project(state.Items, state.Preferences, filters)

			out := cmd.OutOrStdout()
			for _, item := range projection.Visible {
				fmt.Fprintln(out, formatItemLine(item, state.Selected(item.ID)))
			}
			if len(projection.Categories) > 0 {
				fmt.Fprintf(out, "\ncategories: %s\n", strings.Join(projection.Categories, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or notes substring")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort order: updated, az or category")

	return cmd
}

func formatItemLine(item domain.Item, selected bool) string {
	mark := " "
	if selected {
		mark = "*"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", mark, item.Name)
	if item.Unit != nil {
		fmt.Fprintf(&b, " (%s)", *item.Unit)
	}
	fmt.Fprintf(&b, "  on hand: %s", formatNumber(item.OnHandOrZero()))
	if item.Par != nil {
		fmt.Fprintf(&b, "/%s", formatNumber(*item.Par))
	}
	if need, short := item.Shortage(); short {
		fmt.Fprintf(&b, "  need %s", formatNumber(need))
	}
	fmt.Fprintf(&b, "  [%s]", item.EffectiveCategory())
	if item.Archived {
		b.WriteString("  (archived)")
	}
	fmt.Fprintf(&b, "  id=%s", item.ID)
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func newAddCommand() *cobra.Command {
	var (
		category string
		unit     string
		notes    string
		onHand   float64
		par      float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			name := strings.Join(args, " ")

			var item domain.Item
			if cmd.Flags().NFlag() == 0 {
				item, err = a.store.QuickAdd(name)
			} else {
				draft := pantry.Draft{
					Name:     name,
					Category: category,
					Unit:     unit,
					Notes:    notes,
					OnHand:   onHand,
				}
				if cmd.Flags().Changed("par") {
					draft.Par = &par
				}
				item, err = a.store.AddItem(draft)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s (id=%s)\n", item.Name, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "item category")
	cmd.Flags().StringVar(&unit, "unit", "", "unit description, e.g. dozen")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().Float64Var(&onHand, "on-hand", 0, "quantity currently held")
	cmd.Flags().Float64Var(&par, "par", 0, "target quantity")

	return cmd
}

func newAdjustCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <id> <delta>",
		Short: "Adjust an item's on-hand quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if err := a.store.AdjustQuantity(args[0], delta); err != nil {
				return err
			}

			item, _ := a.store.State().FindItem(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s on hand: %s\n", item.Name, formatNumber(item.OnHandOrZero()))
			return nil
		},
	}
}

func newArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive or restore an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if err := a.store.ToggleArchived(args[0]); err != nil {
				return err
			}

			item, _ := a.store.State().FindItem(args[0])
			if item.Archived {
				fmt.Fprintf(cmd.OutOrStdout(), "archived %s\n", item.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", item.Name)
			}
			return nil
		},
	}
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			return a.store.DeleteItem(args[0])
		},
	}
}

func newSelectCommand() *cobra.Command {
	var (
		all  bool
		none bool
	)

	cmd := &cobra.Command{
		Use:   "select [id]",
		Short: "Toggle an item's selection for sharing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			switch {
			case none:
				a.store.ClearSelection()
			case all:
				// Select all currently visible items, not the raw collection.
				state := a.store.State()
				projection := view.Project(state.Items, state.Preferences, view.DefaultFilters())
				ids := make([]string, 0, len(projection.Visible))
				for _, item := range projection.Visible {
					ids = append(ids, item.ID)
				}
				a.store.SetSelection(ids)
			case len(args) == 1:
				if _, ok := a.store.State().FindItem(args[0]); !ok {
					return domain.ErrNotFound
				}
				a.store.ToggleSelection(args[0])
			default:
				return fmt.Errorf("provide an item id, --all or --none")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d selected\n", len(a.store.State().SelectedIDs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "select every visible item")
	cmd.Flags().BoolVar(&none, "none", false, "clear the selection")

	return cmd
}
