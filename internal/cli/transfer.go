package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doc4437/pantri/internal/pantry"
)

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the full state as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			data, err := a.store.ExportJSON()
			if err != nil {
				return err
			}

			filename := fmt.Sprintf("pantri-export-%s.json", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				filename = args[0]
			}

			if err := os.WriteFile(filename, data, 0600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d items to %s\n", len(a.store.State().Items), filename)
			return nil
		},
	}
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge items from an exported JSON file",
		Long: `Merge items from an exported JSON file into the current collection.
Items match on their trimmed, lower-cased name; each collision prompts
for a decision: replace the existing item, keep both, or keep only the
existing one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			resolve := func(c pantry.Conflict) (pantry.Resolution, error) {
				fmt.Fprintf(out, "%q already exists.\n", c.Existing.Name)
				if promptYes(reader, out, fmt.Sprintf("Replace %q with the imported version? [y/N] ", c.Existing.Name)) {
					return pantry.Replace, nil
				}
				if promptYes(reader, out, "Keep both copies? [y/N] ") {
					return pantry.KeepBoth, nil
				}
				return pantry.KeepExisting, nil
			}

			if err := a.store.ImportJSON(data, resolve); err != nil {
				return err
			}

			fmt.Fprintf(out, "import complete, %d items\n", len(a.store.State().Items))
			return nil
		},
	}
}

func promptYes(reader *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func newResetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored snapshot and start over from the seed list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to reset without --force")
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.database.Close(); err != nil {
					a.logger.Error("failed to close database", "error", err)
				}
				a.logCleanup()
			}()

			return a.gateway.Clear(ctx)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the reset")

	return cmd
}
