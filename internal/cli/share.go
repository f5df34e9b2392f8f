package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doc4437/pantri/internal/share"
)

func newShareCommand() *cobra.Command {
	var (
		title           string
		includeArchived bool
		sms             bool
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Compose the share text for the selected items",
		Long: `Compose the plain-text list for the currently selected items and print
it to stdout. With --sms the sms: link is printed instead, ready to hand
to a messaging app. Completing the command counts as a share: when the
autoreset preference is on, the selection is cleared.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			items := a.store.SelectedItems()
			if len(items) == 0 {
				return fmt.Errorf("nothing selected; use 'pantri select' first")
			}

			opts := share.Options{IncludeArchived: includeArchived}
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			text := share.Compose(items, opts)

			out := cmd.OutOrStdout()
			if sms {
				if !a.cfg.SMSCapable {
					fmt.Fprintln(cmd.ErrOrStderr(), "SMS hand-off not available here; printing the text instead")
					fmt.Fprintln(out, text)
				} else {
					fmt.Fprintln(out, share.SMSLink(text))
				}
			} else {
				fmt.Fprintln(out, text)
			}

			if a.store.MarkShared() {
				fmt.Fprintln(cmd.ErrOrStderr(), "selection cleared")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title line (empty drops the title)")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "include archived items")
	cmd.Flags().BoolVar(&sms, "sms", false, "print an sms: link instead of the raw text")

	return cmd
}
