package cli

import (
	"github.com/spf13/cobra"

	"github.com/doc4437/pantri/internal/web"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for local clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			server := web.NewServer(a.store, a.cfg.SMSCapable, a.logger)
			return server.ListenAndServe(a.cfg.ListenAddr)
		},
	}
}
