package main

import (
	"github.com/spf13/cobra"

	"github.com/youruser/shotframe/internal/api"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compositor over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return err
			}
			addr := cfg.Server.Bind
			if bind != "" {
				addr = bind
			}
			srv, err := api.NewServer(cfg, logger)
			if err != nil {
				return err
			}
			sigCtx, stop := signalContext(cmd.Context())
			defer stop()
			return srv.ListenAndServe(sigCtx, addr)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides server.bind)")
	return cmd
}
