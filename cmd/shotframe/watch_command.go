package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/shotframe/internal/batch"
	"github.com/youruser/shotframe/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var skipInitial bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render all inputs, then re-render each one when it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return err
			}
			runner, err := batch.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			sigCtx, stop := signalContext(cmd.Context())
			defer stop()

			if !skipInitial {
				rep, err := runner.Run(sigCtx)
				fmt.Fprintln(cmd.OutOrStdout(), renderReport(rep))
				if err != nil {
					return err
				}
			}
			w, err := watch.New(runner, cfg.Inputs, logger)
			if err != nil {
				return err
			}
			return w.Run(sigCtx)
		},
	}
	cmd.Flags().BoolVar(&skipInitial, "skip-initial", false, "Do not run the full batch before watching")
	return cmd
}
