package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/youruser/shotframe/internal/batch"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render every input into every target category",
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

			rep, err := runner.Run(sigCtx)
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(rep))
			if err != nil {
				return err
			}
			if strict && rep.HasFailures() {
				return fmt.Errorf("%d screenshot(s) failed", rep.Failed())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any screenshot fails")
	return cmd
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func renderReport(rep batch.Report) string {
	rows := make([][]string, 0, len(rep.Results))
	for _, res := range rep.Results {
		detail := res.OutputPath
		if res.Err != nil {
			detail = res.Err.Error()
		}
		category := res.Category
		if category == "" {
			category = "-"
		}
		rows = append(rows, []string{res.Input, category, res.Status.String(), detail})
	}
	out := renderTable([]string{"Input", "Category", "Status", "Output"}, rows)
	summary := fmt.Sprintf("%d generated, %d missing, %d failed", rep.OK(), rep.Missing(), rep.Failed())
	if rep.QRPath != "" {
		summary += "\nstore qr: " + rep.QRPath
	}
	if out == "" {
		return summary
	}
	return out + "\n" + summary
}
