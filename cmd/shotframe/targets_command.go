package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/youruser/shotframe/internal/target"
)

func newTargetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the configured target canvases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.ensure()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTargets(cfg.Targets))
			return nil
		},
	}
}

func renderTargets(specs []target.Spec) string {
	rows := make([][]string, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Width),
			strconv.Itoa(s.Height),
			s.Orientation.String(),
			strconv.Itoa(s.Margin()) + "%",
		})
	}
	return renderTable([]string{"Name", "Width", "Height", "Orientation", "Margin"}, rows, 1, 2, 4)
}
