package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/shotframe/internal/image"
)

func newQRCommand(ctx *commandContext) *cobra.Command {
	var output string
	var size int
	cmd := &cobra.Command{
		Use:   "qr [text]",
		Short: "Write a QR code PNG in the background color (defaults to store_url)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.ensure()
			if err != nil {
				return err
			}
			text := cfg.StoreURL
			if len(args) == 1 {
				text = args[0]
			}
			if text == "" {
				return errors.New("qr: no text given and store_url is not configured")
			}
			if size <= 0 {
				size = cfg.QRSize
			}
			bg, err := cfg.BackgroundColor()
			if err != nil {
				return err
			}
			b, err := imagepkg.GenerateBrandedQRPNG(text, size, bg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "store_qr.png", "Output PNG path")
	cmd.Flags().IntVar(&size, "size", 0, "Image size in pixels (defaults to qr_size)")
	return cmd
}
