package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffstudio/internal/cli"
	"ffstudio/internal/ffmpeg"
	"ffstudio/internal/util/media"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "preview <file>",
		Short:         "Show the ffmpeg command and output path without executing",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.ConfigFromFlags(cmd.Flags(), args[0])
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			if cfg.OutputPath == "" {
				cfg.OutputPath = media.DefaultOutputPath(cfg)
			} else {
				cfg.OutputPath = media.RetargetPath(cfg)
			}
			cfg = cfg.Clamped()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Operation:   %s\n", cfg.Operation)
			fmt.Fprintf(out, "Output path: %s\n", cfg.OutputPath)
			fmt.Fprintf(out, "Command:     %s\n", ffmpeg.Preview(cfg))
			return nil
		},
	}
	cli.BindJobFlags(cmd.Flags())
	return cmd
}
