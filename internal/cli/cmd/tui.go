package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ffstudio/internal/cli"
	"ffstudio/internal/probe"
	"ffstudio/internal/progress"
	"ffstudio/internal/supervisor"
	"ffstudio/internal/ui"
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui [file]",
		Short:         "Open the interactive encoding screen",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          tuiExecute,
	}
	cli.BindJobFlags(cmd.Flags())
	return cmd
}

func tuiExecute(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &ExitError{Code: ExitCLIError, Err: errors.New("stdout is not a terminal; use 'ffstudio run <file>' instead")}
	}

	input := ""
	if len(args) > 0 {
		input = args[0]
	}
	cfg, err := cli.ConfigFromFlags(cmd.Flags(), input)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	ffmpegPath, ffprobePath, err := resolveBinaries(cmd)
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: err}
	}

	tracker := progress.NewTracker()
	sup := supervisor.New(ffmpegPath, tracker)
	prober := probe.New(ffprobePath, nil)

	if err := ui.Run(cmd.Context(), sup, prober, cfg); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return nil
}
