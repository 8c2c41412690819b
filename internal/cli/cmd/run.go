package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ffstudio/internal/cli"
	"ffstudio/internal/config"
	"ffstudio/internal/probe"
	"ffstudio/internal/progress"
	"ffstudio/internal/supervisor"
	"ffstudio/internal/util"
	"ffstudio/internal/util/deps"
	"ffstudio/internal/util/format"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run <file>",
		Short:         "Run a single encoding job without the interactive screen",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE:          runExecute,
	}
	cli.BindJobFlags(cmd.Flags())
	return cmd
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, err := cli.ConfigFromFlags(cmd.Flags(), args[0])
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	ffmpegPath, ffprobePath, err := resolveBinaries(cmd)
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: err}
	}
	verbose := getPersistentBool(cmd, "verbose", config.Verbose())

	tracker := progress.NewTracker()
	sup := supervisor.New(ffmpegPath, tracker)
	prober := probe.New(ffprobePath, nil)

	info := prober.Probe(cmd.Context(), cfg.InputPath)
	sup.RecordProbe(info)
	if verbose {
		for _, n := range info.Notes {
			fmt.Fprintln(os.Stderr, n)
		}
	}
	cfg.OriginalFPS = info.OriginalFPS
	if !cmd.Flags().Changed("fps") {
		cfg.FrameRate = info.FrameRate
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = sup.DefaultOutputPath(cfg)
	} else if util.Exists(cfg.OutputPath) {
		cfg.OutputPath = util.UniquePath(cfg.OutputPath)
	}

	if err := sup.Start(cfg); err != nil {
		if errors.Is(err, supervisor.ErrBadInput) {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		return &ExitError{Code: ExitJobError, Err: err}
	}

	waitJob(cmd.Context(), sup, verbose)

	log := tracker.Log()
	if !strings.Contains(log, "Output successfully saved to") {
		return &ExitError{Code: ExitJobError, Err: errors.New("ffmpeg failed; rerun with --verbose for details")}
	}

	if fi, err := os.Stat(cfg.OutputPath); err == nil {
		fmt.Printf("Saved: %s (%s)\n", cfg.OutputPath, format.HumanizeBytes(fi.Size()))
	} else {
		fmt.Printf("Saved: %s\n", cfg.OutputPath)
	}
	return nil
}

// waitJob polls the tracker until the job finishes, cancelling it when the
// context is done. Verbose mode streams the job log to stderr as it grows.
func waitJob(ctx context.Context, sup *supervisor.Supervisor, verbose bool) {
	printed := 0
	cancelled := false
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			if !cancelled {
				_ = sup.Cancel()
				cancelled = true
			}
		case <-tick.C:
		}

		if verbose {
			log := sup.Log()
			if len(log) > printed {
				fmt.Fprint(os.Stderr, log[printed:])
				printed = len(log)
			}
		}
		if !sup.Running() {
			// One last drain so the terminal lines are not lost.
			if verbose {
				log := sup.Log()
				if len(log) > printed {
					fmt.Fprint(os.Stderr, log[printed:])
				}
			}
			return
		}
	}
}

// resolveBinaries locates ffmpeg and ffprobe honoring flag and config
// overrides.
func resolveBinaries(cmd *cobra.Command) (ffmpegPath, ffprobePath string, err error) {
	ffBin := getPersistentString(cmd, "ffmpeg-binary", config.FFmpegBinary())
	probeBin := getPersistentString(cmd, "ffprobe-binary", config.FFprobeBinary())

	ffmpegPath, err = deps.FindFFmpeg(ffBin)
	if err != nil {
		return "", "", err
	}
	ffprobePath, err = deps.FindFFprobe(probeBin)
	if err != nil {
		return "", "", err
	}
	return ffmpegPath, ffprobePath, nil
}
