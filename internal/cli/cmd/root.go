package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ffstudio/internal/cli"
	"ffstudio/internal/config"
)

const (
	ExitOK         = 0
	ExitCLIError   = 1
	ExitMissingDep = 2
	ExitJobError   = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ffstudio [file]",
		Short:         "Interactive front-end for ffmpeg",
		Long:          "ffstudio drives ffmpeg for three everyday jobs: extracting audio, compressing video, and remuxing into MP4/MKV. Run it bare for the interactive screen, or use 'run' for a one-shot job.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tuiExecute(cmd, args)
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().String("ffmpeg-binary", "", "Path to the ffmpeg binary (default: search PATH)")
	root.PersistentFlags().String("ffprobe-binary", "", "Path to the ffprobe binary (default: search PATH)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess output on the terminal")

	// The root command doubles as the TUI, so it carries the job flags too.
	cli.BindJobFlags(root.Flags())

	// Subcommands
	root.AddCommand(newRunCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	_ = config.Init(root)

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// Flag helpers with precedence: explicitly set flag > env/config default.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

func getPersistentString(cmd *cobra.Command, name, def string) string {
	if f := lookupFlag(cmd, name); f != nil && f.Changed {
		return f.Value.String()
	}
	return def
}

func getPersistentBool(cmd *cobra.Command, name string, def bool) bool {
	if f := lookupFlag(cmd, name); f != nil && f.Changed {
		return f.Value.String() == "true"
	}
	return def
}
