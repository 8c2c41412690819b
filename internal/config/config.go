package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ffstudio/internal/dirs"
)

// Init wires Viper with config paths, env, and flag bindings.
// It is non-fatal: any errors are returned for optional handling by caller.
func Init(root *cobra.Command) error {
	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: FFSTUDIO_*
	viper.SetEnvPrefix("FFSTUDIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind root persistent flags to Viper keys
	_ = viper.BindPFlag("ffmpeg_binary", root.PersistentFlags().Lookup("ffmpeg-binary"))
	_ = viper.BindPFlag("ffprobe_binary", root.PersistentFlags().Lookup("ffprobe-binary"))
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	// Read config file if present (ignore not found)
	_ = viper.ReadInConfig()

	return nil
}

// FFmpegBinary returns the configured ffmpeg path override ("" = use PATH).
func FFmpegBinary() string { return viper.GetString("ffmpeg_binary") }

// FFprobeBinary returns the configured ffprobe path override ("" = use PATH).
func FFprobeBinary() string { return viper.GetString("ffprobe_binary") }

// Verbose reports whether verbose output is enabled.
func Verbose() bool { return viper.GetBool("verbose") }
