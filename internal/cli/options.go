// Package cli maps command-line flags onto an encoding configuration.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"ffstudio/internal/model"
)

// BindJobFlags registers the encoding flags shared by run/preview/tui.
// Defaults match the configuration the TUI presents on startup.
func BindJobFlags(fs *pflag.FlagSet) {
	def := model.DefaultConfig()
	fs.StringP("output", "o", "", "Output file path (default: derived from the input name)")
	fs.String("operation", string(def.Operation), "Operation: extract-audio, compress-video, remux")
	fs.String("format", string(def.Container), "Output container for video operations: mp4, mkv")
	fs.String("audio-codec", string(def.AudioCodec), "Audio codec: mp3, wav, flac, aac, opus")
	fs.Int("audio-quality", def.AudioQuality, "Audio quality level (codec-dependent range)")
	fs.Int("audio-bitrate", def.AudioBitrateKbps, "Audio bitrate in kbps (8-512)")
	fs.Bool("audio-cbr", false, "Force constant audio bitrate instead of the codec's quality mode")
	fs.Int("crf", def.CRF, "Constant rate factor for video quality (0-51, lower = better)")
	fs.Int("video-bitrate", def.VideoBitrateKbps, "Average video bitrate in kbps (100-50000)")
	fs.Bool("video-abr", false, "Use average bitrate instead of CRF for video quality")
	fs.String("preset", def.Preset, "x264 encoding preset (ultrafast..veryslow)")
	fs.Float64("fps", def.FrameRate, "Output frame rate for constant frame-rate mode")
	fs.Bool("vfr", false, "Keep variable frame-rate timing (forces bitrate video quality)")
}

// ConfigFromFlags assembles an EncodingConfig from parsed flags and the
// positional input path. Enum values are validated; numeric ranges are
// clamped later by the builder.
func ConfigFromFlags(fs *pflag.FlagSet, inputPath string) (model.EncodingConfig, error) {
	cfg := model.DefaultConfig()
	cfg.InputPath = inputPath

	op, _ := fs.GetString("operation")
	switch model.Operation(strings.ToLower(op)) {
	case model.OpExtractAudio, model.OpCompressVideo, model.OpRemux:
		cfg.Operation = model.Operation(strings.ToLower(op))
	default:
		return cfg, fmt.Errorf("invalid --operation: %q (valid: extract-audio|compress-video|remux)", op)
	}

	format, _ := fs.GetString("format")
	switch model.Container(strings.ToLower(format)) {
	case model.ContainerMP4, model.ContainerMKV:
		cfg.Container = model.Container(strings.ToLower(format))
	default:
		return cfg, fmt.Errorf("invalid --format: %q (valid: mp4|mkv)", format)
	}

	codec, _ := fs.GetString("audio-codec")
	ok := false
	for _, c := range model.AudioCodecs() {
		if string(c) == strings.ToLower(codec) {
			cfg.AudioCodec = c
			ok = true
		}
	}
	if !ok {
		return cfg, fmt.Errorf("invalid --audio-codec: %q (valid: mp3|wav|flac|aac|opus)", codec)
	}

	preset, _ := fs.GetString("preset")
	if !model.ValidPreset(preset) {
		return cfg, fmt.Errorf("invalid --preset: %q (valid: %s)", preset, strings.Join(model.Presets(), "|"))
	}
	cfg.Preset = preset

	cfg.OutputPath, _ = fs.GetString("output")
	cfg.AudioQuality, _ = fs.GetInt("audio-quality")
	cfg.AudioBitrateKbps, _ = fs.GetInt("audio-bitrate")
	cfg.CRF, _ = fs.GetInt("crf")
	cfg.VideoBitrateKbps, _ = fs.GetInt("video-bitrate")
	cfg.FrameRate, _ = fs.GetFloat64("fps")

	if cbr, _ := fs.GetBool("audio-cbr"); cbr {
		cfg.UseAudioQuality = false
	}
	if abr, _ := fs.GetBool("video-abr"); abr {
		cfg.UseCRF = false
	}
	if vfr, _ := fs.GetBool("vfr"); vfr {
		cfg.FrameRateMode = model.VFR
	}

	return cfg, nil
}
