// Package ffmpeg builds argument vectors for the external ffmpeg binary.
//
// Everything here is pure: the builders map an EncodingConfig snapshot to an
// ordered token list and never touch the filesystem or spawn anything. Flag
// order matters to ffmpeg (a flag is bound to the value token that follows
// it, and the output path must come last), so tokens are assembled in the
// exact order the tool expects.
package ffmpeg

import (
	"fmt"
	"strconv"

	"ffstudio/internal/model"
	"ffstudio/internal/util"
)

// BuildArgs constructs the ffmpeg argument vector for the given snapshot.
// OutputPath must already be resolved by the caller; BuildArgs does not
// probe the filesystem for collisions.
func BuildArgs(cfg model.EncodingConfig) []string {
	args := []string{"-i", cfg.InputPath}

	switch cfg.Operation {
	case model.OpExtractAudio:
		// Drop video and subtitle streams, keep audio only.
		args = append(args, "-vn", "-sn", "-map", "0:a")
		args = append(args, audioArgs(cfg, false)...)

	case model.OpCompressVideo:
		// Map every input stream so chapters and subtitles survive.
		args = append(args, "-map", "0")
		args = append(args, "-c:v", "libx264")

		// Exactly one video-quality flag: CRF needs constant frame timing,
		// so VFR mode falls back to bitrate control.
		if cfg.BitrateVideo() {
			args = append(args, "-b:v", kbps(cfg.VideoBitrateKbps))
		} else {
			args = append(args, "-crf", strconv.Itoa(cfg.CRF))
		}

		args = append(args, "-preset", cfg.Preset)

		if cfg.FrameRateMode == model.CFR {
			args = append(args, "-r", fmt.Sprintf("%.3f", cfg.FrameRate))
		} else {
			args = append(args, "-vsync", "vfr")
		}

		args = append(args, audioArgs(cfg, true)...)
		args = append(args, "-c:s", "copy")

	case model.OpRemux:
		// Stream-copy everything; no quality parameters apply.
		args = append(args, "-map", "0", "-c", "copy")
	}

	args = append(args, "-y", cfg.OutputPath)
	return args
}

// audioArgs emits the per-codec audio block. The quality-level flag and the
// bitrate flag are mutually exclusive for every codec. compress marks the
// compress-video branch, which adds -strict experimental for FLAC where the
// extract branch does not.
func audioArgs(cfg model.EncodingConfig, compress bool) []string {
	args := []string{"-c:a", cfg.AudioCodec.FFmpegName()}

	switch cfg.AudioCodec {
	case model.CodecMP3:
		if cfg.UseAudioQuality {
			args = append(args, "-q:a", strconv.Itoa(cfg.AudioQuality))
		} else {
			args = append(args, "-b:a", kbps(cfg.AudioBitrateKbps))
		}
	case model.CodecOPUS, model.CodecAAC:
		args = append(args, "-b:a", kbps(cfg.AudioBitrateKbps))
		args = append(args, "-strict", "experimental")
	case model.CodecFLAC:
		args = append(args, "-compression_level", strconv.Itoa(cfg.AudioQuality))
		if compress {
			args = append(args, "-strict", "experimental")
		}
	case model.CodecWAV:
		args = append(args, "-ar", "44100")
	}

	return args
}

// Preview renders the full command line for display, shell-quoted.
func Preview(cfg model.EncodingConfig) string {
	return util.ShellJoin("ffmpeg", BuildArgs(cfg))
}

func kbps(n int) string {
	return fmt.Sprintf("%dk", n)
}
