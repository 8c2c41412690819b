package model

import "path/filepath"

// Operation selects what the tool does with the input file.
type Operation string

const (
	OpExtractAudio  Operation = "extract-audio"
	OpCompressVideo Operation = "compress-video"
	OpRemux         Operation = "remux"
)

// Description returns a short human-readable summary for UI display.
func (o Operation) Description() string {
	switch o {
	case OpExtractAudio:
		return "Extract audio from a video file."
	case OpCompressVideo:
		return "Compress video with advanced options."
	case OpRemux:
		return "Repackage into MP4/MKV without re-encoding."
	default:
		return ""
	}
}

// ShowsAudioOptions reports whether audio settings apply to this operation.
func (o Operation) ShowsAudioOptions() bool {
	return o == OpExtractAudio || o == OpCompressVideo
}

// ShowsVideoOptions reports whether video settings apply to this operation.
func (o Operation) ShowsVideoOptions() bool {
	return o == OpCompressVideo
}

// Operations lists all supported operations in menu order.
func Operations() []Operation {
	return []Operation{OpExtractAudio, OpCompressVideo, OpRemux}
}

// Container is the output container for video operations.
type Container string

const (
	ContainerMP4 Container = "mp4"
	ContainerMKV Container = "mkv"
)

// Ext returns the file extension (without dot) for the container.
func (c Container) Ext() string { return string(c) }

// Containers lists the supported output containers.
func Containers() []Container {
	return []Container{ContainerMP4, ContainerMKV}
}

// AudioCodec identifies the target audio codec for audio streams.
type AudioCodec string

const (
	CodecMP3  AudioCodec = "mp3"
	CodecWAV  AudioCodec = "wav"
	CodecFLAC AudioCodec = "flac"
	CodecAAC  AudioCodec = "aac"
	CodecOPUS AudioCodec = "opus"
)

// FFmpegName returns the encoder name passed to -c:a.
func (a AudioCodec) FFmpegName() string {
	switch a {
	case CodecMP3:
		return "libmp3lame"
	case CodecWAV:
		return "pcm_s16le"
	case CodecFLAC:
		return "flac"
	case CodecAAC:
		return "aac"
	case CodecOPUS:
		return "libopus"
	default:
		return ""
	}
}

// Ext returns the file extension (without dot) for audio-only output.
// AAC is commonly stored in .m4a containers.
func (a AudioCodec) Ext() string {
	switch a {
	case CodecAAC:
		return "m4a"
	default:
		return string(a)
	}
}

// HasQualityMode reports whether the codec supports a native quality/VBR
// setting. Codecs without one always encode at a fixed bitrate.
func (a AudioCodec) HasQualityMode() bool {
	return a == CodecMP3 || a == CodecFLAC
}

// QualityRange returns the valid quality-level range for the codec.
// For FLAC the level is the compression level, not a VBR quality.
func (a AudioCodec) QualityRange() (min, max int) {
	switch a {
	case CodecMP3:
		return 0, 9
	case CodecFLAC:
		return 0, 12
	case CodecOPUS:
		return 0, 10
	default:
		return 0, 0
	}
}

// AudioCodecs lists the supported audio codecs in menu order.
func AudioCodecs() []AudioCodec {
	return []AudioCodec{CodecMP3, CodecWAV, CodecFLAC, CodecAAC, CodecOPUS}
}

// FrameRateMode selects constant vs variable frame-rate output timing.
type FrameRateMode string

const (
	CFR FrameRateMode = "cfr"
	VFR FrameRateMode = "vfr"
)

// Presets returns the nine x264 speed/quality presets, fastest first.
func Presets() []string {
	return []string{
		"ultrafast", "superfast", "veryfast", "faster", "fast",
		"medium", "slow", "slower", "veryslow",
	}
}

// ValidPreset reports whether p is one of the nine x264 presets.
func ValidPreset(p string) bool {
	for _, q := range Presets() {
		if p == q {
			return true
		}
	}
	return false
}

// EncodingConfig is an immutable snapshot of the user's encoding choices.
// The command builder consumes a copy; nothing mutates it during a job.
type EncodingConfig struct {
	InputPath  string
	OutputPath string

	Operation  Operation
	Container  Container
	AudioCodec AudioCodec

	// Video settings. UseCRF selects rate-factor mode; it is only honored
	// when FrameRateMode is CFR; VFR forces bitrate mode.
	UseCRF           bool
	CRF              int // 0-51
	VideoBitrateKbps int // 100-50000
	Preset           string
	FrameRateMode    FrameRateMode
	FrameRate        float64 // fps, CFR mode only
	OriginalFPS      float64 // probed, unclamped; upper bound for FrameRate

	// Audio settings. UseAudioQuality selects the codec's quality/VBR mode
	// where one exists; codecs without one always use AudioBitrateKbps.
	UseAudioQuality  bool
	AudioQuality     int // codec-dependent range
	AudioBitrateKbps int // 8-512
}

// DefaultConfig returns the configuration presented on startup.
func DefaultConfig() EncodingConfig {
	return EncodingConfig{
		Operation:        OpExtractAudio,
		Container:        ContainerMP4,
		AudioCodec:       CodecMP3,
		UseCRF:           true,
		CRF:              28,
		VideoBitrateKbps: 2000,
		Preset:           "medium",
		FrameRateMode:    CFR,
		FrameRate:        30.0,
		OriginalFPS:      30.0,
		UseAudioQuality:  true,
		AudioQuality:     4,
		AudioBitrateKbps: 192,
	}
}

// OutputExt returns the extension (without dot) the output file should carry
// for the currently selected operation and format.
func (c EncodingConfig) OutputExt() string {
	if c.Operation == OpExtractAudio {
		return c.AudioCodec.Ext()
	}
	return c.Container.Ext()
}

// BitrateVideo reports whether the built command uses -b:v instead of -crf.
// CRF is only honored in CFR mode.
func (c EncodingConfig) BitrateVideo() bool {
	return !c.UseCRF || c.FrameRateMode != CFR
}

// Clamped returns a copy with every numeric field forced into its valid
// range and the preset defaulted when unrecognized.
func (c EncodingConfig) Clamped() EncodingConfig {
	c.CRF = clampInt(c.CRF, 0, 51)
	c.VideoBitrateKbps = clampInt(c.VideoBitrateKbps, 100, 50000)
	c.AudioBitrateKbps = clampInt(c.AudioBitrateKbps, 8, 512)
	if qmin, qmax := c.AudioCodec.QualityRange(); qmax > qmin {
		c.AudioQuality = clampInt(c.AudioQuality, qmin, qmax)
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30.0
	}
	if !ValidPreset(c.Preset) {
		c.Preset = "medium"
	}
	return c
}

// InputStem returns the input filename without directory or extension.
func (c EncodingConfig) InputStem() string {
	base := filepath.Base(c.InputPath)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
