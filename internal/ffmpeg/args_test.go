package ffmpeg

import (
	"strings"
	"testing"

	"ffstudio/internal/model"
)

func baseConfig() model.EncodingConfig {
	cfg := model.DefaultConfig()
	cfg.InputPath = "/videos/input.mov"
	cfg.OutputPath = "/videos/out.mp4"
	return cfg
}

func TestBuildArgsExtractAudio(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(*model.EncodingConfig)
		wantContains    []string
		wantNotContains []string
	}{
		{
			name: "mp3 quality mode",
			mutate: func(c *model.EncodingConfig) {
				c.AudioCodec = model.CodecMP3
				c.UseAudioQuality = true
				c.AudioQuality = 4
			},
			wantContains:    []string{"-vn", "-sn", "-map 0:a", "-c:a libmp3lame", "-q:a 4"},
			wantNotContains: []string{"-b:a", "-c:v", "-crf", "-preset"},
		},
		{
			name: "mp3 bitrate mode",
			mutate: func(c *model.EncodingConfig) {
				c.AudioCodec = model.CodecMP3
				c.UseAudioQuality = false
				c.AudioBitrateKbps = 192
			},
			wantContains:    []string{"-c:a libmp3lame", "-b:a 192k"},
			wantNotContains: []string{"-q:a"},
		},
		{
			name: "opus always bitrate",
			mutate: func(c *model.EncodingConfig) {
				c.AudioCodec = model.CodecOPUS
				c.UseAudioQuality = true
				c.AudioBitrateKbps = 128
			},
			wantContains:    []string{"-c:a libopus", "-b:a 128k", "-strict experimental"},
			wantNotContains: []string{"-q:a", "-compression_level"},
		},
		{
			name: "aac always bitrate",
			mutate: func(c *model.EncodingConfig) {
				c.AudioCodec = model.CodecAAC
				c.AudioBitrateKbps = 256
			},
			wantContains:    []string{"-c:a aac", "-b:a 256k", "-strict experimental"},
			wantNotContains: []string{"-q:a"},
		},
		{
			name: "flac compression level, no strict on extract",
			mutate: func(c *model.EncodingConfig) {
				c.AudioCodec = model.CodecFLAC
				c.AudioQuality = 8
			},
			wantContains:    []string{"-c:a flac", "-compression_level 8"},
			wantNotContains: []string{"-strict", "-b:a", "-q:a"},
		},
		{
			name: "wav fixed sample rate",
			mutate: func(c *model.EncodingConfig) {
				c.AudioCodec = model.CodecWAV
			},
			wantContains:    []string{"-c:a pcm_s16le", "-ar 44100"},
			wantNotContains: []string{"-b:a", "-q:a", "-compression_level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Operation = model.OpExtractAudio
			tt.mutate(&cfg)

			joined := strings.Join(BuildArgs(cfg), " ")
			for _, want := range tt.wantContains {
				if !strings.Contains(joined, want) {
					t.Errorf("args %q missing %q", joined, want)
				}
			}
			for _, not := range tt.wantNotContains {
				if strings.Contains(joined, not) {
					t.Errorf("args %q should not contain %q", joined, not)
				}
			}
		})
	}
}

func TestBuildArgsCompressVideo(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(*model.EncodingConfig)
		wantContains    []string
		wantNotContains []string
	}{
		{
			name: "crf with constant frame rate",
			mutate: func(c *model.EncodingConfig) {
				c.UseCRF = true
				c.CRF = 23
				c.FrameRateMode = model.CFR
				c.FrameRate = 29.97
			},
			wantContains:    []string{"-map 0", "-c:v libx264", "-crf 23", "-preset medium", "-r 29.970", "-c:s copy"},
			wantNotContains: []string{"-b:v", "-vsync"},
		},
		{
			name: "bitrate with constant frame rate",
			mutate: func(c *model.EncodingConfig) {
				c.UseCRF = false
				c.VideoBitrateKbps = 2500
				c.FrameRateMode = model.CFR
			},
			wantContains:    []string{"-b:v 2500k"},
			wantNotContains: []string{"-crf"},
		},
		{
			name: "variable frame rate forces bitrate",
			mutate: func(c *model.EncodingConfig) {
				c.UseCRF = true
				c.FrameRateMode = model.VFR
				c.VideoBitrateKbps = 2000
			},
			wantContains:    []string{"-b:v 2000k", "-vsync vfr"},
			wantNotContains: []string{"-crf", "-r "},
		},
		{
			name: "flac gains strict experimental when compressing",
			mutate: func(c *model.EncodingConfig) {
				c.AudioCodec = model.CodecFLAC
				c.AudioQuality = 5
			},
			wantContains: []string{"-c:a flac", "-compression_level 5", "-strict experimental"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Operation = model.OpCompressVideo
			tt.mutate(&cfg)

			joined := strings.Join(BuildArgs(cfg), " ")
			for _, want := range tt.wantContains {
				if !strings.Contains(joined, want) {
					t.Errorf("args %q missing %q", joined, want)
				}
			}
			for _, not := range tt.wantNotContains {
				if strings.Contains(joined, not) {
					t.Errorf("args %q should not contain %q", joined, not)
				}
			}
		})
	}
}

func TestBuildArgsRemux(t *testing.T) {
	cfg := baseConfig()
	cfg.Operation = model.OpRemux
	cfg.Container = model.ContainerMKV
	cfg.OutputPath = "/videos/out.mkv"

	got := BuildArgs(cfg)
	want := []string{"-i", "/videos/input.mov", "-map", "0", "-c", "copy", "-y", "/videos/out.mkv"}
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildArgsShape(t *testing.T) {
	// Every operation starts with the input and ends with -y <output>.
	for _, op := range model.Operations() {
		cfg := baseConfig()
		cfg.Operation = op

		args := BuildArgs(cfg)
		if len(args) < 4 {
			t.Fatalf("%s: too few args: %v", op, args)
		}
		if args[0] != "-i" || args[1] != cfg.InputPath {
			t.Errorf("%s: args do not start with -i input: %v", op, args[:2])
		}
		if args[len(args)-2] != "-y" || args[len(args)-1] != cfg.OutputPath {
			t.Errorf("%s: args do not end with -y output: %v", op, args[len(args)-2:])
		}
	}
}

func TestAudioFlagsMutuallyExclusive(t *testing.T) {
	// No codec/operation combination may emit both a quality flag and a
	// bitrate flag.
	ops := []model.Operation{model.OpExtractAudio, model.OpCompressVideo}
	for _, op := range ops {
		for _, codec := range model.AudioCodecs() {
			for _, quality := range []bool{true, false} {
				cfg := baseConfig()
				cfg.Operation = op
				cfg.AudioCodec = codec
				cfg.UseAudioQuality = quality

				joined := strings.Join(BuildArgs(cfg), " ")
				hasQuality := strings.Contains(joined, "-q:a") || strings.Contains(joined, "-compression_level")
				hasBitrate := strings.Contains(joined, "-b:a")
				if hasQuality && hasBitrate {
					t.Errorf("%s/%s quality=%v: both quality and bitrate flags in %q",
						op, codec, quality, joined)
				}
			}
		}
	}
}

func TestPreview(t *testing.T) {
	cfg := baseConfig()
	cfg.Operation = model.OpExtractAudio
	cfg.InputPath = "/videos/my clip.mov"
	cfg.OutputPath = "/videos/my clip-Audio.mp3"

	got := Preview(cfg)
	if !strings.HasPrefix(got, "ffmpeg ") {
		t.Errorf("Preview = %q, want ffmpeg prefix", got)
	}
	if !strings.Contains(got, `'/videos/my clip.mov'`) {
		t.Errorf("Preview = %q, want quoted input path", got)
	}
}
