package media

import (
	"os"
	"path/filepath"
	"testing"

	"ffstudio/internal/model"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*model.EncodingConfig)
		want   string
	}{
		{
			name: "extract audio uses codec extension",
			mutate: func(c *model.EncodingConfig) {
				c.Operation = model.OpExtractAudio
				c.AudioCodec = model.CodecMP3
			},
			want: "movie-Audio.mp3",
		},
		{
			name: "aac maps to m4a",
			mutate: func(c *model.EncodingConfig) {
				c.Operation = model.OpExtractAudio
				c.AudioCodec = model.CodecAAC
			},
			want: "movie-Audio.m4a",
		},
		{
			name: "compress uses container extension",
			mutate: func(c *model.EncodingConfig) {
				c.Operation = model.OpCompressVideo
				c.Container = model.ContainerMKV
			},
			want: "movie-Compressed.mkv",
		},
		{
			name: "remux gets converted suffix",
			mutate: func(c *model.EncodingConfig) {
				c.Operation = model.OpRemux
				c.Container = model.ContainerMP4
			},
			want: "movie-Converted.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultConfig()
			cfg.InputPath = filepath.Join(dir, "movie.mov")
			tt.mutate(&cfg)

			got := DefaultOutputPath(cfg)
			if got != filepath.Join(dir, tt.want) {
				t.Errorf("DefaultOutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultOutputPathEmptyInput(t *testing.T) {
	cfg := model.DefaultConfig()
	if got := DefaultOutputPath(cfg); got != "" {
		t.Errorf("DefaultOutputPath with empty input = %q, want empty", got)
	}
}

func TestDefaultOutputPathUniquifies(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.Operation = model.OpExtractAudio
	cfg.AudioCodec = model.CodecFLAC
	cfg.InputPath = filepath.Join(dir, "movie.mov")

	touch(t, filepath.Join(dir, "movie-Audio.flac"))

	got := DefaultOutputPath(cfg)
	if got != filepath.Join(dir, "movie-Audio(1).flac") {
		t.Errorf("DefaultOutputPath = %q, want movie-Audio(1).flac", got)
	}
}

func TestRetargetPath(t *testing.T) {
	dir := t.TempDir()

	cfg := model.DefaultConfig()
	cfg.Operation = model.OpCompressVideo
	cfg.Container = model.ContainerMKV
	cfg.InputPath = filepath.Join(dir, "movie.mov")
	cfg.OutputPath = filepath.Join(dir, "chosen.mp4")

	// Extension follows the selected container, not the typed one.
	if got := RetargetPath(cfg); got != filepath.Join(dir, "chosen.mkv") {
		t.Errorf("RetargetPath = %q, want chosen.mkv", got)
	}

	// Collision on the retargeted path gets a counter.
	touch(t, filepath.Join(dir, "chosen.mkv"))
	if got := RetargetPath(cfg); got != filepath.Join(dir, "chosen(1).mkv") {
		t.Errorf("RetargetPath = %q, want chosen(1).mkv", got)
	}

	// Empty chosen path falls back to default naming.
	cfg.OutputPath = ""
	if got := RetargetPath(cfg); got != filepath.Join(dir, "movie-Compressed.mkv") {
		t.Errorf("RetargetPath = %q, want movie-Compressed.mkv", got)
	}
}

func TestSuffix(t *testing.T) {
	tests := []struct {
		op   model.Operation
		want string
	}{
		{model.OpExtractAudio, "-Audio"},
		{model.OpCompressVideo, "-Compressed"},
		{model.OpRemux, "-Converted"},
	}
	for _, tt := range tests {
		if got := Suffix(tt.op); got != tt.want {
			t.Errorf("Suffix(%s) = %q, want %q", tt.op, got, tt.want)
		}
	}
}
