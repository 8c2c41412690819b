package util

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		existing []string
		in       string
		want     string
	}{
		{
			name: "free path unchanged",
			in:   "clip.mp4",
			want: "clip.mp4",
		},
		{
			name:     "first collision",
			existing: []string{"clip.mp4"},
			in:       "clip.mp4",
			want:     "clip(1).mp4",
		},
		{
			name:     "counter advances past taken slots",
			existing: []string{"clip.mp4", "clip(1).mp4", "clip(2).mp4"},
			in:       "clip.mp4",
			want:     "clip(3).mp4",
		},
		{
			name:     "existing counter is stripped, not nested",
			existing: []string{"clip.mp4", "clip(2).mp4"},
			in:       "clip(2).mp4",
			want:     "clip(1).mp4",
		},
		{
			name:     "non-numeric parenthetical kept",
			existing: []string{"clip(final).mp4"},
			in:       "clip(final).mp4",
			want:     "clip(final)(1).mp4",
		},
		{
			name:     "no extension",
			existing: []string{"notes"},
			in:       "notes",
			want:     "notes(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := filepath.Join(dir, tt.name)
			if err := os.MkdirAll(sub, 0o755); err != nil {
				t.Fatal(err)
			}
			for _, f := range tt.existing {
				touch(t, filepath.Join(sub, f))
			}
			got := UniquePath(filepath.Join(sub, tt.in))
			if got != filepath.Join(sub, tt.want) {
				t.Errorf("UniquePath(%q) = %q, want %q", tt.in, filepath.Base(got), tt.want)
			}
		})
	}
}

func TestUniquePathNeverReturnsExisting(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.mkv")
	for i := 0; i < 5; i++ {
		got := UniquePath(p)
		if Exists(got) {
			t.Fatalf("round %d: UniquePath returned existing path %q", i, got)
		}
		touch(t, got)
	}
}

func TestStripCounter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clip", "clip"},
		{"clip(1)", "clip"},
		{"clip(42)", "clip"},
		{"clip (3)", "clip"},
		{"clip()", "clip()"},
		{"clip(a)", "clip(a)"},
		{"clip(1a)", "clip(1a)"},
		{"(5)", ""},
	}
	for _, tt := range tests {
		if got := stripCounter(tt.in); got != tt.want {
			t.Errorf("stripCounter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(filepath.Join(dir, "missing")) {
		t.Error("Exists reported a missing file as present")
	}
	p := filepath.Join(dir, "present")
	touch(t, p)
	if !Exists(p) {
		t.Error("Exists reported a present file as missing")
	}
	if !Exists(dir) {
		t.Error("Exists reported a directory as missing")
	}
}
