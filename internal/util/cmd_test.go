package util

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	t.Run("captures stdout", func(t *testing.T) {
		res, err := Run(context.Background(), CmdSpec{
			Path:          "/bin/sh",
			Args:          []string{"-c", "echo hello"},
			CaptureStdout: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(string(res.Stdout)); got != "hello" {
			t.Errorf("stdout = %q, want hello", got)
		}
		if res.Code != 0 {
			t.Errorf("code = %d, want 0", res.Code)
		}
	})

	t.Run("streams stderr lines", func(t *testing.T) {
		var lines []string
		res, err := Run(context.Background(), CmdSpec{
			Path:       "/bin/sh",
			Args:       []string{"-c", "echo one 1>&2; echo two 1>&2"},
			StderrLine: func(l string) { lines = append(lines, l) },
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
			t.Errorf("stderr lines = %v", lines)
		}
		if string(res.Stderr) != "one\ntwo\n" {
			t.Errorf("stderr buffer = %q", res.Stderr)
		}
	})

	t.Run("nonzero exit reported", func(t *testing.T) {
		res, err := Run(context.Background(), CmdSpec{
			Path: "/bin/sh",
			Args: []string{"-c", "exit 3"},
		})
		if err == nil {
			t.Fatal("want error for exit 3")
		}
		if res.Code != 3 {
			t.Errorf("code = %d, want 3", res.Code)
		}
	})
}

func TestShellJoin(t *testing.T) {
	tests := []struct {
		path string
		args []string
		want string
	}{
		{"ffmpeg", []string{"-i", "in.mov"}, "ffmpeg -i in.mov"},
		{"ffmpeg", []string{"-i", "my clip.mov"}, "ffmpeg -i 'my clip.mov'"},
		{"ffmpeg", []string{""}, "ffmpeg ''"},
		{"ffmpeg", []string{"it's"}, `ffmpeg 'it'\''s'`},
	}
	for _, tt := range tests {
		if got := ShellJoin(tt.path, tt.args); got != tt.want {
			t.Errorf("ShellJoin(%q, %v) = %q, want %q", tt.path, tt.args, got, tt.want)
		}
	}
}
