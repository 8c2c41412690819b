package deps

import (
	"fmt"
	"os"
	"os/exec"
)

// FindFFmpeg returns the path to the ffmpeg binary.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		return findAt(customPath)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find ffmpeg in PATH. Please install ffmpeg.")
}

// FindFFprobe returns the path to the ffprobe binary.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindFFprobe(customPath string) (string, error) {
	if customPath != "" {
		return findAt(customPath)
	}
	if p, err := exec.LookPath("ffprobe"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find ffprobe in PATH. Please install ffmpeg (ffprobe ships with it).")
}

func findAt(customPath string) (string, error) {
	if _, err := os.Stat(customPath); err == nil {
		return customPath, nil
	}
	if p, err := exec.LookPath(customPath); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find binary at %q", customPath)
}
