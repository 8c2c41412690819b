package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates the directory path if it does not exist.
func EnsureDir(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// RemoveIfExists deletes the file if present.
func RemoveIfExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return os.Remove(path)
	} else if os.IsNotExist(err) {
		return nil
	} else {
		return err
	}
}

// Exists reports whether a file or directory is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// UniquePath returns a path that does not exist at call time. path itself is
// returned when free. Otherwise the stem is stripped of any prior "(N)"
// counter (so collisions never compound into "name(1)(2)") and candidates
// "stem(1)", "stem(2)", ... are probed with the original extension until one
// is free. The counter has no cap; the filesystem bounds the search.
func UniquePath(path string) string {
	if !Exists(path) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	stem = stripCounter(stem)

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s(%d)%s", stem, i, ext))
		if !Exists(candidate) {
			return candidate
		}
	}
}

// stripCounter removes a trailing "(N)" suffix where N is purely numeric.
func stripCounter(stem string) string {
	if !strings.HasSuffix(stem, ")") {
		return stem
	}
	open := strings.LastIndex(stem, "(")
	if open < 0 {
		return stem
	}
	digits := stem[open+1 : len(stem)-1]
	if digits == "" {
		return stem
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return stem
		}
	}
	return strings.TrimRight(stem[:open], " ")
}
