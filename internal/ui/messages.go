package ui

import (
	"time"

	"ffstudio/internal/probe"
)

// repaintMsg is sent by the tracker's notifier after a progress update.
type repaintMsg struct{}

// tickMsg drives the periodic poll of the shared sinks.
type tickMsg time.Time

// probedMsg delivers the result of a background ffprobe run.
type probedMsg struct {
	Path string
	Info probe.Info
}
