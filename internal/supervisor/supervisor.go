// Package supervisor owns the lifecycle of the external ffmpeg process: at
// most one job runs at a time, its stderr is streamed into the shared log,
// and a normalized completion fraction is derived from the emitted
// timecodes. The process handle is guarded so the reader, the waiter, and a
// concurrent cancel request never observe a half-cleared handle.
package supervisor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"ffstudio/internal/ffmpeg"
	"ffstudio/internal/model"
	"ffstudio/internal/probe"
	"ffstudio/internal/progress"
	"ffstudio/internal/util"
	"ffstudio/internal/util/media"
)

// ErrJobRunning is returned when a start is rejected because a job is active.
var ErrJobRunning = errors.New("a job is already running")

// ErrNoJob is returned when cancel finds no process to stop.
var ErrNoJob = errors.New("no active process")

// ErrBadInput is returned for start rejections caused by the configuration.
var ErrBadInput = errors.New("invalid job configuration")

// Supervisor drives ffmpeg jobs and reports through a progress.Tracker.
// It is the surface the presentation layer talks to.
type Supervisor struct {
	ffmpegPath string
	tracker    *progress.Tracker

	mu   sync.Mutex // guards proc and done
	proc *exec.Cmd
	done chan struct{} // closed once the current process is reaped

	durMu    sync.Mutex
	duration float64
}

// New returns a Supervisor executing the given ffmpeg binary.
func New(ffmpegPath string, tracker *progress.Tracker) *Supervisor {
	return &Supervisor{
		ffmpegPath: ffmpegPath,
		tracker:    tracker,
		duration:   probe.FallbackDuration,
	}
}

// Tracker exposes the shared sinks for the presentation layer.
func (s *Supervisor) Tracker() *progress.Tracker { return s.tracker }

// Log returns the current job log.
func (s *Supervisor) Log() string { return s.tracker.Log() }

// Fraction returns the completion fraction in [0,1].
func (s *Supervisor) Fraction() float64 { return s.tracker.Fraction() }

// Running reports whether a job is active.
func (s *Supervisor) Running() bool { return s.tracker.Running() }

// DefaultOutputPath derives the default destination for cfg.
func (s *Supervisor) DefaultOutputPath(cfg model.EncodingConfig) string {
	return media.DefaultOutputPath(cfg)
}

// PreviewCommand renders the command that Start would execute.
func (s *Supervisor) PreviewCommand(cfg model.EncodingConfig) string {
	return ffmpeg.Preview(cfg)
}

// RecordProbe stores the probed duration used for progress computation and
// appends the probe's notes to the job log.
func (s *Supervisor) RecordProbe(info probe.Info) {
	s.durMu.Lock()
	s.duration = info.DurationSec
	s.durMu.Unlock()
	for _, n := range info.Notes {
		s.tracker.Append(n)
	}
}

// Duration returns the recorded input duration in seconds (1.0 = unknown).
func (s *Supervisor) Duration() float64 {
	s.durMu.Lock()
	defer s.durMu.Unlock()
	return s.duration
}

// Start validates the configuration, resolves the output path, and launches
// ffmpeg in the background. Rejections append an error line to the log and
// leave the current state untouched.
func (s *Supervisor) Start(cfg model.EncodingConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker.Running() {
		s.tracker.Append("A process is already running. Please stop it first.")
		return ErrJobRunning
	}
	if cfg.InputPath == "" {
		s.tracker.Append("Error: No input file selected.")
		return fmt.Errorf("%w: no input file", ErrBadInput)
	}
	if !util.Exists(cfg.InputPath) {
		s.tracker.Appendf("Error: Input file does not exist: %s", cfg.InputPath)
		return fmt.Errorf("%w: input %q does not exist", ErrBadInput, cfg.InputPath)
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = media.DefaultOutputPath(cfg)
	} else if util.Exists(cfg.OutputPath) {
		cfg.OutputPath = util.UniquePath(cfg.OutputPath)
	}
	if dir := filepath.Dir(cfg.OutputPath); !util.Exists(dir) {
		s.tracker.Appendf("Error: Output directory does not exist: %s", dir)
		return fmt.Errorf("%w: output directory %q does not exist", ErrBadInput, dir)
	}

	cfg = cfg.Clamped()
	args := ffmpeg.BuildArgs(cfg)
	duration := s.Duration()

	s.tracker.StartJob()
	s.proc = nil
	s.done = nil
	s.tracker.Appendf("Outputting to: %s", cfg.OutputPath)

	go s.run(args, cfg.OutputPath, duration)
	return nil
}

// run spawns ffmpeg and blocks on its exit. It is the only caller of Wait.
func (s *Supervisor) run(args []string, outputPath string, duration float64) {
	s.tracker.Appendf("Executing: ffmpeg %s", strings.Join(args, " "))

	cmd := exec.Command(s.ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.failSpawn(err)
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.failSpawn(err)
		return
	}
	if err := cmd.Start(); err != nil {
		s.failSpawn(err)
		return
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.proc = cmd
	s.done = done
	s.mu.Unlock()

	// ffmpeg is quiet on stdout but the pipe still has to be drained.
	go io.Copy(io.Discard, stdout)

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		s.read(stderr, duration)
	}()

	<-readerDone
	waitErr := cmd.Wait()

	s.tracker.Appendf("FFmpeg finished with status: %s", cmd.ProcessState.String())
	if waitErr == nil {
		s.tracker.Appendf("Output successfully saved to %s", outputPath)
	} else {
		s.tracker.Append("FFmpeg command failed.")
	}

	s.mu.Lock()
	if s.proc == cmd {
		s.proc = nil
	}
	s.mu.Unlock()

	s.tracker.SetRunning(false)
	s.tracker.ForceFraction(1.0)
	close(done)
}

func (s *Supervisor) failSpawn(err error) {
	s.tracker.Appendf("Error: failed to start ffmpeg: %v", err)
	s.tracker.SetRunning(false)
	s.tracker.ForceFraction(1.0)
}

// read consumes stderr line by line. Every line lands in the log verbatim;
// lines carrying a time= marker update the completion fraction before the
// repaint is requested.
func (s *Supervisor) read(r io.Reader, duration float64) {
	sc := bufio.NewScanner(r)
	sc.Split(scanLine)
	const maxCapacity = 1024 * 1024
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, maxCapacity)

	for sc.Scan() {
		line := sc.Text()
		s.tracker.Append(line)
		if tc, ok := ffmpeg.ExtractTimecode(line); ok {
			s.tracker.SetFraction(ffmpeg.ParseTimecode(tc) / duration)
		}
	}
}

// Cancel force-stops the running process. The running flag drops
// immediately so a new start is not blocked on the kill completing; the
// kill and reap happen in the background.
func (s *Supervisor) Cancel() error {
	s.mu.Lock()
	proc := s.proc
	done := s.done
	s.mu.Unlock()

	if proc == nil || proc.Process == nil {
		s.tracker.Append("No active process to stop.")
		return ErrNoJob
	}

	s.tracker.Append("Stopping FFmpeg process...")
	s.tracker.SetRunning(false)

	go func() {
		killErr := proc.Process.Kill()
		// Wait for run to reap the process so nothing is left a zombie.
		<-done

		s.mu.Lock()
		if s.proc == proc {
			s.proc = nil
		}
		current := s.done == done
		s.mu.Unlock()
		if !current {
			// A new job started while the old process was being reaped;
			// its sinks are not ours to touch.
			return
		}

		if killErr != nil {
			s.tracker.Appendf("Error killing process: %v", killErr)
		} else {
			s.tracker.Append("Process terminated.")
		}
		s.tracker.ForceFraction(0)
	}()
	return nil
}

// scanLine splits on \n and \r so ffmpeg's carriage-return progress updates
// come through as individual lines.
func scanLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, w := utf8.DecodeRune(data[start:])
		if r != '\n' && r != '\r' {
			break
		}
		start += w
	}

	for i := start; i < len(data); {
		r, w := utf8.DecodeRune(data[i:])
		if r == '\n' || r == '\r' {
			return i + w, data[start:i], nil
		}
		i += w
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
