// Package probe asks ffprobe for the metadata the progress computation and
// frame-rate controls need: container duration and the first video stream's
// native frame rate. Failures are never fatal; every path falls back to a
// usable value.
package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ffstudio/internal/util"
)

const (
	// FallbackDuration marks an unknown duration. Keeping it at 1.0 also
	// keeps the progress division well-defined.
	FallbackDuration = 1.0
	// FallbackFPS is assumed when the frame rate cannot be determined.
	FallbackFPS = 30.0
	// MaxSeedFPS caps the initial user-adjustable frame rate.
	MaxSeedFPS = 60.0
)

// Info is the probe result after fallbacks have been applied.
type Info struct {
	DurationSec float64 // >= 1.0; exactly 1.0 when unknown
	FrameRate   float64 // working rate seeded to min(probed, 60)
	OriginalFPS float64 // unclamped probed rate; upper bound for the user control
	Notes       []string
}

// Prober runs ffprobe through an injectable command runner.
type Prober struct {
	ffprobePath string
	runner      util.CmdRunner
}

// New returns a Prober for the given ffprobe binary. A nil runner gets the
// default os/exec-backed one.
func New(ffprobePath string, runner util.CmdRunner) *Prober {
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	return &Prober{ffprobePath: ffprobePath, runner: runner}
}

// Probe inspects path with two ffprobe invocations, one for the container
// duration and one for the first video stream's r_frame_rate. It always
// returns a usable Info; failures are reported as notes.
func (p *Prober) Probe(ctx context.Context, path string) Info {
	info := Info{
		DurationSec: FallbackDuration,
		FrameRate:   FallbackFPS,
		OriginalFPS: FallbackFPS,
	}

	if d, err := p.Duration(ctx, path); err == nil {
		if d < FallbackDuration {
			d = FallbackDuration
		}
		info.DurationSec = d
		info.Notes = append(info.Notes, fmt.Sprintf("File duration: %.2f seconds", d))
	} else {
		info.Notes = append(info.Notes, "Could not determine file duration, using default.")
	}

	if fps, err := p.FrameRate(ctx, path); err == nil {
		info.OriginalFPS = fps
		if fps > MaxSeedFPS {
			info.FrameRate = MaxSeedFPS
		} else {
			info.FrameRate = fps
		}
		info.Notes = append(info.Notes, fmt.Sprintf("Original frame rate: %.3f fps", fps))
	} else {
		info.Notes = append(info.Notes, fmt.Sprintf("Could not determine original frame rate, using %.0f fps.", FallbackFPS))
	}

	return info
}

// Duration returns the container duration in seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	out, err := p.run(ctx, []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	})
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return d, nil
}

// FrameRate returns the first video stream's frame rate in fps. ffprobe
// reports r_frame_rate as a rational ("30000/1001") or occasionally as a
// plain number; both forms are accepted.
func (p *Prober) FrameRate(ctx context.Context, path string) (float64, error) {
	out, err := p.run(ctx, []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	})
	if err != nil {
		return 0, fmt.Errorf("probe frame rate: %w", err)
	}
	return ParseRate(strings.TrimSpace(out))
}

// ParseRate parses an "N/D" rational or a plain float frame rate.
func ParseRate(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, nerr := strconv.ParseFloat(num, 64)
		d, derr := strconv.ParseFloat(den, 64)
		if nerr != nil || derr != nil || d <= 0 {
			return 0, fmt.Errorf("parse frame rate %q", s)
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", s, err)
	}
	return v, nil
}

func (p *Prober) run(ctx context.Context, args []string) (string, error) {
	res, err := p.runner.Run(ctx, util.CmdSpec{
		Path:          p.ffprobePath,
		Args:          args,
		CaptureStdout: true,
	})
	if err != nil {
		return "", err
	}
	return string(res.Stdout), nil
}
