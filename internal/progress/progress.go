// Package progress holds the shared sinks a running job writes and the
// presentation layer reads: the append-only job log, the completion
// fraction, and the running flag. Each field is guarded independently; only
// the supervisor's tasks write, the presentation layer only reads.
package progress

import (
	"fmt"
	"strings"
	"sync"
)

// Notifier is invoked after every fraction update so a presentation layer
// can request a repaint. The updated state is visible before the call.
type Notifier func()

// Tracker is created once at application start and lives for the life of
// the process.
type Tracker struct {
	notifyMu sync.Mutex
	notify   Notifier

	logMu sync.Mutex
	log   strings.Builder

	fracMu   sync.Mutex
	fraction float64

	runMu   sync.Mutex
	running bool
}

// NewTracker returns a Tracker with no notifier attached.
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetNotifier attaches the repaint hook. The presentation layer attaches it
// once its event loop exists; nil detaches.
func (t *Tracker) SetNotifier(n Notifier) {
	t.notifyMu.Lock()
	t.notify = n
	t.notifyMu.Unlock()
}

// StartJob resets the sinks for a fresh job: log cleared, fraction zeroed,
// running set.
func (t *Tracker) StartJob() {
	t.logMu.Lock()
	t.log.Reset()
	t.logMu.Unlock()

	t.fracMu.Lock()
	t.fraction = 0
	t.fracMu.Unlock()

	t.SetRunning(true)
}

// Append adds one line to the job log.
func (t *Tracker) Append(line string) {
	t.logMu.Lock()
	t.log.WriteString(line)
	t.log.WriteByte('\n')
	t.logMu.Unlock()
}

// Appendf adds one formatted line to the job log.
func (t *Tracker) Appendf(format string, args ...interface{}) {
	t.Append(fmt.Sprintf(format, args...))
}

// Log returns the accumulated job log.
func (t *Tracker) Log() string {
	t.logMu.Lock()
	defer t.logMu.Unlock()
	return t.log.String()
}

// SetFraction records a completion fraction, clamped to [0,1]. Within a job
// the fraction never decreases: stale or out-of-order updates are dropped.
// The notifier fires after the store.
func (t *Tracker) SetFraction(f float64) {
	f = clamp01(f)
	t.fracMu.Lock()
	if f < t.fraction {
		t.fracMu.Unlock()
		return
	}
	t.fraction = f
	t.fracMu.Unlock()
	t.repaint()
}

// ForceFraction sets the fraction unconditionally. Terminal outcomes force
// 1.0; cancellation resets to 0.
func (t *Tracker) ForceFraction(f float64) {
	t.fracMu.Lock()
	t.fraction = clamp01(f)
	t.fracMu.Unlock()
	t.repaint()
}

// Fraction returns the current completion fraction in [0,1].
func (t *Tracker) Fraction() float64 {
	t.fracMu.Lock()
	defer t.fracMu.Unlock()
	return t.fraction
}

// SetRunning flips the running flag.
func (t *Tracker) SetRunning(v bool) {
	t.runMu.Lock()
	t.running = v
	t.runMu.Unlock()
}

// Running reports whether a job is active.
func (t *Tracker) Running() bool {
	t.runMu.Lock()
	defer t.runMu.Unlock()
	return t.running
}

func (t *Tracker) repaint() {
	t.notifyMu.Lock()
	n := t.notify
	t.notifyMu.Unlock()
	if n != nil {
		n()
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
