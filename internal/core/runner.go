package core

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	// FastUPS is the update rate at or above which the runner no longer sleeps
	// between steps.
	FastUPS = 200

	runnerWindow = 100
)

// ErrRunnerBusy is returned by Run when the runner is already looping.
var ErrRunnerBusy = errors.New("core: runner already running")

// Runner drives a step callback repeatedly on a single goroutine, optionally
// capped to a maximum number of updates per second, and keeps a rolling
// window of step intervals to report the achieved rate.
type Runner struct {
	step func() error

	mu      sync.Mutex
	maxUPS  int
	running bool
	wake    chan struct{}
	done    chan struct{}
	err     error
	last    time.Time
	steps   uint64
	window  intervalWindow
}

// NewRunner wraps step. A maxUPS of 0 keeps the runner paused.
func NewRunner(step func() error, maxUPS int) *Runner {
	return &Runner{step: step, maxUPS: maxUPS}
}

// Start begins looping in the background. It is a no-op when the runner is
// already running or maxUPS is 0.
func (r *Runner) Start() {
	wake, done, prev, err := r.begin()
	if err != nil {
		return
	}
	go func() {
		if prev != nil {
			<-prev
		}
		r.loop(context.Background(), wake, done)
	}()
}

// Run loops on the calling goroutine until Stop is called, ctx is cancelled or
// a step fails. It returns the step failure, ErrRunnerBusy if a loop is
// already active, and nil otherwise.
func (r *Runner) Run(ctx context.Context) error {
	wake, done, prev, err := r.begin()
	switch {
	case errors.Is(err, ErrRunnerBusy):
		return err
	case err != nil:
		return nil
	}
	if prev != nil {
		<-prev
	}
	r.loop(ctx, wake, done)
	return r.Err()
}

// errPaused reports a zero update cap to begin's callers.
var errPaused = errors.New("core: runner rate is 0")

// begin claims the runner for a new loop under a single lock.
func (r *Runner) begin() (wake, done, prev chan struct{}, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil, nil, nil, ErrRunnerBusy
	}
	if r.maxUPS <= 0 {
		return nil, nil, nil, errPaused
	}
	prev = r.done
	r.running = true
	r.err = nil
	r.wake = make(chan struct{})
	r.done = make(chan struct{})
	r.last = time.Now()
	return r.wake, r.done, prev, nil
}

// Stop asks the loop to finish. A step already executing completes; no further
// step starts.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false
	close(r.wake)
}

// Wait blocks until the current loop has exited and returns the step error
// that stopped it, if any.
func (r *Runner) Wait() error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
	return r.Err()
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Err returns the error that halted the last loop.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Steps returns the number of completed steps.
func (r *Runner) Steps() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps
}

// MaxUPS returns the configured update cap.
func (r *Runner) MaxUPS() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxUPS
}

// SetMaxUPS changes the update cap. It takes effect after the current step. A
// value of 0 stops the runner.
func (r *Runner) SetMaxUPS(ups int) {
	if ups < 0 {
		ups = 0
	}
	r.mu.Lock()
	r.maxUPS = ups
	r.mu.Unlock()
	if ups == 0 {
		r.Stop()
	}
}

// UPS reports the achieved updates per second over the rolling window.
func (r *Runner) UPS() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	mean := r.window.mean()
	if mean <= 0 {
		return 0
	}
	return float64(time.Second) / float64(mean)
}

func (r *Runner) loop(ctx context.Context, wake <-chan struct{}, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-wake:
			return
		case <-ctx.Done():
			r.halt(wake, nil)
			return
		default:
		}

		if err := r.step(); err != nil {
			r.halt(wake, err)
			return
		}

		delay := r.record(time.Now())
		if delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-wake:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			r.halt(wake, nil)
			return
		}
	}
}

// halt ends the loop owning wake. A loop superseded by a restart leaves the
// newer loop alone.
func (r *Runner) halt(wake <-chan struct{}, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.wake != wake {
		return
	}
	r.err = err
	if r.running {
		r.running = false
		close(r.wake)
	}
}

// record stores the interval since the previous step and returns how long to
// wait before the next one.
func (r *Runner) record(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.window.push(now.Sub(r.last))
	r.last = now
	r.steps++
	if r.maxUPS <= 0 || r.maxUPS >= FastUPS {
		return 0
	}
	return time.Second / time.Duration(r.maxUPS)
}

// intervalWindow is a fixed-size ring of the most recent step intervals.
type intervalWindow struct {
	buf  [runnerWindow]time.Duration
	n    int
	head int
	sum  time.Duration
}

func (w *intervalWindow) push(d time.Duration) {
	if w.n == len(w.buf) {
		w.sum -= w.buf[w.head]
	} else {
		w.n++
	}
	w.buf[w.head] = d
	w.sum += d
	w.head = (w.head + 1) % len(w.buf)
}

func (w *intervalWindow) size() int { return w.n }

func (w *intervalWindow) mean() time.Duration {
	if w.n == 0 {
		return 0
	}
	return w.sum / time.Duration(w.n)
}
