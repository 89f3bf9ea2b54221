package app

import (
	"sync"

	"mad-lbm/internal/core"
	"mad-lbm/internal/render"
	"mad-lbm/internal/sims/freesurface"
	"mad-lbm/internal/ui"
)

// Session couples a sim with the runner stepping it in the background. All
// access to the sim goes through the session lock.
type Session struct {
	mu  sync.Mutex
	sim *freesurface.Sim

	runner *core.Runner
	field  render.Field
}

// NewSession wraps sim. The runner starts paused; call Resume to start it.
func NewSession(sim *freesurface.Sim) *Session {
	s := &Session{sim: sim}
	s.runner = core.NewRunner(s.step, sim.MaxUPS())
	return s
}

func (s *Session) step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Step()
}

// Do runs fn with the sim locked.
func (s *Session) Do(fn func(sim *freesurface.Sim)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sim)
}

// Paused reports whether the runner is idle.
func (s *Session) Paused() bool { return !s.runner.Running() }

// Resume starts the runner unless the sim has failed or the rate is 0.
func (s *Session) Resume() {
	s.mu.Lock()
	failed := s.sim.Err() != nil
	s.mu.Unlock()
	if failed {
		return
	}
	s.runner.Start()
}

// Pause stops the runner after the step in flight.
func (s *Session) Pause() {
	s.runner.Stop()
}

// Toggle flips between paused and running.
func (s *Session) Toggle() {
	if s.Paused() {
		s.Resume()
		return
	}
	s.Pause()
}

// StepOnce advances a paused sim by a single step.
func (s *Session) StepOnce() error {
	if !s.Paused() {
		return nil
	}
	return s.step()
}

// Reset rebuilds the sim from seed and restores the previous run state.
func (s *Session) Reset(seed int64) {
	running := !s.Paused()
	s.runner.Stop()
	s.runner.Wait()
	s.Do(func(sim *freesurface.Sim) { sim.Reset(seed) })
	if running {
		s.runner.Start()
	}
}

// SyncRate pushes the sim's requested update rate to the runner. A rate of
// 0 pauses.
func (s *Session) SyncRate() {
	s.mu.Lock()
	want := s.sim.MaxUPS()
	s.mu.Unlock()
	if s.runner.MaxUPS() != want {
		s.runner.SetMaxUPS(want)
	}
}

// Field is the view currently selected.
func (s *Session) Field() render.Field { return s.field }

// SetField selects the view.
func (s *Session) SetField(f render.Field) { s.field = f }

// CycleField moves to the next view.
func (s *Session) CycleField() { s.field = s.field.Next() }

// Stats snapshots the readout shown on the HUD.
func (s *Session) Stats() ui.Stats {
	s.mu.Lock()
	d := s.sim.Diagnostics()
	scenario := s.sim.Scenario()
	s.mu.Unlock()
	return ui.Stats{
		Scenario: scenario,
		Field:    s.field.String(),
		Steps:    d.Steps,
		UPS:      s.runner.UPS(),
		Mass:     d.Mass,
		Drift:    d.Drift,
		Phases:   d.Phases,
		Paused:   s.Paused(),
		Err:      d.Err,
	}
}

// Close stops the runner and waits for it to exit.
func (s *Session) Close() error {
	s.runner.Stop()
	return s.runner.Wait()
}
