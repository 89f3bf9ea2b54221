//go:build !ebiten

package app

import (
	"errors"

	"mad-lbm/internal/sims/freesurface"
)

// ErrNoGUI is returned by the headless Game in place of a frame loop.
var ErrNoGUI = errors.New("app: viewer built without the ebiten tag")

// Game keeps the session so headless builds can still drive the sim through
// the same Start/Reset/Close lifecycle as the viewer.
type Game struct {
	session *Session
	seed    int64
}

// New wraps sim in a session. There is no window; Update reports ErrNoGUI.
func New(sim *freesurface.Sim, cfg Config) *Game {
	return &Game{session: NewSession(sim), seed: cfg.Seed}
}

// Start resumes the session runner.
func (g *Game) Start() { g.session.Resume() }

// Close stops the runner and reports the error that halted it.
func (g *Game) Close() error { return g.session.Close() }

// Reset rebuilds the sim from seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.session.Reset(seed)
}

// Update reports ErrNoGUI.
func (g *Game) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
