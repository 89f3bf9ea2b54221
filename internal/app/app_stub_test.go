//go:build !ebiten

package app

import (
	"errors"
	"testing"

	"mad-lbm/internal/sims/freesurface"
)

func TestHeadlessGameDrivesSession(t *testing.T) {
	cfg := NewConfig()
	sc := freesurface.DefaultConfig()
	sc.Width, sc.Height = 24, 16
	sc.Scenario = "wall"
	g := New(freesurface.NewWithConfig(sc), cfg)
	if err := g.Update(); !errors.Is(err, ErrNoGUI) {
		t.Fatalf("Update() = %v", err)
	}
	g.Start()
	waitFor(t, func() bool { return g.session.Stats().Steps > 0 })
	g.Reset(9)
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if g.seed != 9 || !g.session.Paused() {
		t.Fatalf("seed %d paused %v", g.seed, g.session.Paused())
	}
}
