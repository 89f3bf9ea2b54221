//go:build ebiten

package app

import (
	"time"

	"mad-lbm/internal/render"
	"mad-lbm/internal/sims/freesurface"
	"mad-lbm/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a free-surface session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	hudWidth int
	seed     int64
}

// New constructs a Game for the provided simulation. The sim must not be used
// directly afterwards.
func New(sim *freesurface.Sim, cfg Config) *Game {
	size := sim.Size()
	session := NewSession(sim)
	if f, ok := render.ParseField(cfg.Field); ok {
		session.SetField(f)
	}
	return &Game{
		session:  session,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		seed:     cfg.Seed,
	}
}

// Start launches the background runner.
func (g *Game) Start() { g.session.Resume() }

// Close stops the background runner.
func (g *Game) Close() error { return g.session.Close() }

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.session.Reset(seed)
}

// Update handles input. Stepping happens on the runner goroutine.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		// A failed step is kept by the sim and shown on the HUD.
		_ = g.session.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.session.CycleField()
	}
	g.overlay.Update()

	stats := g.session.Stats()
	offset := g.viewWidth()
	g.session.Do(func(*freesurface.Sim) {
		g.hud.Update(offset, stats)
	})
	g.session.SyncRate()
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	field := g.session.Field()
	g.session.Do(func(sim *freesurface.Sim) {
		g.painter.Blit(screen, sim.Lattice(), field, sim.Cells(), sim.Palette(), g.scale)
		g.overlay.Draw(screen)
	})
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

func (g *Game) viewWidth() int {
	return g.session.sim.Size().W * g.scale
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
