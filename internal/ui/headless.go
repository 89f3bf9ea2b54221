//go:build !ebiten

package ui

import "mad-lbm/internal/core"

// HUD and Overlay keep the viewer's call sites compiling without ebiten. Both
// constructors return nil and every method tolerates a nil receiver.
type (
	HUD     struct{}
	Overlay struct{}
)

func NewHUD(core.Sim, int) *HUD { return nil }

func (h *HUD) Update(int, Stats) {}

func (h *HUD) Draw(any, int, int) {}

func NewOverlay(core.Sim, int) *Overlay { return nil }

func (o *Overlay) Update() {}

func (o *Overlay) Draw(any) {}
