//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mad-lbm/internal/app"
	"mad-lbm/internal/sims/freesurface"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	sim := freesurface.NewWithConfig(freesurface.FromMap(cfg.SimConfig()))
	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("mad-lbm: " + sim.Scenario())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+max(cfg.HUDWidth, 0), size.H*cfg.Scale)

	game.Start()
	defer game.Close()
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
