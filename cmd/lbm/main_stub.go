//go:build !ebiten

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mad-lbm/internal/app"
	"mad-lbm/internal/scenario"
)

// Without ebiten the viewer only validates its flags and points at the
// headless tools.
func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "mad-lbm: %s on %dx%d needs a window; rebuild with -tags ebiten.\n", cfg.Scenario, cfg.Width, cfg.Height)
	fmt.Fprintln(os.Stderr, "Headless runs: ./cmd/lbm-record (video + chart), ./cmd/lbm-sweep (parameter grid).")
	for _, name := range scenario.Names() {
		if s, ok := scenario.Lookup(name); ok {
			fmt.Fprintf(os.Stderr, "  %-16s %s\n", name, s.Description)
		}
	}
	os.Exit(2)
}
