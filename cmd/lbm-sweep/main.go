// Command lbm-sweep runs every scenario across a grid of viscosity and
// gravity values and ranks the runs by stability and mass drift.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mad-lbm/internal/scenario"
	"mad-lbm/internal/sims/freesurface"
)

type trial struct {
	scenario  string
	viscosity float64
	gravity   float64
}

func (t trial) String() string {
	return fmt.Sprintf("%s visc=%.3f grav=%.4f", t.scenario, t.viscosity, t.gravity)
}

func main() {
	steps := flag.Int("steps", 500, "steps to simulate per trial")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent trials")
	width := flag.Int("w", 96, "lattice width")
	height := flag.Int("h", 64, "lattice height")
	scenarios := flag.String("scenarios", strings.Join(scenario.Names(), ","), "comma separated scenarios")
	viscosities := flag.String("viscosity", "0.005,0.01,0.02,0.05,0.1", "comma separated viscosities")
	gravities := flag.String("gravity", "0,0.0005,0.001,0.002", "comma separated gravities")
	timeout := flag.Duration("timeout", 0, "abort the sweep after this long (0 disables)")
	flag.Parse()

	names := splitList(*scenarios)
	for _, name := range names {
		if _, ok := scenario.Lookup(name); !ok {
			log.Fatalf("unknown scenario %q", name)
		}
	}
	viscList, err := parseFloats(*viscosities)
	if err != nil {
		log.Fatalf("viscosity: %v", err)
	}
	gravList, err := parseFloats(*gravities)
	if err != nil {
		log.Fatalf("gravity: %v", err)
	}

	var trials []trial
	for _, name := range names {
		for _, v := range viscList {
			for _, g := range gravList {
				trials = append(trials, trial{scenario: name, viscosity: v, gravity: g})
			}
		}
	}
	fmt.Printf("Sweeping %d trials (%d workers, %d steps, %dx%d)\n", len(trials), *workers, *steps, *width, *height)

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	results := make([]freesurface.TrialResult, len(trials))
	done := make([]bool, len(trials))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*workers, 1))
	start := time.Now()
	for i, tr := range trials {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg := freesurface.DefaultConfig()
			cfg.Width = *width
			cfg.Height = *height
			cfg.Scenario = tr.scenario
			cfg.Params.Viscosity = tr.viscosity
			cfg.Params.Gravity = tr.gravity
			results[i] = freesurface.RunTrial(cfg, *steps)
			done[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("sweep interrupted: %v", err)
	}
	elapsed := time.Since(start)

	order := make([]int, 0, len(trials))
	for i := range trials {
		if done[i] {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		ra, rb := results[order[a]], results[order[b]]
		if ra.Stable() != rb.Stable() {
			return ra.Stable()
		}
		return ra.MaxAbsDrift < rb.MaxAbsDrift
	})

	unstable := 0
	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for rank, i := range order {
		res := results[i]
		status := "stable"
		if !res.Stable() {
			unstable++
			status = fmt.Sprintf("UNSTABLE at step %d", res.StepsRun)
		}
		fmt.Printf("%3d) %-44s drift=%.3e speed=%.3f %s\n", rank+1, trials[i], res.MaxAbsDrift, res.MaxSpeed, status)
	}
	fmt.Printf("\n%d/%d trials stable\n", len(order)-unstable, len(order))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
