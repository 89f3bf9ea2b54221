// Command lbm-record runs a scenario headless, capturing an AVI of the chosen
// view and a PNG chart of the mass bookkeeping.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"mad-lbm/internal/app"
	"mad-lbm/internal/core"
	"mad-lbm/internal/render"
	"mad-lbm/internal/report"
	"mad-lbm/internal/sims/freesurface"
)

func main() {
	cfg := app.NewConfig()
	cfg.Scale = 2
	cfg.MaxUPS = 0
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 2000, "steps to simulate")
	every := flag.Int("every", 10, "steps between captured frames and samples")
	out := flag.String("out", "run.avi", "AVI output path (empty disables video)")
	chartPath := flag.String("chart", "drift.png", "PNG chart output path (empty disables the chart)")
	fps := flag.Int("fps", 30, "video frame rate")
	quality := flag.Int("quality", 85, "JPEG quality of video frames")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *steps <= 0 || *every <= 0 {
		log.Fatalf("steps and every must be positive")
	}
	field, _ := render.ParseField(cfg.Field)

	sim := freesurface.NewWithConfig(freesurface.FromMap(cfg.SimConfig()))
	size := sim.Size()
	frame := render.NewFrame(size.W, size.H)

	var video *report.AVIWriter
	if *out != "" {
		v, err := report.NewAVIWriter(*out, size.W*cfg.Scale, size.H*cfg.Scale, *fps, *quality)
		if err != nil {
			log.Fatalf("video: %v", err)
		}
		video = v
		defer video.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var series report.Series
	capture := func() error {
		d := sim.Diagnostics()
		series.Add(report.Sample{
			Step:      d.Steps,
			Mass:      d.Mass,
			Drift:     d.Drift,
			Discarded: d.Discarded,
			Created:   d.Created,
			Interface: d.Phases.Interface,
		})
		if video == nil {
			return nil
		}
		frame.Paint(sim.Lattice(), field, sim.Cells(), sim.Palette())
		return video.AddFrame(frame.Scaled(cfg.Scale))
	}
	if err := capture(); err != nil {
		log.Fatal(err)
	}

	// The runner always needs a positive rate; 0 means as fast as possible.
	ups := cfg.MaxUPS
	if ups <= 0 {
		ups = core.FastUPS
	}
	var runner *core.Runner
	runner = core.NewRunner(func() error {
		if err := sim.Step(); err != nil {
			return err
		}
		d := sim.Diagnostics()
		if int(d.Steps)%*every == 0 {
			if err := capture(); err != nil {
				return err
			}
			series.Samples[len(series.Samples)-1].UPS = runner.UPS()
			log.Printf("step %d mass %.4f drift %+.3e interface %d", d.Steps, d.Mass, d.Drift, d.Phases.Interface)
		}
		if int(d.Steps) >= *steps {
			cancel()
		}
		return nil
	}, ups)

	runErr := runner.Run(ctx)
	d := sim.Diagnostics()
	fmt.Printf("scenario=%s steps=%d mass=%.6f initial=%.6f drift=%+.3e discarded=%.3e created=%.3e ups=%.0f\n",
		sim.Scenario(), d.Steps, d.Mass, d.InitialMass, d.Drift, d.Discarded, d.Created, runner.UPS())

	if *chartPath != "" {
		err := report.WriteChartFile(*chartPath, &series, report.DefaultChartOptions())
		switch {
		case errors.Is(err, report.ErrTooFewSamples):
			log.Printf("chart skipped: %v", err)
		case err != nil:
			log.Printf("chart: %v", err)
		}
	}
	if video != nil {
		if err := video.Close(); err != nil {
			log.Printf("video: %v", err)
		}
	}
	if runErr != nil {
		log.Fatalf("run stopped: %v", runErr)
	}
}
