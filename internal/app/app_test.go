package app

import (
	"errors"
	"flag"
	"math"
	"testing"
	"time"

	"mad-lbm/internal/render"
	"mad-lbm/internal/sims/freesurface"
	"mad-lbm/pkg/lbm"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("lbm", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{
		"-scenario", "droplet",
		"-w", "64", "-h", "48",
		"-gravity", "0.002",
		"-max-ups", "30",
		"-set", "beta=0.01",
		"-set", "gravity=0.003",
	})
	if err != nil {
		t.Fatal(err)
	}
	sc := freesurface.FromMap(cfg.SimConfig())
	if sc.Scenario != "droplet" || sc.Width != 64 || sc.Height != 48 {
		t.Fatalf("unexpected sim config %+v", sc)
	}
	if sc.Params.Gravity != 0.003 {
		t.Fatalf("-set must win over -gravity, got %g", sc.Params.Gravity)
	}
	if sc.Params.Beta != 0.01 || sc.Params.MaxUPS != 30 {
		t.Fatalf("unexpected params %+v", sc.Params)
	}
}

func TestDefaultFlagsMatchSimDefaults(t *testing.T) {
	if got, want := freesurface.FromMap(NewConfig().SimConfig()), freesurface.DefaultConfig(); got != want {
		t.Fatalf("flag defaults %+v differ from sim defaults %+v", got, want)
	}
}

func TestKeyValuesRejectsMalformed(t *testing.T) {
	kv := KeyValues{}
	if err := kv.Set("novalue"); err == nil {
		t.Fatal("missing '=' accepted")
	}
	if err := kv.Set("=3"); err == nil {
		t.Fatal("empty key accepted")
	}
	if err := kv.Set(" inflow = 0.05 "); err != nil || kv["inflow"] != "0.05" {
		t.Fatalf("kv = %v, err %v", kv, err)
	}
	kv["beta"] = "1"
	if got := kv.String(); got != "beta=1,inflow=0.05" {
		t.Fatalf("String() = %q", got)
	}
}

func newTestSession(t *testing.T, scenario string, ups int) *Session {
	t.Helper()
	cfg := freesurface.DefaultConfig()
	cfg.Width, cfg.Height = 32, 24
	cfg.Scenario = scenario
	cfg.Params.MaxUPS = ups
	s := NewSession(freesurface.NewWithConfig(cfg))
	t.Cleanup(func() { s.Close() })
	return s
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionPauseAndStep(t *testing.T) {
	s := newTestSession(t, "resting-water", 1000)
	if !s.Paused() {
		t.Fatal("session must start paused")
	}
	s.Toggle()
	waitFor(t, func() bool { return s.Stats().Steps >= 5 })
	s.Toggle()
	s.runner.Wait()
	if !s.Paused() {
		t.Fatal("toggle did not pause")
	}
	before := s.Stats().Steps
	if err := s.StepOnce(); err != nil {
		t.Fatal(err)
	}
	if got := s.Stats().Steps; got != before+1 {
		t.Fatalf("StepOnce advanced %d -> %d", before, got)
	}
}

func TestSessionResetKeepsRunState(t *testing.T) {
	s := newTestSession(t, "dam-break", 1000)
	s.Resume()
	waitFor(t, func() bool { return s.Stats().Steps >= 3 })
	s.Reset(0)
	if s.Paused() {
		t.Fatal("reset paused a running session")
	}
	s.Pause()
	s.runner.Wait()
	s.Reset(0)
	if st := s.Stats(); !st.Paused || st.Steps != 0 {
		t.Fatalf("after paused reset: %+v", st)
	}
}

func TestSessionSurfacesInstability(t *testing.T) {
	s := newTestSession(t, "simple-barrier", 1000)
	s.Do(func(sim *freesurface.Sim) {
		l := sim.Lattice()
		l.SetEquilibrium(l.Width()/2, l.Height()/2, 0, 0, math.NaN(), 1)
	})
	s.Resume()
	err := s.runner.Wait()
	if !errors.Is(err, lbm.ErrUnstable) {
		t.Fatalf("expected instability, got %v", err)
	}
	st := s.Stats()
	if !st.Paused || st.Err == nil {
		t.Fatalf("stats after instability: %+v", st)
	}
	s.Resume()
	if !s.Paused() {
		t.Fatal("failed sim must not resume")
	}
}

func TestSessionSyncRate(t *testing.T) {
	s := newTestSession(t, "wall", 1000)
	s.Do(func(sim *freesurface.Sim) { sim.SetIntParameter("max_ups", 40) })
	s.SyncRate()
	if s.runner.MaxUPS() != 40 {
		t.Fatalf("runner rate = %d", s.runner.MaxUPS())
	}
}

func TestSessionCycleField(t *testing.T) {
	s := newTestSession(t, "wall", 0)
	s.SetField(render.FieldCurl)
	s.CycleField()
	if s.Field() != render.FieldFill {
		t.Fatalf("field = %v", s.Field())
	}
	if s.Stats().Field != "fill" {
		t.Fatal("stats do not report the view")
	}
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	cases := []func(c *Config){
		func(c *Config) { c.Scenario = "tsunami" },
		func(c *Config) { c.Set = KeyValues{"scenario": "tsunami"} },
		func(c *Config) { c.Width = 2 },
		func(c *Config) { c.Scale = 0 },
		func(c *Config) { c.Field = "pressure" },
	}
	for i, mutate := range cases {
		c := NewConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d accepted: %+v", i, c)
		}
	}
}
