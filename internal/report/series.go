// Package report records run diagnostics and writes them out as charts and
// video.
package report

// Sample is one diagnostics reading.
type Sample struct {
	Step      uint64
	Mass      float64
	Drift     float64
	Discarded float64
	Created   float64
	UPS       float64
	Interface int
}

// Series accumulates samples in step order.
type Series struct {
	Samples []Sample
}

// Add appends s. Samples that do not advance the step counter are dropped.
func (r *Series) Add(s Sample) {
	if n := len(r.Samples); n > 0 && s.Step <= r.Samples[n-1].Step {
		return
	}
	r.Samples = append(r.Samples, s)
}

// Len reports the number of samples.
func (r *Series) Len() int { return len(r.Samples) }

// Column extracts one value per sample.
func (r *Series) Column(get func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = get(s)
	}
	return out
}

// Steps returns the step numbers as float64 for plotting.
func (r *Series) Steps() []float64 {
	return r.Column(func(s Sample) float64 { return float64(s.Step) })
}

// MaxAbsDrift reports the largest mass drift seen.
func (r *Series) MaxAbsDrift() float64 {
	worst := 0.0
	for _, s := range r.Samples {
		d := s.Drift
		if d < 0 {
			d = -d
		}
		if d > worst {
			worst = d
		}
	}
	return worst
}
