package report

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func sampleSeries(n int) *Series {
	var r Series
	for i := 0; i < n; i++ {
		r.Add(Sample{
			Step:      uint64(i * 10),
			Mass:      100 + float64(i)*0.01,
			Drift:     float64(i) * 0.01,
			Discarded: float64(i) * 0.02,
			Created:   float64(i) * 0.03,
			UPS:       500,
		})
	}
	return &r
}

func TestSeriesDropsStaleSamples(t *testing.T) {
	r := sampleSeries(3)
	r.Add(Sample{Step: 20, Drift: 9})
	r.Add(Sample{Step: 5, Drift: 9})
	if r.Len() != 3 {
		t.Fatalf("stale samples kept: %d", r.Len())
	}
	r.Add(Sample{Step: 30, Drift: -0.5})
	if got := r.MaxAbsDrift(); got != 0.5 {
		t.Fatalf("MaxAbsDrift = %f", got)
	}
	steps := r.Steps()
	if steps[3] != 30 {
		t.Fatalf("steps = %v", steps)
	}
}

func TestWriteChartProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChart(&buf, sampleSeries(20), DefaultChartOptions()); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("chart output is not a PNG")
	}
}

func TestWriteChartHandlesFlatData(t *testing.T) {
	var r Series
	r.Add(Sample{Step: 1})
	r.Add(Sample{Step: 2})
	var buf bytes.Buffer
	if err := WriteChart(&buf, &r, DefaultChartOptions()); err != nil {
		t.Fatalf("flat chart failed: %v", err)
	}
}

func TestWriteChartNeedsTwoSamples(t *testing.T) {
	err := WriteChart(&bytes.Buffer{}, sampleSeries(1), DefaultChartOptions())
	if !errors.Is(err, ErrTooFewSamples) {
		t.Fatalf("expected ErrTooFewSamples, got %v", err)
	}
}

func TestWriteChartFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drift.png")
	if err := WriteChartFile(path, sampleSeries(5), DefaultChartOptions()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("chart file missing: %v", err)
	}
}

func TestAVIWriterRecordsFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.avi")
	v, err := NewAVIWriter(path, 8, 6, 25, 90)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := 0; i < 3; i++ {
		img.Set(i, i, color.RGBA{R: 200, A: 255})
		if err := v.AddFrame(img); err != nil {
			t.Fatal(err)
		}
	}
	if err := v.AddFrame(image.NewRGBA(image.Rect(0, 0, 4, 4))); err == nil {
		t.Fatal("mismatched frame accepted")
	}
	if v.Frames() != 3 {
		t.Fatalf("Frames() = %d", v.Frames())
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data[:16], []byte("AVI ")) {
		t.Fatal("output is not an AVI file")
	}
}

func TestAVIWriterRejectsBadGeometry(t *testing.T) {
	if _, err := NewAVIWriter(filepath.Join(t.TempDir(), "x.avi"), 0, 4, 25, 90); err == nil {
		t.Fatal("zero width accepted")
	}
}
