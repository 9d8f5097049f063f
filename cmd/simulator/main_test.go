package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/signalsfoundry/orrery/internal/logging"
)

// TestIntegration_DefaultSolarSystem runs a short fixed-step simulation of
// the default catalog end to end.
func TestIntegration_DefaultSolarSystem(t *testing.T) {
	reg := prometheus.NewRegistry()
	start := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

	var out bytes.Buffer
	res, err := run(context.Background(), options{
		Duration:    200 * time.Millisecond,
		FrameRate:   100,
		ReportEvery: 5,
		Start:       start,
		Registerer:  reg,
		Logger:      logging.Noop(),
	}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Frames == 0 {
		t.Fatalf("expected at least one frame, got 0")
	}
	if !res.EndTime.After(start) {
		t.Fatalf("simulated time did not advance: end=%v", res.EndTime)
	}
	// Fixed-step at the default 365 days per second, one frame is 3.65 days.
	if days := res.EndTime.Sub(start).Hours() / 24; days < 3.65*float64(res.Frames)-1e-6 {
		t.Fatalf("advanced %v days over %d frames", days, res.Frames)
	}

	text := out.String()
	for _, want := range []string{"frame 1", "sun", "earth", "neptune"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}

	frames, err := testutil.GatherAndCount(reg, "orrery_frames_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if frames != 1 {
		t.Fatalf("orrery_frames_total series = %d, want 1", frames)
	}
}

func TestIntegration_ConfigAndCatalogFiles(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "bodies.yaml")
	catalogDoc := `
bodies:
  - id: sun
    kind: star
  - id: rock
    kind: planet
    distanceFromSun: 1
    orbitalElements:
      semiMajorAxis: 1
      eccentricity: 0
      meanMotion: 1
      epoch: 2451545.0
`
	if err := os.WriteFile(catalogPath, []byte(catalogDoc), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	configPath := filepath.Join(dir, "orrery.json")
	if err := os.WriteFile(configPath, []byte(`{"scale": {"distance": 2}, "time": {"scale": 1}}`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	res, err := run(context.Background(), options{
		ConfigPath:  configPath,
		CatalogPath: catalogPath,
		Duration:    50 * time.Millisecond,
		FrameRate:   100,
		Start:       time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC),
		Registerer:  prometheus.NewRegistry(),
		Logger:      logging.Noop(),
	}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "rock") || strings.Contains(out.String(), "earth") {
		t.Fatalf("expected only catalog bodies in output:\n%s", out.String())
	}
	// Distance is reported in AU whatever the distance scale.
	if !strings.Contains(out.String(), "r= 1.0000 AU") {
		t.Fatalf("expected unit radius in output:\n%s", out.String())
	}
	if res.EndTime.Sub(res.StartTime) > 24*time.Hour {
		t.Fatalf("time scale 1 should advance well under a day in 50ms, got %v", res.EndTime.Sub(res.StartTime))
	}
}

func TestRun_InvalidInputs(t *testing.T) {
	ctx := context.Background()

	if _, err := run(ctx, options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"), Logger: logging.Noop()}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
	if _, err := run(ctx, options{CatalogPath: filepath.Join(t.TempDir(), "missing.json"), Registerer: prometheus.NewRegistry(), Logger: logging.Noop()}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for missing catalog file")
	}
	if _, err := run(ctx, options{Mode: "warp", Logger: logging.Noop()}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
