package core

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/signalsfoundry/orrery/model"
)

// j2000Time is the calendar instant of JD 2451545.0.
var j2000Time = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

func earthElements() model.OrbitalElements {
	return model.OrbitalElements{
		SemiMajorAxis:            1.00000018,
		Eccentricity:             0.01673163,
		Inclination:              -0.00054346,
		LongitudeOfAscendingNode: -11.26064000,
		ArgumentOfPeriapsis:      102.94719383,
		MeanAnomalyAtEpoch:       100.46691572,
		MeanMotion:               0.98560028,
		Epoch:                    J2000,
	}
}

func mercuryElements() model.OrbitalElements {
	return model.OrbitalElements{
		SemiMajorAxis:            0.38709843,
		Eccentricity:             0.20563661,
		Inclination:              7.00559432,
		LongitudeOfAscendingNode: 48.33961819,
		ArgumentOfPeriapsis:      77.45771895,
		MeanAnomalyAtEpoch:       252.25166724,
		MeanMotion:               4.09233445,
		Epoch:                    J2000,
	}
}

func planet(id string, el model.OrbitalElements) model.Body {
	return model.Body{
		ID:              id,
		Kind:            model.BodyKindPlanet,
		Elements:        &el,
		DistanceFromSun: el.SemiMajorAxis,
		OrbitalPeriod:   360 / el.MeanMotion,
	}
}

func assertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.15g, want %.15g (tol %g)", name, got, want, tol)
	}
}

func assertVecClose(t *testing.T, name string, got, want Vec3, tol float64) {
	t.Helper()
	if got.DistanceTo(want) > tol {
		t.Fatalf("%s = %+v, want %+v (tol %g)", name, got, want, tol)
	}
}

// countingRecorder captures QualityRecorder events per body.
type countingRecorder struct {
	mu             sync.Mutex
	fallbacks      map[string]int
	nonConvergence map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		fallbacks:      make(map[string]int),
		nonConvergence: make(map[string]int),
	}
}

func (c *countingRecorder) RecordFallback(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallbacks[id]++
}

func (c *countingRecorder) RecordNonConvergence(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonConvergence[id]++
}

func (c *countingRecorder) counts(id string) (fallbacks, nonConvergence int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fallbacks[id], c.nonConvergence[id]
}
