package core

import (
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/orrery/model"
)

func TestMeanAnomaly_EarthAtEpochIsExact(t *testing.T) {
	el := earthElements()
	if got := MeanAnomaly(j2000Time, el); got != 100.46691572 {
		t.Fatalf("MeanAnomaly(earth, J2000) = %.12f, want 100.46691572", got)
	}
}

func TestMeanAnomaly_AlwaysInRange(t *testing.T) {
	bodies := []model.OrbitalElements{earthElements(), mercuryElements()}
	retro := mercuryElements()
	retro.MeanMotion = -13.7
	retro.MeanAnomalyAtEpoch = -725
	bodies = append(bodies, retro)

	start := time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, el := range bodies {
		for d := 0; d < 400*365; d += 97 {
			ts := start.AddDate(0, 0, d).Add(time.Duration(d%24) * time.Hour)
			M := MeanAnomaly(ts, el)
			if M < 0 || M >= 360 || math.IsNaN(M) {
				t.Fatalf("MeanAnomaly(%v) = %v outside [0, 360)", ts, M)
			}
		}
	}
}

func TestMeanAnomaly_AdvancesWithMeanMotion(t *testing.T) {
	el := earthElements()
	later := j2000Time.AddDate(0, 0, 10)
	want := el.MeanAnomalyAtEpoch + 10*el.MeanMotion
	assertClose(t, "MeanAnomaly(+10d)", MeanAnomaly(later, el), want, 1e-9)
}

func TestTrueAnomaly_CircularMatchesMean(t *testing.T) {
	for _, M := range []float64{10, 90, 170} {
		assertClose(t, "nu", TrueAnomaly(M, 0), DegreesToRadians(M), 1e-12)
	}
}

func TestTrueAnomaly_KeepsQuadrant(t *testing.T) {
	e := 0.2056
	if nu := TrueAnomaly(90, e); nu <= DegreesToRadians(90) || nu >= math.Pi {
		t.Fatalf("nu(M=90) = %v, want ahead of M but before aphelion", nu)
	}
	if nu := TrueAnomaly(270, e); nu >= 0 || nu <= -math.Pi {
		t.Fatalf("nu(M=270) = %v, want in (-pi, 0)", nu)
	}
	assertClose(t, "nu(aphelion)", math.Abs(TrueAnomaly(180, e)), math.Pi, 1e-12)
}

func TestOrbitalRadius_CircularIsConstant(t *testing.T) {
	for nu := -math.Pi; nu <= math.Pi; nu += 0.1 {
		if r := OrbitalRadius(nu, 5.2, 0); r != 5.2 {
			t.Fatalf("OrbitalRadius(nu=%v, e=0) = %v, want 5.2", nu, r)
		}
	}
}

func TestOrbitalRadius_Apsides(t *testing.T) {
	a, e := 1.52371243, 0.09336511
	assertClose(t, "perihelion", OrbitalRadius(0, a, e), a*(1-e), 1e-12)
	assertClose(t, "aphelion", OrbitalRadius(math.Pi, a, e), a*(1+e), 1e-12)
}
