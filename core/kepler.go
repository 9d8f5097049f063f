package core

import (
	"fmt"
	"math"
)

// KeplerSolver solves Kepler's equation E - e·sin(E) = M by Newton–Raphson.
//
// The iteration cap and tolerance were tuned for low-eccentricity planets.
// Orbits at or above HighEccentricityThreshold get the larger
// HighEccentricityMaxIterations budget, and from e = 0.8 the iteration is
// seeded at π instead of M so the first steps cannot overshoot.
type KeplerSolver struct {
	MaxIterations                 int
	HighEccentricityMaxIterations int
	HighEccentricityThreshold     float64
	Tolerance                     float64 // radians, on |ΔE|
}

const highEccentricitySeed = 0.8

// DefaultKeplerSolver returns the solver used by the package-level helpers.
func DefaultKeplerSolver() KeplerSolver {
	return KeplerSolver{
		MaxIterations:                 10,
		HighEccentricityMaxIterations: 50,
		HighEccentricityThreshold:     0.3,
		Tolerance:                     1e-12,
	}
}

// iterationCap picks the Newton budget for eccentricity e.
func (s KeplerSolver) iterationCap(e float64) int {
	n := s.MaxIterations
	if e >= s.HighEccentricityThreshold && s.HighEccentricityMaxIterations > n {
		n = s.HighEccentricityMaxIterations
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Solve returns the eccentric anomaly in radians for a mean anomaly in
// degrees, the number of Newton steps taken, and whether |ΔE| dropped below
// the tolerance before the cap. On non-convergence the last iterate is
// returned.
//
// Eccentricity outside [0, 1) or a non-finite mean anomaly violates the
// elliptical-orbit precondition and panics.
func (s KeplerSolver) Solve(meanAnomalyDeg, e float64) (float64, int, bool) {
	if !(e >= 0 && e < 1) {
		panic(fmt.Sprintf("kepler: eccentricity %v outside [0, 1)", e))
	}
	if math.IsNaN(meanAnomalyDeg) || math.IsInf(meanAnomalyDeg, 0) {
		panic(fmt.Sprintf("kepler: mean anomaly %v is not finite", meanAnomalyDeg))
	}

	M := DegreesToRadians(meanAnomalyDeg)
	E := M
	if e >= highEccentricitySeed {
		E = math.Pi
	}

	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultKeplerSolver().Tolerance
	}

	limit := s.iterationCap(e)
	for i := 1; i <= limit; i++ {
		delta := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= delta
		if math.Abs(delta) < tol {
			return E, i, true
		}
	}
	return E, limit, false
}

// EccentricAnomaly solves Kepler's equation with the default solver and
// returns E in radians.
func EccentricAnomaly(meanAnomalyDeg, eccentricity float64) float64 {
	E, _, _ := DefaultKeplerSolver().Solve(meanAnomalyDeg, eccentricity)
	return E
}
