package core

import "github.com/signalsfoundry/orrery/model"

// DefaultOrbitSegments is the sampling density used when callers pass a
// non-positive segment count.
const DefaultOrbitSegments = 128

// GenerateOrbitPath samples the full ellipse at evenly spaced mean anomalies
// and returns segments+1 scaled points; the last point closes the loop onto
// the first. The result depends only on the elements, never on time.
func GenerateOrbitPath(elements model.OrbitalElements, segments int, scale float64) []Vec3 {
	return defaultPropagator.GenerateOrbitPath(elements, segments, scale)
}

// GenerateOrbitPath samples the orbit with p's solver settings.
func (p *Propagator) GenerateOrbitPath(elements model.OrbitalElements, segments int, scale float64) []Vec3 {
	if segments < 1 {
		segments = DefaultOrbitSegments
	}
	points := make([]Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		M := normalizeDegrees(360 * float64(i) / float64(segments))
		E, _, _ := p.solver.Solve(M, elements.Eccentricity)
		nu := trueAnomalyFromEccentric(E, elements.Eccentricity)
		r := OrbitalRadius(nu, elements.SemiMajorAxis, elements.Eccentricity)
		points = append(points, OrbitalToHeliocentric(r, nu, elements).Scale(scale))
	}
	return points
}
