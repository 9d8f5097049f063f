package core

import (
	"math"
	"time"

	"github.com/signalsfoundry/orrery/model"
)

// MeanAnomaly returns the body's mean anomaly at t in degrees, normalized
// into [0, 360).
func MeanAnomaly(t time.Time, elements model.OrbitalElements) float64 {
	return meanAnomalyAtJD(JulianDate(t), elements)
}

func meanAnomalyAtJD(jd float64, elements model.OrbitalElements) float64 {
	daysSinceEpoch := jd - elements.Epoch
	return normalizeDegrees(elements.MeanAnomalyAtEpoch + elements.MeanMotion*daysSinceEpoch)
}

// TrueAnomaly converts a mean anomaly in degrees to the true anomaly in
// radians using the default Kepler solver.
func TrueAnomaly(meanAnomalyDeg, eccentricity float64) float64 {
	return trueAnomalyFromEccentric(EccentricAnomaly(meanAnomalyDeg, eccentricity), eccentricity)
}

// atan2 keeps the quadrant that acos would lose past aphelion.
func trueAnomalyFromEccentric(E, e float64) float64 {
	return math.Atan2(math.Sqrt(1-e*e)*math.Sin(E), math.Cos(E)-e)
}

// OrbitalRadius evaluates the orbit equation r = a(1-e²)/(1+e·cos ν).
func OrbitalRadius(trueAnomalyRad, semiMajorAxis, eccentricity float64) float64 {
	return semiMajorAxis * (1 - eccentricity*eccentricity) / (1 + eccentricity*math.Cos(trueAnomalyRad))
}
