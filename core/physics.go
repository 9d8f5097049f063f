package core

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/orrery/model"
)

// OrbitalPeriod estimates a heliocentric orbital period in days from the
// semi-major axis in AU using Kepler's third law (T² = a³, T in years).
func OrbitalPeriod(semiMajorAxisAU float64) float64 {
	return math.Sqrt(math.Pow(semiMajorAxisAU, 3)) * DaysPerJulianYear
}

// OrbitalPhase returns the fraction of the current orbit completed at t,
// in [0, 1). The star has phase 0.
func OrbitalPhase(body model.Body, t time.Time) float64 {
	if body.Elements == nil {
		return 0
	}
	return MeanAnomaly(t, *body.Elements) / 360
}

// PredictPosition returns the body's scaled position futureDays after
// current. Negative values look into the past.
func (p *Propagator) PredictPosition(body model.Body, current time.Time, futureDays, scale float64) Vec3 {
	return p.CalculatePlanetPosition(body, AddDays(current, futureDays), scale)
}

// AngularSize returns the apparent diameter in radians of a sphere of the
// given radius seen from distance (same units).
func AngularSize(realRadius, distance float64) float64 {
	return 2 * math.Atan(realRadius/distance)
}

// Illumination is the inverse-square irradiance relative to 1 AU, floored
// at 0.1 so outer planets stay visible.
func Illumination(distanceFromSun float64) float64 {
	const earthDistance = 1.0
	return math.Max(0.1, math.Pow(earthDistance/distanceFromSun, 2))
}

// RotationAngle returns the body's spin angle about its own axis at t, in
// radians within [0, 2π). Bodies using the GMST rotation model follow
// Greenwich mean sidereal time; the rest turn uniformly from J2000 with
// their rotation period (hours, negative for retrograde). A zero period
// means no spin.
func RotationAngle(body model.Body, t time.Time) float64 {
	jd := JulianDate(t)
	if body.RotationModel == model.RotationModelGMST {
		return normalizeRadians(satellite.ThetaG_JD(jd))
	}
	if body.RotationPeriod == 0 || math.IsNaN(body.RotationPeriod) {
		return 0
	}
	hours := (jd - J2000) * hoursInDay
	return normalizeRadians(twoPi * hours / body.RotationPeriod)
}

// AddDays moves t by a possibly fractional number of days. Whole days are
// applied as calendar days in UTC so long spans do not overflow
// time.Duration.
func AddDays(t time.Time, days float64) time.Time {
	whole := math.Trunc(days)
	frac := days - whole
	return t.UTC().
		AddDate(0, 0, int(whole)).
		Add(time.Duration(frac * secPerDay * float64(time.Second)))
}
