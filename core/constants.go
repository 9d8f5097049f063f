package core

import "math"

// Astronomical constants shared by the engine and its callers.
const (
	AUKm          = 149597870.7 // astronomical unit, km
	EarthRadiusKm = 6371.0
	SolarRadiusKm = 695700.0
	JulianCentury = 36525.0   // days
	SiderealYear  = 365.25636 // days
	SpeedOfLight  = 299792458 // m/s

	// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 TT).
	J2000 = 2451545.0

	// DaysPerJulianYear converts Kepler's-third-law periods from years to days.
	DaysPerJulianYear = 365.25
)

const (
	twoPi      = 2 * math.Pi
	degToRad   = math.Pi / 180
	radToDeg   = 180 / math.Pi
	secPerDay  = 86400.0
	hoursInDay = 24.0
)

// DegreesToRadians converts an angle from degrees to radians.
func DegreesToRadians(deg float64) float64 { return deg * degToRad }

// RadiansToDegrees converts an angle from radians to degrees.
func RadiansToDegrees(rad float64) float64 { return rad * radToDeg }

// normalizeDegrees wraps into [0, 360). Values already in range come back
// bit-for-bit unchanged.
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func normalizeRadians(rad float64) float64 {
	rad = math.Mod(rad, twoPi)
	if rad < 0 {
		rad += twoPi
	}
	return rad
}
