package core

import (
	"math"

	"github.com/signalsfoundry/orrery/model"
)

// OrbitalToHeliocentric rotates a point given in the orbital plane (radius
// and true anomaly) into the heliocentric ecliptic frame. The argument of
// periapsis, inclination and longitude of the ascending node are applied as
// one closed-form rotation.
//
// Orbits with zero inclination lie in the x/y plane; z carries the
// out-of-plane component. Any consumer with a different "up" axis must remap
// every vector it receives from this package the same way.
func OrbitalToHeliocentric(radius, trueAnomalyRad float64, elements model.OrbitalElements) Vec3 {
	sinI, cosI := math.Sincos(DegreesToRadians(elements.Inclination))
	sinO, cosO := math.Sincos(DegreesToRadians(elements.LongitudeOfAscendingNode))
	sinW, cosW := math.Sincos(DegreesToRadians(elements.ArgumentOfPeriapsis))

	xOrb := radius * math.Cos(trueAnomalyRad)
	yOrb := radius * math.Sin(trueAnomalyRad)

	return Vec3{
		X: xOrb*(cosO*cosW-sinO*sinW*cosI) - yOrb*(cosO*sinW+sinO*cosW*cosI),
		Y: xOrb*(sinO*cosW+cosO*sinW*cosI) - yOrb*(sinO*sinW-cosO*cosW*cosI),
		Z: xOrb*sinW*sinI + yOrb*cosW*sinI,
	}
}
