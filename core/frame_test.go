package core

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/signalsfoundry/orrery/model"
)

func rotZ(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(3, 3, []float64{c, -s, 0, s, c, 0, 0, 0, 1})
}

func rotX(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, -s, 0, s, c})
}

// matrixTransform composes Rz(Ω)·Rx(i)·Rz(w) explicitly as an independent
// reference for the closed-form rotation.
func matrixTransform(r, nu float64, el model.OrbitalElements) Vec3 {
	var tmp, rot mat.Dense
	tmp.Mul(rotZ(DegreesToRadians(el.LongitudeOfAscendingNode)), rotX(DegreesToRadians(el.Inclination)))
	rot.Mul(&tmp, rotZ(DegreesToRadians(el.ArgumentOfPeriapsis)))

	in := mat.NewVecDense(3, []float64{r * math.Cos(nu), r * math.Sin(nu), 0})
	var out mat.VecDense
	out.MulVec(&rot, in)
	return Vec3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func TestOrbitalToHeliocentric_MatchesMatrixComposition(t *testing.T) {
	sets := []model.OrbitalElements{earthElements(), mercuryElements(), {
		SemiMajorAxis:            30.06952752,
		Eccentricity:             0.00895439,
		Inclination:              1.77005520,
		LongitudeOfAscendingNode: 131.78635853,
		ArgumentOfPeriapsis:      9.96476630,
	}, {
		SemiMajorAxis:            2.7,
		Eccentricity:             0.3,
		Inclination:              135,
		LongitudeOfAscendingNode: 300,
		ArgumentOfPeriapsis:      210,
	}}
	for _, el := range sets {
		for nu := -math.Pi; nu < math.Pi; nu += 0.37 {
			r := OrbitalRadius(nu, el.SemiMajorAxis, el.Eccentricity)
			got := OrbitalToHeliocentric(r, nu, el)
			want := matrixTransform(r, nu, el)
			assertVecClose(t, "OrbitalToHeliocentric", got, want, 1e-12*math.Max(1, r))
		}
	}
}

func TestOrbitalToHeliocentric_PreservesRadius(t *testing.T) {
	el := mercuryElements()
	for nu := 0.0; nu < 2*math.Pi; nu += 0.5 {
		r := OrbitalRadius(nu, el.SemiMajorAxis, el.Eccentricity)
		assertClose(t, "|pos|", OrbitalToHeliocentric(r, nu, el).Norm(), r, 1e-12)
	}
}

func TestOrbitalToHeliocentric_ZeroInclinationStaysInPlane(t *testing.T) {
	el := model.OrbitalElements{SemiMajorAxis: 1, LongitudeOfAscendingNode: 40, ArgumentOfPeriapsis: 65}
	for nu := 0.0; nu < 2*math.Pi; nu += 0.4 {
		if z := OrbitalToHeliocentric(1, nu, el).Z; z != 0 {
			t.Fatalf("z = %v at nu=%v, want 0 for an uninclined orbit", z, nu)
		}
	}
}

func TestOrbitalToHeliocentric_PeriapsisDirection(t *testing.T) {
	// With Ω = w = i = 0 periapsis points along +x.
	got := OrbitalToHeliocentric(2, 0, model.OrbitalElements{SemiMajorAxis: 2})
	assertVecClose(t, "periapsis", got, Vec3{X: 2}, 1e-15)
}
