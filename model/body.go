package model

import (
	"fmt"
	"math"
)

// BodyKind distinguishes the central star from orbiting bodies.
type BodyKind string

const (
	BodyKindStar   BodyKind = "star"
	BodyKindPlanet BodyKind = "planet"
)

// RotationModelGMST marks a body whose spin angle follows Greenwich mean
// sidereal time instead of a linear rotation period.
const RotationModelGMST = "gmst"

// OrbitalElements is an epoch-referenced Keplerian element set.
// Angles are degrees, distances AU, rates degrees/day.
type OrbitalElements struct {
	SemiMajorAxis            float64 `json:"semiMajorAxis" mapstructure:"semiMajorAxis"`
	Eccentricity             float64 `json:"eccentricity" mapstructure:"eccentricity"`
	Inclination              float64 `json:"inclination" mapstructure:"inclination"`
	LongitudeOfAscendingNode float64 `json:"longitudeOfAscendingNode" mapstructure:"longitudeOfAscendingNode"`
	ArgumentOfPeriapsis      float64 `json:"argumentOfPeriapsis" mapstructure:"argumentOfPeriapsis"`
	MeanAnomalyAtEpoch       float64 `json:"meanAnomalyAtEpoch" mapstructure:"meanAnomalyAtEpoch"`
	MeanMotion               float64 `json:"meanMotion" mapstructure:"meanMotion"`
	Epoch                    float64 `json:"epoch" mapstructure:"epoch"` // Julian Date
}

// Validate reports element sets the propagator cannot handle: non-finite
// values, a non-positive semi-major axis, or a non-elliptical eccentricity.
func (e OrbitalElements) Validate() error {
	values := map[string]float64{
		"semiMajorAxis":            e.SemiMajorAxis,
		"eccentricity":             e.Eccentricity,
		"inclination":              e.Inclination,
		"longitudeOfAscendingNode": e.LongitudeOfAscendingNode,
		"argumentOfPeriapsis":      e.ArgumentOfPeriapsis,
		"meanAnomalyAtEpoch":       e.MeanAnomalyAtEpoch,
		"meanMotion":               e.MeanMotion,
		"epoch":                    e.Epoch,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite: %v", name, v)
		}
	}
	if e.SemiMajorAxis <= 0 {
		return fmt.Errorf("semiMajorAxis must be positive, got %v", e.SemiMajorAxis)
	}
	if e.Eccentricity < 0 || e.Eccentricity >= 1 {
		return fmt.Errorf("eccentricity must be in [0, 1), got %v", e.Eccentricity)
	}
	return nil
}

// Body is a named solar-system body. The star carries no elements and is
// always placed at the origin.
type Body struct {
	ID     string   `json:"id" mapstructure:"id"`
	Name   string   `json:"name" mapstructure:"name"`
	NameEn string   `json:"nameEn" mapstructure:"nameEn"`
	Kind   BodyKind `json:"kind" mapstructure:"kind"`

	Radius float64 `json:"radius" mapstructure:"radius"` // Earth radii
	Mass   float64 `json:"mass" mapstructure:"mass"`     // Earth masses
	Color  string  `json:"color" mapstructure:"color"`

	Elements *OrbitalElements `json:"orbitalElements,omitempty" mapstructure:"orbitalElements"`

	RotationPeriod  float64  `json:"rotationPeriod" mapstructure:"rotationPeriod"`   // hours, negative for retrograde
	RotationModel   string   `json:"rotationModel" mapstructure:"rotationModel"`     // "" or "gmst"
	OrbitalPeriod   float64  `json:"orbitalPeriod" mapstructure:"orbitalPeriod"`     // days
	DistanceFromSun float64  `json:"distanceFromSun" mapstructure:"distanceFromSun"` // AU
	Moons           []string `json:"moons,omitempty" mapstructure:"moons"`

	// Star only.
	Temperature float64 `json:"temperature,omitempty" mapstructure:"temperature"` // K
	Luminosity  float64 `json:"luminosity,omitempty" mapstructure:"luminosity"`   // solar
}

// IsStar reports whether b is the central body.
func (b Body) IsStar() bool {
	return b.Kind == BodyKindStar
}

// DisplayName prefers the English name when one is set.
func (b Body) DisplayName() string {
	if b.NameEn != "" {
		return b.NameEn
	}
	if b.Name != "" {
		return b.Name
	}
	return b.ID
}
